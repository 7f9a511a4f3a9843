// Copyright (c) 2026 The CreditLedger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis builds the block-zero ledger state from a yaml description.
// Bootstrap validators are admitted through the regular bonding path, so all
// committee invariants hold from the first block.
package genesis

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/creditledger/credits/credits"
	"github.com/creditledger/credits/log"
	"github.com/creditledger/credits/runtime"
	"github.com/creditledger/credits/state"
)

var logger = log.WithContext("pkg", "genesis")

// Account is an initial public balance.
type Account struct {
	Address string `yaml:"address"`
	Balance uint64 `yaml:"balance"`
}

// Validator is a bootstrap committee member.
type Validator struct {
	Address    string `yaml:"address"`
	Withdrawal string `yaml:"withdrawal"`
	Stake      uint64 `yaml:"stake"`
	Closed     bool   `yaml:"closed,omitempty"`
}

// Config is a user customized genesis.
type Config struct {
	Name       string      `yaml:"name"`
	Accounts   []Account   `yaml:"accounts"`
	Validators []Validator `yaml:"validators"`
}

// Load reads and parses a genesis config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read genesis file")
	}
	return Parse(data)
}

// Parse parses a yaml genesis config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse genesis file")
	}
	return &cfg, nil
}

// Build applies the genesis allocation to the given state. Balances are
// credited first, then each bootstrap validator bonds its stake. The staged
// writes are left for the caller to commit.
func (cfg *Config) Build(st *state.State) error {
	rt := runtime.New(st, 0)

	for _, a := range cfg.Accounts {
		addr, err := credits.ParseAddress(a.Address)
		if err != nil {
			return errors.Wrapf(err, "invalid account address %q", a.Address)
		}
		if err := rt.Account().Credit(addr, a.Balance); err != nil {
			return err
		}
	}

	for _, v := range cfg.Validators {
		addr, err := credits.ParseAddress(v.Address)
		if err != nil {
			return errors.Wrapf(err, "invalid validator address %q", v.Address)
		}
		withdrawal := addr
		if v.Withdrawal != "" {
			if withdrawal, err = credits.ParseAddress(v.Withdrawal); err != nil {
				return errors.Wrapf(err, "invalid withdrawal address %q", v.Withdrawal)
			}
		}
		if err := rt.Account().Credit(addr, v.Stake); err != nil {
			return err
		}
		if err := rt.BondPublic(addr, addr, withdrawal, v.Stake); err != nil {
			return errors.Wrapf(err, "failed to bond genesis validator %q", v.Address)
		}
		if v.Closed {
			if err := rt.SetValidatorState(addr, false); err != nil {
				return err
			}
		}
	}

	logger.Info("genesis state built",
		"name", cfg.Name,
		"accounts", len(cfg.Accounts),
		"validators", len(cfg.Validators))
	return nil
}
