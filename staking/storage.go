// Copyright (c) 2026 The CreditLedger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/pkg/errors"

	"github.com/creditledger/credits/credits"
	"github.com/creditledger/credits/state"
)

// storage is the root storage of the staking program.
type storage struct {
	committee *state.Mapping[credits.Address, *CommitteeEntry]
	bonds     *state.Mapping[credits.Address, *BondEntry]
	unbonding *state.Mapping[credits.Address, *UnbondEntry]
	withdraw  *state.Mapping[credits.Address, credits.Address]

	// cardinality counters kept in lock-step with the mappings, so
	// admission never has to scan.
	members    *state.Counter
	delegators *state.Counter
}

func newStorage(st *state.State) *storage {
	return &storage{
		committee:  state.NewMapping[credits.Address, *CommitteeEntry](st, "committee"),
		bonds:      state.NewMapping[credits.Address, *BondEntry](st, "bonded"),
		unbonding:  state.NewMapping[credits.Address, *UnbondEntry](st, "unbonding"),
		withdraw:   state.NewMapping[credits.Address, credits.Address](st, "withdraw"),
		members:    state.NewCounter(st, "committee-members"),
		delegators: state.NewCounter(st, "delegators"),
	}
}

func (s *storage) GetCommitteeEntry(validator credits.Address) (*CommitteeEntry, error) {
	entry, err := s.committee.Get(validator)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get committee entry")
	}
	return entry, nil
}

func (s *storage) SetCommitteeEntry(validator credits.Address, entry *CommitteeEntry) error {
	if err := s.committee.Set(validator, entry); err != nil {
		return errors.Wrap(err, "failed to set committee entry")
	}
	return nil
}

func (s *storage) GetBondEntry(staker credits.Address) (*BondEntry, error) {
	entry, err := s.bonds.Get(staker)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get bond entry")
	}
	return entry, nil
}

func (s *storage) SetBondEntry(staker credits.Address, entry *BondEntry) error {
	if err := s.bonds.Set(staker, entry); err != nil {
		return errors.Wrap(err, "failed to set bond entry")
	}
	return nil
}

func (s *storage) GetUnbondEntry(staker credits.Address) (*UnbondEntry, error) {
	entry, err := s.unbonding.Get(staker)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get unbond entry")
	}
	return entry, nil
}

func (s *storage) SetUnbondEntry(staker credits.Address, entry *UnbondEntry) error {
	if err := s.unbonding.Set(staker, entry); err != nil {
		return errors.Wrap(err, "failed to set unbond entry")
	}
	return nil
}
