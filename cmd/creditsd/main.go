// Copyright (c) 2026 The CreditLedger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/creditledger/credits/account"
	"github.com/creditledger/credits/credits"
	"github.com/creditledger/credits/genesis"
	"github.com/creditledger/credits/staking"
	"github.com/creditledger/credits/state"
)

var (
	version   string
	gitCommit string
)

func fullVersion() string {
	if gitCommit == "" {
		return version + "-dev"
	}
	return fmt.Sprintf("%s-%.8s", version, gitCommit)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "creditsd",
		Usage:     "operator tool for the credits ledger",
		Copyright: "2026 The CreditLedger developers",
		Flags: []cli.Flag{
			dataDirFlag,
			verbosityFlag,
			metricsAddrFlag,
		},
		Commands: []cli.Command{
			{
				Name:      "genesis",
				Usage:     "initialise a data directory from a genesis file",
				ArgsUsage: "GENESIS_FILE",
				Action:    genesisAction,
			},
			{
				Name:   "inspect",
				Usage:  "dump the committee, counters and stake ledger",
				Action: inspectAction,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}

func genesisAction(ctx *cli.Context) error {
	initLogger(ctx)
	startMetricsServer(ctx)

	path := ctx.Args().First()
	if path == "" {
		return fmt.Errorf("genesis file argument required")
	}
	cfg, err := genesis.Load(path)
	if err != nil {
		return err
	}

	db, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	st := state.New(db)
	if err := cfg.Build(st); err != nil {
		return err
	}
	if err := st.Stage().Commit(); err != nil {
		return err
	}
	fmt.Printf("initialised %q with %d accounts and %d validators\n",
		cfg.Name, len(cfg.Accounts), len(cfg.Validators))
	return nil
}

func inspectAction(ctx *cli.Context) error {
	initLogger(ctx)

	db, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	st := state.New(db)
	staker := staking.New(st, account.New(st))

	members, err := staker.CommitteeSize()
	if err != nil {
		return err
	}
	delegators, err := staker.DelegatorCount()
	if err != nil {
		return err
	}
	fmt.Printf("committee members: %d\ndelegators: %d\n\n", members, delegators)

	fmt.Println("committee:")
	err = staker.IterateCommittee(db, func(validator credits.Address, entry *staking.CommitteeEntry) error {
		status := "open"
		if !entry.IsOpen {
			status = "closed"
		}
		fmt.Printf("  %s stake=%d %s\n", validator, entry.Stake, status)
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Println("\nbonds:")
	return staker.IterateBonds(db, func(addr credits.Address, bond *staking.BondEntry) error {
		fmt.Printf("  %s -> %s amount=%d\n", addr, bond.Validator, bond.Amount)
		return nil
	})
}
