// Copyright (c) 2026 The CreditLedger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package runtime executes the public half of each ledger entry point against
// a state snapshot at a fixed block height. Calls within a block run
// serially; each call either commits all of its writes or none of them.
package runtime

import (
	"encoding/binary"

	"github.com/creditledger/credits/account"
	"github.com/creditledger/credits/credits"
	"github.com/creditledger/credits/log"
	"github.com/creditledger/credits/metrics"
	"github.com/creditledger/credits/record"
	"github.com/creditledger/credits/staking"
	"github.com/creditledger/credits/state"
)

var logger = log.WithContext("pkg", "runtime")

var (
	metricCalls   = metrics.CounterVec("finalize_calls_total", []string{"op"})
	metricReverts = metrics.CounterVec("finalize_reverts_total", []string{"op"})
)

// Runtime is to support entry point execution.
type Runtime struct {
	state   *state.State
	height  uint32
	account *account.Service
	staker  *staking.Staker
}

// New create a Runtime object bound to the given state and block height.
func New(st *state.State, height uint32) *Runtime {
	acc := account.New(st)
	return &Runtime{
		state:   st,
		height:  height,
		account: acc,
		staker:  staking.New(st, acc),
	}
}

func (rt *Runtime) State() *state.State       { return rt.state }
func (rt *Runtime) Height() uint32            { return rt.height }
func (rt *Runtime) Account() *account.Service { return rt.account }
func (rt *Runtime) Staker() *staking.Staker   { return rt.staker }

// run executes fn inside a checkpoint and reverts all of its staged writes
// when it fails.
func (rt *Runtime) run(op string, fn func() error) error {
	metricCalls.AddWithLabel(1, map[string]string{"op": op})
	checkpoint := rt.state.NewCheckpoint()
	if err := fn(); err != nil {
		rt.state.RevertTo(checkpoint)
		metricReverts.AddWithLabel(1, map[string]string{"op": op})
		logger.Debug("call reverted", "op", op, "height", rt.height, "error", err)
		return err
	}
	return nil
}

// BondPublic locks amount of the staker's public balance into the target
// validator's stake.
func (rt *Runtime) BondPublic(staker, validator, withdrawal credits.Address, amount uint64) error {
	return rt.run("bond_public", func() error {
		return rt.staker.Bond(staker, validator, withdrawal, amount)
	})
}

// UnbondPublic moves amount of the staker's bonded stake into the time-locked
// unbonding state.
func (rt *Runtime) UnbondPublic(staker credits.Address, amount uint64) error {
	return rt.run("unbond_public", func() error {
		return rt.staker.Unbond(staker, amount, rt.height)
	})
}

// UnbondDelegatorAsValidator fully unbonds a delegator of the calling closed
// validator.
func (rt *Runtime) UnbondDelegatorAsValidator(validator, delegator credits.Address) error {
	return rt.run("unbond_delegator_as_validator", func() error {
		return rt.staker.UnbondDelegator(validator, delegator, rt.height)
	})
}

// ClaimUnbondPublic releases the staker's matured unbonded value to the bound
// withdrawal address.
func (rt *Runtime) ClaimUnbondPublic(staker credits.Address) error {
	return rt.run("claim_unbond_public", func() error {
		return rt.staker.Claim(staker, rt.height)
	})
}

// SetValidatorState toggles whether the validator accepts new bonded stake.
func (rt *Runtime) SetValidatorState(validator credits.Address, open bool) error {
	return rt.run("set_validator_state", func() error {
		return rt.staker.SetValidatorState(validator, open)
	})
}

// TransferPublic moves amount between public balances.
func (rt *Runtime) TransferPublic(sender, receiver credits.Address, amount uint64) error {
	return rt.run("transfer_public", func() error {
		return rt.account.Transfer(sender, receiver, amount)
	})
}

// TransferPublicToPrivate debits the sender's public balance and mints the
// equivalent private record.
func (rt *Runtime) TransferPublicToPrivate(sender, owner credits.Address, amount uint64) (record.Record, error) {
	err := rt.run("transfer_public_to_private", func() error {
		return rt.account.Debit(sender, amount)
	})
	if err != nil {
		return record.Record{}, err
	}
	var h [4]byte
	binary.BigEndian.PutUint32(h[:], rt.height)
	return record.Mint(owner, amount, sender.Bytes(), h[:]), nil
}

// TransferPrivateToPublic credits the revealed amount to the receiver's
// public balance. The consuming record side runs locally via record.Burn.
func (rt *Runtime) TransferPrivateToPublic(receiver credits.Address, amount uint64) error {
	return rt.run("transfer_private_to_public", func() error {
		return rt.account.Credit(receiver, amount)
	})
}

// FeePublic deducts base plus priority fee from the sender's public balance.
func (rt *Runtime) FeePublic(sender credits.Address, baseFee, priorityFee uint64, id credits.Bytes32) error {
	return rt.run("fee_public", func() error {
		return rt.account.Fee(sender, baseFee, priorityFee, id)
	})
}

// Commit stages and persists all accumulated writes.
func (rt *Runtime) Commit() error {
	return rt.state.Stage().Commit()
}
