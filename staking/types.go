// Copyright (c) 2026 The CreditLedger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import "github.com/creditledger/credits/credits"

// CommitteeEntry is the per-validator committee record.
// An entry exists iff the validator is in the active set, and its stake
// always equals the sum of all bond entries pointing at the validator.
type CommitteeEntry struct {
	// Stake is the validator's total bonded stake, own plus delegated.
	Stake uint64
	// IsOpen tells whether the validator accepts new bonded stake.
	IsOpen bool
}

// BondEntry is the per-staker bond record.
type BondEntry struct {
	// Validator the stake is bonded to. Immutable until fully unbound.
	Validator credits.Address
	// Amount of bonded microcredits.
	Amount uint64
}

// UnbondEntry is the per-staker pending withdrawal record.
type UnbondEntry struct {
	// Amount of unbonding microcredits. Accumulates across repeated unbonds.
	Amount uint64
	// UnlockHeight is the block height at which the amount becomes
	// claimable. Reset on every contributing unbond.
	UnlockHeight uint32
}
