// Copyright (c) 2026 The CreditLedger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package credits

// Constants of the staking ledger. All monetary values are in microcredits.
const (
	// MicrocreditsPerCredit is the number of microcredits in one credit.
	MicrocreditsPerCredit uint64 = 1_000_000

	// MinBondAmount is the smallest amount a single bond call may move.
	MinBondAmount uint64 = 1 * MicrocreditsPerCredit

	// MinValidatorStake is the floor a validator's own bond must stay above
	// to remain in the committee.
	MinValidatorStake uint64 = 10_000_000_000_000

	// MinDelegatorStake is the floor a delegator's bond must stay above to
	// remain bonded.
	MinDelegatorStake uint64 = 10_000_000_000

	// MaxCommitteeSize caps the number of active validators.
	MaxCommitteeSize uint32 = 10

	// MaxDelegators caps the number of distinct delegators across all validators.
	MaxDelegators uint32 = 100_000

	// UnbondingPeriod is the number of blocks unbonded value stays locked
	// before it can be claimed.
	UnbondingPeriod uint32 = 360

	// SplitFee is the flat fee charged by the record split operation.
	SplitFee uint64 = 10_000
)
