// Copyright (c) 2026 The CreditLedger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creditledger/credits/credits"
	"github.com/creditledger/credits/reverts"
)

func TestBondValidator(t *testing.T) {
	st := newTest(t)
	v := addrOf("validator-1")
	w := addrOf("withdraw-1")

	st.fund(v, credits.MinValidatorStake).
		mustBond(v, v, w, credits.MinValidatorStake)

	assert.Equal(t, M(uint32(1), nil), M(st.CommitteeSize()))
	assert.Equal(t, M(uint32(0), nil), M(st.DelegatorCount()))

	entry, err := st.GetCommitteeEntry(v)
	require.NoError(t, err)
	assert.Equal(t, &CommitteeEntry{Stake: credits.MinValidatorStake, IsOpen: true}, entry)

	bond, err := st.GetBondEntry(v)
	require.NoError(t, err)
	assert.Equal(t, &BondEntry{Validator: v, Amount: credits.MinValidatorStake}, bond)

	assert.Equal(t, M(uint64(0), nil), M(st.acc.Balance(v)))
	assert.Equal(t, M(w, nil), M(st.WithdrawalAddress(v)))

	st.assertCounters().assertStakeSums()
}

func TestBondDelegator(t *testing.T) {
	st := newTest(t)
	v := addrOf("validator-1")
	d := addrOf("delegator-1")

	st.fund(v, credits.MinValidatorStake).
		fund(d, credits.MinDelegatorStake).
		mustBond(v, v, v, credits.MinValidatorStake).
		mustBond(d, v, d, credits.MinDelegatorStake)

	entry, err := st.GetCommitteeEntry(v)
	require.NoError(t, err)
	assert.Equal(t, credits.MinValidatorStake+credits.MinDelegatorStake, entry.Stake)

	bond, err := st.GetBondEntry(d)
	require.NoError(t, err)
	assert.Equal(t, &BondEntry{Validator: v, Amount: credits.MinDelegatorStake}, bond)

	assert.Equal(t, M(uint32(1), nil), M(st.DelegatorCount()))

	st.assertCounters().assertStakeSums()
}

func TestBondMinimums(t *testing.T) {
	st := newTest(t)
	v := addrOf("validator-1")
	d := addrOf("delegator-1")

	st.fund(v, 2*credits.MinValidatorStake).fund(d, credits.MinDelegatorStake)

	err := st.tryCall(func() error { return st.Bond(v, v, v, credits.MinBondAmount-1) })
	assert.True(t, reverts.IsPrecondition(err))

	err = st.tryCall(func() error { return st.Bond(v, v, v, credits.MinValidatorStake-1) })
	assert.True(t, reverts.IsPrecondition(err))

	st.mustBond(v, v, v, credits.MinValidatorStake)

	err = st.tryCall(func() error { return st.Bond(d, v, d, credits.MinDelegatorStake-1) })
	assert.True(t, reverts.IsPrecondition(err))

	// further self-bonds may be arbitrarily small once above the floor
	st.mustBond(v, v, v, credits.MinBondAmount)
}

func TestBondClosedValidator(t *testing.T) {
	st := newTest(t)
	v := addrOf("validator-1")
	d := addrOf("delegator-1")

	st.fund(v, 2*credits.MinValidatorStake).
		fund(d, credits.MinDelegatorStake).
		mustBond(v, v, v, credits.MinValidatorStake)

	require.NoError(t, st.SetValidatorState(v, false))

	err := st.tryCall(func() error { return st.Bond(d, v, d, credits.MinDelegatorStake) })
	assert.True(t, reverts.IsPrecondition(err))

	// a closed validator cannot even grow its own bond
	err = st.tryCall(func() error { return st.Bond(v, v, v, credits.MinBondAmount) })
	assert.True(t, reverts.IsPrecondition(err))

	require.NoError(t, st.SetValidatorState(v, true))
	st.mustBond(d, v, d, credits.MinDelegatorStake)
}

func TestBondWithdrawalBinding(t *testing.T) {
	st := newTest(t)
	v := addrOf("validator-1")
	w := addrOf("withdraw-1")

	st.fund(v, 2*credits.MinValidatorStake).
		mustBond(v, v, w, credits.MinValidatorStake)

	err := st.tryCall(func() error { return st.Bond(v, v, addrOf("withdraw-2"), credits.MinBondAmount) })
	assert.True(t, reverts.IsPrecondition(err))

	// the original binding still accepts further bonds
	st.mustBond(v, v, w, credits.MinBondAmount)
}

func TestBondInsufficientBalance(t *testing.T) {
	st := newTest(t)
	v := addrOf("validator-1")

	st.fund(v, credits.MinValidatorStake-1)

	err := st.tryCall(func() error { return st.Bond(v, v, v, credits.MinValidatorStake) })
	assert.True(t, reverts.IsArithmetic(err))

	// the reverted call left nothing behind
	assert.Equal(t, M(uint32(0), nil), M(st.CommitteeSize()))
	assert.Equal(t, M(false, nil), M(st.IsValidator(v)))
}

func TestCommitteeCap(t *testing.T) {
	st := newTest(t)

	for i := 0; i < int(credits.MaxCommitteeSize); i++ {
		v := credits.BytesToAddress([]byte{byte(i + 1)})
		st.fund(v, credits.MinValidatorStake).
			mustBond(v, v, v, credits.MinValidatorStake)
	}
	assert.Equal(t, M(credits.MaxCommitteeSize, nil), M(st.CommitteeSize()))

	extra := addrOf("one-too-many")
	st.fund(extra, credits.MinValidatorStake)
	err := st.tryCall(func() error { return st.Bond(extra, extra, extra, credits.MinValidatorStake) })
	assert.True(t, reverts.IsPrecondition(err))

	st.assertCounters()

	members, err := st.Committee(st.db)
	require.NoError(t, err)
	assert.Len(t, members, int(credits.MaxCommitteeSize))
	for _, m := range members {
		assert.True(t, m.Entry.IsOpen)
		assert.Equal(t, credits.MinValidatorStake, m.Entry.Stake)
	}
}

func TestBondRoleConflicts(t *testing.T) {
	st := newTest(t)
	v1 := addrOf("validator-1")
	v2 := addrOf("validator-2")
	d := addrOf("delegator-1")

	st.fund(v1, credits.MinValidatorStake).
		fund(v2, credits.MinValidatorStake).
		fund(d, 2*credits.MinDelegatorStake).
		mustBond(v1, v1, v1, credits.MinValidatorStake).
		mustBond(v2, v2, v2, credits.MinValidatorStake).
		mustBond(d, v1, d, credits.MinDelegatorStake)

	// a committee member cannot delegate
	err := st.tryCall(func() error { return st.Bond(v1, v2, v1, credits.MinDelegatorStake) })
	assert.True(t, reverts.IsPrecondition(err))

	// a delegator cannot switch validators while bonded
	err = st.tryCall(func() error { return st.Bond(d, v2, d, credits.MinDelegatorStake) })
	assert.True(t, reverts.IsPrecondition(err))

	// bonding to an unknown validator is a not-found failure
	err = st.tryCall(func() error { return st.Bond(d, addrOf("nobody"), d, credits.MinDelegatorStake) })
	assert.True(t, reverts.IsNotFound(err))
}

func TestUnbondValidatorPartial(t *testing.T) {
	st := newTest(t)
	v := addrOf("validator-1")
	extra := uint64(5 * credits.MinBondAmount)

	st.fund(v, credits.MinValidatorStake+extra).
		mustBond(v, v, v, credits.MinValidatorStake+extra).
		mustUnbond(v, extra, 100)

	entry, err := st.GetCommitteeEntry(v)
	require.NoError(t, err)
	assert.Equal(t, credits.MinValidatorStake, entry.Stake)

	unbond, err := st.GetUnbondEntry(v)
	require.NoError(t, err)
	assert.Equal(t, &UnbondEntry{Amount: extra, UnlockHeight: 100 + credits.UnbondingPeriod}, unbond)

	assert.Equal(t, M(uint32(1), nil), M(st.CommitteeSize()))
	st.assertStakeSums()
}

func TestUnbondValidatorBlockedByDelegators(t *testing.T) {
	st := newTest(t)
	v := addrOf("validator-1")
	d := addrOf("delegator-1")

	st.fund(v, credits.MinValidatorStake).
		fund(d, credits.MinDelegatorStake).
		mustBond(v, v, v, credits.MinValidatorStake).
		mustBond(d, v, d, credits.MinDelegatorStake)

	// dropping below the validator floor means a full exit, which is
	// blocked while delegated stake remains
	err := st.tryCall(func() error { return st.Unbond(v, credits.MinBondAmount, 100) })
	assert.True(t, reverts.IsPrecondition(err))

	// once the delegator leaves, the validator can fully exit
	st.mustUnbond(d, credits.MinDelegatorStake, 100).
		mustUnbond(v, credits.MinBondAmount, 100)

	_, err = st.GetCommitteeEntry(v)
	assert.True(t, reverts.IsNotFound(err))

	// the full exit moves the entire original bond, not just the requested amount
	unbond, err := st.GetUnbondEntry(v)
	require.NoError(t, err)
	assert.Equal(t, credits.MinValidatorStake, unbond.Amount)

	assert.Equal(t, M(uint32(0), nil), M(st.CommitteeSize()))
	st.assertCounters()
}

func TestUnbondDelegatorFullExit(t *testing.T) {
	st := newTest(t)
	v := addrOf("validator-1")
	d := addrOf("delegator-1")

	st.fund(v, credits.MinValidatorStake).
		fund(d, credits.MinDelegatorStake).
		mustBond(v, v, v, credits.MinValidatorStake).
		mustBond(d, v, d, credits.MinDelegatorStake).
		mustUnbond(d, credits.MinBondAmount, 50)

	_, err := st.GetBondEntry(d)
	assert.True(t, reverts.IsNotFound(err))

	unbond, err := st.GetUnbondEntry(d)
	require.NoError(t, err)
	assert.Equal(t, credits.MinDelegatorStake, unbond.Amount)

	entry, err := st.GetCommitteeEntry(v)
	require.NoError(t, err)
	assert.Equal(t, credits.MinValidatorStake, entry.Stake)

	assert.Equal(t, M(uint32(0), nil), M(st.DelegatorCount()))
	st.assertCounters().assertStakeSums()
}

func TestUnbondExceedsBond(t *testing.T) {
	st := newTest(t)
	v := addrOf("validator-1")

	st.fund(v, credits.MinValidatorStake).
		mustBond(v, v, v, credits.MinValidatorStake)

	err := st.tryCall(func() error { return st.Unbond(v, credits.MinValidatorStake+1, 100) })
	assert.True(t, reverts.IsArithmetic(err))

	err = st.tryCall(func() error { return st.Unbond(addrOf("nobody"), 1, 100) })
	assert.True(t, reverts.IsNotFound(err))
}

func TestUnbondClockReset(t *testing.T) {
	st := newTest(t)
	v := addrOf("validator-1")
	extra := uint64(4 * credits.MinBondAmount)

	st.fund(v, credits.MinValidatorStake+extra).
		mustBond(v, v, v, credits.MinValidatorStake+extra).
		mustUnbond(v, credits.MinBondAmount, 100).
		mustUnbond(v, credits.MinBondAmount, 250)

	// amounts accumulate, the unlock height tracks the latest unbond
	unbond, err := st.GetUnbondEntry(v)
	require.NoError(t, err)
	assert.Equal(t, 2*credits.MinBondAmount, unbond.Amount)
	assert.Equal(t, 250+credits.UnbondingPeriod, unbond.UnlockHeight)

	// the earlier tranche is no longer claimable at its original maturity
	err = st.tryCall(func() error { return st.Claim(v, 100+credits.UnbondingPeriod) })
	assert.True(t, reverts.IsPrecondition(err))
}

func TestForcedUnbond(t *testing.T) {
	st := newTest(t)
	v := addrOf("validator-1")
	v2 := addrOf("validator-2")
	d := addrOf("delegator-1")

	st.fund(v, credits.MinValidatorStake).
		fund(v2, credits.MinValidatorStake).
		fund(d, credits.MinDelegatorStake).
		mustBond(v, v, v, credits.MinValidatorStake).
		mustBond(v2, v2, v2, credits.MinValidatorStake).
		mustBond(d, v, d, credits.MinDelegatorStake)

	// an open validator cannot evict
	err := st.tryCall(func() error { return st.UnbondDelegator(v, d, 100) })
	assert.True(t, reverts.IsPrecondition(err))

	require.NoError(t, st.SetValidatorState(v, false))

	// only the validator the target is bonded to may evict
	require.NoError(t, st.SetValidatorState(v2, false))
	err = st.tryCall(func() error { return st.UnbondDelegator(v2, d, 100) })
	assert.True(t, reverts.IsPrecondition(err))

	// a fellow committee member is not evictable
	err = st.tryCall(func() error { return st.UnbondDelegator(v, v2, 100) })
	assert.True(t, reverts.IsPrecondition(err))

	require.NoError(t, st.UnbondDelegator(v, d, 100))

	_, err = st.GetBondEntry(d)
	assert.True(t, reverts.IsNotFound(err))

	unbond, err := st.GetUnbondEntry(d)
	require.NoError(t, err)
	assert.Equal(t, &UnbondEntry{Amount: credits.MinDelegatorStake, UnlockHeight: 100 + credits.UnbondingPeriod}, unbond)

	st.assertCounters().assertStakeSums()
}

func TestClaim(t *testing.T) {
	st := newTest(t)
	v := addrOf("validator-1")
	w := addrOf("withdraw-1")
	extra := uint64(3 * credits.MinBondAmount)

	st.fund(v, credits.MinValidatorStake+extra).
		mustBond(v, v, w, credits.MinValidatorStake+extra).
		mustUnbond(v, extra, 100)

	// too early
	err := st.tryCall(func() error { return st.Claim(v, 100+credits.UnbondingPeriod-1) })
	assert.True(t, reverts.IsPrecondition(err))

	st.mustClaim(v, 100+credits.UnbondingPeriod)

	assert.Equal(t, M(extra, nil), M(st.acc.Balance(w)))
	_, err = st.GetUnbondEntry(v)
	assert.True(t, reverts.IsNotFound(err))

	// still bonded, so the withdrawal binding stays
	assert.Equal(t, M(w, nil), M(st.WithdrawalAddress(v)))

	// nothing left to claim
	err = st.tryCall(func() error { return st.Claim(v, 100+2*credits.UnbondingPeriod) })
	assert.True(t, reverts.IsNotFound(err))
}

func TestClaimReleasesBinding(t *testing.T) {
	st := newTest(t)
	v := addrOf("validator-1")
	w := addrOf("withdraw-1")

	st.fund(v, credits.MinValidatorStake).
		mustBond(v, v, w, credits.MinValidatorStake).
		mustUnbond(v, credits.MinValidatorStake, 10).
		mustClaim(v, 10+credits.UnbondingPeriod)

	assert.Equal(t, M(credits.MinValidatorStake, nil), M(st.acc.Balance(w)))

	// fully exited, the binding is gone and a fresh one may be chosen
	_, err := st.WithdrawalAddress(v)
	assert.True(t, reverts.IsNotFound(err))

	st.fund(v, credits.MinValidatorStake).
		mustBond(v, v, addrOf("withdraw-2"), credits.MinValidatorStake)

	st.assertCounters().assertStakeSums()
}

func TestSetValidatorState(t *testing.T) {
	st := newTest(t)
	v := addrOf("validator-1")

	err := st.SetValidatorState(v, false)
	assert.True(t, reverts.IsNotFound(err))

	st.fund(v, credits.MinValidatorStake).
		mustBond(v, v, v, credits.MinValidatorStake)

	require.NoError(t, st.SetValidatorState(v, false))
	entry, err := st.GetCommitteeEntry(v)
	require.NoError(t, err)
	assert.False(t, entry.IsOpen)

	// toggling to the current value is a no-op
	require.NoError(t, st.SetValidatorState(v, false))

	require.NoError(t, st.SetValidatorState(v, true))
	entry, err = st.GetCommitteeEntry(v)
	require.NoError(t, err)
	assert.True(t, entry.IsOpen)
}

func TestStakeConservation(t *testing.T) {
	st := newTest(t)
	v := addrOf("validator-1")
	w := addrOf("withdraw-1")
	total := credits.MinValidatorStake + 7*credits.MinBondAmount

	st.fund(v, total).
		mustBond(v, v, w, total).
		mustUnbond(v, 2*credits.MinBondAmount, 10).
		mustUnbond(v, 3*credits.MinBondAmount, 20).
		mustClaim(v, 20+credits.UnbondingPeriod)

	bond, err := st.GetBondEntry(v)
	require.NoError(t, err)

	balance, err := st.acc.Balance(w)
	require.NoError(t, err)

	// every microcredit is either bonded or withdrawn
	assert.Equal(t, total, bond.Amount+balance)
	st.assertStakeSums()
}
