// Copyright (c) 2026 The CreditLedger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creditledger/credits/account"
	"github.com/creditledger/credits/credits"
	"github.com/creditledger/credits/lvldb"
	"github.com/creditledger/credits/state"
)

func M(a ...any) []any {
	return a
}

func addrOf(s string) credits.Address {
	return credits.BytesToAddress([]byte(s))
}

type stakerTest struct {
	*Staker
	t     *testing.T
	db    *lvldb.LevelDB
	state *state.State
	acc   *account.Service
}

func newTest(t *testing.T) *stakerTest {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	st := state.New(db)
	acc := account.New(st)
	return &stakerTest{
		Staker: New(st, acc),
		t:      t,
		db:     db,
		state:  st,
		acc:    acc,
	}
}

func (st *stakerTest) fund(addr credits.Address, amount uint64) *stakerTest {
	require.NoError(st.t, st.acc.Credit(addr, amount))
	return st
}

func (st *stakerTest) mustBond(staker, validator, withdrawal credits.Address, amount uint64) *stakerTest {
	require.NoError(st.t, st.Bond(staker, validator, withdrawal, amount))
	return st
}

func (st *stakerTest) mustUnbond(staker credits.Address, amount uint64, height uint32) *stakerTest {
	require.NoError(st.t, st.Unbond(staker, amount, height))
	return st
}

func (st *stakerTest) mustClaim(staker credits.Address, height uint32) *stakerTest {
	require.NoError(st.t, st.Claim(staker, height))
	return st
}

// tryCall runs fn inside a checkpoint and reverts its writes on failure,
// the way the runtime drives each transition.
func (st *stakerTest) tryCall(fn func() error) error {
	checkpoint := st.state.NewCheckpoint()
	if err := fn(); err != nil {
		st.state.RevertTo(checkpoint)
		return err
	}
	return nil
}

func (st *stakerTest) commit() *stakerTest {
	require.NoError(st.t, st.state.Stage().Commit())
	return st
}

// assertCounters commits the staged writes and checks that both cardinality
// counters agree with the committed mapping contents.
func (st *stakerTest) assertCounters() *stakerTest {
	st.commit()

	var members, delegators uint32
	err := st.IterateCommittee(st.db, func(_ credits.Address, _ *CommitteeEntry) error {
		members++
		return nil
	})
	require.NoError(st.t, err)

	err = st.IterateBonds(st.db, func(staker credits.Address, _ *BondEntry) error {
		isMember, err := st.IsValidator(staker)
		require.NoError(st.t, err)
		if !isMember {
			delegators++
		}
		return nil
	})
	require.NoError(st.t, err)

	assert.Equal(st.t, M(members, nil), M(st.CommitteeSize()))
	assert.Equal(st.t, M(delegators, nil), M(st.DelegatorCount()))
	return st
}

// assertStakeSums commits the staged writes and checks that every committee
// stake equals the sum of the bonds pointing at that validator.
func (st *stakerTest) assertStakeSums() *stakerTest {
	st.commit()

	sums := make(map[credits.Address]uint64)
	err := st.IterateBonds(st.db, func(_ credits.Address, bond *BondEntry) error {
		sums[bond.Validator] += bond.Amount
		return nil
	})
	require.NoError(st.t, err)

	err = st.IterateCommittee(st.db, func(validator credits.Address, entry *CommitteeEntry) error {
		assert.Equal(st.t, sums[validator], entry.Stake, "stake of %s", validator)
		return nil
	})
	require.NoError(st.t, err)
	return st
}
