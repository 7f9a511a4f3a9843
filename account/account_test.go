// Copyright (c) 2026 The CreditLedger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package account

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/creditledger/credits/credits"
	"github.com/creditledger/credits/lvldb"
	"github.com/creditledger/credits/reverts"
	"github.com/creditledger/credits/state"
)

func newService(t *testing.T) *Service {
	db, err := lvldb.NewMem()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(state.New(db))
}

func TestCreditDebit(t *testing.T) {
	svc := newService(t)
	alice := credits.BytesToAddress([]byte("alice"))

	balance, err := svc.Balance(alice)
	assert.NoError(t, err)
	assert.Equal(t, uint64(0), balance)

	assert.NoError(t, svc.Credit(alice, 500))
	balance, err = svc.Balance(alice)
	assert.NoError(t, err)
	assert.Equal(t, uint64(500), balance)

	assert.NoError(t, svc.Debit(alice, 200))
	balance, err = svc.Balance(alice)
	assert.NoError(t, err)
	assert.Equal(t, uint64(300), balance)
}

func TestDebitAbsentAccount(t *testing.T) {
	svc := newService(t)
	ghost := credits.BytesToAddress([]byte("ghost"))

	err := svc.Debit(ghost, 1)
	assert.True(t, reverts.IsNotFound(err))
}

func TestDebitInsufficient(t *testing.T) {
	svc := newService(t)
	alice := credits.BytesToAddress([]byte("alice"))

	assert.NoError(t, svc.Credit(alice, 100))
	err := svc.Debit(alice, 101)
	assert.True(t, reverts.IsArithmetic(err))

	// balance unchanged
	balance, _ := svc.Balance(alice)
	assert.Equal(t, uint64(100), balance)
}

func TestCreditOverflow(t *testing.T) {
	svc := newService(t)
	alice := credits.BytesToAddress([]byte("alice"))

	assert.NoError(t, svc.Credit(alice, math.MaxUint64))
	err := svc.Credit(alice, 1)
	assert.True(t, reverts.IsArithmetic(err))
}

func TestTransfer(t *testing.T) {
	svc := newService(t)
	alice := credits.BytesToAddress([]byte("alice"))
	bob := credits.BytesToAddress([]byte("bob"))

	assert.NoError(t, svc.Credit(alice, 1000))
	assert.NoError(t, svc.Transfer(alice, bob, 400))

	aliceBalance, _ := svc.Balance(alice)
	bobBalance, _ := svc.Balance(bob)
	assert.Equal(t, uint64(600), aliceBalance)
	assert.Equal(t, uint64(400), bobBalance)
}

func TestFee(t *testing.T) {
	svc := newService(t)
	alice := credits.BytesToAddress([]byte("alice"))
	id := credits.Blake2b([]byte("execution"))

	assert.NoError(t, svc.Credit(alice, 10_000))

	assert.True(t, reverts.IsPrecondition(svc.Fee(alice, 0, 10, id)))
	assert.True(t, reverts.IsPrecondition(svc.Fee(alice, 10, 0, credits.Bytes32{})))
	assert.True(t, reverts.IsArithmetic(svc.Fee(alice, math.MaxUint64, 1, id)))

	assert.NoError(t, svc.Fee(alice, 3_000, 1_000, id))
	balance, _ := svc.Balance(alice)
	assert.Equal(t, uint64(6_000), balance)
}
