// Copyright (c) 2026 The CreditLedger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package account implements the public balance mapping and the value
// transfer and fee operations over it. Every debit and credit is checked;
// a would-be underflow or overflow aborts the call.
package account

import (
	"github.com/creditledger/credits/credits"
	"github.com/creditledger/credits/log"
	"github.com/creditledger/credits/reverts"
	"github.com/creditledger/credits/state"
)

var logger = log.WithContext("pkg", "account")

// Service provides access to public account balances.
type Service struct {
	balances *state.Mapping[credits.Address, uint64]
}

// New create a new instance.
func New(st *state.State) *Service {
	return &Service{
		balances: state.NewMapping[credits.Address, uint64](st, "account"),
	}
}

// Balance returns the balance of an account, zero when the account is absent.
func (s *Service) Balance(addr credits.Address) (uint64, error) {
	return s.balances.GetOr(addr, 0)
}

// Exists returns whether the account holds a balance entry.
func (s *Service) Exists(addr credits.Address) (bool, error) {
	return s.balances.Contains(addr)
}

// Credit adds amount to the account balance, creating the entry if absent.
func (s *Service) Credit(addr credits.Address, amount uint64) error {
	balance, err := s.balances.GetOr(addr, 0)
	if err != nil {
		return err
	}
	sum, ok := credits.SafeAdd(balance, amount)
	if !ok {
		return reverts.Arithmetic("balance overflow")
	}
	return s.balances.Set(addr, sum)
}

// Debit subtracts amount from the account balance.
// It aborts with not-found when the account is absent and with an arithmetic
// failure when the balance is insufficient.
func (s *Service) Debit(addr credits.Address, amount uint64) error {
	balance, err := s.balances.Get(addr)
	if err != nil {
		return err
	}
	remaining, ok := credits.SafeSub(balance, amount)
	if !ok {
		return reverts.Arithmetic("insufficient balance")
	}
	return s.balances.Set(addr, remaining)
}

// Transfer moves amount from sender to receiver.
func (s *Service) Transfer(sender, receiver credits.Address, amount uint64) error {
	if err := s.Debit(sender, amount); err != nil {
		return err
	}
	if err := s.Credit(receiver, amount); err != nil {
		return err
	}
	logger.Debug("transferred", "sender", sender, "receiver", receiver, "amount", amount)
	return nil
}

// Fee deducts base+priority from the sender's balance.
// The base fee and the deployment-or-execution id must be nonzero, guarding
// against no-op fee transitions.
func (s *Service) Fee(sender credits.Address, baseFee, priorityFee uint64, id credits.Bytes32) error {
	if baseFee == 0 {
		return reverts.Precondition("base fee must be nonzero")
	}
	if id.IsZero() {
		return reverts.Precondition("deployment or execution id must be nonzero")
	}
	total, ok := credits.SafeAdd(baseFee, priorityFee)
	if !ok {
		return reverts.Arithmetic("fee overflow")
	}
	return s.Debit(sender, total)
}

// Mapping exposes the balances mapping for offline inspection.
func (s *Service) Mapping() *state.Mapping[credits.Address, uint64] {
	return s.balances
}
