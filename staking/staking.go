// Copyright (c) 2026 The CreditLedger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package staking implements the committee and stake ledger: bonding,
// unbonding, claiming and validator availability. It decides validator-set
// membership and stake weights for the downstream committee logic.
package staking

import (
	"github.com/pkg/errors"

	"github.com/creditledger/credits/account"
	"github.com/creditledger/credits/credits"
	"github.com/creditledger/credits/kv"
	"github.com/creditledger/credits/log"
	"github.com/creditledger/credits/state"
)

var logger = log.WithContext("pkg", "staking")

// Staker implements the staking state transitions.
type Staker struct {
	store   *storage
	account *account.Service
}

// New create a new instance bound to the given state.
func New(st *state.State, account *account.Service) *Staker {
	return &Staker{
		store:   newStorage(st),
		account: account,
	}
}

//
// Getters - no state change
//

// IsValidator returns whether the address is an active committee member.
func (s *Staker) IsValidator(addr credits.Address) (bool, error) {
	return s.store.committee.Contains(addr)
}

// GetCommitteeEntry returns the committee entry of a validator.
func (s *Staker) GetCommitteeEntry(validator credits.Address) (*CommitteeEntry, error) {
	return s.store.GetCommitteeEntry(validator)
}

// GetBondEntry returns the bond entry of a staker.
func (s *Staker) GetBondEntry(staker credits.Address) (*BondEntry, error) {
	return s.store.GetBondEntry(staker)
}

// GetUnbondEntry returns the unbond entry of a staker.
func (s *Staker) GetUnbondEntry(staker credits.Address) (*UnbondEntry, error) {
	return s.store.GetUnbondEntry(staker)
}

// WithdrawalAddress returns the withdrawal address bound to a staker.
func (s *Staker) WithdrawalAddress(staker credits.Address) (credits.Address, error) {
	addr, err := s.store.withdraw.Get(staker)
	if err != nil {
		return credits.Address{}, errors.Wrap(err, "failed to get withdrawal binding")
	}
	return addr, nil
}

// CommitteeSize returns the number of active validators.
func (s *Staker) CommitteeSize() (uint32, error) {
	return s.store.members.Get()
}

// DelegatorCount returns the number of registered delegators.
func (s *Staker) DelegatorCount() (uint32, error) {
	return s.store.delegators.Get()
}

// CommitteeMember pairs a validator address with its committee entry.
type CommitteeMember struct {
	Validator credits.Address
	Entry     CommitteeEntry
}

// Committee returns the committed committee membership.
func (s *Staker) Committee(src kv.GetPutter) ([]CommitteeMember, error) {
	var members []CommitteeMember
	err := s.IterateCommittee(src, func(validator credits.Address, entry *CommitteeEntry) error {
		members = append(members, CommitteeMember{Validator: validator, Entry: *entry})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return members, nil
}

// IterateCommittee walks the committed committee entries.
// Staged writes of the current block are not visible.
func (s *Staker) IterateCommittee(src kv.GetPutter, fn func(credits.Address, *CommitteeEntry) error) error {
	return s.store.committee.IterateCommitted(src, func(key []byte, entry *CommitteeEntry) error {
		return fn(credits.BytesToAddress(key), entry)
	})
}

// IterateBonds walks the committed bond entries.
func (s *Staker) IterateBonds(src kv.GetPutter, fn func(credits.Address, *BondEntry) error) error {
	return s.store.bonds.IterateCommitted(src, func(key []byte, entry *BondEntry) error {
		return fn(credits.BytesToAddress(key), entry)
	})
}

//
// Setters - state change
//

// SetValidatorState toggles whether the validator accepts new bonded stake.
// A closed validator still accepts unbonds.
func (s *Staker) SetValidatorState(validator credits.Address, open bool) error {
	entry, err := s.store.GetCommitteeEntry(validator)
	if err != nil {
		return err
	}
	if entry.IsOpen == open {
		return nil
	}
	entry.IsOpen = open
	if err := s.store.SetCommitteeEntry(validator, entry); err != nil {
		return err
	}
	logger.Info("validator state changed", "validator", validator, "open", open)
	return nil
}
