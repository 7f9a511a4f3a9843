// Copyright (c) 2026 The CreditLedger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/creditledger/credits/credits"
	"github.com/creditledger/credits/reverts"
)

// Bond locks amount into the stake of the target validator and debits the
// staker's public balance. A self-bond takes the validator path, anything
// else the delegator path.
func (s *Staker) Bond(staker, validator, withdrawal credits.Address, amount uint64) error {
	logger.Debug("bonding", "staker", staker, "validator", validator, "amount", amount)

	if amount < credits.MinBondAmount {
		return reverts.Precondition("bond amount is below one credit")
	}
	if err := s.bindWithdrawal(staker, withdrawal); err != nil {
		return err
	}

	var err error
	if staker == validator {
		err = s.bondValidator(validator, amount)
	} else {
		err = s.bondDelegator(staker, validator, amount)
	}
	if err != nil {
		logger.Info("bond failed", "staker", staker, "error", err)
		return err
	}

	if err := s.account.Debit(staker, amount); err != nil {
		logger.Info("bond failed", "staker", staker, "error", err)
		return err
	}
	logger.Info("bonded", "staker", staker, "validator", validator, "amount", amount)
	return nil
}

func (s *Staker) bondValidator(validator credits.Address, amount uint64) error {
	isMember, err := s.store.committee.Contains(validator)
	if err != nil {
		return err
	}
	if !isMember {
		if err := s.admitValidator(); err != nil {
			return err
		}
	}

	entry, err := s.store.committee.GetOr(validator, &CommitteeEntry{IsOpen: true})
	if err != nil {
		return err
	}
	if !entry.IsOpen {
		return reverts.Precondition("validator is closed to new stake")
	}

	bond, err := s.store.bonds.GetOr(validator, &BondEntry{Validator: validator})
	if err != nil {
		return err
	}
	if bond.Validator != validator {
		return reverts.Precondition("already bonded as a delegator")
	}

	newStake, ok := credits.SafeAdd(entry.Stake, amount)
	if !ok {
		return reverts.Arithmetic("committee stake overflow")
	}
	newBond, ok := credits.SafeAdd(bond.Amount, amount)
	if !ok {
		return reverts.Arithmetic("bond amount overflow")
	}
	if newBond < credits.MinValidatorStake {
		return reverts.Precondition("bonded amount is below the validator minimum")
	}

	entry.Stake = newStake
	bond.Amount = newBond
	if err := s.store.SetCommitteeEntry(validator, entry); err != nil {
		return err
	}
	return s.store.SetBondEntry(validator, bond)
}

func (s *Staker) bondDelegator(staker, validator credits.Address, amount uint64) error {
	isMember, err := s.store.committee.Contains(staker)
	if err != nil {
		return err
	}
	if isMember {
		return reverts.Precondition("a committee member cannot delegate")
	}

	entry, err := s.store.GetCommitteeEntry(validator)
	if err != nil {
		return err
	}
	if !entry.IsOpen {
		return reverts.Precondition("validator is closed to new stake")
	}

	hasBond, err := s.store.bonds.Contains(staker)
	if err != nil {
		return err
	}
	if !hasBond {
		if err := s.admitDelegator(); err != nil {
			return err
		}
	}

	bond, err := s.store.bonds.GetOr(staker, &BondEntry{Validator: validator})
	if err != nil {
		return err
	}
	if bond.Validator != validator {
		return reverts.Precondition("already bonded to another validator")
	}

	newStake, ok := credits.SafeAdd(entry.Stake, amount)
	if !ok {
		return reverts.Arithmetic("committee stake overflow")
	}
	newBond, ok := credits.SafeAdd(bond.Amount, amount)
	if !ok {
		return reverts.Arithmetic("bond amount overflow")
	}
	if newBond < credits.MinDelegatorStake {
		return reverts.Precondition("bonded amount is below the delegator minimum")
	}

	entry.Stake = newStake
	bond.Amount = newBond
	if err := s.store.SetCommitteeEntry(validator, entry); err != nil {
		return err
	}
	return s.store.SetBondEntry(staker, bond)
}
