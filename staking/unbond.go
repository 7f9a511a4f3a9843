// Copyright (c) 2026 The CreditLedger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/creditledger/credits/credits"
	"github.com/creditledger/credits/reverts"
)

// Unbond moves amount of the staker's bonded stake into the time-locked
// unbonding state. A bond left below its role minimum is unbound in full.
// The unlock height is always reset to height+UnbondingPeriod, even when an
// earlier unbond is still maturing.
func (s *Staker) Unbond(staker credits.Address, amount uint64, height uint32) error {
	logger.Debug("unbonding", "staker", staker, "amount", amount, "height", height)

	isValidator, err := s.store.committee.Contains(staker)
	if err != nil {
		return err
	}
	if isValidator {
		err = s.unbondValidator(staker, amount, height)
	} else {
		err = s.unbondDelegator(staker, amount, height)
	}
	if err != nil {
		logger.Info("unbond failed", "staker", staker, "error", err)
		return err
	}
	logger.Info("unbonded", "staker", staker, "amount", amount)
	return nil
}

func (s *Staker) unbondValidator(validator credits.Address, amount uint64, height uint32) error {
	entry, err := s.store.GetCommitteeEntry(validator)
	if err != nil {
		return err
	}
	bond, err := s.store.GetBondEntry(validator)
	if err != nil {
		return err
	}

	newStake, ok := credits.SafeSub(entry.Stake, amount)
	if !ok {
		return reverts.Arithmetic("unbond amount exceeds committee stake")
	}
	newBond, ok := credits.SafeSub(bond.Amount, amount)
	if !ok {
		return reverts.Arithmetic("unbond amount exceeds bonded amount")
	}

	if newBond >= credits.MinValidatorStake {
		// partial decrement, validator stays in the committee
		entry.Stake = newStake
		bond.Amount = newBond
		if err := s.store.SetCommitteeEntry(validator, entry); err != nil {
			return err
		}
		if err := s.store.SetBondEntry(validator, bond); err != nil {
			return err
		}
		return s.accumulateUnbond(validator, amount, height)
	}

	// full exit: a validator carrying delegated stake cannot remove itself;
	// it must close and wait for delegators to leave first
	if newStake != newBond {
		return reverts.Precondition("validator still has delegated stake")
	}
	if err := s.accumulateUnbond(validator, bond.Amount, height); err != nil {
		return err
	}
	return s.removeValidator(validator)
}

func (s *Staker) unbondDelegator(delegator credits.Address, amount uint64, height uint32) error {
	bond, err := s.store.GetBondEntry(delegator)
	if err != nil {
		return err
	}
	entry, err := s.store.GetCommitteeEntry(bond.Validator)
	if err != nil {
		return err
	}

	newBond, ok := credits.SafeSub(bond.Amount, amount)
	if !ok {
		return reverts.Arithmetic("unbond amount exceeds bonded amount")
	}

	if newBond >= credits.MinDelegatorStake {
		// partial decrement
		newStake, ok := credits.SafeSub(entry.Stake, amount)
		if !ok {
			return reverts.Arithmetic("unbond amount exceeds committee stake")
		}
		entry.Stake = newStake
		bond.Amount = newBond
		if err := s.store.SetCommitteeEntry(bond.Validator, entry); err != nil {
			return err
		}
		if err := s.store.SetBondEntry(delegator, bond); err != nil {
			return err
		}
		return s.accumulateUnbond(delegator, amount, height)
	}

	// forced full removal: the whole remaining bond moves to unbonding
	newStake, ok := credits.SafeSub(entry.Stake, bond.Amount)
	if !ok {
		return reverts.Arithmetic("bond amount exceeds committee stake")
	}
	entry.Stake = newStake
	if err := s.store.SetCommitteeEntry(bond.Validator, entry); err != nil {
		return err
	}
	if err := s.accumulateUnbond(delegator, bond.Amount, height); err != nil {
		return err
	}
	return s.removeDelegator(delegator)
}

// UnbondDelegator forcibly unbonds the full stake of a delegator bonded to
// the calling validator. Only a closed validator may shed its delegators,
// and only in full.
func (s *Staker) UnbondDelegator(validator, delegator credits.Address, height uint32) error {
	logger.Debug("force unbonding", "validator", validator, "delegator", delegator, "height", height)

	entry, err := s.store.GetCommitteeEntry(validator)
	if err != nil {
		return err
	}
	if entry.IsOpen {
		return reverts.Precondition("validator must be closed to evict delegators")
	}

	isMember, err := s.store.committee.Contains(delegator)
	if err != nil {
		return err
	}
	if isMember {
		return reverts.Precondition("target is a committee member, not a delegator")
	}

	bond, err := s.store.GetBondEntry(delegator)
	if err != nil {
		return err
	}
	if bond.Validator != validator {
		return reverts.Precondition("delegator is not bonded to the calling validator")
	}

	newStake, ok := credits.SafeSub(entry.Stake, bond.Amount)
	if !ok {
		return reverts.Arithmetic("bond amount exceeds committee stake")
	}
	entry.Stake = newStake
	if err := s.store.SetCommitteeEntry(validator, entry); err != nil {
		return err
	}
	if err := s.accumulateUnbond(delegator, bond.Amount, height); err != nil {
		return err
	}
	if err := s.removeDelegator(delegator); err != nil {
		return err
	}
	logger.Info("force unbonded", "validator", validator, "delegator", delegator, "amount", bond.Amount)
	return nil
}

// accumulateUnbond adds amount to the staker's unbond entry and resets the
// unlock height. Amounts accumulate; the clock does not.
func (s *Staker) accumulateUnbond(staker credits.Address, amount uint64, height uint32) error {
	entry, err := s.store.unbonding.GetOr(staker, &UnbondEntry{})
	if err != nil {
		return err
	}
	sum, ok := credits.SafeAdd(entry.Amount, amount)
	if !ok {
		return reverts.Arithmetic("unbond amount overflow")
	}
	entry.Amount = sum
	entry.UnlockHeight = height + credits.UnbondingPeriod
	return s.store.SetUnbondEntry(staker, entry)
}
