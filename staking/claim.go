// Copyright (c) 2026 The CreditLedger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/creditledger/credits/credits"
	"github.com/creditledger/credits/reverts"
)

// Claim releases the staker's matured unbonded value to the bound withdrawal
// address. The withdrawal binding is released once the staker is fully
// exited.
func (s *Staker) Claim(staker credits.Address, height uint32) error {
	logger.Debug("claiming", "staker", staker, "height", height)

	entry, err := s.store.GetUnbondEntry(staker)
	if err != nil {
		return err
	}
	if height < entry.UnlockHeight {
		return reverts.Preconditionf("unbonding is still locked until height %d", entry.UnlockHeight)
	}

	withdrawal, err := s.store.withdraw.Get(staker)
	if err != nil {
		return err
	}
	if err := s.account.Credit(withdrawal, entry.Amount); err != nil {
		return err
	}
	s.store.unbonding.Remove(staker)

	bonded, err := s.store.bonds.Contains(staker)
	if err != nil {
		return err
	}
	if !bonded {
		s.store.withdraw.Remove(staker)
	}

	logger.Info("claimed", "staker", staker, "withdrawal", withdrawal, "amount", entry.Amount)
	return nil
}
