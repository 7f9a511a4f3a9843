// Copyright (c) 2026 The CreditLedger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/creditledger/credits/credits"
	"github.com/creditledger/credits/metrics"
	"github.com/creditledger/credits/reverts"
)

var (
	metricMembers    = metrics.Gauge("committee_members")
	metricDelegators = metrics.Gauge("delegators")
)

// admitValidator enters a new validator into the committee, enforcing the
// committee size cap.
func (s *Staker) admitValidator() error {
	count, err := s.store.members.Get()
	if err != nil {
		return err
	}
	if count+1 > credits.MaxCommitteeSize {
		return reverts.Preconditionf("committee is full: %d members", count)
	}
	if err := s.store.members.Set(count + 1); err != nil {
		return err
	}
	metricMembers.Set(int64(count + 1))
	return nil
}

// admitDelegator registers a new delegator, enforcing the global delegator cap.
func (s *Staker) admitDelegator() error {
	count, err := s.store.delegators.Get()
	if err != nil {
		return err
	}
	if count+1 > credits.MaxDelegators {
		return reverts.Preconditionf("too many delegators: %d", count)
	}
	if err := s.store.delegators.Set(count + 1); err != nil {
		return err
	}
	metricDelegators.Set(int64(count + 1))
	return nil
}

// removeValidator drops a validator from the committee. Only legal when its
// committee stake equals its own bond, i.e. there is no delegated stake left.
func (s *Staker) removeValidator(validator credits.Address) error {
	count, err := s.store.members.Get()
	if err != nil {
		return err
	}
	s.store.committee.Remove(validator)
	s.store.bonds.Remove(validator)
	if err := s.store.members.Set(count - 1); err != nil {
		return err
	}
	metricMembers.Set(int64(count - 1))
	return nil
}

// removeDelegator drops a delegator's bond.
func (s *Staker) removeDelegator(delegator credits.Address) error {
	count, err := s.store.delegators.Get()
	if err != nil {
		return err
	}
	s.store.bonds.Remove(delegator)
	if err := s.store.delegators.Set(count - 1); err != nil {
		return err
	}
	metricDelegators.Set(int64(count - 1))
	return nil
}

// bindWithdrawal binds the staker's withdrawal address on first bond and
// rejects a mismatching address afterwards.
func (s *Staker) bindWithdrawal(staker, withdrawal credits.Address) error {
	bound, err := s.store.withdraw.GetOr(staker, withdrawal)
	if err != nil {
		return err
	}
	if bound != withdrawal {
		return reverts.Precondition("withdrawal address does not match the bound address")
	}
	return s.store.withdraw.Set(staker, withdrawal)
}
