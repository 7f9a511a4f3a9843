// Copyright (c) 2026 The CreditLedger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state implements the persistent key-value ledger state with
// whole-call atomicity. Writes are staged in a journaled overlay and become
// durable only when a stage is committed; a checkpoint revert discards every
// write staged after the checkpoint.
package state

import (
	"fmt"

	"github.com/creditledger/credits/kv"
	"github.com/creditledger/credits/stackedmap"
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// State manages the ledger state.
type State struct {
	src kv.GetPutter
	sm  *stackedmap.StackedMap // keeps revisions of ledger state
}

// New create state object backed by the given kv store.
func New(src kv.GetPutter) *State {
	state := &State{src: src}

	state.sm = stackedmap.New(func(key any) (any, bool, error) {
		v, err := src.Get([]byte(key.(string)))
		if err != nil {
			if src.IsNotFound(err) {
				return []byte(nil), true, nil
			}
			return nil, false, err
		}
		return v, true, nil
	})
	// the bottom level holds writes of the current block; checkpoints stack on top
	state.sm.Push()
	return state
}

// Get returns the raw value for the given key.
// The second return value is false when the key is absent or deleted.
func (s *State) Get(key []byte) ([]byte, bool, error) {
	v, _, err := s.sm.Get(string(key))
	if err != nil {
		return nil, false, &Error{err}
	}
	raw := v.([]byte)
	if len(raw) == 0 {
		return nil, false, nil
	}
	return raw, true, nil
}

// Set stages a raw value write for the given key.
// An empty value marks the key deleted.
func (s *State) Set(key, value []byte) {
	s.sm.Put(string(key), value)
}

// Delete stages removal of the given key.
func (s *State) Delete(key []byte) {
	s.sm.Put(string(key), []byte(nil))
}

// Exists returns whether the given key holds a value.
func (s *State) Exists(key []byte) (bool, error) {
	_, found, err := s.Get(key)
	return found, err
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Stage collects all staged writes into a commitable unit.
func (s *State) Stage() *Stage {
	changes := make(map[string][]byte)
	s.sm.Journal(func(k, v any) bool {
		changes[k.(string)] = v.([]byte)
		return true
	})
	return &Stage{src: s.src, changes: changes}
}

// Stage is the set of uncommitted writes of a state.
type Stage struct {
	src     kv.GetPutter
	changes map[string][]byte
}

// Commit writes all changes to the backing store in one batch.
func (stg *Stage) Commit() error {
	batch := stg.src.NewBatch()
	for k, v := range stg.changes {
		if len(v) == 0 {
			if err := batch.Delete([]byte(k)); err != nil {
				return &Error{err}
			}
			continue
		}
		if err := batch.Put([]byte(k), v); err != nil {
			return &Error{err}
		}
	}
	if err := batch.Write(); err != nil {
		return &Error{err}
	}
	return nil
}
