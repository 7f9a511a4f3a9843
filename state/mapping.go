// Copyright (c) 2026 The CreditLedger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"reflect"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/creditledger/credits/kv"
	"github.com/creditledger/credits/reverts"
)

// Key constrains mapping key types to byte-convertible identifiers.
type Key interface {
	Bytes() []byte
}

// Mapping is a typed key/value mapping over the ledger state, similar to a
// mapping declared by an on-chain program. Values are rlp-encoded.
type Mapping[K Key, V any] struct {
	state *State
	name  string
}

// NewMapping creates a mapping under the given name.
func NewMapping[K Key, V any](state *State, name string) *Mapping[K, V] {
	return &Mapping[K, V]{state: state, name: name}
}

// Name returns the mapping name.
func (m *Mapping[K, V]) Name() string {
	return m.name
}

// Bucket returns the committed key space of the mapping.
func (m *Mapping[K, V]) Bucket() kv.Bucket {
	return kv.Bucket(m.name + "/")
}

func (m *Mapping[K, V]) key(k K) []byte {
	return append([]byte(m.name+"/"), k.Bytes()...)
}

// Get returns the value bound to key, or a not-found revert when absent.
func (m *Mapping[K, V]) Get(key K) (value V, err error) {
	raw, found, err := m.state.Get(m.key(key))
	if err != nil {
		return value, err
	}
	if !found {
		return value, reverts.NotFound("no entry in " + m.name)
	}
	return m.decode(raw)
}

// GetOr returns the value bound to key, or def when absent.
func (m *Mapping[K, V]) GetOr(key K, def V) (V, error) {
	raw, found, err := m.state.Get(m.key(key))
	if err != nil {
		return def, err
	}
	if !found {
		return def, nil
	}
	return m.decode(raw)
}

// Set binds value to key.
func (m *Mapping[K, V]) Set(key K, value V) error {
	raw, err := rlp.EncodeToBytes(value)
	if err != nil {
		return &Error{err}
	}
	m.state.Set(m.key(key), raw)
	return nil
}

// Remove unbinds key.
func (m *Mapping[K, V]) Remove(key K) {
	m.state.Delete(m.key(key))
}

// Contains returns whether key is bound.
func (m *Mapping[K, V]) Contains(key K) (bool, error) {
	return m.state.Exists(m.key(key))
}

// IterateCommitted walks the committed entries of the mapping, bypassing any
// staged writes. Used for offline inspection and invariant checks.
func (m *Mapping[K, V]) IterateCommitted(src kv.GetPutter, fn func(keyBytes []byte, value V) error) error {
	bkt := m.Bucket().NewGetPutter(src)
	it := bkt.NewIterator(kv.Range{})
	defer it.Release()
	for it.Next() {
		value, err := m.decode(it.Value())
		if err != nil {
			return err
		}
		key := make([]byte, len(it.Key()))
		copy(key, it.Key())
		if err := fn(key, value); err != nil {
			return err
		}
	}
	return it.Error()
}

func (m *Mapping[K, V]) decode(raw []byte) (value V, err error) {
	if reflect.ValueOf(&value).Elem().Kind() == reflect.Ptr {
		value = reflect.New(reflect.TypeOf(value).Elem()).Interface().(V)
	}
	if err := rlp.DecodeBytes(raw, &value); err != nil {
		return value, &Error{err}
	}
	return value, nil
}

// Counter is a singleton u32 cell in the ledger state.
type Counter struct {
	state *State
	key   []byte
}

// NewCounter creates a counter under the given name.
func NewCounter(state *State, name string) *Counter {
	return &Counter{state: state, key: []byte("counter/" + name)}
}

// Get returns the counter value, zero when unset.
func (c *Counter) Get() (uint32, error) {
	raw, found, err := c.state.Get(c.key)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, nil
	}
	var v uint32
	if err := rlp.DecodeBytes(raw, &v); err != nil {
		return 0, &Error{err}
	}
	return v, nil
}

// Set stores the counter value.
func (c *Counter) Set(v uint32) error {
	raw, err := rlp.EncodeToBytes(v)
	if err != nil {
		return &Error{err}
	}
	c.state.Set(c.key, raw)
	return nil
}
