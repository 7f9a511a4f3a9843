// Copyright (c) 2026 The CreditLedger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package record implements the private value container of the ledger.
// A record is a single-use bearer token: each operation consumes its inputs
// and produces fresh outputs, and total value is conserved except for
// declared fees. Authentication and double-spend prevention belong to the
// external proof system; this package only does the value arithmetic.
package record

import (
	"encoding/binary"

	"github.com/creditledger/credits/credits"
	"github.com/creditledger/credits/reverts"
)

// Record holds private value bound to an owner.
type Record struct {
	Owner        credits.Address
	Microcredits uint64
	Nonce        credits.Bytes32
}

// IsZero returns whether the record is the zero value.
func (r Record) IsZero() bool {
	return r.Owner.IsZero() && r.Microcredits == 0 && r.Nonce.IsZero()
}

// nextNonce derives a child nonce from consumed inputs. The derivation only
// needs to be deterministic per lineage; uniqueness is owned by the proof
// system upstream.
func nextNonce(tag string, parent credits.Bytes32, owner credits.Address, amount uint64) credits.Bytes32 {
	var amt [8]byte
	binary.BigEndian.PutUint64(amt[:], amount)
	return credits.Blake2b([]byte(tag), parent.Bytes(), owner.Bytes(), amt[:])
}

// Mint creates a record out of public value. Used by the public-to-private
// conversion, which burns the equivalent account balance.
func Mint(owner credits.Address, amount uint64, seed ...[]byte) Record {
	data := append([][]byte{[]byte("mint"), owner.Bytes()}, seed...)
	return Record{
		Owner:        owner,
		Microcredits: amount,
		Nonce:        credits.Blake2b(data...),
	}
}

// Transfer consumes the input record and produces a record for the receiver
// plus a change record for the sender. Value is conserved exactly.
func Transfer(in Record, to credits.Address, amount uint64) (sent, change Record, err error) {
	remaining, ok := credits.SafeSub(in.Microcredits, amount)
	if !ok {
		return Record{}, Record{}, reverts.Arithmetic("insufficient record value")
	}
	sent = Record{
		Owner:        to,
		Microcredits: amount,
		Nonce:        nextNonce("transfer.sent", in.Nonce, to, amount),
	}
	change = Record{
		Owner:        in.Owner,
		Microcredits: remaining,
		Nonce:        nextNonce("transfer.change", in.Nonce, in.Owner, remaining),
	}
	return sent, change, nil
}

// Join consumes two records of the same owner and produces one holding the sum.
func Join(a, b Record) (Record, error) {
	if a.Owner != b.Owner {
		return Record{}, reverts.Precondition("cannot join records of different owners")
	}
	sum, ok := credits.SafeAdd(a.Microcredits, b.Microcredits)
	if !ok {
		return Record{}, reverts.Arithmetic("record value overflow")
	}
	return Record{
		Owner:        a.Owner,
		Microcredits: sum,
		Nonce:        credits.Blake2b([]byte("join"), a.Nonce.Bytes(), b.Nonce.Bytes()),
	}, nil
}

// Split consumes the input record and produces two records whose amounts sum
// to the input minus the flat split fee. The first output holds amount, the
// second the remainder.
func Split(in Record, amount uint64) (first, second Record, err error) {
	afterFee, ok := credits.SafeSub(in.Microcredits, credits.SplitFee)
	if !ok {
		return Record{}, Record{}, reverts.Arithmetic("record value below split fee")
	}
	remainder, ok := credits.SafeSub(afterFee, amount)
	if !ok {
		return Record{}, Record{}, reverts.Arithmetic("insufficient record value")
	}
	first = Record{
		Owner:        in.Owner,
		Microcredits: amount,
		Nonce:        nextNonce("split.first", in.Nonce, in.Owner, amount),
	}
	second = Record{
		Owner:        in.Owner,
		Microcredits: remainder,
		Nonce:        nextNonce("split.second", in.Nonce, in.Owner, remainder),
	}
	return first, second, nil
}

// Fee consumes the input record, deducts base+priority and produces a change
// record. The base fee and the deployment-or-execution id must be nonzero.
func Fee(in Record, baseFee, priorityFee uint64, id credits.Bytes32) (Record, error) {
	if baseFee == 0 {
		return Record{}, reverts.Precondition("base fee must be nonzero")
	}
	if id.IsZero() {
		return Record{}, reverts.Precondition("deployment or execution id must be nonzero")
	}
	total, ok := credits.SafeAdd(baseFee, priorityFee)
	if !ok {
		return Record{}, reverts.Arithmetic("fee overflow")
	}
	remaining, ok := credits.SafeSub(in.Microcredits, total)
	if !ok {
		return Record{}, reverts.Arithmetic("fee exceeds record value")
	}
	return Record{
		Owner:        in.Owner,
		Microcredits: remaining,
		Nonce:        nextNonce("fee.change", in.Nonce, in.Owner, remaining),
	}, nil
}

// Burn consumes the input record revealing amount for the public side and
// produces the private change record. Used by the private-to-public
// conversion, which credits the equivalent account balance.
func Burn(in Record, amount uint64) (Record, error) {
	remaining, ok := credits.SafeSub(in.Microcredits, amount)
	if !ok {
		return Record{}, reverts.Arithmetic("insufficient record value")
	}
	return Record{
		Owner:        in.Owner,
		Microcredits: remaining,
		Nonce:        nextNonce("burn.change", in.Nonce, in.Owner, remaining),
	}, nil
}
