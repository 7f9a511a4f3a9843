// Copyright (c) 2026 The CreditLedger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reverts defines the failure classes of ledger state transitions.
// Every class aborts the triggering call the same way; the kind only tells
// the submitter why.
package reverts

import (
	"errors"
	"fmt"
)

// Kind classifies a revert.
type Kind int

const (
	// KindPrecondition an explicit equality/threshold assertion failed.
	KindPrecondition Kind = iota
	// KindArithmetic a checked add/subtract would overflow/underflow.
	KindArithmetic
	// KindNotFound a required mapping entry is absent.
	KindNotFound
)

// ErrRevert aborts a state transition and discards its staged writes.
type ErrRevert struct {
	kind    Kind
	message string
}

func (e *ErrRevert) Error() string {
	return e.message
}

// Kind returns the failure class.
func (e *ErrRevert) Kind() Kind {
	return e.kind
}

// Precondition creates a precondition-failure revert.
func Precondition(message string) *ErrRevert {
	return &ErrRevert{KindPrecondition, message}
}

// Preconditionf creates a precondition-failure revert with a formatted message.
func Preconditionf(format string, args ...any) *ErrRevert {
	return &ErrRevert{KindPrecondition, fmt.Sprintf(format, args...)}
}

// Arithmetic creates an arithmetic-failure revert.
func Arithmetic(message string) *ErrRevert {
	return &ErrRevert{KindArithmetic, message}
}

// NotFound creates a not-found revert.
func NotFound(message string) *ErrRevert {
	return &ErrRevert{KindNotFound, message}
}

// IsRevertErr returns whether err (or anything it wraps) is a revert.
func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}

func isKind(err error, kind Kind) bool {
	var ve *ErrRevert
	if !errors.As(err, &ve) {
		return false
	}
	return ve.kind == kind
}

// IsPrecondition returns whether err is a precondition-failure revert.
func IsPrecondition(err error) bool {
	return isKind(err, KindPrecondition)
}

// IsArithmetic returns whether err is an arithmetic-failure revert.
func IsArithmetic(err error) bool {
	return isKind(err, KindArithmetic)
}

// IsNotFound returns whether err is a not-found revert.
func IsNotFound(err error) bool {
	return isKind(err, KindNotFound)
}
