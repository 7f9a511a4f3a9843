// Copyright (c) 2026 The CreditLedger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestReverts(t *testing.T) {
	revert := Precondition("validator not open")
	assert.Equal(t, "validator not open", revert.Error())
	assert.Equal(t, KindPrecondition, revert.Kind())

	assert.True(t, IsRevertErr(revert))
	assert.False(t, IsRevertErr(nil))
	assert.False(t, IsRevertErr(fmt.Errorf("plain")))
	assert.False(t, IsRevertErr(42))
}

func TestKinds(t *testing.T) {
	assert.True(t, IsPrecondition(Precondition("x")))
	assert.True(t, IsArithmetic(Arithmetic("x")))
	assert.True(t, IsNotFound(NotFound("x")))

	assert.False(t, IsNotFound(Precondition("x")))
	assert.False(t, IsArithmetic(NotFound("x")))
}

func TestWrapped(t *testing.T) {
	wrapped := errors.Wrap(NotFound("no bond entry"), "failed to unbond")
	assert.True(t, IsRevertErr(wrapped))
	assert.True(t, IsNotFound(wrapped))
	assert.Equal(t, "failed to unbond: no bond entry", wrapped.Error())
}

func TestPreconditionf(t *testing.T) {
	err := Preconditionf("committee full: %d members", 10)
	assert.Equal(t, "committee full: 10 members", err.Error())
	assert.True(t, IsPrecondition(err))
}
