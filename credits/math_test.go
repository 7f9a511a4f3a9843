// Copyright (c) 2026 The CreditLedger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package credits

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeAdd(t *testing.T) {
	sum, ok := SafeAdd(1, 2)
	assert.True(t, ok)
	assert.Equal(t, uint64(3), sum)

	_, ok = SafeAdd(math.MaxUint64, 1)
	assert.False(t, ok)

	sum, ok = SafeAdd(math.MaxUint64, 0)
	assert.True(t, ok)
	assert.Equal(t, uint64(math.MaxUint64), sum)
}

func TestSafeSub(t *testing.T) {
	diff, ok := SafeSub(3, 2)
	assert.True(t, ok)
	assert.Equal(t, uint64(1), diff)

	_, ok = SafeSub(0, 1)
	assert.False(t, ok)

	diff, ok = SafeSub(5, 5)
	assert.True(t, ok)
	assert.Equal(t, uint64(0), diff)
}
