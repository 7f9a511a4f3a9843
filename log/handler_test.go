// Copyright (c) 2026 The CreditLedger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTerminalHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(NewTerminalHandler(&buf, LevelDebug, false))

	logger.Info("bonded", "staker", "0xabc", "amount", uint64(1_000_000))
	out := buf.String()
	assert.True(t, strings.Contains(out, "[INFO]"), out)
	assert.True(t, strings.Contains(out, "bonded"), out)
	assert.True(t, strings.Contains(out, "staker=0xabc"), out)
	assert.True(t, strings.Contains(out, "amount=1000000"), out)
}

func TestLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(NewTerminalHandler(&buf, LevelInfo, false))

	logger.Debug("hidden")
	assert.Equal(t, "", buf.String())

	logger.Warn("shown")
	assert.True(t, strings.Contains(buf.String(), "[WARN]"))
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	SetRootHandler(NewTerminalHandler(&buf, LevelDebug, false))
	defer SetRootHandler(DiscardHandler())

	WithContext("pkg", "staking").Info("ready")
	assert.True(t, strings.Contains(buf.String(), "pkg=staking"))
}
