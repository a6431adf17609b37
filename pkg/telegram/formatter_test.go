package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPriceAlert(t *testing.T) {
	msg := FormatPriceAlert("AAPL", "UP", 175.43, 178.50, 3.07, 1.75)

	assert.Contains(t, msg, "🟢")
	assert.Contains(t, msg, "*Stock Alert: AAPL*")
	assert.Contains(t, msg, "AAPL is UP by 3.07 (1.75%)")
	assert.Contains(t, msg, "Previous: 175.43 → Current: 178.50")
}

func TestFormatPriceAlert_Down(t *testing.T) {
	msg := FormatPriceAlert("AAPL", "DOWN", 178.50, 175.43, -3.07, -1.72)

	assert.Contains(t, msg, "🔴")
	assert.Contains(t, msg, "AAPL is DOWN by -3.07 (-1.72%)")
}
