package telegram

import (
	"fmt"
	"strings"
)

// FormatPriceAlert formats an emitted price alert as a Markdown message.
func FormatPriceAlert(symbol, direction string, previous, current, change, percent float64) string {
	icon := "🔴"
	if direction == "UP" {
		icon = "🟢"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s *Stock Alert: %s*\n\n", icon, symbol))
	b.WriteString(fmt.Sprintf("%s is %s by %.2f (%.2f%%)\n", symbol, direction, change, percent))
	b.WriteString(fmt.Sprintf("Previous: %.2f → Current: %.2f\n", previous, current))
	return b.String()
}
