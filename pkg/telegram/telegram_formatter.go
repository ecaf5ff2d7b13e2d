package telegram

import (
	"fmt"
	"strings"

	"golang-stock-resultstore/internal/results/dto"
)

// FormatWriteSummary formats a batch write summary as a Markdown message for
// Telegram.
func FormatWriteSummary(summary *dto.WriteSummary, total int) string {
	var b strings.Builder
	b.WriteString("📊 *Database Write Summary*\n\n")
	b.WriteString(fmt.Sprintf("✅ Successfully wrote %d stocks\n", summary.SuccessCount))
	b.WriteString(fmt.Sprintf("❌ Failed to write %d stocks\n", summary.ErrorCount))
	b.WriteString(fmt.Sprintf("📦 Total records: %d", total))
	return b.String()
}
