package recurring

import (
	"regexp"
	"strings"
)

var (
	// Dates embedded in descriptions (DD/MM/YYYY or ISO) vary per occurrence
	// and would split otherwise identical charges into separate groups.
	datePattern = regexp.MustCompile(`\b(\d{2}/\d{2}/\d{4}|\d{4}-\d{2}-\d{2})\b`)

	// Digit runs of six or more are reference numbers, not merchant identity.
	refPattern = regexp.MustCompile(`\d{6,}`)
)

// normalizeDescription reduces a transaction description to a grouping key:
// dates and reference numbers stripped, whitespace collapsed, uppercased.
func normalizeDescription(desc string) string {
	s := datePattern.ReplaceAllString(desc, "")
	s = refPattern.ReplaceAllString(s, "")
	s = strings.Join(strings.Fields(s), " ")

	return strings.ToUpper(s)
}
