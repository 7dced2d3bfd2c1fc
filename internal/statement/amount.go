package statement

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// amountToken matches a European-formatted amount inside a statement line:
// optional sign (some layouts put a space after the minus), `.` as thousands
// separator, `,` as decimal separator with exactly two decimals.
var amountToken = regexp.MustCompile(`-?\s?\d{1,3}(?:\.\d{3})*,\d{2}`)

// parseEuropeanAmount parses a European-formatted amount string into cents.
// Format examples: "1.234,56" -> 123456, "-588,74" -> -58874, "10,00" -> 1000.
// Blank or whitespace-only input yields zero; a space between the sign and
// the digits ("- 1.234,56") is tolerated.
func parseEuropeanAmount(s string) (int64, error) {
	clean := strings.TrimSpace(s)
	if clean == "" {
		return 0, nil
	}

	clean = strings.ReplaceAll(clean, " ", "")
	clean = strings.ReplaceAll(clean, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}

	return n
}

// collapseWhitespace normalizes a description to single-space separation.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
