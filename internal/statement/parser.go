package statement

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// parser is one bank's row grammar over the reconstructed statement lines.
// Lines that do not fit the grammar are skipped; zero transactions is a
// valid outcome.
type parser interface {
	parse(lines []string) ([]ParsedTransaction, period)
}

// period holds the statement's date range as parsed from its header.
// A header without a recognizable range leaves both bounds nil.
type period struct {
	start *time.Time
	end   *time.Time
}

func parserFor(bank Bank) (parser, error) {
	switch bank {
	case BankCGD:
		return cgdParser{}, nil
	case BankBCP:
		return bcpParser{}, nil
	case BankActivoBank:
		return activoBankParser{}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownBank, bank)
}

// extractPeriod runs a bank's period regexp over the joined document text.
// The regexp must capture the start and end date in the given layout.
func extractPeriod(re *regexp.Regexp, layout string, lines []string) period {
	m := re.FindStringSubmatch(strings.Join(lines, "\n"))
	if m == nil {
		return period{}
	}

	start, err := time.Parse(layout, m[1])
	if err != nil {
		return period{}
	}

	end, err := time.Parse(layout, m[2])
	if err != nil {
		return period{}
	}

	return period{start: &start, end: &end}
}
