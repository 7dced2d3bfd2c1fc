package statement

import (
	"regexp"
	"time"

	"github.com/mfpinhal/extrato/internal/transaction"
)

// bcpParser reads Millennium BCP account statements.
//
// A transaction row starts with two DD.MM.YY dates (movement and value date)
// and ends in three amount columns: debit, credit, and running balance. A
// positive credit with a zero debit is income; anything else is an expense on
// the debit value. Some combined layouts collapse debit/credit into one
// signed column, leaving only two tokens (signed amount and balance).
type bcpParser struct{}

var (
	bcpRow    = regexp.MustCompile(`^(\d{2}\.\d{2}\.\d{2})\s+(\d{2}\.\d{2}\.\d{2})\s+(.+)$`)
	bcpPeriod = regexp.MustCompile(`(?i)Extrato de\s+(\d{2}\.\d{2}\.\d{4})\s+a\s+(\d{2}\.\d{2}\.\d{4})`)
)

const (
	bcpDateLayout   = "02.01.06"
	bcpPeriodLayout = "02.01.2006"
)

func (bcpParser) parse(lines []string) ([]ParsedTransaction, period) {
	per := extractPeriod(bcpPeriod, bcpPeriodLayout, lines)

	var txs []ParsedTransaction

	for _, line := range lines {
		m := bcpRow.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		date, err := time.Parse(bcpDateLayout, m[1])
		if err != nil {
			continue
		}

		valueDate, err := time.Parse(bcpDateLayout, m[2])
		if err != nil {
			continue
		}

		rest := m[3]

		tokens := amountToken.FindAllStringIndex(rest, -1)
		if len(tokens) < 2 {
			continue
		}

		desc := collapseWhitespace(rest[:tokens[0][0]])
		if desc == "" {
			continue
		}

		amount, txType, ok := bcpAmount(rest, tokens)
		if !ok {
			continue
		}

		var balance *int64

		last := tokens[len(tokens)-1]
		if b, err := parseEuropeanAmount(rest[last[0]:last[1]]); err == nil {
			balance = &b
		}

		txs = append(txs, ParsedTransaction{
			Date:        date,
			ValueDate:   valueDate,
			Description: desc,
			Amount:      amount,
			Balance:     balance,
			Type:        txType,
			RawText:     line,
		})
	}

	return txs, per
}

// bcpAmount resolves the amount and direction from the row's amount columns.
func bcpAmount(rest string, tokens [][]int) (int64, transaction.Type, bool) {
	if len(tokens) >= 3 {
		debit, err := parseEuropeanAmount(rest[tokens[0][0]:tokens[0][1]])
		if err != nil {
			return 0, "", false
		}

		credit, err := parseEuropeanAmount(rest[tokens[1][0]:tokens[1][1]])
		if err != nil {
			return 0, "", false
		}

		if credit > 0 && debit == 0 {
			return credit, transaction.TypeIncome, true
		}

		if debit == 0 {
			return 0, "", false
		}

		return abs(debit), transaction.TypeExpense, true
	}

	// A zero single-column amount carries no sign, so the row's direction
	// cannot be resolved.
	amount, err := parseEuropeanAmount(rest[tokens[0][0]:tokens[0][1]])
	if err != nil || amount == 0 {
		return 0, "", false
	}

	if amount > 0 {
		return amount, transaction.TypeIncome, true
	}

	return abs(amount), transaction.TypeExpense, true
}
