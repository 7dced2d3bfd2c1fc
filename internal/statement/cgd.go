package statement

import (
	"regexp"
	"time"

	"github.com/mfpinhal/extrato/internal/transaction"
)

// cgdParser reads Caixa Geral de Depósitos account statements.
//
// A transaction row carries two DD-MM-YYYY dates (movement and value date),
// the description, and two amount columns: the signed movement and the
// running balance after it.
type cgdParser struct{}

var (
	cgdRow    = regexp.MustCompile(`^(\d{2}-\d{2}-\d{4})\s+(\d{2}-\d{2}-\d{4})\s+(.+)$`)
	cgdPeriod = regexp.MustCompile(`Intervalo de\s*:?\s*(\d{2}-\d{2}-\d{4})\s+a\s+(\d{2}-\d{2}-\d{4})`)
)

const cgdDateLayout = "02-01-2006"

func (cgdParser) parse(lines []string) ([]ParsedTransaction, period) {
	per := extractPeriod(cgdPeriod, cgdDateLayout, lines)

	var txs []ParsedTransaction

	for _, line := range lines {
		m := cgdRow.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		date, err := time.Parse(cgdDateLayout, m[1])
		if err != nil {
			continue
		}

		valueDate, err := time.Parse(cgdDateLayout, m[2])
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

		amount, err := parseEuropeanAmount(rest[tokens[0][0]:tokens[0][1]])
		if err != nil {
			continue
		}

		var balance *int64

		last := tokens[len(tokens)-1]
		if b, err := parseEuropeanAmount(rest[last[0]:last[1]]); err == nil {
			balance = &b
		}

		txType := transaction.TypeExpense
		if amount > 0 {
			txType = transaction.TypeIncome
		}

		txs = append(txs, ParsedTransaction{
			Date:        date,
			ValueDate:   valueDate,
			Description: desc,
			Amount:      abs(amount),
			Balance:     balance,
			Type:        txType,
			RawText:     line,
		})
	}

	return txs, per
}
