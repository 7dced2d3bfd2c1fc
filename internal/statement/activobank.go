package statement

import (
	"regexp"
	"strings"
	"time"

	"github.com/mfpinhal/extrato/internal/transaction"
)

// activoBankParser reads ActivoBank account statements.
//
// A transaction row carries two placeholder date columns, an ISO movement
// date, the description, the movement amount, and the running balance. The
// amount column is unsigned except for explicit debits, so direction falls
// back first to the balance delta against the previous row and only then to
// keyword heuristics on the description.
type activoBankParser struct{}

var (
	activoRow    = regexp.MustCompile(`^-+\s+-+\s+(\d{4}-\d{2}-\d{2})\s+(.+)$`)
	activoPeriod = regexp.MustCompile(`(?i)Movimentos de\s+(\d{4}-\d{2}-\d{2})\s+a\s+(\d{4}-\d{2}-\d{2})`)
)

const activoDateLayout = "2006-01-02"

// incomeKeywords are best-effort markers of incoming movements (transfers
// received, refunds, reversals). Used only when no balance delta is available.
var incomeKeywords = []string{
	"TRF DE",
	"TRANSF DE",
	"TRANSFERENCIA DE",
	"DEVOLUCAO",
	"DEVOLUÇÃO",
	"REEMBOLSO",
	"ESTORNO",
}

func (activoBankParser) parse(lines []string) ([]ParsedTransaction, period) {
	per := extractPeriod(activoPeriod, activoDateLayout, lines)

	var (
		txs         []ParsedTransaction
		prevBalance *int64
	)

	for _, line := range lines {
		m := activoRow.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		date, err := time.Parse(activoDateLayout, m[1])
		if err != nil {
			continue
		}

		rest := m[2]

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

		txType, inferred := activoDirection(amount, balance, prevBalance, desc)

		if balance != nil {
			prevBalance = balance
		}

		txs = append(txs, ParsedTransaction{
			Date:              date,
			ValueDate:         date,
			Description:       desc,
			Amount:            abs(amount),
			Balance:           balance,
			Type:              txType,
			RawText:           line,
			DirectionInferred: inferred,
		})
	}

	return txs, per
}

// activoDirection resolves the income/expense direction of an unsigned row.
// The fallback order matters: an explicit sign wins, then the balance delta
// against the previous row, then keyword sniffing on the description. Only
// the keyword path is approximate, so only it flags the row for review.
func activoDirection(amount int64, balance, prevBalance *int64, desc string) (transaction.Type, bool) {
	if amount < 0 {
		return transaction.TypeExpense, false
	}

	if balance != nil && prevBalance != nil {
		if *balance > *prevBalance {
			return transaction.TypeIncome, false
		}

		return transaction.TypeExpense, false
	}

	upper := strings.ToUpper(desc)
	for _, kw := range incomeKeywords {
		if strings.Contains(upper, kw) {
			return transaction.TypeIncome, true
		}
	}

	return transaction.TypeExpense, true
}
