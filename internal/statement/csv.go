package statement

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	enc "github.com/mfpinhal/extrato/internal/encoding"
	"github.com/mfpinhal/extrato/internal/transaction"
)

// csvAmountMode determines how amounts are extracted from a CSV row.
type csvAmountMode int

const (
	// csvAmountSingle means one signed column (e.g. "Montante" with "-10,00").
	csvAmountSingle csvAmountMode = iota
	// csvAmountSplit means separate debit and credit columns.
	csvAmountSplit
)

// csvProfile describes the column layout of a CGD CSV export format.
// Adding a new format is just adding a new profile to cgdCSVProfiles.
type csvProfile struct {
	Name         string
	DateCol      string
	ValueDateCol string // optional; Date is reused when absent
	DescCol      string
	AmountMode   csvAmountMode
	AmountCol    string // used when AmountMode == csvAmountSingle
	DebitCol     string // used when AmountMode == csvAmountSplit
	CreditCol    string // used when AmountMode == csvAmountSplit
	BalanceCol   string // optional
}

// requiredCols returns the column names that must be present for this profile to match.
func (p csvProfile) requiredCols() []string {
	cols := []string{p.DateCol, p.DescCol}

	switch p.AmountMode {
	case csvAmountSingle:
		cols = append(cols, p.AmountCol)
	case csvAmountSplit:
		cols = append(cols, p.DebitCol, p.CreditCol)
	}

	return cols
}

// cgdCSVProfiles is the ordered list of CGD export formats to try during
// auto-detection. More specific profiles come first to avoid false matches.
var cgdCSVProfiles = []csvProfile{
	{
		Name:       "cartão",
		DateCol:    "Data",
		DescCol:    "Descrição",
		AmountMode: csvAmountSplit,
		DebitCol:   "Débito",
		CreditCol:  "Crédito",
	},
	{
		Name:         "extrato",
		DateCol:      "Data mov.",
		ValueDateCol: "Data valor",
		DescCol:      "Descrição",
		AmountMode:   csvAmountSingle,
		AmountCol:    "Movimento",
		BalanceCol:   "Saldo contabilístico após movimento",
	},
	{
		Name:         "conta",
		DateCol:      "Data mov.",
		ValueDateCol: "Data-valor",
		DescCol:      "Descrição",
		AmountMode:   csvAmountSingle,
		AmountCol:    "Montante",
		BalanceCol:   "Saldo contabilístico após movimento",
	},
}

// parseCGDCSV reads a CGD bank CSV export into parsed transactions. The
// export format (conta, extrato, cartão) is auto-detected by matching column
// headers against known profiles; the input encoding is detected and decoded
// to UTF-8 first.
func parseCGDCSV(r io.Reader) ([]ParsedTransaction, period, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, period{}, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, period{}, fmt.Errorf("read csv: %w", err)
	}

	per := csvPeriod(rows)

	profile, cols, headerIdx := detectCSVProfile(rows)
	if profile == nil {
		return nil, period{}, fmt.Errorf("no matching CGD format found: expected columns for conta, extrato, or cartão")
	}

	return parseCSVRows(profile, cols, rows[headerIdx+1:]), per, nil
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

// detectCSVProfile scans rows for a header that matches a known profile.
// Returns the matched profile, column index map, and header row index.
func detectCSVProfile(rows [][]string) (*csvProfile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		for i := range cgdCSVProfiles {
			if matchesCSVProfile(&cgdCSVProfiles[i], cols) {
				return &cgdCSVProfiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

// matchesCSVProfile checks if all required columns of a profile are present.
func matchesCSVProfile(p *csvProfile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// csvPeriod finds the statement date range in the export's metadata rows
// (CGD writes an "Intervalo de" row above the column header).
func csvPeriod(rows [][]string) period {
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		trimmed := make([]string, 0, len(row))
		for _, cell := range row {
			trimmed = append(trimmed, strings.TrimSpace(cell))
		}

		lines = append(lines, strings.Join(trimmed, " "))
	}

	return extractPeriod(cgdPeriod, cgdDateLayout, lines)
}

// parseCSVRows extracts transactions from data rows using the matched
// profile. Rows without a parseable date (metadata, footers) or without a
// description are dropped.
func parseCSVRows(p *csvProfile, cols colIndex, rows [][]string) []ParsedTransaction {
	var txs []ParsedTransaction

	for _, row := range rows {
		date, ok := parseCSVDate(row, cols[p.DateCol])
		if !ok {
			continue
		}

		valueDate := date
		if p.ValueDateCol != "" {
			if vd, ok := parseCSVDate(row, cols[p.ValueDateCol]); ok {
				valueDate = vd
			}
		}

		desc := cellValue(row, cols[p.DescCol])
		if desc == "" {
			continue
		}

		amount, txType, ok := parseCSVAmount(p, cols, row)
		if !ok {
			continue
		}

		var balance *int64

		if p.BalanceCol != "" {
			if idx, exists := cols[p.BalanceCol]; exists {
				if s := cellValue(row, idx); s != "" {
					if b, err := parseEuropeanAmount(s); err == nil {
						balance = &b
					}
				}
			}
		}

		txs = append(txs, ParsedTransaction{
			Date:        date,
			ValueDate:   valueDate,
			Description: collapseWhitespace(desc),
			Amount:      amount,
			Balance:     balance,
			Type:        txType,
			RawText:     strings.Join(row, ";"),
		})
	}

	return txs
}

// parseCSVDate tries to parse a date from the given cell index.
// Returns false for empty cells or unparseable values (footer rows, etc).
func parseCSVDate(row []string, idx int) (time.Time, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return time.Time{}, false
	}

	t, err := time.Parse(cgdDateLayout, s)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

// parseCSVAmount extracts the amount and direction from a row based on the
// profile's amount mode.
func parseCSVAmount(p *csvProfile, cols colIndex, row []string) (int64, transaction.Type, bool) {
	switch p.AmountMode {
	case csvAmountSingle:
		return parseSingleAmount(row, cols[p.AmountCol])
	case csvAmountSplit:
		return parseSplitAmount(row, cols[p.DebitCol], cols[p.CreditCol])
	}

	return 0, "", false
}

// parseSingleAmount handles a single signed amount column.
func parseSingleAmount(row []string, idx int) (int64, transaction.Type, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return 0, "", false
	}

	cents, err := parseEuropeanAmount(s)
	if err != nil || cents == 0 {
		return 0, "", false
	}

	if cents < 0 {
		return -cents, transaction.TypeExpense, true
	}

	return cents, transaction.TypeIncome, true
}

// parseSplitAmount handles separate debit/credit columns.
func parseSplitAmount(row []string, debitIdx, creditIdx int) (int64, transaction.Type, bool) {
	if s := cellValue(row, debitIdx); s != "" {
		cents, err := parseEuropeanAmount(s)
		if err == nil && cents != 0 {
			return abs(cents), transaction.TypeExpense, true
		}
	}

	if s := cellValue(row, creditIdx); s != "" {
		cents, err := parseEuropeanAmount(s)
		if err == nil && cents != 0 {
			return abs(cents), transaction.TypeIncome, true
		}
	}

	return 0, "", false
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
