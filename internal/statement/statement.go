// Package statement turns bank statement documents into parsed transactions.
//
// Each supported bank has its own row grammar over the reconstructed text
// lines of the document; the parsers share the European amount format and the
// same failure semantics: rows that do not fit the grammar are skipped, and a
// result with zero transactions is valid.
package statement

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mfpinhal/extrato/internal/transaction"
)

// Bank identifies a supported bank. The set is a closed registry; parsing an
// unknown identifier fails with ErrUnknownBank.
type Bank string

const (
	BankCGD        Bank = "cgd"
	BankBCP        Bank = "bcp"
	BankActivoBank Bank = "activobank"
)

var ErrUnknownBank = errors.New("unknown bank")

// ParseBank validates a bank identifier coming from the request layer.
func ParseBank(s string) (Bank, error) {
	switch Bank(s) {
	case BankCGD, BankBCP, BankActivoBank:
		return Bank(s), nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownBank, s)
}

// Banks returns all registered bank identifiers.
func Banks() []Bank {
	return []Bank{BankCGD, BankBCP, BankActivoBank}
}

// ParsedTransaction is one recognized statement row. Amount is the absolute
// value in cents; direction is carried solely by Type. The suggestion fields
// are filled by the category matcher, never by a parser.
type ParsedTransaction struct {
	Date        time.Time
	ValueDate   time.Time
	Description string
	Amount      int64
	Balance     *int64
	Type        transaction.Type
	RawText     string

	// DirectionInferred marks rows whose income/expense direction came from
	// the keyword fallback rather than a sign or balance delta, so the user
	// can review them before confirming the import.
	DirectionInferred bool

	SuggestedCategoryID   *uuid.UUID
	SuggestedCategoryName string
}

// ParseResult is the outcome of parsing one statement document.
type ParseResult struct {
	Bank         Bank
	Transactions []ParsedTransaction
	PeriodStart  *time.Time
	PeriodEnd    *time.Time

	// FileHash is the hex sha256 of the raw input bytes, computed regardless
	// of parse outcome. The store uses it to deduplicate repeat uploads.
	FileHash string
}
