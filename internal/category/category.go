// Package category assigns spending categories to transaction descriptions
// using per-bank, per-workspace pattern sets.
package category

import (
	"time"

	"github.com/google/uuid"

	"github.com/mfpinhal/extrato/internal/statement"
)

// Well-known category names. "Income" is suggested unconditionally for income
// transactions; "Other" is the fallback when no pattern wins. Neither is
// required to exist in a workspace.
const (
	NameIncome = "Income"
	NameOther  = "Other"
)

type Category struct {
	ID          uuid.UUID
	WorkspaceID int64
	Name        string
	CreatedAt   *time.Time
}

// Pattern is one categorization rule, scoped to a bank and a workspace.
//
// The pattern string carries a three-way tag and round-trips exactly as
// stored: a leading "!" marks an exclusion, a "regex:" prefix (after any "!")
// makes the remainder a case-insensitive regular expression, and bare text is
// matched case-insensitively on word boundaries.
type Pattern struct {
	ID           int64
	CategoryID   uuid.UUID
	CategoryName string
	WorkspaceID  int64
	Bank         statement.Bank
	Pattern      string
	Priority     int
	CreatedAt    *time.Time
}

// Match is the winning category for a description.
type Match struct {
	CategoryID   uuid.UUID
	CategoryName string
}
