package transaction

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Type represents the direction of a transaction (income or expense).
// Amounts are always stored as non-negative cents; direction is carried
// solely by this field.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

var (
	ErrNotFound           = errors.New("transaction not found")
	ErrDuplicateStatement = errors.New("statement already imported")
)

// Transaction represents a persisted financial transaction inside a workspace.
type Transaction struct {
	ID                  uuid.UUID
	WorkspaceID         int64
	Bank                string
	Amount              int64 // cents, always >= 0
	Type                Type
	Description         string
	RawDescription      string
	Date                time.Time
	ValueDate           time.Time
	Balance             *int64 // running balance after the movement, cents
	CategoryID          *uuid.UUID
	CategoryName        string // loaded via JOIN
	ManuallyCategorized bool
	DirectionInferred   bool
	RecurringPatternID  *uuid.UUID
	FileHash            string
	CreatedAt           time.Time
	UpdatedAt           *time.Time
	DeletedAt           *time.Time
}
