// Package recurring mines a workspace's transaction history for
// subscription-like charges and income that repeat at a roughly fixed
// interval.
package recurring

import (
	"time"

	"github.com/google/uuid"

	"github.com/mfpinhal/extrato/internal/transaction"
)

// Frequency classifies the interval of a recurring group.
type Frequency string

const (
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// canonicalDays returns the nominal interval of a frequency, the yardstick
// for the gap-consistency filter.
func (f Frequency) canonicalDays() float64 {
	switch f {
	case FrequencyWeekly:
		return 7
	case FrequencyMonthly:
		return 30
	case FrequencyYearly:
		return 365
	}

	return 0
}

// Pattern is a persisted recurring pattern, scoped to a workspace. Member
// transactions reference it by foreign key; re-running detection refreshes
// the count and average in place rather than inserting duplicates.
type Pattern struct {
	ID                 uuid.UUID
	WorkspaceID        int64
	DescriptionPattern string
	Frequency          Frequency
	Type               transaction.Type
	AvgAmount          int64
	OccurrenceCount    int
	IsActive           bool
	CreatedAt          *time.Time
	UpdatedAt          *time.Time
}

// DetectedPattern is one accepted group from a detection run, new or
// refreshed.
type DetectedPattern struct {
	DescriptionPattern string
	Frequency          Frequency
	Type               transaction.Type
	AvgAmount          int64
	TransactionIDs     []uuid.UUID
}

// Result summarizes a detection run. Detected counts only newly created
// patterns; Patterns lists every accepted group.
type Result struct {
	Detected int
	Patterns []DetectedPattern
}
