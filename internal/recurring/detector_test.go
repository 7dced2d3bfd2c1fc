package recurring

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfpinhal/extrato/internal/transaction"
)

func tx(desc string, amount int64, typ transaction.Type, daysFromStart int) *transaction.Transaction {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	return &transaction.Transaction{
		ID:          uuid.New(),
		Description: desc,
		Amount:      amount,
		Type:        typ,
		Date:        start.AddDate(0, 0, daysFromStart),
	}
}

func TestDetectGroups_MonthlyWithJitter(t *testing.T) {
	txs := []*transaction.Transaction{
		tx("NETFLIX.COM", 1499, transaction.TypeExpense, 0),
		tx("NETFLIX.COM", 1499, transaction.TypeExpense, 31),
		tx("NETFLIX.COM", 1499, transaction.TypeExpense, 59),
		tx("NETFLIX.COM", 1499, transaction.TypeExpense, 91),
	}

	patterns := detectGroups(txs)
	require.Len(t, patterns, 1)

	assert.Equal(t, "NETFLIX.COM", patterns[0].DescriptionPattern)
	assert.Equal(t, FrequencyMonthly, patterns[0].Frequency)
	assert.Equal(t, transaction.TypeExpense, patterns[0].Type)
	assert.Equal(t, int64(1499), patterns[0].AvgAmount)
	assert.Len(t, patterns[0].TransactionIDs, 4)
}

func TestDetectGroups_IrregularSpacingRejected(t *testing.T) {
	// Mean gap lands in the monthly band but the spacing is noise:
	// gaps of 9, 9, 81 and 4 days.
	txs := []*transaction.Transaction{
		tx("RANDOM SHOP", 500, transaction.TypeExpense, 0),
		tx("RANDOM SHOP", 500, transaction.TypeExpense, 9),
		tx("RANDOM SHOP", 500, transaction.TypeExpense, 18),
		tx("RANDOM SHOP", 500, transaction.TypeExpense, 99),
		tx("RANDOM SHOP", 500, transaction.TypeExpense, 103),
	}

	assert.Empty(t, detectGroups(txs))
}

func TestDetectGroups_RequiresThreeOccurrences(t *testing.T) {
	txs := []*transaction.Transaction{
		tx("SPOTIFY", 699, transaction.TypeExpense, 0),
		tx("SPOTIFY", 699, transaction.TypeExpense, 30),
	}

	assert.Empty(t, detectGroups(txs))
}

func TestDetectGroups_WeeklyAndYearlyBands(t *testing.T) {
	txs := []*transaction.Transaction{
		tx("PADEL CLUBE", 1000, transaction.TypeExpense, 0),
		tx("PADEL CLUBE", 1000, transaction.TypeExpense, 7),
		tx("PADEL CLUBE", 1000, transaction.TypeExpense, 14),
		tx("PADEL CLUBE", 1000, transaction.TypeExpense, 21),
		tx("SEGURO ANUAL", 12000, transaction.TypeExpense, 0),
		tx("SEGURO ANUAL", 12000, transaction.TypeExpense, 365),
		tx("SEGURO ANUAL", 12000, transaction.TypeExpense, 730),
	}

	patterns := detectGroups(txs)
	require.Len(t, patterns, 2)

	assert.Equal(t, FrequencyWeekly, patterns[0].Frequency)
	assert.Equal(t, FrequencyYearly, patterns[1].Frequency)
}

func TestDetectGroups_GapOutsideAllBandsRejected(t *testing.T) {
	txs := []*transaction.Transaction{
		tx("QUINZENAL", 1000, transaction.TypeExpense, 0),
		tx("QUINZENAL", 1000, transaction.TypeExpense, 15),
		tx("QUINZENAL", 1000, transaction.TypeExpense, 30),
		tx("QUINZENAL", 1000, transaction.TypeExpense, 45),
	}

	assert.Empty(t, detectGroups(txs))
}

func TestDetectGroups_SplitsByDirection(t *testing.T) {
	txs := []*transaction.Transaction{
		tx("GINASIO FITUP", 3000, transaction.TypeExpense, 0),
		tx("GINASIO FITUP", 3000, transaction.TypeExpense, 30),
		tx("GINASIO FITUP", 3000, transaction.TypeExpense, 60),
		tx("GINASIO FITUP", 3000, transaction.TypeIncome, 1),
		tx("GINASIO FITUP", 3000, transaction.TypeIncome, 31),
		tx("GINASIO FITUP", 3000, transaction.TypeIncome, 61),
	}

	patterns := detectGroups(txs)
	require.Len(t, patterns, 2)

	assert.Equal(t, transaction.TypeExpense, patterns[0].Type)
	assert.Equal(t, transaction.TypeIncome, patterns[1].Type)
}

func TestDetectGroups_NormalizationGroupsVaryingReferences(t *testing.T) {
	txs := []*transaction.Transaction{
		tx("EDP REF 123456789 01/01/2026", 4200, transaction.TypeExpense, 0),
		tx("EDP REF 987654321 01/02/2026", 4300, transaction.TypeExpense, 31),
		tx("EDP REF 456789123 01/03/2026", 4100, transaction.TypeExpense, 59),
	}

	patterns := detectGroups(txs)
	require.Len(t, patterns, 1)

	assert.Equal(t, "EDP REF", patterns[0].DescriptionPattern)
	assert.Equal(t, int64(4200), patterns[0].AvgAmount)
}

func TestDetectGroups_EmptyHistory(t *testing.T) {
	assert.Empty(t, detectGroups(nil))
}

func TestNormalizeDescription(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Netflix.com 01/02/2026", "NETFLIX.COM"},
		{"edp ref 123456789", "EDP REF"},
		{"MBWAY  2026-01-05   transfer", "MBWAY TRANSFER"},
		{"Pagamento 12345", "PAGAMENTO 12345"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeDescription(tt.in))
		})
	}
}
