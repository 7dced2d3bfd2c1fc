package statement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfpinhal/extrato/internal/transaction"
)

func TestActivoBankParser_BalanceDeltaDirection(t *testing.T) {
	lines := []string{
		"ACTIVOBANK",
		"Movimentos de 2026-01-01 a 2026-01-31",
		"-- -- 2026-01-05 MENSALIDADE GINASIO 25,00 975,00",
		"-- -- 2026-01-09 JOAO SILVA 100,00 1.075,00",
		"-- -- 2026-01-12 LEVANTAMENTO ATM 50,00 1.025,00",
	}

	txs, per := activoBankParser{}.parse(lines)
	require.Len(t, txs, 3)

	require.NotNil(t, per.start)
	require.NotNil(t, per.end)
	assert.Equal(t, date(2026, 1, 1), *per.start)
	assert.Equal(t, date(2026, 1, 31), *per.end)

	// First row has nothing to compare against, so the keyword fallback
	// resolves it and flags it for review.
	assert.Equal(t, transaction.TypeExpense, txs[0].Type)
	assert.True(t, txs[0].DirectionInferred)

	// From the second row on the balance delta decides.
	assert.Equal(t, transaction.TypeIncome, txs[1].Type)
	assert.False(t, txs[1].DirectionInferred)

	assert.Equal(t, transaction.TypeExpense, txs[2].Type)
	assert.False(t, txs[2].DirectionInferred)
}

func TestActivoBankParser_KeywordFallback(t *testing.T) {
	lines := []string{
		"-- -- 2026-01-05 TRF DE MARIA SANTOS 100,00 1.100,00",
	}

	txs, _ := activoBankParser{}.parse(lines)
	require.Len(t, txs, 1)

	assert.Equal(t, transaction.TypeIncome, txs[0].Type)
	assert.True(t, txs[0].DirectionInferred)
}

func TestActivoBankParser_ExplicitSignWins(t *testing.T) {
	lines := []string{
		"-- -- 2026-01-05 COMPRA FNAC -30,00 995,00",
	}

	txs, _ := activoBankParser{}.parse(lines)
	require.Len(t, txs, 1)

	assert.Equal(t, int64(3000), txs[0].Amount)
	assert.Equal(t, transaction.TypeExpense, txs[0].Type)
	assert.False(t, txs[0].DirectionInferred)
}

func TestActivoBankParser_ValueDateEqualsDate(t *testing.T) {
	lines := []string{
		"-- -- 2026-01-05 COMPRA FNAC -30,00 995,00",
	}

	txs, _ := activoBankParser{}.parse(lines)
	require.Len(t, txs, 1)
	assert.Equal(t, txs[0].Date, txs[0].ValueDate)
}

func TestActivoBankParser_KeepsZeroAmountRows(t *testing.T) {
	lines := []string{
		"-- -- 2026-01-05 COMPRA FNAC -30,00 954,70",
		"-- -- 2026-01-10 ANUIDADE CARTAO 0,00 954,70",
	}

	txs, _ := activoBankParser{}.parse(lines)
	require.Len(t, txs, 2)

	assert.Equal(t, "ANUIDADE CARTAO", txs[1].Description)
	assert.Equal(t, int64(0), txs[1].Amount)

	// Unchanged balance resolves via the delta path, not the keywords.
	assert.Equal(t, transaction.TypeExpense, txs[1].Type)
	assert.False(t, txs[1].DirectionInferred)
}

func TestActivoBankParser_SkipsRowsWithoutISODate(t *testing.T) {
	lines := []string{
		"-- -- 05-01-2026 COMPRA FNAC -30,00 995,00",
		"2026-01-05 COMPRA SEM PLACEHOLDERS -30,00 995,00",
	}

	txs, _ := activoBankParser{}.parse(lines)
	assert.Empty(t, txs)
}
