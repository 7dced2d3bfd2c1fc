package statement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfpinhal/extrato/internal/transaction"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestCGDParser(t *testing.T) {
	lines := []string{
		"CAIXA GERAL DE DEPOSITOS",
		"Conta 0000 - EUR - Conta Extracto",
		"Intervalo de 01-01-2026 a 31-01-2026",
		"Data mov. Data valor Descrição Montante Saldo",
		"30-01-2026 30-01-2026 INSTITUTO GESTAO FINA -588,74 48.825,46",
		"09-01-2026 09-01-2026 TFI Wise 8.608,52 52.532,78",
		"Saldo contabilístico final 48.825,46",
	}

	txs, per := cgdParser{}.parse(lines)
	require.Len(t, txs, 2)

	require.NotNil(t, per.start)
	require.NotNil(t, per.end)
	assert.Equal(t, date(2026, 1, 1), *per.start)
	assert.Equal(t, date(2026, 1, 31), *per.end)

	assert.Equal(t, date(2026, 1, 30), txs[0].Date)
	assert.Equal(t, date(2026, 1, 30), txs[0].ValueDate)
	assert.Equal(t, "INSTITUTO GESTAO FINA", txs[0].Description)
	assert.Equal(t, int64(58874), txs[0].Amount)
	assert.Equal(t, transaction.TypeExpense, txs[0].Type)
	require.NotNil(t, txs[0].Balance)
	assert.Equal(t, int64(4882546), *txs[0].Balance)
	assert.False(t, txs[0].DirectionInferred)

	assert.Equal(t, "TFI Wise", txs[1].Description)
	assert.Equal(t, int64(860852), txs[1].Amount)
	assert.Equal(t, transaction.TypeIncome, txs[1].Type)
}

func TestCGDParser_AmountsAlwaysNonNegative(t *testing.T) {
	lines := []string{
		"05-01-2026 05-01-2026 COMPRA CONTINENTE -45,30 954,70",
		"06-01-2026 06-01-2026 TRF RECEBIDA 100,00 1.054,70",
	}

	txs, _ := cgdParser{}.parse(lines)
	require.Len(t, txs, 2)

	for _, tx := range txs {
		assert.GreaterOrEqual(t, tx.Amount, int64(0))
	}
}

func TestCGDParser_KeepsZeroAmountRows(t *testing.T) {
	lines := []string{
		"10-01-2026 10-01-2026 ANUIDADE CARTAO 0,00 954,70",
	}

	txs, _ := cgdParser{}.parse(lines)
	require.Len(t, txs, 1)

	assert.Equal(t, "ANUIDADE CARTAO", txs[0].Description)
	assert.Equal(t, int64(0), txs[0].Amount)
	assert.Equal(t, transaction.TypeExpense, txs[0].Type)
	require.NotNil(t, txs[0].Balance)
	assert.Equal(t, int64(95470), *txs[0].Balance)
}

func TestCGDParser_DropsRowsWithoutDescription(t *testing.T) {
	lines := []string{
		"05-01-2026 05-01-2026 -45,30 954,70",
	}

	txs, _ := cgdParser{}.parse(lines)
	assert.Empty(t, txs)
}

func TestCGDParser_SkipsNonMatchingLines(t *testing.T) {
	lines := []string{
		"Extracto combinado",
		"Pagina 1/2",
		"05-01-2026 COMPRA SEM SEGUNDA DATA -45,30 954,70",
		"05-01-2026 05-01-2026 SO UM MONTANTE -45,30",
	}

	txs, per := cgdParser{}.parse(lines)
	assert.Empty(t, txs)
	assert.Nil(t, per.start)
	assert.Nil(t, per.end)
}

func TestCGDParser_KeepsRawLine(t *testing.T) {
	line := "05-01-2026 05-01-2026 COMPRA CONTINENTE -45,30 954,70"

	txs, _ := cgdParser{}.parse([]string{line})
	require.Len(t, txs, 1)
	assert.Equal(t, line, txs[0].RawText)
}
