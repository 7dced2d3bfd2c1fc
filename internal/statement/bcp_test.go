package statement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfpinhal/extrato/internal/transaction"
)

func TestBCPParser(t *testing.T) {
	lines := []string{
		"MILLENNIUM BCP",
		"Extrato de 01.01.2026 a 31.01.2026",
		"Data lanc. Data valor Descrição Débito Crédito Saldo",
		"05.01.26 05.01.26 COMPRA CONTINENTE MATOSINHOS 45,30 0,00 1.200,00",
		"09.01.26 09.01.26 ORDENADO EMPRESA LDA 0,00 1.500,00 2.700,00",
	}

	txs, per := bcpParser{}.parse(lines)
	require.Len(t, txs, 2)

	require.NotNil(t, per.start)
	require.NotNil(t, per.end)
	assert.Equal(t, date(2026, 1, 1), *per.start)
	assert.Equal(t, date(2026, 1, 31), *per.end)

	assert.Equal(t, date(2026, 1, 5), txs[0].Date)
	assert.Equal(t, "COMPRA CONTINENTE MATOSINHOS", txs[0].Description)
	assert.Equal(t, int64(4530), txs[0].Amount)
	assert.Equal(t, transaction.TypeExpense, txs[0].Type)
	require.NotNil(t, txs[0].Balance)
	assert.Equal(t, int64(120000), *txs[0].Balance)

	assert.Equal(t, "ORDENADO EMPRESA LDA", txs[1].Description)
	assert.Equal(t, int64(150000), txs[1].Amount)
	assert.Equal(t, transaction.TypeIncome, txs[1].Type)
	require.NotNil(t, txs[1].Balance)
	assert.Equal(t, int64(270000), *txs[1].Balance)
}

func TestBCPParser_NegativeDebitColumn(t *testing.T) {
	lines := []string{
		"05.01.26 05.01.26 PAGAMENTO SERVICOS -20,00 0,00 2.680,00",
	}

	txs, _ := bcpParser{}.parse(lines)
	require.Len(t, txs, 1)

	assert.Equal(t, int64(2000), txs[0].Amount)
	assert.Equal(t, transaction.TypeExpense, txs[0].Type)
}

func TestBCPParser_CombinedAmountColumn(t *testing.T) {
	lines := []string{
		"10.01.26 10.01.26 PAGAMENTO AGUA -20,00 2.680,00",
		"12.01.26 12.01.26 TRF RECEBIDA 35,50 2.715,50",
	}

	txs, _ := bcpParser{}.parse(lines)
	require.Len(t, txs, 2)

	assert.Equal(t, int64(2000), txs[0].Amount)
	assert.Equal(t, transaction.TypeExpense, txs[0].Type)

	assert.Equal(t, int64(3550), txs[1].Amount)
	assert.Equal(t, transaction.TypeIncome, txs[1].Type)
}

func TestBCPParser_SkipsZeroRows(t *testing.T) {
	lines := []string{
		"05.01.26 05.01.26 MOVIMENTO NULO 0,00 0,00 2.680,00",
	}

	txs, _ := bcpParser{}.parse(lines)
	assert.Empty(t, txs)
}
