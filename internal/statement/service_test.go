package statement_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/mfpinhal/extrato/internal/statement"
	"github.com/mfpinhal/extrato/internal/transaction"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

const contaCSV = `Consultar saldos e movimentos à ordem - 31-01-2026;"=""0000"""
Nome cliente;JOHN DOE
NIF;"=""123"""

Dados da conta
Conta;0000 - EUR - Conta Extracto
Saldo contabilístico;1.000,00 EUR
Saldo disponível;1.000,00 EUR

Dados da consulta
Período;Últimos 90 dias
Intervalo de;01-01-2026 a 31-01-2026
Tipos de movimento;Todos

Data mov.;Data-valor;Descrição;Montante;Saldo contabilístico após movimento
30-01-2026;30-01-2026;INSTITUTO GESTAO FINA;-588,74;48.825,46
09-01-2026;09-01-2026;TFI Wise;8.608,52;52.532,78
`

func TestService_ParseCGDContaCSV(t *testing.T) {
	svc := statement.NewService()

	result, err := svc.Parse(statement.BankCGD, []byte(contaCSV))
	require.NoError(t, err)
	require.Len(t, result.Transactions, 2)

	assert.Equal(t, statement.BankCGD, result.Bank)
	assert.Len(t, result.FileHash, 64)

	require.NotNil(t, result.PeriodStart)
	require.NotNil(t, result.PeriodEnd)
	assert.Equal(t, date(2026, 1, 1), *result.PeriodStart)
	assert.Equal(t, date(2026, 1, 31), *result.PeriodEnd)

	first := result.Transactions[0]
	assert.Equal(t, date(2026, 1, 30), first.Date)
	assert.Equal(t, "INSTITUTO GESTAO FINA", first.Description)
	assert.Equal(t, int64(58874), first.Amount)
	assert.Equal(t, transaction.TypeExpense, first.Type)
	require.NotNil(t, first.Balance)
	assert.Equal(t, int64(4882546), *first.Balance)

	second := result.Transactions[1]
	assert.Equal(t, int64(860852), second.Amount)
	assert.Equal(t, transaction.TypeIncome, second.Type)
}

func TestService_ParseCGDCartaoCSV(t *testing.T) {
	csv := `Data ;Data valor ;Descrição ;Débito ;Crédito ;
16-12-2025 ;14-12-2025 ;PA GONDOMAR         GONDOMAR ;64,00 ; ;
31-12-2025 ;29-12-2025 ;REFUND AMAZON ;  ;25,00 ;
 ; ; ; ;Página 1/2 ;
`

	svc := statement.NewService()

	result, err := svc.Parse(statement.BankCGD, []byte(csv))
	require.NoError(t, err)
	require.Len(t, result.Transactions, 2)

	assert.Equal(t, date(2025, 12, 16), result.Transactions[0].Date)
	assert.Equal(t, date(2025, 12, 14), result.Transactions[0].ValueDate)
	assert.Equal(t, "PA GONDOMAR GONDOMAR", result.Transactions[0].Description)
	assert.Equal(t, int64(6400), result.Transactions[0].Amount)
	assert.Equal(t, transaction.TypeExpense, result.Transactions[0].Type)

	assert.Equal(t, int64(2500), result.Transactions[1].Amount)
	assert.Equal(t, transaction.TypeIncome, result.Transactions[1].Type)
}

func TestService_ParseCSVLatin1Encoding(t *testing.T) {
	utf8CSV := "Data mov.;Descrição;Montante\n30-01-2026;CAFÉ CENTRAL;-10,00\n"

	encoder := charmap.Windows1252.NewEncoder()
	latin1Bytes, err := encoder.Bytes([]byte(utf8CSV))
	require.NoError(t, err)

	svc := statement.NewService()

	result, err := svc.Parse(statement.BankCGD, latin1Bytes)
	require.NoError(t, err)
	require.Len(t, result.Transactions, 1)

	assert.Equal(t, "CAFÉ CENTRAL", result.Transactions[0].Description)
}

func TestService_FileHashIsDeterministic(t *testing.T) {
	svc := statement.NewService()

	first, err := svc.Parse(statement.BankCGD, []byte(contaCSV))
	require.NoError(t, err)

	second, err := svc.Parse(statement.BankCGD, []byte(contaCSV))
	require.NoError(t, err)

	assert.Equal(t, first.FileHash, second.FileHash)

	other, err := svc.Parse(statement.BankCGD, []byte(contaCSV+"extra"))
	require.NoError(t, err)
	assert.NotEqual(t, first.FileHash, other.FileHash)
}

func TestService_HeaderOnlyCSVIsEmptyNotError(t *testing.T) {
	svc := statement.NewService()

	result, err := svc.Parse(statement.BankCGD, []byte("Data mov.;Data-valor;Descrição;Montante"))
	require.NoError(t, err)
	assert.Empty(t, result.Transactions)
}

func TestService_DropsCSVRowsWithoutDescription(t *testing.T) {
	csv := "Data mov.;Descrição;Montante\n30-01-2026;;-10,00\n30-01-2026;OK;-10,00\n"

	svc := statement.NewService()

	result, err := svc.Parse(statement.BankCGD, []byte(csv))
	require.NoError(t, err)
	require.Len(t, result.Transactions, 1)
	assert.Equal(t, "OK", result.Transactions[0].Description)
}

func TestService_CSVOnlyForCGD(t *testing.T) {
	svc := statement.NewService()

	_, err := svc.Parse(statement.BankBCP, []byte("Data mov.;Descrição;Montante\n"))
	assert.Error(t, err)
}

func TestService_UnknownBankPDF(t *testing.T) {
	svc := statement.NewService()

	_, err := svc.Parse(statement.Bank("santander"), []byte("%PDF-1.7 not a real document"))
	assert.ErrorIs(t, err, statement.ErrUnknownBank)
}

func TestParseBank(t *testing.T) {
	for _, b := range statement.Banks() {
		got, err := statement.ParseBank(string(b))
		require.NoError(t, err)
		assert.Equal(t, b, got)
	}

	_, err := statement.ParseBank("santander")
	assert.ErrorIs(t, err, statement.ErrUnknownBank)
}
