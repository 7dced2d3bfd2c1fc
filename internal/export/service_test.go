package export_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mfpinhal/extrato/internal/export"
	"github.com/mfpinhal/extrato/internal/transaction"
)

func testTransactions() []*transaction.Transaction {
	balance := int64(4882546)

	return []*transaction.Transaction{
		{
			ID:           uuid.New(),
			Bank:         "cgd",
			Amount:       58874,
			Type:         transaction.TypeExpense,
			Description:  "INSTITUTO GESTAO FINA",
			Date:         time.Date(2026, 1, 30, 0, 0, 0, 0, time.UTC),
			ValueDate:    time.Date(2026, 1, 30, 0, 0, 0, 0, time.UTC),
			Balance:      &balance,
			CategoryName: "Taxes",
		},
		{
			ID:          uuid.New(),
			Bank:        "cgd",
			Amount:      860852,
			Type:        transaction.TypeIncome,
			Description: "TFI Wise",
			Date:        time.Date(2026, 1, 9, 0, 0, 0, 0, time.UTC),
			ValueDate:   time.Date(2026, 1, 9, 0, 0, 0, 0, time.UTC),
		},
	}
}

func newService(t *testing.T, txs []*transaction.Transaction) *export.Service {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().
		ListTransactions(gomock.Any(), int64(1), gomock.Any()).
		Return(txs, nil)

	return export.NewService(transaction.NewService(repo))
}

func TestService_CSV(t *testing.T) {
	svc := newService(t, testTransactions())

	var buf bytes.Buffer
	require.NoError(t, svc.CSV(context.Background(), 1, transaction.ListFilter{}, &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, "date,value_date,bank,description,category,type,amount_eur,balance_eur", lines[0])
	assert.Equal(t, "2026-01-30,2026-01-30,cgd,INSTITUTO GESTAO FINA,Taxes,expense,-588.74,48825.46", lines[1])
	assert.Equal(t, "2026-01-09,2026-01-09,cgd,TFI Wise,,income,8608.52,", lines[2])
}

func TestService_JSON(t *testing.T) {
	txs := testTransactions()
	svc := newService(t, txs)

	var buf bytes.Buffer
	require.NoError(t, svc.JSON(context.Background(), 1, transaction.ListFilter{}, &buf))

	var records []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &records))
	require.Len(t, records, 2)

	assert.Equal(t, "2026-01-30", records[0]["date"])
	assert.Equal(t, "expense", records[0]["type"])
	assert.Equal(t, float64(58874), records[0]["amount_cents"])
	assert.Equal(t, "Taxes", records[0]["category"])

	_, hasBalance := records[1]["balance_cents"]
	assert.False(t, hasBalance)
}

func TestService_CSV_Empty(t *testing.T) {
	svc := newService(t, nil)

	var buf bytes.Buffer
	require.NoError(t, svc.CSV(context.Background(), 1, transaction.ListFilter{}, &buf))

	assert.Equal(t, "date,value_date,bank,description,category,type,amount_eur,balance_eur", strings.TrimSpace(buf.String()))
}
