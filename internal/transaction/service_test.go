package transaction_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mfpinhal/extrato/internal/transaction"
)

func TestService_List(t *testing.T) {
	type args struct {
		filter transaction.ListFilter
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *transaction.MockRepository)
		wantLen   int
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{filter: transaction.ListFilter{}},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					ListTransactions(gomock.Any(), int64(1), transaction.ListFilter{}).
					Return([]*transaction.Transaction{
						{ID: uuid.New()},
						{ID: uuid.New()},
					}, nil)
			},
			wantLen: 2,
			wantErr: false,
		},
		{
			name: "Error",
			args: args{filter: transaction.ListFilter{}},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					ListTransactions(gomock.Any(), int64(1), transaction.ListFilter{}).
					Return(nil, errors.New("list error"))
			},
			wantLen: 0,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := transaction.NewService(repo)
			got, err := svc.List(context.Background(), 1, tt.args.filter)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestService_Categorize_IsManual(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	svc := transaction.NewService(repo)

	id := uuid.New()
	categoryID := uuid.New()

	repo.EXPECT().
		SetCategory(gomock.Any(), int64(1), id, &categoryID, true).
		Return(nil)

	require.NoError(t, svc.Categorize(context.Background(), 1, id, &categoryID))
}

func TestService_ImportStatement(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	itx := transaction.NewMockImportTx(ctrl)
	svc := transaction.NewService(repo)

	date := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	params := []transaction.CreateParams{
		{
			Amount:         1000,
			Type:           transaction.TypeExpense,
			Description:    "Coffee",
			RawDescription: "COFFEE SHOP LISBOA",
			Date:           date,
			ValueDate:      date,
		},
	}

	repo.EXPECT().BeginImport(gomock.Any(), int64(1), "hash123").Return(itx, nil)
	itx.EXPECT().StatementImported(gomock.Any()).Return(false, nil)
	itx.EXPECT().CreateTransactions(gomock.Any(), gomock.Any()).Return(nil)
	itx.EXPECT().Commit().Return(nil)
	itx.EXPECT().Rollback().Return(nil)

	txs, err := svc.ImportStatement(context.Background(), 1, "cgd", "hash123", params)
	require.NoError(t, err)
	require.Len(t, txs, 1)

	assert.Equal(t, int64(1), txs[0].WorkspaceID)
	assert.Equal(t, "cgd", txs[0].Bank)
	assert.Equal(t, "hash123", txs[0].FileHash)
	assert.Equal(t, int64(1000), txs[0].Amount)
	assert.False(t, txs[0].ManuallyCategorized)
}

func TestService_ImportStatement_Duplicate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	itx := transaction.NewMockImportTx(ctrl)
	svc := transaction.NewService(repo)

	repo.EXPECT().BeginImport(gomock.Any(), int64(1), "hash123").Return(itx, nil)
	itx.EXPECT().StatementImported(gomock.Any()).Return(true, nil)
	itx.EXPECT().Rollback().Return(nil)

	_, err := svc.ImportStatement(context.Background(), 1, "cgd", "hash123", nil)
	assert.ErrorIs(t, err, transaction.ErrDuplicateStatement)
}

func TestService_ImportStatement_CreateFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	itx := transaction.NewMockImportTx(ctrl)
	svc := transaction.NewService(repo)

	repo.EXPECT().BeginImport(gomock.Any(), int64(1), "hash123").Return(itx, nil)
	itx.EXPECT().StatementImported(gomock.Any()).Return(false, nil)
	itx.EXPECT().CreateTransactions(gomock.Any(), gomock.Any()).Return(errors.New("insert failed"))
	itx.EXPECT().Rollback().Return(nil)

	_, err := svc.ImportStatement(context.Background(), 1, "cgd", "hash123", []transaction.CreateParams{{Amount: 100}})
	assert.Error(t, err)
}
