package recurring

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mfpinhal/extrato/internal/transaction"
)

func newTestService(t *testing.T) (*Service, *MockRepository, *MockTransactionSource) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := NewMockRepository(ctrl)
	source := NewMockTransactionSource(ctrl)

	return NewService(repo, source), repo, source
}

func TestService_Detect(t *testing.T) {
	svc, repo, source := newTestService(t)

	history := []*transaction.Transaction{
		tx("NETFLIX.COM", 1499, transaction.TypeExpense, 0),
		tx("NETFLIX.COM", 1499, transaction.TypeExpense, 30),
		tx("NETFLIX.COM", 1499, transaction.TypeExpense, 60),
	}

	source.EXPECT().
		ListTransactions(gomock.Any(), int64(1), transaction.ListFilter{}).
		Return(history, nil)
	repo.EXPECT().
		SavePattern(gomock.Any(), int64(1), gomock.Any()).
		Return(true, nil)

	result, err := svc.Detect(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Detected)
	require.Len(t, result.Patterns, 1)
	assert.Equal(t, "NETFLIX.COM", result.Patterns[0].DescriptionPattern)
}

func TestService_Detect_RerunReportsZeroNew(t *testing.T) {
	svc, repo, source := newTestService(t)

	history := []*transaction.Transaction{
		tx("NETFLIX.COM", 1499, transaction.TypeExpense, 0),
		tx("NETFLIX.COM", 1499, transaction.TypeExpense, 30),
		tx("NETFLIX.COM", 1499, transaction.TypeExpense, 60),
	}

	source.EXPECT().
		ListTransactions(gomock.Any(), int64(1), transaction.ListFilter{}).
		Return(history, nil)

	// The pattern already exists, so the store refreshes it in place.
	repo.EXPECT().
		SavePattern(gomock.Any(), int64(1), gomock.Any()).
		Return(false, nil)

	result, err := svc.Detect(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Detected)
	assert.Len(t, result.Patterns, 1)
}

func TestService_Detect_EmptyHistory(t *testing.T) {
	svc, _, source := newTestService(t)

	source.EXPECT().
		ListTransactions(gomock.Any(), int64(1), transaction.ListFilter{}).
		Return(nil, nil)

	result, err := svc.Detect(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Detected)
	assert.Empty(t, result.Patterns)
}

func TestService_Detect_SaveError(t *testing.T) {
	svc, repo, source := newTestService(t)

	history := []*transaction.Transaction{
		tx("NETFLIX.COM", 1499, transaction.TypeExpense, 0),
		tx("NETFLIX.COM", 1499, transaction.TypeExpense, 30),
		tx("NETFLIX.COM", 1499, transaction.TypeExpense, 60),
	}

	source.EXPECT().
		ListTransactions(gomock.Any(), int64(1), transaction.ListFilter{}).
		Return(history, nil)
	repo.EXPECT().
		SavePattern(gomock.Any(), int64(1), gomock.Any()).
		Return(false, errors.New("db down"))

	_, err := svc.Detect(context.Background(), 1)
	assert.Error(t, err)
}
