package recurring

import (
	"context"
	"fmt"

	"github.com/mfpinhal/extrato/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=recurring
type Repository interface {
	ListPatterns(ctx context.Context, workspaceID int64) ([]*Pattern, error)

	// SavePattern upserts one accepted group and links its member
	// transactions as a single atomic unit. It reports whether a new pattern
	// row was created (as opposed to refreshing an existing one).
	SavePattern(ctx context.Context, workspaceID int64, p *DetectedPattern) (created bool, err error)
}

// TransactionSource is the slice of the transaction repository detection
// reads from.
type TransactionSource interface {
	ListTransactions(ctx context.Context, workspaceID int64, filter transaction.ListFilter) ([]*transaction.Transaction, error)
}

type Service struct {
	repo     Repository
	txSource TransactionSource
}

func NewService(repo Repository, txSource TransactionSource) *Service {
	return &Service{repo: repo, txSource: txSource}
}

func (s *Service) ListPatterns(ctx context.Context, workspaceID int64) ([]*Pattern, error) {
	return s.repo.ListPatterns(ctx, workspaceID)
}

// Detect runs recurrence detection over the workspace's full history.
// Re-running on an unchanged history refreshes existing patterns and reports
// zero newly detected; an empty history yields an empty result, not an error.
func (s *Service) Detect(ctx context.Context, workspaceID int64) (*Result, error) {
	txs, err := s.txSource.ListTransactions(ctx, workspaceID, transaction.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	result := &Result{Patterns: detectGroups(txs)}

	for i := range result.Patterns {
		created, err := s.repo.SavePattern(ctx, workspaceID, &result.Patterns[i])
		if err != nil {
			return nil, fmt.Errorf("saving pattern %q: %w", result.Patterns[i].DescriptionPattern, err)
		}

		if created {
			result.Detected++
		}
	}

	return result, nil
}
