package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mfpinhal/extrato/internal/statement"
	"github.com/mfpinhal/extrato/internal/transaction"
)

// RecategorizeResult reports how many candidates a sweep examined and how
// many it actually moved.
type RecategorizeResult struct {
	TotalChecked  int
	Recategorized int
}

// Recategorize sweeps persisted transactions that are not manually
// categorized and are currently uncategorized or parked in "Other", within
// the given bank and workspace, and re-runs the matcher on each. Only
// transactions whose match resolves to the target category are updated, so
// the sweep honors full scoring and exclusion semantics instead of blindly
// claiming every candidate.
func (s *Service) Recategorize(ctx context.Context, workspaceID int64, bank statement.Bank, target uuid.UUID) (*RecategorizeResult, error) {
	bankID := string(bank)

	candidates, err := s.txStore.ListTransactions(ctx, workspaceID, transaction.ListFilter{
		Bank:          &bankID,
		Uncategorized: true,
	})
	if err != nil {
		return nil, fmt.Errorf("listing uncategorized: %w", err)
	}

	// A workspace without an "Other" category just sweeps the uncategorized.
	other, err := s.repo.GetCategoryByName(ctx, workspaceID, NameOther)
	if err != nil {
		return nil, fmt.Errorf("looking up other category: %w", err)
	}

	if other != nil {
		parked, err := s.txStore.ListTransactions(ctx, workspaceID, transaction.ListFilter{
			Bank:       &bankID,
			CategoryID: &other.ID,
		})
		if err != nil {
			return nil, fmt.Errorf("listing other: %w", err)
		}

		candidates = append(candidates, parked...)
	}

	patterns, err := s.patterns(ctx, workspaceID, bank)
	if err != nil {
		return nil, err
	}

	result := &RecategorizeResult{}

	for _, tx := range candidates {
		if tx.ManuallyCategorized {
			continue
		}

		result.TotalChecked++

		m := matchDescription(patterns, tx.Description)
		if m == nil || m.CategoryID != target {
			continue
		}

		if err := s.txStore.SetCategory(ctx, workspaceID, tx.ID, &m.CategoryID, false); err != nil {
			return nil, fmt.Errorf("recategorizing %s: %w", tx.ID, err)
		}

		result.Recategorized++
	}

	return result, nil
}
