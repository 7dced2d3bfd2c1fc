package category

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mfpinhal/extrato/internal/statement"
	"github.com/mfpinhal/extrato/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=category
type Repository interface {
	ListCategories(ctx context.Context, workspaceID int64) ([]*Category, error)
	GetCategoryByName(ctx context.Context, workspaceID int64, name string) (*Category, error)
	CreateCategory(ctx context.Context, c *Category) error
	DeleteCategory(ctx context.Context, workspaceID int64, id uuid.UUID) error

	// ListPatterns returns the pattern set sorted by (priority desc, id asc).
	// That ordering is the matcher's tie-break contract, not a cosmetic choice.
	ListPatterns(ctx context.Context, workspaceID int64, bank statement.Bank) ([]Pattern, error)
	CreatePattern(ctx context.Context, p *Pattern) error
	DeletePattern(ctx context.Context, workspaceID int64, id int64) error
}

// TransactionStore is the slice of the transaction repository the
// recategorization sweep needs.
type TransactionStore interface {
	ListTransactions(ctx context.Context, workspaceID int64, filter transaction.ListFilter) ([]*transaction.Transaction, error)
	SetCategory(ctx context.Context, workspaceID int64, id uuid.UUID, categoryID *uuid.UUID, manual bool) error
}

type Service struct {
	repo    Repository
	txStore TransactionStore
	cache   *patternCache
}

func NewService(repo Repository, txStore TransactionStore, cacheTTL time.Duration) *Service {
	return &Service{
		repo:    repo,
		txStore: txStore,
		cache:   newPatternCache(cacheTTL),
	}
}

func (s *Service) ListCategories(ctx context.Context, workspaceID int64) ([]*Category, error) {
	return s.repo.ListCategories(ctx, workspaceID)
}

func (s *Service) CreateCategory(ctx context.Context, workspaceID int64, name string) (*Category, error) {
	c := &Category{WorkspaceID: workspaceID, Name: name}

	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) DeleteCategory(ctx context.Context, workspaceID int64, id uuid.UUID) error {
	if err := s.repo.DeleteCategory(ctx, workspaceID, id); err != nil {
		return err
	}

	s.cache.invalidate()

	return nil
}

func (s *Service) ListPatterns(ctx context.Context, workspaceID int64, bank statement.Bank) ([]Pattern, error) {
	return s.repo.ListPatterns(ctx, workspaceID, bank)
}

// CreatePattern stores a new pattern, invalidates the cache, and sweeps
// existing candidate transactions for the new pattern's category.
func (s *Service) CreatePattern(ctx context.Context, p *Pattern) (*RecategorizeResult, error) {
	if _, err := statement.ParseBank(string(p.Bank)); err != nil {
		return nil, err
	}

	if err := s.repo.CreatePattern(ctx, p); err != nil {
		return nil, fmt.Errorf("creating pattern: %w", err)
	}

	s.cache.invalidate()

	return s.Recategorize(ctx, p.WorkspaceID, p.Bank, p.CategoryID)
}

func (s *Service) DeletePattern(ctx context.Context, workspaceID int64, id int64) error {
	if err := s.repo.DeletePattern(ctx, workspaceID, id); err != nil {
		return err
	}

	s.cache.invalidate()

	return nil
}

// Match returns the best category for a description, or nil when no pattern
// wins.
func (s *Service) Match(ctx context.Context, workspaceID int64, bank statement.Bank, description string) (*Match, error) {
	patterns, err := s.patterns(ctx, workspaceID, bank)
	if err != nil {
		return nil, err
	}

	return matchDescription(patterns, description), nil
}

// SuggestBatch fills the suggestion fields of parsed transactions in place.
// Income rows get the workspace's "Income" category when it exists; for the
// rest the matcher runs, falling back to "Other". Rows with no applicable
// category keep nil suggestions.
func (s *Service) SuggestBatch(ctx context.Context, workspaceID int64, bank statement.Bank, txs []statement.ParsedTransaction) error {
	if len(txs) == 0 {
		return nil
	}

	income, err := s.repo.GetCategoryByName(ctx, workspaceID, NameIncome)
	if err != nil {
		return fmt.Errorf("looking up income category: %w", err)
	}

	other, err := s.repo.GetCategoryByName(ctx, workspaceID, NameOther)
	if err != nil {
		return fmt.Errorf("looking up other category: %w", err)
	}

	patterns, err := s.patterns(ctx, workspaceID, bank)
	if err != nil {
		return err
	}

	for i := range txs {
		if txs[i].Type == transaction.TypeIncome && income != nil {
			txs[i].SuggestedCategoryID = &income.ID
			txs[i].SuggestedCategoryName = income.Name

			continue
		}

		if m := matchDescription(patterns, txs[i].Description); m != nil {
			txs[i].SuggestedCategoryID = &m.CategoryID
			txs[i].SuggestedCategoryName = m.CategoryName

			continue
		}

		if other != nil {
			txs[i].SuggestedCategoryID = &other.ID
			txs[i].SuggestedCategoryName = other.Name
		}
	}

	return nil
}

// patterns loads the compiled pattern set for (workspace, bank), via the
// short-lived cache.
func (s *Service) patterns(ctx context.Context, workspaceID int64, bank statement.Bank) ([]compiledPattern, error) {
	key := cacheKey{bank: bank, workspaceID: workspaceID}

	if cached, ok := s.cache.get(key); ok {
		return cached, nil
	}

	stored, err := s.repo.ListPatterns(ctx, workspaceID, bank)
	if err != nil {
		return nil, fmt.Errorf("loading patterns: %w", err)
	}

	compiled := compileAll(stored)
	s.cache.put(key, compiled)

	return compiled, nil
}
