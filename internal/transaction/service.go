package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	GetTransaction(ctx context.Context, workspaceID int64, id uuid.UUID) (*Transaction, error)
	ListTransactions(ctx context.Context, workspaceID int64, filter ListFilter) ([]*Transaction, error)
	UpdateTransaction(ctx context.Context, tx *Transaction) error
	SetCategory(ctx context.Context, workspaceID int64, id uuid.UUID, categoryID *uuid.UUID, manual bool) error
	DeleteTransaction(ctx context.Context, workspaceID int64, id uuid.UUID) error

	BeginImport(ctx context.Context, workspaceID int64, fileHash string) (ImportTx, error)
}

// ImportTx is a statement import unit of work. The whole import of one
// statement commits or rolls back as a single database transaction.
type ImportTx interface {
	StatementImported(ctx context.Context) (bool, error)
	CreateTransactions(ctx context.Context, txs []*Transaction) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateParams carries the user-confirmed fields of a parsed statement row.
type CreateParams struct {
	Amount            int64
	Type              Type
	Description       string
	RawDescription    string
	Date              time.Time
	ValueDate         time.Time
	Balance           *int64
	CategoryID        *uuid.UUID
	DirectionInferred bool
}

type ListFilter struct {
	Bank          *string
	Type          *Type
	CategoryID    *uuid.UUID
	Uncategorized bool
	StartDate     *time.Time
	EndDate       *time.Time
}

func (s *Service) Get(ctx context.Context, workspaceID int64, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, workspaceID, id)
}

func (s *Service) List(ctx context.Context, workspaceID int64, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, workspaceID, filter)
}

func (s *Service) Update(ctx context.Context, tx *Transaction) error {
	return s.repo.UpdateTransaction(ctx, tx)
}

// Categorize assigns a category picked by the user. Manually categorized
// transactions are never touched by the automatic recategorization sweep.
func (s *Service) Categorize(ctx context.Context, workspaceID int64, id uuid.UUID, categoryID *uuid.UUID) error {
	return s.repo.SetCategory(ctx, workspaceID, id, categoryID, true)
}

func (s *Service) Delete(ctx context.Context, workspaceID int64, id uuid.UUID) error {
	return s.repo.DeleteTransaction(ctx, workspaceID, id)
}

// ImportStatement persists all rows of one parsed statement atomically.
// The statement's content hash deduplicates repeat uploads: importing the
// same document twice fails with ErrDuplicateStatement.
func (s *Service) ImportStatement(ctx context.Context, workspaceID int64, bank string, fileHash string, params []CreateParams) ([]*Transaction, error) {
	itx, err := s.repo.BeginImport(ctx, workspaceID, fileHash)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	seen, err := itx.StatementImported(ctx)
	if err != nil {
		return nil, fmt.Errorf("checking statement hash: %w", err)
	}

	if seen {
		return nil, ErrDuplicateStatement
	}

	txs := make([]*Transaction, len(params))
	for i, p := range params {
		txs[i] = &Transaction{
			WorkspaceID:         workspaceID,
			Bank:                bank,
			Amount:              p.Amount,
			Type:                p.Type,
			Description:         p.Description,
			RawDescription:      p.RawDescription,
			Date:                p.Date,
			ValueDate:           p.ValueDate,
			Balance:             p.Balance,
			CategoryID:          p.CategoryID,
			ManuallyCategorized: false,
			DirectionInferred:   p.DirectionInferred,
			FileHash:            fileHash,
		}
	}

	if err := itx.CreateTransactions(ctx, txs); err != nil {
		return nil, fmt.Errorf("create transactions: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return txs, nil
}
