package store

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"

	"github.com/google/uuid"

	"github.com/mfpinhal/extrato/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectTransactionColumns = `
	t.id, t.workspace_id, t.bank, t.amount, t.type, t.description, t.raw_description,
	t.date, t.value_date, t.balance, t.category_id, c.name AS category_name,
	t.manually_categorized, t.direction_inferred, t.recurring_pattern_id,
	t.file_hash, t.created_at, t.updated_at, t.deleted_at
`

// scanTransaction reads one row in selectTransactionColumns order.
func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction

	var typeStr string

	var rawDesc, categoryName, fileHash sql.NullString

	if err := s.Scan(
		&tx.ID, &tx.WorkspaceID, &tx.Bank, &tx.Amount, &typeStr, &tx.Description, &rawDesc,
		&tx.Date, &tx.ValueDate, &tx.Balance, &tx.CategoryID, &categoryName,
		&tx.ManuallyCategorized, &tx.DirectionInferred, &tx.RecurringPatternID,
		&fileHash, &tx.CreatedAt, &tx.UpdatedAt, &tx.DeletedAt,
	); err != nil {
		return nil, err
	}

	tx.Type = transaction.Type(typeStr)
	tx.RawDescription = rawDesc.String
	tx.CategoryName = categoryName.String
	tx.FileHash = fileHash.String

	return &tx, nil
}

func (s *Store) GetTransaction(ctx context.Context, workspaceID int64, id uuid.UUID) (*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		LEFT JOIN categories c ON t.category_id = c.id
		WHERE t.id = $1 AND t.workspace_id = $2 AND t.deleted_at IS NULL`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id, workspaceID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

func (s *Store) ListTransactions(ctx context.Context, workspaceID int64, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		LEFT JOIN categories c ON t.category_id = c.id
		WHERE t.workspace_id = $1 AND t.deleted_at IS NULL`

	args := []any{workspaceID}
	argIdx := 2

	if filter.Bank != nil {
		query += fmt.Sprintf(" AND t.bank = $%d", argIdx)

		args = append(args, *filter.Bank)
		argIdx++
	}

	if filter.Type != nil {
		query += fmt.Sprintf(" AND t.type = $%d", argIdx)

		args = append(args, *filter.Type)
		argIdx++
	}

	if filter.CategoryID != nil {
		query += fmt.Sprintf(" AND t.category_id = $%d", argIdx)

		args = append(args, *filter.CategoryID)
		argIdx++
	}

	if filter.Uncategorized {
		query += " AND t.category_id IS NULL"
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND t.date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND t.date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	query += " ORDER BY t.date ASC, t.created_at ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}

	return txs, nil
}

func (s *Store) UpdateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		UPDATE transactions
		SET description = $1, amount = $2, type = $3, date = $4, value_date = $5, updated_at = NOW()
		WHERE id = $6 AND workspace_id = $7 AND deleted_at IS NULL
	`

	_, err := s.db.ExecContext(ctx, query,
		tx.Description,
		tx.Amount,
		tx.Type,
		tx.Date,
		tx.ValueDate,
		tx.ID,
		tx.WorkspaceID,
	)
	if err != nil {
		return fmt.Errorf("updating transaction: %w", err)
	}

	return nil
}

func (s *Store) SetCategory(ctx context.Context, workspaceID int64, id uuid.UUID, categoryID *uuid.UUID, manual bool) error {
	query := `
		UPDATE transactions
		SET category_id = $1, manually_categorized = $2, updated_at = NOW()
		WHERE id = $3 AND workspace_id = $4 AND deleted_at IS NULL
	`

	_, err := s.db.ExecContext(ctx, query, categoryID, manual, id, workspaceID)
	if err != nil {
		return fmt.Errorf("setting category: %w", err)
	}

	return nil
}

func (s *Store) DeleteTransaction(ctx context.Context, workspaceID int64, id uuid.UUID) error {
	query := `
		UPDATE transactions
		SET deleted_at = NOW()
		WHERE id = $1 AND workspace_id = $2
	`

	_, err := s.db.ExecContext(ctx, query, id, workspaceID)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	return nil
}

// importLockKey serializes concurrent uploads of the same statement.
func importLockKey(workspaceID int64, fileHash string) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d", workspaceID)
	h.Write([]byte{0})
	h.Write([]byte(fileHash))

	return int64(h.Sum64())
}

type importTx struct {
	tx          *sql.Tx
	workspaceID int64
	fileHash    string
}

func (s *Store) BeginImport(ctx context.Context, workspaceID int64, fileHash string) (transaction.ImportTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import tx: %w", err)
	}

	lockKey := importLockKey(workspaceID, fileHash)
	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", lockKey); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring import lock: %w", err)
	}

	return &importTx{tx: dbTx, workspaceID: workspaceID, fileHash: fileHash}, nil
}

func (itx *importTx) Commit() error   { return itx.tx.Commit() }
func (itx *importTx) Rollback() error { return itx.tx.Rollback() }

func (itx *importTx) StatementImported(ctx context.Context) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM transactions
			WHERE workspace_id = $1 AND file_hash = $2 AND deleted_at IS NULL
		)
	`

	var exists bool
	if err := itx.tx.QueryRowContext(ctx, query, itx.workspaceID, itx.fileHash).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking statement hash: %w", err)
	}

	return exists, nil
}

func (itx *importTx) CreateTransactions(ctx context.Context, txs []*transaction.Transaction) error {
	query := `
		INSERT INTO transactions (
			workspace_id, bank, amount, type, description, raw_description,
			date, value_date, balance, category_id, manually_categorized,
			direction_inferred, file_hash, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	for _, tx := range txs {
		err := itx.tx.QueryRowContext(ctx, query,
			tx.WorkspaceID,
			tx.Bank,
			tx.Amount,
			tx.Type,
			tx.Description,
			tx.RawDescription,
			tx.Date,
			tx.ValueDate,
			tx.Balance,
			tx.CategoryID,
			tx.ManuallyCategorized,
			tx.DirectionInferred,
			tx.FileHash,
		).Scan(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt)
		if err != nil {
			return fmt.Errorf("creating transaction: %w", err)
		}
	}

	return nil
}
