package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mfpinhal/extrato/internal/category"
	"github.com/mfpinhal/extrato/internal/statement"
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

func scanCategory(s scanner) (*category.Category, error) {
	var c category.Category

	if err := s.Scan(&c.ID, &c.WorkspaceID, &c.Name, &c.CreatedAt); err != nil {
		return nil, err
	}

	return &c, nil
}

func (s *Store) ListCategories(ctx context.Context, workspaceID int64) ([]*category.Category, error) {
	query := `
		SELECT id, workspace_id, name, created_at
		FROM categories
		WHERE workspace_id = $1 AND deleted_at IS NULL
		ORDER BY name ASC
	`

	rows, err := s.db.QueryContext(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var cats []*category.Category

	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}

		cats = append(cats, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}

	return cats, nil
}

// GetCategoryByName returns nil (not an error) when the workspace has no
// category with that name; the matcher's Income/Other fallbacks are optional.
func (s *Store) GetCategoryByName(ctx context.Context, workspaceID int64, name string) (*category.Category, error) {
	query := `
		SELECT id, workspace_id, name, created_at
		FROM categories
		WHERE workspace_id = $1 AND name = $2 AND deleted_at IS NULL
	`

	c, err := scanCategory(s.db.QueryRowContext(ctx, query, workspaceID, name))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("getting category by name: %w", err)
	}

	return c, nil
}

func (s *Store) CreateCategory(ctx context.Context, c *category.Category) error {
	query := `
		INSERT INTO categories (workspace_id, name, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, c.WorkspaceID, c.Name).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating category: %w", err)
	}

	return nil
}

func (s *Store) DeleteCategory(ctx context.Context, workspaceID int64, id uuid.UUID) error {
	query := `
		UPDATE categories
		SET deleted_at = NOW()
		WHERE id = $1 AND workspace_id = $2
	`

	_, err := s.db.ExecContext(ctx, query, id, workspaceID)
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}

	return nil
}

// ListPatterns returns the pattern set ordered by (priority desc, id asc).
// The matcher's tie-break semantics depend on this exact ordering.
func (s *Store) ListPatterns(ctx context.Context, workspaceID int64, bank statement.Bank) ([]category.Pattern, error) {
	query := `
		SELECT p.id, p.category_id, c.name, p.workspace_id, p.bank, p.pattern, p.priority, p.created_at
		FROM category_patterns p
		JOIN categories c ON p.category_id = c.id
		WHERE p.workspace_id = $1 AND p.bank = $2 AND c.deleted_at IS NULL
		ORDER BY p.priority DESC, p.id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, workspaceID, string(bank))
	if err != nil {
		return nil, fmt.Errorf("listing patterns: %w", err)
	}
	defer rows.Close()

	var patterns []category.Pattern

	for rows.Next() {
		var p category.Pattern

		var bankStr string

		if err := rows.Scan(&p.ID, &p.CategoryID, &p.CategoryName, &p.WorkspaceID, &bankStr, &p.Pattern, &p.Priority, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning pattern: %w", err)
		}

		p.Bank = statement.Bank(bankStr)
		patterns = append(patterns, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating patterns: %w", err)
	}

	return patterns, nil
}

func (s *Store) CreatePattern(ctx context.Context, p *category.Pattern) error {
	query := `
		INSERT INTO category_patterns (category_id, workspace_id, bank, pattern, priority, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		p.CategoryID,
		p.WorkspaceID,
		string(p.Bank),
		p.Pattern,
		p.Priority,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating pattern: %w", err)
	}

	return nil
}

func (s *Store) DeletePattern(ctx context.Context, workspaceID int64, id int64) error {
	query := `DELETE FROM category_patterns WHERE id = $1 AND workspace_id = $2`

	_, err := s.db.ExecContext(ctx, query, id, workspaceID)
	if err != nil {
		return fmt.Errorf("deleting pattern: %w", err)
	}

	return nil
}
