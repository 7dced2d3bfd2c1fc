package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mfpinhal/extrato/internal/recurring"
	"github.com/mfpinhal/extrato/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListPatterns(ctx context.Context, workspaceID int64) ([]*recurring.Pattern, error) {
	query := `
		SELECT id, workspace_id, description_pattern, frequency, type,
		       avg_amount, occurrence_count, is_active, created_at, updated_at
		FROM recurring_patterns
		WHERE workspace_id = $1
		ORDER BY description_pattern ASC
	`

	rows, err := s.db.QueryContext(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("listing recurring patterns: %w", err)
	}
	defer rows.Close()

	var patterns []*recurring.Pattern

	for rows.Next() {
		var p recurring.Pattern

		var freq, typ string

		if err := rows.Scan(
			&p.ID, &p.WorkspaceID, &p.DescriptionPattern, &freq, &typ,
			&p.AvgAmount, &p.OccurrenceCount, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning recurring pattern: %w", err)
		}

		p.Frequency = recurring.Frequency(freq)
		p.Type = transaction.Type(typ)
		patterns = append(patterns, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating recurring patterns: %w", err)
	}

	return patterns, nil
}

// SavePattern upserts one detected group and re-links its member
// transactions inside a single database transaction, so a crash mid-run can
// never leave transactions pointing at a pattern that was not committed.
func (s *Store) SavePattern(ctx context.Context, workspaceID int64, p *recurring.DetectedPattern) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("beginning save tx: %w", err)
	}
	defer tx.Rollback()

	findQuery := `
		SELECT id FROM recurring_patterns
		WHERE workspace_id = $1 AND description_pattern = $2 AND frequency = $3 AND type = $4
	`

	var patternID uuid.UUID

	created := false

	err = tx.QueryRowContext(ctx, findQuery,
		workspaceID, p.DescriptionPattern, string(p.Frequency), string(p.Type),
	).Scan(&patternID)

	switch {
	case err == sql.ErrNoRows:
		insertQuery := `
			INSERT INTO recurring_patterns (
				workspace_id, description_pattern, frequency, type,
				avg_amount, occurrence_count, is_active, created_at, updated_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, TRUE, NOW(), NOW())
			RETURNING id
		`

		if err := tx.QueryRowContext(ctx, insertQuery,
			workspaceID, p.DescriptionPattern, string(p.Frequency), string(p.Type),
			p.AvgAmount, len(p.TransactionIDs),
		).Scan(&patternID); err != nil {
			return false, fmt.Errorf("inserting recurring pattern: %w", err)
		}

		created = true
	case err != nil:
		return false, fmt.Errorf("finding recurring pattern: %w", err)
	default:
		updateQuery := `
			UPDATE recurring_patterns
			SET avg_amount = $1, occurrence_count = $2, is_active = TRUE, updated_at = NOW()
			WHERE id = $3
		`

		if _, err := tx.ExecContext(ctx, updateQuery, p.AvgAmount, len(p.TransactionIDs), patternID); err != nil {
			return false, fmt.Errorf("updating recurring pattern: %w", err)
		}
	}

	linkQuery := `
		UPDATE transactions
		SET recurring_pattern_id = $1, updated_at = NOW()
		WHERE id = $2 AND workspace_id = $3
	`

	for _, txID := range p.TransactionIDs {
		if _, err := tx.ExecContext(ctx, linkQuery, patternID, txID, workspaceID); err != nil {
			return false, fmt.Errorf("linking transaction %s: %w", txID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing save tx: %w", err)
	}

	return created, nil
}
