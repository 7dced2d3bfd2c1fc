package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mfpinhal/extrato/internal/workspace"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetWorkspace(ctx context.Context, id int64) (*workspace.Workspace, error) {
	query := `SELECT id, name, created_at FROM workspaces WHERE id = $1`

	var w workspace.Workspace

	err := s.db.QueryRowContext(ctx, query, id).Scan(&w.ID, &w.Name, &w.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, workspace.ErrNotFound
		}

		return nil, fmt.Errorf("getting workspace: %w", err)
	}

	return &w, nil
}

func (s *Store) ListWorkspaces(ctx context.Context, userID uuid.UUID) ([]*workspace.Workspace, error) {
	query := `
		SELECT w.id, w.name, w.created_at
		FROM workspaces w
		JOIN workspace_members m ON m.workspace_id = w.id
		WHERE m.user_id = $1
		ORDER BY w.name ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing workspaces: %w", err)
	}
	defer rows.Close()

	var workspaces []*workspace.Workspace

	for rows.Next() {
		var w workspace.Workspace

		if err := rows.Scan(&w.ID, &w.Name, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning workspace: %w", err)
		}

		workspaces = append(workspaces, &w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating workspaces: %w", err)
	}

	return workspaces, nil
}

// CreateWorkspace inserts the workspace and its owner membership in one
// transaction.
func (s *Store) CreateWorkspace(ctx context.Context, w *workspace.Workspace, ownerID uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning tx: %w", err)
	}
	defer tx.Rollback()

	insertWorkspace := `
		INSERT INTO workspaces (name, created_at)
		VALUES ($1, NOW())
		RETURNING id, created_at
	`

	if err := tx.QueryRowContext(ctx, insertWorkspace, w.Name).Scan(&w.ID, &w.CreatedAt); err != nil {
		return fmt.Errorf("inserting workspace: %w", err)
	}

	insertMember := `
		INSERT INTO workspace_members (workspace_id, user_id, role, created_at)
		VALUES ($1, $2, $3, NOW())
	`

	if _, err := tx.ExecContext(ctx, insertMember, w.ID, ownerID, string(workspace.RoleOwner)); err != nil {
		return fmt.Errorf("inserting owner membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}

	return nil
}

// GetMembership returns nil (not an error) when the user is not a member.
func (s *Store) GetMembership(ctx context.Context, workspaceID int64, userID uuid.UUID) (*workspace.Membership, error) {
	query := `
		SELECT workspace_id, user_id, role
		FROM workspace_members
		WHERE workspace_id = $1 AND user_id = $2
	`

	var m workspace.Membership

	var role string

	err := s.db.QueryRowContext(ctx, query, workspaceID, userID).Scan(&m.WorkspaceID, &m.UserID, &role)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("getting membership: %w", err)
	}

	m.Role = workspace.Role(role)

	return &m, nil
}

func (s *Store) AddMember(ctx context.Context, m *workspace.Membership) error {
	query := `
		INSERT INTO workspace_members (workspace_id, user_id, role, created_at)
		VALUES ($1, $2, $3, NOW())
	`

	_, err := s.db.ExecContext(ctx, query, m.WorkspaceID, m.UserID, string(m.Role))
	if err != nil {
		return fmt.Errorf("adding member: %w", err)
	}

	return nil
}
