package workspace

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=workspace
type Repository interface {
	GetWorkspace(ctx context.Context, id int64) (*Workspace, error)
	ListWorkspaces(ctx context.Context, userID uuid.UUID) ([]*Workspace, error)
	CreateWorkspace(ctx context.Context, w *Workspace, ownerID uuid.UUID) error
	GetMembership(ctx context.Context, workspaceID int64, userID uuid.UUID) (*Membership, error)
	AddMember(ctx context.Context, m *Membership) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, id int64) (*Workspace, error) {
	return s.repo.GetWorkspace(ctx, id)
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*Workspace, error) {
	return s.repo.ListWorkspaces(ctx, userID)
}

// Create makes a new workspace with the creating user as its owner.
func (s *Service) Create(ctx context.Context, name string, ownerID uuid.UUID) (*Workspace, error) {
	w := &Workspace{Name: name}

	if err := s.repo.CreateWorkspace(ctx, w, ownerID); err != nil {
		return nil, fmt.Errorf("creating workspace: %w", err)
	}

	return w, nil
}

func (s *Service) AddMember(ctx context.Context, workspaceID int64, userID uuid.UUID, role Role) error {
	return s.repo.AddMember(ctx, &Membership{
		WorkspaceID: workspaceID,
		UserID:      userID,
		Role:        role,
	})
}

// Authorize verifies the user belongs to the workspace and returns their
// role; ErrNotMember otherwise.
func (s *Service) Authorize(ctx context.Context, workspaceID int64, userID uuid.UUID) (Role, error) {
	m, err := s.repo.GetMembership(ctx, workspaceID, userID)
	if err != nil {
		return "", err
	}

	if m == nil {
		return "", ErrNotMember
	}

	return m.Role, nil
}
