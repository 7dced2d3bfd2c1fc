// Package workspace scopes all statement and transaction data to a shared
// workspace with role-based membership.
package workspace

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("workspace not found")
	ErrNotMember = errors.New("not a workspace member")
)

type Role string

const (
	RoleOwner  Role = "owner"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// CanEdit reports whether the role may mutate workspace data.
func (r Role) CanEdit() bool {
	return r == RoleOwner || r == RoleEditor
}

type Workspace struct {
	ID        int64
	Name      string
	CreatedAt *time.Time
}

type Membership struct {
	WorkspaceID int64
	UserID      uuid.UUID
	Role        Role
}
