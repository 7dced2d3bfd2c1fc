package workspace

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestService_Authorize(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepository(ctrl)
	svc := NewService(repo)

	userID := uuid.New()

	repo.EXPECT().
		GetMembership(gomock.Any(), int64(1), userID).
		Return(&Membership{WorkspaceID: 1, UserID: userID, Role: RoleOwner}, nil)

	role, err := svc.Authorize(context.Background(), 1, userID)
	require.NoError(t, err)
	assert.Equal(t, RoleOwner, role)
}

func TestService_Authorize_NotMember(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepository(ctrl)
	svc := NewService(repo)

	userID := uuid.New()

	repo.EXPECT().
		GetMembership(gomock.Any(), int64(1), userID).
		Return(nil, nil)

	_, err := svc.Authorize(context.Background(), 1, userID)
	assert.ErrorIs(t, err, ErrNotMember)
}

func TestRole_CanEdit(t *testing.T) {
	assert.True(t, RoleOwner.CanEdit())
	assert.True(t, RoleEditor.CanEdit())
	assert.False(t, RoleViewer.CanEdit())
	assert.False(t, Role("").CanEdit())
}

func TestService_Create_OwnerMembership(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepository(ctrl)
	svc := NewService(repo)

	ownerID := uuid.New()

	repo.EXPECT().
		CreateWorkspace(gomock.Any(), gomock.Any(), ownerID).
		DoAndReturn(func(_ context.Context, w *Workspace, _ uuid.UUID) error {
			w.ID = 42
			return nil
		})

	w, err := svc.Create(context.Background(), "Família", ownerID)
	require.NoError(t, err)
	assert.Equal(t, int64(42), w.ID)
	assert.Equal(t, "Família", w.Name)
}
