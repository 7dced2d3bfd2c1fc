package workspace

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mfpinhal/extrato/internal/auth"
	"github.com/mfpinhal/extrato/internal/workspace"
)

type contextKey int

const (
	workspaceIDKey contextKey = iota
	roleKey
)

// ID returns the workspace id placed in the context by Require.
func ID(ctx context.Context) int64 {
	id, _ := ctx.Value(workspaceIDKey).(int64)
	return id
}

func roleOf(ctx context.Context) workspace.Role {
	role, _ := ctx.Value(roleKey).(workspace.Role)
	return role
}

// RequireEditor rejects requests whose workspace role cannot mutate data.
// It must run inside a Require-wrapped route.
func RequireEditor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !roleOf(r.Context()).CanEdit() {
			http.Error(w, "editor role required", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type Handler struct {
	svc *workspace.Service
}

func NewHandler(svc *workspace.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
}

// Require resolves the {workspaceID} URL parameter, verifies the
// authenticated user is a member, and stores the id and role in the request
// context.
func (h *Handler) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "workspaceID"), 10, 64)
		if err != nil {
			http.Error(w, "invalid workspace id", http.StatusBadRequest)
			return
		}

		userID, ok := auth.UserID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		role, err := h.svc.Authorize(r.Context(), id, userID)
		if err != nil {
			if errors.Is(err, workspace.ErrNotMember) {
				http.Error(w, "not a workspace member", http.StatusForbidden)
				return
			}

			http.Error(w, "internal error", http.StatusInternalServerError)

			return
		}

		ctx := context.WithValue(r.Context(), workspaceIDKey, id)
		ctx = context.WithValue(ctx, roleKey, role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type workspaceResponse struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	workspaces, err := h.svc.List(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]workspaceResponse, 0, len(workspaces))
	for _, ws := range workspaces {
		resp = append(resp, toResponse(ws))
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type createWorkspaceRequest struct {
	Name string `json:"name"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req createWorkspaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	ws, err := h.svc.Create(r.Context(), req.Name, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(ws)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type addMemberRequest struct {
	UserID uuid.UUID      `json:"user_id"`
	Role   workspace.Role `json:"role"`
}

// AddMemberRoutes mounts the member management endpoints inside a
// Require-wrapped workspace route. Only owners may add members.
func (h *Handler) AddMemberRoutes(r chi.Router) {
	r.Post("/", h.addMember)
}

func (h *Handler) addMember(w http.ResponseWriter, r *http.Request) {
	if roleOf(r.Context()) != workspace.RoleOwner {
		http.Error(w, "owner role required", http.StatusForbidden)
		return
	}

	var req addMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Role != workspace.RoleEditor && req.Role != workspace.RoleViewer {
		http.Error(w, "role must be editor or viewer", http.StatusBadRequest)
		return
	}

	if err := h.svc.AddMember(r.Context(), ID(r.Context()), req.UserID, req.Role); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func toResponse(ws *workspace.Workspace) workspaceResponse {
	return workspaceResponse{
		ID:        ws.ID,
		Name:      ws.Name,
		CreatedAt: ws.CreatedAt,
	}
}
