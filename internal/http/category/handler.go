package category

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mfpinhal/extrato/internal/category"
	workspacehttp "github.com/mfpinhal/extrato/internal/http/workspace"
	"github.com/mfpinhal/extrato/internal/statement"
)

type Handler struct {
	svc *category.Service
}

func NewHandler(svc *category.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.With(workspacehttp.RequireEditor).Post("/", h.create)
	r.With(workspacehttp.RequireEditor).Delete("/{id}", h.delete)

	r.Route("/patterns", func(r chi.Router) {
		r.Get("/", h.listPatterns)
		r.With(workspacehttp.RequireEditor).Post("/", h.createPattern)
		r.With(workspacehttp.RequireEditor).Delete("/{patternID}", h.deletePattern)
	})
}

type categoryResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

func toCategoryResponse(c *category.Category) categoryResponse {
	return categoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.ListCategories(r.Context(), workspacehttp.ID(r.Context()))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]categoryResponse, 0, len(categories))
	for _, c := range categories {
		resp = append(resp, toCategoryResponse(c))
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type createCategoryRequest struct {
	Name string `json:"name"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	c, err := h.svc.CreateCategory(r.Context(), workspacehttp.ID(r.Context()), req.Name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toCategoryResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeleteCategory(r.Context(), workspacehttp.ID(r.Context()), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type patternResponse struct {
	ID           int64          `json:"id"`
	CategoryID   uuid.UUID      `json:"category_id"`
	CategoryName string         `json:"category_name,omitempty"`
	Bank         statement.Bank `json:"bank"`
	Pattern      string         `json:"pattern"`
	Priority     int            `json:"priority"`
	CreatedAt    *time.Time     `json:"created_at,omitempty"`
}

func toPatternResponse(p category.Pattern) patternResponse {
	return patternResponse{
		ID:           p.ID,
		CategoryID:   p.CategoryID,
		CategoryName: p.CategoryName,
		Bank:         p.Bank,
		Pattern:      p.Pattern,
		Priority:     p.Priority,
		CreatedAt:    p.CreatedAt,
	}
}

func (h *Handler) listPatterns(w http.ResponseWriter, r *http.Request) {
	bank, err := statement.ParseBank(r.URL.Query().Get("bank"))
	if err != nil {
		http.Error(w, "bank query parameter is required", http.StatusBadRequest)
		return
	}

	patterns, err := h.svc.ListPatterns(r.Context(), workspacehttp.ID(r.Context()), bank)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]patternResponse, 0, len(patterns))
	for _, p := range patterns {
		resp = append(resp, toPatternResponse(p))
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type createPatternRequest struct {
	CategoryID uuid.UUID `json:"category_id"`
	Bank       string    `json:"bank"`
	Pattern    string    `json:"pattern"`
	Priority   int       `json:"priority"`
}

type createPatternResponse struct {
	Pattern       patternResponse `json:"pattern"`
	TotalChecked  int             `json:"total_checked"`
	Recategorized int             `json:"recategorized"`
}

// createPattern stores the pattern and immediately sweeps existing
// transactions; the response reports how many were recategorized.
func (h *Handler) createPattern(w http.ResponseWriter, r *http.Request) {
	var req createPatternRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Pattern == "" {
		http.Error(w, "pattern is required", http.StatusBadRequest)
		return
	}

	p := &category.Pattern{
		CategoryID:  req.CategoryID,
		WorkspaceID: workspacehttp.ID(r.Context()),
		Bank:        statement.Bank(req.Bank),
		Pattern:     req.Pattern,
		Priority:    req.Priority,
	}

	result, err := h.svc.CreatePattern(r.Context(), p)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp := createPatternResponse{
		Pattern:       toPatternResponse(*p),
		TotalChecked:  result.TotalChecked,
		Recategorized: result.Recategorized,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) deletePattern(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "patternID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid pattern id", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeletePattern(r.Context(), workspacehttp.ID(r.Context()), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
