package recurring

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	workspacehttp "github.com/mfpinhal/extrato/internal/http/workspace"
	"github.com/mfpinhal/extrato/internal/recurring"
	"github.com/mfpinhal/extrato/internal/transaction"
)

type Handler struct {
	svc *recurring.Service
}

func NewHandler(svc *recurring.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.With(workspacehttp.RequireEditor).Post("/detect", h.detect)
}

type patternResponse struct {
	ID                 uuid.UUID           `json:"id"`
	DescriptionPattern string              `json:"description_pattern"`
	Frequency          recurring.Frequency `json:"frequency"`
	Type               transaction.Type    `json:"type"`
	AvgAmount          int64               `json:"avg_amount"`
	OccurrenceCount    int                 `json:"occurrence_count"`
	IsActive           bool                `json:"is_active"`
	CreatedAt          *time.Time          `json:"created_at,omitempty"`
	UpdatedAt          *time.Time          `json:"updated_at,omitempty"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	patterns, err := h.svc.ListPatterns(r.Context(), workspacehttp.ID(r.Context()))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]patternResponse, 0, len(patterns))
	for _, p := range patterns {
		resp = append(resp, patternResponse{
			ID:                 p.ID,
			DescriptionPattern: p.DescriptionPattern,
			Frequency:          p.Frequency,
			Type:               p.Type,
			AvgAmount:          p.AvgAmount,
			OccurrenceCount:    p.OccurrenceCount,
			IsActive:           p.IsActive,
			CreatedAt:          p.CreatedAt,
			UpdatedAt:          p.UpdatedAt,
		})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type detectedPatternResponse struct {
	DescriptionPattern string              `json:"description_pattern"`
	Frequency          recurring.Frequency `json:"frequency"`
	Type               transaction.Type    `json:"type"`
	AvgAmount          int64               `json:"avg_amount"`
	Occurrences        int                 `json:"occurrences"`
}

type detectResponse struct {
	Detected int                       `json:"detected"`
	Patterns []detectedPatternResponse `json:"patterns"`
}

// detect runs recurrence detection over the workspace's full history and
// reports the accepted groups. Re-running on unchanged data refreshes
// existing patterns and reports zero newly detected.
func (h *Handler) detect(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Detect(r.Context(), workspacehttp.ID(r.Context()))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := detectResponse{
		Detected: result.Detected,
		Patterns: make([]detectedPatternResponse, 0, len(result.Patterns)),
	}

	for _, p := range result.Patterns {
		resp.Patterns = append(resp.Patterns, detectedPatternResponse{
			DescriptionPattern: p.DescriptionPattern,
			Frequency:          p.Frequency,
			Type:               p.Type,
			AvgAmount:          p.AvgAmount,
			Occurrences:        len(p.TransactionIDs),
		})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
