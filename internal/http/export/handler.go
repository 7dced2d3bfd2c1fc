package export

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mfpinhal/extrato/internal/export"
	workspacehttp "github.com/mfpinhal/extrato/internal/http/workspace"
	"github.com/mfpinhal/extrato/internal/transaction"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/csv", h.csv)
	r.Get("/json", h.json)
}

// parseFilter mirrors the transaction list query parameters so an export
// covers exactly what the user is looking at.
func parseFilter(r *http.Request) transaction.ListFilter {
	filter := transaction.ListFilter{}

	q := r.URL.Query()

	if s := q.Get("bank"); s != "" {
		filter.Bank = new(s)
	}

	if s := q.Get("type"); s != "" {
		filter.Type = new(transaction.Type(s))
	}

	if s := q.Get("category_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			filter.CategoryID = &id
		}
	}

	if s := q.Get("start_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.StartDate = new(t)
		}
	}

	if s := q.Get("end_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.EndDate = new(t)
		}
	}

	return filter
}

func (h *Handler) csv(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)

	if err := h.svc.CSV(r.Context(), workspacehttp.ID(r.Context()), parseFilter(r), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) json(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.json"`)

	if err := h.svc.JSON(r.Context(), workspacehttp.ID(r.Context()), parseFilter(r), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
