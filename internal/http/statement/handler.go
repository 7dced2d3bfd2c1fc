package statement

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mfpinhal/extrato/internal/category"
	workspacehttp "github.com/mfpinhal/extrato/internal/http/workspace"
	"github.com/mfpinhal/extrato/internal/statement"
	"github.com/mfpinhal/extrato/internal/transaction"
)

const maxUploadBytes = 20 << 20

type Handler struct {
	statements *statement.Service
	categories *category.Service
	txSvc      *transaction.Service
}

func NewHandler(statements *statement.Service, categories *category.Service, txSvc *transaction.Service) *Handler {
	return &Handler{
		statements: statements,
		categories: categories,
		txSvc:      txSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.With(workspacehttp.RequireEditor).Post("/", h.upload)
	r.With(workspacehttp.RequireEditor).Post("/confirm", h.confirm)
}

type parsedTransactionDTO struct {
	Date                  time.Time        `json:"date"`
	ValueDate             time.Time        `json:"value_date"`
	Description           string           `json:"description"`
	Amount                int64            `json:"amount"`
	Balance               *int64           `json:"balance,omitempty"`
	Type                  transaction.Type `json:"type"`
	RawText               string           `json:"raw_text"`
	DirectionInferred     bool             `json:"direction_inferred"`
	SuggestedCategoryID   *uuid.UUID       `json:"suggested_category_id,omitempty"`
	SuggestedCategoryName string           `json:"suggested_category_name,omitempty"`
}

type previewResponse struct {
	Bank         statement.Bank         `json:"bank"`
	FileHash     string                 `json:"file_hash"`
	PeriodStart  *time.Time             `json:"period_start,omitempty"`
	PeriodEnd    *time.Time             `json:"period_end,omitempty"`
	Transactions []parsedTransactionDTO `json:"transactions"`
}

// upload parses a statement file and returns the preview for user review.
// Nothing is persisted until the client confirms.
func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	bank, err := statement.ParseBank(r.FormValue("bank"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "failed to read file", http.StatusBadRequest)
		return
	}

	result, err := h.statements.Parse(bank, data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	workspaceID := workspacehttp.ID(r.Context())

	if err := h.categories.SuggestBatch(r.Context(), workspaceID, bank, result.Transactions); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := previewResponse{
		Bank:         result.Bank,
		FileHash:     result.FileHash,
		PeriodStart:  result.PeriodStart,
		PeriodEnd:    result.PeriodEnd,
		Transactions: make([]parsedTransactionDTO, 0, len(result.Transactions)),
	}

	for _, tx := range result.Transactions {
		resp.Transactions = append(resp.Transactions, parsedTransactionDTO{
			Date:                  tx.Date,
			ValueDate:             tx.ValueDate,
			Description:           tx.Description,
			Amount:                tx.Amount,
			Balance:               tx.Balance,
			Type:                  tx.Type,
			RawText:               tx.RawText,
			DirectionInferred:     tx.DirectionInferred,
			SuggestedCategoryID:   tx.SuggestedCategoryID,
			SuggestedCategoryName: tx.SuggestedCategoryName,
		})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type confirmTransactionDTO struct {
	Date              time.Time        `json:"date"`
	ValueDate         time.Time        `json:"value_date"`
	Description       string           `json:"description"`
	RawText           string           `json:"raw_text"`
	Amount            int64            `json:"amount"`
	Balance           *int64           `json:"balance,omitempty"`
	Type              transaction.Type `json:"type"`
	CategoryID        *uuid.UUID       `json:"category_id,omitempty"`
	DirectionInferred bool             `json:"direction_inferred"`
}

type confirmRequest struct {
	Bank         string                  `json:"bank"`
	FileHash     string                  `json:"file_hash"`
	Transactions []confirmTransactionDTO `json:"transactions"`
}

type confirmResponse struct {
	Imported     int                   `json:"imported"`
	Transactions []transactionResponse `json:"transactions"`
}

// confirm persists the reviewed rows of one parsed statement as a single
// atomic import. Re-confirming a statement already imported in the workspace
// answers 409.
func (h *Handler) confirm(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := statement.ParseBank(req.Bank); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.FileHash == "" {
		http.Error(w, "file_hash is required", http.StatusBadRequest)
		return
	}

	params := make([]transaction.CreateParams, 0, len(req.Transactions))
	for _, tx := range req.Transactions {
		params = append(params, transaction.CreateParams{
			Amount:            tx.Amount,
			Type:              tx.Type,
			Description:       tx.Description,
			RawDescription:    tx.RawText,
			Date:              tx.Date,
			ValueDate:         tx.ValueDate,
			Balance:           tx.Balance,
			CategoryID:        tx.CategoryID,
			DirectionInferred: tx.DirectionInferred,
		})
	}

	txs, err := h.txSvc.ImportStatement(r.Context(), workspacehttp.ID(r.Context()), req.Bank, req.FileHash, params)
	if err != nil {
		if errors.Is(err, transaction.ErrDuplicateStatement) {
			http.Error(w, "statement already imported", http.StatusConflict)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	resp := confirmResponse{
		Imported:     len(txs),
		Transactions: make([]transactionResponse, 0, len(txs)),
	}

	for _, tx := range txs {
		resp.Transactions = append(resp.Transactions, toTxResponse(tx))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type transactionResponse struct {
	ID          uuid.UUID        `json:"id"`
	Bank        string           `json:"bank"`
	Amount      int64            `json:"amount"`
	Type        transaction.Type `json:"type"`
	Description string           `json:"description"`
	Date        time.Time        `json:"date"`
	ValueDate   time.Time        `json:"value_date"`
	CategoryID  *uuid.UUID       `json:"category_id,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

func toTxResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		Bank:        tx.Bank,
		Amount:      tx.Amount,
		Type:        tx.Type,
		Description: tx.Description,
		Date:        tx.Date,
		ValueDate:   tx.ValueDate,
		CategoryID:  tx.CategoryID,
		CreatedAt:   tx.CreatedAt,
	}
}
