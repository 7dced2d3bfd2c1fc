package transaction

import (
	"time"

	"github.com/google/uuid"

	"github.com/mfpinhal/extrato/internal/transaction"
)

type transactionResponse struct {
	ID                  uuid.UUID        `json:"id"`
	Bank                string           `json:"bank"`
	Amount              int64            `json:"amount"`
	Type                transaction.Type `json:"type"`
	Description         string           `json:"description"`
	RawDescription      string           `json:"raw_description,omitempty"`
	Date                time.Time        `json:"date"`
	ValueDate           time.Time        `json:"value_date"`
	Balance             *int64           `json:"balance,omitempty"`
	CategoryID          *uuid.UUID       `json:"category_id,omitempty"`
	CategoryName        string           `json:"category_name,omitempty"`
	ManuallyCategorized bool             `json:"manually_categorized"`
	DirectionInferred   bool             `json:"direction_inferred"`
	RecurringPatternID  *uuid.UUID       `json:"recurring_pattern_id,omitempty"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           *time.Time       `json:"updated_at,omitempty"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:                  tx.ID,
		Bank:                tx.Bank,
		Amount:              tx.Amount,
		Type:                tx.Type,
		Description:         tx.Description,
		RawDescription:      tx.RawDescription,
		Date:                tx.Date,
		ValueDate:           tx.ValueDate,
		Balance:             tx.Balance,
		CategoryID:          tx.CategoryID,
		CategoryName:        tx.CategoryName,
		ManuallyCategorized: tx.ManuallyCategorized,
		DirectionInferred:   tx.DirectionInferred,
		RecurringPatternID:  tx.RecurringPatternID,
		CreatedAt:           tx.CreatedAt,
		UpdatedAt:           tx.UpdatedAt,
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
