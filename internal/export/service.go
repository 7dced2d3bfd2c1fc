package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mfpinhal/extrato/internal/transaction"
)

// Service renders a workspace's transactions as CSV or JSON for download.
type Service struct {
	transactions *transaction.Service
}

func NewService(txService *transaction.Service) *Service {
	return &Service{transactions: txService}
}

var csvHeader = []string{
	"date", "value_date", "bank", "description", "category", "type", "amount_eur", "balance_eur",
}

// CSV writes the matching transactions as a CSV document. Amounts are signed
// euro values (expenses negative), not cents.
func (s *Service) CSV(ctx context.Context, workspaceID int64, filter transaction.ListFilter, w io.Writer) error {
	txs, err := s.transactions.List(ctx, workspaceID, filter)
	if err != nil {
		return fmt.Errorf("listing transactions: %w", err)
	}

	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, tx := range txs {
		balance := ""
		if tx.Balance != nil {
			balance = euros(*tx.Balance)
		}

		record := []string{
			tx.Date.Format(time.DateOnly),
			tx.ValueDate.Format(time.DateOnly),
			tx.Bank,
			tx.Description,
			tx.CategoryName,
			string(tx.Type),
			euros(signedAmount(tx)),
			balance,
		}

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing record: %w", err)
		}
	}

	cw.Flush()

	return cw.Error()
}

type jsonRecord struct {
	ID          uuid.UUID  `json:"id"`
	Date        string     `json:"date"`
	ValueDate   string     `json:"value_date"`
	Bank        string     `json:"bank"`
	Description string     `json:"description"`
	Category    string     `json:"category,omitempty"`
	Type        string     `json:"type"`
	AmountCents int64      `json:"amount_cents"`
	Balance     *int64     `json:"balance_cents,omitempty"`
	RecurringID *uuid.UUID `json:"recurring_pattern_id,omitempty"`
}

// JSON writes the matching transactions as a JSON array. Amounts stay in
// cents with the direction carried by the type field, matching the API
// representation.
func (s *Service) JSON(ctx context.Context, workspaceID int64, filter transaction.ListFilter, w io.Writer) error {
	txs, err := s.transactions.List(ctx, workspaceID, filter)
	if err != nil {
		return fmt.Errorf("listing transactions: %w", err)
	}

	records := make([]jsonRecord, 0, len(txs))

	for _, tx := range txs {
		records = append(records, jsonRecord{
			ID:          tx.ID,
			Date:        tx.Date.Format(time.DateOnly),
			ValueDate:   tx.ValueDate.Format(time.DateOnly),
			Bank:        tx.Bank,
			Description: tx.Description,
			Category:    tx.CategoryName,
			Type:        string(tx.Type),
			AmountCents: tx.Amount,
			Balance:     tx.Balance,
			RecurringID: tx.RecurringPatternID,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(records)
}

func signedAmount(tx *transaction.Transaction) int64 {
	if tx.Type == transaction.TypeExpense {
		return -tx.Amount
	}

	return tx.Amount
}

// euros formats cents as a plain decimal euro value ("-588.74").
func euros(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}
