package statement

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/mfpinhal/extrato/internal/pdftext"
)

var pdfMagic = []byte("%PDF")

// Service parses uploaded statement documents. PDF uploads go through text
// extraction and the bank's row grammar; CSV uploads are supported for CGD
// account exports only.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Parse turns the raw bytes of one uploaded statement into a ParseResult.
// The file hash always covers the raw input bytes, so repeat uploads of the
// same document deduplicate regardless of how the content parsed.
func (s *Service) Parse(bank Bank, data []byte) (*ParseResult, error) {
	sum := sha256.Sum256(data)

	result := &ParseResult{
		Bank:     bank,
		FileHash: hex.EncodeToString(sum[:]),
	}

	if bytes.HasPrefix(data, pdfMagic) {
		p, err := parserFor(bank)
		if err != nil {
			return nil, err
		}

		pages, err := pdftext.Extract(data)
		if err != nil {
			return nil, fmt.Errorf("extracting text: %w", err)
		}

		txs, per := p.parse(pdftext.Lines(pages))
		result.Transactions = txs
		result.PeriodStart = per.start
		result.PeriodEnd = per.end

		return result, nil
	}

	if bank != BankCGD {
		return nil, fmt.Errorf("bank %q: csv statements are only supported for cgd", bank)
	}

	txs, per, err := parseCGDCSV(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	result.Transactions = txs
	result.PeriodStart = per.start
	result.PeriodEnd = per.end

	return result, nil
}
