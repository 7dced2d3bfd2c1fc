// Package pdftext extracts positioned text runs from PDF bank statements and
// reconstructs them into ordered lines of text.
package pdftext

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrNoText is returned when a document yields no decodable text at all.
// This is the only hard failure of the extraction step; statements that
// simply contain no recognizable rows parse to an empty result instead.
var ErrNoText = errors.New("no text could be extracted from document")

// Fragment is a single positioned text run. Coordinates use the PDF
// convention: origin at the bottom-left of the page, Y growing upwards.
type Fragment struct {
	Text string
	X    float64
	Y    float64
}

// Page holds the fragments of one page, in extraction order.
type Page struct {
	Fragments []Fragment
}

// Extract reads a PDF document and returns its text fragments page by page.
// Image-based or scanned documents have no text runs and fail with ErrNoText.
func Extract(data []byte) (pages []Page, err error) {
	// The PDF library panics on some malformed documents.
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("reading pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening pdf: %w", err)
	}

	total := 0

	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}

		content := p.Content()
		page := Page{Fragments: make([]Fragment, 0, len(content.Text))}

		for _, t := range content.Text {
			if strings.TrimSpace(t.S) == "" {
				continue
			}

			page.Fragments = append(page.Fragments, Fragment{Text: t.S, X: t.X, Y: t.Y})
			total++
		}

		pages = append(pages, page)
	}

	if total == 0 {
		return nil, ErrNoText
	}

	return pages, nil
}
