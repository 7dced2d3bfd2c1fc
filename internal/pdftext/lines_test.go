package pdftext_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mfpinhal/extrato/internal/pdftext"
)

func TestLines_OrdersTopToBottomLeftToRight(t *testing.T) {
	pages := []pdftext.Page{
		{Fragments: []pdftext.Fragment{
			{Text: "SALDO", X: 300, Y: 100},
			{Text: "DESCRIÇÃO", X: 120, Y: 100},
			{Text: "DATA", X: 10, Y: 100},
			{Text: "1.234,56", X: 300, Y: 80},
			{Text: "COMPRA CONTINENTE", X: 120, Y: 80},
			{Text: "05-01-2026", X: 10, Y: 80},
		}},
	}

	assert.Equal(t, []string{
		"DATA DESCRIÇÃO SALDO",
		"05-01-2026 COMPRA CONTINENTE 1.234,56",
	}, pdftext.Lines(pages))
}

func TestLines_RoundsSubPixelNoiseIntoOneLine(t *testing.T) {
	pages := []pdftext.Page{
		{Fragments: []pdftext.Fragment{
			{Text: "left", X: 10, Y: 50.2},
			{Text: "middle", X: 50, Y: 49.8},
			{Text: "right", X: 90, Y: 50.4},
		}},
	}

	assert.Equal(t, []string{"left middle right"}, pdftext.Lines(pages))
}

func TestLines_PagesKeepDocumentOrder(t *testing.T) {
	pages := []pdftext.Page{
		{Fragments: []pdftext.Fragment{{Text: "page one", X: 0, Y: 10}}},
		{Fragments: []pdftext.Fragment{{Text: "page two", X: 0, Y: 900}}},
	}

	assert.Equal(t, []string{"page one", "page two"}, pdftext.Lines(pages))
}

func TestLines_SkipsBlankLinesAndEmptyInput(t *testing.T) {
	assert.Empty(t, pdftext.Lines(nil))

	pages := []pdftext.Page{
		{Fragments: []pdftext.Fragment{
			{Text: "   ", X: 0, Y: 20},
			{Text: "only line", X: 0, Y: 10},
		}},
	}
	assert.Equal(t, []string{"only line"}, pdftext.Lines(pages))
}

func TestLines_Deterministic(t *testing.T) {
	pages := []pdftext.Page{
		{Fragments: []pdftext.Fragment{
			{Text: "b", X: 20, Y: 10},
			{Text: "a", X: 10, Y: 10},
			{Text: "c", X: 30, Y: 10},
		}},
	}

	first := pdftext.Lines(pages)
	for range 10 {
		assert.Equal(t, first, pdftext.Lines(pages))
	}
}
