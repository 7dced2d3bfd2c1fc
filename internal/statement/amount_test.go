package statement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEuropeanAmount(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"1.234,56", 123456},
		{"-2.000,00", -200000},
		{"", 0},
		{"   ", 0},
		{"10,00", 1000},
		{"-588,74", -58874},
		{"- 1.234,56", -123456},
		{"1.234.567,89", 123456789},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseEuropeanAmount(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseEuropeanAmount_Invalid(t *testing.T) {
	_, err := parseEuropeanAmount("n/a")
	assert.Error(t, err)
}
