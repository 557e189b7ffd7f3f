package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0,00 RUB"},
		{"600", "600,00 RUB"},
		{"1234567.5", "1 234 567,50 RUB"},
		{"999.999", "1 000,00 RUB"},
		{"-15", "-15,00 RUB"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(decimal.RequireFromString(tt.in)))
		})
	}
}
