package invoice

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAmountInWords(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"0", "Zero Only"},
		{"0.99", "Zero Only"},
		{"7", "Seven Only"},
		{"19", "Nineteen Only"},
		{"40", "Forty Only"},
		{"100", "One Hundred Only"},
		{"454.00", "Four Hundred Fifty-Four Only"},
		{"454.99", "Four Hundred Fifty-Four Only"},
		{"50000", "Fifty Thousand Only"},
		{"123456", "One Lakh Twenty-Three Thousand Four Hundred Fifty-Six Only"},
		{"1000001", "Ten Lakh One Only"},
		{"12345678", "One Crore Twenty-Three Lakh Forty-Five Thousand Six Hundred Seventy-Eight Only"},
		{"1000000000", "One Hundred Crore Only"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, AmountInWords(decimal.RequireFromString(tt.amount)))
		})
	}
}
