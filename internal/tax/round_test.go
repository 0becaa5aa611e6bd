package tax_test

import (
	"testing"

	"github.com/dukerupert/tabletab/internal/tax"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0.005", "0.01"},
		{"1.005", "1.01"},
		{"2.675", "2.68"},
		{"2.674999", "2.67"},
		{"454", "454"},
		{"-1.005", "-1.01"},
		{"0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := tax.Round2(decimal.RequireFromString(tt.in))
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestRound2_Idempotent(t *testing.T) {
	for i := int64(0); i < 2000; i += 7 {
		v := decimal.New(i, -3) // 0.000 .. 1.999
		once := tax.Round2(v)
		assert.True(t, once.Equal(tax.Round2(once)), "value %s", v)
	}
}

func TestRoundFloat(t *testing.T) {
	// 1.005 is stored as 1.00499999999999989... in binary
	assert.True(t, decimal.RequireFromString("1.01").Equal(tax.RoundFloat(1.005)))
	assert.True(t, decimal.RequireFromString("0.3").Equal(tax.RoundFloat(0.1+0.2)))
}
