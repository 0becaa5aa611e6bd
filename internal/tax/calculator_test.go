package tax_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dukerupert/tabletab/internal/domain"
	"github.com/dukerupert/tabletab/internal/tax"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSource serves fixed rows keyed by slab and counts lookups.
type stubSource struct {
	rows  map[string]domain.TaxSlabRate
	err   error
	calls int
}

func (s *stubSource) Latest(ctx context.Context, slab decimal.Decimal, asOf time.Time) (domain.TaxSlabRate, bool, error) {
	s.calls++
	if s.err != nil {
		return domain.TaxSlabRate{}, false, s.err
	}
	row, ok := s.rows[slab.String()]
	return row, ok, nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func line(id int64, name string, qty int, rate, slab, hsn string) domain.CartLine {
	return domain.CartLine{
		MenuItemID: id,
		Name:       name,
		Quantity:   qty,
		Rate:       dec(rate),
		Slab:       dec(slab),
		HSNCode:    hsn,
	}
}

func exampleCart() []domain.CartLine {
	return []domain.CartLine{
		line(1, "Item A", 2, "100.00", "5", "X"),
		line(2, "Item B", 1, "200.00", "12", "Y"),
	}
}

func newCalculator(src tax.RateSource) *tax.Calculator {
	return tax.NewCalculator(tax.NewResolver(src, nil))
}

func assertDec(t *testing.T, want string, got decimal.Decimal, msg ...any) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s %v", want, got.String(), msg)
}

func TestComputeTotals_WorkedExampleWithTax(t *testing.T) {
	calc := newCalculator(&stubSource{})

	totals, err := calc.ComputeTotals(context.Background(), exampleCart(), tax.Options{
		IntraState:           true,
		ServiceChargePercent: dec("5"),
		TaxEnabled:           true,
	})
	require.NoError(t, err)

	assertDec(t, "400.00", totals.Subtotal)
	assertDec(t, "20.00", totals.ServiceCharge)
	assertDec(t, "17.00", totals.CGST)
	assertDec(t, "17.00", totals.SGST)
	assertDec(t, "0", totals.IGST)
	assertDec(t, "454.00", totals.Total)
	assert.True(t, totals.TaxEnabled)

	require.Len(t, totals.HSN, 2)
	assert.Equal(t, "X", totals.HSN[0].HSNCode)
	assertDec(t, "200.00", totals.HSN[0].Taxable)
	assertDec(t, "5.00", totals.HSN[0].CGST)
	assertDec(t, "5.00", totals.HSN[0].SGST)
	assert.Equal(t, "Y", totals.HSN[1].HSNCode)
	assertDec(t, "12.00", totals.HSN[1].CGST)
	assertDec(t, "12.00", totals.HSN[1].SGST)
}

func TestComputeTotals_WorkedExampleTaxDisabled(t *testing.T) {
	src := &stubSource{}
	calc := newCalculator(src)

	totals, err := calc.ComputeTotals(context.Background(), exampleCart(), tax.Options{
		IntraState:           true,
		ServiceChargePercent: dec("5"),
		TaxEnabled:           false,
	})
	require.NoError(t, err)

	assertDec(t, "420.00", totals.Total)
	assert.True(t, totals.TaxSum().IsZero())
	assert.False(t, totals.TaxEnabled)
	assert.Zero(t, src.calls, "no rate lookups when tax is disabled")
}

func TestComputeTotals_InterStateUsesIGST(t *testing.T) {
	src := &stubSource{}
	calc := newCalculator(src)

	totals, err := calc.ComputeTotals(context.Background(), exampleCart(), tax.Options{
		IntraState:           false,
		ServiceChargePercent: dec("5"),
		TaxEnabled:           true,
	})
	require.NoError(t, err)

	assertDec(t, "34.00", totals.IGST)
	assert.True(t, totals.CGST.IsZero())
	assert.True(t, totals.SGST.IsZero())
	assertDec(t, "454.00", totals.Total)
	assertDec(t, "10.00", totals.HSN[0].IGST)
	assert.Zero(t, src.calls, "IGST applies the full slab without a split lookup")
}

func TestComputeTotals_ConfiguredRatesOverrideFallback(t *testing.T) {
	src := &stubSource{rows: map[string]domain.TaxSlabRate{
		"5": {Slab: dec("5"), CGSTRate: dec("2"), SGSTRate: dec("3")},
	}}
	calc := newCalculator(src)

	totals, err := calc.ComputeTotals(context.Background(), []domain.CartLine{
		line(1, "Dal", 1, "100.00", "5", "996331"),
		line(2, "Roti", 4, "25.00", "5", "996331"),
	}, tax.Options{IntraState: true, TaxEnabled: true})
	require.NoError(t, err)

	assertDec(t, "4.00", totals.CGST)
	assertDec(t, "6.00", totals.SGST)
	assertDec(t, "210.00", totals.Total)
	assert.Equal(t, 1, src.calls, "one lookup per distinct slab")
	require.Len(t, totals.HSN, 1)
	assertDec(t, "200.00", totals.HSN[0].Taxable)
}

func TestComputeTotals_BlankHSNUsesDefault(t *testing.T) {
	calc := newCalculator(nil)

	totals, err := calc.ComputeTotals(context.Background(), []domain.CartLine{
		line(1, "Lassi", 1, "60.00", "5", ""),
	}, tax.Options{IntraState: true, TaxEnabled: true})
	require.NoError(t, err)

	require.Len(t, totals.HSN, 1)
	assert.Equal(t, domain.DefaultHSNCode, totals.HSN[0].HSNCode)
}

func TestComputeTotals_HalfPaiseRoundsUp(t *testing.T) {
	calc := newCalculator(nil)

	// 3 x 0.35 = 1.05; each 2.5% half is 0.02625 and service charge is 0.105
	totals, err := calc.ComputeTotals(context.Background(), []domain.CartLine{
		line(1, "Mint", 3, "0.35", "5", "996331"),
	}, tax.Options{IntraState: true, TaxEnabled: true, ServiceChargePercent: dec("10")})
	require.NoError(t, err)

	assertDec(t, "1.05", totals.Subtotal)
	assertDec(t, "0.11", totals.ServiceCharge, "0.105 rounds half up")
	assertDec(t, "0.03", totals.CGST)
	assertDec(t, "0.03", totals.SGST)
	assertDec(t, "1.22", totals.Total)
}

func TestComputeTotals_TotalIdentity(t *testing.T) {
	carts := [][]domain.CartLine{
		{line(1, "a", 3, "33.33", "5", "1")},
		{line(1, "a", 7, "19.99", "18", "1"), line(2, "b", 1, "0.01", "28", "2")},
		{line(1, "a", 1, "1.005", "12", "1"), line(2, "b", 2, "2.675", "5", "1")},
		{line(1, "a", 11, "123.45", "12", "1"), line(2, "b", 9, "67.89", "18", "2"), line(3, "c", 1, "0", "5", "3")},
	}

	calc := newCalculator(nil)
	for i, cart := range carts {
		for _, taxEnabled := range []bool{true, false} {
			for _, intra := range []bool{true, false} {
				t.Run(fmt.Sprintf("cart%d/tax=%v/intra=%v", i, taxEnabled, intra), func(t *testing.T) {
					totals, err := calc.ComputeTotals(context.Background(), cart, tax.Options{
						IntraState:           intra,
						ServiceChargePercent: dec("7.5"),
						TaxEnabled:           taxEnabled,
					})
					require.NoError(t, err)

					want := totals.Subtotal.Add(totals.ServiceCharge)
					if taxEnabled {
						want = want.Add(totals.CGST).Add(totals.SGST).Add(totals.IGST)
					}
					assert.True(t, want.Equal(totals.Total))

					sum := decimal.Zero
					for _, l := range cart {
						sum = sum.Add(l.Amount())
					}
					assert.True(t, tax.Round2(sum).Equal(totals.Subtotal))
				})
			}
		}
	}
}

func TestComputeTotals_InvalidLines(t *testing.T) {
	calc := newCalculator(nil)

	tests := []struct {
		name   string
		lines  []domain.CartLine
		fields []string
	}{
		{
			name:   "zero quantity",
			lines:  []domain.CartLine{line(1, "a", 0, "10", "5", "1")},
			fields: []string{"lines[0].quantity"},
		},
		{
			name:   "negative rate and slab out of range",
			lines:  []domain.CartLine{line(1, "a", 1, "10", "5", "1"), line(2, "b", 1, "-1", "150", "1")},
			fields: []string{"lines[1].rate", "lines[1].gst_slab"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := calc.ComputeTotals(context.Background(), tt.lines, tax.Options{TaxEnabled: true})
			require.Error(t, err)
			assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))

			fields := domain.GetValidationFields(err)
			for _, f := range tt.fields {
				assert.Contains(t, fields, f)
			}
		})
	}

	_, err := calc.ComputeTotals(context.Background(), nil, tax.Options{})
	assert.ErrorIs(t, err, tax.ErrEmptyCart)

	_, err = calc.ComputeTotals(context.Background(), exampleCart(), tax.Options{ServiceChargePercent: dec("-1")})
	assert.True(t, domain.IsValidationError(err))
}

func TestResolver_Fallback(t *testing.T) {
	var fallbacks []string
	hook := tax.WithFallbackHook(func(slab decimal.Decimal) { fallbacks = append(fallbacks, slab.String()) })

	t.Run("missing row", func(t *testing.T) {
		fallbacks = nil
		r := tax.NewResolver(&stubSource{}, nil, hook)
		rates := r.Resolve(context.Background(), dec("12"))
		assert.True(t, rates.Fallback)
		assertDec(t, "6", rates.CGST)
		assertDec(t, "6", rates.SGST)
		assert.Equal(t, []string{"12"}, fallbacks)
	})

	t.Run("lookup error degrades", func(t *testing.T) {
		r := tax.NewResolver(&stubSource{err: errors.New("connection reset")}, nil)
		rates := r.Resolve(context.Background(), dec("18"))
		assert.True(t, rates.Fallback)
		assertDec(t, "9", rates.CGST)
	})

	t.Run("configured row", func(t *testing.T) {
		fallbacks = nil
		src := &stubSource{rows: map[string]domain.TaxSlabRate{
			"28": {Slab: dec("28"), CGSTRate: dec("14"), SGSTRate: dec("14")},
		}}
		r := tax.NewResolver(src, nil, hook)
		rates := r.Resolve(context.Background(), dec("28"))
		assert.False(t, rates.Fallback)
		assertDec(t, "14", rates.SGST)
		assert.Empty(t, fallbacks)
	})
}

func TestEvenSplit(t *testing.T) {
	tests := map[string]string{
		"5":      "2.5",
		"12":     "6",
		"0.25":   "0.125",
		"0.0003": "0.0002",
		"0":      "0",
	}
	for slab, want := range tests {
		t.Run(slab, func(t *testing.T) {
			assertDec(t, want, tax.EvenSplit(dec(slab)))
		})
	}
}
