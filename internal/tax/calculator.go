package tax

import (
	"context"

	"github.com/dukerupert/tabletab/internal/domain"
	"github.com/shopspring/decimal"
)

// Options are the per-checkout inputs besides the cart itself.
type Options struct {
	// IntraState selects CGST+SGST; otherwise IGST at the full slab.
	IntraState           bool
	ServiceChargePercent decimal.Decimal
	TaxEnabled           bool
}

// Calculator computes totals for a cart. It has no side effects beyond the
// rate lookups made through its Resolver.
type Calculator struct {
	resolver *Resolver
}

func NewCalculator(resolver *Resolver) *Calculator {
	return &Calculator{resolver: resolver}
}

type hsnAccumulator struct {
	code    string
	taxable decimal.Decimal
	cgst    decimal.Decimal
	sgst    decimal.Decimal
	igst    decimal.Decimal
}

// ComputeTotals sums the cart, groups it by HSN code and applies tax and
// service charge. Every output amount goes through Round2, and Total is the
// sum of the rounded components so the totals identity holds exactly.
func (c *Calculator) ComputeTotals(ctx context.Context, lines []domain.CartLine, opts Options) (domain.Totals, error) {
	if err := validateLines(lines); err != nil {
		return domain.Totals{}, err
	}
	if opts.ServiceChargePercent.IsNegative() {
		return domain.Totals{}, domain.NewValidationError(opCompute, "service_charge_percent", "must not be negative")
	}

	// Rates are looked up at most once per slab within a single computation.
	rates := make(map[string]Rates)
	rateFor := func(slab decimal.Decimal) Rates {
		key := slab.String()
		r, ok := rates[key]
		if !ok {
			r = c.resolver.Resolve(ctx, slab)
			rates[key] = r
		}
		return r
	}

	subtotal := decimal.Zero
	var groups []*hsnAccumulator
	byCode := make(map[string]*hsnAccumulator)

	for _, l := range lines {
		amount := l.Amount()
		subtotal = subtotal.Add(amount)

		code := l.HSNCode
		if code == "" {
			code = domain.DefaultHSNCode
		}
		g, ok := byCode[code]
		if !ok {
			g = &hsnAccumulator{code: code}
			byCode[code] = g
			groups = append(groups, g)
		}
		g.taxable = g.taxable.Add(amount)

		if !opts.TaxEnabled {
			continue
		}
		if opts.IntraState {
			r := rateFor(l.Slab)
			g.cgst = g.cgst.Add(amount.Mul(r.CGST).Div(hundred))
			g.sgst = g.sgst.Add(amount.Mul(r.SGST).Div(hundred))
		} else {
			g.igst = g.igst.Add(amount.Mul(l.Slab).Div(hundred))
		}
	}

	cgst, sgst, igst := decimal.Zero, decimal.Zero, decimal.Zero
	breakdown := make([]domain.HSNSummary, 0, len(groups))
	for _, g := range groups {
		cgst = cgst.Add(g.cgst)
		sgst = sgst.Add(g.sgst)
		igst = igst.Add(g.igst)
		breakdown = append(breakdown, domain.HSNSummary{
			HSNCode: g.code,
			Taxable: Round2(g.taxable),
			CGST:    Round2(g.cgst),
			SGST:    Round2(g.sgst),
			IGST:    Round2(g.igst),
		})
	}

	t := domain.Totals{
		Subtotal:      Round2(subtotal),
		ServiceCharge: Round2(subtotal.Mul(opts.ServiceChargePercent).Div(hundred)),
		CGST:          Round2(cgst),
		SGST:          Round2(sgst),
		IGST:          Round2(igst),
		TaxEnabled:    opts.TaxEnabled,
		HSN:           breakdown,
	}
	t.Total = t.Subtotal.Add(t.ServiceCharge)
	if t.TaxEnabled {
		t.Total = t.Total.Add(t.TaxSum())
	}
	return t, nil
}
