// Package tax resolves GST slab splits and computes order totals.
package tax

import (
	"context"
	"log/slog"
	"time"

	"github.com/dukerupert/tabletab/internal/domain"
	"github.com/shopspring/decimal"
)

// RateSource looks up the effective configured split for a slab.
// domain.TaxRateRepository implementations satisfy it.
type RateSource interface {
	Latest(ctx context.Context, slab decimal.Decimal, asOf time.Time) (domain.TaxSlabRate, bool, error)
}

// Rates is the (CGST, SGST) percentage pair for a slab.
type Rates struct {
	CGST decimal.Decimal
	SGST decimal.Decimal
	// Fallback is set when no configured row applied.
	Fallback bool
}

// Resolver maps a slab percentage to its split. It never fails: a missing
// row or a lookup error degrades to an even split.
type Resolver struct {
	source     RateSource
	logger     *slog.Logger
	now        func() time.Time
	onFallback func(slab decimal.Decimal)
}

// ResolverOption customizes a Resolver.
type ResolverOption func(*Resolver)

// WithClock overrides the lookup time.
func WithClock(now func() time.Time) ResolverOption {
	return func(r *Resolver) { r.now = now }
}

// WithFallbackHook is called each time the even split is used.
func WithFallbackHook(fn func(slab decimal.Decimal)) ResolverOption {
	return func(r *Resolver) { r.onFallback = fn }
}

// NewResolver creates a resolver. A nil source always falls back.
func NewResolver(source RateSource, logger *slog.Logger, opts ...ResolverOption) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Resolver{
		source: source,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the split for slab. The source is consulted on every call
// so admin changes apply without a restart.
func (r *Resolver) Resolve(ctx context.Context, slab decimal.Decimal) Rates {
	if r.source != nil {
		row, ok, err := r.source.Latest(ctx, slab, r.now())
		switch {
		case err != nil:
			r.logger.Warn("tax rate lookup failed, using even split",
				"slab", slab.String(),
				"error", err,
			)
		case ok:
			return Rates{CGST: row.CGSTRate, SGST: row.SGSTRate}
		}
	}

	if r.onFallback != nil {
		r.onFallback(slab)
	}
	half := EvenSplit(slab)
	return Rates{CGST: half, SGST: half, Fallback: true}
}

// EvenSplit is slab/2 rounded to 4 decimal places.
func EvenSplit(slab decimal.Decimal) decimal.Decimal {
	return slab.Div(decimal.NewFromInt(2)).Round(4)
}
