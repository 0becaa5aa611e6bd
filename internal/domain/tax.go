package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TaxSlabRate is one configured split of a GST slab. Rows are append-only;
// the latest row whose EffectiveFrom is not after the lookup time wins.
type TaxSlabRate struct {
	Slab          decimal.Decimal `json:"slab"`
	CGSTRate      decimal.Decimal `json:"cgst_rate"`
	SGSTRate      decimal.Decimal `json:"sgst_rate"`
	EffectiveFrom time.Time       `json:"effective_from"`
}

// TaxRateRepository stores slab rate rows.
type TaxRateRepository interface {
	// Latest returns the effective row for slab at asOf, or ok=false.
	Latest(ctx context.Context, slab decimal.Decimal, asOf time.Time) (rate TaxSlabRate, ok bool, err error)

	// ListCurrent returns the effective row per slab at asOf.
	ListCurrent(ctx context.Context, asOf time.Time) ([]TaxSlabRate, error)

	// Append adds a new row. An existing (slab, effective_from) pair is a conflict.
	Append(ctx context.Context, rate TaxSlabRate) error
}
