package tax

import (
	"fmt"

	"github.com/dukerupert/tabletab/internal/domain"
	"github.com/shopspring/decimal"
)

const opCompute = "tax.compute_totals"

var hundred = decimal.NewFromInt(100)

// ErrEmptyCart is returned when totals are requested for no lines.
var ErrEmptyCart = domain.Invalid(opCompute, "cart has no lines")

// validateLines collects every invalid line field into one ValidationError.
func validateLines(lines []domain.CartLine) error {
	if len(lines) == 0 {
		return ErrEmptyCart
	}

	var err error
	for i, l := range lines {
		if l.Quantity < 1 {
			err = addLineError(err, i, "quantity", "must be at least 1")
		}
		if l.Rate.IsNegative() {
			err = addLineError(err, i, "rate", "must not be negative")
		}
		if l.Slab.IsNegative() || l.Slab.GreaterThan(hundred) {
			err = addLineError(err, i, "gst_slab", "must be between 0 and 100")
		}
	}
	return err
}

func addLineError(err error, i int, field, msg string) error {
	err = domain.AddFieldError(err, fmt.Sprintf("lines[%d].%s", i, field), msg)
	if ve, ok := err.(*domain.ValidationError); ok {
		ve.Op = opCompute
	}
	return err
}
