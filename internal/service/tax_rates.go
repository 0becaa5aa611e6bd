package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/dukerupert/tabletab/internal/auth"
	"github.com/dukerupert/tabletab/internal/domain"
)

// TaxRateService administers the append-only slab rate table.
type TaxRateService interface {
	// ListCurrent returns the split in force today for every configured slab
	ListCurrent(ctx context.Context) ([]domain.TaxSlabRate, error)

	// Append records a new split. A zero EffectiveFrom means today.
	Append(ctx context.Context, rate domain.TaxSlabRate) error
}

type taxRateService struct {
	rates    domain.TaxRateRepository
	location *time.Location
	gate     *Gate
	logger   *slog.Logger
	now      func() time.Time
}

// NewTaxRateService creates a new TaxRateService instance
func NewTaxRateService(rates domain.TaxRateRepository, loc *time.Location, gate *Gate, logger *slog.Logger) TaxRateService {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	if gate == nil {
		gate = NewGate(nil, logger)
	}
	return &taxRateService{rates: rates, location: loc, gate: gate, logger: logger, now: time.Now}
}

func (s *taxRateService) ListCurrent(ctx context.Context) ([]domain.TaxSlabRate, error) {
	if err := s.gate.Authorize(ctx, "service.tax_rate.list"); err != nil {
		return nil, err
	}
	return s.rates.ListCurrent(ctx, s.now().In(s.location))
}

func (s *taxRateService) Append(ctx context.Context, rate domain.TaxSlabRate) error {
	const op = "service.tax_rate.append"

	if err := s.gate.Authorize(ctx, op, auth.ConfigureSettings); err != nil {
		return err
	}

	var err error
	if rate.Slab.IsNegative() || rate.Slab.GreaterThan(hundred) {
		err = domain.AddFieldError(err, "slab", "must be between 0 and 100")
	}
	if rate.CGSTRate.IsNegative() {
		err = domain.AddFieldError(err, "cgst_rate", "must not be negative")
	}
	if rate.SGSTRate.IsNegative() {
		err = domain.AddFieldError(err, "sgst_rate", "must not be negative")
	}
	if err != nil {
		return err
	}
	if rate.EffectiveFrom.IsZero() {
		rate.EffectiveFrom = s.now().In(s.location)
	}

	if err := s.rates.Append(ctx, rate); err != nil {
		reportPersistence(ctx, err)
		return err
	}
	s.logger.Info("tax slab rate added",
		"slab", rate.Slab.String(),
		"cgst", rate.CGSTRate.String(),
		"sgst", rate.SGSTRate.String(),
		"effective_from", rate.EffectiveFrom.Format(time.DateOnly),
	)
	return nil
}
