package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/dukerupert/tabletab/internal/domain"
	"github.com/dukerupert/tabletab/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// TaxRateRepository reads slab rows on every call; nothing is cached.
type TaxRateRepository struct {
	repo repository.Querier
}

var _ domain.TaxRateRepository = (*TaxRateRepository)(nil)

func NewTaxRateRepository(repo repository.Querier) *TaxRateRepository {
	return &TaxRateRepository{repo: repo}
}

func (r *TaxRateRepository) Latest(ctx context.Context, slab decimal.Decimal, asOf time.Time) (domain.TaxSlabRate, bool, error) {
	row, err := r.repo.GetLatestTaxRate(ctx, repository.GetLatestTaxRateParams{
		Slab: toNumeric(slab),
		AsOf: toDate(asOf),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TaxSlabRate{}, false, nil
		}
		return domain.TaxSlabRate{}, false, domain.Internal(err, "postgres.tax_rate.latest", "failed to load tax rate")
	}
	return mapTaxRate(row), true, nil
}

func (r *TaxRateRepository) ListCurrent(ctx context.Context, asOf time.Time) ([]domain.TaxSlabRate, error) {
	rows, err := r.repo.ListCurrentTaxRates(ctx, toDate(asOf))
	if err != nil {
		return nil, domain.Internal(err, "postgres.tax_rate.list", "failed to list tax rates")
	}
	out := make([]domain.TaxSlabRate, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapTaxRate(row))
	}
	return out, nil
}

func (r *TaxRateRepository) Append(ctx context.Context, rate domain.TaxSlabRate) error {
	const op = "postgres.tax_rate.append"

	err := r.repo.CreateTaxRate(ctx, repository.CreateTaxRateParams{
		Slab:          toNumeric(rate.Slab),
		CgstRate:      toNumeric(rate.CGSTRate),
		SgstRate:      toNumeric(rate.SGSTRate),
		EffectiveFrom: toDate(rate.EffectiveFrom),
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict(op, "a rate for this slab and date already exists")
		}
		return domain.Persistence(err, op)
	}
	return nil
}

func mapTaxRate(row repository.TaxSlabRate) domain.TaxSlabRate {
	return domain.TaxSlabRate{
		Slab:          fromNumeric(row.Slab),
		CGSTRate:      fromNumeric(row.CgstRate),
		SGSTRate:      fromNumeric(row.SgstRate),
		EffectiveFrom: row.EffectiveFrom.Time,
	}
}
