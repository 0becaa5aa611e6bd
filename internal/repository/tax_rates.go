package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const getLatestTaxRate = `-- name: GetLatestTaxRate :one
SELECT id, slab, cgst_rate, sgst_rate, effective_from, created_at FROM tax_slab_rates
WHERE slab = $1 AND effective_from <= $2
ORDER BY effective_from DESC
LIMIT 1
`

type GetLatestTaxRateParams struct {
	Slab pgtype.Numeric `json:"slab"`
	AsOf pgtype.Date    `json:"as_of"`
}

func (q *Queries) GetLatestTaxRate(ctx context.Context, arg GetLatestTaxRateParams) (TaxSlabRate, error) {
	row := q.db.QueryRow(ctx, getLatestTaxRate, arg.Slab, arg.AsOf)
	var i TaxSlabRate
	err := row.Scan(
		&i.ID,
		&i.Slab,
		&i.CgstRate,
		&i.SgstRate,
		&i.EffectiveFrom,
		&i.CreatedAt,
	)
	return i, err
}

const listCurrentTaxRates = `-- name: ListCurrentTaxRates :many
SELECT DISTINCT ON (slab) id, slab, cgst_rate, sgst_rate, effective_from, created_at FROM tax_slab_rates
WHERE effective_from <= $1
ORDER BY slab, effective_from DESC
`

func (q *Queries) ListCurrentTaxRates(ctx context.Context, asOf pgtype.Date) ([]TaxSlabRate, error) {
	rows, err := q.db.Query(ctx, listCurrentTaxRates, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []TaxSlabRate{}
	for rows.Next() {
		var i TaxSlabRate
		if err := rows.Scan(
			&i.ID,
			&i.Slab,
			&i.CgstRate,
			&i.SgstRate,
			&i.EffectiveFrom,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createTaxRate = `-- name: CreateTaxRate :exec
INSERT INTO tax_slab_rates (slab, cgst_rate, sgst_rate, effective_from)
VALUES ($1, $2, $3, $4)
`

type CreateTaxRateParams struct {
	Slab          pgtype.Numeric `json:"slab"`
	CgstRate      pgtype.Numeric `json:"cgst_rate"`
	SgstRate      pgtype.Numeric `json:"sgst_rate"`
	EffectiveFrom pgtype.Date    `json:"effective_from"`
}

func (q *Queries) CreateTaxRate(ctx context.Context, arg CreateTaxRateParams) error {
	_, err := q.db.Exec(ctx, createTaxRate,
		arg.Slab,
		arg.CgstRate,
		arg.SgstRate,
		arg.EffectiveFrom,
	)
	return err
}
