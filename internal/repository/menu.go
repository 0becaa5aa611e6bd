package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const listMenuItems = `-- name: ListMenuItems :many
SELECT id, name, price, category, gst_slab, hsn_code, food_type, created_at, updated_at FROM menu_items
ORDER BY category, name
`

func (q *Queries) ListMenuItems(ctx context.Context) ([]MenuItem, error) {
	rows, err := q.db.Query(ctx, listMenuItems)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMenuItems(rows)
}

const getMenuItem = `-- name: GetMenuItem :one
SELECT id, name, price, category, gst_slab, hsn_code, food_type, created_at, updated_at FROM menu_items
WHERE id = $1
`

func (q *Queries) GetMenuItem(ctx context.Context, id int64) (MenuItem, error) {
	row := q.db.QueryRow(ctx, getMenuItem, id)
	var i MenuItem
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Price,
		&i.Category,
		&i.GstSlab,
		&i.HsnCode,
		&i.FoodType,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getMenuItemsByIDs = `-- name: GetMenuItemsByIDs :many
SELECT id, name, price, category, gst_slab, hsn_code, food_type, created_at, updated_at FROM menu_items
WHERE id = ANY($1::bigint[])
`

func (q *Queries) GetMenuItemsByIDs(ctx context.Context, ids []int64) ([]MenuItem, error) {
	rows, err := q.db.Query(ctx, getMenuItemsByIDs, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMenuItems(rows)
}

const createMenuItem = `-- name: CreateMenuItem :one
INSERT INTO menu_items (name, price, category, gst_slab, hsn_code, food_type)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, name, price, category, gst_slab, hsn_code, food_type, created_at, updated_at
`

type CreateMenuItemParams struct {
	Name     string         `json:"name"`
	Price    pgtype.Numeric `json:"price"`
	Category string         `json:"category"`
	GstSlab  pgtype.Numeric `json:"gst_slab"`
	HsnCode  string         `json:"hsn_code"`
	FoodType string         `json:"food_type"`
}

func (q *Queries) CreateMenuItem(ctx context.Context, arg CreateMenuItemParams) (MenuItem, error) {
	row := q.db.QueryRow(ctx, createMenuItem,
		arg.Name,
		arg.Price,
		arg.Category,
		arg.GstSlab,
		arg.HsnCode,
		arg.FoodType,
	)
	var i MenuItem
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Price,
		&i.Category,
		&i.GstSlab,
		&i.HsnCode,
		&i.FoodType,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const updateMenuItem = `-- name: UpdateMenuItem :one
UPDATE menu_items
SET name = $2, price = $3, category = $4, gst_slab = $5, hsn_code = $6, food_type = $7, updated_at = now()
WHERE id = $1
RETURNING id, name, price, category, gst_slab, hsn_code, food_type, created_at, updated_at
`

type UpdateMenuItemParams struct {
	ID       int64          `json:"id"`
	Name     string         `json:"name"`
	Price    pgtype.Numeric `json:"price"`
	Category string         `json:"category"`
	GstSlab  pgtype.Numeric `json:"gst_slab"`
	HsnCode  string         `json:"hsn_code"`
	FoodType string         `json:"food_type"`
}

func (q *Queries) UpdateMenuItem(ctx context.Context, arg UpdateMenuItemParams) (MenuItem, error) {
	row := q.db.QueryRow(ctx, updateMenuItem,
		arg.ID,
		arg.Name,
		arg.Price,
		arg.Category,
		arg.GstSlab,
		arg.HsnCode,
		arg.FoodType,
	)
	var i MenuItem
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Price,
		&i.Category,
		&i.GstSlab,
		&i.HsnCode,
		&i.FoodType,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const deleteMenuItem = `-- name: DeleteMenuItem :execrows
DELETE FROM menu_items WHERE id = $1
`

func (q *Queries) DeleteMenuItem(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.Exec(ctx, deleteMenuItem, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

type menuRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanMenuItems(rows menuRows) ([]MenuItem, error) {
	items := []MenuItem{}
	for rows.Next() {
		var i MenuItem
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Price,
			&i.Category,
			&i.GstSlab,
			&i.HsnCode,
			&i.FoodType,
			&i.CreatedAt,
			&i.UpdatedAt,
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
