package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const nextOrderID = `-- name: NextOrderID :one
SELECT nextval(pg_get_serial_sequence('orders', 'id'))::bigint
`

func (q *Queries) NextOrderID(ctx context.Context) (int64, error) {
	row := q.db.QueryRow(ctx, nextOrderID)
	var column_1 int64
	err := row.Scan(&column_1)
	return column_1, err
}

const createOrder = `-- name: CreateOrder :exec
INSERT INTO orders (
    id, invoice_number, invoice_date, table_number,
    customer_name, customer_gstin, place_of_supply,
    subtotal, service_charge, cgst, sgst, igst, total,
    tax_enabled, status, settled_at
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16
)
`

type CreateOrderParams struct {
	ID            int64              `json:"id"`
	InvoiceNumber string             `json:"invoice_number"`
	InvoiceDate   pgtype.Timestamptz `json:"invoice_date"`
	TableNumber   string             `json:"table_number"`
	CustomerName  pgtype.Text        `json:"customer_name"`
	CustomerGstin pgtype.Text        `json:"customer_gstin"`
	PlaceOfSupply pgtype.Text        `json:"place_of_supply"`
	Subtotal      pgtype.Numeric     `json:"subtotal"`
	ServiceCharge pgtype.Numeric     `json:"service_charge"`
	Cgst          pgtype.Numeric     `json:"cgst"`
	Sgst          pgtype.Numeric     `json:"sgst"`
	Igst          pgtype.Numeric     `json:"igst"`
	Total         pgtype.Numeric     `json:"total"`
	TaxEnabled    bool               `json:"tax_enabled"`
	Status        string             `json:"status"`
	SettledAt     pgtype.Timestamptz `json:"settled_at"`
}

func (q *Queries) CreateOrder(ctx context.Context, arg CreateOrderParams) error {
	_, err := q.db.Exec(ctx, createOrder,
		arg.ID,
		arg.InvoiceNumber,
		arg.InvoiceDate,
		arg.TableNumber,
		arg.CustomerName,
		arg.CustomerGstin,
		arg.PlaceOfSupply,
		arg.Subtotal,
		arg.ServiceCharge,
		arg.Cgst,
		arg.Sgst,
		arg.Igst,
		arg.Total,
		arg.TaxEnabled,
		arg.Status,
		arg.SettledAt,
	)
	return err
}

const createOrderLine = `-- name: CreateOrderLine :exec
INSERT INTO order_lines (
    order_id, menu_item_id, item_name, hsn_code,
    quantity, rate, gst_slab, line_amount, position
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8, $9
)
`

type CreateOrderLineParams struct {
	OrderID    int64          `json:"order_id"`
	MenuItemID int64          `json:"menu_item_id"`
	ItemName   string         `json:"item_name"`
	HsnCode    string         `json:"hsn_code"`
	Quantity   int32          `json:"quantity"`
	Rate       pgtype.Numeric `json:"rate"`
	GstSlab    pgtype.Numeric `json:"gst_slab"`
	LineAmount pgtype.Numeric `json:"line_amount"`
	Position   int32          `json:"position"`
}

func (q *Queries) CreateOrderLine(ctx context.Context, arg CreateOrderLineParams) error {
	_, err := q.db.Exec(ctx, createOrderLine,
		arg.OrderID,
		arg.MenuItemID,
		arg.ItemName,
		arg.HsnCode,
		arg.Quantity,
		arg.Rate,
		arg.GstSlab,
		arg.LineAmount,
		arg.Position,
	)
	return err
}

const getOrderByInvoice = `-- name: GetOrderByInvoice :one
SELECT id, invoice_number, invoice_date, table_number, customer_name, customer_gstin, place_of_supply, subtotal, service_charge, cgst, sgst, igst, total, tax_enabled, status, settled_at, created_at FROM orders
WHERE invoice_number = $1
`

func (q *Queries) GetOrderByInvoice(ctx context.Context, invoiceNumber string) (Order, error) {
	row := q.db.QueryRow(ctx, getOrderByInvoice, invoiceNumber)
	var i Order
	err := row.Scan(
		&i.ID,
		&i.InvoiceNumber,
		&i.InvoiceDate,
		&i.TableNumber,
		&i.CustomerName,
		&i.CustomerGstin,
		&i.PlaceOfSupply,
		&i.Subtotal,
		&i.ServiceCharge,
		&i.Cgst,
		&i.Sgst,
		&i.Igst,
		&i.Total,
		&i.TaxEnabled,
		&i.Status,
		&i.SettledAt,
		&i.CreatedAt,
	)
	return i, err
}

const listOpenOrders = `-- name: ListOpenOrders :many
SELECT id, invoice_number, invoice_date, table_number, customer_name, customer_gstin, place_of_supply, subtotal, service_charge, cgst, sgst, igst, total, tax_enabled, status, settled_at, created_at FROM orders
WHERE status = 'OPEN'
ORDER BY invoice_date, id
`

func (q *Queries) ListOpenOrders(ctx context.Context) ([]Order, error) {
	rows, err := q.db.Query(ctx, listOpenOrders)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Order{}
	for rows.Next() {
		var i Order
		if err := rows.Scan(
			&i.ID,
			&i.InvoiceNumber,
			&i.InvoiceDate,
			&i.TableNumber,
			&i.CustomerName,
			&i.CustomerGstin,
			&i.PlaceOfSupply,
			&i.Subtotal,
			&i.ServiceCharge,
			&i.Cgst,
			&i.Sgst,
			&i.Igst,
			&i.Total,
			&i.TaxEnabled,
			&i.Status,
			&i.SettledAt,
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

const listOrderLines = `-- name: ListOrderLines :many
SELECT id, order_id, menu_item_id, item_name, hsn_code, quantity, rate, gst_slab, line_amount, position FROM order_lines
WHERE order_id = ANY($1::bigint[])
ORDER BY order_id, position
`

func (q *Queries) ListOrderLines(ctx context.Context, orderIds []int64) ([]OrderLine, error) {
	rows, err := q.db.Query(ctx, listOrderLines, orderIds)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []OrderLine{}
	for rows.Next() {
		var i OrderLine
		if err := rows.Scan(
			&i.ID,
			&i.OrderID,
			&i.MenuItemID,
			&i.ItemName,
			&i.HsnCode,
			&i.Quantity,
			&i.Rate,
			&i.GstSlab,
			&i.LineAmount,
			&i.Position,
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

const transitionOpenOrder = `-- name: TransitionOpenOrder :one
UPDATE orders
SET status = $2, settled_at = now()
WHERE invoice_number = $1 AND status = 'OPEN'
RETURNING id
`

type TransitionOpenOrderParams struct {
	InvoiceNumber string `json:"invoice_number"`
	Status        string `json:"status"`
}

func (q *Queries) TransitionOpenOrder(ctx context.Context, arg TransitionOpenOrderParams) (int64, error) {
	row := q.db.QueryRow(ctx, transitionOpenOrder, arg.InvoiceNumber, arg.Status)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const dailyPaidSales = `-- name: DailyPaidSales :one
SELECT
    count(*)::bigint AS order_count,
    COALESCE(sum(subtotal), 0)::numeric AS subtotal,
    COALESCE(sum(total), 0)::numeric AS total
FROM orders
WHERE status = 'PAID'
  AND invoice_date >= $1
  AND invoice_date < $2
`

type DailyPaidSalesParams struct {
	DayStart pgtype.Timestamptz `json:"day_start"`
	DayEnd   pgtype.Timestamptz `json:"day_end"`
}

type DailyPaidSalesRow struct {
	OrderCount int64          `json:"order_count"`
	Subtotal   pgtype.Numeric `json:"subtotal"`
	Total      pgtype.Numeric `json:"total"`
}

func (q *Queries) DailyPaidSales(ctx context.Context, arg DailyPaidSalesParams) (DailyPaidSalesRow, error) {
	row := q.db.QueryRow(ctx, dailyPaidSales, arg.DayStart, arg.DayEnd)
	var i DailyPaidSalesRow
	err := row.Scan(&i.OrderCount, &i.Subtotal, &i.Total)
	return i, err
}
