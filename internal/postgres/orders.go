package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dukerupert/tabletab/internal/domain"
	"github.com/dukerupert/tabletab/internal/repository"
	"github.com/dukerupert/tabletab/internal/tax"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// OrderRepository stores orders and lines in one transaction per write.
type OrderRepository struct {
	db     DB
	repo   *repository.Queries
	prefix string
}

var _ domain.OrderRepository = (*OrderRepository)(nil)

// NewOrderRepository creates a repository that numbers invoices with prefix.
func NewOrderRepository(db DB, prefix string) *OrderRepository {
	return &OrderRepository{db: db, repo: repository.New(db), prefix: prefix}
}

// Create takes the order id from the sequence inside the transaction so the
// invoice number is derived from, and traceable to, the row it names.
func (r *OrderRepository) Create(ctx context.Context, params domain.NewOrderParams) (string, error) {
	const op = "postgres.order.create"

	status := params.Status
	if status == "" {
		status = domain.OrderStatusOpen
	}
	if !status.Valid() {
		return "", domain.Invalid(op, fmt.Sprintf("unknown order status %q", status))
	}
	date := params.InvoiceDate
	if date.IsZero() {
		date = time.Now()
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return "", domain.Persistence(fmt.Errorf("begin transaction: %w", err), op)
	}
	// Rollback after Commit is a no-op.
	defer func() { _ = tx.Rollback(ctx) }()

	q := r.repo.WithTx(tx)

	id, err := q.NextOrderID(ctx)
	if err != nil {
		return "", domain.Persistence(fmt.Errorf("next order id: %w", err), op)
	}
	number := domain.FormatInvoiceNumber(r.prefix, date, id)

	var settledAt pgtype.Timestamptz
	if status.Terminal() {
		settledAt = toTimestamptz(date)
	}

	t := params.Totals
	err = q.CreateOrder(ctx, repository.CreateOrderParams{
		ID:            id,
		InvoiceNumber: number,
		InvoiceDate:   toTimestamptz(date),
		TableNumber:   params.TableNumber,
		CustomerName:  toText(params.CustomerName),
		CustomerGstin: toText(params.CustomerGSTIN),
		PlaceOfSupply: toText(params.PlaceOfSupply),
		Subtotal:      toNumeric(t.Subtotal),
		ServiceCharge: toNumeric(t.ServiceCharge),
		Cgst:          toNumeric(t.CGST),
		Sgst:          toNumeric(t.SGST),
		Igst:          toNumeric(t.IGST),
		Total:         toNumeric(t.Total),
		TaxEnabled:    t.TaxEnabled,
		Status:        string(status),
		SettledAt:     settledAt,
	})
	if err != nil {
		return "", domain.Persistence(fmt.Errorf("insert order: %w", err), op)
	}

	for i, l := range params.Lines {
		hsn := l.HSNCode
		if hsn == "" {
			hsn = domain.DefaultHSNCode
		}
		err = q.CreateOrderLine(ctx, repository.CreateOrderLineParams{
			OrderID:    id,
			MenuItemID: l.MenuItemID,
			ItemName:   l.Name,
			HsnCode:    hsn,
			Quantity:   int32(l.Quantity),
			Rate:       toNumeric(l.Rate),
			GstSlab:    toNumeric(l.Slab),
			LineAmount: toNumeric(tax.Round2(l.Amount())),
			Position:   int32(i),
		})
		if err != nil {
			return "", domain.Persistence(fmt.Errorf("insert line %d: %w", i, err), op)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", domain.Persistence(fmt.Errorf("commit: %w", err), op)
	}
	return number, nil
}

func (r *OrderRepository) GetByInvoice(ctx context.Context, invoiceNumber string) (*domain.Order, error) {
	const op = "postgres.order.get"

	row, err := r.repo.GetOrderByInvoice(ctx, invoiceNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound(op, "order", invoiceNumber)
		}
		return nil, domain.Internal(err, op, "failed to load order")
	}

	lines, err := r.repo.ListOrderLines(ctx, []int64{row.ID})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load order lines")
	}

	order := mapOrder(row)
	for _, l := range lines {
		order.Lines = append(order.Lines, mapOrderLine(l))
	}
	return &order, nil
}

func (r *OrderRepository) ListOpen(ctx context.Context) ([]domain.Order, error) {
	const op = "postgres.order.list_open"

	rows, err := r.repo.ListOpenOrders(ctx)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list open orders")
	}
	if len(rows) == 0 {
		return []domain.Order{}, nil
	}

	ids := make([]int64, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	lines, err := r.repo.ListOrderLines(ctx, ids)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load order lines")
	}
	byOrder := make(map[int64][]domain.OrderLine, len(rows))
	for _, l := range lines {
		byOrder[l.OrderID] = append(byOrder[l.OrderID], mapOrderLine(l))
	}

	orders := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		o := mapOrder(row)
		o.Lines = byOrder[row.ID]
		orders = append(orders, o)
	}
	return orders, nil
}

// Transition relies on the status = 'OPEN' predicate of a single UPDATE, so
// concurrent callers cannot both succeed.
func (r *OrderRepository) Transition(ctx context.Context, invoiceNumber string, to domain.OrderStatus) (bool, error) {
	const op = "postgres.order.transition"

	if !to.Terminal() {
		return false, domain.Invalid(op, fmt.Sprintf("cannot transition to %s", to))
	}

	_, err := r.repo.TransitionOpenOrder(ctx, repository.TransitionOpenOrderParams{
		InvoiceNumber: invoiceNumber,
		Status:        string(to),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, domain.Persistence(err, op)
	}
	return true, nil
}

func (r *OrderRepository) DailySales(ctx context.Context, day time.Time) (domain.DailySales, error) {
	y, m, d := day.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, day.Location())

	row, err := r.repo.DailyPaidSales(ctx, repository.DailyPaidSalesParams{
		DayStart: toTimestamptz(start),
		DayEnd:   toTimestamptz(start.AddDate(0, 0, 1)),
	})
	if err != nil {
		return domain.DailySales{}, domain.Internal(err, "postgres.order.daily_sales", "failed to compute daily sales")
	}
	return domain.DailySales{
		Day:        start,
		OrderCount: int(row.OrderCount),
		Subtotal:   fromNumeric(row.Subtotal),
		Total:      fromNumeric(row.Total),
	}, nil
}

func mapOrder(row repository.Order) domain.Order {
	return domain.Order{
		ID:            row.ID,
		InvoiceNumber: row.InvoiceNumber,
		InvoiceDate:   row.InvoiceDate.Time,
		TableNumber:   row.TableNumber,
		CustomerName:  row.CustomerName.String,
		CustomerGSTIN: row.CustomerGstin.String,
		PlaceOfSupply: row.PlaceOfSupply.String,
		Subtotal:      fromNumeric(row.Subtotal),
		ServiceCharge: fromNumeric(row.ServiceCharge),
		CGST:          fromNumeric(row.Cgst),
		SGST:          fromNumeric(row.Sgst),
		IGST:          fromNumeric(row.Igst),
		Total:         fromNumeric(row.Total),
		TaxEnabled:    row.TaxEnabled,
		Status:        domain.OrderStatus(row.Status),
		SettledAt:     fromTimestamptzPtr(row.SettledAt),
	}
}

func mapOrderLine(l repository.OrderLine) domain.OrderLine {
	return domain.OrderLine{
		MenuItemID: l.MenuItemID,
		Name:       l.ItemName,
		HSNCode:    l.HsnCode,
		Quantity:   int(l.Quantity),
		Rate:       fromNumeric(l.Rate),
		Slab:       fromNumeric(l.GstSlab),
		Amount:     fromNumeric(l.LineAmount),
	}
}
