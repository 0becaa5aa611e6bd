// Package memory provides mutex-guarded in-process implementations of the
// domain repositories. They back STORE_DRIVER=memory and the service tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dukerupert/tabletab/internal/domain"
	"github.com/dukerupert/tabletab/internal/tax"
	"github.com/shopspring/decimal"
)

// OrderStore keeps orders keyed by invoice number.
type OrderStore struct {
	mu     sync.Mutex
	prefix string
	seq    int64
	orders map[string]*domain.Order
	now    func() time.Time
}

var _ domain.OrderRepository = (*OrderStore)(nil)

// NewOrderStore creates an empty store that numbers invoices with prefix.
func NewOrderStore(prefix string) *OrderStore {
	return &OrderStore{
		prefix: prefix,
		orders: make(map[string]*domain.Order),
		now:    time.Now,
	}
}

func (s *OrderStore) Create(ctx context.Context, params domain.NewOrderParams) (string, error) {
	const op = "memory.order.create"

	status := params.Status
	if status == "" {
		status = domain.OrderStatusOpen
	}
	if !status.Valid() {
		return "", domain.Invalid(op, fmt.Sprintf("unknown order status %q", status))
	}

	lines := make([]domain.OrderLine, 0, len(params.Lines))
	for i, l := range params.Lines {
		// Same row checks as the order_lines table.
		if l.Quantity < 1 || l.Rate.IsNegative() {
			return "", domain.Persistence(fmt.Errorf("line %d violates order_lines checks", i), op)
		}

		hsn := l.HSNCode
		if hsn == "" {
			hsn = domain.DefaultHSNCode
		}
		lines = append(lines, domain.OrderLine{
			MenuItemID: l.MenuItemID,
			Name:       l.Name,
			HSNCode:    hsn,
			Quantity:   l.Quantity,
			Rate:       l.Rate,
			Slab:       l.Slab,
			Amount:     tax.Round2(l.Amount()),
		})
	}

	date := params.InvoiceDate
	if date.IsZero() {
		date = s.now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	t := params.Totals
	order := &domain.Order{
		ID:            s.seq,
		InvoiceNumber: domain.FormatInvoiceNumber(s.prefix, date, s.seq),
		InvoiceDate:   date,
		TableNumber:   params.TableNumber,
		CustomerName:  params.CustomerName,
		CustomerGSTIN: params.CustomerGSTIN,
		PlaceOfSupply: params.PlaceOfSupply,
		Subtotal:      t.Subtotal,
		ServiceCharge: t.ServiceCharge,
		CGST:          t.CGST,
		SGST:          t.SGST,
		IGST:          t.IGST,
		Total:         t.Total,
		TaxEnabled:    t.TaxEnabled,
		Status:        status,
		Lines:         lines,
	}
	if status.Terminal() {
		settled := date
		order.SettledAt = &settled
	}
	s.orders[order.InvoiceNumber] = order

	return order.InvoiceNumber, nil
}

func (s *OrderStore) GetByInvoice(ctx context.Context, invoiceNumber string) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[invoiceNumber]
	if !ok {
		return nil, domain.NotFound("memory.order.get", "order", invoiceNumber)
	}
	return cloneOrder(o), nil
}

func (s *OrderStore) ListOpen(ctx context.Context) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.Order
	for _, o := range s.orders {
		if o.Status == domain.OrderStatusOpen {
			out = append(out, *cloneOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].InvoiceDate.Equal(out[j].InvoiceDate) {
			return out[i].ID < out[j].ID
		}
		return out[i].InvoiceDate.Before(out[j].InvoiceDate)
	})
	return out, nil
}

// Transition performs the check and the status change under one lock.
func (s *OrderStore) Transition(ctx context.Context, invoiceNumber string, to domain.OrderStatus) (bool, error) {
	if !to.Terminal() {
		return false, domain.Invalid("memory.order.transition", fmt.Sprintf("cannot transition to %s", to))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[invoiceNumber]
	if !ok || !domain.CanTransition(o.Status, to) {
		return false, nil
	}
	now := s.now()
	o.Status = to
	o.SettledAt = &now
	return true, nil
}

func (s *OrderStore) DailySales(ctx context.Context, day time.Time) (domain.DailySales, error) {
	start, end := dayBounds(day)
	report := domain.DailySales{Day: start, Subtotal: decimal.Zero, Total: decimal.Zero}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range s.orders {
		if o.Status != domain.OrderStatusPaid {
			continue
		}
		if o.InvoiceDate.Before(start) || !o.InvoiceDate.Before(end) {
			continue
		}
		report.OrderCount++
		report.Subtotal = report.Subtotal.Add(o.Subtotal)
		report.Total = report.Total.Add(o.Total)
	}
	return report, nil
}

// dayBounds returns the half-open calendar day containing t in t's location.
func dayBounds(t time.Time) (time.Time, time.Time) {
	y, m, d := t.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

func cloneOrder(o *domain.Order) *domain.Order {
	c := *o
	c.Lines = append([]domain.OrderLine(nil), o.Lines...)
	if o.SettledAt != nil {
		settled := *o.SettledAt
		c.SettledAt = &settled
	}
	return &c
}
