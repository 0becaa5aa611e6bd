package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dukerupert/tabletab/internal/auth"
	"github.com/dukerupert/tabletab/internal/domain"
	"github.com/dukerupert/tabletab/internal/events"
	"github.com/dukerupert/tabletab/internal/tax"
	"github.com/dukerupert/tabletab/internal/telemetry"
	"github.com/shopspring/decimal"
)

// OrderService provides checkout and order lifecycle operations
type OrderService interface {
	// ComputeTotals prices a cart without persisting anything
	ComputeTotals(ctx context.Context, req CheckoutRequest) (domain.Totals, error)

	// CreateOrder prices the cart and stores it as an OPEN order
	CreateOrder(ctx context.Context, req CheckoutRequest) (*domain.Order, error)

	// GetOrder returns the order with its lines, or ENOTFOUND
	GetOrder(ctx context.Context, invoiceNumber string) (*domain.Order, error)

	// ListOpenOrders returns OPEN orders by invoice date
	ListOpenOrders(ctx context.Context) ([]domain.Order, error)

	// MarkPaid moves an OPEN order to PAID. It returns false, without
	// error, when the order is missing or already settled.
	MarkPaid(ctx context.Context, invoiceNumber string) (bool, error)

	// CancelOrder moves an OPEN order to CANCELLED with MarkPaid's semantics
	CancelOrder(ctx context.Context, invoiceNumber string) (bool, error)

	// SettleConflict explains a false result from MarkPaid or CancelOrder:
	// ErrOrderNotFound, ErrOrderSettled, or nil if the order is open again.
	SettleConflict(ctx context.Context, invoiceNumber string) error
}

// CartItem references a catalog entry by id.
type CartItem struct {
	MenuItemID int64
	Quantity   int
}

// CheckoutRequest describes a cart and its billing overrides. Items are
// priced from the current catalog and repeated ids are merged. Lines are used
// as given when a front end already holds snapshots; only identical catalog
// snapshots are merged. Items wins when both are set.
type CheckoutRequest struct {
	TableNumber   string
	CustomerName  string
	CustomerGSTIN string
	PlaceOfSupply string

	Items []CartItem
	Lines []domain.CartLine

	// Nil overrides fall back to BillingDefaults.
	ServiceChargePercent *decimal.Decimal
	TaxEnabled           *bool
}

// BillingDefaults apply when a checkout request does not override them.
type BillingDefaults struct {
	ServiceChargePercent decimal.Decimal
	TaxEnabled           bool
}

// OrderServiceConfig groups the collaborators of NewOrderService.
type OrderServiceConfig struct {
	Orders     domain.OrderRepository
	Menu       domain.MenuRepository
	Calculator *tax.Calculator
	Seller     domain.SellerProfile
	Defaults   BillingDefaults
	Location   *time.Location
	Events     events.Publisher
	Metrics    *telemetry.BillingMetrics
	Gate       *Gate
	Logger     *slog.Logger
}

type orderService struct {
	orders   domain.OrderRepository
	menu     domain.MenuRepository
	calc     *tax.Calculator
	seller   domain.SellerProfile
	defaults BillingDefaults
	location *time.Location
	events   events.Publisher
	metrics  *telemetry.BillingMetrics
	gate     *Gate
	logger   *slog.Logger
	now      func() time.Time
}

// NewOrderService creates a new OrderService instance
func NewOrderService(cfg OrderServiceConfig) OrderService {
	s := &orderService{
		orders:   cfg.Orders,
		menu:     cfg.Menu,
		calc:     cfg.Calculator,
		seller:   cfg.Seller,
		defaults: cfg.Defaults,
		location: cfg.Location,
		events:   cfg.Events,
		metrics:  cfg.Metrics,
		gate:     cfg.Gate,
		logger:   cfg.Logger,
		now:      time.Now,
	}
	if s.location == nil {
		s.location = time.UTC
	}
	if s.events == nil {
		s.events = events.NoopPublisher{}
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.gate == nil {
		s.gate = NewGate(cfg.Metrics, s.logger)
	}
	return s
}

func (s *orderService) ComputeTotals(ctx context.Context, req CheckoutRequest) (domain.Totals, error) {
	const op = "service.order.compute_totals"

	if err := s.gate.Authorize(ctx, op); err != nil {
		return domain.Totals{}, err
	}
	lines, err := s.cartLines(ctx, req)
	if err != nil {
		return domain.Totals{}, err
	}
	return s.calc.ComputeTotals(ctx, lines, s.options(req))
}

func (s *orderService) CreateOrder(ctx context.Context, req CheckoutRequest) (*domain.Order, error) {
	const op = "service.order.create"

	if err := s.gate.Authorize(ctx, op, auth.CreateOrder); err != nil {
		return nil, err
	}

	lines, err := s.cartLines(ctx, req)
	if err != nil {
		return nil, err
	}
	opts := s.options(req)
	totals, err := s.calc.ComputeTotals(ctx, lines, opts)
	if err != nil {
		return nil, err
	}

	params := domain.NewOrderParams{
		TableNumber:   req.TableNumber,
		CustomerName:  req.CustomerName,
		CustomerGSTIN: req.CustomerGSTIN,
		PlaceOfSupply: req.PlaceOfSupply,
		Totals:        totals,
		Lines:         lines,
		Status:        domain.OrderStatusOpen,
		InvoiceDate:   s.now().In(s.location),
	}
	invoiceNumber, err := s.orders.Create(ctx, params)
	if err != nil {
		reportPersistence(ctx, err)
		return nil, err
	}

	order, err := s.orders.GetByInvoice(ctx, invoiceNumber)
	if err != nil {
		// Create committed; answer with what was persisted.
		s.logger.Warn("created order could not be read back",
			"invoice_number", invoiceNumber,
			"error", err,
		)
		order = committedOrder(invoiceNumber, params)
	}

	s.metrics.OrderCreated(supplyKind(opts), order.Total, len(order.Lines))
	telemetry.AddBreadcrumb(ctx, "order", "order created", map[string]interface{}{
		"invoice_number": invoiceNumber,
		"total":          order.Total.StringFixed(2),
	})
	s.logger.Info("order created",
		"invoice_number", invoiceNumber,
		"table", order.TableNumber,
		"total", order.Total.StringFixed(2),
		"lines", len(order.Lines),
	)

	e := events.New(events.OrderCreated)
	e.InvoiceNumber = invoiceNumber
	e.TableNumber = order.TableNumber
	e.Status = string(order.Status)
	e.Total = &order.Total
	s.publish(ctx, e)

	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, invoiceNumber string) (*domain.Order, error) {
	const op = "service.order.get"

	if err := s.gate.Authorize(ctx, op, auth.LookupBill); err != nil {
		return nil, err
	}
	return s.orders.GetByInvoice(ctx, invoiceNumber)
}

func (s *orderService) ListOpenOrders(ctx context.Context) ([]domain.Order, error) {
	const op = "service.order.list_open"

	if err := s.gate.Authorize(ctx, op); err != nil {
		return nil, err
	}
	return s.orders.ListOpen(ctx)
}

func (s *orderService) MarkPaid(ctx context.Context, invoiceNumber string) (bool, error) {
	return s.settle(ctx, "service.order.mark_paid", invoiceNumber, domain.OrderStatusPaid, events.OrderPaid)
}

func (s *orderService) CancelOrder(ctx context.Context, invoiceNumber string) (bool, error) {
	return s.settle(ctx, "service.order.cancel", invoiceNumber, domain.OrderStatusCancelled, events.OrderCancelled)
}

func (s *orderService) SettleConflict(ctx context.Context, invoiceNumber string) error {
	const op = "service.order.settle_conflict"

	if err := s.gate.Authorize(ctx, op, auth.CheckoutBill); err != nil {
		return err
	}
	order, err := s.orders.GetByInvoice(ctx, invoiceNumber)
	switch {
	case domain.ErrorCode(err) == domain.ENOTFOUND:
		return ErrOrderNotFound
	case err != nil:
		return err
	case order.Status.Terminal():
		return domain.WrapError(ErrOrderSettled, domain.ECONFLICT, op, "Order is already "+string(order.Status))
	}
	return nil
}

func (s *orderService) settle(ctx context.Context, op, invoiceNumber string, to domain.OrderStatus, eventType events.Type) (bool, error) {
	if err := s.gate.Authorize(ctx, op, auth.CheckoutBill); err != nil {
		return false, err
	}

	ok, err := s.orders.Transition(ctx, invoiceNumber, to)
	if err != nil {
		reportPersistence(ctx, err)
		return false, err
	}
	if !ok {
		s.logger.Info("order not settled",
			"invoice_number", invoiceNumber,
			"target", to,
		)
		return false, nil
	}

	s.metrics.OrderSettled(string(to))
	s.logger.Info("order settled", "invoice_number", invoiceNumber, "status", to)
	telemetry.AddBreadcrumb(ctx, "order", "order settled", map[string]interface{}{
		"invoice_number": invoiceNumber,
		"status":         string(to),
	})

	e := events.New(eventType)
	e.InvoiceNumber = invoiceNumber
	e.Status = string(to)
	s.publish(ctx, e)
	return true, nil
}

// cartLines snapshots the requested items from the catalog, merging repeated
// ids into one line in order of first appearance.
func (s *orderService) cartLines(ctx context.Context, req CheckoutRequest) ([]domain.CartLine, error) {
	const op = "service.order.cart"

	if len(req.Items) == 0 {
		if len(req.Lines) == 0 {
			return nil, ErrNoCartItems
		}
		return mergeLines(req.Lines), nil
	}

	var verr error
	quantities := make(map[int64]int, len(req.Items))
	var ids []int64
	for i, item := range req.Items {
		if item.Quantity < 1 {
			verr = domain.AddFieldError(verr, fmt.Sprintf("items[%d].quantity", i), "must be at least 1")
			continue
		}
		if _, seen := quantities[item.MenuItemID]; !seen {
			ids = append(ids, item.MenuItemID)
		}
		quantities[item.MenuItemID] += item.Quantity
	}
	if verr != nil {
		return nil, verr
	}

	items, err := s.menu.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]domain.MenuItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	lines := make([]domain.CartLine, 0, len(ids))
	for _, id := range ids {
		item, ok := byID[id]
		if !ok {
			return nil, domain.NotFound(op, "menu item", fmt.Sprint(id))
		}
		lines = append(lines, item.CartLine(quantities[id]))
	}
	return lines, nil
}

func (s *orderService) options(req CheckoutRequest) tax.Options {
	opts := tax.Options{
		IntraState:           s.seller.IntraState(req.PlaceOfSupply),
		ServiceChargePercent: s.defaults.ServiceChargePercent,
		TaxEnabled:           s.defaults.TaxEnabled,
	}
	if req.ServiceChargePercent != nil {
		opts.ServiceChargePercent = *req.ServiceChargePercent
	}
	if req.TaxEnabled != nil {
		opts.TaxEnabled = *req.TaxEnabled
	}
	return opts
}

func (s *orderService) publish(ctx context.Context, e events.Event) {
	if err := s.events.Publish(ctx, e); err != nil {
		s.logger.Warn("failed to publish event",
			"type", e.Type,
			"invoice_number", e.InvoiceNumber,
			"error", err,
		)
	}
}

// mergeLines folds a snapshot into an earlier one only when both carry the
// same catalog id and identical name, rate, slab and HSN code. Lines without
// a catalog id are never merged.
func mergeLines(in []domain.CartLine) []domain.CartLine {
	out := make([]domain.CartLine, 0, len(in))
	for _, l := range in {
		if i := sameSnapshot(out, l); i >= 0 {
			out[i].Quantity += l.Quantity
			continue
		}
		out = append(out, l)
	}
	return out
}

func sameSnapshot(lines []domain.CartLine, l domain.CartLine) int {
	if l.MenuItemID == 0 {
		return -1
	}
	for i, o := range lines {
		if o.MenuItemID == l.MenuItemID &&
			o.Name == l.Name &&
			o.HSNCode == l.HSNCode &&
			o.Rate.Equal(l.Rate) &&
			o.Slab.Equal(l.Slab) {
			return i
		}
	}
	return -1
}

// committedOrder rebuilds an order from what Create persisted.
func committedOrder(invoiceNumber string, p domain.NewOrderParams) *domain.Order {
	order := &domain.Order{
		InvoiceNumber: invoiceNumber,
		InvoiceDate:   p.InvoiceDate,
		TableNumber:   p.TableNumber,
		CustomerName:  p.CustomerName,
		CustomerGSTIN: p.CustomerGSTIN,
		PlaceOfSupply: p.PlaceOfSupply,
		Subtotal:      p.Totals.Subtotal,
		ServiceCharge: p.Totals.ServiceCharge,
		CGST:          p.Totals.CGST,
		SGST:          p.Totals.SGST,
		IGST:          p.Totals.IGST,
		Total:         p.Totals.Total,
		TaxEnabled:    p.Totals.TaxEnabled,
		Status:        p.Status,
		Lines:         make([]domain.OrderLine, 0, len(p.Lines)),
	}
	for _, l := range p.Lines {
		hsn := l.HSNCode
		if hsn == "" {
			hsn = domain.DefaultHSNCode
		}
		order.Lines = append(order.Lines, domain.OrderLine{
			MenuItemID: l.MenuItemID,
			Name:       l.Name,
			HSNCode:    hsn,
			Quantity:   l.Quantity,
			Rate:       l.Rate,
			Slab:       l.Slab,
			Amount:     tax.Round2(l.Amount()),
		})
	}
	return order
}

func supplyKind(opts tax.Options) string {
	switch {
	case !opts.TaxEnabled:
		return "untaxed"
	case opts.IntraState:
		return "intra"
	default:
		return "inter"
	}
}
