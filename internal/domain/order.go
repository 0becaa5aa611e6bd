package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
// OPEN is initial; PAID and CANCELLED are terminal.
type OrderStatus string

const (
	OrderStatusOpen      OrderStatus = "OPEN"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusOpen, OrderStatusPaid, OrderStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is possible from s.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusPaid || s == OrderStatusCancelled
}

// CanTransition reports whether moving from one status to another is allowed.
// Only OPEN -> PAID and OPEN -> CANCELLED are legal.
func CanTransition(from, to OrderStatus) bool {
	return from == OrderStatusOpen && (to == OrderStatusPaid || to == OrderStatusCancelled)
}

// DefaultHSNCode is used for lines whose menu item carries no classification
// code (restaurant service).
const DefaultHSNCode = "996331"

// FormatInvoiceNumber builds "<prefix>-<YYYYMMDD>-<seq>" with seq padded to
// six digits. date is formatted in its own location.
func FormatInvoiceNumber(prefix string, date time.Time, seq int64) string {
	return fmt.Sprintf("%s-%s-%06d", prefix, date.Format("20060102"), seq)
}

// CartLine is an ephemeral snapshot of a menu item plus a quantity, used as
// input to the totals calculator and to order creation.
type CartLine struct {
	MenuItemID int64
	Name       string
	Rate       decimal.Decimal
	Slab       decimal.Decimal
	HSNCode    string
	Quantity   int
}

// Amount is quantity x rate, unrounded.
func (l CartLine) Amount() decimal.Decimal {
	return l.Rate.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// HSNSummary is the per-classification-code aggregation of a cart.
type HSNSummary struct {
	HSNCode string          `json:"hsn_code"`
	Taxable decimal.Decimal `json:"taxable"`
	CGST    decimal.Decimal `json:"cgst"`
	SGST    decimal.Decimal `json:"sgst"`
	IGST    decimal.Decimal `json:"igst"`
}

// Totals is the output of the totals calculator. Every monetary field is
// already rounded to 2 decimal places.
type Totals struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	ServiceCharge decimal.Decimal `json:"service_charge"`
	CGST          decimal.Decimal `json:"cgst"`
	SGST          decimal.Decimal `json:"sgst"`
	IGST          decimal.Decimal `json:"igst"`
	Total         decimal.Decimal `json:"total"`
	TaxEnabled    bool            `json:"tax_enabled"`
	// HSN lists classification codes in order of first appearance.
	HSN []HSNSummary `json:"hsn_breakdown"`
}

// TaxSum is cgst + sgst + igst.
func (t Totals) TaxSum() decimal.Decimal {
	return t.CGST.Add(t.SGST).Add(t.IGST)
}

// OrderLine is the persisted snapshot of a cart line.
type OrderLine struct {
	MenuItemID int64           `json:"menu_item_id"`
	Name       string          `json:"name"`
	HSNCode    string          `json:"hsn_code"`
	Quantity   int             `json:"quantity"`
	Rate       decimal.Decimal `json:"rate"`
	Slab       decimal.Decimal `json:"gst_slab"`
	Amount     decimal.Decimal `json:"line_amount"`
}

// Order is a persisted bill. Totals are fixed at creation.
type Order struct {
	ID            int64           `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	InvoiceDate   time.Time       `json:"invoice_date"`
	TableNumber   string          `json:"table_number"`
	CustomerName  string          `json:"customer_name,omitempty"`
	CustomerGSTIN string          `json:"customer_gstin,omitempty"`
	PlaceOfSupply string          `json:"place_of_supply,omitempty"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	ServiceCharge decimal.Decimal `json:"service_charge"`
	CGST          decimal.Decimal `json:"cgst"`
	SGST          decimal.Decimal `json:"sgst"`
	IGST          decimal.Decimal `json:"igst"`
	Total         decimal.Decimal `json:"total"`
	TaxEnabled    bool            `json:"tax_enabled"`
	Status        OrderStatus     `json:"status"`
	SettledAt     *time.Time      `json:"settled_at,omitempty"`
	Lines         []OrderLine     `json:"lines"`
}

// NewOrderParams is everything needed to persist a new order.
type NewOrderParams struct {
	TableNumber   string
	CustomerName  string
	CustomerGSTIN string
	PlaceOfSupply string
	Totals        Totals
	Lines         []CartLine
	Status        OrderStatus
	InvoiceDate   time.Time
}

// DailySales aggregates settled orders invoiced on a single calendar day.
type DailySales struct {
	Day        time.Time       `json:"day"`
	OrderCount int             `json:"order_count"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Total      decimal.Decimal `json:"total"`
}

// OrderRepository persists orders and enforces the status state machine.
type OrderRepository interface {
	// Create stores the order and its lines in one transaction and returns
	// the assigned invoice number. Failures match ErrPersistence.
	Create(ctx context.Context, params NewOrderParams) (string, error)

	// GetByInvoice returns ENOTFOUND when no order has the invoice number.
	GetByInvoice(ctx context.Context, invoiceNumber string) (*Order, error)

	// ListOpen returns OPEN orders ordered by invoice date.
	ListOpen(ctx context.Context) ([]Order, error)

	// Transition moves an OPEN order to the target status. It reports false
	// when the order is missing or no longer OPEN; exactly one concurrent
	// caller observes true.
	Transition(ctx context.Context, invoiceNumber string, to OrderStatus) (bool, error)

	// DailySales sums PAID orders invoiced on the given day.
	DailySales(ctx context.Context, day time.Time) (DailySales, error)
}
