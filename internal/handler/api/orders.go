package api

import (
	"context"
	"io"
	"net/http"

	"github.com/dukerupert/tabletab/internal/domain"
	"github.com/dukerupert/tabletab/internal/handler"
	"github.com/dukerupert/tabletab/internal/service"
	"github.com/shopspring/decimal"
)

// OrderHandler handles checkout, order lifecycle and invoice document routes
type OrderHandler struct {
	orders   service.OrderService
	invoices service.InvoiceService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orders service.OrderService, invoices service.InvoiceService) *OrderHandler {
	return &OrderHandler{orders: orders, invoices: invoices}
}

type cartItemRequest struct {
	MenuItemID int64 `json:"menu_item_id" validate:"required,gt=0"`
	Quantity   int   `json:"quantity" validate:"min=1,max=999"`
}

type previewRequest struct {
	PlaceOfSupply        string            `json:"place_of_supply" validate:"omitempty,numeric,len=2"`
	Items                []cartItemRequest `json:"items" validate:"required,min=1,dive"`
	ServiceChargePercent *decimal.Decimal  `json:"service_charge_percent,omitempty" validate:"omitempty,gte=0,lte=100"`
	TaxEnabled           *bool             `json:"tax_enabled,omitempty"`
}

type createOrderRequest struct {
	TableNumber          string            `json:"table_number" validate:"required,max=16"`
	CustomerName         string            `json:"customer_name" validate:"max=120"`
	CustomerGSTIN        string            `json:"customer_gstin" validate:"omitempty,len=15,alphanum"`
	PlaceOfSupply        string            `json:"place_of_supply" validate:"omitempty,numeric,len=2"`
	Items                []cartItemRequest `json:"items" validate:"required,min=1,dive"`
	ServiceChargePercent *decimal.Decimal  `json:"service_charge_percent,omitempty" validate:"omitempty,gte=0,lte=100"`
	TaxEnabled           *bool             `json:"tax_enabled,omitempty"`
}

func cartItems(in []cartItemRequest) []service.CartItem {
	out := make([]service.CartItem, len(in))
	for i, it := range in {
		out[i] = service.CartItem{MenuItemID: it.MenuItemID, Quantity: it.Quantity}
	}
	return out
}

// Preview handles POST /api/orders/preview. Nothing is stored.
func (h *OrderHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := handler.DecodeJSON(r, "api.order.preview", &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	totals, err := h.orders.ComputeTotals(r.Context(), service.CheckoutRequest{
		PlaceOfSupply:        req.PlaceOfSupply,
		Items:                cartItems(req.Items),
		ServiceChargePercent: req.ServiceChargePercent,
		TaxEnabled:           req.TaxEnabled,
	})
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, totals)
}

// Create handles POST /api/orders
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := handler.DecodeJSON(r, "api.order.create", &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	order, err := h.orders.CreateOrder(r.Context(), service.CheckoutRequest{
		TableNumber:          req.TableNumber,
		CustomerName:         req.CustomerName,
		CustomerGSTIN:        req.CustomerGSTIN,
		PlaceOfSupply:        req.PlaceOfSupply,
		Items:                cartItems(req.Items),
		ServiceChargePercent: req.ServiceChargePercent,
		TaxEnabled:           req.TaxEnabled,
	})
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/orders/"+order.InvoiceNumber)
	handler.JSON(w, http.StatusCreated, order)
}

// ListOpen handles GET /api/orders/open
func (h *OrderHandler) ListOpen(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListOpenOrders(r.Context())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	handler.JSON(w, http.StatusOK, map[string]any{"orders": orders})
}

// Get handles GET /api/orders/{invoice_number}
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.GetOrder(r.Context(), r.PathValue("invoice_number"))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, order)
}

// MarkPaid handles POST /api/orders/{invoice_number}/paid
func (h *OrderHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	h.settle(w, r, h.orders.MarkPaid, domain.OrderStatusPaid)
}

// Cancel handles POST /api/orders/{invoice_number}/cancel
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.settle(w, r, h.orders.CancelOrder, domain.OrderStatusCancelled)
}

func (h *OrderHandler) settle(w http.ResponseWriter, r *http.Request, fn func(context.Context, string) (bool, error), to domain.OrderStatus) {
	invoiceNumber := r.PathValue("invoice_number")

	ok, err := fn(r.Context(), invoiceNumber)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	if !ok {
		err := h.orders.SettleConflict(r.Context(), invoiceNumber)
		if err == nil {
			err = service.ErrOrderSettled
		}
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, map[string]string{
		"invoice_number": invoiceNumber,
		"status":         string(to),
	})
}

// InvoiceText handles GET /api/orders/{invoice_number}/invoice
func (h *OrderHandler) InvoiceText(w http.ResponseWriter, r *http.Request) {
	text, err := h.invoices.RenderInvoiceText(r.Context(), r.PathValue("invoice_number"))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, text)
}

// EInvoice handles GET /api/orders/{invoice_number}/einvoice. Orders below
// the e-invoice threshold answer 204.
func (h *OrderHandler) EInvoice(w http.ResponseWriter, r *http.Request) {
	doc, err := h.invoices.TryBuildEInvoice(r.Context(), r.PathValue("invoice_number"))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	if doc == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	handler.JSON(w, http.StatusOK, doc)
}

// Archive handles POST /api/orders/{invoice_number}/archive
func (h *OrderHandler) Archive(w http.ResponseWriter, r *http.Request) {
	result, err := h.invoices.Archive(r.Context(), r.PathValue("invoice_number"))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, result)
}
