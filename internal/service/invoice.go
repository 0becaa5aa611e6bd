package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dukerupert/tabletab/internal/auth"
	"github.com/dukerupert/tabletab/internal/domain"
	"github.com/dukerupert/tabletab/internal/invoice"
	"github.com/dukerupert/tabletab/internal/storage"
	"github.com/dukerupert/tabletab/internal/telemetry"
)

// InvoiceService produces the printable invoice and the e-invoice document
// for persisted orders.
type InvoiceService interface {
	RenderInvoiceText(ctx context.Context, invoiceNumber string) (string, error)

	// TryBuildEInvoice returns nil, nil when the order total is below the
	// e-invoice threshold.
	TryBuildEInvoice(ctx context.Context, invoiceNumber string) (*invoice.Document, error)

	// Archive writes the invoice text, and the e-invoice JSON when one is
	// required, to document storage.
	Archive(ctx context.Context, invoiceNumber string) (*ArchiveResult, error)
}

// ArchiveResult holds the public locations of archived documents.
// EInvoiceURL is empty for orders below the threshold.
type ArchiveResult struct {
	TextURL     string `json:"text_url"`
	EInvoiceURL string `json:"einvoice_url,omitempty"`
}

type invoiceService struct {
	orders   domain.OrderRepository
	renderer *invoice.Renderer
	einvoice *invoice.EInvoiceBuilder
	store    storage.Storage
	metrics  *telemetry.BillingMetrics
	gate     *Gate
	logger   *slog.Logger
}

// NewInvoiceService creates a new InvoiceService instance. store may be nil,
// in which case Archive reports ENOTIMPL.
func NewInvoiceService(
	orders domain.OrderRepository,
	renderer *invoice.Renderer,
	einvoice *invoice.EInvoiceBuilder,
	store storage.Storage,
	metrics *telemetry.BillingMetrics,
	gate *Gate,
	logger *slog.Logger,
) InvoiceService {
	if logger == nil {
		logger = slog.Default()
	}
	if gate == nil {
		gate = NewGate(metrics, logger)
	}
	return &invoiceService{
		orders:   orders,
		renderer: renderer,
		einvoice: einvoice,
		store:    store,
		metrics:  metrics,
		gate:     gate,
		logger:   logger,
	}
}

func (s *invoiceService) RenderInvoiceText(ctx context.Context, invoiceNumber string) (string, error) {
	order, err := s.load(ctx, "service.invoice.render_text", invoiceNumber)
	if err != nil {
		return "", err
	}
	return s.renderer.Render(order), nil
}

func (s *invoiceService) TryBuildEInvoice(ctx context.Context, invoiceNumber string) (*invoice.Document, error) {
	order, err := s.load(ctx, "service.invoice.build_einvoice", invoiceNumber)
	if err != nil {
		return nil, err
	}
	doc := s.einvoice.Build(order)
	if doc != nil {
		s.metrics.EInvoiceBuilt()
	}
	return doc, nil
}

func (s *invoiceService) Archive(ctx context.Context, invoiceNumber string) (*ArchiveResult, error) {
	const op = "service.invoice.archive"

	if err := s.gate.Authorize(ctx, op, auth.CheckoutBill); err != nil {
		return nil, err
	}
	if s.store == nil {
		return nil, ErrArchiveDisabled
	}
	order, err := s.orders.GetByInvoice(ctx, invoiceNumber)
	if err != nil {
		return nil, err
	}

	result := &ArchiveResult{}
	text := s.renderer.Render(order)
	result.TextURL, err = s.store.Put(ctx, textKey(invoiceNumber), strings.NewReader(text), "text/plain; charset=utf-8")
	if err != nil {
		return nil, domain.Internal(err, op, "Failed to archive invoice text")
	}
	s.metrics.DocumentArchived("text")

	if doc := s.einvoice.Build(order); doc != nil {
		s.metrics.EInvoiceBuilt()
		body, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, domain.Internal(err, op, "Failed to encode e-invoice")
		}
		result.EInvoiceURL, err = s.store.Put(ctx, einvoiceKey(invoiceNumber), bytes.NewReader(body), "application/json")
		if err != nil {
			return nil, domain.Internal(err, op, "Failed to archive e-invoice")
		}
		s.metrics.DocumentArchived("einvoice")
	}

	s.logger.Info("invoice archived",
		"invoice_number", invoiceNumber,
		"einvoice", result.EInvoiceURL != "",
	)
	return result, nil
}

// load fetches an order for document rendering. Either checkout or lookup
// permission is enough.
func (s *invoiceService) load(ctx context.Context, op, invoiceNumber string) (*domain.Order, error) {
	if err := s.gate.Authorize(ctx, op, auth.CheckoutBill, auth.LookupBill); err != nil {
		return nil, err
	}
	return s.orders.GetByInvoice(ctx, invoiceNumber)
}

func textKey(invoiceNumber string) string {
	return fmt.Sprintf("invoices/%s.txt", invoiceNumber)
}

func einvoiceKey(invoiceNumber string) string {
	return fmt.Sprintf("invoices/%s_einvoice.json", invoiceNumber)
}
