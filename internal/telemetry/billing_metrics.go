package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

// BillingMetrics holds Prometheus metrics for order and invoice activity.
// A nil *BillingMetrics is valid and records nothing.
type BillingMetrics struct {
	// Orders
	OrdersCreated  *prometheus.CounterVec
	OrderValue     *prometheus.HistogramVec
	OrderLineCount prometheus.Histogram
	OrdersSettled  *prometheus.CounterVec

	// Invoices
	EInvoicesBuilt    prometheus.Counter
	DocumentsArchived *prometheus.CounterVec

	// Tax
	RateFallbacks *prometheus.CounterVec

	// Access
	PermissionDenials *prometheus.CounterVec
	Logins            *prometheus.CounterVec
	LoginFailed       *prometheus.CounterVec
}

// NewBillingMetrics creates the metrics and registers them with reg.
func NewBillingMetrics(reg prometheus.Registerer, namespace string) *BillingMetrics {
	if namespace == "" {
		namespace = "tabletab"
	}
	factory := promauto.With(reg)
	subsystem := "billing"

	return &BillingMetrics{
		OrdersCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "orders_created_total",
				Help:      "Total orders created",
			},
			[]string{"supply"}, // supply: intra, inter, untaxed
		),
		OrderValue: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "order_value_rupees",
				Help:      "Order grand total distribution in rupees",
				Buckets:   []float64{100, 250, 500, 1000, 2500, 5000, 10000, 25000, 50000, 100000},
			},
			[]string{"supply"},
		),
		OrderLineCount: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "order_line_count",
				Help:      "Number of lines per order",
				Buckets:   []float64{1, 2, 3, 5, 10, 15, 25},
			},
		),
		OrdersSettled: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "orders_settled_total",
				Help:      "Total orders moved out of OPEN",
			},
			[]string{"status"}, // status: PAID, CANCELLED
		),
		EInvoicesBuilt: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "einvoices_built_total",
				Help:      "Total e-invoice documents built for orders at or above the threshold",
			},
		),
		DocumentsArchived: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "documents_archived_total",
				Help:      "Total invoice documents written to storage",
			},
			[]string{"kind"}, // kind: text, einvoice
		),
		RateFallbacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "tax_rate_fallbacks_total",
				Help:      "Total slab lookups that used the even split",
			},
			[]string{"slab"},
		),
		PermissionDenials: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "permission_denials_total",
				Help:      "Total requests refused by the access gate",
			},
			[]string{"role", "action"},
		),
		Logins: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "logins_total",
				Help:      "Total successful logins",
			},
			[]string{"role"},
		),
		LoginFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "login_failed_total",
				Help:      "Total failed login attempts",
			},
			[]string{"reason"}, // reason: invalid_password, user_not_found, inactive
		),
	}
}

func (m *BillingMetrics) OrderCreated(supply string, total decimal.Decimal, lines int) {
	if m == nil {
		return
	}
	m.OrdersCreated.WithLabelValues(supply).Inc()
	m.OrderValue.WithLabelValues(supply).Observe(total.InexactFloat64())
	m.OrderLineCount.Observe(float64(lines))
}

func (m *BillingMetrics) OrderSettled(status string) {
	if m == nil {
		return
	}
	m.OrdersSettled.WithLabelValues(status).Inc()
}

func (m *BillingMetrics) EInvoiceBuilt() {
	if m == nil {
		return
	}
	m.EInvoicesBuilt.Inc()
}

func (m *BillingMetrics) DocumentArchived(kind string) {
	if m == nil {
		return
	}
	m.DocumentsArchived.WithLabelValues(kind).Inc()
}

// RateFallback has the signature of a tax.Resolver fallback hook.
func (m *BillingMetrics) RateFallback(slab decimal.Decimal) {
	if m == nil {
		return
	}
	m.RateFallbacks.WithLabelValues(slab.String()).Inc()
}

func (m *BillingMetrics) PermissionDenied(role, action string) {
	if m == nil {
		return
	}
	if role == "" {
		role = "anonymous"
	}
	m.PermissionDenials.WithLabelValues(role, action).Inc()
}

func (m *BillingMetrics) Login(role string) {
	if m == nil {
		return
	}
	m.Logins.WithLabelValues(role).Inc()
}

func (m *BillingMetrics) LoginRejected(reason string) {
	if m == nil {
		return
	}
	m.LoginFailed.WithLabelValues(reason).Inc()
}
