package service_test

import (
	"context"
	"testing"

	"github.com/dukerupert/tabletab/internal/domain"
	"github.com/dukerupert/tabletab/internal/events"
	"github.com/dukerupert/tabletab/internal/memory"
	"github.com/dukerupert/tabletab/internal/service"
	"github.com/dukerupert/tabletab/internal/tax"
	"github.com/dukerupert/tabletab/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func as(role domain.Role) context.Context {
	return domain.WithPrincipal(context.Background(), &domain.Principal{Username: "staff", Role: role})
}

func seller() domain.SellerProfile {
	return domain.SellerProfile{
		LegalName: "Spice Route Pvt Ltd",
		Address:   "12 MG Road, Pune",
		GSTIN:     "27ABCDE1234F1Z5",
		StateCode: "27",
		Location:  "Pune",
		Pin:       "411001",
	}
}

// fixture wires the services over memory stores.
type fixture struct {
	orders  *memory.OrderStore
	menu    *memory.MenuStore
	rates   *memory.TaxRateStore
	events  *events.Recorder
	metrics *telemetry.BillingMetrics
	order   service.OrderService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		orders:  memory.NewOrderStore("INV"),
		menu:    memory.NewMenuStore(),
		rates:   memory.NewTaxRateStore(),
		events:  &events.Recorder{},
		metrics: telemetry.NewBillingMetrics(prometheus.NewRegistry(), "test"),
	}
	resolver := tax.NewResolver(f.rates, nil, tax.WithFallbackHook(f.metrics.RateFallback))
	f.order = service.NewOrderService(service.OrderServiceConfig{
		Orders:     f.orders,
		Menu:       f.menu,
		Calculator: tax.NewCalculator(resolver),
		Seller:     seller(),
		Defaults: service.BillingDefaults{
			ServiceChargePercent: dec("5"),
			TaxEnabled:           true,
		},
		Events:  f.events,
		Metrics: f.metrics,
	})
	return f
}

func (f *fixture) addItem(t *testing.T, name, price, slab, hsn string) int64 {
	t.Helper()
	item, err := f.menu.Create(context.Background(), domain.MenuItemParams{
		Name:     name,
		Price:    dec(price),
		Slab:     dec(slab),
		HSNCode:  hsn,
		FoodType: domain.FoodTypeVeg,
	})
	require.NoError(t, err)
	return item.ID
}

// exampleOrder creates 2 x A @ 100 (5%, X) and 1 x B @ 200 (12%, Y).
func (f *fixture) exampleOrder(t *testing.T) *domain.Order {
	t.Helper()
	a := f.addItem(t, "Item A", "100.00", "5", "X")
	b := f.addItem(t, "Item B", "200.00", "12", "Y")

	order, err := f.order.CreateOrder(as(domain.RoleCaptain), service.CheckoutRequest{
		TableNumber: "T4",
		Items:       []service.CartItem{{MenuItemID: a, Quantity: 2}, {MenuItemID: b, Quantity: 1}},
	})
	require.NoError(t, err)
	return order
}
