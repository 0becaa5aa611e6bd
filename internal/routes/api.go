package routes

import (
	"github.com/dukerupert/tabletab/internal/middleware"
	"github.com/dukerupert/tabletab/internal/router"
)

// RegisterAPIRoutes registers the POS API. Login is public and rate
// limited; everything else needs a bearer token, and the services decide
// which roles may act.
func RegisterAPIRoutes(r *router.Router, deps APIDeps) {
	var loginChain []router.Middleware
	if deps.LoginLimiter != nil {
		loginChain = append(loginChain, deps.LoginLimiter)
	}
	r.Post("/api/auth/login", deps.AuthHandler.Login, loginChain...)

	authed := r.Group(middleware.RequireAuth)

	// Menu catalog
	authed.Get("/api/menu", deps.MenuHandler.List)
	authed.Post("/api/menu", deps.MenuHandler.Create)
	authed.Get("/api/menu/{id}", deps.MenuHandler.Get)
	authed.Put("/api/menu/{id}", deps.MenuHandler.Update)
	authed.Delete("/api/menu/{id}", deps.MenuHandler.Delete)

	// Checkout and order lifecycle
	authed.Post("/api/orders/preview", deps.OrderHandler.Preview)
	authed.Post("/api/orders", deps.OrderHandler.Create)
	authed.Get("/api/orders/open", deps.OrderHandler.ListOpen)
	authed.Get("/api/orders/{invoice_number}", deps.OrderHandler.Get)
	authed.Post("/api/orders/{invoice_number}/paid", deps.OrderHandler.MarkPaid)
	authed.Post("/api/orders/{invoice_number}/cancel", deps.OrderHandler.Cancel)

	// Invoice documents
	authed.Get("/api/orders/{invoice_number}/invoice", deps.OrderHandler.InvoiceText)
	authed.Get("/api/orders/{invoice_number}/einvoice", deps.OrderHandler.EInvoice)
	authed.Post("/api/orders/{invoice_number}/archive", deps.OrderHandler.Archive)

	// Settings
	authed.Get("/api/tax-rates", deps.SettingsHandler.ListTaxRates)
	authed.Post("/api/tax-rates", deps.SettingsHandler.AppendTaxRate)
	authed.Post("/api/users", deps.SettingsHandler.CreateUser)

	// Reports
	authed.Get("/api/reports/daily-sales", deps.ReportHandler.DailySales)

	if deps.ArchiveDir != "" && deps.ArchivePrefix != "" {
		authed.Static(deps.ArchivePrefix, deps.ArchiveDir)
	}
}

// RegisterOpsRoutes registers health and metrics endpoints outside the API
// middleware.
func RegisterOpsRoutes(r *router.Router, deps OpsDeps) {
	r.Get("/health", deps.Health)
	if deps.Metrics != nil {
		r.Handle("GET", "/metrics", deps.Metrics)
	}
}
