package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dukerupert/tabletab/internal"
	"github.com/dukerupert/tabletab/internal/auth"
	"github.com/dukerupert/tabletab/internal/bootstrap"
	"github.com/dukerupert/tabletab/internal/domain"
	"github.com/dukerupert/tabletab/internal/events"
	"github.com/dukerupert/tabletab/internal/handler"
	"github.com/dukerupert/tabletab/internal/handler/api"
	"github.com/dukerupert/tabletab/internal/invoice"
	"github.com/dukerupert/tabletab/internal/memory"
	"github.com/dukerupert/tabletab/internal/middleware"
	"github.com/dukerupert/tabletab/internal/postgres"
	"github.com/dukerupert/tabletab/internal/repository"
	"github.com/dukerupert/tabletab/internal/router"
	"github.com/dukerupert/tabletab/internal/routes"
	"github.com/dukerupert/tabletab/internal/service"
	"github.com/dukerupert/tabletab/internal/storage"
	"github.com/dukerupert/tabletab/internal/tax"
	"github.com/dukerupert/tabletab/internal/telemetry"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopspring/decimal"
)

// stores groups the repositories behind the services.
type stores struct {
	orders domain.OrderRepository
	menu   domain.MenuRepository
	rates  domain.TaxRateRepository
	users  domain.UserRepository

	// ping reports database health; nil for the memory driver.
	ping  func(context.Context) error
	close func()
}

func openStores(ctx context.Context, cfg *internal.Config, logger *slog.Logger) (*stores, error) {
	if cfg.StoreDriver == "memory" {
		logger.Warn("Using in-memory store; data is lost on restart")
		return &stores{
			orders: memory.NewOrderStore(cfg.Billing.InvoicePrefix),
			menu:   memory.NewMenuStore(),
			rates:  memory.NewTaxRateStore(),
			users:  memory.NewUserStore(),
			close:  func() {},
		}, nil
	}

	// Initialize database/sql connection for migrations
	logger.Info("Connecting to database...")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	logger.Info("Running database migrations...")
	if err := internal.RunMigrations(sqlDB); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	version, err := internal.MigrationVersion(sqlDB)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration version: %w", err)
	}
	logger.Info("Database migrations completed successfully", "version", version)

	pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	repo := repository.New(pool)
	return &stores{
		orders: postgres.NewOrderRepository(pool, cfg.Billing.InvoicePrefix),
		menu:   postgres.NewMenuRepository(repo),
		rates:  postgres.NewTaxRateRepository(repo),
		users:  postgres.NewUserRepository(repo),
		ping:   pool.Ping,
		close:  pool.Close,
	}, nil
}

func openPublisher(cfg *internal.Config, logger *slog.Logger) (events.Publisher, error) {
	if !cfg.NATS.Enabled {
		logger.Info("Order events disabled (NATS_ENABLED=false)")
		return events.NoopPublisher{}, nil
	}
	publisher, err := events.NewNATSPublisher(cfg.NATS.URL, cfg.NATS.SubjectPrefix, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	logger.Info("Order events publishing to NATS", "url", cfg.NATS.URL, "prefix", cfg.NATS.SubjectPrefix)
	return publisher, nil
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)
	slog.SetDefault(logger)

	flushSentry, err := telemetry.InitSentry(telemetry.SentryConfig{
		DSN:              cfg.Sentry.DSN,
		Enabled:          cfg.Sentry.Enabled,
		Environment:      cfg.Sentry.Environment,
		Release:          cfg.Sentry.Release,
		SampleRate:       cfg.Sentry.SampleRate,
		TracesSampleRate: cfg.Sentry.TracesSampleRate,
		Debug:            cfg.Sentry.Debug,
	}, logger)
	if err != nil {
		return err
	}
	defer flushSentry()

	db, err := openStores(ctx, cfg, logger)
	if err != nil {
		telemetry.CaptureError(err, "stores")
		return err
	}
	defer db.close()

	if err := bootstrap.EnsureSuperAdmin(ctx, db.users, &bootstrap.AdminConfig{
		Username: cfg.Admin.Username,
		Password: cfg.Admin.Password,
		FullName: cfg.Admin.FullName,
	}, logger); err != nil {
		telemetry.CaptureError(err, "bootstrap")
		return fmt.Errorf("bootstrap failed: %w", err)
	}
	if err := bootstrap.EnsureTaxRates(ctx, db.rates, logger); err != nil {
		telemetry.CaptureError(err, "bootstrap")
		return fmt.Errorf("bootstrap failed: %w", err)
	}

	publisher, err := openPublisher(cfg, logger)
	if err != nil {
		telemetry.CaptureError(err, "events")
		return err
	}
	defer publisher.Close()

	store, err := storage.NewStorage(ctx, cfg.Storage)
	if err != nil {
		telemetry.CaptureError(err, "storage")
		return fmt.Errorf("failed to initialize document storage: %w", err)
	}
	logger.Info("Document archive initialized", "provider", cfg.Storage.Provider)

	// Metrics share one registry so /metrics exposes HTTP, billing and
	// runtime collectors together.
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := middleware.NewMetrics(registry, "tabletab")
	billingMetrics := telemetry.NewBillingMetrics(registry, "tabletab")

	// ==========================================================================
	// Billing components
	// ==========================================================================

	location := cfg.Billing.Location()
	seller := domain.SellerProfile{
		LegalName:    cfg.Seller.LegalName,
		Address:      cfg.Seller.Address,
		GSTIN:        cfg.Seller.GSTIN,
		FSSAILicense: cfg.Seller.FSSAILicense,
		StateCode:    cfg.Seller.StateCode,
		Location:     cfg.Seller.Location,
		Pin:          cfg.Seller.Pin,
	}

	resolver := tax.NewResolver(db.rates, logger, tax.WithFallbackHook(billingMetrics.RateFallback))
	calculator := tax.NewCalculator(resolver)
	tokens := auth.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.TTL)
	gate := service.NewGate(billingMetrics, logger)

	orderService := service.NewOrderService(service.OrderServiceConfig{
		Orders:     db.orders,
		Menu:       db.menu,
		Calculator: calculator,
		Seller:     seller,
		Defaults: service.BillingDefaults{
			ServiceChargePercent: decimal.NewFromFloat(cfg.Billing.ServiceChargePercent),
			TaxEnabled:           cfg.Billing.TaxEnabled,
		},
		Location: location,
		Events:   publisher,
		Metrics:  billingMetrics,
		Gate:     gate,
		Logger:   logger,
	})
	invoiceService := service.NewInvoiceService(
		db.orders,
		invoice.NewRenderer(seller, location),
		invoice.NewEInvoiceBuilder(seller, decimal.NewFromFloat(cfg.Billing.EInvoiceThreshold), location),
		store,
		billingMetrics,
		gate,
		logger,
	)
	menuService := service.NewMenuService(db.menu, publisher, gate, logger)
	taxRateService := service.NewTaxRateService(db.rates, location, gate, logger)
	userService := service.NewUserService(db.users, tokens, billingMetrics, gate, logger)
	reportService := service.NewReportService(db.orders, location, gate)

	// ==========================================================================
	// Initialize middleware
	// ==========================================================================

	defaultRateLimiter := middleware.NewRateLimiter(middleware.DefaultRateLimiterConfig())
	defer defaultRateLimiter.Stop()
	loginRateLimiter := middleware.NewRateLimiter(middleware.StrictRateLimiterConfig())
	defer loginRateLimiter.Stop()

	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		middleware.WithClientIP(),
		telemetry.SentryMiddleware(),
		httpMetrics.Middleware,
		middleware.APIHeaders,
		router.CORS(cfg.CORSOrigins),
		middleware.MaxBodySize(middleware.DefaultMaxBodySize),
		middleware.Timeout(middleware.DefaultTimeout),
		defaultRateLimiter.Middleware,
		middleware.Authenticate(tokens),
		middleware.WithRequestLogger(logger),
		telemetry.SentryContextMiddleware(),
		router.Logger(logger),
	)

	routes.RegisterOpsRoutes(r, routes.OpsDeps{
		Health:  healthHandler(db.ping),
		Metrics: middleware.Handler(registry),
	})

	apiDeps := routes.APIDeps{
		AuthHandler:     api.NewAuthHandler(userService),
		MenuHandler:     api.NewMenuHandler(menuService),
		OrderHandler:    api.NewOrderHandler(orderService, invoiceService),
		SettingsHandler: api.NewSettingsHandler(taxRateService, userService),
		ReportHandler:   api.NewReportHandler(reportService, location),
		LoginLimiter:    loginRateLimiter.Middleware,
	}
	if cfg.Storage.Provider == "local" {
		apiDeps.ArchiveDir = cfg.Storage.LocalPath
		apiDeps.ArchivePrefix = cfg.Storage.LocalURL + "/"
	}
	routes.RegisterAPIRoutes(r, apiDeps)
	r.NotFound(handler.NotFoundResponse)

	// ==========================================================================
	// Start server
	// ==========================================================================

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "address", srv.Addr, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}

func healthHandler(ping func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				handler.ErrorResponse(w, r, domain.Internal(err, "health", "database unavailable"))
				return
			}
		}
		handler.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
