// Package service holds the billing use cases shared by every front end:
// checkout, order lifecycle, invoice documents, menu and user administration.
package service

import (
	"context"
	"log/slog"

	"github.com/dukerupert/tabletab/internal/auth"
	"github.com/dukerupert/tabletab/internal/domain"
	"github.com/dukerupert/tabletab/internal/telemetry"
)

// Gate checks the caller in ctx against the role/action table before a
// use case runs. Denials are counted and logged.
type Gate struct {
	metrics *telemetry.BillingMetrics
	logger  *slog.Logger
}

func NewGate(metrics *telemetry.BillingMetrics, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{metrics: metrics, logger: logger}
}

// Authorize fails with EUNAUTHORIZED for anonymous callers and EFORBIDDEN
// when no listed action is granted to the caller's role.
func (g *Gate) Authorize(ctx context.Context, op string, actions ...auth.Action) error {
	p := domain.PrincipalFromContext(ctx)
	for _, a := range actions {
		if auth.Can(p, a) {
			return nil
		}
	}

	var err error
	if len(actions) == 0 {
		// authentication only
		if p != nil {
			return nil
		}
		err = domain.Unauthorized(op, "authentication required")
	} else {
		err = auth.Authorize(p, actions[0], op)
	}

	role := ""
	if p != nil {
		role = string(p.Role)
	}
	action := "authenticated"
	if len(actions) > 0 {
		action = string(actions[0])
	}
	g.metrics.PermissionDenied(role, action)
	g.logger.Warn("permission denied",
		"op", op,
		"role", role,
		"action", action,
		"request_id", domain.RequestIDFromContext(ctx),
	)
	return err
}

// reportPersistence forwards storage failures to error tracking.
func reportPersistence(ctx context.Context, err error) {
	if domain.IsPersistence(err) {
		telemetry.CaptureErrorFromContext(ctx, err, map[string]interface{}{
			"op": domain.ErrorOp(err),
		})
	}
}
