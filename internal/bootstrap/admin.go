// Package bootstrap handles one-time initialization tasks for the application.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dukerupert/tabletab/internal/auth"
	"github.com/dukerupert/tabletab/internal/domain"
	"github.com/dukerupert/tabletab/internal/tax"
	"github.com/shopspring/decimal"
)

// AdminConfig contains configuration for the initial super admin.
type AdminConfig struct {
	Username string
	Password string
	FullName string
}

// Validate checks that the admin configuration is valid.
func (c *AdminConfig) Validate() error {
	if strings.TrimSpace(c.Username) == "" {
		return errors.New("admin username is required")
	}
	if c.Password == "" {
		return errors.New("admin password is required")
	}
	if len(c.Password) < 12 {
		return errors.New("admin password must be at least 12 characters")
	}
	return nil
}

// EnsureSuperAdmin creates the configured account as SUPER_ADMIN when no
// active super admin exists. It is safe to call on every startup.
//
// A nil config or one without username/password is skipped with a warning
// so development can run without an account.
func EnsureSuperAdmin(ctx context.Context, users domain.UserRepository, cfg *AdminConfig, logger *slog.Logger) error {
	if cfg == nil || cfg.Username == "" || cfg.Password == "" {
		logger.Warn("bootstrap: skipping super admin creation - TABLETAB_ADMIN_USERNAME or TABLETAB_ADMIN_PASSWORD not set",
			"hint", "Set these environment variables to create a super admin on first startup",
		)
		return nil
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid admin configuration: %w", err)
	}

	count, err := users.CountByRole(ctx, domain.RoleSuperAdmin)
	if err != nil {
		return fmt.Errorf("failed to count super admins: %w", err)
	}
	if count > 0 {
		logger.Info("bootstrap: super admin already exists", "count", count)
		return nil
	}

	passwordHash, err := auth.HashPassword(cfg.Password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	fullName := cfg.FullName
	if fullName == "" {
		fullName = "Super Admin"
	}

	user, err := users.Create(ctx, domain.NewUserParams{
		Username:     strings.TrimSpace(cfg.Username),
		FullName:     fullName,
		Role:         domain.RoleSuperAdmin,
		PasswordHash: passwordHash,
	})
	if domain.IsCode(err, domain.ECONFLICT) {
		// The username is taken by a non super admin, or another instance
		// won the race.
		logger.Warn("bootstrap: admin username already exists", "username", cfg.Username)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create super admin: %w", err)
	}

	logger.Info("bootstrap: super admin created",
		"username", user.Username,
		"user_id", user.ID,
	)
	return nil
}

// DefaultSlabs are the GST slabs seeded into an empty rate table.
var DefaultSlabs = []int64{5, 12, 18, 28}

// EnsureTaxRates seeds an even CGST/SGST split for DefaultSlabs when no
// slab rate is configured at all. Existing rows are never touched.
func EnsureTaxRates(ctx context.Context, rates domain.TaxRateRepository, logger *slog.Logger) error {
	now := time.Now()

	current, err := rates.ListCurrent(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to list tax rates: %w", err)
	}
	if len(current) > 0 {
		return nil
	}

	for _, s := range DefaultSlabs {
		slab := decimal.NewFromInt(s)
		half := tax.EvenSplit(slab)
		err := rates.Append(ctx, domain.TaxSlabRate{
			Slab:          slab,
			CGSTRate:      half,
			SGSTRate:      half,
			EffectiveFrom: now,
		})
		if err != nil {
			return fmt.Errorf("failed to seed %s%% slab: %w", slab, err)
		}
	}

	logger.Info("bootstrap: seeded default tax slabs", "slabs", DefaultSlabs)
	return nil
}
