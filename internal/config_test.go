package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv("ENV", "dev")
	t.Setenv("STORE_DRIVER", "memory")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "27", cfg.Seller.StateCode)
	assert.Equal(t, 50000.0, cfg.Billing.EInvoiceThreshold)
	assert.True(t, cfg.Billing.TaxEnabled)
	assert.Equal(t, "INV", cfg.Billing.InvoicePrefix)
	assert.Equal(t, 12*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, "Asia/Kolkata", cfg.Billing.Location().String())
}

func TestNewConfig_Overrides(t *testing.T) {
	t.Setenv("ENV", "dev")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("SERVICE_CHARGE_PERCENT", "5")
	t.Setenv("GST_ENABLED", "false")
	t.Setenv("JWT_TTL", "30m")
	t.Setenv("LOG_LEVEL", "chatty")
	t.Setenv("CORS_ORIGINS", "https://pos.example.com, ,https://kds.example.com")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, 5.0, cfg.Billing.ServiceChargePercent)
	assert.False(t, cfg.Billing.TaxEnabled)
	assert.Equal(t, 30*time.Minute, cfg.JWT.TTL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, []string{"https://pos.example.com", "https://kds.example.com"}, cfg.CORSOrigins)
}

func TestNewConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown store driver", map[string]string{"STORE_DRIVER": "sqlite"}},
		{"service charge out of range", map[string]string{"SERVICE_CHARGE_PERCENT": "120"}},
		{"prod default jwt secret", map[string]string{"ENV": "prod", "SELLER_GSTIN": "27AAAAA0000A1Z5"}},
		{"unknown timezone", map[string]string{"BILLING_TIMEZONE": "Mars/Olympus"}},
		{"prod without gstin", map[string]string{"ENV": "prod", "JWT_SECRET": "s3cret"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ENV", "dev")
			t.Setenv("STORE_DRIVER", "postgres")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := NewConfig()
			assert.Error(t, err)
		})
	}
}
