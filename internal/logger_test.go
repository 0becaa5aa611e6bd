package internal

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_ProdWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "prod", "info")

	logger.Info("order created", "invoice_number", "INV-20250101-000001")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "order created", entry["msg"])
	assert.Equal(t, "INV-20250101-000001", entry["invoice_number"])
	assert.Equal(t, "tabletab", entry["app"])
}

func TestNewLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "dev", "warn")

	logger.Info("hidden")
	assert.Empty(t, buf.String())

	logger.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}
