package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvent_JSON(t *testing.T) {
	e := New(OrderPaid)
	total := decimal.RequireFromString("454.00")
	e.InvoiceNumber = "INV-20250305-000001"
	e.Total = &total

	body, err := json.Marshal(e)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "order_paid", got["type"])
	assert.Equal(t, "454", got["total"])
	assert.NotContains(t, got, "menu_item_id")
	assert.NotEmpty(t, got["id"])
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	require.NoError(t, r.Publish(context.Background(), New(OrderCreated)))
	require.NoError(t, r.Publish(context.Background(), New(MenuUpdated)))
	assert.Equal(t, []Type{OrderCreated, MenuUpdated}, r.Types())

	r.Err = errors.New("broker down")
	assert.Error(t, r.Publish(context.Background(), New(OrderPaid)))
	assert.Len(t, r.Events(), 2)
}

func TestNATSPublisher_Subject(t *testing.T) {
	p := &NATSPublisher{prefix: "pune"}
	assert.Equal(t, "pune.order_cancelled", p.Subject(OrderCancelled))
}
