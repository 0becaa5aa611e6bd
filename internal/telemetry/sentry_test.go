package telemetry

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// eventSink collects events through BeforeSend; the empty DSN keeps them
// off the network.
type eventSink struct {
	mu     sync.Mutex
	events []*sentry.Event
}

func (s *eventSink) client(t *testing.T) *sentry.Client {
	t.Helper()
	client, err := sentry.NewClient(sentry.ClientOptions{
		SampleRate: 1.0,
		BeforeSend: func(e *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			s.mu.Lock()
			s.events = append(s.events, e)
			s.mu.Unlock()
			return nil
		},
	})
	require.NoError(t, err)
	return client
}

func (s *eventSink) all() []*sentry.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*sentry.Event(nil), s.events...)
}

func enableForTest(t *testing.T) {
	sentryEnabled = true
	t.Cleanup(func() { sentryEnabled = false })
}

func TestInitSentry_DisabledIsNoop(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	for _, cfg := range []SentryConfig{{}, {Enabled: true}} {
		flush, err := InitSentry(cfg, logger)
		require.NoError(t, err)
		flush()
		assert.False(t, IsEnabled())
	}

	// Helpers must not panic while disabled.
	CaptureError(errors.New("boom"), "migrations")
	AddBreadcrumb(context.Background(), "order", "created", nil)
	CaptureErrorFromContext(context.Background(), errors.New("boom"), nil)
}

func TestCaptureErrorFromContext_CarriesBreadcrumbs(t *testing.T) {
	enableForTest(t)
	sink := &eventSink{}
	hub := sentry.NewHub(sink.client(t), sentry.NewScope())
	ctx := sentry.SetHubOnContext(context.Background(), hub)

	AddBreadcrumb(ctx, "order", "order created", map[string]interface{}{"invoice_number": "INV-20250305-000001"})
	CaptureErrorFromContext(ctx, errors.New("insert order: connection reset"), map[string]interface{}{"op": "service.order.create"})

	events := sink.all()
	require.Len(t, events, 1)
	assert.Equal(t, "service.order.create", events[0].Extra["op"])
	require.Len(t, events[0].Breadcrumbs, 1)
	assert.Equal(t, "order created", events[0].Breadcrumbs[0].Message)
	assert.Equal(t, "order", events[0].Breadcrumbs[0].Category)
}

func TestCaptureError_TagsStage(t *testing.T) {
	enableForTest(t)
	sink := &eventSink{}
	hub := sentry.CurrentHub()
	previous := hub.Client()
	hub.BindClient(sink.client(t))
	t.Cleanup(func() { hub.BindClient(previous) })

	CaptureError(errors.New("migration failed"), "migrations")
	CaptureError(nil, "migrations")

	events := sink.all()
	require.Len(t, events, 1)
	assert.Equal(t, "migrations", events[0].Tags["stage"])
}
