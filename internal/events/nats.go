package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

const defaultSubjectPrefix = "tabletab"

// NATSPublisher sends each event as JSON to "<prefix>.<type>".
type NATSPublisher struct {
	conn   *nats.Conn
	prefix string
	logger *slog.Logger
}

// NewNATSPublisher connects to url. The connection reconnects on its own;
// disconnects are only logged.
func NewNATSPublisher(url, prefix string, logger *slog.Logger) (*NATSPublisher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if prefix == "" {
		prefix = defaultSubjectPrefix
	}

	conn, err := nats.Connect(url,
		nats.Name("tabletab"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("nats reconnected", "url", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}

	return &NATSPublisher{conn: conn, prefix: prefix, logger: logger}, nil
}

// Subject returns the subject an event type is published on.
func (p *NATSPublisher) Subject(t Type) string {
	return p.prefix + "." + string(t)
}

func (p *NATSPublisher) Publish(ctx context.Context, e Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := p.conn.Publish(p.Subject(e.Type), body); err != nil {
		return fmt.Errorf("publish %s: %w", e.Type, err)
	}
	p.logger.Debug("event published", "type", e.Type, "id", e.ID)
	return nil
}

// Close flushes pending messages before closing the connection.
func (p *NATSPublisher) Close() error {
	return p.conn.Drain()
}
