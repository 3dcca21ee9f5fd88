// Package events delivers round lifecycle events to observers outside the
// request path: the log and, when configured, a NATS subject.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"wordrush/internal/domain"
)

// Publisher sends an event somewhere
type Publisher interface {
	Publish(ctx context.Context, evt *domain.Event) error
}

// LogPublisher writes events to a zerolog logger
type LogPublisher struct {
	logger zerolog.Logger
}

// NewLogPublisher creates a publisher that logs at debug level
func NewLogPublisher(logger zerolog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, evt *domain.Event) error {
	p.logger.Debug().
		Str("type", string(evt.Type)).
		Str("code", evt.Code).
		Str("playerID", evt.PlayerID).
		Interface("payload", evt.Payload).
		Msg("round-event")
	return nil
}

// NATSPublisher publishes events as JSON on <subject>.<code>
type NATSPublisher struct {
	conn    *nats.Conn
	subject string
}

// NewNATSPublisher creates a publisher on an open connection
func NewNATSPublisher(conn *nats.Conn, subject string) *NATSPublisher {
	return &NATSPublisher{
		conn:    conn,
		subject: strings.TrimSuffix(subject, "."),
	}
}

// Subject returns the subject an event for code is published on
func (p *NATSPublisher) Subject(code string) string {
	return p.subject + "." + code
}

func (p *NATSPublisher) Publish(ctx context.Context, evt *domain.Event) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	if err := p.conn.Publish(p.Subject(evt.Code), data); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}

// Multi fans an event out to several publishers. Every publisher is tried;
// the errors are joined.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, evt *domain.Event) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, evt); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
