package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
)

// NatsPublisher publishes events on a NATS connection.
type NatsPublisher struct {
	conn *nats.Conn
}

// NewNatsPublisher connects to the given NATS URL.
func NewNatsPublisher(url string) (*NatsPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("cake-shop-backend"),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", url, err)
	}
	return &NatsPublisher{conn: conn}, nil
}

func (p *NatsPublisher) PublishOrderCreated(ctx context.Context, event OrderCreated) error {
	return p.publish(SubjectOrderCreated, event)
}

func (p *NatsPublisher) PublishPaymentRecorded(ctx context.Context, event PaymentRecorded) error {
	return p.publish(SubjectPaymentRecorded, event)
}

func (p *NatsPublisher) publish(subject string, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", subject, err)
	}
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", subject, err)
	}
	return nil
}

// Close drains the connection so buffered publishes flush before shutdown.
func (p *NatsPublisher) Close() error {
	return p.conn.Drain()
}
