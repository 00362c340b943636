package events

import "context"

// NoopPublisher discards all events. Used when no broker is configured.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher { return &NoopPublisher{} }

func (NoopPublisher) PublishOrderCreated(context.Context, OrderCreated) error { return nil }

func (NoopPublisher) PublishPaymentRecorded(context.Context, PaymentRecorded) error { return nil }

func (NoopPublisher) Close() error { return nil }
