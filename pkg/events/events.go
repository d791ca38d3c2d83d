package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/brightroom/studio-bookings/pkg/logger"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

type Subscriber interface {
	Subscribe(subject string, handler func(msg *Message)) error
	QueueSubscribe(subject, queue string, handler func(msg *Message)) error
	Close() error
}

type EventBus interface {
	Publisher
	Subscriber
}

type Message struct {
	Subject   string
	Data      []byte
	Timestamp time.Time
	ID        string
}

type NATSEventBus struct {
	conn *nats.Conn
}

func NewNATSEventBus(url string) (*NATSEventBus, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSEventBus{conn: conn}, nil
}

func (n *NATSEventBus) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	logger.DebugContext(ctx, "Publishing event", "subject", subject, "data", string(payload))

	return n.conn.Publish(subject, payload)
}

func (n *NATSEventBus) Subscribe(subject string, handler func(msg *Message)) error {
	_, err := n.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(&Message{
			Subject:   msg.Subject,
			Data:      msg.Data,
			Timestamp: time.Now(),
			ID:        fmt.Sprintf("%d", time.Now().UnixNano()),
		})
	})
	return err
}

func (n *NATSEventBus) QueueSubscribe(subject, queue string, handler func(msg *Message)) error {
	_, err := n.conn.QueueSubscribe(subject, queue, func(msg *nats.Msg) {
		handler(&Message{
			Subject:   msg.Subject,
			Data:      msg.Data,
			Timestamp: time.Now(),
			ID:        fmt.Sprintf("%d", time.Now().UnixNano()),
		})
	})
	return err
}

func (n *NATSEventBus) Close() error {
	n.conn.Close()
	return nil
}

// NoopEventBus is used when NATS is not configured; publishes are dropped.
type NoopEventBus struct{}

func (NoopEventBus) Publish(ctx context.Context, subject string, data interface{}) error {
	logger.DebugContext(ctx, "Event bus disabled, dropping event", "subject", subject)
	return nil
}

func (NoopEventBus) Subscribe(string, func(msg *Message)) error              { return nil }
func (NoopEventBus) QueueSubscribe(string, string, func(msg *Message)) error { return nil }
func (NoopEventBus) Close() error                                            { return nil }

// Event types and subjects
const (
	// Hold events
	HoldCreated  = "hold.created"
	HoldCanceled = "hold.canceled"
	HoldConsumed = "hold.consumed"

	// Checkout events
	CheckoutSessionCreated = "checkout.session.created"

	// Payment events
	PaymentCompleted = "payment.completed"

	// Fulfillment events
	FulfillmentRelayed = "fulfillment.relayed"
	FulfillmentFailed  = "fulfillment.failed"
)

// Event payloads
type HoldCreatedEvent struct {
	HoldID    string    `json:"hold_id"`
	Room      string    `json:"room"`
	Date      string    `json:"date"`
	StartTime string    `json:"start_time"`
	Hours     int       `json:"hours"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

type HoldCanceledEvent struct {
	HoldID     string    `json:"hold_id"`
	Room       string    `json:"room"`
	Date       string    `json:"date"`
	CanceledAt time.Time `json:"canceled_at"`
}

type HoldConsumedEvent struct {
	HoldID     string    `json:"hold_id"`
	Room       string    `json:"room"`
	Date       string    `json:"date"`
	SessionID  string    `json:"session_id"`
	ConsumedAt time.Time `json:"consumed_at"`
}

type CheckoutSessionCreatedEvent struct {
	SessionID  string    `json:"session_id"`
	Email      string    `json:"email"`
	Room       string    `json:"room"`
	Date       string    `json:"date"`
	StartTime  string    `json:"start_time"`
	Hours      int       `json:"hours"`
	TotalCents int64     `json:"total_cents"`
	CreatedAt  time.Time `json:"created_at"`
}

type PaymentCompletedEvent struct {
	SessionID   string    `json:"session_id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Room        string    `json:"room"`
	Date        string    `json:"date"`
	StartTime   string    `json:"start_time"`
	Hours       int       `json:"hours"`
	TotalCents  int64     `json:"total_cents"`
	CompletedAt time.Time `json:"completed_at"`
}

type FulfillmentRelayedEvent struct {
	SessionID string    `json:"session_id"`
	RelayURL  string    `json:"relay_url"`
	RelayedAt time.Time `json:"relayed_at"`
}

type FulfillmentFailedEvent struct {
	SessionID string    `json:"session_id"`
	Reason    string    `json:"reason"`
	FailedAt  time.Time `json:"failed_at"`
}
