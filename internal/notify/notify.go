// Package notify delivers committed hotel events to RabbitMQ or to the log.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MarkoPoloResearchLab/hotel/pkg/hotel"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	exchangeKind       = "topic"
	contentTypeJSON    = "application/json"
	defaultPublishWait = 5 * time.Second
)

// Message is the JSON body published for every event.
type Message struct {
	Name          string `json:"name"`
	UserID        string `json:"user_id"`
	BookingID     string `json:"booking_id,omitempty"`
	TransactionID string `json:"transaction_id,omitempty"`
	BookingStatus string `json:"booking_status,omitempty"`
	Amount        string `json:"amount,omitempty"`
	Currency      string `json:"currency,omitempty"`
	OccurredAt    string `json:"occurred_at"`
}

// NewMessage flattens an event for the wire.
func NewMessage(event hotel.Event) Message {
	message := Message{
		Name:          event.Name,
		UserID:        event.UserID.String(),
		BookingStatus: event.BookingStatus.String(),
		Currency:      event.Currency.String(),
		OccurredAt:    event.OccurredAt.UTC().Format(time.RFC3339),
	}
	if event.BookingID != nil {
		message.BookingID = event.BookingID.String()
	}
	if event.TransactionID != nil {
		message.TransactionID = event.TransactionID.String()
	}
	if !event.Amount.IsZero() {
		message.Amount = event.Amount.StringFixed(2)
	}
	return message
}

type publishChannel interface {
	PublishWithContext(ctx context.Context, exchange string, key string, mandatory bool, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher sends events to a topic exchange, routed by event name.
type Publisher struct {
	channel  publishChannel
	conn     *amqp.Connection
	exchange string
	timeout  time.Duration
}

// NewPublisher dials url and declares a durable topic exchange.
func NewPublisher(url string, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := channel.ExchangeDeclare(exchange, exchangeKind, true, false, false, false, nil); err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	publisher := newPublisher(channel, exchange)
	publisher.conn = conn
	return publisher, nil
}

func newPublisher(channel publishChannel, exchange string) *Publisher {
	return &Publisher{channel: channel, exchange: exchange, timeout: defaultPublishWait}
}

// Notify implements hotel.Notifier.
func (publisher *Publisher) Notify(ctx context.Context, event hotel.Event) error {
	body, err := json.Marshal(NewMessage(event))
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	publishCtx, cancel := context.WithTimeout(ctx, publisher.timeout)
	defer cancel()
	err = publisher.channel.PublishWithContext(publishCtx, publisher.exchange, event.Name, false, false, amqp.Publishing{
		ContentType:  contentTypeJSON,
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    event.OccurredAt.UTC(),
		Type:         event.Name,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", event.Name, err)
	}
	return nil
}

// Close releases the channel and the connection.
func (publisher *Publisher) Close() error {
	if publisher.channel != nil {
		_ = publisher.channel.Close()
	}
	if publisher.conn != nil {
		return publisher.conn.Close()
	}
	return nil
}

// LogNotifier records events in the log when no broker is configured.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier wraps logger.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify implements hotel.Notifier.
func (notifier *LogNotifier) Notify(_ context.Context, event hotel.Event) error {
	message := NewMessage(event)
	notifier.logger.Info("hotel event",
		zap.String("event", message.Name),
		zap.String("user_id", message.UserID),
		zap.String("booking_id", message.BookingID),
		zap.String("transaction_id", message.TransactionID),
		zap.String("booking_status", message.BookingStatus),
		zap.String("amount", message.Amount),
	)
	return nil
}
