package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/MarkoPoloResearchLab/hotel/pkg/hotel"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const exchangeName = "hotel.events"

type recordedPublish struct {
	exchange string
	key      string
	message  amqp.Publishing
}

type fakeChannel struct {
	published []recordedPublish
	err       error
	closed    bool
}

func (channel *fakeChannel) PublishWithContext(_ context.Context, exchange string, key string, _ bool, _ bool, message amqp.Publishing) error {
	if channel.err != nil {
		return channel.err
	}
	channel.published = append(channel.published, recordedPublish{exchange: exchange, key: key, message: message})
	return nil
}

func (channel *fakeChannel) Close() error {
	channel.closed = true
	return nil
}

func bookingEvent(test *testing.T) hotel.Event {
	test.Helper()
	userID, err := hotel.NewUserID("guest-1")
	if err != nil {
		test.Fatalf("user id: %v", err)
	}
	bookingID, err := hotel.NewBookingID("booking-1")
	if err != nil {
		test.Fatalf("booking id: %v", err)
	}
	return hotel.Event{
		Name:          hotel.EventBookingCreated,
		UserID:        userID,
		BookingID:     &bookingID,
		BookingStatus: hotel.BookingStatusPending,
		Amount:        decimal.NewFromInt(200),
		Currency:      hotel.CurrencyUSD,
		OccurredAt:    time.Date(2024, time.January, 5, 9, 0, 0, 0, time.UTC),
	}
}

func TestPublisherRoutesByEventName(test *testing.T) {
	test.Parallel()
	channel := &fakeChannel{}
	publisher := newPublisher(channel, exchangeName)

	if err := publisher.Notify(context.Background(), bookingEvent(test)); err != nil {
		test.Fatalf("notify: %v", err)
	}

	if len(channel.published) != 1 {
		test.Fatalf("expected 1 publish, got %d", len(channel.published))
	}
	published := channel.published[0]
	if published.exchange != exchangeName || published.key != hotel.EventBookingCreated {
		test.Fatalf("unexpected routing %s/%s", published.exchange, published.key)
	}
	if published.message.ContentType != contentTypeJSON || published.message.MessageId == "" {
		test.Fatalf("unexpected publishing %+v", published.message)
	}
	var message Message
	if err := json.Unmarshal(published.message.Body, &message); err != nil {
		test.Fatalf("decode body: %v", err)
	}
	if message.BookingID != "booking-1" || message.Amount != "200.00" || message.BookingStatus != "PENDING" {
		test.Fatalf("unexpected message %+v", message)
	}
	if message.TransactionID != "" {
		test.Fatalf("expected no transaction id, got %s", message.TransactionID)
	}
}

func TestPublisherReportsBrokerFailure(test *testing.T) {
	test.Parallel()
	brokerDown := errors.New("channel closed")
	publisher := newPublisher(&fakeChannel{err: brokerDown}, exchangeName)

	err := publisher.Notify(context.Background(), bookingEvent(test))
	if !errors.Is(err, brokerDown) {
		test.Fatalf("expected %v, got %v", brokerDown, err)
	}
}

func TestPublisherCloseReleasesChannel(test *testing.T) {
	test.Parallel()
	channel := &fakeChannel{}
	if err := newPublisher(channel, exchangeName).Close(); err != nil {
		test.Fatalf("close: %v", err)
	}
	if !channel.closed {
		test.Fatalf("expected channel to be closed")
	}
}

func TestLogNotifierRecordsEvent(test *testing.T) {
	test.Parallel()
	core, recorded := observer.New(zapcore.InfoLevel)
	notifier := NewLogNotifier(zap.New(core))

	if err := notifier.Notify(context.Background(), bookingEvent(test)); err != nil {
		test.Fatalf("notify: %v", err)
	}
	entries := recorded.FilterField(zap.String("event", hotel.EventBookingCreated)).All()
	if len(entries) != 1 {
		test.Fatalf("expected one event entry, got %v", recorded.All())
	}
}
