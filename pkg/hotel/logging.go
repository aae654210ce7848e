package hotel

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ServiceOption configures a Service instance.
type ServiceOption func(*Service)

// OperationLogger records domain-level events emitted by Service operations.
type OperationLogger interface {
	LogOperation(ctx context.Context, entry OperationLog)
}

// OperationLog describes a state-changing operation.
type OperationLog struct {
	Operation     string
	UserID        UserID
	RoomID        RoomID
	BookingID     BookingID
	TransactionID TransactionID
	Amount        decimal.Decimal
	Currency      Currency
	Status        string
	Error         error
}

// Event is handed to the Notifier after a successful commit.
type Event struct {
	Name          string
	UserID        UserID
	BookingID     *BookingID
	TransactionID *TransactionID
	BookingStatus BookingStatus
	Amount        decimal.Decimal
	Currency      Currency
	OccurredAt    time.Time
}

// Notifier receives post-commit events. Failures are logged and never undo the commit.
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// WalletLimits bound deposits and withdrawals.
type WalletLimits struct {
	MaxDeposit    decimal.Decimal
	MinWithdrawal decimal.Decimal
}

// DefaultWalletLimits returns a 1,000,000 deposit ceiling and a withdrawal floor of 10.
func DefaultWalletLimits() WalletLimits {
	return WalletLimits{
		MaxDeposit:    decimal.NewFromInt(1000000),
		MinWithdrawal: decimal.NewFromInt(10),
	}
}

// WithOperationLogger wires a logger that receives callbacks for every operation.
func WithOperationLogger(logger OperationLogger) ServiceOption {
	return func(service *Service) {
		service.logger = logger
	}
}

// WithNotifier wires the post-commit notification hook.
func WithNotifier(notifier Notifier) ServiceOption {
	return func(service *Service) {
		service.notifier = notifier
	}
}

// WithWalletLimits overrides the deposit ceiling and withdrawal floor.
func WithWalletLimits(limits WalletLimits) ServiceOption {
	return func(service *Service) {
		service.limits = limits
	}
}

// WithDefaultCurrency sets the currency of newly opened accounts.
func WithDefaultCurrency(currency Currency) ServiceOption {
	return func(service *Service) {
		service.defaultCurrency = currency
	}
}
