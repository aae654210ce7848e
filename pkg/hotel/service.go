package hotel

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service contains the booking and wallet logic over a Store.
type Service struct {
	store           Store
	nowFn           func() time.Time
	logger          OperationLogger
	notifier        Notifier
	limits          WalletLimits
	defaultCurrency Currency
}

// NewService wires a Service.
func NewService(store Store, now func() time.Time, options ...ServiceOption) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: store dependency is nil", ErrInvalidServiceConfig)
	}
	if now == nil {
		return nil, fmt.Errorf("%w: clock dependency is nil", ErrInvalidServiceConfig)
	}
	service := &Service{
		store:           store,
		nowFn:           now,
		limits:          DefaultWalletLimits(),
		defaultCurrency: CurrencyBYN,
	}
	for _, option := range options {
		if option != nil {
			option(service)
		}
	}
	if !service.limits.MaxDeposit.IsPositive() || !service.limits.MinWithdrawal.IsPositive() {
		return nil, fmt.Errorf("%w: wallet limits must be positive", ErrInvalidServiceConfig)
	}
	if _, err := ParseCurrency(service.defaultCurrency.String()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidServiceConfig, err)
	}
	return service, nil
}

// Limits returns the configured wallet limits.
func (service *Service) Limits() WalletLimits {
	return service.limits
}

func (service *Service) now() time.Time {
	return service.nowFn().UTC()
}

func (service *Service) today() time.Time {
	return startOfDay(service.now())
}

func (service *Service) logOperation(ctx context.Context, entry OperationLog) {
	if service.logger == nil {
		return
	}
	if entry.Status == "" {
		if entry.Error != nil {
			entry.Status = operationStatusError
		} else {
			entry.Status = operationStatusOK
		}
	}
	service.logger.LogOperation(ctx, entry)
}

// notify runs outside the transaction; a failed notification is only logged.
func (service *Service) notify(ctx context.Context, event Event) {
	if service.notifier == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = service.now()
	}
	if err := service.notifier.Notify(ctx, event); err != nil {
		entry := OperationLog{
			Operation: operationNotify,
			UserID:    event.UserID,
			Amount:    event.Amount,
			Currency:  event.Currency,
			Error:     fmt.Errorf("%s: %w", event.Name, err),
		}
		if event.BookingID != nil {
			entry.BookingID = *event.BookingID
		}
		if event.TransactionID != nil {
			entry.TransactionID = *event.TransactionID
		}
		service.logOperation(ctx, entry)
	}
}

// newExternalID renders TXN-<unix millis>-<8 uppercase hex characters>.
func (service *Service) newExternalID() string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")
	return externalIDPrefix + strconv.FormatInt(service.now().UnixMilli(), 10) + "-" + strings.ToUpper(random[:externalIDRandomLength])
}
