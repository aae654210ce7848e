package logging

import (
	"context"

	"github.com/MarkoPoloResearchLab/hotel/pkg/hotel"
	"go.uber.org/zap"
)

const operationStatusError = "error"

// OperationLogger writes hotel operation logs as structured zap entries.
type OperationLogger struct {
	logger *zap.Logger
}

// NewOperationLogger wraps logger. A nil logger discards entries.
func NewOperationLogger(logger *zap.Logger) *OperationLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OperationLogger{logger: logger.Named("hotel")}
}

// LogOperation implements hotel.OperationLogger.
func (operationLogger *OperationLogger) LogOperation(_ context.Context, entry hotel.OperationLog) {
	fields := []zap.Field{
		zap.String("operation", entry.Operation),
		zap.String("status", entry.Status),
	}
	fields = appendNonEmpty(fields, "user_id", entry.UserID.String())
	fields = appendNonEmpty(fields, "room_id", entry.RoomID.String())
	fields = appendNonEmpty(fields, "booking_id", entry.BookingID.String())
	fields = appendNonEmpty(fields, "transaction_id", entry.TransactionID.String())
	if !entry.Amount.IsZero() {
		fields = append(fields, zap.String("amount", entry.Amount.StringFixed(2)))
	}
	fields = appendNonEmpty(fields, "currency", entry.Currency.String())
	if entry.Status == operationStatusError || entry.Error != nil {
		fields = append(fields, zap.Error(entry.Error))
		operationLogger.logger.Warn("hotel operation failed", fields...)
		return
	}
	operationLogger.logger.Info("hotel operation", fields...)
}

func appendNonEmpty(fields []zap.Field, key string, value string) []zap.Field {
	if value == "" {
		return fields
	}
	return append(fields, zap.String(key, value))
}
