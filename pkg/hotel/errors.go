package hotel

import (
	"errors"
	"fmt"
)

// ErrNotFound is the root of every missing-record error.
var ErrNotFound = errors.New("not found")

// Domain-level error values returned by the hotel service.
var (
	ErrUnknownAccount       = fmt.Errorf("unknown account: %w", ErrNotFound)
	ErrUnknownRoom          = fmt.Errorf("unknown room: %w", ErrNotFound)
	ErrUnknownBooking       = fmt.Errorf("unknown booking: %w", ErrNotFound)
	ErrUnknownTransaction   = fmt.Errorf("unknown transaction: %w", ErrNotFound)
	ErrInvalidRange         = errors.New("invalid date range")
	ErrRoomNotAvailable     = errors.New("room not available")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrIllegalTransition    = errors.New("illegal status transition")
	ErrAlreadyCancelled     = errors.New("booking already cancelled")
	ErrForbidden            = errors.New("forbidden")
	ErrAmountOutOfRange     = errors.New("amount out of range")
	ErrInvalidUserID        = errors.New("invalid user id")
	ErrInvalidRoomID        = errors.New("invalid room id")
	ErrInvalidBookingID     = errors.New("invalid booking id")
	ErrInvalidTransactionID = errors.New("invalid transaction id")
	ErrInvalidCurrency      = errors.New("invalid currency")
	ErrInvalidRoomType      = errors.New("invalid room type")
	ErrInvalidDate          = errors.New("invalid date")
	ErrInvalidGuests        = errors.New("invalid guest count")
	ErrInvalidBookingStatus = errors.New("invalid booking status")
	ErrInvalidTxType        = errors.New("invalid transaction type")
	ErrInvalidTxStatus      = errors.New("invalid transaction status")
	ErrInvalidMethod        = errors.New("invalid payment method")
	ErrInvalidPage          = errors.New("invalid page")
	ErrInvalidServiceConfig = errors.New("invalid service config")
	ErrStatusChanged        = errors.New("booking status changed concurrently")
)

// OperationError wraps a failure with a stable operation code.
type OperationError struct {
	operation string
	subject   string
	code      string
	err       error
}

// Error returns the formatted error message.
func (operationError OperationError) Error() string {
	return fmt.Sprintf("%s.%s.%s: %v", operationError.operation, operationError.subject, operationError.code, operationError.err)
}

// Unwrap returns the underlying error.
func (operationError OperationError) Unwrap() error {
	return operationError.err
}

// Operation returns the operation segment.
func (operationError OperationError) Operation() string {
	return operationError.operation
}

// Subject returns the subject segment.
func (operationError OperationError) Subject() string {
	return operationError.subject
}

// Code returns the stable error code segment.
func (operationError OperationError) Code() string {
	return operationError.code
}

// WrapError wraps an error with operation, subject, and code metadata.
func WrapError(operation string, subject string, code string, err error) error {
	if err == nil {
		return nil
	}
	return OperationError{
		operation: operation,
		subject:   subject,
		code:      code,
		err:       err,
	}
}
