package hotel

import (
	"fmt"
	"strings"
)

// BookingStatus is a state of the booking lifecycle.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCheckedIn BookingStatus = "CHECKED_IN"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// bookingTransitions lists every legal move; states without an entry are terminal.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCheckedIn, BookingStatusCancelled},
	BookingStatusCheckedIn: {BookingStatusCompleted},
}

// BlockingStatuses occupy a room for their date range.
var BlockingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusCheckedIn,
}

// ParseBookingStatus validates a status name, case-insensitively.
func ParseBookingStatus(raw string) (BookingStatus, error) {
	normalized := BookingStatus(strings.ToUpper(strings.TrimSpace(raw)))
	switch normalized {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCheckedIn, BookingStatusCompleted, BookingStatusCancelled:
		return normalized, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidBookingStatus, raw)
	}
}

// String returns the status name.
func (status BookingStatus) String() string {
	return string(status)
}

// IsBlocking reports whether the status holds the room.
func (status BookingStatus) IsBlocking() bool {
	for _, blocking := range BlockingStatuses {
		if status == blocking {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves the status.
func (status BookingStatus) IsTerminal() bool {
	return len(bookingTransitions[status]) == 0
}

// ValidateTransition checks a status change against the transition table.
func ValidateTransition(from BookingStatus, to BookingStatus) error {
	for _, allowed := range bookingTransitions[from] {
		if allowed == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
}

// TransactionType enumerates balance-affecting events.
type TransactionType string

const (
	TransactionDeposit    TransactionType = "DEPOSIT"
	TransactionPayment    TransactionType = "PAYMENT"
	TransactionRefund     TransactionType = "REFUND"
	TransactionWithdrawal TransactionType = "WITHDRAWAL"
)

// ParseTransactionType validates a transaction type name.
func ParseTransactionType(raw string) (TransactionType, error) {
	normalized := TransactionType(strings.ToUpper(strings.TrimSpace(raw)))
	switch normalized {
	case TransactionDeposit, TransactionPayment, TransactionRefund, TransactionWithdrawal:
		return normalized, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTxType, raw)
	}
}

// String returns the type name.
func (transactionType TransactionType) String() string {
	return string(transactionType)
}

// Sign is +1 for credits and -1 for debits.
func (transactionType TransactionType) Sign() int {
	switch transactionType {
	case TransactionDeposit, TransactionRefund:
		return 1
	case TransactionPayment, TransactionWithdrawal:
		return -1
	default:
		return 0
	}
}

// DefaultDescription is used when the caller supplies none.
func (transactionType TransactionType) DefaultDescription(bookingID *BookingID) string {
	switch transactionType {
	case TransactionDeposit:
		return "Account top-up"
	case TransactionPayment:
		if bookingID != nil {
			return "Payment for booking #" + bookingID.String()
		}
		return "Payment"
	case TransactionRefund:
		if bookingID != nil {
			return "Refund for booking #" + bookingID.String()
		}
		return "Refund"
	case TransactionWithdrawal:
		return "Withdrawal"
	default:
		return ""
	}
}

// TransactionStatus tracks settlement of a transaction.
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "PENDING"
	TransactionCompleted TransactionStatus = "COMPLETED"
	TransactionFailed    TransactionStatus = "FAILED"
	TransactionCancelled TransactionStatus = "CANCELLED"
)

// ParseTransactionStatus validates a transaction status name.
func ParseTransactionStatus(raw string) (TransactionStatus, error) {
	normalized := TransactionStatus(strings.ToUpper(strings.TrimSpace(raw)))
	switch normalized {
	case TransactionPending, TransactionCompleted, TransactionFailed, TransactionCancelled:
		return normalized, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTxStatus, raw)
	}
}

// String returns the status name.
func (status TransactionStatus) String() string {
	return string(status)
}

// IsTerminal reports whether the status is final.
func (status TransactionStatus) IsTerminal() bool {
	return status != TransactionPending
}
