package hotel

import (
	"fmt"
	"strings"
)

// UserID identifies a wallet owner. Identity itself is managed outside this package.
type UserID struct {
	value string
}

// RoomID identifies a catalog room.
type RoomID struct {
	value string
}

// BookingID identifies a booking.
type BookingID struct {
	value string
}

// TransactionID identifies a wallet transaction.
type TransactionID struct {
	value string
}

// NewUserID validates and normalizes a user id.
func NewUserID(raw string) (UserID, error) {
	trimmed, err := normalizeIdentifier(raw, ErrInvalidUserID)
	if err != nil {
		return UserID{}, err
	}
	return UserID{value: trimmed}, nil
}

// String returns the normalized identifier.
func (id UserID) String() string {
	return id.value
}

// IsZero reports whether the identifier was never set.
func (id UserID) IsZero() bool {
	return id.value == ""
}

// NewRoomID validates and normalizes a room id.
func NewRoomID(raw string) (RoomID, error) {
	trimmed, err := normalizeIdentifier(raw, ErrInvalidRoomID)
	if err != nil {
		return RoomID{}, err
	}
	return RoomID{value: trimmed}, nil
}

// String returns the normalized identifier.
func (id RoomID) String() string {
	return id.value
}

// NewBookingID validates and normalizes a booking id.
func NewBookingID(raw string) (BookingID, error) {
	trimmed, err := normalizeIdentifier(raw, ErrInvalidBookingID)
	if err != nil {
		return BookingID{}, err
	}
	return BookingID{value: trimmed}, nil
}

// String returns the normalized identifier.
func (id BookingID) String() string {
	return id.value
}

// NewTransactionID validates and normalizes a transaction id.
func NewTransactionID(raw string) (TransactionID, error) {
	trimmed, err := normalizeIdentifier(raw, ErrInvalidTransactionID)
	if err != nil {
		return TransactionID{}, err
	}
	return TransactionID{value: trimmed}, nil
}

// String returns the normalized identifier.
func (id TransactionID) String() string {
	return id.value
}

func normalizeIdentifier(raw string, sentinel error) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty value", sentinel)
	}
	if len(trimmed) > maxIdentifierLength {
		return "", fmt.Errorf("%w: longer than %d characters", sentinel, maxIdentifierLength)
	}
	return trimmed, nil
}
