package hotel

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency tags an amount. The core never converts between currencies.
type Currency string

const (
	CurrencyBYN Currency = "BYN"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

var supportedCurrencies = map[Currency]struct{}{
	CurrencyBYN: {},
	CurrencyUSD: {},
	CurrencyEUR: {},
}

// ParseCurrency normalizes and validates a currency code.
func ParseCurrency(raw string) (Currency, error) {
	normalized := Currency(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := supportedCurrencies[normalized]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidCurrency, raw)
	}
	return normalized, nil
}

// String returns the currency code.
func (currency Currency) String() string {
	return string(currency)
}

// PositiveAmount is a strictly positive fixed-point amount.
type PositiveAmount struct {
	value decimal.Decimal
}

// NewPositiveAmount validates that the amount is greater than zero and has at most two decimal places.
func NewPositiveAmount(raw decimal.Decimal) (PositiveAmount, error) {
	if !raw.IsPositive() {
		return PositiveAmount{}, fmt.Errorf("%w: must be greater than zero", ErrAmountOutOfRange)
	}
	if !raw.Equal(raw.Truncate(amountScale)) {
		return PositiveAmount{}, fmt.Errorf("%w: more than %d decimal places", ErrAmountOutOfRange, amountScale)
	}
	return PositiveAmount{value: raw}, nil
}

// ParsePositiveAmount parses a decimal string into a PositiveAmount.
func ParsePositiveAmount(raw string) (PositiveAmount, error) {
	parsed, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return PositiveAmount{}, fmt.Errorf("%w: %q is not a decimal", ErrAmountOutOfRange, raw)
	}
	return NewPositiveAmount(parsed)
}

// Decimal returns the underlying value.
func (amount PositiveAmount) Decimal() decimal.Decimal {
	return amount.value
}

// String renders the amount with two decimal places.
func (amount PositiveAmount) String() string {
	return amount.value.StringFixed(amountScale)
}

// RoomType classifies catalog rooms.
type RoomType string

const (
	RoomTypeStandard  RoomType = "STANDARD"
	RoomTypeDeluxe    RoomType = "DELUXE"
	RoomTypeSuite     RoomType = "SUITE"
	RoomTypeApartment RoomType = "APARTMENT"
	RoomTypePenthouse RoomType = "PENTHOUSE"
)

// ParseRoomType validates a room type, case-insensitively.
func ParseRoomType(raw string) (RoomType, error) {
	normalized := RoomType(strings.ToUpper(strings.TrimSpace(raw)))
	switch normalized {
	case RoomTypeStandard, RoomTypeDeluxe, RoomTypeSuite, RoomTypeApartment, RoomTypePenthouse:
		return normalized, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRoomType, raw)
	}
}

// String returns the room type name.
func (roomType RoomType) String() string {
	return string(roomType)
}
