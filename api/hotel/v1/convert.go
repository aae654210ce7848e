package hotelv1

import (
	"time"

	"github.com/MarkoPoloResearchLab/hotel/pkg/hotel"
	"github.com/shopspring/decimal"
)

const amountScale = 2

// FormatAmount renders an amount with two decimal places.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(amountScale)
}

func formatTime(value time.Time) string {
	return value.UTC().Format(time.RFC3339)
}

func formatOptionalTime(value *time.Time) string {
	if value == nil {
		return ""
	}
	return formatTime(*value)
}

// NewRoom converts a catalog room.
func NewRoom(room hotel.Room) *Room {
	return &Room{
		RoomID:    room.ID.String(),
		Number:    room.Number,
		Type:      room.Type.String(),
		Capacity:  int32(room.Capacity),
		BasePrice: FormatAmount(room.BasePrice),
		Currency:  room.Currency.String(),
		Active:    room.Active,
	}
}

// NewBooking converts a booking without its room or history.
func NewBooking(booking hotel.Booking) *Booking {
	return &Booking{
		BookingID:          booking.ID.String(),
		UserID:             booking.UserID.String(),
		RoomID:             booking.RoomID.String(),
		CheckIn:            booking.Stay.CheckIn().Format(hotel.DateLayout),
		CheckOut:           booking.Stay.CheckOut().Format(hotel.DateLayout),
		Nights:             int32(booking.Stay.Nights()),
		Guests:             int32(booking.Guests),
		PricePerNight:      FormatAmount(booking.PricePerNight),
		TotalPrice:         FormatAmount(booking.TotalPrice),
		Currency:           booking.Currency.String(),
		Status:             booking.Status.String(),
		SpecialRequests:    booking.SpecialRequests,
		CreatedAt:          formatTime(booking.CreatedAt),
		UpdatedAt:          formatTime(booking.UpdatedAt),
		CancelledAt:        formatOptionalTime(booking.CancelledAt),
		CancellationReason: booking.CancellationReason,
	}
}

// NewBookingDetail converts a booking with its room and status history.
func NewBookingDetail(detail hotel.BookingDetail) *Booking {
	message := NewBooking(detail.Booking)
	message.Room = NewRoom(detail.Room)
	message.History = make([]*BookingHistoryEntry, 0, len(detail.History))
	for _, entry := range detail.History {
		message.History = append(message.History, &BookingHistoryEntry{
			HistoryID: entry.ID,
			OldStatus: entry.OldStatus.String(),
			NewStatus: entry.NewStatus.String(),
			ChangedBy: entry.ChangedBy.String(),
			Reason:    entry.Reason,
			ChangedAt: formatTime(entry.ChangedAt),
		})
	}
	return message
}

// NewTransaction converts a ledger transaction.
func NewTransaction(transaction hotel.Transaction) *Transaction {
	bookingID := ""
	if transaction.BookingID != nil {
		bookingID = transaction.BookingID.String()
	}
	return &Transaction{
		TransactionID: transaction.ID.String(),
		UserID:        transaction.UserID.String(),
		Type:          transaction.Type.String(),
		Amount:        FormatAmount(transaction.Amount),
		SignedAmount:  FormatAmount(transaction.SignedAmount()),
		Currency:      transaction.Currency.String(),
		Status:        transaction.Status.String(),
		BookingID:     bookingID,
		Description:   transaction.Description,
		PaymentMethod: transaction.PaymentMethod,
		ExternalID:    transaction.ExternalID,
		MetadataJSON:  transaction.MetadataJSON,
		CreatedAt:     formatTime(transaction.CreatedAt),
		CompletedAt:   formatOptionalTime(transaction.CompletedAt),
	}
}
