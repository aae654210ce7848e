package pgstore

import (
	"strconv"
	"time"

	"github.com/MarkoPoloResearchLab/hotel/pkg/hotel"
	"github.com/shopspring/decimal"
)

func buildAccount(userIDValue string, balanceValue string, currencyValue string, createdAt time.Time, updatedAt time.Time) (hotel.Account, error) {
	userID, err := hotel.NewUserID(userIDValue)
	if err != nil {
		return hotel.Account{}, err
	}
	balance, err := decimal.NewFromString(balanceValue)
	if err != nil {
		return hotel.Account{}, err
	}
	currency, err := hotel.ParseCurrency(currencyValue)
	if err != nil {
		return hotel.Account{}, err
	}
	return hotel.Account{
		UserID:    userID,
		Balance:   balance,
		Currency:  currency,
		CreatedAt: createdAt.UTC(),
		UpdatedAt: updatedAt.UTC(),
	}, nil
}

func scanRoom(row rowScanner) (hotel.Room, error) {
	var (
		roomIDValue   string
		number        string
		roomTypeValue string
		capacity      int
		basePrice     string
		currencyValue string
		active        bool
	)
	if err := row.Scan(&roomIDValue, &number, &roomTypeValue, &capacity, &basePrice, &currencyValue, &active); err != nil {
		return hotel.Room{}, err
	}
	roomID, err := hotel.NewRoomID(roomIDValue)
	if err != nil {
		return hotel.Room{}, err
	}
	roomType, err := hotel.ParseRoomType(roomTypeValue)
	if err != nil {
		return hotel.Room{}, err
	}
	price, err := decimal.NewFromString(basePrice)
	if err != nil {
		return hotel.Room{}, err
	}
	currency, err := hotel.ParseCurrency(currencyValue)
	if err != nil {
		return hotel.Room{}, err
	}
	return hotel.Room{
		ID:        roomID,
		Number:    number,
		Type:      roomType,
		Capacity:  capacity,
		BasePrice: price,
		Currency:  currency,
		Active:    active,
	}, nil
}

func scanBooking(row rowScanner) (hotel.Booking, error) {
	var (
		bookingIDValue     string
		userIDValue        string
		roomIDValue        string
		checkIn            time.Time
		checkOut           time.Time
		guests             int
		pricePerNight      string
		totalPrice         string
		currencyValue      string
		statusValue        string
		specialRequests    string
		createdAt          time.Time
		updatedAt          time.Time
		cancelledAt        *time.Time
		cancellationReason string
	)
	err := row.Scan(
		&bookingIDValue, &userIDValue, &roomIDValue, &checkIn, &checkOut, &guests,
		&pricePerNight, &totalPrice, &currencyValue, &statusValue,
		&specialRequests, &createdAt, &updatedAt, &cancelledAt, &cancellationReason,
	)
	if err != nil {
		return hotel.Booking{}, err
	}
	bookingID, err := hotel.NewBookingID(bookingIDValue)
	if err != nil {
		return hotel.Booking{}, err
	}
	userID, err := hotel.NewUserID(userIDValue)
	if err != nil {
		return hotel.Booking{}, err
	}
	roomID, err := hotel.NewRoomID(roomIDValue)
	if err != nil {
		return hotel.Booking{}, err
	}
	stay, err := hotel.NewDateRange(checkIn.UTC(), checkOut.UTC())
	if err != nil {
		return hotel.Booking{}, err
	}
	nightly, err := decimal.NewFromString(pricePerNight)
	if err != nil {
		return hotel.Booking{}, err
	}
	total, err := decimal.NewFromString(totalPrice)
	if err != nil {
		return hotel.Booking{}, err
	}
	currency, err := hotel.ParseCurrency(currencyValue)
	if err != nil {
		return hotel.Booking{}, err
	}
	status, err := hotel.ParseBookingStatus(statusValue)
	if err != nil {
		return hotel.Booking{}, err
	}
	return hotel.Booking{
		ID:                 bookingID,
		UserID:             userID,
		RoomID:             roomID,
		Stay:               stay,
		Guests:             guests,
		PricePerNight:      nightly,
		TotalPrice:         total,
		Currency:           currency,
		Status:             status,
		SpecialRequests:    specialRequests,
		CreatedAt:          createdAt.UTC(),
		UpdatedAt:          updatedAt.UTC(),
		CancelledAt:        utcOrNil(cancelledAt),
		CancellationReason: cancellationReason,
	}, nil
}

func buildHistory(historyID int64, bookingIDValue string, oldStatusValue string, newStatusValue string, changedByValue string, reason string, changedAt time.Time) (hotel.BookingHistory, error) {
	bookingID, err := hotel.NewBookingID(bookingIDValue)
	if err != nil {
		return hotel.BookingHistory{}, err
	}
	var oldStatus hotel.BookingStatus
	if oldStatusValue != "" {
		oldStatus, err = hotel.ParseBookingStatus(oldStatusValue)
		if err != nil {
			return hotel.BookingHistory{}, err
		}
	}
	newStatus, err := hotel.ParseBookingStatus(newStatusValue)
	if err != nil {
		return hotel.BookingHistory{}, err
	}
	changedBy, err := hotel.NewUserID(changedByValue)
	if err != nil {
		return hotel.BookingHistory{}, err
	}
	return hotel.BookingHistory{
		ID:        strconv.FormatInt(historyID, 10),
		BookingID: bookingID,
		OldStatus: oldStatus,
		NewStatus: newStatus,
		ChangedBy: changedBy,
		Reason:    reason,
		ChangedAt: changedAt.UTC(),
	}, nil
}

func scanTransaction(row rowScanner) (hotel.Transaction, error) {
	var (
		transactionIDValue string
		userIDValue        string
		typeValue          string
		amountValue        string
		currencyValue      string
		statusValue        string
		bookingIDValue     *string
		description        string
		paymentMethod      string
		externalID         string
		metadata           string
		createdAt          time.Time
		completedAt        *time.Time
	)
	err := row.Scan(
		&transactionIDValue, &userIDValue, &typeValue, &amountValue, &currencyValue, &statusValue, &bookingIDValue,
		&description, &paymentMethod, &externalID, &metadata, &createdAt, &completedAt,
	)
	if err != nil {
		return hotel.Transaction{}, err
	}
	transactionID, err := hotel.NewTransactionID(transactionIDValue)
	if err != nil {
		return hotel.Transaction{}, err
	}
	userID, err := hotel.NewUserID(userIDValue)
	if err != nil {
		return hotel.Transaction{}, err
	}
	transactionType, err := hotel.ParseTransactionType(typeValue)
	if err != nil {
		return hotel.Transaction{}, err
	}
	amount, err := decimal.NewFromString(amountValue)
	if err != nil {
		return hotel.Transaction{}, err
	}
	currency, err := hotel.ParseCurrency(currencyValue)
	if err != nil {
		return hotel.Transaction{}, err
	}
	status, err := hotel.ParseTransactionStatus(statusValue)
	if err != nil {
		return hotel.Transaction{}, err
	}
	var bookingID *hotel.BookingID
	if bookingIDValue != nil {
		parsed, err := hotel.NewBookingID(*bookingIDValue)
		if err != nil {
			return hotel.Transaction{}, err
		}
		bookingID = &parsed
	}
	return hotel.Transaction{
		ID:            transactionID,
		UserID:        userID,
		Type:          transactionType,
		Amount:        amount,
		Currency:      currency,
		Status:        status,
		BookingID:     bookingID,
		Description:   description,
		PaymentMethod: paymentMethod,
		ExternalID:    externalID,
		MetadataJSON:  metadata,
		CreatedAt:     createdAt.UTC(),
		CompletedAt:   utcOrNil(completedAt),
	}, nil
}

func utcOrNil(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	converted := value.UTC()
	return &converted
}
