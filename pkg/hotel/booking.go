package hotel

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// PaymentMethodWallet marks payments and refunds settled against the wallet balance.
const PaymentMethodWallet = "WALLET"

// CreateBookingRequest describes a reservation attempt by UserID.
type CreateBookingRequest struct {
	UserID          UserID
	RoomID          RoomID
	Stay            DateRange
	Guests          int
	SpecialRequests string
}

// CreateBooking admits a booking, charges the wallet and records the payment in one transaction.
// The price is always base price × nights of the room as stored at commit time.
func (service *Service) CreateBooking(ctx context.Context, request CreateBookingRequest) (BookingDetail, error) {
	detail, operationError := service.createBooking(ctx, request)
	service.logOperation(ctx, OperationLog{
		Operation: operationCreateBooking,
		UserID:    request.UserID,
		RoomID:    request.RoomID,
		BookingID: detail.Booking.ID,
		Amount:    detail.Booking.TotalPrice,
		Currency:  detail.Booking.Currency,
		Error:     operationError,
	})
	if operationError != nil {
		return BookingDetail{}, operationError
	}
	bookingID := detail.Booking.ID
	service.notify(ctx, Event{
		Name:          EventBookingCreated,
		UserID:        detail.Booking.UserID,
		BookingID:     &bookingID,
		BookingStatus: detail.Booking.Status,
		Amount:        detail.Booking.TotalPrice,
		Currency:      detail.Booking.Currency,
	})
	return detail, nil
}

func (service *Service) createBooking(ctx context.Context, request CreateBookingRequest) (BookingDetail, error) {
	if _, err := service.store.GetAccount(ctx, request.UserID); err != nil {
		return BookingDetail{}, err
	}
	room, err := service.store.GetRoom(ctx, request.RoomID)
	if err != nil {
		return BookingDetail{}, err
	}
	if err := service.validateBookingRequest(request, room); err != nil {
		return BookingDetail{}, err
	}
	available, err := service.IsAvailable(ctx, request.RoomID, request.Stay)
	if err != nil {
		return BookingDetail{}, err
	}
	if !available {
		return BookingDetail{}, fmt.Errorf("%w: room %s is booked for %s", ErrRoomNotAvailable, room.Number, request.Stay)
	}

	var detail BookingDetail
	err = service.store.WithTx(ctx, func(ctx context.Context, transactionStore Store) error {
		lockedRoom, err := transactionStore.LockRoom(ctx, request.RoomID)
		if err != nil {
			return err
		}
		if !lockedRoom.Active {
			return fmt.Errorf("%w: room %s is inactive", ErrRoomNotAvailable, lockedRoom.Number)
		}
		conflicts, err := transactionStore.CountConflicts(ctx, ConflictQuery{RoomID: lockedRoom.ID, Stay: request.Stay})
		if err != nil {
			return err
		}
		if conflicts > 0 {
			return fmt.Errorf("%w: room %s is booked for %s", ErrRoomNotAvailable, lockedRoom.Number, request.Stay)
		}
		totalPrice, err := NewPositiveAmount(lockedRoom.BasePrice.Mul(decimal.NewFromInt(int64(request.Stay.Nights()))))
		if err != nil {
			return fmt.Errorf("%w: room %s has no valid price: %v", ErrRoomNotAvailable, lockedRoom.Number, err)
		}
		account, err := transactionStore.LockAccount(ctx, request.UserID)
		if err != nil {
			return err
		}
		if _, err := matchAccountCurrency(account, lockedRoom.Currency); err != nil {
			return fmt.Errorf("room %s is priced in %s: %w", lockedRoom.Number, lockedRoom.Currency, err)
		}
		if account.Balance.LessThan(totalPrice.Decimal()) {
			return fmt.Errorf("%w: balance %s is below %s", ErrInsufficientFunds, account.Balance.StringFixed(amountScale), totalPrice)
		}

		createdAt := service.now()
		booking, err := transactionStore.InsertBooking(ctx, BookingInput{
			UserID:          request.UserID,
			RoomID:          lockedRoom.ID,
			Stay:            request.Stay,
			Guests:          request.Guests,
			PricePerNight:   lockedRoom.BasePrice,
			TotalPrice:      totalPrice.Decimal(),
			Currency:        lockedRoom.Currency,
			SpecialRequests: request.SpecialRequests,
			CreatedAt:       createdAt,
		})
		if err != nil {
			return err
		}
		bookingID := booking.ID
		if _, err := transactionStore.InsertTransaction(ctx, TransactionInput{
			UserID:        request.UserID,
			Type:          TransactionPayment,
			Amount:        totalPrice,
			Currency:      lockedRoom.Currency,
			Status:        TransactionCompleted,
			BookingID:     &bookingID,
			Description:   TransactionPayment.DefaultDescription(&bookingID),
			PaymentMethod: PaymentMethodWallet,
			ExternalID:    service.newExternalID(),
			CreatedAt:     createdAt,
			CompletedAt:   &createdAt,
		}); err != nil {
			return err
		}
		if err := transactionStore.UpdateAccountBalance(ctx, request.UserID, account.Balance.Sub(totalPrice.Decimal()), createdAt); err != nil {
			return err
		}
		history, err := transactionStore.InsertBookingHistory(ctx, BookingHistoryInput{
			BookingID: bookingID,
			NewStatus: booking.Status,
			ChangedBy: request.UserID,
			ChangedAt: createdAt,
		})
		if err != nil {
			return err
		}
		detail = BookingDetail{Booking: booking, Room: lockedRoom, History: []BookingHistory{history}}
		return nil
	})
	if err != nil {
		return BookingDetail{}, err
	}
	return detail, nil
}

func (service *Service) validateBookingRequest(request CreateBookingRequest, room Room) error {
	if request.Guests < 1 {
		return fmt.Errorf("%w: at least one guest is required", ErrInvalidGuests)
	}
	if request.Guests > room.Capacity {
		return fmt.Errorf("%w: %d guests exceed capacity %d of room %s", ErrInvalidGuests, request.Guests, room.Capacity, room.Number)
	}
	if request.Stay.IsZero() {
		return fmt.Errorf("%w: empty stay", ErrInvalidRange)
	}
	if request.Stay.CheckIn().Before(service.today()) {
		return fmt.Errorf("%w: check-in %s is in the past", ErrInvalidRange, request.Stay.CheckIn().Format(DateLayout))
	}
	if !room.Active {
		return fmt.Errorf("%w: room %s is inactive", ErrRoomNotAvailable, room.Number)
	}
	return nil
}

// CancelBooking cancels the actor's own booking and refunds its full price.
func (service *Service) CancelBooking(ctx context.Context, bookingID BookingID, actorID UserID, reason string) (BookingDetail, error) {
	detail, operationError := service.cancelBooking(ctx, bookingID, actorID, reason)
	service.logOperation(ctx, OperationLog{
		Operation: operationCancelBooking,
		UserID:    actorID,
		RoomID:    detail.Booking.RoomID,
		BookingID: bookingID,
		Amount:    detail.Booking.TotalPrice,
		Currency:  detail.Booking.Currency,
		Error:     operationError,
	})
	if operationError != nil {
		return BookingDetail{}, operationError
	}
	service.notifyStatusChange(ctx, detail.Booking)
	return detail, nil
}

func (service *Service) cancelBooking(ctx context.Context, bookingID BookingID, actorID UserID, reason string) (BookingDetail, error) {
	booking, err := service.store.GetBooking(ctx, bookingID)
	if err != nil {
		return BookingDetail{}, err
	}
	if booking.UserID != actorID {
		return BookingDetail{}, fmt.Errorf("%w: booking %s belongs to another user", ErrForbidden, bookingID)
	}
	if err := checkTransition(booking.Status, BookingStatusCancelled); err != nil {
		return BookingDetail{}, err
	}

	var detail BookingDetail
	err = service.store.WithTx(ctx, func(ctx context.Context, transactionStore Store) error {
		lockedBooking, err := transactionStore.LockBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		if err := checkTransition(lockedBooking.Status, BookingStatusCancelled); err != nil {
			return err
		}
		detail, err = service.applyCancellation(ctx, transactionStore, lockedBooking, actorID, reason)
		return err
	})
	if err != nil {
		return BookingDetail{}, err
	}
	return detail, nil
}

// UpdateBookingStatus is the administrative path: any move allowed by the transition table,
// with a full refund when the target is CANCELLED.
func (service *Service) UpdateBookingStatus(ctx context.Context, bookingID BookingID, newStatus BookingStatus, actorID UserID, reason string) (BookingDetail, error) {
	detail, operationError := service.updateBookingStatus(ctx, bookingID, newStatus, actorID, reason)
	service.logOperation(ctx, OperationLog{
		Operation: operationUpdateStatus,
		UserID:    actorID,
		RoomID:    detail.Booking.RoomID,
		BookingID: bookingID,
		Amount:    detail.Booking.TotalPrice,
		Currency:  detail.Booking.Currency,
		Error:     operationError,
	})
	if operationError != nil {
		return BookingDetail{}, operationError
	}
	service.notifyStatusChange(ctx, detail.Booking)
	return detail, nil
}

func (service *Service) updateBookingStatus(ctx context.Context, bookingID BookingID, newStatus BookingStatus, actorID UserID, reason string) (BookingDetail, error) {
	if _, err := ParseBookingStatus(newStatus.String()); err != nil {
		return BookingDetail{}, err
	}
	booking, err := service.store.GetBooking(ctx, bookingID)
	if err != nil {
		return BookingDetail{}, err
	}
	if err := checkTransition(booking.Status, newStatus); err != nil {
		return BookingDetail{}, err
	}

	var detail BookingDetail
	err = service.store.WithTx(ctx, func(ctx context.Context, transactionStore Store) error {
		lockedBooking, err := transactionStore.LockBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		if err := checkTransition(lockedBooking.Status, newStatus); err != nil {
			return err
		}
		if newStatus == BookingStatusCancelled {
			detail, err = service.applyCancellation(ctx, transactionStore, lockedBooking, actorID, reason)
			return err
		}
		detail, err = service.applyStatusChange(ctx, transactionStore, lockedBooking, newStatus, actorID, reason)
		return err
	})
	if err != nil {
		return BookingDetail{}, err
	}
	return detail, nil
}

// CompleteForReview promotes a finished stay to COMPLETED so the guest can review it.
// Any blocking booking whose check-out date is before today qualifies.
func (service *Service) CompleteForReview(ctx context.Context, bookingID BookingID, actorID UserID) (BookingDetail, error) {
	detail, operationError := service.completeForReview(ctx, bookingID, actorID)
	service.logOperation(ctx, OperationLog{
		Operation: operationCompleteForReview,
		UserID:    actorID,
		RoomID:    detail.Booking.RoomID,
		BookingID: bookingID,
		Error:     operationError,
	})
	return detail, operationError
}

func (service *Service) completeForReview(ctx context.Context, bookingID BookingID, actorID UserID) (BookingDetail, error) {
	booking, err := service.store.GetBooking(ctx, bookingID)
	if err != nil {
		return BookingDetail{}, err
	}
	if booking.UserID != actorID {
		return BookingDetail{}, fmt.Errorf("%w: booking %s belongs to another user", ErrForbidden, bookingID)
	}
	if booking.Status == BookingStatusCompleted {
		return service.loadDetail(ctx, service.store, booking)
	}
	if err := service.checkReviewable(booking); err != nil {
		return BookingDetail{}, err
	}

	var detail BookingDetail
	err = service.store.WithTx(ctx, func(ctx context.Context, transactionStore Store) error {
		lockedBooking, err := transactionStore.LockBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		if lockedBooking.Status == BookingStatusCompleted {
			detail, err = service.loadDetail(ctx, transactionStore, lockedBooking)
			return err
		}
		if err := service.checkReviewable(lockedBooking); err != nil {
			return err
		}
		detail, err = service.applyStatusChange(ctx, transactionStore, lockedBooking, BookingStatusCompleted, actorID, reasonStayEnded)
		return err
	})
	if err != nil {
		return BookingDetail{}, err
	}
	return detail, nil
}

func (service *Service) checkReviewable(booking Booking) error {
	if !booking.Status.IsBlocking() {
		return fmt.Errorf("%w: %s booking cannot be completed", ErrIllegalTransition, booking.Status)
	}
	if !booking.Stay.CheckOut().Before(service.today()) {
		return fmt.Errorf("%w: stay ends %s", ErrIllegalTransition, booking.Stay.CheckOut().Format(DateLayout))
	}
	return nil
}

// GetBooking returns the actor's booking with its room and history.
func (service *Service) GetBooking(ctx context.Context, bookingID BookingID, actorID UserID) (BookingDetail, error) {
	booking, err := service.store.GetBooking(ctx, bookingID)
	if err != nil {
		return BookingDetail{}, err
	}
	if booking.UserID != actorID {
		return BookingDetail{}, fmt.Errorf("%w: booking %s belongs to another user", ErrForbidden, bookingID)
	}
	return service.loadDetail(ctx, service.store, booking)
}

// ListBookings returns the user's bookings, newest first.
func (service *Service) ListBookings(ctx context.Context, userID UserID, page Page) ([]Booking, error) {
	if _, err := service.store.GetAccount(ctx, userID); err != nil {
		return nil, err
	}
	return service.store.ListBookings(ctx, userID, page)
}

// applyCancellation refunds the owner, writes the REFUND row, flips the status and appends history.
// It must run inside WithTx after the booking row is locked.
func (service *Service) applyCancellation(ctx context.Context, transactionStore Store, booking Booking, actorID UserID, reason string) (BookingDetail, error) {
	refund, err := NewPositiveAmount(booking.TotalPrice)
	if err != nil {
		return BookingDetail{}, err
	}
	account, err := transactionStore.LockAccount(ctx, booking.UserID)
	if err != nil {
		return BookingDetail{}, err
	}
	cancelledAt := service.now()
	bookingID := booking.ID
	if _, err := transactionStore.InsertTransaction(ctx, TransactionInput{
		UserID:        booking.UserID,
		Type:          TransactionRefund,
		Amount:        refund,
		Currency:      booking.Currency,
		Status:        TransactionCompleted,
		BookingID:     &bookingID,
		Description:   TransactionRefund.DefaultDescription(&bookingID),
		PaymentMethod: PaymentMethodWallet,
		ExternalID:    service.newExternalID(),
		CreatedAt:     cancelledAt,
		CompletedAt:   &cancelledAt,
	}); err != nil {
		return BookingDetail{}, err
	}
	if err := transactionStore.UpdateAccountBalance(ctx, booking.UserID, account.Balance.Add(refund.Decimal()), cancelledAt); err != nil {
		return BookingDetail{}, err
	}
	if err := transactionStore.UpdateBookingStatus(ctx, BookingStatusChange{
		BookingID:          bookingID,
		From:               booking.Status,
		To:                 BookingStatusCancelled,
		ChangedAt:          cancelledAt,
		CancelledAt:        &cancelledAt,
		CancellationReason: reason,
	}); err != nil {
		return BookingDetail{}, err
	}
	if _, err := transactionStore.InsertBookingHistory(ctx, BookingHistoryInput{
		BookingID: bookingID,
		OldStatus: booking.Status,
		NewStatus: BookingStatusCancelled,
		ChangedBy: actorID,
		Reason:    reason,
		ChangedAt: cancelledAt,
	}); err != nil {
		return BookingDetail{}, err
	}
	booking.Status = BookingStatusCancelled
	booking.CancelledAt = &cancelledAt
	booking.CancellationReason = reason
	booking.UpdatedAt = cancelledAt
	return service.loadDetail(ctx, transactionStore, booking)
}

func (service *Service) applyStatusChange(ctx context.Context, transactionStore Store, booking Booking, newStatus BookingStatus, actorID UserID, reason string) (BookingDetail, error) {
	changedAt := service.now()
	if err := transactionStore.UpdateBookingStatus(ctx, BookingStatusChange{
		BookingID: booking.ID,
		From:      booking.Status,
		To:        newStatus,
		ChangedAt: changedAt,
	}); err != nil {
		return BookingDetail{}, err
	}
	if _, err := transactionStore.InsertBookingHistory(ctx, BookingHistoryInput{
		BookingID: booking.ID,
		OldStatus: booking.Status,
		NewStatus: newStatus,
		ChangedBy: actorID,
		Reason:    reason,
		ChangedAt: changedAt,
	}); err != nil {
		return BookingDetail{}, err
	}
	booking.Status = newStatus
	booking.UpdatedAt = changedAt
	return service.loadDetail(ctx, transactionStore, booking)
}

func (service *Service) loadDetail(ctx context.Context, store Store, booking Booking) (BookingDetail, error) {
	room, err := store.GetRoom(ctx, booking.RoomID)
	if err != nil {
		return BookingDetail{}, err
	}
	history, err := store.ListBookingHistory(ctx, booking.ID)
	if err != nil {
		return BookingDetail{}, err
	}
	return BookingDetail{Booking: booking, Room: room, History: history}, nil
}

func (service *Service) notifyStatusChange(ctx context.Context, booking Booking) {
	bookingID := booking.ID
	eventName := EventBookingStatusChanged
	if booking.Status == BookingStatusCancelled {
		eventName = EventBookingCancelled
	}
	service.notify(ctx, Event{
		Name:          eventName,
		UserID:        booking.UserID,
		BookingID:     &bookingID,
		BookingStatus: booking.Status,
		Amount:        booking.TotalPrice,
		Currency:      booking.Currency,
	})
}

// checkTransition reports a repeated cancellation as ErrAlreadyCancelled and defers to the table otherwise.
func checkTransition(from BookingStatus, to BookingStatus) error {
	if from == BookingStatusCancelled && to == BookingStatusCancelled {
		return ErrAlreadyCancelled
	}
	return ValidateTransition(from, to)
}
