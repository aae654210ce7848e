package hotel

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

const (
	guestUserValue       = "guest-1"
	otherUserValue       = "guest-2"
	adminUserValue       = "admin-1"
	roomIDValue          = "room-101"
	roomNumberValue      = "101"
	cancelReasonValue    = "plans changed"
	caseGuestsZero       = "zero guests"
	caseGuestsOverflow   = "guests over capacity"
	caseCheckInPast      = "check-in in the past"
	caseEmptyStay        = "empty stay"
	caseUnknownRoom      = "unknown room"
	caseUnknownUser      = "unknown user"
	caseInsufficientFund = "insufficient funds"
	caseInactiveRoom     = "inactive room"
	caseCurrencyMismatch = "room priced in another currency"
)

func TestCreateBookingChargesWalletAndRecordsPayment(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	userID := store.seedAccount(test, guestUserValue, 250)
	roomID := store.seedRoom(test, roomIDValue, roomNumberValue, 100)
	service := mustNewService(test, store)

	detail, err := service.CreateBooking(context.Background(), CreateBookingRequest{
		UserID:          userID,
		RoomID:          roomID,
		Stay:            mustStay(test, "2024-01-10", "2024-01-12"),
		Guests:          1,
		SpecialRequests: "late arrival",
	})
	if err != nil {
		test.Fatalf("create booking: %v", err)
	}
	if !detail.Booking.TotalPrice.Equal(decimal.NewFromInt(200)) {
		test.Fatalf("expected total 200, got %s", detail.Booking.TotalPrice)
	}
	if detail.Nights() != 2 {
		test.Fatalf("expected 2 nights, got %d", detail.Nights())
	}
	if detail.Booking.Status != BookingStatusPending {
		test.Fatalf("expected pending booking, got %s", detail.Booking.Status)
	}
	if balance := store.balanceOf(test, userID); !balance.Equal(decimal.NewFromInt(50)) {
		test.Fatalf("expected balance 50, got %s", balance)
	}
	if len(store.transactions) != 1 {
		test.Fatalf("expected one transaction, got %d", len(store.transactions))
	}
	payment := store.transactions[0]
	if payment.Type != TransactionPayment || payment.Status != TransactionCompleted {
		test.Fatalf("unexpected payment %+v", payment)
	}
	if payment.BookingID == nil || *payment.BookingID != detail.Booking.ID {
		test.Fatalf("expected payment linked to %s, got %v", detail.Booking.ID, payment.BookingID)
	}
	if !payment.Amount.Equal(detail.Booking.TotalPrice) {
		test.Fatalf("expected payment %s, got %s", detail.Booking.TotalPrice, payment.Amount)
	}
	if len(detail.History) != 1 || detail.History[0].NewStatus != BookingStatusPending || detail.History[0].OldStatus != "" {
		test.Fatalf("expected creation history entry, got %+v", detail.History)
	}
}

func TestCreateBookingRejectsOverlappingStay(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	userID := store.seedAccount(test, guestUserValue, 250)
	roomID := store.seedRoom(test, roomIDValue, roomNumberValue, 100)
	service := mustNewService(test, store)
	mustCreateBooking(test, service, userID, roomID, mustStay(test, "2024-01-10", "2024-01-12"))

	_, err := service.CreateBooking(context.Background(), CreateBookingRequest{
		UserID: userID,
		RoomID: roomID,
		Stay:   mustStay(test, "2024-01-11", "2024-01-13"),
		Guests: 1,
	})
	if !errors.Is(err, ErrRoomNotAvailable) {
		test.Fatalf("expected ErrRoomNotAvailable, got %v", err)
	}
	if balance := store.balanceOf(test, userID); !balance.Equal(decimal.NewFromInt(50)) {
		test.Fatalf("expected balance to stay 50, got %s", balance)
	}
	if len(store.transactions) != 1 || len(store.bookings) != 1 {
		test.Fatalf("expected no writes for the rejected booking, got %d transactions and %d bookings", len(store.transactions), len(store.bookings))
	}
	if store.txCount != 1 {
		test.Fatalf("expected the taken room to be rejected before a unit of work, got %d", store.txCount)
	}
}

func TestCreateBookingAcceptsBackToBackStays(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	userID := store.seedAccount(test, guestUserValue, 1000)
	roomID := store.seedRoom(test, roomIDValue, roomNumberValue, 100)
	service := mustNewService(test, store)

	mustCreateBooking(test, service, userID, roomID, mustStay(test, "2024-01-10", "2024-01-12"))
	mustCreateBooking(test, service, userID, roomID, mustStay(test, "2024-01-12", "2024-01-14"))
	mustCreateBooking(test, service, userID, roomID, mustStay(test, "2024-01-08", "2024-01-10"))

	if balance := store.balanceOf(test, userID); !balance.Equal(decimal.NewFromInt(400)) {
		test.Fatalf("expected balance 400, got %s", balance)
	}
}

func TestCreateBookingValidationLeavesNoWrites(test *testing.T) {
	test.Parallel()
	testCases := []struct {
		name      string
		configure func(test *testing.T, store *stubStore, request *CreateBookingRequest)
		wantErr   error
	}{
		{
			name: caseGuestsZero,
			configure: func(test *testing.T, store *stubStore, request *CreateBookingRequest) {
				request.Guests = 0
			},
			wantErr: ErrInvalidGuests,
		},
		{
			name: caseGuestsOverflow,
			configure: func(test *testing.T, store *stubStore, request *CreateBookingRequest) {
				request.Guests = 3
			},
			wantErr: ErrInvalidGuests,
		},
		{
			name: caseCheckInPast,
			configure: func(test *testing.T, store *stubStore, request *CreateBookingRequest) {
				request.Stay = mustStay(test, "2024-01-04", "2024-01-06")
			},
			wantErr: ErrInvalidRange,
		},
		{
			name: caseEmptyStay,
			configure: func(test *testing.T, store *stubStore, request *CreateBookingRequest) {
				request.Stay = DateRange{}
			},
			wantErr: ErrInvalidRange,
		},
		{
			name: caseUnknownRoom,
			configure: func(test *testing.T, store *stubStore, request *CreateBookingRequest) {
				request.RoomID = mustRoomID(test, "room-missing")
			},
			wantErr: ErrNotFound,
		},
		{
			name: caseUnknownUser,
			configure: func(test *testing.T, store *stubStore, request *CreateBookingRequest) {
				request.UserID = mustUserID(test, "stranger")
			},
			wantErr: ErrNotFound,
		},
		{
			name: caseInsufficientFund,
			configure: func(test *testing.T, store *stubStore, request *CreateBookingRequest) {
				request.Stay = mustStay(test, "2024-01-10", "2024-01-14")
			},
			wantErr: ErrInsufficientFunds,
		},
		{
			name: caseInactiveRoom,
			configure: func(test *testing.T, store *stubStore, request *CreateBookingRequest) {
				room := store.rooms[request.RoomID]
				room.Active = false
				store.rooms[request.RoomID] = room
			},
			wantErr: ErrRoomNotAvailable,
		},
		{
			name: caseCurrencyMismatch,
			configure: func(test *testing.T, store *stubStore, request *CreateBookingRequest) {
				room := store.rooms[request.RoomID]
				room.Currency = CurrencyEUR
				store.rooms[request.RoomID] = room
			},
			wantErr: ErrInvalidCurrency,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		test.Run(testCase.name, func(test *testing.T) {
			test.Parallel()
			store := newStubStore(test)
			userID := store.seedAccount(test, guestUserValue, 250)
			roomID := store.seedRoom(test, roomIDValue, roomNumberValue, 100)
			service := mustNewService(test, store)
			request := CreateBookingRequest{
				UserID: userID,
				RoomID: roomID,
				Stay:   mustStay(test, "2024-01-10", "2024-01-12"),
				Guests: 1,
			}
			testCase.configure(test, store, &request)

			_, err := service.CreateBooking(context.Background(), request)
			if !errors.Is(err, testCase.wantErr) {
				test.Fatalf(errorMismatchMessage, testCase.wantErr, err)
			}
			if len(store.bookings) != 0 || len(store.transactions) != 0 {
				test.Fatalf("expected no writes, got %d bookings and %d transactions", len(store.bookings), len(store.transactions))
			}
			if balance := store.balanceOf(test, userID); !balance.Equal(decimal.NewFromInt(250)) {
				test.Fatalf("expected untouched balance, got %s", balance)
			}
		})
	}
}

func TestCancelBookingRefundsFullPrice(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	userID := store.seedAccount(test, guestUserValue, 250)
	roomID := store.seedRoom(test, roomIDValue, roomNumberValue, 100)
	service := mustNewService(test, store)
	created := mustCreateBooking(test, service, userID, roomID, mustStay(test, "2024-01-10", "2024-01-12"))

	detail, err := service.CancelBooking(context.Background(), created.Booking.ID, userID, cancelReasonValue)
	if err != nil {
		test.Fatalf("cancel booking: %v", err)
	}
	if detail.Booking.Status != BookingStatusCancelled || detail.Booking.CancelledAt == nil {
		test.Fatalf("expected cancelled booking with timestamp, got %+v", detail.Booking)
	}
	if detail.Booking.CancellationReason != cancelReasonValue {
		test.Fatalf("expected reason %q, got %q", cancelReasonValue, detail.Booking.CancellationReason)
	}
	if balance := store.balanceOf(test, userID); !balance.Equal(decimal.NewFromInt(250)) {
		test.Fatalf("expected balance restored to 250, got %s", balance)
	}
	refund := store.transactions[len(store.transactions)-1]
	if refund.Type != TransactionRefund || refund.Status != TransactionCompleted || !refund.Amount.Equal(decimal.NewFromInt(200)) {
		test.Fatalf("unexpected refund %+v", refund)
	}
	if len(detail.History) != 2 || detail.History[1].OldStatus != BookingStatusPending || detail.History[1].NewStatus != BookingStatusCancelled {
		test.Fatalf("unexpected history %+v", detail.History)
	}
	if store.bookings[created.Booking.ID].Status != BookingStatusCancelled {
		test.Fatalf("expected stored booking to be cancelled")
	}
}

func TestCancelBookingTwiceFailsWithoutSecondRefund(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	userID := store.seedAccount(test, guestUserValue, 250)
	roomID := store.seedRoom(test, roomIDValue, roomNumberValue, 100)
	service := mustNewService(test, store)
	created := mustCreateBooking(test, service, userID, roomID, mustStay(test, "2024-01-10", "2024-01-12"))
	if _, err := service.CancelBooking(context.Background(), created.Booking.ID, userID, ""); err != nil {
		test.Fatalf("first cancel: %v", err)
	}

	_, err := service.CancelBooking(context.Background(), created.Booking.ID, userID, "")
	if !errors.Is(err, ErrAlreadyCancelled) {
		test.Fatalf("expected ErrAlreadyCancelled, got %v", err)
	}
	if balance := store.balanceOf(test, userID); !balance.Equal(decimal.NewFromInt(250)) {
		test.Fatalf("expected balance 250, got %s", balance)
	}
	if len(store.transactions) != 2 {
		test.Fatalf("expected payment and one refund, got %d transactions", len(store.transactions))
	}
}

func TestCancelBookingRejectsOtherUsers(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	userID := store.seedAccount(test, guestUserValue, 250)
	otherID := store.seedAccount(test, otherUserValue, 250)
	roomID := store.seedRoom(test, roomIDValue, roomNumberValue, 100)
	service := mustNewService(test, store)
	created := mustCreateBooking(test, service, userID, roomID, mustStay(test, "2024-01-10", "2024-01-12"))

	_, err := service.CancelBooking(context.Background(), created.Booking.ID, otherID, "")
	if !errors.Is(err, ErrForbidden) {
		test.Fatalf("expected ErrForbidden, got %v", err)
	}
	if store.bookings[created.Booking.ID].Status != BookingStatusPending {
		test.Fatalf("expected booking to stay pending")
	}
}

func TestCancelBookingUnknownBooking(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	userID := store.seedAccount(test, guestUserValue, 250)
	service := mustNewService(test, store)
	bookingID, err := NewBookingID("booking-missing")
	if err != nil {
		test.Fatalf("booking id: %v", err)
	}

	_, err = service.CancelBooking(context.Background(), bookingID, userID, "")
	if !errors.Is(err, ErrNotFound) {
		test.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCancelBookingRejectsStaysInProgressAndCompleted(test *testing.T) {
	test.Parallel()
	for _, status := range []BookingStatus{BookingStatusCheckedIn, BookingStatusCompleted} {
		status := status
		test.Run(status.String(), func(test *testing.T) {
			test.Parallel()
			store := newStubStore(test)
			userID := store.seedAccount(test, guestUserValue, 250)
			roomID := store.seedRoom(test, roomIDValue, roomNumberValue, 100)
			service := mustNewService(test, store)
			created := mustCreateBooking(test, service, userID, roomID, mustStay(test, "2024-01-10", "2024-01-12"))
			booking := store.bookings[created.Booking.ID]
			booking.Status = status
			store.bookings[created.Booking.ID] = booking

			_, err := service.CancelBooking(context.Background(), created.Booking.ID, userID, "")
			if !errors.Is(err, ErrIllegalTransition) {
				test.Fatalf("expected ErrIllegalTransition, got %v", err)
			}
			if balance := store.balanceOf(test, userID); !balance.Equal(decimal.NewFromInt(50)) {
				test.Fatalf("expected no refund, got balance %s", balance)
			}
		})
	}
}

func TestUpdateBookingStatusWalksLifecycleWithoutRefund(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	userID := store.seedAccount(test, guestUserValue, 250)
	adminID := mustUserID(test, adminUserValue)
	roomID := store.seedRoom(test, roomIDValue, roomNumberValue, 100)
	service := mustNewService(test, store)
	created := mustCreateBooking(test, service, userID, roomID, mustStay(test, "2024-01-10", "2024-01-12"))

	for _, next := range []BookingStatus{BookingStatusConfirmed, BookingStatusCheckedIn, BookingStatusCompleted} {
		detail, err := service.UpdateBookingStatus(context.Background(), created.Booking.ID, next, adminID, "")
		if err != nil {
			test.Fatalf("update to %s: %v", next, err)
		}
		if detail.Booking.Status != next {
			test.Fatalf("expected %s, got %s", next, detail.Booking.Status)
		}
	}
	if balance := store.balanceOf(test, userID); !balance.Equal(decimal.NewFromInt(50)) {
		test.Fatalf("expected balance 50, got %s", balance)
	}
	if len(store.transactions) != 1 {
		test.Fatalf("expected only the payment, got %d transactions", len(store.transactions))
	}
	if len(store.history) != 4 {
		test.Fatalf("expected creation plus three transitions in history, got %d", len(store.history))
	}
	if store.history[3].ChangedBy != adminID {
		test.Fatalf("expected admin as actor, got %s", store.history[3].ChangedBy)
	}

	_, err := service.UpdateBookingStatus(context.Background(), created.Booking.ID, BookingStatusCancelled, adminID, "")
	if !errors.Is(err, ErrIllegalTransition) {
		test.Fatalf("expected ErrIllegalTransition from terminal state, got %v", err)
	}
}

func TestUpdateBookingStatusToCancelledRefundsOwner(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	userID := store.seedAccount(test, guestUserValue, 250)
	adminID := mustUserID(test, adminUserValue)
	roomID := store.seedRoom(test, roomIDValue, roomNumberValue, 100)
	service := mustNewService(test, store)
	created := mustCreateBooking(test, service, userID, roomID, mustStay(test, "2024-01-10", "2024-01-12"))
	if _, err := service.UpdateBookingStatus(context.Background(), created.Booking.ID, BookingStatusConfirmed, adminID, ""); err != nil {
		test.Fatalf("confirm: %v", err)
	}

	detail, err := service.UpdateBookingStatus(context.Background(), created.Booking.ID, BookingStatusCancelled, adminID, "overbooked")
	if err != nil {
		test.Fatalf("cancel: %v", err)
	}
	if detail.Booking.Status != BookingStatusCancelled {
		test.Fatalf("expected cancelled, got %s", detail.Booking.Status)
	}
	if balance := store.balanceOf(test, userID); !balance.Equal(decimal.NewFromInt(250)) {
		test.Fatalf("expected refund to the owner, got balance %s", balance)
	}

	_, err = service.UpdateBookingStatus(context.Background(), created.Booking.ID, BookingStatusCancelled, adminID, "")
	if !errors.Is(err, ErrAlreadyCancelled) {
		test.Fatalf("expected ErrAlreadyCancelled, got %v", err)
	}
}

func TestUpdateBookingStatusRejectsSkippedStates(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	userID := store.seedAccount(test, guestUserValue, 250)
	roomID := store.seedRoom(test, roomIDValue, roomNumberValue, 100)
	service := mustNewService(test, store)
	created := mustCreateBooking(test, service, userID, roomID, mustStay(test, "2024-01-10", "2024-01-12"))

	_, err := service.UpdateBookingStatus(context.Background(), created.Booking.ID, BookingStatusCompleted, mustUserID(test, adminUserValue), "")
	if !errors.Is(err, ErrIllegalTransition) {
		test.Fatalf("expected ErrIllegalTransition, got %v", err)
	}
	_, err = service.UpdateBookingStatus(context.Background(), created.Booking.ID, BookingStatus("ARCHIVED"), mustUserID(test, adminUserValue), "")
	if !errors.Is(err, ErrInvalidBookingStatus) {
		test.Fatalf("expected ErrInvalidBookingStatus, got %v", err)
	}
}

func TestCompleteForReviewPromotesFinishedStays(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	userID := store.seedAccount(test, guestUserValue, 250)
	roomID := store.seedRoom(test, roomIDValue, roomNumberValue, 100)
	service := mustNewService(test, store)
	finished := seedBooking(test, store, userID, roomID, mustStay(test, "2024-01-01", "2024-01-03"), BookingStatusConfirmed)
	upcoming := seedBooking(test, store, userID, roomID, mustStay(test, "2024-01-10", "2024-01-12"), BookingStatusConfirmed)
	cancelled := seedBooking(test, store, userID, roomID, mustStay(test, "2023-12-01", "2023-12-03"), BookingStatusCancelled)

	detail, err := service.CompleteForReview(context.Background(), finished, userID)
	if err != nil {
		test.Fatalf("complete: %v", err)
	}
	if detail.Booking.Status != BookingStatusCompleted {
		test.Fatalf("expected completed, got %s", detail.Booking.Status)
	}
	if len(detail.History) != 1 || detail.History[0].Reason != reasonStayEnded {
		test.Fatalf("unexpected history %+v", detail.History)
	}
	if _, err := service.CompleteForReview(context.Background(), finished, userID); err != nil {
		test.Fatalf("expected completed booking to pass through, got %v", err)
	}
	if _, err := service.CompleteForReview(context.Background(), upcoming, userID); !errors.Is(err, ErrIllegalTransition) {
		test.Fatalf("expected ErrIllegalTransition for a future stay, got %v", err)
	}
	if _, err := service.CompleteForReview(context.Background(), cancelled, userID); !errors.Is(err, ErrIllegalTransition) {
		test.Fatalf("expected ErrIllegalTransition for a cancelled stay, got %v", err)
	}
	if _, err := service.CompleteForReview(context.Background(), finished, mustUserID(test, otherUserValue)); !errors.Is(err, ErrForbidden) {
		test.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestGetBookingChecksOwnership(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	userID := store.seedAccount(test, guestUserValue, 250)
	roomID := store.seedRoom(test, roomIDValue, roomNumberValue, 100)
	service := mustNewService(test, store)
	created := mustCreateBooking(test, service, userID, roomID, mustStay(test, "2024-01-10", "2024-01-12"))

	detail, err := service.GetBooking(context.Background(), created.Booking.ID, userID)
	if err != nil {
		test.Fatalf("get booking: %v", err)
	}
	if detail.Room.Number != roomNumberValue {
		test.Fatalf("expected room %s, got %s", roomNumberValue, detail.Room.Number)
	}
	if _, err := service.GetBooking(context.Background(), created.Booking.ID, mustUserID(test, otherUserValue)); !errors.Is(err, ErrForbidden) {
		test.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestListAvailableRoomsSkipsBookedRooms(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	userID := store.seedAccount(test, guestUserValue, 1000)
	bookedRoom := store.seedRoom(test, "room-a", "102", 100)
	store.seedRoom(test, "room-b", "101", 120)
	store.seedRoom(test, "room-c", "103", 90)
	suiteID := mustRoomID(test, "room-d")
	store.rooms[suiteID] = Room{ID: suiteID, Number: "201", Type: RoomTypeSuite, Capacity: 4, BasePrice: decimal.NewFromInt(300), Currency: CurrencyUSD, Active: true}
	service := mustNewService(test, store)
	mustCreateBooking(test, service, userID, bookedRoom, mustStay(test, "2024-01-10", "2024-01-12"))

	rooms, err := service.ListAvailableRooms(context.Background(), RoomQuery{Stay: mustStay(test, "2024-01-11", "2024-01-15")})
	if err != nil {
		test.Fatalf("list rooms: %v", err)
	}
	numbers := make([]string, 0, len(rooms))
	for _, room := range rooms {
		numbers = append(numbers, room.Number)
	}
	if len(numbers) != 3 || numbers[0] != "101" || numbers[1] != "103" || numbers[2] != "201" {
		test.Fatalf("unexpected rooms %v", numbers)
	}

	suites, err := service.ListAvailableRooms(context.Background(), RoomQuery{Type: RoomTypeSuite, MinCapacity: 3})
	if err != nil {
		test.Fatalf("list suites: %v", err)
	}
	if len(suites) != 1 || suites[0].ID != suiteID {
		test.Fatalf("expected only the suite, got %+v", suites)
	}

	if _, err := service.ListAvailableRooms(context.Background(), RoomQuery{Type: RoomType("CASTLE")}); !errors.Is(err, ErrInvalidRoomType) {
		test.Fatalf("expected ErrInvalidRoomType, got %v", err)
	}
}

func TestCountConflictsExcludesBooking(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	userID := store.seedAccount(test, guestUserValue, 250)
	roomID := store.seedRoom(test, roomIDValue, roomNumberValue, 100)
	service := mustNewService(test, store)
	created := mustCreateBooking(test, service, userID, roomID, mustStay(test, "2024-01-10", "2024-01-12"))
	stay := mustStay(test, "2024-01-11", "2024-01-12")

	conflicts, err := service.CountConflicts(context.Background(), roomID, stay, nil)
	if err != nil || conflicts != 1 {
		test.Fatalf("expected one conflict, got %d (%v)", conflicts, err)
	}
	excluded := created.Booking.ID
	conflicts, err = service.CountConflicts(context.Background(), roomID, stay, &excluded)
	if err != nil || conflicts != 0 {
		test.Fatalf("expected no conflicts when excluded, got %d (%v)", conflicts, err)
	}
	if _, err := service.CountConflicts(context.Background(), roomID, DateRange{}, nil); !errors.Is(err, ErrInvalidRange) {
		test.Fatalf("expected ErrInvalidRange, got %v", err)
	}

	available, err := service.IsAvailable(context.Background(), roomID, stay)
	if err != nil || available {
		test.Fatalf("expected overlapping stay to be unavailable, got %t (%v)", available, err)
	}
	available, err = service.IsAvailable(context.Background(), roomID, mustStay(test, "2024-01-12", "2024-01-14"))
	if err != nil || !available {
		test.Fatalf("expected back-to-back stay to be available, got %t (%v)", available, err)
	}
}

func seedBooking(test *testing.T, store *stubStore, userID UserID, roomID RoomID, stay DateRange, status BookingStatus) BookingID {
	test.Helper()
	bookingID, err := NewBookingID(store.nextID("seeded"))
	if err != nil {
		test.Fatalf("booking id: %v", err)
	}
	store.bookings[bookingID] = Booking{
		ID:            bookingID,
		UserID:        userID,
		RoomID:        roomID,
		Stay:          stay,
		Guests:        1,
		PricePerNight: decimal.NewFromInt(100),
		TotalPrice:    decimal.NewFromInt(int64(100 * stay.Nights())),
		Currency:      CurrencyUSD,
		Status:        status,
	}
	return bookingID
}
