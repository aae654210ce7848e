package hotel

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

const (
	errStoreMessage          = "store error"
	caseAccountLookupError   = "account lookup error"
	caseRoomLookupError      = "room lookup error"
	caseLockRoomError        = "lock room error"
	caseCountConflictsError  = "count conflicts error"
	caseLockAccountError     = "lock account error"
	caseInsertBookingError   = "insert booking error"
	caseInsertTransactionErr = "insert transaction error"
	caseUpdateBalanceError   = "update balance error"
	caseInsertHistoryError   = "insert history error"
	caseBookingLookupError   = "booking lookup error"
	caseUpdateStatusError    = "update status error"
	caseStatusRaced          = "status changed concurrently"
	caseListTransactionsErr  = "list transactions error"
	caseNilStore             = "nil store"
	caseNilClock             = "nil clock"
	caseZeroLimits           = "zero limits"
	caseBadCurrency          = "unsupported default currency"
	errorMismatchMessage     = "expected %v, got %v"
)

var errStoreFailure = errors.New(errStoreMessage)

func TestCreateBookingReturnsStoreErrors(test *testing.T) {
	test.Parallel()
	testCases := []struct {
		name      string
		configure func(test *testing.T, store *stubStore)
		wantErr   error
	}{
		{name: caseAccountLookupError, configure: func(test *testing.T, store *stubStore) { store.getAccountError = errStoreFailure }, wantErr: errStoreFailure},
		{name: caseRoomLookupError, configure: func(test *testing.T, store *stubStore) { store.getRoomError = errStoreFailure }, wantErr: errStoreFailure},
		{name: caseLockRoomError, configure: func(test *testing.T, store *stubStore) { store.lockRoomError = errStoreFailure }, wantErr: errStoreFailure},
		{name: caseCountConflictsError, configure: func(test *testing.T, store *stubStore) { store.countConflictsError = errStoreFailure }, wantErr: errStoreFailure},
		{name: caseLockAccountError, configure: func(test *testing.T, store *stubStore) { store.lockAccountError = errStoreFailure }, wantErr: errStoreFailure},
		{name: caseInsertBookingError, configure: func(test *testing.T, store *stubStore) { store.insertBookingError = errStoreFailure }, wantErr: errStoreFailure},
		{name: caseInsertTransactionErr, configure: func(test *testing.T, store *stubStore) { store.insertTransactionError = errStoreFailure }, wantErr: errStoreFailure},
		{name: caseUpdateBalanceError, configure: func(test *testing.T, store *stubStore) { store.updateBalanceError = errStoreFailure }, wantErr: errStoreFailure},
		{name: caseInsertHistoryError, configure: func(test *testing.T, store *stubStore) { store.insertHistoryError = errStoreFailure }, wantErr: errStoreFailure},
	}

	for _, testCase := range testCases {
		testCase := testCase
		test.Run(testCase.name, func(test *testing.T) {
			test.Parallel()
			store := newStubStore(test)
			userID := store.seedAccount(test, guestUserValue, 250)
			roomID := store.seedRoom(test, roomIDValue, roomNumberValue, 100)
			testCase.configure(test, store)
			logger := &recorderLogger{}
			service := mustNewService(test, store, WithOperationLogger(logger))

			_, err := service.CreateBooking(context.Background(), CreateBookingRequest{
				UserID: userID,
				RoomID: roomID,
				Stay:   mustStay(test, "2024-01-10", "2024-01-12"),
				Guests: 1,
			})
			if !errors.Is(err, testCase.wantErr) {
				test.Fatalf(errorMismatchMessage, testCase.wantErr, err)
			}
			if len(logger.entries) != 1 || logger.entries[0].Status != operationStatusError {
				test.Fatalf("expected one error log entry, got %+v", logger.entries)
			}
		})
	}
}

func TestCancelBookingReturnsStoreErrors(test *testing.T) {
	test.Parallel()
	testCases := []struct {
		name      string
		configure func(test *testing.T, store *stubStore, bookingID BookingID)
		wantErr   error
	}{
		{name: caseBookingLookupError, configure: func(test *testing.T, store *stubStore, bookingID BookingID) { store.getBookingError = errStoreFailure }, wantErr: errStoreFailure},
		{name: caseLockAccountError, configure: func(test *testing.T, store *stubStore, bookingID BookingID) { store.lockAccountError = errStoreFailure }, wantErr: errStoreFailure},
		{name: caseInsertTransactionErr, configure: func(test *testing.T, store *stubStore, bookingID BookingID) { store.insertTransactionError = errStoreFailure }, wantErr: errStoreFailure},
		{name: caseUpdateBalanceError, configure: func(test *testing.T, store *stubStore, bookingID BookingID) { store.updateBalanceError = errStoreFailure }, wantErr: errStoreFailure},
		{name: caseUpdateStatusError, configure: func(test *testing.T, store *stubStore, bookingID BookingID) { store.updateStatusError = errStoreFailure }, wantErr: errStoreFailure},
		{name: caseStatusRaced, configure: func(test *testing.T, store *stubStore, bookingID BookingID) { store.updateStatusError = ErrStatusChanged }, wantErr: ErrStatusChanged},
		{name: caseInsertHistoryError, configure: func(test *testing.T, store *stubStore, bookingID BookingID) { store.insertHistoryError = errStoreFailure }, wantErr: errStoreFailure},
	}

	for _, testCase := range testCases {
		testCase := testCase
		test.Run(testCase.name, func(test *testing.T) {
			test.Parallel()
			store := newStubStore(test)
			userID := store.seedAccount(test, guestUserValue, 250)
			roomID := store.seedRoom(test, roomIDValue, roomNumberValue, 100)
			service := mustNewService(test, store)
			created := mustCreateBooking(test, service, userID, roomID, mustStay(test, "2024-01-10", "2024-01-12"))
			testCase.configure(test, store, created.Booking.ID)

			_, err := service.CancelBooking(context.Background(), created.Booking.ID, userID, "")
			if !errors.Is(err, testCase.wantErr) {
				test.Fatalf(errorMismatchMessage, testCase.wantErr, err)
			}
		})
	}
}

func TestWalletOperationsReturnStoreErrors(test *testing.T) {
	test.Parallel()
	testCases := []struct {
		name      string
		configure func(test *testing.T, store *stubStore)
		run       func(service *Service, userID UserID) error
		wantErr   error
	}{
		{
			name:      caseLockAccountError,
			configure: func(test *testing.T, store *stubStore) { store.lockAccountError = errStoreFailure },
			run: func(service *Service, userID UserID) error {
				_, err := service.Deposit(context.Background(), DepositRequest{UserID: userID, Amount: PositiveAmount{value: decimal.NewFromInt(5)}})
				return err
			},
			wantErr: errStoreFailure,
		},
		{
			name:      caseInsertTransactionErr,
			configure: func(test *testing.T, store *stubStore) { store.insertTransactionError = errStoreFailure },
			run: func(service *Service, userID UserID) error {
				_, err := service.Withdraw(context.Background(), WithdrawRequest{UserID: userID, Amount: PositiveAmount{value: decimal.NewFromInt(50)}, WithdrawalMethod: withdrawMethodValue})
				return err
			},
			wantErr: errStoreFailure,
		},
		{
			name:      caseUpdateBalanceError,
			configure: func(test *testing.T, store *stubStore) { store.updateBalanceError = errStoreFailure },
			run: func(service *Service, userID UserID) error {
				_, err := service.Deposit(context.Background(), DepositRequest{UserID: userID, Amount: PositiveAmount{value: decimal.NewFromInt(5)}})
				return err
			},
			wantErr: errStoreFailure,
		},
		{
			name:      caseAccountLookupError,
			configure: func(test *testing.T, store *stubStore) { store.getAccountError = errStoreFailure },
			run: func(service *Service, userID UserID) error {
				_, err := service.Balance(context.Background(), userID)
				return err
			},
			wantErr: errStoreFailure,
		},
		{
			name:      caseListTransactionsErr,
			configure: func(test *testing.T, store *stubStore) { store.listTransactionsError = errStoreFailure },
			run: func(service *Service, userID UserID) error {
				_, err := service.TransactionHistory(context.Background(), userID, Page{})
				return err
			},
			wantErr: errStoreFailure,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		test.Run(testCase.name, func(test *testing.T) {
			test.Parallel()
			store := newStubStore(test)
			userID := store.seedAccount(test, walletUserValue, 100)
			testCase.configure(test, store)
			service := mustNewService(test, store)

			err := testCase.run(service, userID)
			if !errors.Is(err, testCase.wantErr) {
				test.Fatalf(errorMismatchMessage, testCase.wantErr, err)
			}
		})
	}
}

func TestNewServiceRejectsInvalidConfig(test *testing.T) {
	test.Parallel()
	clock := func() time.Time { return time.Time{} }
	testCases := []struct {
		name    string
		store   Store
		now     func() time.Time
		options []ServiceOption
	}{
		{name: caseNilStore, store: nil, now: clock},
		{name: caseNilClock, store: newStubStore(test), now: nil},
		{name: caseZeroLimits, store: newStubStore(test), now: clock, options: []ServiceOption{WithWalletLimits(WalletLimits{})}},
		{name: caseBadCurrency, store: newStubStore(test), now: clock, options: []ServiceOption{WithDefaultCurrency(Currency("XYZ"))}},
	}

	for _, testCase := range testCases {
		testCase := testCase
		test.Run(testCase.name, func(test *testing.T) {
			test.Parallel()
			_, err := NewService(testCase.store, testCase.now, testCase.options...)
			if !errors.Is(err, ErrInvalidServiceConfig) {
				test.Fatalf(errorMismatchMessage, ErrInvalidServiceConfig, err)
			}
		})
	}
}
