package hotel

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// stubStore keeps every table in maps. WithTx runs fn directly without rollback.
type stubStore struct {
	accounts     map[UserID]Account
	rooms        map[RoomID]Room
	bookings     map[BookingID]Booking
	history      []BookingHistory
	transactions []Transaction
	sequence     int

	getAccountError        error
	lockAccountError       error
	updateBalanceError     error
	getRoomError           error
	lockRoomError          error
	countConflictsError    error
	insertBookingError     error
	getBookingError        error
	updateStatusError      error
	insertHistoryError     error
	insertTransactionError error
	listTransactionsError  error
	txCount                int
}

func newStubStore(test *testing.T) *stubStore {
	test.Helper()
	return &stubStore{
		accounts: make(map[UserID]Account),
		rooms:    make(map[RoomID]Room),
		bookings: make(map[BookingID]Booking),
	}
}

func (store *stubStore) nextID(prefix string) string {
	store.sequence++
	return fmt.Sprintf("%s-%d", prefix, store.sequence)
}

func (store *stubStore) WithTx(ctx context.Context, fn func(ctx context.Context, txStore Store) error) error {
	store.txCount++
	return fn(ctx, store)
}

func (store *stubStore) GetOrCreateAccount(ctx context.Context, userID UserID, currency Currency) (Account, error) {
	if store.getAccountError != nil {
		return Account{}, store.getAccountError
	}
	account, ok := store.accounts[userID]
	if !ok {
		account = Account{UserID: userID, Balance: decimal.Zero, Currency: currency}
		store.accounts[userID] = account
	}
	return account, nil
}

func (store *stubStore) GetAccount(ctx context.Context, userID UserID) (Account, error) {
	if store.getAccountError != nil {
		return Account{}, store.getAccountError
	}
	account, ok := store.accounts[userID]
	if !ok {
		return Account{}, ErrUnknownAccount
	}
	return account, nil
}

func (store *stubStore) LockAccount(ctx context.Context, userID UserID) (Account, error) {
	if store.lockAccountError != nil {
		return Account{}, store.lockAccountError
	}
	return store.GetAccount(ctx, userID)
}

func (store *stubStore) UpdateAccountBalance(ctx context.Context, userID UserID, balance decimal.Decimal, updatedAt time.Time) error {
	if store.updateBalanceError != nil {
		return store.updateBalanceError
	}
	account, ok := store.accounts[userID]
	if !ok {
		return ErrUnknownAccount
	}
	account.Balance = balance
	account.UpdatedAt = updatedAt
	store.accounts[userID] = account
	return nil
}

func (store *stubStore) GetRoom(ctx context.Context, roomID RoomID) (Room, error) {
	if store.getRoomError != nil {
		return Room{}, store.getRoomError
	}
	room, ok := store.rooms[roomID]
	if !ok {
		return Room{}, ErrUnknownRoom
	}
	return room, nil
}

func (store *stubStore) LockRoom(ctx context.Context, roomID RoomID) (Room, error) {
	if store.lockRoomError != nil {
		return Room{}, store.lockRoomError
	}
	return store.GetRoom(ctx, roomID)
}

func (store *stubStore) ListAvailableRooms(ctx context.Context, query RoomQuery) ([]Room, error) {
	rooms := make([]Room, 0, len(store.rooms))
	for _, room := range store.rooms {
		if !room.Active || room.Capacity < query.MinCapacity {
			continue
		}
		if query.Type != "" && room.Type != query.Type {
			continue
		}
		if !query.Stay.IsZero() {
			conflicts, _ := store.CountConflicts(ctx, ConflictQuery{RoomID: room.ID, Stay: query.Stay})
			if conflicts > 0 {
				continue
			}
		}
		rooms = append(rooms, room)
	}
	sort.Slice(rooms, func(left, right int) bool { return rooms[left].Number < rooms[right].Number })
	return rooms, nil
}

func (store *stubStore) CountConflicts(ctx context.Context, query ConflictQuery) (int64, error) {
	if store.countConflictsError != nil {
		return 0, store.countConflictsError
	}
	var conflicts int64
	for _, booking := range store.bookings {
		if booking.RoomID != query.RoomID || !booking.Status.IsBlocking() {
			continue
		}
		if query.Exclude != nil && booking.ID == *query.Exclude {
			continue
		}
		if booking.Stay.Overlaps(query.Stay) {
			conflicts++
		}
	}
	return conflicts, nil
}

func (store *stubStore) InsertBooking(ctx context.Context, input BookingInput) (Booking, error) {
	if store.insertBookingError != nil {
		return Booking{}, store.insertBookingError
	}
	bookingID, err := NewBookingID(store.nextID("booking"))
	if err != nil {
		return Booking{}, err
	}
	booking := Booking{
		ID:              bookingID,
		UserID:          input.UserID,
		RoomID:          input.RoomID,
		Stay:            input.Stay,
		Guests:          input.Guests,
		PricePerNight:   input.PricePerNight,
		TotalPrice:      input.TotalPrice,
		Currency:        input.Currency,
		Status:          BookingStatusPending,
		SpecialRequests: input.SpecialRequests,
		CreatedAt:       input.CreatedAt,
		UpdatedAt:       input.CreatedAt,
	}
	store.bookings[bookingID] = booking
	return booking, nil
}

func (store *stubStore) GetBooking(ctx context.Context, bookingID BookingID) (Booking, error) {
	if store.getBookingError != nil {
		return Booking{}, store.getBookingError
	}
	booking, ok := store.bookings[bookingID]
	if !ok {
		return Booking{}, ErrUnknownBooking
	}
	return booking, nil
}

func (store *stubStore) LockBooking(ctx context.Context, bookingID BookingID) (Booking, error) {
	return store.GetBooking(ctx, bookingID)
}

func (store *stubStore) UpdateBookingStatus(ctx context.Context, change BookingStatusChange) error {
	if store.updateStatusError != nil {
		return store.updateStatusError
	}
	booking, ok := store.bookings[change.BookingID]
	if !ok {
		return ErrUnknownBooking
	}
	if booking.Status != change.From {
		return ErrStatusChanged
	}
	booking.Status = change.To
	booking.UpdatedAt = change.ChangedAt
	if change.CancelledAt != nil {
		booking.CancelledAt = change.CancelledAt
		booking.CancellationReason = change.CancellationReason
	}
	store.bookings[change.BookingID] = booking
	return nil
}

func (store *stubStore) ListBookings(ctx context.Context, userID UserID, page Page) ([]Booking, error) {
	bookings := make([]Booking, 0)
	for _, booking := range store.bookings {
		if booking.UserID == userID {
			bookings = append(bookings, booking)
		}
	}
	return bookings, nil
}

func (store *stubStore) InsertBookingHistory(ctx context.Context, input BookingHistoryInput) (BookingHistory, error) {
	if store.insertHistoryError != nil {
		return BookingHistory{}, store.insertHistoryError
	}
	entry := BookingHistory{
		ID:        store.nextID("history"),
		BookingID: input.BookingID,
		OldStatus: input.OldStatus,
		NewStatus: input.NewStatus,
		ChangedBy: input.ChangedBy,
		Reason:    input.Reason,
		ChangedAt: input.ChangedAt,
	}
	store.history = append(store.history, entry)
	return entry, nil
}

func (store *stubStore) ListBookingHistory(ctx context.Context, bookingID BookingID) ([]BookingHistory, error) {
	entries := make([]BookingHistory, 0)
	for _, entry := range store.history {
		if entry.BookingID == bookingID {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func (store *stubStore) InsertTransaction(ctx context.Context, input TransactionInput) (Transaction, error) {
	if store.insertTransactionError != nil {
		return Transaction{}, store.insertTransactionError
	}
	transactionID, err := NewTransactionID(store.nextID("transaction"))
	if err != nil {
		return Transaction{}, err
	}
	transaction := Transaction{
		ID:            transactionID,
		UserID:        input.UserID,
		Type:          input.Type,
		Amount:        input.Amount.Decimal(),
		Currency:      input.Currency,
		Status:        input.Status,
		BookingID:     input.BookingID,
		Description:   input.Description,
		PaymentMethod: input.PaymentMethod,
		ExternalID:    input.ExternalID,
		MetadataJSON:  input.MetadataJSON,
		CreatedAt:     input.CreatedAt,
		CompletedAt:   input.CompletedAt,
	}
	store.transactions = append(store.transactions, transaction)
	return transaction, nil
}

func (store *stubStore) GetTransaction(ctx context.Context, transactionID TransactionID) (Transaction, error) {
	for _, transaction := range store.transactions {
		if transaction.ID == transactionID {
			return transaction, nil
		}
	}
	return Transaction{}, ErrUnknownTransaction
}

func (store *stubStore) ListTransactions(ctx context.Context, userID UserID, page Page) ([]Transaction, error) {
	if store.listTransactionsError != nil {
		return nil, store.listTransactionsError
	}
	transactions := make([]Transaction, 0)
	for index := len(store.transactions) - 1; index >= 0; index-- {
		if store.transactions[index].UserID == userID {
			transactions = append(transactions, store.transactions[index])
		}
	}
	start := page.Offset()
	if start > len(transactions) {
		start = len(transactions)
	}
	end := start + page.Limit()
	if end > len(transactions) {
		end = len(transactions)
	}
	return transactions[start:end], nil
}

func (store *stubStore) seedAccount(test *testing.T, rawUserID string, balance int64) UserID {
	test.Helper()
	userID := mustUserID(test, rawUserID)
	store.accounts[userID] = Account{UserID: userID, Balance: decimal.NewFromInt(balance), Currency: CurrencyUSD}
	return userID
}

func (store *stubStore) seedRoom(test *testing.T, rawRoomID string, number string, basePrice int64) RoomID {
	test.Helper()
	roomID := mustRoomID(test, rawRoomID)
	store.rooms[roomID] = Room{
		ID:        roomID,
		Number:    number,
		Type:      RoomTypeStandard,
		Capacity:  2,
		BasePrice: decimal.NewFromInt(basePrice),
		Currency:  CurrencyUSD,
		Active:    true,
	}
	return roomID
}

func (store *stubStore) balanceOf(test *testing.T, userID UserID) decimal.Decimal {
	test.Helper()
	account, ok := store.accounts[userID]
	if !ok {
		test.Fatalf("account %s not found", userID)
	}
	return account.Balance
}

func fixedClock(year int, month time.Month, day int) func() time.Time {
	return func() time.Time {
		return time.Date(year, month, day, 9, 30, 0, 0, time.UTC)
	}
}

func mustNewService(test *testing.T, store Store, options ...ServiceOption) *Service {
	test.Helper()
	service, err := NewService(store, fixedClock(2024, time.January, 5), options...)
	if err != nil {
		test.Fatalf("new service: %v", err)
	}
	return service
}

func mustUserID(test *testing.T, raw string) UserID {
	test.Helper()
	value, err := NewUserID(raw)
	if err != nil {
		test.Fatalf("user id: %v", err)
	}
	return value
}

func mustRoomID(test *testing.T, raw string) RoomID {
	test.Helper()
	value, err := NewRoomID(raw)
	if err != nil {
		test.Fatalf("room id: %v", err)
	}
	return value
}

func mustStay(test *testing.T, checkIn string, checkOut string) DateRange {
	test.Helper()
	stay, err := ParseDateRange(checkIn, checkOut)
	if err != nil {
		test.Fatalf("stay: %v", err)
	}
	return stay
}

func mustAmount(test *testing.T, raw string) PositiveAmount {
	test.Helper()
	value, err := ParsePositiveAmount(raw)
	if err != nil {
		test.Fatalf("amount: %v", err)
	}
	return value
}

func mustPage(test *testing.T, number int, size int) Page {
	test.Helper()
	page, err := NewPage(number, size)
	if err != nil {
		test.Fatalf("page: %v", err)
	}
	return page
}

func mustCreateBooking(test *testing.T, service *Service, userID UserID, roomID RoomID, stay DateRange) BookingDetail {
	test.Helper()
	detail, err := service.CreateBooking(context.Background(), CreateBookingRequest{UserID: userID, RoomID: roomID, Stay: stay, Guests: 1})
	if err != nil {
		test.Fatalf("create booking: %v", err)
	}
	return detail
}
