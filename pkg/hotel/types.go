package hotel

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Room is the catalog view the core needs.
type Room struct {
	ID        RoomID
	Number    string
	Type      RoomType
	Capacity  int
	BasePrice decimal.Decimal
	Currency  Currency
	Active    bool
}

// Account holds a user's balance.
type Account struct {
	UserID    UserID
	Balance   decimal.Decimal
	Currency  Currency
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Booking represents a stored booking record.
type Booking struct {
	ID                 BookingID
	UserID             UserID
	RoomID             RoomID
	Stay               DateRange
	Guests             int
	PricePerNight      decimal.Decimal
	TotalPrice         decimal.Decimal
	Currency           Currency
	Status             BookingStatus
	SpecialRequests    string
	CreatedAt          time.Time
	UpdatedAt          time.Time
	CancelledAt        *time.Time
	CancellationReason string
}

// BookingHistory is an immutable audit line for one status change.
type BookingHistory struct {
	ID        string
	BookingID BookingID
	OldStatus BookingStatus
	NewStatus BookingStatus
	ChangedBy UserID
	Reason    string
	ChangedAt time.Time
}

// BookingDetail is the full view returned by lifecycle operations.
type BookingDetail struct {
	Booking Booking
	Room    Room
	History []BookingHistory
}

// Nights returns the number of booked nights.
func (detail BookingDetail) Nights() int {
	return detail.Booking.Stay.Nights()
}

// Transaction is a single balance-affecting event.
type Transaction struct {
	ID            TransactionID
	UserID        UserID
	Type          TransactionType
	Amount        decimal.Decimal
	Currency      Currency
	Status        TransactionStatus
	BookingID     *BookingID
	Description   string
	PaymentMethod string
	ExternalID    string
	MetadataJSON  string
	CreatedAt     time.Time
	CompletedAt   *time.Time
}

// SignedAmount applies the type's sign to the amount.
func (transaction Transaction) SignedAmount() decimal.Decimal {
	return transaction.Amount.Mul(decimal.NewFromInt(int64(transaction.Type.Sign())))
}

// Balance view for an account.
type Balance struct {
	Amount   decimal.Decimal
	Currency Currency
}

// RoomQuery filters availability listings. A zero Stay lists every active room.
type RoomQuery struct {
	Stay        DateRange
	Type        RoomType
	MinCapacity int
}

// ConflictQuery selects blocking bookings overlapping Stay on RoomID.
type ConflictQuery struct {
	RoomID  RoomID
	Stay    DateRange
	Exclude *BookingID
}

// BookingInput carries a new booking to the store.
type BookingInput struct {
	UserID          UserID
	RoomID          RoomID
	Stay            DateRange
	Guests          int
	PricePerNight   decimal.Decimal
	TotalPrice      decimal.Decimal
	Currency        Currency
	SpecialRequests string
	CreatedAt       time.Time
}

// BookingStatusChange is a compare-and-set status update.
type BookingStatusChange struct {
	BookingID          BookingID
	From               BookingStatus
	To                 BookingStatus
	ChangedAt          time.Time
	CancelledAt        *time.Time
	CancellationReason string
}

// BookingHistoryInput carries a new audit line to the store.
type BookingHistoryInput struct {
	BookingID BookingID
	OldStatus BookingStatus
	NewStatus BookingStatus
	ChangedBy UserID
	Reason    string
	ChangedAt time.Time
}

// TransactionInput carries a new transaction to the store.
type TransactionInput struct {
	UserID        UserID
	Type          TransactionType
	Amount        PositiveAmount
	Currency      Currency
	Status        TransactionStatus
	BookingID     *BookingID
	Description   string
	PaymentMethod string
	ExternalID    string
	MetadataJSON  string
	CreatedAt     time.Time
	CompletedAt   *time.Time
}

// Store is the persistence contract used by Service.
// Lock* reads take a row lock that lasts until the surrounding WithTx commits.
type Store interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, txStore Store) error) error
	GetOrCreateAccount(ctx context.Context, userID UserID, currency Currency) (Account, error)
	GetAccount(ctx context.Context, userID UserID) (Account, error)
	LockAccount(ctx context.Context, userID UserID) (Account, error)
	UpdateAccountBalance(ctx context.Context, userID UserID, balance decimal.Decimal, updatedAt time.Time) error
	GetRoom(ctx context.Context, roomID RoomID) (Room, error)
	LockRoom(ctx context.Context, roomID RoomID) (Room, error)
	ListAvailableRooms(ctx context.Context, query RoomQuery) ([]Room, error)
	CountConflicts(ctx context.Context, query ConflictQuery) (int64, error)
	InsertBooking(ctx context.Context, input BookingInput) (Booking, error)
	GetBooking(ctx context.Context, bookingID BookingID) (Booking, error)
	LockBooking(ctx context.Context, bookingID BookingID) (Booking, error)
	UpdateBookingStatus(ctx context.Context, change BookingStatusChange) error
	ListBookings(ctx context.Context, userID UserID, page Page) ([]Booking, error)
	InsertBookingHistory(ctx context.Context, input BookingHistoryInput) (BookingHistory, error)
	ListBookingHistory(ctx context.Context, bookingID BookingID) ([]BookingHistory, error)
	InsertTransaction(ctx context.Context, input TransactionInput) (Transaction, error)
	GetTransaction(ctx context.Context, transactionID TransactionID) (Transaction, error)
	ListTransactions(ctx context.Context, userID UserID, page Page) ([]Transaction, error)
}
