package gormstore

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Account represents the accounts table: one balance row per user.
type Account struct {
	UserID    string          `gorm:"type:varchar(64);primaryKey"`
	Balance   decimal.Decimal `gorm:"type:numeric(14,2);not null;check:chk_accounts_balance_non_negative,balance >= 0"`
	Currency  string          `gorm:"type:varchar(3);not null"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

func (Account) TableName() string { return "accounts" }

// Room mirrors the rooms catalog table.
type Room struct {
	RoomID    string          `gorm:"type:varchar(64);primaryKey"`
	Number    string          `gorm:"type:varchar(16);not null;uniqueIndex:uniq_rooms_number"`
	Type      string          `gorm:"type:varchar(16);not null;index:idx_rooms_type"`
	Capacity  int             `gorm:"not null"`
	BasePrice decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Currency  string          `gorm:"type:varchar(3);not null"`
	Active    bool            `gorm:"not null"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

func (Room) TableName() string { return "rooms" }

func (room *Room) BeforeCreate(tx *gorm.DB) error {
	if room.RoomID == "" {
		room.RoomID = uuid.NewString()
	}
	return nil
}

// Booking mirrors the bookings table. Rows are never deleted.
type Booking struct {
	BookingID          string          `gorm:"type:varchar(64);primaryKey"`
	UserID             string          `gorm:"type:varchar(64);not null;index:idx_bookings_user_created,priority:1"`
	RoomID             string          `gorm:"type:varchar(64);not null;index:idx_bookings_room_stay,priority:1"`
	CheckIn            time.Time       `gorm:"not null;index:idx_bookings_room_stay,priority:2"`
	CheckOut           time.Time       `gorm:"not null;index:idx_bookings_room_stay,priority:3"`
	Guests             int             `gorm:"not null"`
	PricePerNight      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	TotalPrice         decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Currency           string          `gorm:"type:varchar(3);not null"`
	Status             string          `gorm:"type:varchar(16);not null;index:idx_bookings_status"`
	SpecialRequests    string          `gorm:"type:text"`
	CreatedAt          time.Time       `gorm:"not null;index:idx_bookings_user_created,priority:2"`
	UpdatedAt          time.Time       `gorm:"not null"`
	CancelledAt        *time.Time
	CancellationReason string `gorm:"type:text"`
}

func (Booking) TableName() string { return "bookings" }

func (booking *Booking) BeforeCreate(tx *gorm.DB) error {
	if booking.BookingID == "" {
		booking.BookingID = uuid.NewString()
	}
	return nil
}

// BookingHistory is the append-only audit trail of status changes.
type BookingHistory struct {
	HistoryID uint64    `gorm:"primaryKey;autoIncrement"`
	BookingID string    `gorm:"type:varchar(64);not null;index:idx_booking_history_booking"`
	OldStatus string    `gorm:"type:varchar(16)"`
	NewStatus string    `gorm:"type:varchar(16);not null"`
	ChangedBy string    `gorm:"type:varchar(64);not null"`
	Reason    string    `gorm:"type:text"`
	ChangedAt time.Time `gorm:"not null"`
}

func (BookingHistory) TableName() string { return "booking_history" }

// Transaction mirrors the wallet transactions table.
type Transaction struct {
	TransactionID string          `gorm:"type:varchar(64);primaryKey"`
	UserID        string          `gorm:"type:varchar(64);not null;index:idx_transactions_user_created,priority:1"`
	Type          string          `gorm:"type:varchar(16);not null"`
	Amount        decimal.Decimal `gorm:"type:numeric(14,2);not null;check:chk_transactions_amount_positive,amount > 0"`
	Currency      string          `gorm:"type:varchar(3);not null"`
	Status        string          `gorm:"type:varchar(16);not null"`
	BookingID     *string         `gorm:"type:varchar(64);index:idx_transactions_booking"`
	Description   string          `gorm:"type:text"`
	PaymentMethod string          `gorm:"type:varchar(32)"`
	ExternalID    string          `gorm:"type:varchar(64);not null;uniqueIndex:uniq_transactions_external_id"`
	Metadata      datatypes.JSON  `gorm:"not null"`
	CreatedAt     time.Time       `gorm:"not null;index:idx_transactions_user_created,priority:2"`
	CompletedAt   *time.Time
}

func (Transaction) TableName() string { return "transactions" }

func (transaction *Transaction) BeforeCreate(tx *gorm.DB) error {
	if transaction.TransactionID == "" {
		transaction.TransactionID = uuid.NewString()
	}
	return nil
}

// Models lists every table in migration order.
func Models() []interface{} {
	return []interface{}{&Account{}, &Room{}, &Booking{}, &BookingHistory{}, &Transaction{}}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
