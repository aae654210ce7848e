package gormstore

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/MarkoPoloResearchLab/hotel/pkg/hotel"
	gosqlite "github.com/glebarez/go-sqlite"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	defaultMetadataJSON     = "{}"
	pgUniqueViolationCode   = "23505"
	sqliteConstraintCode    = 19
	errorOperationStore     = "store"
	errorSubjectAccount     = "account"
	errorSubjectRoom        = "room"
	errorSubjectBooking     = "booking"
	errorSubjectHistory     = "history"
	errorSubjectTransaction = "transaction"
	errorCodeCreate         = "create"
	errorCodeDuplicate      = "duplicate"
	errorCodeGet            = "get"
	errorCodeLock           = "lock"
	errorCodeInsert         = "insert"
	errorCodeInvalid        = "invalid"
	errorCodeList           = "list"
	errorCodeCount          = "count"
	errorCodeUpdateBalance  = "update_balance"
	errorCodeUpdateStatus   = "update_status"
	errorCodeUpsert         = "upsert"
	lockStrengthUpdate      = "UPDATE"
)

// Store implements hotel.Store using GORM.
type Store struct {
	db *gorm.DB
}

// New returns a Store backed by gorm.DB.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// WithTx executes fn within a transaction. Row locks taken by fn last until commit.
func (store *Store) WithTx(ctx context.Context, fn func(ctx context.Context, txStore hotel.Store) error) error {
	return store.db.WithContext(ctx).Transaction(func(transaction *gorm.DB) error {
		return fn(ctx, &Store{db: transaction})
	})
}

func (store *Store) GetOrCreateAccount(ctx context.Context, userID hotel.UserID, currency hotel.Currency) (hotel.Account, error) {
	model := Account{UserID: userID.String(), Balance: decimal.Zero, Currency: currency.String()}
	err := store.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(&model).Error
	if err != nil && !isUniqueConflict(err) {
		return hotel.Account{}, wrapStoreError(errorSubjectAccount, errorCodeCreate, err)
	}
	return store.GetAccount(ctx, userID)
}

func (store *Store) GetAccount(ctx context.Context, userID hotel.UserID) (hotel.Account, error) {
	return store.findAccount(store.db.WithContext(ctx), userID, errorCodeGet)
}

func (store *Store) LockAccount(ctx context.Context, userID hotel.UserID) (hotel.Account, error) {
	return store.findAccount(store.db.WithContext(ctx).Clauses(clause.Locking{Strength: lockStrengthUpdate}), userID, errorCodeLock)
}

func (store *Store) findAccount(query *gorm.DB, userID hotel.UserID, code string) (hotel.Account, error) {
	var model Account
	err := query.Where("user_id = ?", userID.String()).Take(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return hotel.Account{}, wrapStoreError(errorSubjectAccount, code, hotel.ErrUnknownAccount)
		}
		return hotel.Account{}, wrapStoreError(errorSubjectAccount, code, err)
	}
	account, err := mapAccount(model)
	if err != nil {
		return hotel.Account{}, wrapStoreError(errorSubjectAccount, errorCodeInvalid, err)
	}
	return account, nil
}

func (store *Store) UpdateAccountBalance(ctx context.Context, userID hotel.UserID, balance decimal.Decimal, updatedAt time.Time) error {
	if balance.IsNegative() {
		return wrapStoreError(errorSubjectAccount, errorCodeUpdateBalance, hotel.ErrInsufficientFunds)
	}
	result := store.db.WithContext(ctx).
		Model(&Account{}).
		Where("user_id = ?", userID.String()).
		Updates(map[string]interface{}{"balance": balance, "updated_at": updatedAt.UTC()})
	if result.Error != nil {
		return wrapStoreError(errorSubjectAccount, errorCodeUpdateBalance, result.Error)
	}
	if result.RowsAffected == 0 {
		return wrapStoreError(errorSubjectAccount, errorCodeUpdateBalance, hotel.ErrUnknownAccount)
	}
	return nil
}

func (store *Store) GetRoom(ctx context.Context, roomID hotel.RoomID) (hotel.Room, error) {
	return store.findRoom(store.db.WithContext(ctx), roomID, errorCodeGet)
}

func (store *Store) LockRoom(ctx context.Context, roomID hotel.RoomID) (hotel.Room, error) {
	return store.findRoom(store.db.WithContext(ctx).Clauses(clause.Locking{Strength: lockStrengthUpdate}), roomID, errorCodeLock)
}

func (store *Store) findRoom(query *gorm.DB, roomID hotel.RoomID, code string) (hotel.Room, error) {
	var model Room
	err := query.Where("room_id = ?", roomID.String()).Take(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return hotel.Room{}, wrapStoreError(errorSubjectRoom, code, hotel.ErrUnknownRoom)
		}
		return hotel.Room{}, wrapStoreError(errorSubjectRoom, code, err)
	}
	room, err := mapRoom(model)
	if err != nil {
		return hotel.Room{}, wrapStoreError(errorSubjectRoom, errorCodeInvalid, err)
	}
	return room, nil
}

// UpsertRoom creates or replaces a catalog row. A zero room id creates a new room.
func (store *Store) UpsertRoom(ctx context.Context, room hotel.Room) (hotel.Room, error) {
	model := Room{
		RoomID:    room.ID.String(),
		Number:    room.Number,
		Type:      room.Type.String(),
		Capacity:  room.Capacity,
		BasePrice: room.BasePrice,
		Currency:  room.Currency.String(),
		Active:    room.Active,
	}
	err := store.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "room_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"number", "type", "capacity", "base_price", "currency", "active", "updated_at"}),
		}).
		Create(&model).Error
	if isUniqueConflict(err) {
		return hotel.Room{}, wrapStoreError(errorSubjectRoom, errorCodeDuplicate, err)
	}
	if err != nil {
		return hotel.Room{}, wrapStoreError(errorSubjectRoom, errorCodeUpsert, err)
	}
	roomID, err := hotel.NewRoomID(model.RoomID)
	if err != nil {
		return hotel.Room{}, wrapStoreError(errorSubjectRoom, errorCodeInvalid, err)
	}
	return store.GetRoom(ctx, roomID)
}

func (store *Store) ListAvailableRooms(ctx context.Context, query hotel.RoomQuery) ([]hotel.Room, error) {
	statement := store.db.WithContext(ctx).Where("active = ?", true)
	if !query.Stay.IsZero() {
		busyRooms := store.db.WithContext(ctx).
			Model(&Booking{}).
			Select("room_id").
			Where("status IN ?", blockingStatusNames()).
			Where("check_in < ? AND check_out > ?", query.Stay.CheckOut(), query.Stay.CheckIn())
		statement = statement.Where("room_id NOT IN (?)", busyRooms)
	}
	if query.Type != "" {
		statement = statement.Where("type = ?", query.Type.String())
	}
	if query.MinCapacity > 0 {
		statement = statement.Where("capacity >= ?", query.MinCapacity)
	}
	var rows []Room
	if err := statement.Order("number ASC").Find(&rows).Error; err != nil {
		return nil, wrapStoreError(errorSubjectRoom, errorCodeList, err)
	}
	rooms := make([]hotel.Room, 0, len(rows))
	for _, row := range rows {
		room, err := mapRoom(row)
		if err != nil {
			return nil, wrapStoreError(errorSubjectRoom, errorCodeInvalid, err)
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}

func (store *Store) CountConflicts(ctx context.Context, query hotel.ConflictQuery) (int64, error) {
	statement := store.db.WithContext(ctx).
		Model(&Booking{}).
		Where("room_id = ?", query.RoomID.String()).
		Where("status IN ?", blockingStatusNames()).
		Where("check_in < ? AND check_out > ?", query.Stay.CheckOut(), query.Stay.CheckIn())
	if query.Exclude != nil {
		statement = statement.Where("booking_id <> ?", query.Exclude.String())
	}
	var conflicts int64
	if err := statement.Count(&conflicts).Error; err != nil {
		return 0, wrapStoreError(errorSubjectBooking, errorCodeCount, err)
	}
	return conflicts, nil
}

func (store *Store) InsertBooking(ctx context.Context, input hotel.BookingInput) (hotel.Booking, error) {
	createdAt := input.CreatedAt.UTC()
	model := Booking{
		UserID:          input.UserID.String(),
		RoomID:          input.RoomID.String(),
		CheckIn:         input.Stay.CheckIn(),
		CheckOut:        input.Stay.CheckOut(),
		Guests:          input.Guests,
		PricePerNight:   input.PricePerNight,
		TotalPrice:      input.TotalPrice,
		Currency:        input.Currency.String(),
		Status:          hotel.BookingStatusPending.String(),
		SpecialRequests: input.SpecialRequests,
		CreatedAt:       createdAt,
		UpdatedAt:       createdAt,
	}
	if err := store.db.WithContext(ctx).Create(&model).Error; err != nil {
		return hotel.Booking{}, wrapStoreError(errorSubjectBooking, errorCodeInsert, err)
	}
	booking, err := mapBooking(model)
	if err != nil {
		return hotel.Booking{}, wrapStoreError(errorSubjectBooking, errorCodeInvalid, err)
	}
	return booking, nil
}

func (store *Store) GetBooking(ctx context.Context, bookingID hotel.BookingID) (hotel.Booking, error) {
	return store.findBooking(store.db.WithContext(ctx), bookingID, errorCodeGet)
}

func (store *Store) LockBooking(ctx context.Context, bookingID hotel.BookingID) (hotel.Booking, error) {
	return store.findBooking(store.db.WithContext(ctx).Clauses(clause.Locking{Strength: lockStrengthUpdate}), bookingID, errorCodeLock)
}

func (store *Store) findBooking(query *gorm.DB, bookingID hotel.BookingID, code string) (hotel.Booking, error) {
	var model Booking
	err := query.Where("booking_id = ?", bookingID.String()).Take(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return hotel.Booking{}, wrapStoreError(errorSubjectBooking, code, hotel.ErrUnknownBooking)
		}
		return hotel.Booking{}, wrapStoreError(errorSubjectBooking, code, err)
	}
	booking, err := mapBooking(model)
	if err != nil {
		return hotel.Booking{}, wrapStoreError(errorSubjectBooking, errorCodeInvalid, err)
	}
	return booking, nil
}

// UpdateBookingStatus moves the booking only while it still holds change.From.
func (store *Store) UpdateBookingStatus(ctx context.Context, change hotel.BookingStatusChange) error {
	assignments := map[string]interface{}{
		"status":     change.To.String(),
		"updated_at": change.ChangedAt.UTC(),
	}
	if change.CancelledAt != nil {
		assignments["cancelled_at"] = change.CancelledAt.UTC()
		assignments["cancellation_reason"] = change.CancellationReason
	}
	result := store.db.WithContext(ctx).
		Model(&Booking{}).
		Where("booking_id = ? AND status = ?", change.BookingID.String(), change.From.String()).
		Updates(assignments)
	if result.Error != nil {
		return wrapStoreError(errorSubjectBooking, errorCodeUpdateStatus, result.Error)
	}
	if result.RowsAffected == 0 {
		var existing int64
		if err := store.db.WithContext(ctx).Model(&Booking{}).Where("booking_id = ?", change.BookingID.String()).Count(&existing).Error; err != nil {
			return wrapStoreError(errorSubjectBooking, errorCodeUpdateStatus, err)
		}
		if existing == 0 {
			return wrapStoreError(errorSubjectBooking, errorCodeUpdateStatus, hotel.ErrUnknownBooking)
		}
		return wrapStoreError(errorSubjectBooking, errorCodeUpdateStatus, hotel.ErrStatusChanged)
	}
	return nil
}

func (store *Store) ListBookings(ctx context.Context, userID hotel.UserID, page hotel.Page) ([]hotel.Booking, error) {
	var rows []Booking
	err := store.db.WithContext(ctx).
		Where("user_id = ?", userID.String()).
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&rows).Error
	if err != nil {
		return nil, wrapStoreError(errorSubjectBooking, errorCodeList, err)
	}
	bookings := make([]hotel.Booking, 0, len(rows))
	for _, row := range rows {
		booking, err := mapBooking(row)
		if err != nil {
			return nil, wrapStoreError(errorSubjectBooking, errorCodeInvalid, err)
		}
		bookings = append(bookings, booking)
	}
	return bookings, nil
}

func (store *Store) InsertBookingHistory(ctx context.Context, input hotel.BookingHistoryInput) (hotel.BookingHistory, error) {
	model := BookingHistory{
		BookingID: input.BookingID.String(),
		OldStatus: input.OldStatus.String(),
		NewStatus: input.NewStatus.String(),
		ChangedBy: input.ChangedBy.String(),
		Reason:    input.Reason,
		ChangedAt: input.ChangedAt.UTC(),
	}
	if err := store.db.WithContext(ctx).Create(&model).Error; err != nil {
		return hotel.BookingHistory{}, wrapStoreError(errorSubjectHistory, errorCodeInsert, err)
	}
	entry, err := mapHistory(model)
	if err != nil {
		return hotel.BookingHistory{}, wrapStoreError(errorSubjectHistory, errorCodeInvalid, err)
	}
	return entry, nil
}

func (store *Store) ListBookingHistory(ctx context.Context, bookingID hotel.BookingID) ([]hotel.BookingHistory, error) {
	var rows []BookingHistory
	err := store.db.WithContext(ctx).
		Where("booking_id = ?", bookingID.String()).
		Order("history_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, wrapStoreError(errorSubjectHistory, errorCodeList, err)
	}
	entries := make([]hotel.BookingHistory, 0, len(rows))
	for _, row := range rows {
		entry, err := mapHistory(row)
		if err != nil {
			return nil, wrapStoreError(errorSubjectHistory, errorCodeInvalid, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (store *Store) InsertTransaction(ctx context.Context, input hotel.TransactionInput) (hotel.Transaction, error) {
	var bookingID *string
	if input.BookingID != nil {
		value := input.BookingID.String()
		bookingID = &value
	}
	var completedAt *time.Time
	if input.CompletedAt != nil {
		value := input.CompletedAt.UTC()
		completedAt = &value
	}
	model := Transaction{
		UserID:        input.UserID.String(),
		Type:          input.Type.String(),
		Amount:        input.Amount.Decimal(),
		Currency:      input.Currency.String(),
		Status:        input.Status.String(),
		BookingID:     bookingID,
		Description:   input.Description,
		PaymentMethod: input.PaymentMethod,
		ExternalID:    input.ExternalID,
		Metadata:      datatypesJSON(input.MetadataJSON),
		CreatedAt:     input.CreatedAt.UTC(),
		CompletedAt:   completedAt,
	}
	err := store.db.WithContext(ctx).Create(&model).Error
	if isUniqueConflict(err) {
		return hotel.Transaction{}, wrapStoreError(errorSubjectTransaction, errorCodeDuplicate, err)
	}
	if err != nil {
		return hotel.Transaction{}, wrapStoreError(errorSubjectTransaction, errorCodeInsert, err)
	}
	transaction, err := mapTransaction(model)
	if err != nil {
		return hotel.Transaction{}, wrapStoreError(errorSubjectTransaction, errorCodeInvalid, err)
	}
	return transaction, nil
}

func (store *Store) GetTransaction(ctx context.Context, transactionID hotel.TransactionID) (hotel.Transaction, error) {
	var model Transaction
	err := store.db.WithContext(ctx).Where("transaction_id = ?", transactionID.String()).Take(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return hotel.Transaction{}, wrapStoreError(errorSubjectTransaction, errorCodeGet, hotel.ErrUnknownTransaction)
		}
		return hotel.Transaction{}, wrapStoreError(errorSubjectTransaction, errorCodeGet, err)
	}
	transaction, err := mapTransaction(model)
	if err != nil {
		return hotel.Transaction{}, wrapStoreError(errorSubjectTransaction, errorCodeInvalid, err)
	}
	return transaction, nil
}

func (store *Store) ListTransactions(ctx context.Context, userID hotel.UserID, page hotel.Page) ([]hotel.Transaction, error) {
	var rows []Transaction
	err := store.db.WithContext(ctx).
		Where("user_id = ?", userID.String()).
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&rows).Error
	if err != nil {
		return nil, wrapStoreError(errorSubjectTransaction, errorCodeList, err)
	}
	transactions := make([]hotel.Transaction, 0, len(rows))
	for _, row := range rows {
		transaction, err := mapTransaction(row)
		if err != nil {
			return nil, wrapStoreError(errorSubjectTransaction, errorCodeInvalid, err)
		}
		transactions = append(transactions, transaction)
	}
	return transactions, nil
}

func wrapStoreError(subject string, code string, err error) error {
	return hotel.WrapError(errorOperationStore, subject, code, err)
}

func blockingStatusNames() []string {
	names := make([]string, 0, len(hotel.BlockingStatuses))
	for _, status := range hotel.BlockingStatuses {
		names = append(names, status.String())
	}
	return names
}

func mapAccount(row Account) (hotel.Account, error) {
	userID, err := hotel.NewUserID(row.UserID)
	if err != nil {
		return hotel.Account{}, err
	}
	currency, err := hotel.ParseCurrency(row.Currency)
	if err != nil {
		return hotel.Account{}, err
	}
	return hotel.Account{
		UserID:    userID,
		Balance:   row.Balance,
		Currency:  currency,
		CreatedAt: row.CreatedAt.UTC(),
		UpdatedAt: row.UpdatedAt.UTC(),
	}, nil
}

func mapRoom(row Room) (hotel.Room, error) {
	roomID, err := hotel.NewRoomID(row.RoomID)
	if err != nil {
		return hotel.Room{}, err
	}
	roomType, err := hotel.ParseRoomType(row.Type)
	if err != nil {
		return hotel.Room{}, err
	}
	currency, err := hotel.ParseCurrency(row.Currency)
	if err != nil {
		return hotel.Room{}, err
	}
	return hotel.Room{
		ID:        roomID,
		Number:    row.Number,
		Type:      roomType,
		Capacity:  row.Capacity,
		BasePrice: row.BasePrice,
		Currency:  currency,
		Active:    row.Active,
	}, nil
}

func mapBooking(row Booking) (hotel.Booking, error) {
	bookingID, err := hotel.NewBookingID(row.BookingID)
	if err != nil {
		return hotel.Booking{}, err
	}
	userID, err := hotel.NewUserID(row.UserID)
	if err != nil {
		return hotel.Booking{}, err
	}
	roomID, err := hotel.NewRoomID(row.RoomID)
	if err != nil {
		return hotel.Booking{}, err
	}
	stay, err := hotel.NewDateRange(row.CheckIn.UTC(), row.CheckOut.UTC())
	if err != nil {
		return hotel.Booking{}, err
	}
	currency, err := hotel.ParseCurrency(row.Currency)
	if err != nil {
		return hotel.Booking{}, err
	}
	status, err := hotel.ParseBookingStatus(row.Status)
	if err != nil {
		return hotel.Booking{}, err
	}
	return hotel.Booking{
		ID:                 bookingID,
		UserID:             userID,
		RoomID:             roomID,
		Stay:               stay,
		Guests:             row.Guests,
		PricePerNight:      row.PricePerNight,
		TotalPrice:         row.TotalPrice,
		Currency:           currency,
		Status:             status,
		SpecialRequests:    row.SpecialRequests,
		CreatedAt:          row.CreatedAt.UTC(),
		UpdatedAt:          row.UpdatedAt.UTC(),
		CancelledAt:        utcOrNil(row.CancelledAt),
		CancellationReason: row.CancellationReason,
	}, nil
}

func mapHistory(row BookingHistory) (hotel.BookingHistory, error) {
	bookingID, err := hotel.NewBookingID(row.BookingID)
	if err != nil {
		return hotel.BookingHistory{}, err
	}
	var oldStatus hotel.BookingStatus
	if row.OldStatus != "" {
		oldStatus, err = hotel.ParseBookingStatus(row.OldStatus)
		if err != nil {
			return hotel.BookingHistory{}, err
		}
	}
	newStatus, err := hotel.ParseBookingStatus(row.NewStatus)
	if err != nil {
		return hotel.BookingHistory{}, err
	}
	changedBy, err := hotel.NewUserID(row.ChangedBy)
	if err != nil {
		return hotel.BookingHistory{}, err
	}
	return hotel.BookingHistory{
		ID:        strconv.FormatUint(row.HistoryID, 10),
		BookingID: bookingID,
		OldStatus: oldStatus,
		NewStatus: newStatus,
		ChangedBy: changedBy,
		Reason:    row.Reason,
		ChangedAt: row.ChangedAt.UTC(),
	}, nil
}

func mapTransaction(row Transaction) (hotel.Transaction, error) {
	transactionID, err := hotel.NewTransactionID(row.TransactionID)
	if err != nil {
		return hotel.Transaction{}, err
	}
	userID, err := hotel.NewUserID(row.UserID)
	if err != nil {
		return hotel.Transaction{}, err
	}
	transactionType, err := hotel.ParseTransactionType(row.Type)
	if err != nil {
		return hotel.Transaction{}, err
	}
	currency, err := hotel.ParseCurrency(row.Currency)
	if err != nil {
		return hotel.Transaction{}, err
	}
	status, err := hotel.ParseTransactionStatus(row.Status)
	if err != nil {
		return hotel.Transaction{}, err
	}
	var bookingID *hotel.BookingID
	if row.BookingID != nil {
		parsedBookingID, err := hotel.NewBookingID(*row.BookingID)
		if err != nil {
			return hotel.Transaction{}, err
		}
		bookingID = &parsedBookingID
	}
	return hotel.Transaction{
		ID:            transactionID,
		UserID:        userID,
		Type:          transactionType,
		Amount:        row.Amount,
		Currency:      currency,
		Status:        status,
		BookingID:     bookingID,
		Description:   row.Description,
		PaymentMethod: row.PaymentMethod,
		ExternalID:    row.ExternalID,
		MetadataJSON:  string(row.Metadata),
		CreatedAt:     row.CreatedAt.UTC(),
		CompletedAt:   utcOrNil(row.CompletedAt),
	}, nil
}

func utcOrNil(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	converted := value.UTC()
	return &converted
}

func datatypesJSON(raw string) datatypes.JSON {
	if raw == "" {
		return datatypes.JSON([]byte(defaultMetadataJSON))
	}
	return datatypes.JSON([]byte(raw))
}

func isUniqueConflict(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolationCode
	}
	var sqliteErr *gosqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code()&0xFF == sqliteConstraintCode
	}
	return false
}
