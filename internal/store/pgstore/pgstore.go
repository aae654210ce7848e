package pgstore

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/MarkoPoloResearchLab/hotel/pkg/hotel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const (
	pgUniqueViolationCode   = "23505"
	defaultMetadataJSON     = "{}"
	errorOperationStore     = "store"
	errorSubjectAccount     = "account"
	errorSubjectRoom        = "room"
	errorSubjectBooking     = "booking"
	errorSubjectHistory     = "history"
	errorSubjectTransaction = "transaction"
	errorSubjectSchema      = "schema"
	errorCodeBegin          = "begin"
	errorCodeCommit         = "commit"
	errorCodeCreate         = "create"
	errorCodeDuplicate      = "duplicate"
	errorCodeGet            = "get"
	errorCodeLock           = "lock"
	errorCodeInsert         = "insert"
	errorCodeInvalid        = "invalid"
	errorCodeList           = "list"
	errorCodeCount          = "count"
	errorCodeMigrate        = "migrate"
	errorCodeUpdateBalance  = "update_balance"
	errorCodeUpdateStatus   = "update_status"
	errorCodeUpsert         = "upsert"

	// Schema matches the tables gormstore migrates, so both engines can share a database.
	Schema = `
		create table if not exists accounts (
			user_id varchar(64) primary key,
			balance numeric(14,2) not null constraint chk_accounts_balance_non_negative check (balance >= 0),
			currency varchar(3) not null,
			created_at timestamptz not null,
			updated_at timestamptz not null
		);
		create table if not exists rooms (
			room_id varchar(64) primary key,
			number varchar(16) not null,
			type varchar(16) not null,
			capacity bigint not null,
			base_price numeric(14,2) not null,
			currency varchar(3) not null,
			active boolean not null,
			created_at timestamptz not null,
			updated_at timestamptz not null
		);
		create unique index if not exists uniq_rooms_number on rooms(number);
		create index if not exists idx_rooms_type on rooms(type);
		create table if not exists bookings (
			booking_id varchar(64) primary key,
			user_id varchar(64) not null,
			room_id varchar(64) not null,
			check_in timestamptz not null,
			check_out timestamptz not null,
			guests bigint not null,
			price_per_night numeric(14,2) not null,
			total_price numeric(14,2) not null,
			currency varchar(3) not null,
			status varchar(16) not null,
			special_requests text,
			created_at timestamptz not null,
			updated_at timestamptz not null,
			cancelled_at timestamptz,
			cancellation_reason text
		);
		create index if not exists idx_bookings_user_created on bookings(user_id, created_at);
		create index if not exists idx_bookings_room_stay on bookings(room_id, check_in, check_out);
		create index if not exists idx_bookings_status on bookings(status);
		create table if not exists booking_history (
			history_id bigserial primary key,
			booking_id varchar(64) not null,
			old_status varchar(16),
			new_status varchar(16) not null,
			changed_by varchar(64) not null,
			reason text,
			changed_at timestamptz not null
		);
		create index if not exists idx_booking_history_booking on booking_history(booking_id);
		create table if not exists transactions (
			transaction_id varchar(64) primary key,
			user_id varchar(64) not null,
			type varchar(16) not null,
			amount numeric(14,2) not null constraint chk_transactions_amount_positive check (amount > 0),
			currency varchar(3) not null,
			status varchar(16) not null,
			booking_id varchar(64),
			description text,
			payment_method varchar(32),
			external_id varchar(64) not null,
			metadata jsonb not null,
			created_at timestamptz not null,
			completed_at timestamptz
		);
		create unique index if not exists uniq_transactions_external_id on transactions(external_id);
		create index if not exists idx_transactions_user_created on transactions(user_id, created_at);
		create index if not exists idx_transactions_booking on transactions(booking_id);
	`

	sqlInsertAccount = `
		insert into accounts(user_id, balance, currency, created_at, updated_at)
		values($1, 0, $2, now(), now())
		on conflict (user_id) do nothing
	`

	sqlSelectAccount = `
		select user_id, balance::text, currency, created_at, updated_at
		from accounts
		where user_id = $1
	`

	sqlUpdateAccountBalance = `
		update accounts set balance = $2::numeric, updated_at = $3
		where user_id = $1
	`

	sqlSelectRoom = `
		select room_id, number, type, capacity, base_price::text, currency, active
		from rooms
		where room_id = $1
	`

	sqlUpsertRoom = `
		insert into rooms(room_id, number, type, capacity, base_price, currency, active, created_at, updated_at)
		values($1, $2, $3, $4, $5::numeric, $6, $7, now(), now())
		on conflict (room_id) do update set
			number = excluded.number,
			type = excluded.type,
			capacity = excluded.capacity,
			base_price = excluded.base_price,
			currency = excluded.currency,
			active = excluded.active,
			updated_at = excluded.updated_at
	`

	sqlListAvailableRooms = `
		select room_id, number, type, capacity, base_price::text, currency, active
		from rooms r
		where r.active
		and ($1::text = '' or r.type = $1)
		and r.capacity >= $2
		and (
			not $3::boolean
			or not exists (
				select 1 from bookings b
				where b.room_id = r.room_id
				and b.status = any($4)
				and b.check_in < $5 and b.check_out > $6
			)
		)
		order by r.number asc
	`

	sqlCountConflicts = `
		select count(*) from bookings
		where room_id = $1
		and status = any($2)
		and check_in < $3 and check_out > $4
		and ($5::text = '' or booking_id <> $5)
	`

	sqlInsertBooking = `
		insert into bookings(
			booking_id, user_id, room_id, check_in, check_out, guests,
			price_per_night, total_price, currency, status, special_requests,
			created_at, updated_at, cancellation_reason
		)
		values($1, $2, $3, $4, $5, $6, $7::numeric, $8::numeric, $9, $10, $11, $12, $12, '')
	`

	sqlSelectBookingColumns = `
		select booking_id, user_id, room_id, check_in, check_out, guests,
			price_per_night::text, total_price::text, currency, status,
			coalesce(special_requests, ''), created_at, updated_at, cancelled_at,
			coalesce(cancellation_reason, '')
		from bookings
	`

	sqlUpdateBookingStatus = `
		update bookings
		set status = $3,
			updated_at = $4,
			cancelled_at = coalesce($5, cancelled_at),
			cancellation_reason = case when $5::timestamptz is null then cancellation_reason else $6 end
		where booking_id = $1 and status = $2
	`

	sqlBookingExists = `select exists(select 1 from bookings where booking_id = $1)`

	sqlInsertHistory = `
		insert into booking_history(booking_id, old_status, new_status, changed_by, reason, changed_at)
		values($1, $2, $3, $4, $5, $6)
		returning history_id
	`

	sqlListHistory = `
		select history_id, booking_id, coalesce(old_status, ''), new_status, changed_by, coalesce(reason, ''), changed_at
		from booking_history
		where booking_id = $1
		order by history_id asc
	`

	sqlInsertTransaction = `
		insert into transactions(
			transaction_id, user_id, type, amount, currency, status, booking_id,
			description, payment_method, external_id, metadata, created_at, completed_at
		)
		values($1, $2, $3, $4::numeric, $5, $6, $7, $8, $9, $10, coalesce(nullif($11, ''), '{}')::jsonb, $12, $13)
	`

	sqlSelectTransactionColumns = `
		select transaction_id, user_id, type, amount::text, currency, status, booking_id,
			coalesce(description, ''), coalesce(payment_method, ''), external_id,
			coalesce(metadata::text, '{}'), created_at, completed_at
		from transactions
	`
)

type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, arguments ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, arguments ...any) pgx.Row
}

type rowScanner interface {
	Scan(destinations ...any) error
}

// Store implements hotel.Store using a pgx connection pool (autocommit).
type Store struct {
	queries
	pool *pgxpool.Pool
}

// TxStore implements hotel.Store for an active transaction.
type TxStore struct {
	queries
}

type queries struct {
	db querier
}

// New returns a Store backed by a pgx pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{queries: queries{db: pool}, pool: pool}
}

// Migrate applies Schema.
func (store *Store) Migrate(ctx context.Context) error {
	if _, err := store.pool.Exec(ctx, Schema); err != nil {
		return wrapStoreError(errorSubjectSchema, errorCodeMigrate, err)
	}
	return nil
}

func (store *Store) WithTx(ctx context.Context, fn func(ctx context.Context, txStore hotel.Store) error) error {
	tx, err := store.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return wrapStoreError(errorSubjectTransaction, errorCodeBegin, err)
	}
	transactionStore := &TxStore{queries: queries{db: tx}}
	if err := fn(ctx, transactionStore); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return wrapStoreError(errorSubjectTransaction, errorCodeCommit, err)
	}
	return nil
}

// WithTx reuses the open transaction.
func (store *TxStore) WithTx(ctx context.Context, fn func(ctx context.Context, txStore hotel.Store) error) error {
	return fn(ctx, store)
}

func (store *queries) GetOrCreateAccount(ctx context.Context, userID hotel.UserID, currency hotel.Currency) (hotel.Account, error) {
	if _, err := store.db.Exec(ctx, sqlInsertAccount, userID.String(), currency.String()); err != nil {
		return hotel.Account{}, wrapStoreError(errorSubjectAccount, errorCodeCreate, err)
	}
	return store.GetAccount(ctx, userID)
}

func (store *queries) GetAccount(ctx context.Context, userID hotel.UserID) (hotel.Account, error) {
	return store.selectAccount(ctx, sqlSelectAccount, userID, errorCodeGet)
}

func (store *queries) LockAccount(ctx context.Context, userID hotel.UserID) (hotel.Account, error) {
	return store.selectAccount(ctx, sqlSelectAccount+" for update", userID, errorCodeLock)
}

func (store *queries) selectAccount(ctx context.Context, sql string, userID hotel.UserID, code string) (hotel.Account, error) {
	var (
		userIDValue string
		balance     string
		currency    string
		createdAt   time.Time
		updatedAt   time.Time
	)
	err := store.db.QueryRow(ctx, sql, userID.String()).Scan(&userIDValue, &balance, &currency, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return hotel.Account{}, wrapStoreError(errorSubjectAccount, code, hotel.ErrUnknownAccount)
		}
		return hotel.Account{}, wrapStoreError(errorSubjectAccount, code, err)
	}
	account, err := buildAccount(userIDValue, balance, currency, createdAt, updatedAt)
	if err != nil {
		return hotel.Account{}, wrapStoreError(errorSubjectAccount, errorCodeInvalid, err)
	}
	return account, nil
}

func (store *queries) UpdateAccountBalance(ctx context.Context, userID hotel.UserID, balance decimal.Decimal, updatedAt time.Time) error {
	if balance.IsNegative() {
		return wrapStoreError(errorSubjectAccount, errorCodeUpdateBalance, hotel.ErrInsufficientFunds)
	}
	tag, err := store.db.Exec(ctx, sqlUpdateAccountBalance, userID.String(), balance.String(), updatedAt.UTC())
	if err != nil {
		return wrapStoreError(errorSubjectAccount, errorCodeUpdateBalance, err)
	}
	if tag.RowsAffected() == 0 {
		return wrapStoreError(errorSubjectAccount, errorCodeUpdateBalance, hotel.ErrUnknownAccount)
	}
	return nil
}

func (store *queries) GetRoom(ctx context.Context, roomID hotel.RoomID) (hotel.Room, error) {
	return store.selectRoom(ctx, sqlSelectRoom, roomID, errorCodeGet)
}

func (store *queries) LockRoom(ctx context.Context, roomID hotel.RoomID) (hotel.Room, error) {
	return store.selectRoom(ctx, sqlSelectRoom+" for update", roomID, errorCodeLock)
}

func (store *queries) selectRoom(ctx context.Context, sql string, roomID hotel.RoomID, code string) (hotel.Room, error) {
	room, err := scanRoom(store.db.QueryRow(ctx, sql, roomID.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return hotel.Room{}, wrapStoreError(errorSubjectRoom, code, hotel.ErrUnknownRoom)
		}
		return hotel.Room{}, wrapStoreError(errorSubjectRoom, code, err)
	}
	return room, nil
}

// UpsertRoom creates or replaces a catalog row. A zero room id creates a new room.
func (store *queries) UpsertRoom(ctx context.Context, room hotel.Room) (hotel.Room, error) {
	roomIDValue := room.ID.String()
	if roomIDValue == "" {
		roomIDValue = uuid.NewString()
	}
	_, err := store.db.Exec(ctx, sqlUpsertRoom,
		roomIDValue,
		room.Number,
		room.Type.String(),
		room.Capacity,
		room.BasePrice.String(),
		room.Currency.String(),
		room.Active,
	)
	if isUniqueConflict(err) {
		return hotel.Room{}, wrapStoreError(errorSubjectRoom, errorCodeDuplicate, err)
	}
	if err != nil {
		return hotel.Room{}, wrapStoreError(errorSubjectRoom, errorCodeUpsert, err)
	}
	roomID, err := hotel.NewRoomID(roomIDValue)
	if err != nil {
		return hotel.Room{}, wrapStoreError(errorSubjectRoom, errorCodeInvalid, err)
	}
	return store.GetRoom(ctx, roomID)
}

func (store *queries) ListAvailableRooms(ctx context.Context, query hotel.RoomQuery) ([]hotel.Room, error) {
	hasStay := !query.Stay.IsZero()
	rows, err := store.db.Query(ctx, sqlListAvailableRooms,
		query.Type.String(),
		query.MinCapacity,
		hasStay,
		blockingStatusNames(),
		query.Stay.CheckOut(),
		query.Stay.CheckIn(),
	)
	if err != nil {
		return nil, wrapStoreError(errorSubjectRoom, errorCodeList, err)
	}
	defer rows.Close()

	rooms := make([]hotel.Room, 0)
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, wrapStoreError(errorSubjectRoom, errorCodeInvalid, err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreError(errorSubjectRoom, errorCodeList, err)
	}
	return rooms, nil
}

func (store *queries) CountConflicts(ctx context.Context, query hotel.ConflictQuery) (int64, error) {
	excluded := ""
	if query.Exclude != nil {
		excluded = query.Exclude.String()
	}
	var conflicts int64
	err := store.db.QueryRow(ctx, sqlCountConflicts,
		query.RoomID.String(),
		blockingStatusNames(),
		query.Stay.CheckOut(),
		query.Stay.CheckIn(),
		excluded,
	).Scan(&conflicts)
	if err != nil {
		return 0, wrapStoreError(errorSubjectBooking, errorCodeCount, err)
	}
	return conflicts, nil
}

func (store *queries) InsertBooking(ctx context.Context, input hotel.BookingInput) (hotel.Booking, error) {
	bookingIDValue := uuid.NewString()
	createdAt := input.CreatedAt.UTC()
	_, err := store.db.Exec(ctx, sqlInsertBooking,
		bookingIDValue,
		input.UserID.String(),
		input.RoomID.String(),
		input.Stay.CheckIn(),
		input.Stay.CheckOut(),
		input.Guests,
		input.PricePerNight.String(),
		input.TotalPrice.String(),
		input.Currency.String(),
		hotel.BookingStatusPending.String(),
		input.SpecialRequests,
		createdAt,
	)
	if err != nil {
		return hotel.Booking{}, wrapStoreError(errorSubjectBooking, errorCodeInsert, err)
	}
	bookingID, err := hotel.NewBookingID(bookingIDValue)
	if err != nil {
		return hotel.Booking{}, wrapStoreError(errorSubjectBooking, errorCodeInvalid, err)
	}
	return hotel.Booking{
		ID:              bookingID,
		UserID:          input.UserID,
		RoomID:          input.RoomID,
		Stay:            input.Stay,
		Guests:          input.Guests,
		PricePerNight:   input.PricePerNight,
		TotalPrice:      input.TotalPrice,
		Currency:        input.Currency,
		Status:          hotel.BookingStatusPending,
		SpecialRequests: input.SpecialRequests,
		CreatedAt:       createdAt,
		UpdatedAt:       createdAt,
	}, nil
}

func (store *queries) GetBooking(ctx context.Context, bookingID hotel.BookingID) (hotel.Booking, error) {
	return store.selectBooking(ctx, sqlSelectBookingColumns+" where booking_id = $1", bookingID, errorCodeGet)
}

func (store *queries) LockBooking(ctx context.Context, bookingID hotel.BookingID) (hotel.Booking, error) {
	return store.selectBooking(ctx, sqlSelectBookingColumns+" where booking_id = $1 for update", bookingID, errorCodeLock)
}

func (store *queries) selectBooking(ctx context.Context, sql string, bookingID hotel.BookingID, code string) (hotel.Booking, error) {
	booking, err := scanBooking(store.db.QueryRow(ctx, sql, bookingID.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return hotel.Booking{}, wrapStoreError(errorSubjectBooking, code, hotel.ErrUnknownBooking)
		}
		return hotel.Booking{}, wrapStoreError(errorSubjectBooking, code, err)
	}
	return booking, nil
}

// UpdateBookingStatus moves the booking only while it still holds change.From.
func (store *queries) UpdateBookingStatus(ctx context.Context, change hotel.BookingStatusChange) error {
	var cancelledAt *time.Time
	if change.CancelledAt != nil {
		value := change.CancelledAt.UTC()
		cancelledAt = &value
	}
	tag, err := store.db.Exec(ctx, sqlUpdateBookingStatus,
		change.BookingID.String(),
		change.From.String(),
		change.To.String(),
		change.ChangedAt.UTC(),
		cancelledAt,
		change.CancellationReason,
	)
	if err != nil {
		return wrapStoreError(errorSubjectBooking, errorCodeUpdateStatus, err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	var exists bool
	if err := store.db.QueryRow(ctx, sqlBookingExists, change.BookingID.String()).Scan(&exists); err != nil {
		return wrapStoreError(errorSubjectBooking, errorCodeUpdateStatus, err)
	}
	if !exists {
		return wrapStoreError(errorSubjectBooking, errorCodeUpdateStatus, hotel.ErrUnknownBooking)
	}
	return wrapStoreError(errorSubjectBooking, errorCodeUpdateStatus, hotel.ErrStatusChanged)
}

func (store *queries) ListBookings(ctx context.Context, userID hotel.UserID, page hotel.Page) ([]hotel.Booking, error) {
	rows, err := store.db.Query(ctx,
		sqlSelectBookingColumns+" where user_id = $1 order by created_at desc offset $2 limit $3",
		userID.String(), page.Offset(), page.Limit(),
	)
	if err != nil {
		return nil, wrapStoreError(errorSubjectBooking, errorCodeList, err)
	}
	defer rows.Close()

	bookings := make([]hotel.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, wrapStoreError(errorSubjectBooking, errorCodeInvalid, err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreError(errorSubjectBooking, errorCodeList, err)
	}
	return bookings, nil
}

func (store *queries) InsertBookingHistory(ctx context.Context, input hotel.BookingHistoryInput) (hotel.BookingHistory, error) {
	var historyID int64
	changedAt := input.ChangedAt.UTC()
	err := store.db.QueryRow(ctx, sqlInsertHistory,
		input.BookingID.String(),
		input.OldStatus.String(),
		input.NewStatus.String(),
		input.ChangedBy.String(),
		input.Reason,
		changedAt,
	).Scan(&historyID)
	if err != nil {
		return hotel.BookingHistory{}, wrapStoreError(errorSubjectHistory, errorCodeInsert, err)
	}
	return hotel.BookingHistory{
		ID:        strconv.FormatInt(historyID, 10),
		BookingID: input.BookingID,
		OldStatus: input.OldStatus,
		NewStatus: input.NewStatus,
		ChangedBy: input.ChangedBy,
		Reason:    input.Reason,
		ChangedAt: changedAt,
	}, nil
}

func (store *queries) ListBookingHistory(ctx context.Context, bookingID hotel.BookingID) ([]hotel.BookingHistory, error) {
	rows, err := store.db.Query(ctx, sqlListHistory, bookingID.String())
	if err != nil {
		return nil, wrapStoreError(errorSubjectHistory, errorCodeList, err)
	}
	defer rows.Close()

	entries := make([]hotel.BookingHistory, 0)
	for rows.Next() {
		var (
			historyID      int64
			bookingIDValue string
			oldStatus      string
			newStatus      string
			changedBy      string
			reason         string
			changedAt      time.Time
		)
		if err := rows.Scan(&historyID, &bookingIDValue, &oldStatus, &newStatus, &changedBy, &reason, &changedAt); err != nil {
			return nil, wrapStoreError(errorSubjectHistory, errorCodeList, err)
		}
		entry, err := buildHistory(historyID, bookingIDValue, oldStatus, newStatus, changedBy, reason, changedAt)
		if err != nil {
			return nil, wrapStoreError(errorSubjectHistory, errorCodeInvalid, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreError(errorSubjectHistory, errorCodeList, err)
	}
	return entries, nil
}

func (store *queries) InsertTransaction(ctx context.Context, input hotel.TransactionInput) (hotel.Transaction, error) {
	transactionIDValue := uuid.NewString()
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
	createdAt := input.CreatedAt.UTC()
	_, err := store.db.Exec(ctx, sqlInsertTransaction,
		transactionIDValue,
		input.UserID.String(),
		input.Type.String(),
		input.Amount.Decimal().String(),
		input.Currency.String(),
		input.Status.String(),
		bookingID,
		input.Description,
		input.PaymentMethod,
		input.ExternalID,
		input.MetadataJSON,
		createdAt,
		completedAt,
	)
	if isUniqueConflict(err) {
		return hotel.Transaction{}, wrapStoreError(errorSubjectTransaction, errorCodeDuplicate, err)
	}
	if err != nil {
		return hotel.Transaction{}, wrapStoreError(errorSubjectTransaction, errorCodeInsert, err)
	}
	transactionID, err := hotel.NewTransactionID(transactionIDValue)
	if err != nil {
		return hotel.Transaction{}, wrapStoreError(errorSubjectTransaction, errorCodeInvalid, err)
	}
	metadata := input.MetadataJSON
	if metadata == "" {
		metadata = defaultMetadataJSON
	}
	return hotel.Transaction{
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
		MetadataJSON:  metadata,
		CreatedAt:     createdAt,
		CompletedAt:   completedAt,
	}, nil
}

func (store *queries) GetTransaction(ctx context.Context, transactionID hotel.TransactionID) (hotel.Transaction, error) {
	transaction, err := scanTransaction(store.db.QueryRow(ctx, sqlSelectTransactionColumns+" where transaction_id = $1", transactionID.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return hotel.Transaction{}, wrapStoreError(errorSubjectTransaction, errorCodeGet, hotel.ErrUnknownTransaction)
		}
		return hotel.Transaction{}, wrapStoreError(errorSubjectTransaction, errorCodeGet, err)
	}
	return transaction, nil
}

func (store *queries) ListTransactions(ctx context.Context, userID hotel.UserID, page hotel.Page) ([]hotel.Transaction, error) {
	rows, err := store.db.Query(ctx,
		sqlSelectTransactionColumns+" where user_id = $1 order by created_at desc offset $2 limit $3",
		userID.String(), page.Offset(), page.Limit(),
	)
	if err != nil {
		return nil, wrapStoreError(errorSubjectTransaction, errorCodeList, err)
	}
	defer rows.Close()

	transactions := make([]hotel.Transaction, 0)
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, wrapStoreError(errorSubjectTransaction, errorCodeInvalid, err)
		}
		transactions = append(transactions, transaction)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreError(errorSubjectTransaction, errorCodeList, err)
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

func isUniqueConflict(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolationCode
	}
	return false
}
