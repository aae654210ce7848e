package hotelv1

// Room is a catalog row. BasePrice is a decimal string.
type Room struct {
	RoomID    string `json:"room_id"`
	Number    string `json:"number"`
	Type      string `json:"type"`
	Capacity  int32  `json:"capacity"`
	BasePrice string `json:"base_price"`
	Currency  string `json:"currency"`
	Active    bool   `json:"active"`
}

// BookingHistoryEntry is one audit line. ChangedAt is RFC 3339.
type BookingHistoryEntry struct {
	HistoryID string `json:"history_id"`
	OldStatus string `json:"old_status,omitempty"`
	NewStatus string `json:"new_status"`
	ChangedBy string `json:"changed_by"`
	Reason    string `json:"reason,omitempty"`
	ChangedAt string `json:"changed_at"`
}

// Booking carries dates as YYYY-MM-DD and amounts as decimal strings.
type Booking struct {
	BookingID          string                 `json:"booking_id"`
	UserID             string                 `json:"user_id"`
	RoomID             string                 `json:"room_id"`
	CheckIn            string                 `json:"check_in"`
	CheckOut           string                 `json:"check_out"`
	Nights             int32                  `json:"nights"`
	Guests             int32                  `json:"guests"`
	PricePerNight      string                 `json:"price_per_night"`
	TotalPrice         string                 `json:"total_price"`
	Currency           string                 `json:"currency"`
	Status             string                 `json:"status"`
	SpecialRequests    string                 `json:"special_requests,omitempty"`
	CreatedAt          string                 `json:"created_at"`
	UpdatedAt          string                 `json:"updated_at"`
	CancelledAt        string                 `json:"cancelled_at,omitempty"`
	CancellationReason string                 `json:"cancellation_reason,omitempty"`
	Room               *Room                  `json:"room,omitempty"`
	History            []*BookingHistoryEntry `json:"history,omitempty"`
}

// Transaction is a ledger entry. SignedAmount is negative for debits.
type Transaction struct {
	TransactionID string `json:"transaction_id"`
	UserID        string `json:"user_id"`
	Type          string `json:"type"`
	Amount        string `json:"amount"`
	SignedAmount  string `json:"signed_amount"`
	Currency      string `json:"currency"`
	Status        string `json:"status"`
	BookingID     string `json:"booking_id,omitempty"`
	Description   string `json:"description,omitempty"`
	PaymentMethod string `json:"payment_method,omitempty"`
	ExternalID    string `json:"external_id"`
	MetadataJSON  string `json:"metadata_json,omitempty"`
	CreatedAt     string `json:"created_at"`
	CompletedAt   string `json:"completed_at,omitempty"`
}

type CreateBookingRequest struct {
	UserID          string `json:"user_id"`
	RoomID          string `json:"room_id"`
	CheckIn         string `json:"check_in"`
	CheckOut        string `json:"check_out"`
	Guests          int32  `json:"guests"`
	SpecialRequests string `json:"special_requests,omitempty"`
}

type CancelBookingRequest struct {
	UserID    string `json:"user_id"`
	BookingID string `json:"booking_id"`
	Reason    string `json:"reason,omitempty"`
}

// UpdateBookingStatusRequest is issued by an operator; ActorID is recorded in history.
type UpdateBookingStatusRequest struct {
	ActorID   string `json:"actor_id"`
	BookingID string `json:"booking_id"`
	Status    string `json:"status"`
	Reason    string `json:"reason,omitempty"`
}

type GetBookingRequest struct {
	UserID    string `json:"user_id"`
	BookingID string `json:"booking_id"`
}

type CompleteForReviewRequest struct {
	UserID    string `json:"user_id"`
	BookingID string `json:"booking_id"`
}

type BookingResponse struct {
	Booking *Booking `json:"booking"`
}

type ListBookingsRequest struct {
	UserID   string `json:"user_id"`
	Page     int32  `json:"page"`
	PageSize int32  `json:"page_size"`
}

type ListBookingsResponse struct {
	Bookings []*Booking `json:"bookings"`
}

// ListAvailableRoomsRequest lists every active room when both dates are empty.
type ListAvailableRoomsRequest struct {
	CheckIn     string `json:"check_in,omitempty"`
	CheckOut    string `json:"check_out,omitempty"`
	Type        string `json:"type,omitempty"`
	MinCapacity int32  `json:"min_capacity,omitempty"`
}

type ListAvailableRoomsResponse struct {
	Rooms []*Room `json:"rooms"`
}

type OpenAccountRequest struct {
	UserID   string `json:"user_id"`
	Currency string `json:"currency,omitempty"`
}

type GetBalanceRequest struct {
	UserID string `json:"user_id"`
}

type BalanceResponse struct {
	UserID   string `json:"user_id"`
	Balance  string `json:"balance"`
	Currency string `json:"currency"`
}

type DepositRequest struct {
	UserID        string `json:"user_id"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency,omitempty"`
	PaymentMethod string `json:"payment_method,omitempty"`
	Description   string `json:"description,omitempty"`
}

type WithdrawRequest struct {
	UserID           string `json:"user_id"`
	Amount           string `json:"amount"`
	Currency         string `json:"currency,omitempty"`
	WithdrawalMethod string `json:"withdrawal_method"`
	Details          string `json:"details,omitempty"`
	Description      string `json:"description,omitempty"`
}

type TransactionResponse struct {
	Transaction *Transaction `json:"transaction"`
}

type ListTransactionsRequest struct {
	UserID   string `json:"user_id"`
	Page     int32  `json:"page"`
	PageSize int32  `json:"page_size"`
}

type ListTransactionsResponse struct {
	Transactions []*Transaction `json:"transactions"`
}

type GetTransactionRequest struct {
	UserID        string `json:"user_id"`
	TransactionID string `json:"transaction_id"`
}
