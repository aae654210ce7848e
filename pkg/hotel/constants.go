package hotel

const (
	operationOpenAccount       = "open_account"
	operationDeposit           = "deposit"
	operationWithdraw          = "withdraw"
	operationCreateBooking     = "create_booking"
	operationCancelBooking     = "cancel_booking"
	operationUpdateStatus      = "update_booking_status"
	operationCompleteForReview = "complete_for_review"
	operationNotify            = "notify"

	operationStatusOK    = "ok"
	operationStatusError = "error"

	// Event names published after commit.
	EventBookingCreated       = "booking.created"
	EventBookingCancelled     = "booking.cancelled"
	EventBookingStatusChanged = "booking.status_changed"
	EventWalletDeposited      = "wallet.deposited"
	EventWalletWithdrawn      = "wallet.withdrawal_requested"

	// DefaultPageSize applies when a listing asks for no particular size.
	DefaultPageSize = 20
	// MaxPageSize bounds listings.
	MaxPageSize = 100

	amountScale         = 2
	hoursPerDay         = 24
	maxIdentifierLength = 64

	externalIDPrefix       = "TXN-"
	externalIDRandomLength = 8

	reasonStayEnded = "check-out date passed"
)
