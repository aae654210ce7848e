package httpapi

import (
	"errors"
	"net/http"

	"github.com/MarkoPoloResearchLab/hotel/pkg/hotel"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	errorUnauthorized       = "unauthorized"
	errorInvalidPayload     = "invalid_payload"
	errorInvalidRequest     = "invalid_request"
	errorForbidden          = "forbidden"
	errorRoomNotAvailable   = "room_not_available"
	errorInsufficientFunds  = "insufficient_funds"
	errorAmountOutOfRange   = "amount_out_of_range"
	errorIllegalTransition  = "illegal_status_transition"
	errorAlreadyCancelled   = "booking_already_cancelled"
	errorStatusChanged      = "booking_status_changed"
	errorUnknownAccount     = "unknown_account"
	errorUnknownRoom        = "unknown_room"
	errorUnknownBooking     = "unknown_booking"
	errorUnknownTransaction = "unknown_transaction"
	errorNotFound           = "not_found"
	errorInternal           = "internal_error"
)

type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// errorMappings is ordered: the wrapped Unknown* errors precede ErrNotFound.
var errorMappings = []errorMapping{
	{hotel.ErrRoomNotAvailable, http.StatusConflict, errorRoomNotAvailable, "room is not available for these dates"},
	{hotel.ErrInsufficientFunds, http.StatusUnprocessableEntity, errorInsufficientFunds, "wallet balance is too low"},
	{hotel.ErrIllegalTransition, http.StatusConflict, errorIllegalTransition, "booking cannot move to that status"},
	{hotel.ErrAlreadyCancelled, http.StatusConflict, errorAlreadyCancelled, "booking is already cancelled"},
	{hotel.ErrStatusChanged, http.StatusConflict, errorStatusChanged, "booking changed concurrently, retry"},
	{hotel.ErrForbidden, http.StatusForbidden, errorForbidden, "not allowed"},
	{hotel.ErrUnknownAccount, http.StatusNotFound, errorUnknownAccount, "wallet not found"},
	{hotel.ErrUnknownRoom, http.StatusNotFound, errorUnknownRoom, "room not found"},
	{hotel.ErrUnknownBooking, http.StatusNotFound, errorUnknownBooking, "booking not found"},
	{hotel.ErrUnknownTransaction, http.StatusNotFound, errorUnknownTransaction, "transaction not found"},
	{hotel.ErrNotFound, http.StatusNotFound, errorNotFound, "not found"},
}

var invalidInputErrors = []error{
	hotel.ErrInvalidUserID,
	hotel.ErrInvalidRoomID,
	hotel.ErrInvalidBookingID,
	hotel.ErrInvalidTransactionID,
	hotel.ErrInvalidCurrency,
	hotel.ErrInvalidRoomType,
	hotel.ErrInvalidDate,
	hotel.ErrInvalidRange,
	hotel.ErrInvalidGuests,
	hotel.ErrInvalidBookingStatus,
	hotel.ErrInvalidMethod,
	hotel.ErrInvalidPage,
}

func errorResponse(code string, message string) gin.H {
	return gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	}
}

// respondError maps domain failures to a status and a stable code. Internal failures are logged, not echoed.
func (handler *httpHandler) respondError(ctx *gin.Context, operation string, err error) {
	if errors.Is(err, hotel.ErrAmountOutOfRange) {
		ctx.JSON(http.StatusBadRequest, errorResponse(errorAmountOutOfRange, err.Error()))
		return
	}
	for _, invalid := range invalidInputErrors {
		if errors.Is(err, invalid) {
			ctx.JSON(http.StatusBadRequest, errorResponse(errorInvalidRequest, err.Error()))
			return
		}
	}
	for _, mapping := range errorMappings {
		if errors.Is(err, mapping.target) {
			ctx.JSON(mapping.status, errorResponse(mapping.code, mapping.message))
			return
		}
	}
	handler.logger.Error(operation+" failed", zap.Error(err))
	ctx.JSON(http.StatusInternalServerError, errorResponse(errorInternal, "internal error"))
}
