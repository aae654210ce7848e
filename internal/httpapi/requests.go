package httpapi

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type availabilityQuery struct {
	CheckIn     string `form:"check_in" validate:"omitempty,datetime=2006-01-02"`
	CheckOut    string `form:"check_out" validate:"omitempty,datetime=2006-01-02"`
	Type        string `form:"type" validate:"omitempty,max=16"`
	MinCapacity int    `form:"min_capacity" validate:"min=0"`
}

type pageQuery struct {
	Page int `form:"page" validate:"min=0"`
	Size int `form:"size" validate:"min=0,max=100"`
}

type openWalletRequest struct {
	Currency string `json:"currency" validate:"omitempty,len=3"`
}

type depositRequest struct {
	Amount        string `json:"amount" validate:"required,numeric"`
	Currency      string `json:"currency" validate:"omitempty,len=3"`
	PaymentMethod string `json:"payment_method" validate:"max=32"`
	Description   string `json:"description" validate:"max=255"`
}

type withdrawRequest struct {
	Amount           string `json:"amount" validate:"required,numeric"`
	Currency         string `json:"currency" validate:"omitempty,len=3"`
	WithdrawalMethod string `json:"withdrawal_method" validate:"required,max=32"`
	Details          string `json:"details" validate:"max=500"`
	Description      string `json:"description" validate:"max=255"`
}

type createBookingRequest struct {
	RoomID          string `json:"room_id" validate:"required,max=64"`
	CheckIn         string `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut        string `json:"check_out" validate:"required,datetime=2006-01-02"`
	Guests          int    `json:"guests" validate:"required,min=1"`
	SpecialRequests string `json:"special_requests" validate:"max=1000"`
}

type cancelBookingRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING CONFIRMED CHECKED_IN COMPLETED CANCELLED"`
	Reason string `json:"reason" validate:"max=500"`
}

// describeValidation renders validator failures as "field: rule" pairs.
func describeValidation(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	messages := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		messages = append(messages, fmt.Sprintf("%s: %s", fieldError.Field(), describeRule(fieldError)))
	}
	return strings.Join(messages, "; ")
}

func describeRule(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fieldError.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fieldError.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fieldError.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fieldError.Param(), " ", ", "))
	case "datetime":
		return "must be a YYYY-MM-DD date"
	case "numeric":
		return "must be a decimal number"
	default:
		return fmt.Sprintf("failed %s", fieldError.Tag())
	}
}
