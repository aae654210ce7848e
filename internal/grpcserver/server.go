package grpcserver

import (
	"context"
	"errors"

	hotelv1 "github.com/MarkoPoloResearchLab/hotel/api/hotel/v1"
	"github.com/MarkoPoloResearchLab/hotel/pkg/hotel"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	errorInvalidUserID        = "invalid_user_id"
	errorInvalidRoomID        = "invalid_room_id"
	errorInvalidBookingID     = "invalid_booking_id"
	errorInvalidTransactionID = "invalid_transaction_id"
	errorInvalidCurrency      = "invalid_currency"
	errorInvalidRoomType      = "invalid_room_type"
	errorInvalidDate          = "invalid_date"
	errorInvalidDateRange     = "invalid_date_range"
	errorInvalidGuests        = "invalid_guests"
	errorInvalidBookingStatus = "invalid_booking_status"
	errorInvalidMethod        = "invalid_payment_method"
	errorInvalidPage          = "invalid_page"
	errorAmountOutOfRange     = "amount_out_of_range"
	errorRoomNotAvailable     = "room_not_available"
	errorInsufficientFunds    = "insufficient_funds"
	errorIllegalTransition    = "illegal_status_transition"
	errorAlreadyCancelled     = "booking_already_cancelled"
	errorStatusChanged        = "booking_status_changed"
	errorForbidden            = "forbidden"
	errorUnknownAccount       = "unknown_account"
	errorUnknownRoom          = "unknown_room"
	errorUnknownBooking       = "unknown_booking"
	errorUnknownTransaction   = "unknown_transaction"
	errorNotFound             = "not_found"
	errorInternal             = "internal_error"
)

// HotelServiceServer exposes bookings and wallets over gRPC.
type HotelServiceServer struct {
	hotelv1.UnimplementedHotelServiceServer
	hotelService *hotel.Service
}

// NewHotelServiceServer constructs a gRPC server for the hotel service.
func NewHotelServiceServer(hotelService *hotel.Service) *HotelServiceServer {
	return &HotelServiceServer{hotelService: hotelService}
}

func (service *HotelServiceServer) CreateBooking(ctx context.Context, request *hotelv1.CreateBookingRequest) (*hotelv1.BookingResponse, error) {
	userID, err := hotel.NewUserID(request.UserID)
	if err != nil {
		return nil, mapToGRPCError(err)
	}
	roomID, err := hotel.NewRoomID(request.RoomID)
	if err != nil {
		return nil, mapToGRPCError(err)
	}
	stay, err := hotel.ParseDateRange(request.CheckIn, request.CheckOut)
	if err != nil {
		return nil, mapToGRPCError(err)
	}
	detail, operationError := service.hotelService.CreateBooking(ctx, hotel.CreateBookingRequest{
		UserID:          userID,
		RoomID:          roomID,
		Stay:            stay,
		Guests:          int(request.Guests),
		SpecialRequests: request.SpecialRequests,
	})
	if operationError != nil {
		return nil, mapToGRPCError(operationError)
	}
	return &hotelv1.BookingResponse{Booking: hotelv1.NewBookingDetail(detail)}, nil
}

func (service *HotelServiceServer) CancelBooking(ctx context.Context, request *hotelv1.CancelBookingRequest) (*hotelv1.BookingResponse, error) {
	userID, err := hotel.NewUserID(request.UserID)
	if err != nil {
		return nil, mapToGRPCError(err)
	}
	bookingID, err := hotel.NewBookingID(request.BookingID)
	if err != nil {
		return nil, mapToGRPCError(err)
	}
	detail, operationError := service.hotelService.CancelBooking(ctx, bookingID, userID, request.Reason)
	if operationError != nil {
		return nil, mapToGRPCError(operationError)
	}
	return &hotelv1.BookingResponse{Booking: hotelv1.NewBookingDetail(detail)}, nil
}

func (service *HotelServiceServer) UpdateBookingStatus(ctx context.Context, request *hotelv1.UpdateBookingStatusRequest) (*hotelv1.BookingResponse, error) {
	actorID, err := hotel.NewUserID(request.ActorID)
	if err != nil {
		return nil, mapToGRPCError(err)
	}
	bookingID, err := hotel.NewBookingID(request.BookingID)
	if err != nil {
		return nil, mapToGRPCError(err)
	}
	newStatus, err := hotel.ParseBookingStatus(request.Status)
	if err != nil {
		return nil, mapToGRPCError(err)
	}
	detail, operationError := service.hotelService.UpdateBookingStatus(ctx, bookingID, newStatus, actorID, request.Reason)
	if operationError != nil {
		return nil, mapToGRPCError(operationError)
	}
	return &hotelv1.BookingResponse{Booking: hotelv1.NewBookingDetail(detail)}, nil
}

func (service *HotelServiceServer) GetBooking(ctx context.Context, request *hotelv1.GetBookingRequest) (*hotelv1.BookingResponse, error) {
	userID, err := hotel.NewUserID(request.UserID)
	if err != nil {
		return nil, mapToGRPCError(err)
	}
	bookingID, err := hotel.NewBookingID(request.BookingID)
	if err != nil {
		return nil, mapToGRPCError(err)
	}
	detail, operationError := service.hotelService.GetBooking(ctx, bookingID, userID)
	if operationError != nil {
		return nil, mapToGRPCError(operationError)
	}
	return &hotelv1.BookingResponse{Booking: hotelv1.NewBookingDetail(detail)}, nil
}

func (service *HotelServiceServer) CompleteForReview(ctx context.Context, request *hotelv1.CompleteForReviewRequest) (*hotelv1.BookingResponse, error) {
	userID, err := hotel.NewUserID(request.UserID)
	if err != nil {
		return nil, mapToGRPCError(err)
	}
	bookingID, err := hotel.NewBookingID(request.BookingID)
	if err != nil {
		return nil, mapToGRPCError(err)
	}
	detail, operationError := service.hotelService.CompleteForReview(ctx, bookingID, userID)
	if operationError != nil {
		return nil, mapToGRPCError(operationError)
	}
	return &hotelv1.BookingResponse{Booking: hotelv1.NewBookingDetail(detail)}, nil
}

func (service *HotelServiceServer) ListBookings(ctx context.Context, request *hotelv1.ListBookingsRequest) (*hotelv1.ListBookingsResponse, error) {
	userID, err := hotel.NewUserID(request.UserID)
	if err != nil {
		return nil, mapToGRPCError(err)
	}
	page, err := normalizePage(request.Page, request.PageSize)
	if err != nil {
		return nil, mapToGRPCError(err)
	}
	bookings, operationError := service.hotelService.ListBookings(ctx, userID, page)
	if operationError != nil {
		return nil, mapToGRPCError(operationError)
	}
	response := &hotelv1.ListBookingsResponse{Bookings: make([]*hotelv1.Booking, 0, len(bookings))}
	for _, booking := range bookings {
		response.Bookings = append(response.Bookings, hotelv1.NewBooking(booking))
	}
	return response, nil
}

func (service *HotelServiceServer) ListAvailableRooms(ctx context.Context, request *hotelv1.ListAvailableRoomsRequest) (*hotelv1.ListAvailableRoomsResponse, error) {
	var query hotel.RoomQuery
	if request.CheckIn != "" || request.CheckOut != "" {
		stay, err := hotel.ParseDateRange(request.CheckIn, request.CheckOut)
		if err != nil {
			return nil, mapToGRPCError(err)
		}
		query.Stay = stay
	}
	if request.Type != "" {
		roomType, err := hotel.ParseRoomType(request.Type)
		if err != nil {
			return nil, mapToGRPCError(err)
		}
		query.Type = roomType
	}
	if request.MinCapacity < 0 {
		return nil, status.Error(codes.InvalidArgument, errorInvalidGuests)
	}
	query.MinCapacity = int(request.MinCapacity)
	rooms, operationError := service.hotelService.ListAvailableRooms(ctx, query)
	if operationError != nil {
		return nil, mapToGRPCError(operationError)
	}
	response := &hotelv1.ListAvailableRoomsResponse{Rooms: make([]*hotelv1.Room, 0, len(rooms))}
	for _, room := range rooms {
		response.Rooms = append(response.Rooms, hotelv1.NewRoom(room))
	}
	return response, nil
}

func (service *HotelServiceServer) OpenAccount(ctx context.Context, request *hotelv1.OpenAccountRequest) (*hotelv1.BalanceResponse, error) {
	userID, err := hotel.NewUserID(request.UserID)
	if err != nil {
		return nil, mapToGRPCError(err)
	}
	currency, err := optionalCurrency(request.Currency)
	if err != nil {
		return nil, mapToGRPCError(err)
	}
	account, operationError := service.hotelService.OpenAccount(ctx, userID, currency)
	if operationError != nil {
		return nil, mapToGRPCError(operationError)
	}
	return &hotelv1.BalanceResponse{
		UserID:   account.UserID.String(),
		Balance:  hotelv1.FormatAmount(account.Balance),
		Currency: account.Currency.String(),
	}, nil
}

func (service *HotelServiceServer) Deposit(ctx context.Context, request *hotelv1.DepositRequest) (*hotelv1.TransactionResponse, error) {
	userID, err := hotel.NewUserID(request.UserID)
	if err != nil {
		return nil, mapToGRPCError(err)
	}
	amount, err := hotel.ParsePositiveAmount(request.Amount)
	if err != nil {
		return nil, mapToGRPCError(err)
	}
	currency, err := optionalCurrency(request.Currency)
	if err != nil {
		return nil, mapToGRPCError(err)
	}
	transaction, operationError := service.hotelService.Deposit(ctx, hotel.DepositRequest{
		UserID:        userID,
		Amount:        amount,
		Currency:      currency,
		PaymentMethod: request.PaymentMethod,
		Description:   request.Description,
	})
	if operationError != nil {
		return nil, mapToGRPCError(operationError)
	}
	return &hotelv1.TransactionResponse{Transaction: hotelv1.NewTransaction(transaction)}, nil
}

func (service *HotelServiceServer) Withdraw(ctx context.Context, request *hotelv1.WithdrawRequest) (*hotelv1.TransactionResponse, error) {
	userID, err := hotel.NewUserID(request.UserID)
	if err != nil {
		return nil, mapToGRPCError(err)
	}
	amount, err := hotel.ParsePositiveAmount(request.Amount)
	if err != nil {
		return nil, mapToGRPCError(err)
	}
	currency, err := optionalCurrency(request.Currency)
	if err != nil {
		return nil, mapToGRPCError(err)
	}
	transaction, operationError := service.hotelService.Withdraw(ctx, hotel.WithdrawRequest{
		UserID:           userID,
		Amount:           amount,
		Currency:         currency,
		WithdrawalMethod: request.WithdrawalMethod,
		Details:          request.Details,
		Description:      request.Description,
	})
	if operationError != nil {
		return nil, mapToGRPCError(operationError)
	}
	return &hotelv1.TransactionResponse{Transaction: hotelv1.NewTransaction(transaction)}, nil
}

func (service *HotelServiceServer) GetBalance(ctx context.Context, request *hotelv1.GetBalanceRequest) (*hotelv1.BalanceResponse, error) {
	userID, err := hotel.NewUserID(request.UserID)
	if err != nil {
		return nil, mapToGRPCError(err)
	}
	balance, operationError := service.hotelService.Balance(ctx, userID)
	if operationError != nil {
		return nil, mapToGRPCError(operationError)
	}
	return &hotelv1.BalanceResponse{
		UserID:   userID.String(),
		Balance:  hotelv1.FormatAmount(balance.Amount),
		Currency: balance.Currency.String(),
	}, nil
}

func (service *HotelServiceServer) ListTransactions(ctx context.Context, request *hotelv1.ListTransactionsRequest) (*hotelv1.ListTransactionsResponse, error) {
	userID, err := hotel.NewUserID(request.UserID)
	if err != nil {
		return nil, mapToGRPCError(err)
	}
	page, err := normalizePage(request.Page, request.PageSize)
	if err != nil {
		return nil, mapToGRPCError(err)
	}
	transactions, operationError := service.hotelService.TransactionHistory(ctx, userID, page)
	if operationError != nil {
		return nil, mapToGRPCError(operationError)
	}
	response := &hotelv1.ListTransactionsResponse{Transactions: make([]*hotelv1.Transaction, 0, len(transactions))}
	for _, transaction := range transactions {
		response.Transactions = append(response.Transactions, hotelv1.NewTransaction(transaction))
	}
	return response, nil
}

func (service *HotelServiceServer) GetTransaction(ctx context.Context, request *hotelv1.GetTransactionRequest) (*hotelv1.TransactionResponse, error) {
	userID, err := hotel.NewUserID(request.UserID)
	if err != nil {
		return nil, mapToGRPCError(err)
	}
	transactionID, err := hotel.NewTransactionID(request.TransactionID)
	if err != nil {
		return nil, mapToGRPCError(err)
	}
	transaction, operationError := service.hotelService.Transaction(ctx, userID, transactionID)
	if operationError != nil {
		return nil, mapToGRPCError(operationError)
	}
	return &hotelv1.TransactionResponse{Transaction: hotelv1.NewTransaction(transaction)}, nil
}

// normalizePage maps a zero size to the default page size.
func normalizePage(number int32, size int32) (hotel.Page, error) {
	return hotel.NewPage(int(number), int(size))
}

func optionalCurrency(raw string) (hotel.Currency, error) {
	if raw == "" {
		return "", nil
	}
	return hotel.ParseCurrency(raw)
}

type errorMapping struct {
	target  error
	code    codes.Code
	message string
}

// errorMappings is ordered: the wrapped Unknown* errors precede ErrNotFound.
var errorMappings = []errorMapping{
	{hotel.ErrInvalidUserID, codes.InvalidArgument, errorInvalidUserID},
	{hotel.ErrInvalidRoomID, codes.InvalidArgument, errorInvalidRoomID},
	{hotel.ErrInvalidBookingID, codes.InvalidArgument, errorInvalidBookingID},
	{hotel.ErrInvalidTransactionID, codes.InvalidArgument, errorInvalidTransactionID},
	{hotel.ErrInvalidCurrency, codes.InvalidArgument, errorInvalidCurrency},
	{hotel.ErrInvalidRoomType, codes.InvalidArgument, errorInvalidRoomType},
	{hotel.ErrInvalidDate, codes.InvalidArgument, errorInvalidDate},
	{hotel.ErrInvalidRange, codes.InvalidArgument, errorInvalidDateRange},
	{hotel.ErrInvalidGuests, codes.InvalidArgument, errorInvalidGuests},
	{hotel.ErrInvalidBookingStatus, codes.InvalidArgument, errorInvalidBookingStatus},
	{hotel.ErrInvalidMethod, codes.InvalidArgument, errorInvalidMethod},
	{hotel.ErrInvalidPage, codes.InvalidArgument, errorInvalidPage},
	{hotel.ErrAmountOutOfRange, codes.InvalidArgument, errorAmountOutOfRange},
	{hotel.ErrRoomNotAvailable, codes.FailedPrecondition, errorRoomNotAvailable},
	{hotel.ErrInsufficientFunds, codes.FailedPrecondition, errorInsufficientFunds},
	{hotel.ErrIllegalTransition, codes.FailedPrecondition, errorIllegalTransition},
	{hotel.ErrAlreadyCancelled, codes.FailedPrecondition, errorAlreadyCancelled},
	{hotel.ErrStatusChanged, codes.Aborted, errorStatusChanged},
	{hotel.ErrForbidden, codes.PermissionDenied, errorForbidden},
	{hotel.ErrUnknownAccount, codes.NotFound, errorUnknownAccount},
	{hotel.ErrUnknownRoom, codes.NotFound, errorUnknownRoom},
	{hotel.ErrUnknownBooking, codes.NotFound, errorUnknownBooking},
	{hotel.ErrUnknownTransaction, codes.NotFound, errorUnknownTransaction},
	{hotel.ErrNotFound, codes.NotFound, errorNotFound},
}

func mapToGRPCError(source error) error {
	for _, mapping := range errorMappings {
		if errors.Is(source, mapping.target) {
			return status.Error(mapping.code, mapping.message)
		}
	}
	return status.Error(codes.Internal, errorInternal)
}
