package httpapi

import (
	"errors"
	"io"
	"net/http"

	hotelv1 "github.com/MarkoPoloResearchLab/hotel/api/hotel/v1"
	"github.com/MarkoPoloResearchLab/hotel/pkg/hotel"
	"github.com/gin-gonic/gin"
)

func (handler *httpHandler) handleAvailableRooms(ctx *gin.Context) {
	var query availabilityQuery
	if !handler.bindQuery(ctx, &query) {
		return
	}
	roomQuery := hotel.RoomQuery{MinCapacity: query.MinCapacity}
	if query.CheckIn != "" || query.CheckOut != "" {
		stay, err := hotel.ParseDateRange(query.CheckIn, query.CheckOut)
		if err != nil {
			handler.respondError(ctx, "list available rooms", err)
			return
		}
		roomQuery.Stay = stay
	}
	if query.Type != "" {
		roomType, err := hotel.ParseRoomType(query.Type)
		if err != nil {
			handler.respondError(ctx, "list available rooms", err)
			return
		}
		roomQuery.Type = roomType
	}
	requestCtx, cancel := handler.requestContext(ctx)
	defer cancel()
	rooms, err := handler.hotelService.ListAvailableRooms(requestCtx, roomQuery)
	if err != nil {
		handler.respondError(ctx, "list available rooms", err)
		return
	}
	payload := make([]*hotelv1.Room, 0, len(rooms))
	for _, room := range rooms {
		payload = append(payload, hotelv1.NewRoom(room))
	}
	ctx.JSON(http.StatusOK, gin.H{"rooms": payload})
}

func (handler *httpHandler) handleOpenWallet(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	var request openWalletRequest
	if !handler.bindOptionalJSON(ctx, &request) {
		return
	}
	var currency hotel.Currency
	if request.Currency != "" {
		parsed, err := hotel.ParseCurrency(request.Currency)
		if err != nil {
			handler.respondError(ctx, "open wallet", err)
			return
		}
		currency = parsed
	}
	requestCtx, cancel := handler.requestContext(ctx)
	defer cancel()
	account, err := handler.hotelService.OpenAccount(requestCtx, userID, currency)
	if err != nil {
		handler.respondError(ctx, "open wallet", err)
		return
	}
	ctx.JSON(http.StatusOK, walletPayload(account.UserID, hotelv1.FormatAmount(account.Balance), account.Currency))
}

func (handler *httpHandler) handleBalance(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	requestCtx, cancel := handler.requestContext(ctx)
	defer cancel()
	balance, err := handler.hotelService.Balance(requestCtx, userID)
	if err != nil {
		handler.respondError(ctx, "get balance", err)
		return
	}
	ctx.JSON(http.StatusOK, walletPayload(userID, hotelv1.FormatAmount(balance.Amount), balance.Currency))
}

func (handler *httpHandler) handleDeposit(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	var request depositRequest
	if !handler.bindJSON(ctx, &request) {
		return
	}
	amount, currency, err := parseMoney(request.Amount, request.Currency)
	if err != nil {
		handler.respondError(ctx, "deposit", err)
		return
	}
	requestCtx, cancel := handler.requestContext(ctx)
	defer cancel()
	transaction, err := handler.hotelService.Deposit(requestCtx, hotel.DepositRequest{
		UserID:        userID,
		Amount:        amount,
		Currency:      currency,
		PaymentMethod: request.PaymentMethod,
		Description:   request.Description,
	})
	if err != nil {
		handler.respondError(ctx, "deposit", err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"transaction": hotelv1.NewTransaction(transaction)})
}

func (handler *httpHandler) handleWithdraw(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	var request withdrawRequest
	if !handler.bindJSON(ctx, &request) {
		return
	}
	amount, currency, err := parseMoney(request.Amount, request.Currency)
	if err != nil {
		handler.respondError(ctx, "withdraw", err)
		return
	}
	requestCtx, cancel := handler.requestContext(ctx)
	defer cancel()
	transaction, err := handler.hotelService.Withdraw(requestCtx, hotel.WithdrawRequest{
		UserID:           userID,
		Amount:           amount,
		Currency:         currency,
		WithdrawalMethod: request.WithdrawalMethod,
		Details:          request.Details,
		Description:      request.Description,
	})
	if err != nil {
		handler.respondError(ctx, "withdraw", err)
		return
	}
	ctx.JSON(http.StatusAccepted, gin.H{"transaction": hotelv1.NewTransaction(transaction)})
}

func (handler *httpHandler) handleTransactions(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	page, ok := handler.bindPage(ctx)
	if !ok {
		return
	}
	requestCtx, cancel := handler.requestContext(ctx)
	defer cancel()
	transactions, err := handler.hotelService.TransactionHistory(requestCtx, userID, page)
	if err != nil {
		handler.respondError(ctx, "list transactions", err)
		return
	}
	payload := make([]*hotelv1.Transaction, 0, len(transactions))
	for _, transaction := range transactions {
		payload = append(payload, hotelv1.NewTransaction(transaction))
	}
	ctx.JSON(http.StatusOK, gin.H{"transactions": payload, "page": page.Number(), "size": page.Limit()})
}

func (handler *httpHandler) handleTransaction(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	transactionID, err := hotel.NewTransactionID(ctx.Param("id"))
	if err != nil {
		handler.respondError(ctx, "get transaction", err)
		return
	}
	requestCtx, cancel := handler.requestContext(ctx)
	defer cancel()
	transaction, err := handler.hotelService.Transaction(requestCtx, userID, transactionID)
	if err != nil {
		handler.respondError(ctx, "get transaction", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"transaction": hotelv1.NewTransaction(transaction)})
}

func (handler *httpHandler) handleCreateBooking(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	var request createBookingRequest
	if !handler.bindJSON(ctx, &request) {
		return
	}
	roomID, err := hotel.NewRoomID(request.RoomID)
	if err != nil {
		handler.respondError(ctx, "create booking", err)
		return
	}
	stay, err := hotel.ParseDateRange(request.CheckIn, request.CheckOut)
	if err != nil {
		handler.respondError(ctx, "create booking", err)
		return
	}
	requestCtx, cancel := handler.requestContext(ctx)
	defer cancel()
	detail, err := handler.hotelService.CreateBooking(requestCtx, hotel.CreateBookingRequest{
		UserID:          userID,
		RoomID:          roomID,
		Stay:            stay,
		Guests:          request.Guests,
		SpecialRequests: request.SpecialRequests,
	})
	if err != nil {
		handler.respondError(ctx, "create booking", err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"booking": hotelv1.NewBookingDetail(detail)})
}

func (handler *httpHandler) handleListBookings(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	page, ok := handler.bindPage(ctx)
	if !ok {
		return
	}
	requestCtx, cancel := handler.requestContext(ctx)
	defer cancel()
	bookings, err := handler.hotelService.ListBookings(requestCtx, userID, page)
	if err != nil {
		handler.respondError(ctx, "list bookings", err)
		return
	}
	payload := make([]*hotelv1.Booking, 0, len(bookings))
	for _, booking := range bookings {
		payload = append(payload, hotelv1.NewBooking(booking))
	}
	ctx.JSON(http.StatusOK, gin.H{"bookings": payload, "page": page.Number(), "size": page.Limit()})
}

func (handler *httpHandler) handleGetBooking(ctx *gin.Context) {
	userID, bookingID, ok := handler.bookingTarget(ctx, "get booking")
	if !ok {
		return
	}
	requestCtx, cancel := handler.requestContext(ctx)
	defer cancel()
	detail, err := handler.hotelService.GetBooking(requestCtx, bookingID, userID)
	if err != nil {
		handler.respondError(ctx, "get booking", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"booking": hotelv1.NewBookingDetail(detail)})
}

func (handler *httpHandler) handleCancelBooking(ctx *gin.Context) {
	userID, bookingID, ok := handler.bookingTarget(ctx, "cancel booking")
	if !ok {
		return
	}
	var request cancelBookingRequest
	if !handler.bindOptionalJSON(ctx, &request) {
		return
	}
	requestCtx, cancel := handler.requestContext(ctx)
	defer cancel()
	detail, err := handler.hotelService.CancelBooking(requestCtx, bookingID, userID, request.Reason)
	if err != nil {
		handler.respondError(ctx, "cancel booking", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"booking": hotelv1.NewBookingDetail(detail)})
}

func (handler *httpHandler) handleCompleteBooking(ctx *gin.Context) {
	userID, bookingID, ok := handler.bookingTarget(ctx, "complete booking")
	if !ok {
		return
	}
	requestCtx, cancel := handler.requestContext(ctx)
	defer cancel()
	detail, err := handler.hotelService.CompleteForReview(requestCtx, bookingID, userID)
	if err != nil {
		handler.respondError(ctx, "complete booking", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"booking": hotelv1.NewBookingDetail(detail)})
}

func (handler *httpHandler) handleUpdateStatus(ctx *gin.Context) {
	actorID, bookingID, ok := handler.bookingTarget(ctx, "update booking status")
	if !ok {
		return
	}
	var request updateStatusRequest
	if !handler.bindJSON(ctx, &request) {
		return
	}
	newStatus, err := hotel.ParseBookingStatus(request.Status)
	if err != nil {
		handler.respondError(ctx, "update booking status", err)
		return
	}
	requestCtx, cancel := handler.requestContext(ctx)
	defer cancel()
	detail, err := handler.hotelService.UpdateBookingStatus(requestCtx, bookingID, newStatus, actorID, request.Reason)
	if err != nil {
		handler.respondError(ctx, "update booking status", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"booking": hotelv1.NewBookingDetail(detail)})
}

func (handler *httpHandler) bookingTarget(ctx *gin.Context, operation string) (hotel.UserID, hotel.BookingID, bool) {
	userID, ok := callerID(ctx)
	if !ok {
		return hotel.UserID{}, hotel.BookingID{}, false
	}
	bookingID, err := hotel.NewBookingID(ctx.Param("id"))
	if err != nil {
		handler.respondError(ctx, operation, err)
		return hotel.UserID{}, hotel.BookingID{}, false
	}
	return userID, bookingID, true
}

func (handler *httpHandler) bindJSON(ctx *gin.Context, request any) bool {
	if err := ctx.ShouldBindJSON(request); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(errorInvalidPayload, "expected JSON body"))
		return false
	}
	return handler.validateRequest(ctx, request)
}

// bindOptionalJSON accepts an empty body.
func (handler *httpHandler) bindOptionalJSON(ctx *gin.Context, request any) bool {
	if err := ctx.ShouldBindJSON(request); err != nil && !errors.Is(err, io.EOF) {
		ctx.JSON(http.StatusBadRequest, errorResponse(errorInvalidPayload, "expected JSON body"))
		return false
	}
	return handler.validateRequest(ctx, request)
}

func (handler *httpHandler) bindQuery(ctx *gin.Context, query any) bool {
	if err := ctx.ShouldBindQuery(query); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(errorInvalidRequest, err.Error()))
		return false
	}
	return handler.validateRequest(ctx, query)
}

func (handler *httpHandler) bindPage(ctx *gin.Context) (hotel.Page, bool) {
	var query pageQuery
	if !handler.bindQuery(ctx, &query) {
		return hotel.Page{}, false
	}
	page, err := hotel.NewPage(query.Page, query.Size)
	if err != nil {
		handler.respondError(ctx, "page", err)
		return hotel.Page{}, false
	}
	return page, true
}

func (handler *httpHandler) validateRequest(ctx *gin.Context, request any) bool {
	if err := handler.validate.Struct(request); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(errorInvalidRequest, describeValidation(err)))
		return false
	}
	return true
}

func parseMoney(rawAmount string, rawCurrency string) (hotel.PositiveAmount, hotel.Currency, error) {
	amount, err := hotel.ParsePositiveAmount(rawAmount)
	if err != nil {
		return hotel.PositiveAmount{}, "", err
	}
	if rawCurrency == "" {
		return amount, "", nil
	}
	currency, err := hotel.ParseCurrency(rawCurrency)
	if err != nil {
		return hotel.PositiveAmount{}, "", err
	}
	return amount, currency, nil
}

func walletPayload(userID hotel.UserID, balance string, currency hotel.Currency) gin.H {
	return gin.H{
		"wallet": hotelv1.BalanceResponse{
			UserID:   userID.String(),
			Balance:  balance,
			Currency: currency.String(),
		},
	}
}
