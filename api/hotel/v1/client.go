package hotelv1

import (
	"context"

	"google.golang.org/grpc"
)

// HotelServiceClient calls hotel.v1.HotelService over conn using the JSON codec.
type HotelServiceClient struct {
	conn grpc.ClientConnInterface
}

// NewHotelServiceClient wraps conn.
func NewHotelServiceClient(conn grpc.ClientConnInterface) *HotelServiceClient {
	return &HotelServiceClient{conn: conn}
}

func (client *HotelServiceClient) CreateBooking(ctx context.Context, request *CreateBookingRequest, options ...grpc.CallOption) (*BookingResponse, error) {
	return invoke[BookingResponse](ctx, client.conn, "CreateBooking", request, options)
}

func (client *HotelServiceClient) CancelBooking(ctx context.Context, request *CancelBookingRequest, options ...grpc.CallOption) (*BookingResponse, error) {
	return invoke[BookingResponse](ctx, client.conn, "CancelBooking", request, options)
}

func (client *HotelServiceClient) UpdateBookingStatus(ctx context.Context, request *UpdateBookingStatusRequest, options ...grpc.CallOption) (*BookingResponse, error) {
	return invoke[BookingResponse](ctx, client.conn, "UpdateBookingStatus", request, options)
}

func (client *HotelServiceClient) GetBooking(ctx context.Context, request *GetBookingRequest, options ...grpc.CallOption) (*BookingResponse, error) {
	return invoke[BookingResponse](ctx, client.conn, "GetBooking", request, options)
}

func (client *HotelServiceClient) ListBookings(ctx context.Context, request *ListBookingsRequest, options ...grpc.CallOption) (*ListBookingsResponse, error) {
	return invoke[ListBookingsResponse](ctx, client.conn, "ListBookings", request, options)
}

func (client *HotelServiceClient) CompleteForReview(ctx context.Context, request *CompleteForReviewRequest, options ...grpc.CallOption) (*BookingResponse, error) {
	return invoke[BookingResponse](ctx, client.conn, "CompleteForReview", request, options)
}

func (client *HotelServiceClient) ListAvailableRooms(ctx context.Context, request *ListAvailableRoomsRequest, options ...grpc.CallOption) (*ListAvailableRoomsResponse, error) {
	return invoke[ListAvailableRoomsResponse](ctx, client.conn, "ListAvailableRooms", request, options)
}

func (client *HotelServiceClient) OpenAccount(ctx context.Context, request *OpenAccountRequest, options ...grpc.CallOption) (*BalanceResponse, error) {
	return invoke[BalanceResponse](ctx, client.conn, "OpenAccount", request, options)
}

func (client *HotelServiceClient) Deposit(ctx context.Context, request *DepositRequest, options ...grpc.CallOption) (*TransactionResponse, error) {
	return invoke[TransactionResponse](ctx, client.conn, "Deposit", request, options)
}

func (client *HotelServiceClient) Withdraw(ctx context.Context, request *WithdrawRequest, options ...grpc.CallOption) (*TransactionResponse, error) {
	return invoke[TransactionResponse](ctx, client.conn, "Withdraw", request, options)
}

func (client *HotelServiceClient) GetBalance(ctx context.Context, request *GetBalanceRequest, options ...grpc.CallOption) (*BalanceResponse, error) {
	return invoke[BalanceResponse](ctx, client.conn, "GetBalance", request, options)
}

func (client *HotelServiceClient) ListTransactions(ctx context.Context, request *ListTransactionsRequest, options ...grpc.CallOption) (*ListTransactionsResponse, error) {
	return invoke[ListTransactionsResponse](ctx, client.conn, "ListTransactions", request, options)
}

func (client *HotelServiceClient) GetTransaction(ctx context.Context, request *GetTransactionRequest, options ...grpc.CallOption) (*TransactionResponse, error) {
	return invoke[TransactionResponse](ctx, client.conn, "GetTransaction", request, options)
}

func invoke[Response any](ctx context.Context, conn grpc.ClientConnInterface, method string, request any, options []grpc.CallOption) (*Response, error) {
	response := new(Response)
	callOptions := append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, options...)
	if err := conn.Invoke(ctx, fullMethod(method), request, response, callOptions...); err != nil {
		return nil, err
	}
	return response, nil
}
