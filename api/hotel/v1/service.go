package hotelv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "hotel.v1.HotelService"

// HotelServiceServer is the server API for hotel.v1.HotelService.
type HotelServiceServer interface {
	CreateBooking(context.Context, *CreateBookingRequest) (*BookingResponse, error)
	CancelBooking(context.Context, *CancelBookingRequest) (*BookingResponse, error)
	UpdateBookingStatus(context.Context, *UpdateBookingStatusRequest) (*BookingResponse, error)
	GetBooking(context.Context, *GetBookingRequest) (*BookingResponse, error)
	ListBookings(context.Context, *ListBookingsRequest) (*ListBookingsResponse, error)
	CompleteForReview(context.Context, *CompleteForReviewRequest) (*BookingResponse, error)
	ListAvailableRooms(context.Context, *ListAvailableRoomsRequest) (*ListAvailableRoomsResponse, error)
	OpenAccount(context.Context, *OpenAccountRequest) (*BalanceResponse, error)
	Deposit(context.Context, *DepositRequest) (*TransactionResponse, error)
	Withdraw(context.Context, *WithdrawRequest) (*TransactionResponse, error)
	GetBalance(context.Context, *GetBalanceRequest) (*BalanceResponse, error)
	ListTransactions(context.Context, *ListTransactionsRequest) (*ListTransactionsResponse, error)
	GetTransaction(context.Context, *GetTransactionRequest) (*TransactionResponse, error)
}

// UnimplementedHotelServiceServer answers every method with codes.Unimplemented.
type UnimplementedHotelServiceServer struct{}

func (UnimplementedHotelServiceServer) CreateBooking(context.Context, *CreateBookingRequest) (*BookingResponse, error) {
	return nil, unimplemented("CreateBooking")
}

func (UnimplementedHotelServiceServer) CancelBooking(context.Context, *CancelBookingRequest) (*BookingResponse, error) {
	return nil, unimplemented("CancelBooking")
}

func (UnimplementedHotelServiceServer) UpdateBookingStatus(context.Context, *UpdateBookingStatusRequest) (*BookingResponse, error) {
	return nil, unimplemented("UpdateBookingStatus")
}

func (UnimplementedHotelServiceServer) GetBooking(context.Context, *GetBookingRequest) (*BookingResponse, error) {
	return nil, unimplemented("GetBooking")
}

func (UnimplementedHotelServiceServer) ListBookings(context.Context, *ListBookingsRequest) (*ListBookingsResponse, error) {
	return nil, unimplemented("ListBookings")
}

func (UnimplementedHotelServiceServer) CompleteForReview(context.Context, *CompleteForReviewRequest) (*BookingResponse, error) {
	return nil, unimplemented("CompleteForReview")
}

func (UnimplementedHotelServiceServer) ListAvailableRooms(context.Context, *ListAvailableRoomsRequest) (*ListAvailableRoomsResponse, error) {
	return nil, unimplemented("ListAvailableRooms")
}

func (UnimplementedHotelServiceServer) OpenAccount(context.Context, *OpenAccountRequest) (*BalanceResponse, error) {
	return nil, unimplemented("OpenAccount")
}

func (UnimplementedHotelServiceServer) Deposit(context.Context, *DepositRequest) (*TransactionResponse, error) {
	return nil, unimplemented("Deposit")
}

func (UnimplementedHotelServiceServer) Withdraw(context.Context, *WithdrawRequest) (*TransactionResponse, error) {
	return nil, unimplemented("Withdraw")
}

func (UnimplementedHotelServiceServer) GetBalance(context.Context, *GetBalanceRequest) (*BalanceResponse, error) {
	return nil, unimplemented("GetBalance")
}

func (UnimplementedHotelServiceServer) ListTransactions(context.Context, *ListTransactionsRequest) (*ListTransactionsResponse, error) {
	return nil, unimplemented("ListTransactions")
}

func (UnimplementedHotelServiceServer) GetTransaction(context.Context, *GetTransactionRequest) (*TransactionResponse, error) {
	return nil, unimplemented("GetTransaction")
}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

// RegisterHotelServiceServer attaches server to registrar.
func RegisterHotelServiceServer(registrar grpc.ServiceRegistrar, server HotelServiceServer) {
	registrar.RegisterService(&HotelServiceDesc, server)
}

// HotelServiceDesc describes hotel.v1.HotelService for grpc.Server.
var HotelServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*HotelServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateBooking", Handler: unaryHandler("CreateBooking", HotelServiceServer.CreateBooking)},
		{MethodName: "CancelBooking", Handler: unaryHandler("CancelBooking", HotelServiceServer.CancelBooking)},
		{MethodName: "UpdateBookingStatus", Handler: unaryHandler("UpdateBookingStatus", HotelServiceServer.UpdateBookingStatus)},
		{MethodName: "GetBooking", Handler: unaryHandler("GetBooking", HotelServiceServer.GetBooking)},
		{MethodName: "ListBookings", Handler: unaryHandler("ListBookings", HotelServiceServer.ListBookings)},
		{MethodName: "CompleteForReview", Handler: unaryHandler("CompleteForReview", HotelServiceServer.CompleteForReview)},
		{MethodName: "ListAvailableRooms", Handler: unaryHandler("ListAvailableRooms", HotelServiceServer.ListAvailableRooms)},
		{MethodName: "OpenAccount", Handler: unaryHandler("OpenAccount", HotelServiceServer.OpenAccount)},
		{MethodName: "Deposit", Handler: unaryHandler("Deposit", HotelServiceServer.Deposit)},
		{MethodName: "Withdraw", Handler: unaryHandler("Withdraw", HotelServiceServer.Withdraw)},
		{MethodName: "GetBalance", Handler: unaryHandler("GetBalance", HotelServiceServer.GetBalance)},
		{MethodName: "ListTransactions", Handler: unaryHandler("ListTransactions", HotelServiceServer.ListTransactions)},
		{MethodName: "GetTransaction", Handler: unaryHandler("GetTransaction", HotelServiceServer.GetTransaction)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "hotel/v1/hotel",
}

func fullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

func unaryHandler[Request any, Response any](method string, call func(HotelServiceServer, context.Context, *Request) (*Response, error)) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(server any, ctx context.Context, decode func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		request := new(Request)
		if err := decode(request); err != nil {
			return nil, err
		}
		typed := server.(HotelServiceServer)
		if interceptor == nil {
			return call(typed, ctx, request)
		}
		info := &grpc.UnaryServerInfo{Server: server, FullMethod: fullMethod(method)}
		handler := func(ctx context.Context, request any) (any, error) {
			return call(typed, ctx, request.(*Request))
		}
		return interceptor(ctx, request, info, handler)
	}
}
