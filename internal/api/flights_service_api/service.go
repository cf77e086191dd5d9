package flights_service_api

import (
	"context"

	"github.com/Domenick1991/flightdeals/internal/domain"
	"google.golang.org/grpc"
)

const (
	ServiceName = "flightdeals.FlightsService"

	listFlightsMethod = "/" + ServiceName + "/ListFlights"
	getFlightMethod   = "/" + ServiceName + "/GetFlight"
)

type ListFlightsRequest struct {
	From        string `json:"from,omitempty"`
	To          string `json:"to,omitempty"`
	DealQuality string `json:"dealQuality,omitempty"`
}

type ListFlightsResponse struct {
	Flights []domain.Flight `json:"flights"`
}

type GetFlightRequest struct {
	ID string `json:"id"`
}

// GetFlightResponse carries Found=false and no flight for an unknown id.
type GetFlightResponse struct {
	Found  bool           `json:"found"`
	Flight *domain.Flight `json:"flight,omitempty"`
}

type FlightsServiceServer interface {
	ListFlights(ctx context.Context, req *ListFlightsRequest) (*ListFlightsResponse, error)
	GetFlight(ctx context.Context, req *GetFlightRequest) (*GetFlightResponse, error)
}

func RegisterFlightsServiceServer(s grpc.ServiceRegistrar, srv FlightsServiceServer) {
	s.RegisterService(&flightsServiceDesc, srv)
}

var flightsServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*FlightsServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListFlights", Handler: listFlightsHandler},
		{MethodName: "GetFlight", Handler: getFlightHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "flights.proto",
}

func listFlightsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListFlightsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FlightsServiceServer).ListFlights(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: listFlightsMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FlightsServiceServer).ListFlights(ctx, req.(*ListFlightsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func getFlightHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetFlightRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FlightsServiceServer).GetFlight(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: getFlightMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FlightsServiceServer).GetFlight(ctx, req.(*GetFlightRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// FlightsClient calls FlightsService over conn with the JSON codec.
type FlightsClient struct {
	conn grpc.ClientConnInterface
}

func NewFlightsClient(conn grpc.ClientConnInterface) *FlightsClient {
	return &FlightsClient{conn: conn}
}

func (c *FlightsClient) ListFlights(ctx context.Context, req *ListFlightsRequest, opts ...grpc.CallOption) (*ListFlightsResponse, error) {
	out := new(ListFlightsResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.conn.Invoke(ctx, listFlightsMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *FlightsClient) GetFlight(ctx context.Context, req *GetFlightRequest, opts ...grpc.CallOption) (*GetFlightResponse, error) {
	out := new(GetFlightResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.conn.Invoke(ctx, getFlightMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
