package flights_service_api

import (
	"context"
	"errors"

	"github.com/Domenick1991/flightdeals/internal/domain"
	"github.com/Domenick1991/flightdeals/internal/service/flights"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Server implements FlightsServiceServer on top of the flight use case.
type Server struct {
	flights flights.FlightUseCase
}

func NewServer(flights flights.FlightUseCase) *Server {
	return &Server{flights: flights}
}

func (s *Server) ListFlights(ctx context.Context, req *ListFlightsRequest) (*ListFlightsResponse, error) {
	list, err := s.flights.List(ctx, domain.FlightFilter{
		From:        req.From,
		To:          req.To,
		DealQuality: req.DealQuality,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &ListFlightsResponse{Flights: list}, nil
}

func (s *Server) GetFlight(ctx context.Context, req *GetFlightRequest) (*GetFlightResponse, error) {
	flight, err := s.flights.GetByID(ctx, req.ID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &GetFlightResponse{Found: flight != nil, Flight: flight}, nil
}

func toStatus(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return status.FromContextError(err).Err()
	}
	return status.Error(codes.Internal, err.Error())
}

var _ FlightsServiceServer = (*Server)(nil)
