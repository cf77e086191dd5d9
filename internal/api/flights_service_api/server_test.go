package flights_service_api

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/Domenick1991/flightdeals/internal/generator"
	"github.com/Domenick1991/flightdeals/internal/repository"
	"github.com/Domenick1991/flightdeals/internal/service/flights"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

func startServer(t *testing.T, svc flights.FlightUseCase) *FlightsClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	RegisterFlightsServiceServer(srv, NewServer(svc))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return NewFlightsClient(conn)
}

func newService(listDelay, getDelay time.Duration) *flights.FlightService {
	catalog := generator.Generate(generator.NewSource(77), time.Now())
	return flights.NewFlightService(repository.NewMemoryFlightRepository(catalog), flights.WithDelays(listDelay, getDelay))
}

func TestServer_ListFlights(t *testing.T) {
	client := startServer(t, newService(0, 0))
	ctx := context.Background()

	all, err := client.ListFlights(ctx, &ListFlightsRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Flights, 21)

	exceptional, err := client.ListFlights(ctx, &ListFlightsRequest{DealQuality: "exceptional"})
	require.NoError(t, err)
	require.Len(t, exceptional.Flights, 7)
	for _, f := range exceptional.Flights {
		assert.Equal(t, "exceptional", string(f.DealQuality))
		assert.Len(t, f.PriceHistory, 7)
	}

	fromKHI, err := client.ListFlights(ctx, &ListFlightsRequest{From: "khi"})
	require.NoError(t, err)
	assert.Len(t, fromKHI.Flights, 15)
}

func TestServer_GetFlight(t *testing.T) {
	client := startServer(t, newService(0, 0))
	ctx := context.Background()

	found, err := client.GetFlight(ctx, &GetFlightRequest{ID: "KHI-DXB-1"})
	require.NoError(t, err)
	assert.True(t, found.Found)
	require.NotNil(t, found.Flight)
	assert.Equal(t, "KHI-DXB-1", found.Flight.ID)

	missing, err := client.GetFlight(ctx, &GetFlightRequest{ID: "nonexistent"})
	require.NoError(t, err)
	assert.False(t, missing.Found)
	assert.Nil(t, missing.Flight)
}

func TestServer_DeadlineExceeded(t *testing.T) {
	client := startServer(t, newService(time.Minute, time.Minute))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.ListFlights(ctx, &ListFlightsRequest{})
	require.Error(t, err)
	assert.Equal(t, codes.DeadlineExceeded, status.Code(err))
}

func TestToStatus(t *testing.T) {
	assert.Equal(t, codes.Canceled, status.Code(toStatus(context.Canceled)))
	assert.Equal(t, codes.Internal, status.Code(toStatus(assert.AnError)))
}

func TestJSONCodec(t *testing.T) {
	var codec jsonCodec
	data, err := codec.Marshal(&GetFlightRequest{ID: "ISB-LHR-1"})
	require.NoError(t, err)

	var got GetFlightRequest
	require.NoError(t, codec.Unmarshal(data, &got))
	assert.Equal(t, "ISB-LHR-1", got.ID)
	assert.Equal(t, "json", codec.Name())
}
