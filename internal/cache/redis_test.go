package cache

import (
	"context"
	"testing"
	"time"

	"github.com/Domenick1991/flightdeals/config"
	"github.com/Domenick1991/flightdeals/internal/domain"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, mr *miniredis.Miniredis, version string) *RedisCache {
	t.Helper()
	c := NewRedisCache(config.RedisConfig{Addr: mr.Addr()}, time.Minute, version)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func sampleFlights() []domain.Flight {
	return []domain.Flight{
		{ID: "KHI-DXB-1", OriginCode: "KHI", DestCode: "DXB", Price: 222, OriginalPrice: 370, DealQuality: domain.DealQualityExceptional},
		{ID: "KHI-DXB-2", OriginCode: "KHI", DestCode: "DXB", Price: 300, OriginalPrice: 400, DealQuality: domain.DealQualityGreat},
	}
}

func TestNewRedisCache(t *testing.T) {
	c := NewRedisCache(config.RedisConfig{Addr: "localhost:6379"}, time.Minute, "v1")
	assert.NotNil(t, c)
	assert.NoError(t, c.Close())
}

func TestFlightsKey(t *testing.T) {
	tests := []struct {
		name   string
		filter domain.FlightFilter
		want   string
	}{
		{"empty", domain.FlightFilter{}, "cache:flights:v1:from=:to=:quality="},
		{"all sentinel", domain.FlightFilter{DealQuality: "all"}, "cache:flights:v1:from=:to=:quality="},
		{"case folded", domain.FlightFilter{From: "KHI", To: "dXb"}, "cache:flights:v1:from=khi:to=dxb:quality="},
		{"escaped", domain.FlightFilter{From: "k:h"}, "cache:flights:v1:from=k%3Ah:to=:quality="},
		{"quality", domain.FlightFilter{DealQuality: "great"}, "cache:flights:v1:from=:to=:quality=great"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, flightsKey("v1", tt.filter))
		})
	}
}

func TestFlightsKey_EquivalentFiltersShareKey(t *testing.T) {
	assert.Equal(t,
		flightsKey("v1", domain.FlightFilter{From: "khi", DealQuality: "all"}),
		flightsKey("v1", domain.FlightFilter{From: "KHI"}),
	)
}

func TestFlightsKey_VersionSeparatesCatalogs(t *testing.T) {
	filter := domain.FlightFilter{From: "KHI"}
	assert.NotEqual(t, flightsKey("v1", filter), flightsKey("v2", filter))
}

func TestRedisCache_GetFlights_Miss(t *testing.T) {
	mr := miniredis.RunT(t)
	c := newTestCache(t, mr, "v1")

	flights, err := c.GetFlights(context.Background(), domain.FlightFilter{From: "KHI"})
	require.NoError(t, err)
	assert.Nil(t, flights)
}

func TestRedisCache_SetThenGet(t *testing.T) {
	mr := miniredis.RunT(t)
	c := newTestCache(t, mr, "v1")
	ctx := context.Background()

	require.NoError(t, c.SetFlights(ctx, domain.FlightFilter{From: "KHI"}, sampleFlights()))

	got, err := c.GetFlights(ctx, domain.FlightFilter{From: "khi", DealQuality: "all"})
	require.NoError(t, err)
	assert.Equal(t, sampleFlights(), got)

	assert.True(t, mr.Exists("cache:flights:v1:from=khi:to=:quality="))
	assert.Equal(t, time.Minute, mr.TTL("cache:flights:v1:from=khi:to=:quality="))
}

func TestRedisCache_EmptyResultIsHit(t *testing.T) {
	mr := miniredis.RunT(t)
	c := newTestCache(t, mr, "v1")
	ctx := context.Background()

	require.NoError(t, c.SetFlights(ctx, domain.FlightFilter{From: "zzz"}, []domain.Flight{}))

	got, err := c.GetFlights(ctx, domain.FlightFilter{From: "zzz"})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRedisCache_GetFlights_CorruptPayload(t *testing.T) {
	mr := miniredis.RunT(t)
	c := newTestCache(t, mr, "v1")

	require.NoError(t, mr.Set("cache:flights:v1:from=khi:to=:quality=", "{"))

	flights, err := c.GetFlights(context.Background(), domain.FlightFilter{From: "KHI"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode cached flights")
	assert.Nil(t, flights)
}

func TestRedisCache_GetFlights_ServerDown(t *testing.T) {
	mr := miniredis.RunT(t)
	c := newTestCache(t, mr, "v1")
	mr.Close()

	_, err := c.GetFlights(context.Background(), domain.FlightFilter{})
	assert.Error(t, err)
}

func TestRedisCache_CatalogsDoNotShareEntries(t *testing.T) {
	mr := miniredis.RunT(t)
	first := newTestCache(t, mr, "catalog-a")
	second := newTestCache(t, mr, "catalog-b")
	ctx := context.Background()
	filter := domain.FlightFilter{From: "KHI"}

	require.NoError(t, first.SetFlights(ctx, filter, sampleFlights()))

	got, err := second.GetFlights(ctx, filter)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = first.GetFlights(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
