package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/Domenick1991/flightdeals/config"
	"github.com/Domenick1991/flightdeals/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisCache stores list results per catalog version and normalized filter.
// Processes serving different catalogs never read each other's entries.
type RedisCache struct {
	client     *redis.Client
	flightsTTL time.Duration
	version    string
}

func NewRedisCache(cfg config.RedisConfig, flightsTTL time.Duration, catalogVersion string) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		flightsTTL: flightsTTL,
		version:    catalogVersion,
	}
}

// GetFlights returns nil, nil on a miss.
func (c *RedisCache) GetFlights(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	data, err := c.client.Get(ctx, flightsKey(c.version, filter)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var flights []domain.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, fmt.Errorf("decode cached flights: %w", err)
	}
	return flights, nil
}

func (c *RedisCache) SetFlights(ctx context.Context, filter domain.FlightFilter, flights []domain.Flight) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, flightsKey(c.version, filter), payload, c.flightsTTL).Err()
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func flightsKey(version string, filter domain.FlightFilter) string {
	n := filter.Normalize()
	return fmt.Sprintf("cache:flights:%s:from=%s:to=%s:quality=%s", url.QueryEscape(version),
		url.QueryEscape(n.From), url.QueryEscape(n.To), url.QueryEscape(n.DealQuality))
}
