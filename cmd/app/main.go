package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/flightdeals/config"
	"github.com/Domenick1991/flightdeals/internal/bootstrap"
	"github.com/Domenick1991/flightdeals/internal/cache"
	"github.com/Domenick1991/flightdeals/internal/domain"
	"github.com/Domenick1991/flightdeals/internal/generator"
	"github.com/Domenick1991/flightdeals/internal/kafka"
	"github.com/Domenick1991/flightdeals/internal/logger"
	"github.com/Domenick1991/flightdeals/internal/metrics"
	"github.com/Domenick1991/flightdeals/internal/repository"
	"github.com/Domenick1991/flightdeals/internal/service/flights"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

const kafkaCheckTimeout = 3 * time.Second

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.New("info").Fatal("load config", "error", err)
	}

	log := logger.New(cfg.Log.Level)
	if err := run(cfg, log); err != nil {
		log.Error("server error", "error", err)
		_ = log.Sync()
		os.Exit(1)
	}
	_ = log.Sync()
}

// run owns every resource of the service and releases them before returning.
func run(cfg *config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	catalog := loadCatalog(ctx, cfg, log)
	version := generator.Version(catalog)
	log.Info("flight catalog ready", "flights", len(catalog), "seed", cfg.Deals.Seed, "version", version)

	opts := []flights.FlightServiceOption{
		flights.WithDelays(cfg.Deals.ListDelay(), cfg.Deals.GetDelay()),
		flights.WithMetrics(metrics.NewMetrics("flightdeals", prometheus.DefaultRegisterer)),
		flights.WithLogger(log.With("component", "flight_service")),
	}

	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis, cfg.Deals.CacheTTL(), version)
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			log.Warn("redis unavailable, list cache disabled", "addr", cfg.Redis.Addr, "error", err)
		} else {
			opts = append(opts, flights.WithCache(redisCache))
		}
	}

	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.DealEventsTopic, log.With("component", "kafka_producer"))
		defer producer.Close()

		checkCtx, cancel := context.WithTimeout(ctx, kafkaCheckTimeout)
		err := producer.CheckConnection(checkCtx)
		cancel()
		if err != nil {
			log.Warn("kafka unavailable, deal events disabled", "brokers", cfg.Kafka.Brokers, "error", err)
		} else {
			opts = append(opts, flights.WithProducer(producer))
		}
	}

	flightService := flights.NewFlightService(repository.NewMemoryFlightRepository(catalog), opts...)
	defer flightService.Wait()

	return bootstrap.Run(ctx, cfg, flightService, log)
}

// loadCatalog restores the last archived catalog when asked to, and otherwise builds a
// new one and archives it.
func loadCatalog(ctx context.Context, cfg *config.Config, log logger.Logger) []domain.Flight {
	if !cfg.Database.Enabled() {
		return buildCatalog(cfg.Deals)
	}

	pool, err := pgxpool.New(ctx, cfg.Database.DSN)
	if err != nil {
		log.Warn("connect postgres, snapshots disabled", "error", err)
		return buildCatalog(cfg.Deals)
	}
	defer pool.Close()
	snapshots := repository.NewSnapshotRepository(pool)

	if cfg.Database.RestoreLatest {
		restored, err := repository.RestoreCatalog(ctx, snapshots)
		switch {
		case err != nil:
			log.Warn("restore deal snapshot failed", "error", err)
		case len(restored) > 0:
			log.Info("deal snapshot restored", "flights", len(restored))
			return restored
		default:
			log.Info("no deal snapshot to restore")
		}
	}

	catalog := buildCatalog(cfg.Deals)
	id, err := repository.ArchiveCatalog(ctx, snapshots, catalog)
	if err != nil {
		log.Warn("archive deal snapshot failed", "error", err)
		return catalog
	}
	log.Info("deal snapshot archived", "snapshot_id", id, "flights", len(catalog))
	return catalog
}

// buildCatalog returns the process-wide catalog, or a reproducible one when a seed is configured.
func buildCatalog(cfg config.DealsConfig) []domain.Flight {
	if cfg.Seed != 0 {
		return generator.Generate(generator.NewSource(cfg.Seed), time.Now())
	}
	return generator.Catalog()
}
