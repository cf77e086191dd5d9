package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/flightdeals/config"
	"github.com/Domenick1991/flightdeals/internal/analytics"
	"github.com/Domenick1991/flightdeals/internal/bootstrap"
	"github.com/Domenick1991/flightdeals/internal/kafka"
	"github.com/Domenick1991/flightdeals/internal/logger"
	"github.com/Domenick1991/flightdeals/internal/metrics"
	"github.com/Domenick1991/flightdeals/internal/notify"
	"github.com/Domenick1991/flightdeals/internal/worker"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.New("info").Fatal("load config", "error", err)
	}

	base := logger.New(cfg.Log.Level)
	log := base.With("component", "worker")
	if err := run(cfg, log); err != nil {
		log.Error("worker stopped", "error", err)
		_ = base.Sync()
		os.Exit(1)
	}
	_ = base.Sync()
}

func run(cfg *config.Config, log logger.Logger) error {
	if len(cfg.Kafka.Brokers) == 0 {
		return errors.New("kafka brokers are not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	handler := worker.NewEventHandler(
		analytics.NewViewTracker(),
		notify.NewAlertSender(log),
		metrics.NewWorkerMetrics("flightdeals_worker", prometheus.DefaultRegisterer),
		log,
	)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.DealEventsTopic)
	defer consumer.Close()

	errCh := make(chan error, 2)
	go func() {
		if err := consumer.Consume(ctx, handler.Handle); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- err
		}
	}()
	if cfg.Worker.MetricsAddress != "" {
		go func() {
			if err := bootstrap.RunMetrics(ctx, cfg.Worker.MetricsAddress, prometheus.DefaultGatherer, log); err != nil {
				errCh <- err
			}
		}()
	}

	interval := time.Duration(cfg.Worker.ReportIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = time.Minute
	}
	reportTicker := time.NewTicker(interval)
	defer reportTicker.Stop()

	for {
		select {
		case <-reportTicker.C:
			handler.Report(cfg.Worker.TopN)
		case err := <-errCh:
			handler.Report(cfg.Worker.TopN)
			return err
		case <-ctx.Done():
			log.Info("shutting down")
			handler.Report(cfg.Worker.TopN)
			return nil
		}
	}
}
