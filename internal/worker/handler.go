package worker

import (
	"context"
	"sync/atomic"

	"github.com/Domenick1991/flightdeals/internal/analytics"
	"github.com/Domenick1991/flightdeals/internal/kafka"
	"github.com/Domenick1991/flightdeals/internal/logger"
	"github.com/Domenick1991/flightdeals/internal/metrics"
	"github.com/Domenick1991/flightdeals/internal/notify"
	kafkaGo "github.com/segmentio/kafka-go"
)

type AlertSender interface {
	Send(ctx context.Context, event kafka.DealEvent) error
}

// EventHandler folds deal events into view statistics.
type EventHandler struct {
	views   *analytics.ViewTracker
	alerts  AlertSender
	metrics *metrics.WorkerMetrics
	log     logger.Logger
	listed  atomic.Int64
}

func NewEventHandler(views *analytics.ViewTracker, alerts AlertSender, m *metrics.WorkerMetrics, log logger.Logger) *EventHandler {
	return &EventHandler{views: views, alerts: alerts, metrics: m, log: log}
}

// Handle never stops consumption on a bad message; it logs and skips it.
func (h *EventHandler) Handle(ctx context.Context, msg kafkaGo.Message) error {
	event, err := kafka.DecodeEvent(msg)
	if err != nil {
		h.log.Warn("decode deal event failed", "offset", msg.Offset, "error", err)
		if h.metrics != nil {
			h.metrics.EventsSkipped.Inc()
		}
		return nil
	}
	if h.metrics != nil {
		h.metrics.EventsConsumed.WithLabelValues(event.Type).Inc()
	}

	switch event.Type {
	case kafka.EventDealViewed:
		h.views.Record(event.FlightID)
		if h.alerts != nil && notify.ShouldAlert(event) {
			if err := h.alerts.Send(ctx, event); err != nil {
				h.log.Warn("send deal alert failed", "flight_id", event.FlightID, "error", err)
			}
		}
	case kafka.EventDealsListed:
		h.listed.Add(1)
	default:
		h.log.Debug("ignoring deal event", "type", event.Type)
	}
	return nil
}

// Report logs the most viewed deals.
func (h *EventHandler) Report(topN int) []analytics.ViewCount {
	top := h.views.Top(topN)
	h.log.Info("deal views report", "total_views", h.views.Total(), "listings", h.listed.Load(), "top", top)
	return top
}
