package notify

import (
	"context"

	"github.com/Domenick1991/flightdeals/internal/domain"
	"github.com/Domenick1991/flightdeals/internal/kafka"
	"github.com/Domenick1991/flightdeals/internal/logger"
)

// AlertSender announces views of exceptional deals.
type AlertSender struct {
	log logger.Logger
}

func NewAlertSender(log logger.Logger) *AlertSender {
	return &AlertSender{log: log}
}

// ShouldAlert reports whether the event is a view of an exceptional deal.
func ShouldAlert(event kafka.DealEvent) bool {
	return event.Type == kafka.EventDealViewed && event.DealQuality == string(domain.DealQualityExceptional)
}

func (s *AlertSender) Send(_ context.Context, event kafka.DealEvent) error {
	s.log.Info("exceptional deal viewed", "flight_id", event.FlightID, "price", event.Price, "event_id", event.ID)
	return nil
}
