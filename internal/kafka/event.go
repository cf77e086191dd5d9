package kafka

import (
	"time"

	"github.com/Domenick1991/flightdeals/internal/domain"
	"github.com/google/uuid"
)

const (
	EventDealsListed = "deals_listed"
	EventDealViewed  = "deal_viewed"
)

type DealEvent struct {
	ID          string              `json:"id"`
	Type        string              `json:"type"`
	FlightID    string              `json:"flight_id,omitempty"`
	DealQuality string              `json:"deal_quality,omitempty"`
	Price       int                 `json:"price,omitempty"`
	Results     int                 `json:"results,omitempty"`
	Filter      domain.FlightFilter `json:"filter"`
	OccurredAt  time.Time           `json:"occurred_at"`
}

// Key is the partition key: the flight id for views, "list" otherwise.
func (e DealEvent) Key() string {
	if e.FlightID != "" {
		return e.FlightID
	}
	return "list"
}

func NewDealViewedEvent(f domain.Flight, at time.Time) DealEvent {
	return DealEvent{
		ID:          uuid.NewString(),
		Type:        EventDealViewed,
		FlightID:    f.ID,
		DealQuality: string(f.DealQuality),
		Price:       f.Price,
		OccurredAt:  at,
	}
}

func NewDealsListedEvent(filter domain.FlightFilter, results int, at time.Time) DealEvent {
	return DealEvent{
		ID:         uuid.NewString(),
		Type:       EventDealsListed,
		Results:    results,
		Filter:     filter,
		OccurredAt: at,
	}
}
