package domain

import (
	"errors"
	"strings"
)

type DealQuality string

const (
	DealQualityExceptional DealQuality = "exceptional"
	DealQualityGreat       DealQuality = "great"
	DealQualityGood        DealQuality = "good"

	// DealQualityAll disables the deal quality constraint of a filter.
	DealQualityAll = "all"
)

// DealQualities lists the tiers in the order variants are generated for a route.
var DealQualities = []DealQuality{DealQualityExceptional, DealQualityGreat, DealQualityGood}

// DiscountRate returns the fraction taken off the base price for the tier.
func (q DealQuality) DiscountRate() float64 {
	switch q {
	case DealQualityExceptional:
		return 0.40
	case DealQualityGreat:
		return 0.25
	case DealQualityGood:
		return 0.15
	default:
		return 0
	}
}

var ErrInvalidFilter = errors.New("invalid flight filter")

type PricePoint struct {
	Date  string `json:"date"`
	Price int    `json:"price"`
}

type Flight struct {
	ID            string       `json:"id"`
	OriginCode    string       `json:"from"`
	DestCode      string       `json:"to"`
	OriginCity    string       `json:"fromCity"`
	DestCity      string       `json:"toCity"`
	Price         int          `json:"price"`
	OriginalPrice int          `json:"originalPrice"`
	Airline       string       `json:"airline"`
	Duration      string       `json:"duration"`
	Stops         int          `json:"stops"`
	DepartureTime string       `json:"departureTime"`
	ArrivalTime   string       `json:"arrivalTime"`
	DealQuality   DealQuality  `json:"dealQuality"`
	Savings       int          `json:"savings"`
	PriceHistory  []PricePoint `json:"priceHistory"`
}

// Clone returns a copy that shares no memory with f.
func (f Flight) Clone() Flight {
	if f.PriceHistory != nil {
		history := make([]PricePoint, len(f.PriceHistory))
		copy(history, f.PriceHistory)
		f.PriceHistory = history
	}
	return f
}

// FlightFilter narrows a flight listing. Zero fields do not constrain the result.
type FlightFilter struct {
	From        string `json:"from,omitempty"`
	To          string `json:"to,omitempty"`
	DealQuality string `json:"dealQuality,omitempty"`
}

// Normalize lower-cases the code filters and drops the "all" deal quality sentinel.
func (ff FlightFilter) Normalize() FlightFilter {
	out := FlightFilter{
		From:        strings.ToLower(ff.From),
		To:          strings.ToLower(ff.To),
		DealQuality: ff.DealQuality,
	}
	if out.DealQuality == DealQualityAll {
		out.DealQuality = ""
	}
	return out
}

// Matches reports whether f satisfies every constraint of the filter.
func (ff FlightFilter) Matches(f Flight) bool {
	n := ff.Normalize()
	if n.From != "" && !strings.Contains(strings.ToLower(f.OriginCode), n.From) {
		return false
	}
	if n.To != "" && !strings.Contains(strings.ToLower(f.DestCode), n.To) {
		return false
	}
	if n.DealQuality != "" && string(f.DealQuality) != n.DealQuality {
		return false
	}
	return true
}

// Apply returns the matching flights in their original order.
func (ff FlightFilter) Apply(flights []Flight) []Flight {
	out := make([]Flight, 0, len(flights))
	for _, f := range flights {
		if ff.Matches(f) {
			out = append(out, f.Clone())
		}
	}
	return out
}
