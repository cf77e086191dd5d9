package analytics

import (
	"math"

	"github.com/Domenick1991/flightdeals/internal/domain"
)

// RouteBest is the cheapest deal of a route.
type RouteBest struct {
	Route    string `json:"route"`
	FlightID string `json:"flightId"`
	Price    int    `json:"price"`
}

type DealSummary struct {
	Total           int                        `json:"total"`
	ByQuality       map[domain.DealQuality]int `json:"byQuality"`
	AverageSavings  int                        `json:"averageSavings"`
	BestSavingsID   string                     `json:"bestSavingsId,omitempty"`
	CheapestByRoute []RouteBest                `json:"cheapestByRoute"`
}

// Summarize aggregates flights. Routes keep the order of their first appearance.
func Summarize(flights []domain.Flight) DealSummary {
	s := DealSummary{
		Total:           len(flights),
		ByQuality:       make(map[domain.DealQuality]int, len(domain.DealQualities)),
		CheapestByRoute: make([]RouteBest, 0),
	}
	for _, q := range domain.DealQualities {
		s.ByQuality[q] = 0
	}
	if len(flights) == 0 {
		return s
	}

	routeIdx := make(map[string]int)
	bestSavings := -1
	totalSavings := 0
	for _, f := range flights {
		s.ByQuality[f.DealQuality]++
		totalSavings += f.Savings
		if f.Savings > bestSavings {
			bestSavings = f.Savings
			s.BestSavingsID = f.ID
		}

		route := f.OriginCode + "-" + f.DestCode
		i, ok := routeIdx[route]
		if !ok {
			routeIdx[route] = len(s.CheapestByRoute)
			s.CheapestByRoute = append(s.CheapestByRoute, RouteBest{Route: route, FlightID: f.ID, Price: f.Price})
			continue
		}
		if f.Price < s.CheapestByRoute[i].Price {
			s.CheapestByRoute[i] = RouteBest{Route: route, FlightID: f.ID, Price: f.Price}
		}
	}
	s.AverageSavings = int(math.Round(float64(totalSavings) / float64(len(flights))))
	return s
}
