package analytics

import (
	"testing"
	"time"

	"github.com/Domenick1991/flightdeals/internal/domain"
	"github.com/Domenick1991/flightdeals/internal/generator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	flights := []domain.Flight{
		{ID: "KHI-DXB-1", OriginCode: "KHI", DestCode: "DXB", DealQuality: domain.DealQualityExceptional, Price: 240, Savings: 160},
		{ID: "KHI-DXB-2", OriginCode: "KHI", DestCode: "DXB", DealQuality: domain.DealQualityGreat, Price: 210, Savings: 70},
		{ID: "LHE-DXB-3", OriginCode: "LHE", DestCode: "DXB", DealQuality: domain.DealQualityGood, Price: 500, Savings: 90},
	}

	s := Summarize(flights)

	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 1, s.ByQuality[domain.DealQualityExceptional])
	assert.Equal(t, 1, s.ByQuality[domain.DealQualityGreat])
	assert.Equal(t, 1, s.ByQuality[domain.DealQualityGood])
	assert.Equal(t, 107, s.AverageSavings)
	assert.Equal(t, "KHI-DXB-1", s.BestSavingsID)
	assert.Equal(t, []RouteBest{
		{Route: "KHI-DXB", FlightID: "KHI-DXB-2", Price: 210},
		{Route: "LHE-DXB", FlightID: "LHE-DXB-3", Price: 500},
	}, s.CheapestByRoute)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)

	assert.Equal(t, 0, s.Total)
	assert.Equal(t, 0, s.AverageSavings)
	assert.Empty(t, s.BestSavingsID)
	assert.Empty(t, s.CheapestByRoute)
	assert.Len(t, s.ByQuality, 3)
}

func TestSummarize_GeneratedCatalog(t *testing.T) {
	flights := generator.Generate(generator.NewSource(1), time.Now())

	s := Summarize(flights)

	require.Len(t, s.CheapestByRoute, len(generator.Routes))
	for _, q := range domain.DealQualities {
		assert.Equal(t, 7, s.ByQuality[q])
	}
}
