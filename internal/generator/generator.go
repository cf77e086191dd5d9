package generator

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/Domenick1991/flightdeals/internal/domain"
	"github.com/google/uuid"
)

// Source is the random input of the generator. *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
	Float64() float64
}

type Route struct {
	From     string
	To       string
	FromCity string
	ToCity   string
}

var Routes = []Route{
	{From: "KHI", To: "DXB", FromCity: "Karachi", ToCity: "Dubai"},
	{From: "KHI", To: "IST", FromCity: "Karachi", ToCity: "Istanbul"},
	{From: "KHI", To: "BKK", FromCity: "Karachi", ToCity: "Bangkok"},
	{From: "KHI", To: "LHR", FromCity: "Karachi", ToCity: "London"},
	{From: "KHI", To: "SIN", FromCity: "Karachi", ToCity: "Singapore"},
	{From: "LHE", To: "DXB", FromCity: "Lahore", ToCity: "Dubai"},
	{From: "ISB", To: "LHR", FromCity: "Islamabad", ToCity: "London"},
}

var Airlines = []string{"Emirates", "PIA", "Qatar Airways", "Turkish Airlines", "Etihad"}

const (
	minBasePrice   = 200
	basePriceRange = 500
	historyDays    = 7
	historySpread  = 100
	dateLayout     = "2006-01-02"
)

// Generate builds one flight per deal quality for every route, grouped by route.
func Generate(src Source, now time.Time) []domain.Flight {
	flights := make([]domain.Flight, 0, len(Routes)*len(domain.DealQualities))
	for _, route := range Routes {
		for i, quality := range domain.DealQualities {
			flights = append(flights, generateFlight(src, now, route, i, quality))
		}
	}
	return flights
}

func generateFlight(src Source, now time.Time, route Route, variant int, quality domain.DealQuality) domain.Flight {
	basePrice := minBasePrice + src.Float64()*basePriceRange
	discount := quality.DiscountRate()
	price := int(math.Round(basePrice * (1 - discount)))

	return domain.Flight{
		ID:            fmt.Sprintf("%s-%s-%d", route.From, route.To, variant+1),
		OriginCode:    route.From,
		DestCode:      route.To,
		OriginCity:    route.FromCity,
		DestCity:      route.ToCity,
		Price:         price,
		OriginalPrice: int(math.Round(basePrice)),
		Airline:       Airlines[src.IntN(len(Airlines))],
		Duration:      fmt.Sprintf("%dh %dm", 2+src.IntN(8), src.IntN(60)),
		Stops:         src.IntN(2),
		DepartureTime: fmt.Sprintf("%02d:%02d", 6+variant*4, src.IntN(60)),
		ArrivalTime:   fmt.Sprintf("%02d:%02d", 10+variant*4, src.IntN(60)),
		DealQuality:   quality,
		Savings:       int(math.Round(basePrice * discount)),
		PriceHistory:  priceHistory(src, now, price),
	}
}

// priceHistory returns one point per day, oldest first, ending on the day of now.
func priceHistory(src Source, now time.Time, price int) []domain.PricePoint {
	history := make([]domain.PricePoint, historyDays)
	day := now.UTC()
	for d := range historyDays {
		history[d] = domain.PricePoint{
			Date:  day.AddDate(0, 0, d-(historyDays-1)).Format(dateLayout),
			Price: int(math.Round(float64(price) + (src.Float64()-0.5)*historySpread)),
		}
	}
	return history
}

var (
	catalogOnce sync.Once
	catalog     []domain.Flight
)

// Catalog returns the process-wide collection, generated on first use.
// Callers must not modify the returned slice.
func Catalog() []domain.Flight {
	catalogOnce.Do(func() {
		seed := uint64(time.Now().UnixNano())
		catalog = Generate(rand.New(rand.NewPCG(seed, seed>>1)), time.Now())
	})
	return catalog
}

// NewSource returns a deterministic source for the given seed.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// Version identifies a catalog by its content. Equal catalogs share a version, so
// replicas started with the same seed can share cached results.
func Version(flights []domain.Flight) string {
	data, err := json.Marshal(flights)
	if err != nil {
		return uuid.NewString()
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, data).String()
}
