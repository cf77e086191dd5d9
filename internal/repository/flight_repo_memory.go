package repository

import (
	"context"

	"github.com/Domenick1991/flightdeals/internal/domain"
)

type FlightRepository interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id string) (*domain.Flight, error)
}

// MemoryFlightRepository serves a fixed collection. It never mutates it, so it is safe
// for concurrent use.
type MemoryFlightRepository struct {
	flights []domain.Flight
	byID    map[string]int
}

// NewMemoryFlightRepository keeps a private copy of flights. When ids repeat, the first one wins.
func NewMemoryFlightRepository(flights []domain.Flight) *MemoryFlightRepository {
	r := &MemoryFlightRepository{
		flights: make([]domain.Flight, len(flights)),
		byID:    make(map[string]int, len(flights)),
	}
	for i, f := range flights {
		r.flights[i] = f.Clone()
		if _, ok := r.byID[f.ID]; !ok {
			r.byID[f.ID] = i
		}
	}
	return r
}

func (r *MemoryFlightRepository) List(_ context.Context) ([]domain.Flight, error) {
	out := make([]domain.Flight, len(r.flights))
	for i, f := range r.flights {
		out[i] = f.Clone()
	}
	return out, nil
}

// GetByID returns nil without an error when no flight has the id.
func (r *MemoryFlightRepository) GetByID(_ context.Context, id string) (*domain.Flight, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	f := r.flights[i].Clone()
	return &f, nil
}

var _ FlightRepository = (*MemoryFlightRepository)(nil)
