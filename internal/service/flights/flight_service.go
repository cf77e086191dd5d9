package flights

import (
	"context"
	"sync"
	"time"

	"github.com/Domenick1991/flightdeals/internal/analytics"
	"github.com/Domenick1991/flightdeals/internal/domain"
	"github.com/Domenick1991/flightdeals/internal/kafka"
	"github.com/Domenick1991/flightdeals/internal/logger"
	"github.com/Domenick1991/flightdeals/internal/metrics"
	"github.com/Domenick1991/flightdeals/internal/repository"
)

const (
	DefaultListDelay = 300 * time.Millisecond
	DefaultGetDelay  = 200 * time.Millisecond

	defaultPublishTimeout = 2 * time.Second
)

type FlightUseCase interface {
	List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error)
	GetByID(ctx context.Context, id string) (*domain.Flight, error)
	Summary(ctx context.Context) (analytics.DealSummary, error)
}

type FlightCache interface {
	GetFlights(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error)
	SetFlights(ctx context.Context, filter domain.FlightFilter, flights []domain.Flight) error
}

type EventProducer interface {
	Publish(ctx context.Context, event kafka.DealEvent) error
}

// FlightService answers deal queries over an immutable repository. Every query waits a
// fixed delay before answering. Deal events are published in the background.
type FlightService struct {
	repo           repository.FlightRepository
	cache          FlightCache
	producer       EventProducer
	metrics        *metrics.Metrics
	log            logger.Logger
	listDelay      time.Duration
	getDelay       time.Duration
	publishTimeout time.Duration
	now            func() time.Time

	publishing sync.WaitGroup
}

type FlightServiceOption func(*FlightService)

func WithCache(cache FlightCache) FlightServiceOption {
	return func(s *FlightService) {
		s.cache = cache
	}
}

func WithProducer(producer EventProducer) FlightServiceOption {
	return func(s *FlightService) {
		s.producer = producer
	}
}

func WithMetrics(m *metrics.Metrics) FlightServiceOption {
	return func(s *FlightService) {
		s.metrics = m
	}
}

func WithLogger(log logger.Logger) FlightServiceOption {
	return func(s *FlightService) {
		s.log = log
	}
}

// WithDelays overrides the simulated latency. Zero disables the wait.
func WithDelays(list, get time.Duration) FlightServiceOption {
	return func(s *FlightService) {
		s.listDelay = list
		s.getDelay = get
	}
}

func NewFlightService(repo repository.FlightRepository, opts ...FlightServiceOption) *FlightService {
	s := &FlightService{
		repo:      repo,
		log:       logger.NewNop(),
		listDelay:      DefaultListDelay,
		getDelay:       DefaultGetDelay,
		publishTimeout: defaultPublishTimeout,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the flights matching filter in catalog order. It only fails when ctx ends
// before the answer is ready.
func (s *FlightService) List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	defer s.observe("list", s.now())

	if err := wait(ctx, s.listDelay); err != nil {
		return nil, err
	}

	if s.cache != nil {
		cached, err := s.cache.GetFlights(ctx, filter)
		switch {
		case err != nil:
			s.log.Warn("flight cache lookup failed", "error", err)
		case cached != nil:
			s.cacheResult("hit")
			return cached, nil
		default:
			s.cacheResult("miss")
		}
	}

	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	flights := filter.Apply(all)

	if s.cache != nil {
		if err := s.cache.SetFlights(ctx, filter, flights); err != nil {
			s.log.Warn("flight cache store failed", "error", err)
		}
	}
	s.publish(ctx, kafka.NewDealsListedEvent(filter.Normalize(), len(flights), s.now()))
	return flights, nil
}

// GetByID returns nil and no error when the id is unknown.
func (s *FlightService) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	defer s.observe("get", s.now())

	if err := wait(ctx, s.getDelay); err != nil {
		return nil, err
	}

	flight, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if flight != nil {
		s.publish(ctx, kafka.NewDealViewedEvent(*flight, s.now()))
	}
	return flight, nil
}

func (s *FlightService) Summary(ctx context.Context) (analytics.DealSummary, error) {
	defer s.observe("summary", s.now())

	all, err := s.repo.List(ctx)
	if err != nil {
		return analytics.DealSummary{}, err
	}
	return analytics.Summarize(all), nil
}

// publish sends event without holding up the query. The send outlives ctx and is
// bounded by publishTimeout.
func (s *FlightService) publish(ctx context.Context, event kafka.DealEvent) {
	if s.producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.publishTimeout)

	s.publishing.Add(1)
	go func() {
		defer s.publishing.Done()
		defer cancel()

		if err := s.producer.Publish(ctx, event); err != nil {
			s.log.Warn("failed to publish deal event", "type", event.Type, "key", event.Key(), "error", err)
			if s.metrics != nil {
				s.metrics.EventsFailed.Inc()
			}
		}
	}()
}

// Wait blocks until every event publish started so far has finished.
// Call it before closing the producer.
func (s *FlightService) Wait() {
	s.publishing.Wait()
}

func (s *FlightService) observe(operation string, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.Queries.WithLabelValues(operation).Inc()
	s.metrics.QueryDuration.WithLabelValues(operation).Observe(s.now().Sub(start).Seconds())
}

func (s *FlightService) cacheResult(result string) {
	if s.metrics != nil {
		s.metrics.CacheLookups.WithLabelValues(result).Inc()
	}
}

// wait suspends for d or until ctx is done, whichever comes first.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var _ FlightUseCase = (*FlightService)(nil)
