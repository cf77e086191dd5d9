package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/Domenick1991/flightdeals/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestNewSnapshotRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewSnapshotRepository(pool)
	assert.NotNil(t, repo)
}

type MockSnapshotRepository struct {
	mock.Mock
}

func (m *MockSnapshotRepository) EnsureSchema(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSnapshotRepository) Save(ctx context.Context, flights []domain.Flight) (string, error) {
	args := m.Called(ctx, flights)
	return args.String(0), args.Error(1)
}

func (m *MockSnapshotRepository) Latest(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func TestArchiveCatalog_Success(t *testing.T) {
	repo := &MockSnapshotRepository{}
	flights := sampleFlights()

	repo.On("EnsureSchema", mock.Anything).Return(nil).Once()
	repo.On("Save", mock.Anything, flights).Return("snap-1", nil).Once()

	id, err := ArchiveCatalog(context.Background(), repo, flights)

	assert.NoError(t, err)
	assert.Equal(t, "snap-1", id)
	repo.AssertExpectations(t)
}

func TestArchiveCatalog_SchemaError(t *testing.T) {
	repo := &MockSnapshotRepository{}
	repo.On("EnsureSchema", mock.Anything).Return(errors.New("permission denied")).Once()

	_, err := ArchiveCatalog(context.Background(), repo, sampleFlights())

	assert.Error(t, err)
	repo.AssertNotCalled(t, "Save")
}

func TestRestoreCatalog_Success(t *testing.T) {
	repo := &MockSnapshotRepository{}
	flights := sampleFlights()

	repo.On("EnsureSchema", mock.Anything).Return(nil).Once()
	repo.On("Latest", mock.Anything).Return(flights, nil).Once()

	restored, err := RestoreCatalog(context.Background(), repo)

	assert.NoError(t, err)
	assert.Equal(t, flights, restored)
	repo.AssertExpectations(t)
}

func TestRestoreCatalog_Empty(t *testing.T) {
	repo := &MockSnapshotRepository{}
	repo.On("EnsureSchema", mock.Anything).Return(nil).Once()
	repo.On("Latest", mock.Anything).Return([]domain.Flight{}, nil).Once()

	restored, err := RestoreCatalog(context.Background(), repo)

	assert.NoError(t, err)
	assert.Empty(t, restored)
}

func TestRestoreCatalog_QueryError(t *testing.T) {
	repo := &MockSnapshotRepository{}
	repo.On("EnsureSchema", mock.Anything).Return(nil).Once()
	repo.On("Latest", mock.Anything).Return([]domain.Flight(nil), errors.New("connection reset")).Once()

	_, err := RestoreCatalog(context.Background(), repo)

	assert.ErrorContains(t, err, "load latest snapshot")
}

func TestRestoreCatalog_SchemaError(t *testing.T) {
	repo := &MockSnapshotRepository{}
	repo.On("EnsureSchema", mock.Anything).Return(errors.New("permission denied")).Once()

	_, err := RestoreCatalog(context.Background(), repo)

	assert.Error(t, err)
	repo.AssertNotCalled(t, "Latest", mock.Anything)
}
