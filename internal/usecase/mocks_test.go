package usecase_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/frfole/inverse-zastavky/internal/domain"
	"github.com/frfole/inverse-zastavky/internal/suggest"
)

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) DeletePrefix(ctx context.Context, prefix string) error {
	args := m.Called(ctx, prefix)
	return args.Error(0)
}

func (m *MockCacheRepository) GetStats(ctx context.Context) (*domain.Statistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Statistics), args.Error(1)
}

func (m *MockCacheRepository) SetStats(ctx context.Context, stats *domain.Statistics, ttl time.Duration) error {
	args := m.Called(ctx, stats, ttl)
	return args.Error(0)
}

// MockStatsRepository is a mock of StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) GetStatistics(ctx context.Context) (*domain.Statistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Statistics), args.Error(1)
}

// MockChainRepository is a mock of ChainRepository
type MockChainRepository struct {
	mock.Mock
}

func (m *MockChainRepository) ReplaceAll(ctx context.Context, chains domain.Chains, batchSize int) error {
	args := m.Called(ctx, chains, batchSize)
	return args.Error(0)
}

func (m *MockChainRepository) GetByHash(ctx context.Context, hash string) ([]domain.ChainStation, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChainStation), args.Error(1)
}

func (m *MockChainRepository) List(ctx context.Context, limit, offset int) ([]domain.ChainStation, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChainStation), args.Error(1)
}

func (m *MockChainRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockChainRepository) LinkStation(ctx context.Context, hash string, pos int, stopID uuid.UUID) (*domain.ChainStation, error) {
	args := m.Called(ctx, hash, pos, stopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChainStation), args.Error(1)
}

// MockStationRepository is a mock of StationRepository
type MockStationRepository struct {
	mock.Mock
}

func (m *MockStationRepository) stations(args mock.Arguments) ([]domain.Station, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Station), args.Error(1)
}

func (m *MockStationRepository) station(args mock.Arguments) (*domain.Station, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Station), args.Error(1)
}

func (m *MockStationRepository) GetByName(ctx context.Context, name string) ([]domain.Station, error) {
	return m.stations(m.Called(ctx, name))
}

func (m *MockStationRepository) GetByID(ctx context.Context, stopID uuid.UUID) (*domain.Station, error) {
	return m.station(m.Called(ctx, stopID))
}

func (m *MockStationRepository) GetByBBox(ctx context.Context, bbox domain.BBox) ([]domain.Station, error) {
	return m.stations(m.Called(ctx, bbox))
}

func (m *MockStationRepository) Search(ctx context.Context, query string) ([]domain.Station, error) {
	return m.stations(m.Called(ctx, query))
}

func (m *MockStationRepository) Create(ctx context.Context, name string, point domain.Point) (*domain.Station, error) {
	return m.station(m.Called(ctx, name, point))
}

func (m *MockStationRepository) Move(ctx context.Context, stopID uuid.UUID, point domain.Point) (*domain.Station, error) {
	return m.station(m.Called(ctx, stopID, point))
}

func (m *MockStationRepository) AddName(ctx context.Context, stopID uuid.UUID, name string) (*domain.Station, error) {
	return m.station(m.Called(ctx, stopID, name))
}

func (m *MockStationRepository) RemoveName(ctx context.Context, stopID uuid.UUID, name string) (*domain.Station, error) {
	return m.station(m.Called(ctx, stopID, name))
}

func (m *MockStationRepository) Remove(ctx context.Context, stopID uuid.UUID) error {
	args := m.Called(ctx, stopID)
	return args.Error(0)
}

func (m *MockStationRepository) All(ctx context.Context) ([]domain.Station, error) {
	return m.stations(m.Called(ctx))
}

// MockBaseStationRepository is a mock of BaseStationRepository
type MockBaseStationRepository struct {
	mock.Mock
}

func (m *MockBaseStationRepository) GetByBBox(ctx context.Context, bbox domain.BBox) ([]domain.BaseStation, error) {
	args := m.Called(ctx, bbox)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BaseStation), args.Error(1)
}

func (m *MockBaseStationRepository) ReplaceAll(ctx context.Context, stations []domain.BaseStation, batchSize int) error {
	args := m.Called(ctx, stations, batchSize)
	return args.Error(0)
}

// MockBaseCityRepository is a mock of BaseCityRepository
type MockBaseCityRepository struct {
	mock.Mock
}

func (m *MockBaseCityRepository) GetByName(ctx context.Context, name string) ([]domain.BaseCity, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BaseCity), args.Error(1)
}

func (m *MockBaseCityRepository) Search(ctx context.Context, query string) ([]domain.BaseCity, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BaseCity), args.Error(1)
}

func (m *MockBaseCityRepository) ReplaceAll(ctx context.Context, cities []domain.BaseCity, batchSize int) error {
	args := m.Called(ctx, cities, batchSize)
	return args.Error(0)
}

// MockSuggester is a mock of the reconstruction engine
type MockSuggester struct {
	mock.Mock
}

func (m *MockSuggester) SuggestCities(ctx context.Context, hash string) (*suggest.CityResult, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*suggest.CityResult), args.Error(1)
}

func (m *MockSuggester) ChainOptions(ctx context.Context, hash string) (*suggest.StationResult, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*suggest.StationResult), args.Error(1)
}

// MockInvalidator is a mock of SuggestionInvalidator
type MockInvalidator struct {
	mock.Mock
}

func (m *MockInvalidator) InvalidateCities(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
