package handler_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/frfole/inverse-zastavky/internal/domain"
	"github.com/frfole/inverse-zastavky/internal/usecase/dto"
)

type MockChainService struct {
	mock.Mock
}

func (m *MockChainService) List(ctx context.Context, req dto.ListChainsRequest) (*dto.ChainListResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ChainListResponse), args.Error(1)
}

func (m *MockChainService) GetByHash(ctx context.Context, hash string) (*domain.LinkedChain, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LinkedChain), args.Error(1)
}

func (m *MockChainService) LocateByID(ctx context.Context, hash string, req dto.LocateStationRequest) (*dto.LocateResponse, error) {
	args := m.Called(ctx, hash, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LocateResponse), args.Error(1)
}

func (m *MockChainService) LocateByPoint(ctx context.Context, hash string, req dto.LocatePointRequest) (*dto.LocateResponse, error) {
	args := m.Called(ctx, hash, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LocateResponse), args.Error(1)
}

type MockSuggestService struct {
	mock.Mock
}

func (m *MockSuggestService) SuggestCities(ctx context.Context, hash string, limit int) (*dto.CitySuggestionsResponse, error) {
	args := m.Called(ctx, hash, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CitySuggestionsResponse), args.Error(1)
}

func (m *MockSuggestService) SuggestStations(ctx context.Context, hash string, limit int) (*dto.StationSuggestionsResponse, error) {
	args := m.Called(ctx, hash, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.StationSuggestionsResponse), args.Error(1)
}

type MockStationService struct {
	mock.Mock
}

func (m *MockStationService) station(args mock.Arguments) (*domain.Station, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Station), args.Error(1)
}

func (m *MockStationService) stations(args mock.Arguments) ([]domain.Station, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Station), args.Error(1)
}

func (m *MockStationService) GetByID(ctx context.Context, stopID uuid.UUID) (*domain.Station, error) {
	return m.station(m.Called(ctx, stopID))
}

func (m *MockStationService) GetByBBox(ctx context.Context, req dto.BBoxRequest) ([]domain.Station, error) {
	return m.stations(m.Called(ctx, req))
}

func (m *MockStationService) Search(ctx context.Context, query string) ([]domain.Station, error) {
	return m.stations(m.Called(ctx, query))
}

func (m *MockStationService) Create(ctx context.Context, req dto.CreateStationRequest) (*domain.Station, error) {
	return m.station(m.Called(ctx, req))
}

func (m *MockStationService) Move(ctx context.Context, stopID uuid.UUID, req dto.MoveStationRequest) (*domain.Station, error) {
	return m.station(m.Called(ctx, stopID, req))
}

func (m *MockStationService) AddName(ctx context.Context, stopID uuid.UUID, name string) (*domain.Station, error) {
	return m.station(m.Called(ctx, stopID, name))
}

func (m *MockStationService) RemoveName(ctx context.Context, stopID uuid.UUID, name string) (*domain.Station, error) {
	return m.station(m.Called(ctx, stopID, name))
}

func (m *MockStationService) Remove(ctx context.Context, stopID uuid.UUID) error {
	args := m.Called(ctx, stopID)
	return args.Error(0)
}

type MockBaseDataService struct {
	mock.Mock
}

func (m *MockBaseDataService) StationsByBBox(ctx context.Context, req dto.BBoxRequest) ([]domain.BaseStation, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BaseStation), args.Error(1)
}

func (m *MockBaseDataService) SearchCities(ctx context.Context, query string) ([]domain.BaseCity, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BaseCity), args.Error(1)
}

func (m *MockBaseDataService) CityRemap() map[string]string {
	args := m.Called()
	return args.Get(0).(map[string]string)
}

type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) GetStatistics(ctx context.Context) (*domain.Statistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Statistics), args.Error(1)
}

func (m *MockStatsService) RefreshStatistics(ctx context.Context) (*domain.Statistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Statistics), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}
