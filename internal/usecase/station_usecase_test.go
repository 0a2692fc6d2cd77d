package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/frfole/inverse-zastavky/internal/domain"
	"github.com/frfole/inverse-zastavky/internal/pkg/errors"
	"github.com/frfole/inverse-zastavky/internal/usecase"
	"github.com/frfole/inverse-zastavky/internal/usecase/dto"
)

func TestStationUseCase_GetByBBox(t *testing.T) {
	ctx := context.Background()
	repo := &MockStationRepository{}
	want := domain.BBox{LatFrom: 49.9, LatTo: 50.1, LonFrom: 14.2, LonTo: 14.6}
	repo.On("GetByBBox", ctx, want).Return(nil, nil)

	uc := usecase.NewStationUseCase(repo, zap.NewNop())
	got, err := uc.GetByBBox(ctx, dto.BBoxRequest{LatFrom: 50.1, LatTo: 49.9, LonFrom: 14.6, LonTo: 14.2})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	repo.AssertExpectations(t)
}

func TestStationUseCase_Search(t *testing.T) {
	ctx := context.Background()
	repo := &MockStationRepository{}
	repo.On("Search", ctx, "kolin").Return([]domain.Station{{StopID: uuid.New(), Names: []string{"Kolín"}}}, nil)

	uc := usecase.NewStationUseCase(repo, zap.NewNop())

	got, err := uc.Search(ctx, "  kolin ")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = uc.Search(ctx, "   ")
	require.NoError(t, err)
	assert.Empty(t, got)
	repo.AssertNumberOfCalls(t, "Search", 1)
}

func TestStationUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("trims the name", func(t *testing.T) {
		repo := &MockStationRepository{}
		point := domain.Point{Lat: 50, Lon: 15}
		created := &domain.Station{StopID: uuid.New(), Names: []string{"Kolín"}, Point: point}
		repo.On("Create", ctx, "Kolín", point).Return(created, nil)

		uc := usecase.NewStationUseCase(repo, zap.NewNop())
		got, err := uc.Create(ctx, dto.CreateStationRequest{Name: " Kolín ", Lat: 50, Lon: 15})
		require.NoError(t, err)
		assert.Equal(t, created, got)
	})

	t.Run("blank name", func(t *testing.T) {
		repo := &MockStationRepository{}
		uc := usecase.NewStationUseCase(repo, zap.NewNop())
		_, err := uc.Create(ctx, dto.CreateStationRequest{Name: " ", Lat: 50, Lon: 15})
		assert.ErrorIs(t, err, errors.ErrInvalidRequest)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("coordinates out of range", func(t *testing.T) {
		uc := usecase.NewStationUseCase(&MockStationRepository{}, zap.NewNop())
		_, err := uc.Create(ctx, dto.CreateStationRequest{Name: "X", Lat: 50, Lon: 181})
		assert.ErrorIs(t, err, errors.ErrInvalidCoordinates)
	})
}

func TestStationUseCase_Names(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("add name", func(t *testing.T) {
		repo := &MockStationRepository{}
		updated := &domain.Station{StopID: id, Names: []string{"A", "B"}}
		repo.On("AddName", ctx, id, "B").Return(updated, nil)

		got, err := usecase.NewStationUseCase(repo, zap.NewNop()).AddName(ctx, id, "B")
		require.NoError(t, err)
		assert.True(t, got.HasName("B"))
	})

	t.Run("removing the last name removes the station", func(t *testing.T) {
		repo := &MockStationRepository{}
		repo.On("RemoveName", ctx, id, "A").Return(nil, nil)

		got, err := usecase.NewStationUseCase(repo, zap.NewNop()).RemoveName(ctx, id, "A")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("unknown station", func(t *testing.T) {
		repo := &MockStationRepository{}
		repo.On("RemoveName", ctx, id, "A").Return(nil, errors.ErrStationNotFound)

		_, err := usecase.NewStationUseCase(repo, zap.NewNop()).RemoveName(ctx, id, "A")
		assert.ErrorIs(t, err, errors.ErrStationNotFound)
	})
}

func TestStationUseCase_MoveAndRemove(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	repo := &MockStationRepository{}
	point := domain.Point{Lat: 49.2, Lon: 16.6}
	repo.On("Move", ctx, id, point).Return(&domain.Station{StopID: id, Point: point}, nil)
	repo.On("Remove", ctx, id).Return(nil)

	uc := usecase.NewStationUseCase(repo, zap.NewNop())
	moved, err := uc.Move(ctx, id, dto.MoveStationRequest{Lat: 49.2, Lon: 16.6})
	require.NoError(t, err)
	assert.Equal(t, point, moved.Point)

	require.NoError(t, uc.Remove(ctx, id))
	repo.AssertExpectations(t)
}

func TestBaseDataUseCase(t *testing.T) {
	ctx := context.Background()
	stations := &MockBaseStationRepository{}
	cities := &MockBaseCityRepository{}
	remap := map[string]string{"Praha-Smíchov": "Praha"}

	stations.On("GetByBBox", ctx, domain.NewBBox(49, 50, 14, 15)).
		Return([]domain.BaseStation{{Name: "Beroun", Point: domain.Point{Lat: 49.96, Lon: 14.07}}}, nil)
	cities.On("Search", ctx, "ber").Return([]domain.BaseCity{{Name: "Beroun"}}, nil)

	uc := usecase.NewBaseDataUseCase(stations, cities, remap, zap.NewNop())

	got, err := uc.StationsByBBox(ctx, dto.BBoxRequest{LatFrom: 50, LatTo: 49, LonFrom: 15, LonTo: 14})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	found, err := uc.SearchCities(ctx, "ber")
	require.NoError(t, err)
	assert.Equal(t, "Beroun", found[0].Name)

	assert.Equal(t, remap, uc.CityRemap())
}
