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

func stops(hash string, names ...string) []domain.ChainStation {
	out := make([]domain.ChainStation, len(names))
	for i, n := range names {
		out[i] = domain.ChainStation{ChainHash: hash, Name: n, Pos: i}
	}
	return out
}

func TestChainUseCase_List(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		req       dto.ListChainsRequest
		limit     int
		offset    int
		wantLimit int
	}{
		{name: "default limit", req: dto.ListChainsRequest{}, limit: 50, offset: 0, wantLimit: 50},
		{name: "limit is clamped", req: dto.ListChainsRequest{Limit: 500, Page: 1}, limit: 50, offset: 50, wantLimit: 50},
		{name: "page is scaled by limit", req: dto.ListChainsRequest{Limit: 10, Page: 3}, limit: 10, offset: 30, wantLimit: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chains := &MockChainRepository{}
			chains.On("List", ctx, tt.limit, tt.offset).
				Return(append(stops("a", "X", "Y"), stops("b", "Z")...), nil)

			uc := usecase.NewChainUseCase(chains, &MockStationRepository{}, zap.NewNop())
			resp, err := uc.List(ctx, tt.req)
			require.NoError(t, err)

			assert.Equal(t, tt.wantLimit, resp.Limit)
			require.Len(t, resp.Chains, 2)
			assert.Len(t, resp.Chains[0].Stops, 2)
			chains.AssertExpectations(t)
		})
	}

	t.Run("empty page", func(t *testing.T) {
		chains := &MockChainRepository{}
		chains.On("List", ctx, 50, 500).Return([]domain.ChainStation{}, nil)

		resp, err := usecase.NewChainUseCase(chains, &MockStationRepository{}, zap.NewNop()).
			List(ctx, dto.ListChainsRequest{Page: 10})
		require.NoError(t, err)
		assert.NotNil(t, resp.Chains)
		assert.Empty(t, resp.Chains)
	})
}

func TestChainUseCase_GetByHash(t *testing.T) {
	ctx := context.Background()
	chains := &MockChainRepository{}
	chains.On("GetByHash", ctx, testHash).Return(stops(testHash, "A", "B"), nil)
	chains.On("GetByHash", ctx, "none").Return([]domain.ChainStation{}, nil)

	uc := usecase.NewChainUseCase(chains, &MockStationRepository{}, zap.NewNop())

	chain, err := uc.GetByHash(ctx, testHash)
	require.NoError(t, err)
	assert.Equal(t, testHash, chain.Hash)
	assert.Len(t, chain.Stops, 2)

	_, err = uc.GetByHash(ctx, "none")
	assert.ErrorIs(t, err, errors.ErrChainNotFound)
}

func TestChainUseCase_LocateByID(t *testing.T) {
	ctx := context.Background()
	stopID := uuid.New()

	t.Run("links and returns the station", func(t *testing.T) {
		chains := &MockChainRepository{}
		stations := &MockStationRepository{}
		link := &domain.ChainStation{ChainHash: testHash, Name: "B", Pos: 1, StopID: &stopID}
		station := &domain.Station{StopID: stopID, Names: []string{"B", "B zast."}}

		chains.On("LinkStation", ctx, testHash, 1, stopID).Return(link, nil)
		stations.On("GetByID", ctx, stopID).Return(station, nil)

		uc := usecase.NewChainUseCase(chains, stations, zap.NewNop())
		resp, err := uc.LocateByID(ctx, testHash, dto.LocateStationRequest{Pos: 1, StopID: stopID.String()})
		require.NoError(t, err)
		assert.Equal(t, link, resp.Link)
		assert.Equal(t, station, resp.Station)
	})

	t.Run("malformed stop id", func(t *testing.T) {
		uc := usecase.NewChainUseCase(&MockChainRepository{}, &MockStationRepository{}, zap.NewNop())
		_, err := uc.LocateByID(ctx, testHash, dto.LocateStationRequest{StopID: "nope"})
		assert.ErrorIs(t, err, errors.ErrInvalidRequest)
	})

	t.Run("missing station", func(t *testing.T) {
		chains := &MockChainRepository{}
		chains.On("LinkStation", ctx, testHash, 0, stopID).Return(nil, errors.ErrStationNotFound)

		uc := usecase.NewChainUseCase(chains, &MockStationRepository{}, zap.NewNop())
		_, err := uc.LocateByID(ctx, testHash, dto.LocateStationRequest{StopID: stopID.String()})
		assert.ErrorIs(t, err, errors.ErrStationNotFound)
	})
}

func TestChainUseCase_LocateByPoint(t *testing.T) {
	ctx := context.Background()
	point := domain.Point{Lat: 50.08, Lon: 14.43}

	t.Run("creates a station named after the position", func(t *testing.T) {
		chains := &MockChainRepository{}
		stations := &MockStationRepository{}
		created := &domain.Station{StopID: uuid.New(), Names: []string{"B"}, Point: point}

		chains.On("GetByHash", ctx, testHash).Return(stops(testHash, "A", "B", "C"), nil)
		stations.On("Create", ctx, "B", point).Return(created, nil)
		chains.On("LinkStation", ctx, testHash, 1, created.StopID).
			Return(&domain.ChainStation{ChainHash: testHash, Name: "B", Pos: 1, StopID: &created.StopID}, nil)

		uc := usecase.NewChainUseCase(chains, stations, zap.NewNop())
		resp, err := uc.LocateByPoint(ctx, testHash, dto.LocatePointRequest{Pos: 1, Lat: point.Lat, Lon: point.Lon})
		require.NoError(t, err)
		assert.Equal(t, created, resp.Station)
		assert.Equal(t, created.StopID, *resp.Link.StopID)
	})

	t.Run("position out of range", func(t *testing.T) {
		chains := &MockChainRepository{}
		stations := &MockStationRepository{}
		chains.On("GetByHash", ctx, testHash).Return(stops(testHash, "A"), nil)

		uc := usecase.NewChainUseCase(chains, stations, zap.NewNop())
		_, err := uc.LocateByPoint(ctx, testHash, dto.LocatePointRequest{Pos: 3, Lat: point.Lat, Lon: point.Lon})
		assert.ErrorIs(t, err, errors.ErrChainNotFound)
		stations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid coordinates", func(t *testing.T) {
		uc := usecase.NewChainUseCase(&MockChainRepository{}, &MockStationRepository{}, zap.NewNop())
		_, err := uc.LocateByPoint(ctx, testHash, dto.LocatePointRequest{Lat: 91})
		assert.ErrorIs(t, err, errors.ErrInvalidCoordinates)
	})
}
