package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/frfole/inverse-zastavky/internal/domain"
	"github.com/frfole/inverse-zastavky/internal/domain/repository"
	"github.com/frfole/inverse-zastavky/internal/pkg/errors"
	"github.com/frfole/inverse-zastavky/internal/usecase/dto"
)

// MaxChainPageSize caps one page of chain positions.
const MaxChainPageSize = 50

// ChainUseCase обрабатывает просмотр цепочек и привязку позиций к станциям
type ChainUseCase struct {
	chainRepo   repository.ChainRepository
	stationRepo repository.StationRepository
	logger      *zap.Logger
}

func NewChainUseCase(
	chainRepo repository.ChainRepository,
	stationRepo repository.StationRepository,
	logger *zap.Logger,
) *ChainUseCase {
	return &ChainUseCase{
		chainRepo:   chainRepo,
		stationRepo: stationRepo,
		logger:      logger,
	}
}

// List возвращает страницу позиций (limit <= 50), сгруппированную по цепочкам
func (uc *ChainUseCase) List(ctx context.Context, req dto.ListChainsRequest) (*dto.ChainListResponse, error) {
	limit := req.Limit
	if limit <= 0 || limit > MaxChainPageSize {
		limit = MaxChainPageSize
	}

	rows, err := uc.chainRepo.List(ctx, limit, req.Page*limit)
	if err != nil {
		return nil, err
	}

	chains := domain.GroupChains(rows)
	if chains == nil {
		chains = []domain.LinkedChain{}
	}
	return &dto.ChainListResponse{
		Chains: chains,
		Page:   req.Page,
		Limit:  limit,
	}, nil
}

func (uc *ChainUseCase) GetByHash(ctx context.Context, hash string) (*domain.LinkedChain, error) {
	rows, err := uc.chainRepo.GetByHash(ctx, hash)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.ErrChainNotFound.WithDetails(map[string]interface{}{"chain_hash": hash})
	}
	return &domain.LinkedChain{Hash: hash, Stops: rows}, nil
}

// LocateByID привязывает позицию к существующей станции
func (uc *ChainUseCase) LocateByID(ctx context.Context, hash string, req dto.LocateStationRequest) (*dto.LocateResponse, error) {
	stopID, err := uuid.Parse(req.StopID)
	if err != nil {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"stop_id": req.StopID})
	}

	link, err := uc.chainRepo.LinkStation(ctx, hash, req.Pos, stopID)
	if err != nil {
		return nil, err
	}
	station, err := uc.stationRepo.GetByID(ctx, stopID)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Chain position located",
		zap.String("chain_hash", hash),
		zap.Int("pos", req.Pos),
		zap.String("stop_id", stopID.String()))
	return &dto.LocateResponse{Link: link, Station: station}, nil
}

// LocateByPoint создаёт станцию с именем позиции в точке и привязывает её
func (uc *ChainUseCase) LocateByPoint(ctx context.Context, hash string, req dto.LocatePointRequest) (*dto.LocateResponse, error) {
	point := domain.Point{Lat: req.Lat, Lon: req.Lon}
	if !point.Valid() {
		return nil, errors.ErrInvalidCoordinates
	}

	chain, err := uc.GetByHash(ctx, hash)
	if err != nil {
		return nil, err
	}
	if req.Pos < 0 || req.Pos >= len(chain.Stops) {
		return nil, errors.ErrChainNotFound.WithDetails(map[string]interface{}{
			"chain_hash": hash,
			"pos":        req.Pos,
		})
	}

	station, err := uc.stationRepo.Create(ctx, chain.Stops[req.Pos].Name, point)
	if err != nil {
		return nil, err
	}
	link, err := uc.chainRepo.LinkStation(ctx, hash, req.Pos, station.StopID)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Chain position located at new station",
		zap.String("chain_hash", hash),
		zap.Int("pos", req.Pos),
		zap.String("stop_id", station.StopID.String()))
	return &dto.LocateResponse{Link: link, Station: station}, nil
}
