package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/frfole/inverse-zastavky/internal/domain"
	"github.com/frfole/inverse-zastavky/internal/domain/repository"
	"github.com/frfole/inverse-zastavky/internal/usecase/dto"
)

// BaseDataUseCase отдаёт справочные слои: базовые остановки, города и таблицу ремапа
type BaseDataUseCase struct {
	stationRepo repository.BaseStationRepository
	cityRepo    repository.BaseCityRepository
	remap       map[string]string
	logger      *zap.Logger
}

func NewBaseDataUseCase(
	stationRepo repository.BaseStationRepository,
	cityRepo repository.BaseCityRepository,
	remap map[string]string,
	logger *zap.Logger,
) *BaseDataUseCase {
	if remap == nil {
		remap = map[string]string{}
	}
	return &BaseDataUseCase{
		stationRepo: stationRepo,
		cityRepo:    cityRepo,
		remap:       remap,
		logger:      logger,
	}
}

func (uc *BaseDataUseCase) StationsByBBox(ctx context.Context, req dto.BBoxRequest) ([]domain.BaseStation, error) {
	bbox := domain.NewBBox(req.LatFrom, req.LatTo, req.LonFrom, req.LonTo)
	return orEmpty(uc.stationRepo.GetByBBox(ctx, bbox))
}

func (uc *BaseDataUseCase) SearchCities(ctx context.Context, query string) ([]domain.BaseCity, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.BaseCity{}, nil
	}
	return orEmpty(uc.cityRepo.Search(ctx, query))
}

// CityRemap возвращает таблицу замен имён городов
func (uc *BaseDataUseCase) CityRemap() map[string]string {
	return uc.remap
}
