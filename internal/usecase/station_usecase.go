package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/frfole/inverse-zastavky/internal/domain"
	"github.com/frfole/inverse-zastavky/internal/domain/repository"
	"github.com/frfole/inverse-zastavky/internal/pkg/errors"
	"github.com/frfole/inverse-zastavky/internal/usecase/dto"
)

// StationUseCase обрабатывает редактирование реестра станций
type StationUseCase struct {
	stationRepo repository.StationRepository
	logger      *zap.Logger
}

func NewStationUseCase(stationRepo repository.StationRepository, logger *zap.Logger) *StationUseCase {
	return &StationUseCase{
		stationRepo: stationRepo,
		logger:      logger,
	}
}

func (uc *StationUseCase) GetByID(ctx context.Context, stopID uuid.UUID) (*domain.Station, error) {
	return uc.stationRepo.GetByID(ctx, stopID)
}

// GetByName возвращает станции с точным совпадением имени
func (uc *StationUseCase) GetByName(ctx context.Context, name string) ([]domain.Station, error) {
	return orEmpty(uc.stationRepo.GetByName(ctx, name))
}

func (uc *StationUseCase) GetByBBox(ctx context.Context, req dto.BBoxRequest) ([]domain.Station, error) {
	bbox := domain.NewBBox(req.LatFrom, req.LatTo, req.LonFrom, req.LonTo)
	return orEmpty(uc.stationRepo.GetByBBox(ctx, bbox))
}

func (uc *StationUseCase) Search(ctx context.Context, query string) ([]domain.Station, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.Station{}, nil
	}
	return orEmpty(uc.stationRepo.Search(ctx, query))
}

func (uc *StationUseCase) Create(ctx context.Context, req dto.CreateStationRequest) (*domain.Station, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"name": "required"})
	}
	point := domain.Point{Lat: req.Lat, Lon: req.Lon}
	if !point.Valid() {
		return nil, errors.ErrInvalidCoordinates
	}

	station, err := uc.stationRepo.Create(ctx, name, point)
	if err != nil {
		return nil, err
	}
	uc.logger.Info("Station created",
		zap.String("stop_id", station.StopID.String()),
		zap.String("name", name))
	return station, nil
}

func (uc *StationUseCase) Move(ctx context.Context, stopID uuid.UUID, req dto.MoveStationRequest) (*domain.Station, error) {
	point := domain.Point{Lat: req.Lat, Lon: req.Lon}
	if !point.Valid() {
		return nil, errors.ErrInvalidCoordinates
	}
	return uc.stationRepo.Move(ctx, stopID, point)
}

func (uc *StationUseCase) AddName(ctx context.Context, stopID uuid.UUID, name string) (*domain.Station, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"name": "required"})
	}
	return uc.stationRepo.AddName(ctx, stopID, name)
}

// RemoveName удаляет имя станции; если имён не осталось, станция удаляется
// и возвращается nil
func (uc *StationUseCase) RemoveName(ctx context.Context, stopID uuid.UUID, name string) (*domain.Station, error) {
	station, err := uc.stationRepo.RemoveName(ctx, stopID, name)
	if err != nil {
		return nil, err
	}
	if station == nil {
		uc.logger.Info("Station removed with its last name",
			zap.String("stop_id", stopID.String()),
			zap.String("name", name))
	}
	return station, nil
}

func (uc *StationUseCase) Remove(ctx context.Context, stopID uuid.UUID) error {
	if err := uc.stationRepo.Remove(ctx, stopID); err != nil {
		return err
	}
	uc.logger.Info("Station removed", zap.String("stop_id", stopID.String()))
	return nil
}

func orEmpty[T any](items []T, err error) ([]T, error) {
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
