package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/frfole/inverse-zastavky/internal/domain"
	"github.com/frfole/inverse-zastavky/internal/pkg/errors"
	"github.com/frfole/inverse-zastavky/internal/pkg/utils"
	"github.com/frfole/inverse-zastavky/internal/pkg/validator"
	"github.com/frfole/inverse-zastavky/internal/usecase/dto"
)

// StationService is implemented by *usecase.StationUseCase.
type StationService interface {
	GetByID(ctx context.Context, stopID uuid.UUID) (*domain.Station, error)
	GetByBBox(ctx context.Context, req dto.BBoxRequest) ([]domain.Station, error)
	Search(ctx context.Context, query string) ([]domain.Station, error)
	Create(ctx context.Context, req dto.CreateStationRequest) (*domain.Station, error)
	Move(ctx context.Context, stopID uuid.UUID, req dto.MoveStationRequest) (*domain.Station, error)
	AddName(ctx context.Context, stopID uuid.UUID, name string) (*domain.Station, error)
	RemoveName(ctx context.Context, stopID uuid.UUID, name string) (*domain.Station, error)
	Remove(ctx context.Context, stopID uuid.UUID) error
}

// StationHandler - обработчик реестра найденных станций
type StationHandler struct {
	stations StationService
	logger   *zap.Logger
}

func NewStationHandler(stations StationService, logger *zap.Logger) *StationHandler {
	return &StationHandler{
		stations: stations,
		logger:   logger,
	}
}

func stopID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"id": "uuid"})
	}
	return id, nil
}

func parseBBox(c *fiber.Ctx) (dto.BBoxRequest, error) {
	var req dto.BBoxRequest
	if err := c.QueryParser(&req); err != nil {
		return req, errors.ErrInvalidBBox
	}
	if err := validator.Validate(&req); err != nil {
		return req, err
	}
	return req, nil
}

// GetByBBox godoc
// @Summary Станции в прямоугольнике
// @Description Возвращает до 500 найденных станций; углы можно задавать в любом порядке
// @Tags Stations
// @Produce json
// @Param lat_from query number true "Широта 1"
// @Param lat_to query number true "Широта 2"
// @Param lon_from query number true "Долгота 1"
// @Param lon_to query number true "Долгота 2"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Station}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/stations [get]
func (h *StationHandler) GetByBBox(c *fiber.Ctx) error {
	req, err := parseBBox(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	stations, err := h.stations.GetByBBox(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, stations, &utils.Meta{Total: len(stations)})
}

// Search godoc
// @Summary Поиск станций по имени
// @Description Поиск по подстроке без учёта регистра и диакритики, до 50 станций
// @Tags Stations
// @Produce json
// @Param q query string true "Поисковый запрос"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Station}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/stations/search [get]
func (h *StationHandler) Search(c *fiber.Ctx) error {
	req := dto.SearchRequest{Query: c.Query("q")}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	stations, err := h.stations.Search(c.Context(), req.Query)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, stations, &utils.Meta{Total: len(stations)})
}

// GetByID godoc
// @Summary Станция по идентификатору
// @Tags Stations
// @Produce json
// @Param id path string true "stop_id"
// @Success 200 {object} utils.SuccessResponse{data=domain.Station}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/stations/{id} [get]
func (h *StationHandler) GetByID(c *fiber.Ctx) error {
	id, err := stopID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	station, err := h.stations.GetByID(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, station, nil)
}

// Create godoc
// @Summary Создать станцию
// @Tags Stations
// @Accept json
// @Produce json
// @Param request body dto.CreateStationRequest true "Имя и координаты"
// @Success 201 {object} utils.SuccessResponse{data=domain.Station}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/stations [post]
func (h *StationHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateStationRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	station, err := h.stations.Create(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, station)
}

// Move godoc
// @Summary Переместить станцию
// @Tags Stations
// @Accept json
// @Produce json
// @Param id path string true "stop_id"
// @Param request body dto.MoveStationRequest true "Новые координаты"
// @Success 200 {object} utils.SuccessResponse{data=domain.Station}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/stations/{id}/position [patch]
func (h *StationHandler) Move(c *fiber.Ctx) error {
	id, err := stopID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.MoveStationRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	station, err := h.stations.Move(c.Context(), id, req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, station, nil)
}

// AddName godoc
// @Summary Добавить имя станции
// @Tags Stations
// @Accept json
// @Produce json
// @Param id path string true "stop_id"
// @Param request body dto.StationNameRequest true "Имя"
// @Success 200 {object} utils.SuccessResponse{data=domain.Station}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/stations/{id}/names [post]
func (h *StationHandler) AddName(c *fiber.Ctx) error {
	id, err := stopID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.StationNameRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	station, err := h.stations.AddName(c.Context(), id, req.Name)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, station, nil)
}

// RemoveName godoc
// @Summary Удалить имя станции
// @Description Станция без имён удаляется целиком, тогда data = null
// @Tags Stations
// @Produce json
// @Param id path string true "stop_id"
// @Param name query string true "Имя"
// @Success 200 {object} utils.SuccessResponse{data=domain.Station}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/stations/{id}/names [delete]
func (h *StationHandler) RemoveName(c *fiber.Ctx) error {
	id, err := stopID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	req := dto.StationNameRequest{Name: c.Query("name")}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	station, err := h.stations.RemoveName(c.Context(), id, req.Name)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, station, nil)
}

// Remove godoc
// @Summary Удалить станцию
// @Description Удаляет станцию, её имена и привязки позиций цепочек
// @Tags Stations
// @Param id path string true "stop_id"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/stations/{id} [delete]
func (h *StationHandler) Remove(c *fiber.Ctx) error {
	id, err := stopID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.stations.Remove(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
