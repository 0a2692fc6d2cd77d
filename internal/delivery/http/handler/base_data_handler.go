package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/frfole/inverse-zastavky/internal/domain"
	"github.com/frfole/inverse-zastavky/internal/pkg/utils"
	"github.com/frfole/inverse-zastavky/internal/pkg/validator"
	"github.com/frfole/inverse-zastavky/internal/usecase/dto"
)

// BaseDataService is implemented by *usecase.BaseDataUseCase.
type BaseDataService interface {
	StationsByBBox(ctx context.Context, req dto.BBoxRequest) ([]domain.BaseStation, error)
	SearchCities(ctx context.Context, query string) ([]domain.BaseCity, error)
	CityRemap() map[string]string
}

// BaseDataHandler отдаёт справочные слои
type BaseDataHandler struct {
	base   BaseDataService
	logger *zap.Logger
}

func NewBaseDataHandler(base BaseDataService, logger *zap.Logger) *BaseDataHandler {
	return &BaseDataHandler{
		base:   base,
		logger: logger,
	}
}

// Stations godoc
// @Summary Базовые остановки в прямоугольнике
// @Tags Base
// @Produce json
// @Param lat_from query number true "Широта 1"
// @Param lat_to query number true "Широта 2"
// @Param lon_from query number true "Долгота 1"
// @Param lon_to query number true "Долгота 2"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.BaseStation}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/base/stations [get]
func (h *BaseDataHandler) Stations(c *fiber.Ctx) error {
	req, err := parseBBox(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	stations, err := h.base.StationsByBBox(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, stations, &utils.Meta{Total: len(stations)})
}

// Cities godoc
// @Summary Поиск населённых пунктов
// @Tags Base
// @Produce json
// @Param q query string true "Поисковый запрос"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.BaseCity}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/base/cities [get]
func (h *BaseDataHandler) Cities(c *fiber.Ctx) error {
	req := dto.SearchRequest{Query: c.Query("q")}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	cities, err := h.base.SearchCities(c.Context(), req.Query)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, cities, &utils.Meta{Total: len(cities)})
}

// CityRemap godoc
// @Summary Таблица замен имён городов
// @Tags Other
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=map[string]string}
// @Router /api/v1/other/city-remap [get]
func (h *BaseDataHandler) CityRemap(c *fiber.Ctx) error {
	remap := h.base.CityRemap()
	return utils.SendSuccess(c, remap, &utils.Meta{Total: len(remap)})
}
