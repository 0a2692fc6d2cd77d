package handler

import (
	"context"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/frfole/inverse-zastavky/internal/domain"
	"github.com/frfole/inverse-zastavky/internal/pkg/errors"
	"github.com/frfole/inverse-zastavky/internal/pkg/utils"
	"github.com/frfole/inverse-zastavky/internal/pkg/validator"
	"github.com/frfole/inverse-zastavky/internal/usecase/dto"
)

// ChainService is implemented by *usecase.ChainUseCase.
type ChainService interface {
	List(ctx context.Context, req dto.ListChainsRequest) (*dto.ChainListResponse, error)
	GetByHash(ctx context.Context, hash string) (*domain.LinkedChain, error)
	LocateByID(ctx context.Context, hash string, req dto.LocateStationRequest) (*dto.LocateResponse, error)
	LocateByPoint(ctx context.Context, hash string, req dto.LocatePointRequest) (*dto.LocateResponse, error)
}

// SuggestService is implemented by *usecase.SuggestUseCase.
type SuggestService interface {
	SuggestCities(ctx context.Context, hash string, limit int) (*dto.CitySuggestionsResponse, error)
	SuggestStations(ctx context.Context, hash string, limit int) (*dto.StationSuggestionsResponse, error)
}

// ChainHandler - обработчик для цепочек и реконструкции их пути
type ChainHandler struct {
	chains  ChainService
	suggest SuggestService
	logger  *zap.Logger
}

func NewChainHandler(chains ChainService, suggest SuggestService, logger *zap.Logger) *ChainHandler {
	return &ChainHandler{
		chains:  chains,
		suggest: suggest,
		logger:  logger,
	}
}

// chainHash извлекает хеш из пути; base64 содержит "/" и "+", поэтому клиент
// передаёт его URL-кодированным
func chainHash(c *fiber.Ctx) (string, error) {
	hash, err := url.PathUnescape(c.Params("hash"))
	if err != nil {
		return "", errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"hash": "malformed escape"})
	}
	req := dto.SuggestRequest{Hash: hash}
	if err := validator.Validate(&req); err != nil {
		return "", err
	}
	return hash, nil
}

// List godoc
// @Summary Список цепочек
// @Description Возвращает страницу позиций цепочек, сгруппированную по цепочкам (не более 50 позиций)
// @Tags Chains
// @Produce json
// @Param limit query int false "Позиций на странице (<= 50)" default(50)
// @Param page query int false "Номер страницы" default(0)
// @Success 200 {object} utils.SuccessResponse{data=dto.ChainListResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/chains [get]
func (h *ChainHandler) List(c *fiber.Ctx) error {
	var req dto.ListChainsRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.chains.List(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Page:  result.Page,
		Limit: result.Limit,
	})
}

// GetByHash godoc
// @Summary Цепочка по хешу
// @Tags Chains
// @Produce json
// @Param hash path string true "Хеш цепочки (URL-кодированный)"
// @Success 200 {object} utils.SuccessResponse{data=domain.LinkedChain}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/chains/{hash} [get]
func (h *ChainHandler) GetByHash(c *fiber.Ctx) error {
	hash, err := chainHash(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	chain, err := h.chains.GetByHash(c.Context(), hash)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, chain, nil)
}

// LocateStation godoc
// @Summary Привязать позицию к станции
// @Description Связывает позицию цепочки с существующей станцией; имя позиции добавляется к именам станции
// @Tags Chains
// @Accept json
// @Produce json
// @Param hash path string true "Хеш цепочки (URL-кодированный)"
// @Param request body dto.LocateStationRequest true "Позиция и stop_id"
// @Success 200 {object} utils.SuccessResponse{data=dto.LocateResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/chains/{hash}/locate/station [post]
func (h *ChainHandler) LocateStation(c *fiber.Ctx) error {
	hash, err := chainHash(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.LocateStationRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.chains.LocateByID(c.Context(), hash, req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}

// LocatePoint godoc
// @Summary Создать станцию в точке и привязать позицию
// @Tags Chains
// @Accept json
// @Produce json
// @Param hash path string true "Хеш цепочки (URL-кодированный)"
// @Param request body dto.LocatePointRequest true "Позиция и координаты"
// @Success 201 {object} utils.SuccessResponse{data=dto.LocateResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/chains/{hash}/locate/point [post]
func (h *ChainHandler) LocatePoint(c *fiber.Ctx) error {
	hash, err := chainHash(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.LocatePointRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.chains.LocateByPoint(c.Context(), hash, req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, result)
}

// SuggestCities godoc
// @Summary Варианты пути по городам
// @Description Восстанавливает путь цепочки через геокодированные населённые пункты, от кратчайшего
// @Tags Suggest
// @Produce json
// @Param hash path string true "Хеш цепочки (URL-кодированный)"
// @Param limit query int false "Максимум вариантов (0 - все)"
// @Success 200 {object} utils.SuccessResponse{data=dto.CitySuggestionsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/chains/{hash}/suggest/cities [get]
func (h *ChainHandler) SuggestCities(c *fiber.Ctx) error {
	hash, err := chainHash(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	limit := c.QueryInt("limit", 0)

	result, err := h.suggest.SuggestCities(c.Context(), hash, limit)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total:     result.Total,
		Limit:     limit,
		Truncated: result.Truncated,
	})
}

// SuggestStations godoc
// @Summary Варианты пути по станциям
// @Description Восстанавливает путь цепочки через найденные станции; null в пути - позиция без станции
// @Tags Suggest
// @Produce json
// @Param hash path string true "Хеш цепочки (URL-кодированный)"
// @Param limit query int false "Максимум вариантов (0 - все)"
// @Success 200 {object} utils.SuccessResponse{data=dto.StationSuggestionsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/chains/{hash}/suggest/stations [get]
func (h *ChainHandler) SuggestStations(c *fiber.Ctx) error {
	hash, err := chainHash(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	limit := c.QueryInt("limit", 0)

	result, err := h.suggest.SuggestStations(c.Context(), hash, limit)
	if err != nil {
		h.logger.Debug("Station suggestion failed", zap.String("chain_hash", hash), zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total:     result.Total,
		Limit:     limit,
		Truncated: result.Truncated,
	})
}
