package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/frfole/inverse-zastavky/internal/domain"
	"github.com/frfole/inverse-zastavky/internal/pkg/utils"
)

// StatsService is implemented by *usecase.StatsUseCase.
type StatsService interface {
	GetStatistics(ctx context.Context) (*domain.Statistics, error)
	RefreshStatistics(ctx context.Context) (*domain.Statistics, error)
}

// StatsHandler обрабатывает запросы для статистики
type StatsHandler struct {
	statsUC StatsService
	logger  *zap.Logger
}

// NewStatsHandler создает новый экземпляр StatsHandler
func NewStatsHandler(statsUC StatsService, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		statsUC: statsUC,
		logger:  logger,
	}
}

// GetStatistics godoc
// @Summary Статистика
// @Description Счётчики цепочек, станций и базовых слоёв; refresh=true минует кеш
// @Tags Other
// @Produce json
// @Param refresh query bool false "Пересчитать, минуя кеш"
// @Success 200 {object} utils.SuccessResponse{data=domain.Statistics}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/other/stats [get]
func (h *StatsHandler) GetStatistics(c *fiber.Ctx) error {
	load := h.statsUC.GetStatistics
	if c.QueryBool("refresh") {
		load = h.statsUC.RefreshStatistics
	}

	stats, err := load(c.Context())
	if err != nil {
		h.logger.Error("Failed to get statistics", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, stats, nil)
}
