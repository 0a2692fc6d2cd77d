package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/frfole/inverse-zastavky/internal/domain"
	"github.com/frfole/inverse-zastavky/internal/pkg/errors"
	"github.com/frfole/inverse-zastavky/internal/pkg/utils"
	"github.com/frfole/inverse-zastavky/internal/pkg/validator"
	"github.com/frfole/inverse-zastavky/internal/usecase/dto"
)

// JobPublisher puts messages on a stream; implemented by the Redis stream repository.
type JobPublisher interface {
	PublishToStream(ctx context.Context, stream string, data interface{}) error
}

// ImportHandler ставит задания на импорт в очередь воркера
type ImportHandler struct {
	publisher JobPublisher
	logger    *zap.Logger
}

func NewImportHandler(publisher JobPublisher, logger *zap.Logger) *ImportHandler {
	return &ImportHandler{
		publisher: publisher,
		logger:    logger,
	}
}

// Enqueue godoc
// @Summary Поставить импорт в очередь
// @Description Путь указывается относительно IMPORT_DIR воркера; результат публикуется в stream:imports:done
// @Tags Imports
// @Accept json
// @Produce json
// @Param request body dto.ImportRequest true "Тип и путь файла"
// @Success 202 {object} utils.SuccessResponse{data=dto.ImportAcceptedResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/imports [post]
func (h *ImportHandler) Enqueue(c *fiber.Ctx) error {
	var req dto.ImportRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	job := domain.ImportJob{
		JobID:     uuid.New(),
		Kind:      domain.ImportKind(req.Kind),
		Path:      req.Path,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.publisher.PublishToStream(c.Context(), domain.StreamImportRequest, job); err != nil {
		h.logger.Error("Failed to enqueue import", zap.Error(err))
		return utils.SendError(c, errors.ErrQueueError)
	}

	h.logger.Info("Import enqueued",
		zap.String("job_id", job.JobID.String()),
		zap.String("kind", req.Kind))
	return c.Status(fiber.StatusAccepted).JSON(utils.SuccessResponse{
		Data: dto.ImportAcceptedResponse{JobID: job.JobID, Kind: job.Kind, Path: job.Path},
	})
}
