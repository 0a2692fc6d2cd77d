package importer

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/frfole/inverse-zastavky/internal/domain"
	"github.com/frfole/inverse-zastavky/internal/domain/repository"
	apperrors "github.com/frfole/inverse-zastavky/internal/pkg/errors"
	"github.com/frfole/inverse-zastavky/internal/worker"
)

const (
	// импорт тяжёлый, берём по одному заданию
	batchSize       = 1
	errorSleep      = time.Second
	emptyQueueSleep = 100 * time.Millisecond

	// задание, не подтверждённое дольше этого, считается брошенным упавшим воркером
	staleJobAge = 30 * time.Minute
	staleBatch  = 10
)

// Importer runs one import job; implemented by *usecase.ImportUseCase.
type Importer interface {
	Run(ctx context.Context, job domain.ImportJob) (*domain.ImportResult, error)
}

// ImportWorker обрабатывает задания на импорт из stream:imports:request
type ImportWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	importer     Importer
	consumerName string
	maxRetries   int
	readTimeout  time.Duration
	retryDelay   time.Duration
}

// NewImportWorker создает новый ImportWorker
func NewImportWorker(
	streamRepo repository.StreamRepository,
	importer Importer,
	consumerGroup string,
	maxRetries int,
	readTimeout time.Duration,
	logger *zap.Logger,
) *ImportWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	if maxRetries < 1 {
		maxRetries = 1
	}

	return &ImportWorker{
		BaseWorker:   worker.NewBaseWorker("import", consumerGroup, logger),
		streamRepo:   streamRepo,
		importer:     importer,
		consumerName: consumerName,
		maxRetries:   maxRetries,
		readTimeout:  readTimeout,
		retryDelay:   time.Second,
	}
}

// Start запускает воркер
func (w *ImportWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting ImportWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamImportRequest, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}
	w.reclaim(ctx)

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		default:
			processed, err := w.processBatch(ctx)
			if err != nil {
				logger.Error("Failed to process batch", zap.Error(err))
				sleep(ctx, errorSleep)
				continue
			}
			if processed == 0 {
				sleep(ctx, emptyQueueSleep)
			}
		}
	}
}

// processBatch читает и выполняет задания; возвращает число прочитанных сообщений
func (w *ImportWorker) processBatch(ctx context.Context) (int, error) {
	messages, err := w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamImportRequest,
		w.ConsumerGroup(),
		w.consumerName,
		batchSize,
		w.readTimeout,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}

	for _, msg := range messages {
		w.handle(ctx, msg)
	}
	return len(messages), nil
}

// reclaim дорабатывает задания упавших воркеров той же группы
func (w *ImportWorker) reclaim(ctx context.Context) {
	stale, err := w.streamRepo.ClaimStale(ctx, domain.StreamImportRequest, w.ConsumerGroup(),
		w.consumerName, staleJobAge, staleBatch)
	if err != nil {
		w.Logger().Warn("Failed to claim stale jobs", zap.Error(err))
		return
	}
	for _, msg := range stale {
		w.handle(ctx, msg)
	}
}

func (w *ImportWorker) handle(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger()

	job, err := parseJob(msg)
	if err != nil {
		logger.Warn("Failed to parse message, skipping",
			zap.String("message_id", msg.ID),
			zap.Error(err))
		// ACK битое сообщение чтобы не застревало
		_ = w.streamRepo.AckMessage(ctx, domain.StreamImportRequest, w.ConsumerGroup(), msg.ID)
		return
	}

	done := domain.ImportDoneEvent{JobID: job.JobID, Kind: job.Kind}
	result, err := w.run(ctx, job)
	if err != nil {
		logger.Error("Import job failed",
			zap.String("job_id", job.JobID.String()),
			zap.String("path", job.Path),
			zap.Error(err))
		done.Error = err.Error()
	} else {
		done.Result = result
	}

	if err := w.streamRepo.PublishToStream(ctx, domain.StreamImportDone, done); err != nil {
		logger.Error("Failed to publish done event",
			zap.String("job_id", job.JobID.String()),
			zap.Error(err))
	}

	// Не критично - задание будет выполнено повторно
	if err := w.streamRepo.AckMessage(ctx, domain.StreamImportRequest, w.ConsumerGroup(), msg.ID); err != nil {
		logger.Error("Failed to ack message", zap.String("message_id", msg.ID), zap.Error(err))
	}
}

// run повторяет задание при сбоях хранилища; ошибки входных данных не повторяются
func (w *ImportWorker) run(ctx context.Context, job domain.ImportJob) (*domain.ImportResult, error) {
	var lastErr error
	for attempt := 1; attempt <= w.maxRetries; attempt++ {
		result, err := w.importer.Run(ctx, job)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !retryable(err) || ctx.Err() != nil {
			break
		}
		if attempt < w.maxRetries {
			w.Logger().Warn("Retrying import job",
				zap.String("job_id", job.JobID.String()),
				zap.Int("attempt", attempt),
				zap.Error(err))
			sleep(ctx, time.Duration(attempt)*w.retryDelay)
		}
	}
	return nil, lastErr
}

func retryable(err error) bool {
	return !stderrors.Is(err, apperrors.ErrImportFailed) && !stderrors.Is(err, apperrors.ErrInvalidRequest)
}

func parseJob(msg domain.StreamMessage) (domain.ImportJob, error) {
	var job domain.ImportJob
	if err := json.Unmarshal([]byte(msg.Data), &job); err != nil {
		return job, fmt.Errorf("failed to unmarshal job: %w", err)
	}
	if !job.Kind.Valid() {
		return job, fmt.Errorf("unknown import kind %q", job.Kind)
	}
	if job.Path == "" {
		return job, fmt.Errorf("missing path")
	}
	return job, nil
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
