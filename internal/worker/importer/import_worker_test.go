package importer

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/frfole/inverse-zastavky/internal/domain"
	apperrors "github.com/frfole/inverse-zastavky/internal/pkg/errors"
)

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, count int64, block time.Duration) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, count, block)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) ClaimStale(ctx context.Context, stream, group, consumer string, minIdle time.Duration, count int64) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, minIdle, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

// MockImporter is a mock of Importer
type MockImporter struct {
	mock.Mock
}

func (m *MockImporter) Run(ctx context.Context, job domain.ImportJob) (*domain.ImportResult, error) {
	args := m.Called(ctx, job)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ImportResult), args.Error(1)
}

func newTestWorker(stream *MockStreamRepository, importer *MockImporter, retries int) *ImportWorker {
	w := NewImportWorker(stream, importer, "test-group", retries, 10*time.Millisecond, zap.NewNop())
	w.retryDelay = 0
	return w
}

func jobMessage(id string, job domain.ImportJob) domain.StreamMessage {
	data, _ := json.Marshal(job)
	return domain.StreamMessage{ID: id, Data: string(data)}
}

func TestImportWorker_Name(t *testing.T) {
	w := newTestWorker(&MockStreamRepository{}, &MockImporter{}, 3)
	assert.Equal(t, "import", w.Name())
}

func TestImportWorker_Stop(t *testing.T) {
	w := newTestWorker(&MockStreamRepository{}, &MockImporter{}, 3)

	// повторная остановка безопасна
	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
	assert.True(t, w.IsStopped())
}

func TestImportWorker_ContextCancellation(t *testing.T) {
	stream := &MockStreamRepository{}
	w := newTestWorker(stream, &MockImporter{}, 3)

	stream.On("CreateConsumerGroup", mock.Anything, domain.StreamImportRequest, "test-group").Return(nil)
	stream.On("ClaimStale", mock.Anything, domain.StreamImportRequest, "test-group",
		mock.AnythingOfType("string"), staleJobAge, int64(staleBatch)).Return(nil, assert.AnError)
	stream.On("ConsumeBatch", mock.Anything, domain.StreamImportRequest, "test-group",
		mock.AnythingOfType("string"), int64(1), 10*time.Millisecond).
		Return([]domain.StreamMessage{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Start(ctx)
	}()

	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.Equal(t, context.Canceled, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Worker did not stop on context cancellation")
	}
	stream.AssertExpectations(t)
}

func TestImportWorker_ConsumerGroupFailure(t *testing.T) {
	stream := &MockStreamRepository{}
	stream.On("CreateConsumerGroup", mock.Anything, domain.StreamImportRequest, "test-group").
		Return(assert.AnError)

	err := newTestWorker(stream, &MockImporter{}, 3).Start(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
}

func TestImportWorker_ReclaimsStaleJobs(t *testing.T) {
	ctx := context.Background()
	stream := &MockStreamRepository{}
	importer := &MockImporter{}
	w := newTestWorker(stream, importer, 1)

	job := domain.ImportJob{JobID: uuid.New(), Kind: domain.ImportNetex, Path: "jdf.zip"}
	stream.On("ClaimStale", ctx, domain.StreamImportRequest, "test-group", w.consumerName, staleJobAge, int64(staleBatch)).
		Return([]domain.StreamMessage{jobMessage("7-0", job), {ID: "8-0"}}, nil)
	importer.On("Run", ctx, job).Return(&domain.ImportResult{Kind: domain.ImportNetex}, nil)
	stream.On("PublishToStream", ctx, domain.StreamImportDone, mock.Anything).Return(nil)
	stream.On("AckMessage", ctx, domain.StreamImportRequest, "test-group", "7-0").Return(nil)
	stream.On("AckMessage", ctx, domain.StreamImportRequest, "test-group", "8-0").Return(nil)

	w.reclaim(ctx)

	importer.AssertNumberOfCalls(t, "Run", 1)
	stream.AssertExpectations(t)
}

func TestImportWorker_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("successful job publishes the result and acks", func(t *testing.T) {
		stream := &MockStreamRepository{}
		importer := &MockImporter{}
		w := newTestWorker(stream, importer, 3)

		job := domain.ImportJob{JobID: uuid.New(), Kind: domain.ImportNetex, Path: "jdf.zip"}
		result := &domain.ImportResult{Kind: domain.ImportNetex, Chains: 12}

		importer.On("Run", ctx, job).Return(result, nil).Once()
		stream.On("PublishToStream", ctx, domain.StreamImportDone, domain.ImportDoneEvent{
			JobID: job.JobID, Kind: job.Kind, Result: result,
		}).Return(nil)
		stream.On("AckMessage", ctx, domain.StreamImportRequest, "test-group", "1-0").Return(nil)

		w.handle(ctx, jobMessage("1-0", job))

		stream.AssertExpectations(t)
		importer.AssertExpectations(t)
	})

	t.Run("storage failure is retried", func(t *testing.T) {
		stream := &MockStreamRepository{}
		importer := &MockImporter{}
		w := newTestWorker(stream, importer, 3)

		job := domain.ImportJob{JobID: uuid.New(), Kind: domain.ImportBaseCities, Path: "obce.geojson"}
		importer.On("Run", ctx, job).Return(nil, apperrors.ErrDatabaseError).Twice()
		importer.On("Run", ctx, job).Return(&domain.ImportResult{Kind: job.Kind, Rows: 6000}, nil).Once()
		stream.On("PublishToStream", ctx, domain.StreamImportDone, mock.MatchedBy(func(ev domain.ImportDoneEvent) bool {
			return ev.Error == "" && ev.Result != nil && ev.Result.Rows == 6000
		})).Return(nil)
		stream.On("AckMessage", ctx, domain.StreamImportRequest, "test-group", "2-0").Return(nil)

		w.handle(ctx, jobMessage("2-0", job))

		importer.AssertNumberOfCalls(t, "Run", 3)
		stream.AssertExpectations(t)
	})

	t.Run("bad input is reported without retry", func(t *testing.T) {
		stream := &MockStreamRepository{}
		importer := &MockImporter{}
		w := newTestWorker(stream, importer, 3)

		job := domain.ImportJob{JobID: uuid.New(), Kind: domain.ImportBaseStations, Path: "broken.geojson"}
		importer.On("Run", ctx, job).Return(nil, apperrors.ErrImportFailed)
		stream.On("PublishToStream", ctx, domain.StreamImportDone, mock.MatchedBy(func(ev domain.ImportDoneEvent) bool {
			return ev.Result == nil && ev.Error == apperrors.ErrImportFailed.Error()
		})).Return(nil)
		stream.On("AckMessage", ctx, domain.StreamImportRequest, "test-group", "3-0").Return(nil)

		w.handle(ctx, jobMessage("3-0", job))

		importer.AssertNumberOfCalls(t, "Run", 1)
		stream.AssertExpectations(t)
	})

	t.Run("malformed message is acked and skipped", func(t *testing.T) {
		stream := &MockStreamRepository{}
		importer := &MockImporter{}
		w := newTestWorker(stream, importer, 3)

		stream.On("AckMessage", ctx, domain.StreamImportRequest, "test-group", "4-0").Return(nil)
		stream.On("AckMessage", ctx, domain.StreamImportRequest, "test-group", "5-0").Return(nil)

		w.handle(ctx, domain.StreamMessage{ID: "4-0", Data: "{not json"})
		w.handle(ctx, jobMessage("5-0", domain.ImportJob{Kind: "gtfs", Path: "x"}))

		importer.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
		stream.AssertNotCalled(t, "PublishToStream", mock.Anything, mock.Anything, mock.Anything)
		stream.AssertExpectations(t)
	})
}
