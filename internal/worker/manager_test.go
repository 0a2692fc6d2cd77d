package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type blockingWorker struct {
	*BaseWorker
	ignoreStop bool
}

func (w *blockingWorker) Start(ctx context.Context) error {
	if w.ignoreStop {
		<-ctx.Done()
		return ctx.Err()
	}
	select {
	case <-w.StopChan():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestWorkerManager_StartWithoutWorkers(t *testing.T) {
	m := NewWorkerManager(time.Second, zap.NewNop())
	assert.Error(t, m.Start(context.Background()))
}

func TestWorkerManager_StopWaitsForWorkers(t *testing.T) {
	m := NewWorkerManager(time.Second, zap.NewNop())
	a := &blockingWorker{BaseWorker: NewBaseWorker("a", "g", zap.NewNop())}
	b := &blockingWorker{BaseWorker: NewBaseWorker("b", "g", zap.NewNop())}
	m.Register(a)
	m.Register(b)

	require.NoError(t, m.Start(context.Background()))
	require.NoError(t, m.Stop())
	assert.True(t, a.IsStopped())
	assert.True(t, b.IsStopped())
}

func TestWorkerManager_StopTimesOut(t *testing.T) {
	m := NewWorkerManager(50*time.Millisecond, zap.NewNop())
	m.Register(&blockingWorker{BaseWorker: NewBaseWorker("stuck", "g", zap.NewNop()), ignoreStop: true})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, m.Start(ctx))
	assert.Error(t, m.Stop())
}
