package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmrodas/parkings-api/internal/logger"
	"github.com/jmrodas/parkings-api/models"
)

type countingWorker struct {
	name string
	runs atomic.Int64
}

func (w *countingWorker) Name() string { return w.name }

func (w *countingWorker) Run(ctx context.Context) {
	w.runs.Add(1)
	<-ctx.Done()
}

func TestWorkersRunAndStop(t *testing.T) {
	a := &countingWorker{name: "a"}
	b := &countingWorker{name: "b"}

	runner := NewWorkers(logger.Nop(), a, b)

	ctx, cancel := context.WithCancel(context.Background())
	runner.Run(ctx)

	// Give the goroutines a moment to start.
	require.Eventually(t, func() bool {
		return a.runs.Load() == 1 && b.runs.Load() == 1
	}, time.Second, 10*time.Millisecond)

	cancel()

	done := make(chan struct{})
	go func() {
		runner.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("workers did not stop after cancel")
	}
}

type countingTokens struct {
	purges atomic.Int64
}

func (c *countingTokens) Save(context.Context, models.TokenRecord) error { return nil }

func (c *countingTokens) Find(context.Context, string) (models.TokenRecord, error) {
	return models.TokenRecord{}, nil
}

func (c *countingTokens) Revoke(context.Context, string) error { return nil }

func (c *countingTokens) PurgeExpired(context.Context) (int64, error) {
	c.purges.Add(1)

	return 2, nil
}

func TestTokenPurgeWorker(t *testing.T) {
	tokens := &countingTokens{}
	worker := NewTokenPurgeWorker(tokens, 20*time.Millisecond, logger.Nop())

	assert.Equal(t, "token-purge", worker.Name())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Run(ctx)
		close(done)
	}()

	// One purge at startup plus at least one tick.
	require.Eventually(t, func() bool {
		return tokens.purges.Load() >= 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}
