// Package workers runs background jobs alongside the HTTP server.
package workers

import (
	"context"
	"sync"

	"github.com/jmrodas/parkings-api/internal/logger"
)

// Worker is a background job that runs until its context is canceled.
type Worker interface {
	// Name identifies the worker in logs.
	Name() string
	// Run blocks doing the worker's job until ctx is canceled.
	Run(ctx context.Context)
}

// Workers runs a set of workers and waits for them to finish.
type Workers struct {
	workers []Worker
	logger  *logger.Logger
	wg      sync.WaitGroup
}

// NewWorkers builds a runner for the given workers.
func NewWorkers(log *logger.Logger, workers ...Worker) *Workers {
	return &Workers{workers: workers, logger: log}
}

// Run starts every worker in its own goroutine. It returns immediately; use
// Wait to block until all workers stop.
func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		w.wg.Add(1)
		go func(worker Worker) {
			defer w.wg.Done()
			w.logger.Info().Str("worker", worker.Name()).Msg("worker started")
			worker.Run(ctx)
			w.logger.Info().Str("worker", worker.Name()).Msg("worker stopped")
		}(worker)
	}
}

// Wait blocks until every worker has returned.
func (w *Workers) Wait() {
	w.wg.Wait()
}
