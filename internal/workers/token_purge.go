package workers

import (
	"context"
	"time"

	"github.com/jmrodas/parkings-api/internal/logger"
	"github.com/jmrodas/parkings-api/internal/store"
)

// TokenPurgeWorker periodically deletes expired token records so the tokens
// table does not grow without bound.
type TokenPurgeWorker struct {
	tokens   store.TokenRepository
	interval time.Duration
	logger   *logger.Logger
}

var _ Worker = (*TokenPurgeWorker)(nil)

// NewTokenPurgeWorker builds a purge worker running every interval.
func NewTokenPurgeWorker(tokens store.TokenRepository, interval time.Duration, log *logger.Logger) *TokenPurgeWorker {
	return &TokenPurgeWorker{tokens: tokens, interval: interval, logger: log}
}

func (w *TokenPurgeWorker) Name() string {
	return "token-purge"
}

// Run purges once at startup, then on every tick until ctx is canceled.
func (w *TokenPurgeWorker) Run(ctx context.Context) {
	w.purge(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.purge(ctx)
		}
	}
}

func (w *TokenPurgeWorker) purge(ctx context.Context) {
	purgeCtx := w.logger.Logger.WithContext(ctx)

	purged, err := w.tokens.PurgeExpired(purgeCtx)
	if err != nil {
		w.logger.Error().Err(err).Msg("error purging expired tokens")
		return
	}
	if purged > 0 {
		w.logger.Info().Int64("purged", purged).Msg("expired tokens purged")
	}
}
