package workers

import (
	"context"
	"time"

	"github.com/avdeyev/memo-keeper/internal/logger"
	"github.com/avdeyev/memo-keeper/internal/service"
)

// sessionCleanupWorker periodically sweeps expired sessions from storage.
// Expired tokens are already rejected at resolve time; the sweep only keeps
// the sessions table from accumulating dead rows.
type sessionCleanupWorker struct {
	ctx      context.Context
	sessions service.SessionService
	interval time.Duration
	logger   *logger.Logger
}

func newSessionCleanupWorker(ctx context.Context, sessions service.SessionService, interval time.Duration, logger *logger.Logger) *sessionCleanupWorker {
	if interval <= 0 {
		interval = time.Hour
	}

	return &sessionCleanupWorker{
		ctx:      ctx,
		sessions: sessions,
		interval: interval,
		logger:   logger,
	}
}

// Run launches the sweep loop in a background goroutine and returns
// immediately. The goroutine exits when the worker's context is cancelled.
func (w *sessionCleanupWorker) Run() {
	go func() {
		t := time.NewTicker(w.interval)
		defer t.Stop()

		for {
			select {
			case <-w.ctx.Done():
				w.logger.Info().Msg("session cleanup worker stopped")
				return
			case <-t.C:
				w.sweep()
			}
		}
	}()
}

func (w *sessionCleanupWorker) sweep() {
	swept, err := w.sessions.CleanupExpired(w.ctx)
	if err != nil {
		w.logger.Err(err).Msg("session cleanup sweep failed")
		return
	}

	if swept > 0 {
		w.logger.Info().Int64("swept", swept).Msg("expired sessions removed")
	}
}
