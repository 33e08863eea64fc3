package workers

import (
	"context"

	"github.com/avdeyev/memo-keeper/internal/config"
	"github.com/avdeyev/memo-keeper/internal/logger"
	"github.com/avdeyev/memo-keeper/internal/service"
)

type Workers struct {
	workers []Worker
}

// NewWorkers assembles every background worker the service runs: currently
// the session sweep that removes expired rows from the sessions table.
func NewWorkers(ctx context.Context, services *service.Services, cfg config.Workers, logger *logger.Logger) *Workers {
	return &Workers{
		workers: []Worker{
			newSessionCleanupWorker(ctx, services.SessionService, cfg.CleanupInterval, logger),
		},
	}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}
