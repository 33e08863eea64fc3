package service

import (
	"github.com/avdeyev/memo-keeper/internal/config"
	"github.com/avdeyev/memo-keeper/internal/logger"
	"github.com/avdeyev/memo-keeper/internal/store"
)

// Services aggregates every business-logic service the transport and worker
// layers depend on.
type Services struct {
	AuthService
	SessionService
	MemoService
}

// NewServices wires the service layer on top of the given storages.
func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	sessionService := NewSessionService(storages.SessionRepository, cfg.App, logger)

	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, sessionService, logger),
		SessionService: sessionService,
		MemoService:    NewMemoService(storages.MemoRepository, logger),
	}
}
