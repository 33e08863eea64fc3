package store

import (
	"context"
	"fmt"

	"github.com/avdeyev/memo-keeper/internal/config"
	"github.com/avdeyev/memo-keeper/internal/logger"
)

// Storages aggregates all repository implementations behind their interfaces.
// It is constructed once at startup and handed to the service layer.
type Storages struct {
	UserRepository    UserRepository
	MemoRepository    MemoRepository
	SessionRepository SessionRepository
}

// NewStorages connects to PostgreSQL, applies pending migrations, and wires
// up all repositories over the shared connection.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("error migrating database: %w", err)
	}

	return &Storages{
		UserRepository:    NewUserRepository(db, log),
		MemoRepository:    NewMemoRepository(db, log),
		SessionRepository: NewSessionRepository(db, log),
	}, nil
}
