package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avdeyev/memo-keeper/internal/logger"
	"github.com/avdeyev/memo-keeper/models"
)

// sessionRepository is the PostgreSQL-backed implementation of
// [SessionRepository]. It maintains the "sessions" table mapping opaque
// tokens to authenticated identities.
type sessionRepository struct {
	*DB
	logger *logger.Logger
}

// NewSessionRepository constructs a [SessionRepository] backed by the
// provided database connection and logger.
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	logger.Debug().Msg("creating session repository")
	return &sessionRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateSession inserts a new session row. The token is the primary key, so
// a duplicate insert (which would require a crypto/rand collision) fails
// loudly instead of silently replacing another user's session.
func (s *sessionRepository) CreateSession(ctx context.Context, session models.Session) error {
	log := logger.FromContext(ctx)

	_, err := s.DB.ExecContext(ctx, createSession,
		session.Token, session.UserID, session.Username, session.CreatedAt, session.ExpiresAt)
	if err != nil {
		log.Err(err).
			Str("func", "*sessionRepository.CreateSession").
			Int64("user_id", session.UserID).
			Stringer("retryability", s.errorClassificator.Classify(err)).
			Msg("failed to insert session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// FindAndExtendSession resolves a live session by token and atomically pushes
// its inactivity deadline to expiresAt in the same UPDATE statement.
//
// A token that is unknown, was invalidated by logout, or whose deadline has
// already passed matches no row and yields [ErrSessionNotFound]. The single
// statement makes the read-and-extend atomic per token under concurrent
// requests.
func (s *sessionRepository) FindAndExtendSession(ctx context.Context, token string, expiresAt time.Time) (models.Session, error) {
	log := logger.FromContext(ctx)

	var session models.Session
	row := s.DB.QueryRowContext(ctx, findAndExtendSession, token, expiresAt)

	if err := row.Scan(&session.Token, &session.UserID, &session.Username, &session.CreatedAt, &session.ExpiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, ErrSessionNotFound
		}

		log.Err(err).
			Str("func", "*sessionRepository.FindAndExtendSession").
			Stringer("retryability", s.errorClassificator.Classify(err)).
			Msg("failed to resolve session")
		return models.Session{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return session, nil
}

// DeleteSession removes the session row for the given token. Deleting an
// absent or already-invalidated token is a no-op: logout is idempotent.
func (s *sessionRepository) DeleteSession(ctx context.Context, token string) error {
	log := logger.FromContext(ctx)

	_, err := s.DB.ExecContext(ctx, deleteSession, token)
	if err != nil {
		log.Err(err).
			Str("func", "*sessionRepository.DeleteSession").
			Stringer("retryability", s.errorClassificator.Classify(err)).
			Msg("failed to delete session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// DeleteExpiredSessions removes every session whose inactivity deadline has
// passed and returns the number of swept rows. Called periodically by the
// session cleanup worker.
func (s *sessionRepository) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := s.DB.ExecContext(ctx, deleteExpiredSessions)
	if err != nil {
		log.Err(err).
			Str("func", "*sessionRepository.DeleteExpiredSessions").
			Stringer("retryability", s.errorClassificator.Classify(err)).
			Msg("failed to delete expired sessions")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).
			Str("func", "*sessionRepository.DeleteExpiredSessions").
			Msg("failed to read affected rows")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected, nil
}
