package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/avdeyev/memo-keeper/internal/config"
	"github.com/avdeyev/memo-keeper/internal/logger"
	"github.com/avdeyev/memo-keeper/internal/store"
	"github.com/avdeyev/memo-keeper/models"
)

// tokenBytes is the entropy of a session token before hex encoding.
// 32 random bytes make tokens unguessable by brute force.
const tokenBytes = 32

// sessionService is the concrete implementation of SessionService backed by
// a SessionRepository. All state lives in storage; the service itself is
// read-only after construction and safe for concurrent use.
type sessionService struct {
	// sessionRepository is the data-access layer for session rows.
	sessionRepository store.SessionRepository

	// ttl is the inactivity lifetime applied at creation and on every
	// successful resolve.
	ttl time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewSessionService constructs a SessionService wired to the given
// repository and configured with the session TTL from cfg.
func NewSessionService(sessionRepository store.SessionRepository, cfg config.App, logger *logger.Logger) SessionService {
	return &sessionService{
		sessionRepository: sessionRepository,
		ttl:               cfg.SessionTTL,
		logger:            logger,
	}
}

// Create generates a cryptographically random token, stores the identity
// snapshot behind it, and returns the token.
//
// Returns ErrTokenGenerationFailed if the system entropy source fails, or a
// wrapped storage error if the insert fails. In either case no usable
// session exists, so a timed-out login leaves no dangling state.
func (s *sessionService) Create(ctx context.Context, userID int64, username string) (string, error) {
	log := logger.FromContext(ctx)

	token, err := generateToken()
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("session token generation failed")
		return "", fmt.Errorf("%w: %w", ErrTokenGenerationFailed, err)
	}

	now := time.Now()
	session := models.Session{
		Token:     token,
		UserID:    userID,
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.sessionRepository.CreateSession(ctx, session); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("session creation ended with error")
		return "", fmt.Errorf("session creation ended with error: %w", err)
	}

	return token, nil
}

// Resolve looks up a live session and extends its inactivity deadline.
//
// Every failure to positively resolve the token — unknown, invalidated,
// expired — is normalised to ErrSessionExpiredOrInvalid so that callers do
// not need to inspect storage-level errors.
func (s *sessionService) Resolve(ctx context.Context, token string) (models.Session, error) {
	log := logger.FromContext(ctx)

	if token == "" {
		return models.Session{}, ErrSessionExpiredOrInvalid
	}

	session, err := s.sessionRepository.FindAndExtendSession(ctx, token, time.Now().Add(s.ttl))
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return models.Session{}, ErrSessionExpiredOrInvalid
		}

		log.Err(err).Msg("session resolution ended with error")
		return models.Session{}, fmt.Errorf("session resolution ended with error: %w", err)
	}

	return session, nil
}

// Invalidate removes the session behind the token. Unknown tokens are a
// no-op: invalidating twice, or invalidating garbage, succeeds.
func (s *sessionService) Invalidate(ctx context.Context, token string) error {
	log := logger.FromContext(ctx)

	if token == "" {
		return nil
	}

	if err := s.sessionRepository.DeleteSession(ctx, token); err != nil {
		log.Err(err).Msg("session invalidation ended with error")
		return fmt.Errorf("session invalidation ended with error: %w", err)
	}

	return nil
}

// CleanupExpired sweeps sessions past their inactivity deadline.
func (s *sessionService) CleanupExpired(ctx context.Context) (int64, error) {
	return s.sessionRepository.DeleteExpiredSessions(ctx)
}

// generateToken returns a hex-encoded string of tokenBytes random bytes from
// the system CSPRNG.
func generateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	return hex.EncodeToString(buf), nil
}
