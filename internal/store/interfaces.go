package store

import (
	"context"
	"time"

	"github.com/avdeyev/memo-keeper/models"
)

// UserRepository is the credential store. It owns the "users" table and
// enforces username uniqueness at the database level, so concurrent signups
// with the same username resolve to exactly one winner.
type UserRepository interface {
	// CreateUser persists a new account and returns it with server-assigned
	// fields. Returns ErrUsernameAlreadyExists when the username is taken.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByUsername looks up an account by its exact username.
	// Returns ErrNoUserWasFound when no such account exists.
	FindUserByUsername(ctx context.Context, username string) (models.User, error)

	// FindUserByID looks up an account by its identifier.
	// Returns ErrNoUserWasFound when no such account exists.
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
}

// MemoRepository owns the "memos" table. Every operation carries the owner's
// user id as a mandatory filter; a memo belonging to a different user is
// indistinguishable from a memo that does not exist.
type MemoRepository interface {
	CreateMemo(ctx context.Context, memo models.Memo) (models.Memo, error)

	// ListMemos returns the owner's memos in creation order,
	// offset/limit-paginated.
	ListMemos(ctx context.Context, userID int64, offset, limit uint64) ([]models.Memo, error)

	// UpdateMemo applies a partial update: only non-nil fields of update
	// overwrite stored values. Returns ErrMemoNotFound when no memo with
	// update.MemoID exists under update.UserID.
	UpdateMemo(ctx context.Context, update models.MemoUpdate) (models.Memo, error)

	// DeleteMemo removes the memo. Returns ErrMemoNotFound under the same
	// condition as UpdateMemo.
	DeleteMemo(ctx context.Context, userID, memoID int64) error
}

// SessionRepository owns the "sessions" table that maps opaque tokens to
// authenticated identities.
type SessionRepository interface {
	CreateSession(ctx context.Context, session models.Session) error

	// FindAndExtendSession atomically resolves a live session and pushes its
	// inactivity deadline to expiresAt. An unknown, invalidated, or expired
	// token yields ErrSessionNotFound.
	FindAndExtendSession(ctx context.Context, token string, expiresAt time.Time) (models.Session, error)

	// DeleteSession invalidates the token. Deleting an absent token is a
	// no-op, not an error.
	DeleteSession(ctx context.Context, token string) error

	// DeleteExpiredSessions sweeps rows whose deadline has passed and
	// returns the number of removed sessions.
	DeleteExpiredSessions(ctx context.Context) (int64, error)
}

// ErrorClassificator maps driver-level errors to a retryability
// classification.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
