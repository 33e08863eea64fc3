package service

import (
	"context"

	"github.com/avdeyev/memo-keeper/models"
)

// AuthService orchestrates signup, login, and logout over the credential
// store, the password hasher, and the session manager.
type AuthService interface {
	// Register creates a new account. The password is hashed before it ever
	// reaches the repository; a failed hash or insert leaves no partial
	// record. Returns store.ErrUsernameAlreadyExists (wrapped) when the
	// username is taken.
	Register(ctx context.Context, username, email, password string) (models.User, error)

	// Login verifies credentials and establishes a session. Empty
	// credentials, an unknown username, and a wrong password are
	// deliberately indistinguishable: all yield ErrInvalidCredentials.
	// On success the created session token is returned alongside the
	// identity.
	Login(ctx context.Context, username, password string) (models.User, string, error)

	// Logout invalidates the session token. It is idempotent: an unknown or
	// already-invalidated token is not an error.
	Logout(ctx context.Context, token string) error

	// FindUser re-resolves a user id against the credential store. It is the
	// authorize step of the access guard: a session snapshot is only trusted
	// when the referenced account still exists.
	FindUser(ctx context.Context, userID int64) (models.User, error)
}

// SessionService is the session manager: it maps opaque unguessable tokens
// to authenticated identities. Constructed once at process start and passed
// by reference to every request-scoped operation.
type SessionService interface {
	// Create establishes a session for the identity and returns the opaque
	// token the client must present on subsequent requests.
	Create(ctx context.Context, userID int64, username string) (string, error)

	// Resolve returns the identity behind a live token and extends its
	// inactivity deadline. Unknown, invalidated, and expired tokens all
	// yield ErrSessionExpiredOrInvalid.
	Resolve(ctx context.Context, token string) (models.Session, error)

	// Invalidate removes the session. Idempotent.
	Invalidate(ctx context.Context, token string) error

	// CleanupExpired removes sessions past their deadline and returns the
	// number of swept rows.
	CleanupExpired(ctx context.Context) (int64, error)
}

// MemoService implements owner-scoped memo CRUD. Every method takes the
// already-resolved owner id from the access guard — never a client-supplied
// value.
type MemoService interface {
	CreateMemo(ctx context.Context, userID int64, title, content string) (models.Memo, error)

	// ListMemos returns the owner's memos in creation order. A zero limit
	// falls back to the default page size.
	ListMemos(ctx context.Context, userID int64, offset, limit uint64) ([]models.Memo, error)

	// UpdateMemo applies a partial update; nil fields keep their stored
	// values.
	UpdateMemo(ctx context.Context, update models.MemoUpdate) (models.Memo, error)

	DeleteMemo(ctx context.Context, userID, memoID int64) error
}
