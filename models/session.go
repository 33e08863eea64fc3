package models

import "time"

// Session is the server-side record behind an opaque session token.
//
// UserID and Username are captured at login time as a denormalized snapshot
// of the identity. The access-control middleware re-resolves the user against
// the users table on every request, so a stale snapshot can never act on
// behalf of a vanished account.
type Session struct {
	// Token is the opaque, cryptographically random identifier presented by
	// the client in the session cookie. It is the primary key of the record.
	Token string `json:"-"`

	// UserID is the identifier of the authenticated user.
	UserID int64 `json:"user_id"`

	// Username is the login name captured when the session was created.
	Username string `json:"username"`

	// CreatedAt is the timestamp when the session was established.
	CreatedAt time.Time `json:"created_at"`

	// ExpiresAt is the inactivity deadline. Each successful resolve pushes
	// it forward; a session whose deadline has passed no longer
	// authenticates any request.
	ExpiresAt time.Time `json:"expires_at"`
}

// TableName returns the name of the database table
// associated with the Session model.
func (s Session) TableName() string {
	return "sessions"
}
