package models

import "time"

// User represents an account entity used for authentication and authorization.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	// It is assigned by the database at creation time and never reused.
	UserID int64 `json:"user_id"`

	// Username is the unique user identifier used during authentication.
	// Matching is case-sensitive and the value is immutable after creation.
	Username string `json:"username"`

	// Email is stored as provided at registration. It is not validated for
	// deliverability and is never used for lookup.
	Email string `json:"email"`

	// PasswordHash stores the argon2id-encoded representation of the user's
	// password. This value MUST be a KDF output, never plaintext.
	// It is never exposed via JSON.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
