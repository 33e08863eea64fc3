package models

import "time"

// Memo is a short text note owned by exactly one user.
//
// Every persistence operation on a memo is scoped by UserID: a memo is
// visible, mutable and deletable only through queries filtered by its
// owner's identifier.
type Memo struct {
	// MemoID is the internal unique identifier of the memo.
	MemoID int64 `json:"memo_id"`

	// UserID references the owning user. It is set at creation time from
	// the authenticated identity and is immutable afterwards.
	UserID int64 `json:"user_id"`

	// Title is an optional short caption, at most 100 characters.
	Title string `json:"title"`

	// Content is the optional note body, at most 1000 characters.
	Content string `json:"content"`

	// CreatedAt is the timestamp when the memo was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the last modification.
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Memo model.
func (m Memo) TableName() string {
	return "memos"
}

// MemoUpdate describes a partial update of a memo.
//
// Pointer fields distinguish "not provided" (nil) from "provided as empty
// string": only non-nil fields overwrite the stored values, so a client may
// clear the title by sending an explicit empty string while leaving the
// content untouched.
type MemoUpdate struct {
	// MemoID identifies the memo to update.
	MemoID int64 `json:"-"`

	// UserID scopes the update to the owner's records. It comes from the
	// resolved session, never from client input.
	UserID int64 `json:"-"`

	// Title replaces the stored title when non-nil.
	Title *string `json:"title"`

	// Content replaces the stored content when non-nil.
	Content *string `json:"content"`
}
