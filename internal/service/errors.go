package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password. The two cases share one error so the login endpoint cannot
	// be used to enumerate registered usernames.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrSessionExpiredOrInvalid is returned when a session token does not
	// resolve: it is unknown, was invalidated by logout, or idled past its
	// deadline.
	ErrSessionExpiredOrInvalid = errors.New("session is expired or invalid")

	ErrTokenGenerationFailed = errors.New("session token generation failed")

	ErrValidationTitleTooLong   = errors.New("memo title exceeds maximum length")
	ErrValidationContentTooLong = errors.New("memo content exceeds maximum length")
)
