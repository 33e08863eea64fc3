package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs is returned when the database DSN is missing.
	ErrInvalidStorageConfigs = errors.New("invalid storage configs: database DSN is required")

	// ErrInvalidServerConfigs is returned when the HTTP listen address is missing.
	ErrInvalidServerConfigs = errors.New("invalid server configs: http address is required")

	// ErrInvalidAppConfigs is returned when the session TTL is zero or negative.
	ErrInvalidAppConfigs = errors.New("invalid app configs: session ttl must be positive")
)
