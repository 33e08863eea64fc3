package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/avdeyev/memo-keeper/internal/logger"
	"github.com/avdeyev/memo-keeper/internal/store"
	"github.com/avdeyev/memo-keeper/internal/utils"
	"github.com/avdeyev/memo-keeper/models"
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, and session
// lifecycle using a UserRepository for persistence, argon2id for password
// hashing, and a SessionService for token management.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// sessionService establishes and invalidates sessions on login/logout.
	sessionService SessionService

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// UserRepository and SessionService.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, sessionService SessionService, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		sessionService: sessionService,
		logger:         logger,
	}
}

// Register creates a new user account.
//
// It validates that both username and password are non-empty, derives the
// argon2id hash, and delegates persistence to the UserRepository. The hash
// step precedes the insert, so a hashing failure never leaves a record
// behind, and an insert failure never leaks the hash.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - ErrInvalidDataProvided if username or password is empty.
//   - A wrapped storage error if the repository call fails (e.g. username
//     already taken — see store.ErrUsernameAlreadyExists).
func (a *authService) Register(ctx context.Context, username, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if username == "" || password == "" {
		log.Error().Str("username", username).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		log.Err(err).Str("username", username).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, models.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		log.Err(err).Str("username", username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user and establishes a session.
//
// It looks up the account by username and verifies the password against the
// stored argon2id hash. Empty credentials, a missing account, and a failed
// verification all collapse into the same ErrInvalidCredentials, so the
// response shape never reveals whether a username is registered.
//
// On success returns the identity and the opaque session token.
func (a *authService) Login(ctx context.Context, username, password string) (models.User, string, error) {
	log := logger.FromContext(ctx)

	// empty credentials fail the same way as wrong ones, so the error
	// shape does not distinguish malformed from mismatched logins
	if username == "" || password == "" {
		log.Debug().Msg("empty username or password on login")
		return models.User{}, "", ErrInvalidCredentials
	}

	foundUser, err := a.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, "", ErrInvalidCredentials
		}

		log.Err(err).Str("username", username).Msg("user search by username failed")
		return models.User{}, "", fmt.Errorf("user search by username failed: %w", err)
	}

	if !utils.VerifyPassword(password, foundUser.PasswordHash) {
		log.Debug().
			Int64("user_id", foundUser.UserID).
			Str("username", foundUser.Username).
			Msg("wrong password")
		return models.User{}, "", ErrInvalidCredentials
	}

	token, err := a.sessionService.Create(ctx, foundUser.UserID, foundUser.Username)
	if err != nil {
		log.Err(err).Int64("user_id", foundUser.UserID).Msg("session creation on login failed")
		return models.User{}, "", fmt.Errorf("session creation on login failed: %w", err)
	}

	return foundUser, token, nil
}

// Logout destroys the session behind the token. Always succeeds for unknown
// or already-invalidated tokens.
func (a *authService) Logout(ctx context.Context, token string) error {
	return a.sessionService.Invalidate(ctx, token)
}

// FindUser re-resolves a user id against the credential store. Storage
// sentinels (store.ErrNoUserWasFound) pass through wrapped so the transport
// layer can map them to a status code.
func (a *authService) FindUser(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	foundUser, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return foundUser, nil
}
