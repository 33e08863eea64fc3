package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/avdeyev/memo-keeper/internal/logger"
	"github.com/avdeyev/memo-keeper/internal/service"
	"github.com/avdeyev/memo-keeper/internal/store"
	"github.com/avdeyev/memo-keeper/internal/utils"
)

// auth is the access guard in front of every owner-scoped route. It runs two
// explicit steps:
//
//  1. authenticate — read the session cookie and resolve it via
//     [service.SessionService.Resolve]. A missing cookie or an unknown,
//     invalidated, or expired token rejects the request with HTTP 401.
//  2. authorize — re-fetch the account behind the session from the credential
//     store via [service.AuthService.FindUser]. A session whose user no
//     longer exists rejects with HTTP 404: the token was valid once, but the
//     identity it names is gone.
//
// On success the resolved user's ID is stored in the request context under
// [utils.UserIDCtxKey] before delegating to the next handler, so downstream
// handlers never touch the cookie themselves.
//
// All rejection events are logged using the context-scoped logger obtained
// via [logger.FromRequest].
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		token, err := getTokenFromCookie(r)
		if err != nil {
			log.Err(err).Send()
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		session, err := h.services.SessionService.Resolve(ctx, token)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrSessionExpiredOrInvalid):
				log.Err(err).Msg("session expired or invalid")
				http.Error(w, service.ErrSessionExpiredOrInvalid.Error(), http.StatusUnauthorized)
				return
			default:
				log.Err(err).Msg("error occurred during session resolution")
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
		}

		user, err := h.services.AuthService.FindUser(ctx, session.UserID)
		if err != nil {
			switch {
			case errors.Is(err, store.ErrNoUserWasFound):
				log.Err(err).Int64("user_id", session.UserID).Msg("session user no longer exists")
				http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
				return
			default:
				log.Err(err).Int64("user_id", session.UserID).Msg("error occurred during user re-fetch")
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
		}

		// Store the authenticated user's ID in the context so that downstream
		// handlers can retrieve it without re-resolving the session.
		ctx = context.WithValue(ctx, utils.UserIDCtxKey, user.UserID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
