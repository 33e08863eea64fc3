package http

import (
	"errors"
	"net/http"

	"github.com/avdeyev/memo-keeper/internal/service"
	"github.com/avdeyev/memo-keeper/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:      http.StatusBadRequest,
	service.ErrInvalidCredentials:       http.StatusUnauthorized,
	service.ErrSessionExpiredOrInvalid:  http.StatusUnauthorized,
	service.ErrValidationTitleTooLong:   http.StatusBadRequest,
	service.ErrValidationContentTooLong: http.StatusBadRequest,

	store.ErrUsernameAlreadyExists: http.StatusConflict,
	store.ErrNoUserWasFound:        http.StatusNotFound,
	store.ErrMemoNotFound:          http.StatusNotFound,
	store.ErrSessionNotFound:       http.StatusUnauthorized,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
