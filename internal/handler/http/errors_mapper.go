package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/script-writer/internal/service"
	"github.com/MKhiriev/script-writer/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:      http.StatusBadRequest,
	service.ErrInvalidCredentials:       http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid:  http.StatusUnauthorized,
	service.ErrTokenCreationFailed:      http.StatusInternalServerError,
	service.ErrScriptOwnedByAnotherUser: http.StatusForbidden,
	service.ErrOAuthNotConfigured:       http.StatusServiceUnavailable,
	service.ErrUpstreamAuth:             http.StatusBadGateway,

	store.ErrEmailAlreadyExists: http.StatusConflict,
	store.ErrNoUserWasFound:     http.StatusNotFound,
	store.ErrScriptNotFound:     http.StatusNotFound,

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

// writeError maps err onto its HTTP status. Client-caused statuses carry the
// error text; server-side failures get the bare status text so storage
// internals never reach the response body.
func writeError(w http.ResponseWriter, err error) {
	status := statusFromError(err)

	message := err.Error()
	if status >= http.StatusInternalServerError {
		message = http.StatusText(status)
	}

	http.Error(w, message, status)
}
