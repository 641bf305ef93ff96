package handler

import (
	"errors"
	"net/http"

	"portfolio/internal/domain"
	"portfolio/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	var (
		validationErr   *domain.ValidationError
		preconditionErr *domain.PreconditionError
		conflictErr     *domain.ConflictError
	)

	switch {
	case errors.As(err, &validationErr):
		if len(validationErr.Fields) == 0 {
			httputil.RespondError(w, http.StatusBadRequest, validationErr.Message)
			return
		}
		httputil.RespondErrorWithExtras(w, http.StatusBadRequest, validationErr.Message, map[string]interface{}{
			"fields": validationErr.Fields,
		})
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &preconditionErr):
		httputil.RespondErrorWithExtras(w, http.StatusPreconditionFailed, preconditionErr.Error(), map[string]interface{}{
			"currentVersion": preconditionErr.Current,
		})
	case errors.Is(err, domain.ErrPreconditionFailed):
		httputil.RespondError(w, http.StatusPreconditionFailed, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	case errors.As(err, &conflictErr):
		httputil.RespondError(w, http.StatusConflict, conflictErr.Error())
	case errors.Is(err, domain.ErrStorage):
		// Backend detail stays in the logs
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to save")
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// HealthCheck is a simple health check endpoint
// GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
