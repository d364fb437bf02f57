package api

import (
	"net/http"

	"github.com/mkessler/stemtutor/internal/apperr"
	"github.com/mkessler/stemtutor/internal/logger"
)

// handleError centralizes error responses: application errors map to their
// status and code, anything else becomes a 500.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	appErr, ok := err.(*apperr.Error)
	if !ok {
		appErr = apperr.Internal(err)
	}

	if appErr.Status >= 500 {
		log.Error("server error: %v", appErr)
	} else {
		log.Warn("client error: %v", appErr)
	}

	writeJSON(w, r, appErr.Status, map[string]any{
		"error": map[string]any{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	})
}
