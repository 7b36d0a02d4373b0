package utils

import (
	"encoding/json"
	"net/http"

	"CATALOG_BACK-END/internal/apperr"
	"CATALOG_BACK-END/internal/dto"
	"CATALOG_BACK-END/internal/logging"
)

// WriteJSONResponse writes a JSON response to the HTTP response writer
func WriteJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// WriteErrorResponse writes err using its stable code and client message.
func WriteErrorResponse(w http.ResponseWriter, err *apperr.Error) {
	WriteJSONResponse(w, err.HTTPStatus(), dto.ErrorResponse{
		ErrorCode:    err.Code,
		ErrorMessage: err.Message,
	})
}

// WriteError renders any error returned by a service. Errors outside the
// taxonomy are logged and reported as a generic internal error.
func WriteError(w http.ResponseWriter, r *http.Request, log logging.Logger, err error) {
	appErr := apperr.From(err)
	if appErr.Kind == apperr.KindInternal {
		log.Error(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	}
	WriteErrorResponse(w, appErr)
}
