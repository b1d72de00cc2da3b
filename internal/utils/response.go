package utils

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"SONJUTOKTOK_BACK-END/internal/apperr"
	"SONJUTOKTOK_BACK-END/internal/dto"
	"SONJUTOKTOK_BACK-END/internal/logger"
)

// WriteJSONResponse writes a JSON response to the HTTP response writer
func WriteJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// WriteErrorResponse writes an ErrorResponse with the given status
func WriteErrorResponse(w http.ResponseWriter, status int, code, message string) {
	WriteJSONResponse(w, status, dto.ErrorResponse{Error: code, Message: message})
}

// WriteError maps err onto the error taxonomy and writes it.
// Untyped errors become 500 and their text is not sent to the client.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperr.As(err)
	if !ok {
		appErr = apperr.Wrap(apperr.KindInternal, "internal server error", err)
	}
	status := appErr.Kind.Status()

	log := logger.From(r.Context())
	switch {
	case status >= http.StatusInternalServerError:
		log.Error("request failed", zap.String("kind", appErr.Kind.Code()), zap.Error(err))
	default:
		log.Info("request rejected", zap.String("kind", appErr.Kind.Code()), zap.Error(err))
	}

	WriteErrorResponse(w, status, appErr.Kind.Code(), appErr.Message)
}
