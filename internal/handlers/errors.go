package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"taskboard/internal/logger"
	"taskboard/internal/service"
)

// handleServiceError translates typed business failures into the error
// envelope. Anything unrecognized is logged with its cause and surfaces as
// a generic 500.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error, operation string) {
	var busErr *service.BusinessError
	if errors.As(err, &busErr) {
		status := mapBusinessErrorToHTTP(busErr.Code)

		logger.Warn("HTTP: business error",
			zap.String("operation", operation),
			zap.String("error_code", busErr.Code),
			zap.Int("http_status", status))

		respondError(w, r, status, busErr.Message)
		return
	}

	logger.Error("HTTP: unexpected error", err, zap.String("operation", operation))
	respondError(w, r, http.StatusInternalServerError, "internal server error")
}

func mapBusinessErrorToHTTP(code string) int {
	switch code {
	case service.CodeNotFound:
		return http.StatusNotFound
	case service.CodeInvalidDate, service.CodePastDueDate, service.CodeValidation:
		return http.StatusBadRequest
	case service.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
