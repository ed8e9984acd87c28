package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/quennell/hearthstead/internal/domain"
	"github.com/quennell/hearthstead/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload.
// Encoding goes through a pooled buffer so a marshal failure never leaves a
// half-written body behind the already-sent headers.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a failed service call and maps the error to a
// user-facing HTTP response.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	log := logger.FromContext(r.Context())
	log.Error(opName+" failed", "error", err)

	status, message := mapServiceErrorToUserMessage(err)
	respondError(w, status, message)
}

// mapServiceErrorToUserMessage converts domain errors to appropriate HTTP
// status codes and messages the caller can act on.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrVillagerNotFound):
		return http.StatusNotFound, ErrMsgVillagerNotFoundError
	case errors.Is(err, domain.ErrBuildingNotFound):
		return http.StatusNotFound, ErrMsgBuildingNotFoundError
	case errors.Is(err, domain.ErrSlotNotFound):
		return http.StatusNotFound, ErrMsgSlotNotFoundError
	case errors.Is(err, domain.ErrSlotOccupied):
		return http.StatusConflict, ErrMsgSlotOccupiedError
	case errors.Is(err, domain.ErrAlreadyAssigned):
		return http.StatusConflict, ErrMsgAlreadyAssignedError
	case errors.Is(err, domain.ErrIneligibleStage):
		return http.StatusBadRequest, ErrMsgIneligibleStageError
	case errors.Is(err, domain.ErrIneligibleSoldier):
		return http.StatusBadRequest, ErrMsgIneligibleSoldierErr
	case errors.Is(err, domain.ErrJobNotFound):
		return http.StatusNotFound, ErrMsgJobNotFoundError
	case errors.Is(err, domain.ErrEffectNotFound):
		return http.StatusNotFound, ErrMsgEffectNotFoundError
	case errors.Is(err, domain.ErrSiteNotFound):
		return http.StatusNotFound, ErrMsgSiteNotFoundError
	case errors.Is(err, domain.ErrSiteExists):
		return http.StatusConflict, ErrMsgSiteExistsError
	case errors.Is(err, domain.ErrAlreadyBuilt):
		return http.StatusConflict, ErrMsgAlreadyBuiltError
	case errors.Is(err, domain.ErrSnapshotNotFound):
		return http.StatusNotFound, ErrMsgSnapshotNotFoundErr
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestSummary
	}

	// Surface short custom messages (tests and wrapped one-offs); hide the rest.
	if msg := err.Error(); msg != "" && len(msg) < 200 {
		return http.StatusInternalServerError, msg
	}
	return http.StatusInternalServerError, ErrMsgGenericServerError
}
