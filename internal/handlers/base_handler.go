package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/learnhub/backend/internal/middleware"
	"github.com/learnhub/backend/internal/models"
	"go.uber.org/zap"
)

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger *zap.Logger
}

// RespondJSON sends a JSON response
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// RespondError sends an error JSON response
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, message string) {
	h.RespondJSON(w, status, map[string]string{"error": message})
}

// RespondServiceError maps a service error kind to an HTTP status.
// Errors without a kind are logged and reported as 500 without details.
func (h *BaseHandler) RespondServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := statusForKind(models.KindOf(err))
	if status == http.StatusInternalServerError {
		h.Logger.Error("failed to "+op,
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.Error(err),
		)
		h.RespondError(w, status, "internal server error")
		return
	}

	message := err.Error()
	var domainErr *models.Error
	if errors.As(err, &domainErr) {
		message = domainErr.Message
	}
	h.RespondError(w, status, message)
}

func statusForKind(kind error) int {
	switch kind {
	case models.ErrNotFound:
		return http.StatusNotFound
	case models.ErrForbidden:
		return http.StatusForbidden
	case models.ErrValidation:
		return http.StatusBadRequest
	case models.ErrConflict:
		return http.StatusConflict
	case models.ErrUnavailable:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON decodes the request body into dst, rejecting unknown fields
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return err
	}
	return nil
}

// identity returns the caller identity, the zero Identity for anonymous requests
func identity(r *http.Request) models.Identity {
	id, _ := middleware.GetIdentity(r.Context())
	return id
}
