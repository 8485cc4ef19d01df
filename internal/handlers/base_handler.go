// Package handlers contains the HTTP layer: request decoding, validation,
// response encoding and the mapping from denial reasons to HTTP statuses.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/eduflex/backend/internal/auth"
	"github.com/eduflex/backend/internal/gate"
	"github.com/eduflex/backend/internal/models"
	"github.com/eduflex/backend/internal/repositories"
)

// actorFrom extracts the acting identity from the request context.
// A missing identity yields the zero-value guest actor.
func actorFrom(r *http.Request) models.Actor {
	actor, _ := auth.GetActor(r.Context())
	return actor
}

var validate = validator.New()

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

// RespondDenial sends a business-rule rejection with its stable reason code
func (h *BaseHandler) RespondDenial(w http.ResponseWriter, d *gate.Denial) {
	body := map[string]string{
		"error":  d.Message,
		"reason": string(d.Reason),
	}
	if d.Field != "" {
		body["field"] = d.Field
	}
	h.RespondJSON(w, denialStatus(d.Reason), body)
}

// HandleServiceError routes a service error to the right response: denials
// become 4xx with a reason code, missing rows become 404, everything else is
// an operational fault logged and returned as 500.
func (h *BaseHandler) HandleServiceError(w http.ResponseWriter, err error, logMessage string) {
	if d, ok := gate.AsDenial(err); ok {
		h.RespondDenial(w, d)
		return
	}
	if errors.Is(err, repositories.ErrNotFound) {
		h.RespondError(w, http.StatusNotFound, err.Error())
		return
	}

	h.Logger.Error(logMessage, zap.Error(err))
	h.RespondError(w, http.StatusInternalServerError, "internal server error")
}

// DecodeAndValidate decodes the JSON body into dst and runs struct validation
func (h *BaseHandler) DecodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// URLParamInt parses a chi URL parameter as an integer
func (h *BaseHandler) URLParamInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	value, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || value < 1 {
		h.RespondError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return value, true
}

// QueryInt parses an optional integer query parameter with a fallback
func QueryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}

// denialStatus maps each denial reason to its HTTP status. The reason set is
// closed, so an unknown reason is a programming error reported as 500.
func denialStatus(reason gate.Reason) int {
	switch reason {
	case gate.ReasonNotAuthenticated:
		return http.StatusUnauthorized
	case gate.ReasonNotAuthorized, gate.ReasonSelfActionForbidden,
		gate.ReasonNotEnrolled, gate.ReasonSubmissionsDisabled:
		return http.StatusForbidden
	case gate.ReasonNotFound:
		return http.StatusNotFound
	case gate.ReasonAlreadyEnrolled, gate.ReasonDuplicateEmail, gate.ReasonFreeCourse:
		return http.StatusConflict
	case gate.ReasonInvalidInput:
		return http.StatusBadRequest
	case gate.ReasonCheckoutSessionFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
