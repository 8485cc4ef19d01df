package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/eduflex/backend/internal/models"
)

// ContactService is the interface that wraps the contact form submission
type ContactService interface {
	// SubmitMessage stores a contact form submission
	SubmitMessage(ctx context.Context, actor models.Actor, req *models.ContactMessageRequest) (*models.ContactMessage, error)
}

// ProfileService is the interface that wraps the new-user role choice
type ProfileService interface {
	// CompleteProfile lets a freshly registered user pick the student or instructor role
	CompleteProfile(ctx context.Context, actor models.Actor, chosen models.Role) error
}

// ContactHandler handles HTTP requests for the contact form and profile completion
type ContactHandler struct {
	BaseHandler
	contactService ContactService
	profileService ProfileService
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contactService ContactService, profileService ProfileService, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		profileService: profileService,
		BaseHandler:    BaseHandler{Logger: logger},
	}
}

// RegisterPublicRoutes registers the guest-accessible routes
func (h *ContactHandler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/contact", h.SubmitMessage)
}

// RegisterAuthRoutes registers the routes that require a signed-in actor
func (h *ContactHandler) RegisterAuthRoutes(r chi.Router) {
	r.Post("/profile/complete", h.CompleteProfile)
}

// SubmitMessage handles POST /contact
// @Summary Submit a contact message
// @Description Store a contact form submission. Guests may submit; a signed-in actor's identity is attached.
// @Tags contact
// @Accept json
// @Produce json
// @Param request body models.ContactMessageRequest true "Contact message"
// @Success 201 {object} models.ContactMessage "Stored message"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /contact [post]
func (h *ContactHandler) SubmitMessage(w http.ResponseWriter, r *http.Request) {
	var req models.ContactMessageRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	message, err := h.contactService.SubmitMessage(r.Context(), actorFrom(r), &req)
	if err != nil {
		h.HandleServiceError(w, err, "failed to submit contact message")
		return
	}

	h.RespondJSON(w, http.StatusCreated, message)
}

// CompleteProfile handles POST /profile/complete
// @Summary Complete profile
// @Description Choose the student or instructor role after registration. One-shot.
// @Tags profile
// @Accept json
// @Produce json
// @Param request body models.CompleteProfileRequest true "Role choice"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid role"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Profile already completed"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /profile/complete [post]
func (h *ContactHandler) CompleteProfile(w http.ResponseWriter, r *http.Request) {
	var req models.CompleteProfileRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	if err := h.profileService.CompleteProfile(r.Context(), actorFrom(r), req.Role); err != nil {
		h.HandleServiceError(w, err, "failed to complete profile")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
