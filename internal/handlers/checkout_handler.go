package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/eduflex/backend/internal/models"
	"github.com/eduflex/backend/internal/payments"
)

// CheckoutService is the interface that wraps methods for purchasing access
type CheckoutService interface {
	// StartCheckout creates a payment gateway session for a paid course
	StartCheckout(ctx context.Context, actor models.Actor, courseID int) (*payments.CheckoutSession, error)
	// EnrollFree enrolls the actor directly into a free course
	EnrollFree(ctx context.Context, actor models.Actor, courseID int) error
}

// CheckoutHandler handles HTTP requests for course purchase and enrollment
type CheckoutHandler struct {
	BaseHandler
	service CheckoutService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(svc CheckoutService, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all checkout handler routes
func (h *CheckoutHandler) RegisterRoutes(r chi.Router) {
	r.Post("/courses/{id}/checkout", h.StartCheckout)
	r.Post("/courses/{id}/enroll", h.EnrollFree)
}

// StartCheckout handles POST /courses/{id}/checkout
// @Summary Start checkout
// @Description Create a hosted payment session for a paid course and return the redirect URL
// @Tags checkout
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} payments.CheckoutSession "Checkout session"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 409 {object} map[string]string "Free course or already enrolled"
// @Failure 502 {object} map[string]string "Payment gateway unavailable"
// @Security BearerAuth
// @Router /courses/{id}/checkout [post]
func (h *CheckoutHandler) StartCheckout(w http.ResponseWriter, r *http.Request) {
	courseID, ok := h.URLParamInt(w, r, "id")
	if !ok {
		return
	}

	session, err := h.service.StartCheckout(r.Context(), actorFrom(r), courseID)
	if err != nil {
		h.HandleServiceError(w, err, "failed to start checkout")
		return
	}

	h.RespondJSON(w, http.StatusOK, session)
}

// EnrollFree handles POST /courses/{id}/enroll
// @Summary Enroll into a free course
// @Description Enroll the actor directly into a published free course
// @Tags checkout
// @Produce json
// @Param id path int true "Course ID"
// @Success 201 {object} map[string]string "Enrolled"
// @Failure 400 {object} map[string]string "Course requires purchase"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 409 {object} map[string]string "Already enrolled"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /courses/{id}/enroll [post]
func (h *CheckoutHandler) EnrollFree(w http.ResponseWriter, r *http.Request) {
	courseID, ok := h.URLParamInt(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.EnrollFree(r.Context(), actorFrom(r), courseID); err != nil {
		h.HandleServiceError(w, err, "failed to enroll")
		return
	}

	h.RespondJSON(w, http.StatusCreated, map[string]string{"message": "enrolled successfully"})
}
