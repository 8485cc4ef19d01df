package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/eduflex/backend/internal/models"
)

// ProgressService is the interface that wraps methods for progress tracking
type ProgressService interface {
	// ToggleCompletion flips the completion flag and returns the new state plus course progress
	ToggleCompletion(ctx context.Context, actor models.Actor, lessonID int) (*models.ToggleCompletionResponse, *models.CourseProgress, error)
	// GetCourseProgress computes the actor's progress in one enrolled course
	GetCourseProgress(ctx context.Context, actor models.Actor, courseID int) (models.CourseProgress, error)
	// GetDashboard computes per-course and overall progress for the actor
	GetDashboard(ctx context.Context, actor models.Actor) (*models.DashboardResponse, error)
}

// WishlistService is the interface that wraps methods for wishlist operations
type WishlistService interface {
	// Toggle adds or removes a course from the actor's wishlist
	Toggle(ctx context.Context, actor models.Actor, courseID int) (*models.ToggleWishlistResponse, error)
	// List retrieves the actor's wishlist
	List(ctx context.Context, actor models.Actor) ([]models.CourseListItem, error)
}

// ReviewService is the interface that wraps methods for review submission
type ReviewService interface {
	// SubmitReview creates or replaces the actor's review of an enrolled course
	SubmitReview(ctx context.Context, actor models.Actor, courseID int, req *models.SubmitReviewRequest) error
}

// LearnerHandler handles HTTP requests for the signed-in learner surface
type LearnerHandler struct {
	BaseHandler
	progressService ProgressService
	wishlistService WishlistService
	reviewService   ReviewService
}

// NewLearnerHandler creates a new learner handler
func NewLearnerHandler(
	progressService ProgressService,
	wishlistService WishlistService,
	reviewService ReviewService,
	logger *zap.Logger,
) *LearnerHandler {
	return &LearnerHandler{
		progressService: progressService,
		wishlistService: wishlistService,
		reviewService:   reviewService,
		BaseHandler:     BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all learner handler routes
func (h *LearnerHandler) RegisterRoutes(r chi.Router) {
	r.Post("/lessons/{id}/complete", h.ToggleCompletion)
	r.Get("/courses/{id}/progress", h.GetCourseProgress)
	r.Get("/dashboard", h.GetDashboard)
	r.Post("/courses/{id}/wishlist", h.ToggleWishlist)
	r.Get("/wishlist", h.GetWishlist)
	r.Post("/courses/{id}/reviews", h.SubmitReview)
}

// ToggleCompletion handles POST /lessons/{id}/complete
// @Summary Toggle lesson completion
// @Description Flip the completion flag for a lesson the actor can access and return the recomputed course progress
// @Tags learner
// @Produce json
// @Param id path int true "Lesson ID"
// @Success 200 {object} map[string]any "New completion state and course progress"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not enrolled"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /lessons/{id}/complete [post]
func (h *LearnerHandler) ToggleCompletion(w http.ResponseWriter, r *http.Request) {
	lessonID, ok := h.URLParamInt(w, r, "id")
	if !ok {
		return
	}

	state, courseProgress, err := h.progressService.ToggleCompletion(r.Context(), actorFrom(r), lessonID)
	if err != nil {
		h.HandleServiceError(w, err, "failed to toggle lesson completion")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{
		"isCompleted": state.IsCompleted,
		"progress":    courseProgress,
	})
}

// GetCourseProgress handles GET /courses/{id}/progress
// @Summary Get course progress
// @Description Get the actor's completion metrics for one enrolled course
// @Tags learner
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} models.CourseProgress "Course progress"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not enrolled"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /courses/{id}/progress [get]
func (h *LearnerHandler) GetCourseProgress(w http.ResponseWriter, r *http.Request) {
	courseID, ok := h.URLParamInt(w, r, "id")
	if !ok {
		return
	}

	courseProgress, err := h.progressService.GetCourseProgress(r.Context(), actorFrom(r), courseID)
	if err != nil {
		h.HandleServiceError(w, err, "failed to get course progress")
		return
	}

	h.RespondJSON(w, http.StatusOK, courseProgress)
}

// GetDashboard handles GET /dashboard
// @Summary Get learner dashboard
// @Description Get per-course progress for every enrollment plus the overall completion figure
// @Tags learner
// @Produce json
// @Success 200 {object} models.DashboardResponse "Dashboard"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /dashboard [get]
func (h *LearnerHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.progressService.GetDashboard(r.Context(), actorFrom(r))
	if err != nil {
		h.HandleServiceError(w, err, "failed to get dashboard")
		return
	}

	h.RespondJSON(w, http.StatusOK, dashboard)
}

// ToggleWishlist handles POST /courses/{id}/wishlist
// @Summary Toggle wishlist
// @Description Add the course to the actor's wishlist, or remove it if already present
// @Tags learner
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} models.ToggleWishlistResponse "New wishlist state"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /courses/{id}/wishlist [post]
func (h *LearnerHandler) ToggleWishlist(w http.ResponseWriter, r *http.Request) {
	courseID, ok := h.URLParamInt(w, r, "id")
	if !ok {
		return
	}

	resp, err := h.wishlistService.Toggle(r.Context(), actorFrom(r), courseID)
	if err != nil {
		h.HandleServiceError(w, err, "failed to toggle wishlist")
		return
	}

	h.RespondJSON(w, http.StatusOK, resp)
}

// GetWishlist handles GET /wishlist
// @Summary Get wishlist
// @Description Get the actor's wishlisted courses
// @Tags learner
// @Produce json
// @Success 200 {array} models.CourseListItem "Wishlisted courses"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /wishlist [get]
func (h *LearnerHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	items, err := h.wishlistService.List(r.Context(), actorFrom(r))
	if err != nil {
		h.HandleServiceError(w, err, "failed to get wishlist")
		return
	}

	h.RespondJSON(w, http.StatusOK, items)
}

// SubmitReview handles POST /courses/{id}/reviews
// @Summary Submit a review
// @Description Create or replace the actor's review of an enrolled course
// @Tags learner
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param request body models.SubmitReviewRequest true "Review"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not enrolled"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /courses/{id}/reviews [post]
func (h *LearnerHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	courseID, ok := h.URLParamInt(w, r, "id")
	if !ok {
		return
	}

	var req models.SubmitReviewRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	if err := h.reviewService.SubmitReview(r.Context(), actorFrom(r), courseID, &req); err != nil {
		h.HandleServiceError(w, err, "failed to submit review")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
