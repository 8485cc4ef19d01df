package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/eduflex/backend/internal/models"
)

// CatalogService is the interface that wraps methods for the public catalog
type CatalogService interface {
	// ListCourses retrieves published courses with filtering and pagination
	ListCourses(ctx context.Context, category, search string, page, count int) ([]models.CourseListItem, error)
	// GetCourseDetail retrieves a published course with its chapter tree
	GetCourseDetail(ctx context.Context, actor models.Actor, courseID int) (*models.CourseDetailResponse, error)
	// ListReviews retrieves the reviews of a published course
	ListReviews(ctx context.Context, courseID int) ([]models.ReviewListItem, error)
}

// CatalogHandler handles HTTP requests for the public course catalog
type CatalogHandler struct {
	BaseHandler
	service CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(svc CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all catalog handler routes
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Route("/courses", func(r chi.Router) {
		r.Get("/", h.ListCourses)
		r.Get("/{id}", h.GetCourseDetail)
		r.Get("/{id}/reviews", h.ListReviews)
	})
}

// ListCourses handles GET /courses
// @Summary List published courses
// @Description Get paginated list of published courses with optional category and search filters
// @Tags catalog
// @Produce json
// @Param category query string false "Category filter"
// @Param search query string false "Search query"
// @Param page query int false "Page number (default: 1)"
// @Param count query int false "Items per page (default: 10)"
// @Success 200 {array} models.CourseListItem "List of courses"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses [get]
func (h *CatalogHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	search := r.URL.Query().Get("search")
	page := QueryInt(r, "page", 1)
	count := QueryInt(r, "count", 10)

	courses, err := h.service.ListCourses(r.Context(), category, search, page, count)
	if err != nil {
		h.HandleServiceError(w, err, "failed to list courses")
		return
	}

	h.RespondJSON(w, http.StatusOK, courses)
}

// GetCourseDetail handles GET /courses/{id}
// @Summary Get course detail
// @Description Get a published course with its published chapters and lessons. Enrolled users see completion flags; everyone else sees non-preview lessons locked.
// @Tags catalog
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} models.CourseDetailResponse "Course detail"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses/{id} [get]
func (h *CatalogHandler) GetCourseDetail(w http.ResponseWriter, r *http.Request) {
	courseID, ok := h.URLParamInt(w, r, "id")
	if !ok {
		return
	}

	detail, err := h.service.GetCourseDetail(r.Context(), actorFrom(r), courseID)
	if err != nil {
		h.HandleServiceError(w, err, "failed to get course detail")
		return
	}

	h.RespondJSON(w, http.StatusOK, detail)
}

// ListReviews handles GET /courses/{id}/reviews
// @Summary List course reviews
// @Description Get the reviews of a published course
// @Tags catalog
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {array} models.ReviewListItem "List of reviews"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses/{id}/reviews [get]
func (h *CatalogHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	courseID, ok := h.URLParamInt(w, r, "id")
	if !ok {
		return
	}

	reviews, err := h.service.ListReviews(r.Context(), courseID)
	if err != nil {
		h.HandleServiceError(w, err, "failed to list reviews")
		return
	}

	h.RespondJSON(w, http.StatusOK, reviews)
}
