package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/eduflex/backend/internal/models"
)

// InstructorService is the interface that wraps methods for course management
type InstructorService interface {
	// ListCourses retrieves the actor's own courses, published or not
	ListCourses(ctx context.Context, actor models.Actor) ([]models.Course, error)
	// CreateCourse creates an unpublished course owned by the actor
	CreateCourse(ctx context.Context, actor models.Actor, req *models.CreateCourseRequest) (int, error)
	// GetCourseEditor retrieves a course with its full chapter tree for the management view
	GetCourseEditor(ctx context.Context, actor models.Actor, courseID int) (*models.Course, []models.Chapter, error)
	// UpdateCourse applies a partial update to an owned course
	UpdateCourse(ctx context.Context, actor models.Actor, courseID int, req *models.UpdateCourseRequest) error
	// SetCoursePublished publishes or unpublishes an owned course
	SetCoursePublished(ctx context.Context, actor models.Actor, courseID int, publish bool) error
	// DeleteCourse deletes an owned course together with its content
	DeleteCourse(ctx context.Context, actor models.Actor, courseID int) error
	// AddChapter appends an unpublished chapter to an owned course
	AddChapter(ctx context.Context, actor models.Actor, courseID int, req *models.CreateChapterRequest) (int, error)
	// UpdateChapter applies a partial update to a chapter of an owned course
	UpdateChapter(ctx context.Context, actor models.Actor, chapterID int, req *models.UpdateChapterRequest) error
	// SetChapterPublished publishes or unpublishes a chapter
	SetChapterPublished(ctx context.Context, actor models.Actor, chapterID int, publish bool) error
	// ReorderChapters applies a new chapter ordering inside an owned course
	ReorderChapters(ctx context.Context, actor models.Actor, courseID int, orderedIDs []int) error
	// DeleteChapter deletes a chapter of an owned course
	DeleteChapter(ctx context.Context, actor models.Actor, chapterID int) error
	// GetChapterLessons retrieves all lessons of a chapter for the management view
	GetChapterLessons(ctx context.Context, actor models.Actor, chapterID int) ([]models.Lesson, error)
	// AddLesson appends an unpublished lesson to a chapter of an owned course
	AddLesson(ctx context.Context, actor models.Actor, chapterID int, req *models.CreateLessonRequest) (int, error)
	// UpdateLesson applies a partial update to a lesson of an owned course
	UpdateLesson(ctx context.Context, actor models.Actor, lessonID int, req *models.UpdateLessonRequest) error
	// SetLessonPublished publishes or unpublishes a lesson
	SetLessonPublished(ctx context.Context, actor models.Actor, lessonID int, publish bool) error
	// ReorderLessons applies a new lesson ordering inside a chapter
	ReorderLessons(ctx context.Context, actor models.Actor, chapterID int, orderedIDs []int) error
	// DeleteLesson deletes a lesson of an owned course
	DeleteLesson(ctx context.Context, actor models.Actor, lessonID int) error
	// GetRoster retrieves the enrolled students with their completion percentages
	GetRoster(ctx context.Context, actor models.Actor, courseID int) ([]models.StudentProgress, error)
}

// publishRequest carries the desired publish state for courses, chapters and lessons
type publishRequest struct {
	Published bool `json:"published"`
}

// InstructorHandler handles HTTP requests for the instructor surface
type InstructorHandler struct {
	BaseHandler
	service InstructorService
}

// NewInstructorHandler creates a new instructor handler
func NewInstructorHandler(svc InstructorService, logger *zap.Logger) *InstructorHandler {
	return &InstructorHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all instructor handler routes
func (h *InstructorHandler) RegisterRoutes(r chi.Router) {
	r.Route("/instructor", func(r chi.Router) {
		r.Route("/courses", func(r chi.Router) {
			r.Get("/", h.ListCourses)
			r.Post("/", h.CreateCourse)
			r.Get("/{id}", h.GetCourseEditor)
			r.Patch("/{id}", h.UpdateCourse)
			r.Put("/{id}/publish", h.SetCoursePublished)
			r.Delete("/{id}", h.DeleteCourse)
			r.Post("/{id}/chapters", h.AddChapter)
			r.Put("/{id}/chapters/order", h.ReorderChapters)
			r.Get("/{id}/roster", h.GetRoster)
		})
		r.Route("/chapters", func(r chi.Router) {
			r.Patch("/{id}", h.UpdateChapter)
			r.Put("/{id}/publish", h.SetChapterPublished)
			r.Delete("/{id}", h.DeleteChapter)
			r.Get("/{id}/lessons", h.GetChapterLessons)
			r.Post("/{id}/lessons", h.AddLesson)
			r.Put("/{id}/lessons/order", h.ReorderLessons)
		})
		r.Route("/lessons", func(r chi.Router) {
			r.Patch("/{id}", h.UpdateLesson)
			r.Put("/{id}/publish", h.SetLessonPublished)
			r.Delete("/{id}", h.DeleteLesson)
		})
	})
}

// ListCourses handles GET /instructor/courses
// @Summary List own courses
// @Description Get all courses owned by the authenticated instructor, drafts included
// @Tags instructor
// @Produce json
// @Success 200 {array} models.Course "List of courses"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /instructor/courses [get]
func (h *InstructorHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.service.ListCourses(r.Context(), actorFrom(r))
	if err != nil {
		h.HandleServiceError(w, err, "failed to list instructor courses")
		return
	}

	h.RespondJSON(w, http.StatusOK, courses)
}

// CreateCourse handles POST /instructor/courses
// @Summary Create a course
// @Description Create a new unpublished course owned by the authenticated instructor
// @Tags instructor
// @Accept json
// @Produce json
// @Param request body models.CreateCourseRequest true "Course creation request"
// @Success 201 {object} map[string]any "Course created"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Submissions disabled or wrong role"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /instructor/courses [post]
func (h *InstructorHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCourseRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	courseID, err := h.service.CreateCourse(r.Context(), actorFrom(r), &req)
	if err != nil {
		h.HandleServiceError(w, err, "failed to create course")
		return
	}

	h.RespondJSON(w, http.StatusCreated, map[string]any{
		"id":      courseID,
		"message": "course created successfully",
	})
}

// GetCourseEditor handles GET /instructor/courses/{id}
// @Summary Get course for editing
// @Description Get an owned course with its full chapter list, unpublished items included
// @Tags instructor
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} map[string]any "Course and chapters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not course owner"
// @Failure 404 {object} map[string]string "Course not found"
// @Security BearerAuth
// @Router /instructor/courses/{id} [get]
func (h *InstructorHandler) GetCourseEditor(w http.ResponseWriter, r *http.Request) {
	courseID, ok := h.URLParamInt(w, r, "id")
	if !ok {
		return
	}

	course, chapters, err := h.service.GetCourseEditor(r.Context(), actorFrom(r), courseID)
	if err != nil {
		h.HandleServiceError(w, err, "failed to get course editor")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{
		"course":   course,
		"chapters": chapters,
	})
}

// UpdateCourse handles PATCH /instructor/courses/{id}
// @Summary Update a course
// @Description Apply a partial update to an owned course
// @Tags instructor
// @Accept json
// @Param id path int true "Course ID"
// @Param request body models.UpdateCourseRequest true "Course update request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not course owner"
// @Failure 404 {object} map[string]string "Course not found"
// @Security BearerAuth
// @Router /instructor/courses/{id} [patch]
func (h *InstructorHandler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	courseID, ok := h.URLParamInt(w, r, "id")
	if !ok {
		return
	}

	var req models.UpdateCourseRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.UpdateCourse(r.Context(), actorFrom(r), courseID, &req); err != nil {
		h.HandleServiceError(w, err, "failed to update course")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetCoursePublished handles PUT /instructor/courses/{id}/publish
// @Summary Publish or unpublish a course
// @Description Change the publish state. Publishing requires complete descriptive fields and at least one published chapter.
// @Tags instructor
// @Accept json
// @Param id path int true "Course ID"
// @Param request body publishRequest true "Desired publish state"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Required fields missing"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not course owner"
// @Failure 404 {object} map[string]string "Course not found"
// @Security BearerAuth
// @Router /instructor/courses/{id}/publish [put]
func (h *InstructorHandler) SetCoursePublished(w http.ResponseWriter, r *http.Request) {
	courseID, ok := h.URLParamInt(w, r, "id")
	if !ok {
		return
	}

	var req publishRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.SetCoursePublished(r.Context(), actorFrom(r), courseID, req.Published); err != nil {
		h.HandleServiceError(w, err, "failed to change course publish state")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteCourse handles DELETE /instructor/courses/{id}
// @Summary Delete a course
// @Description Delete an owned course together with its chapters and lessons
// @Tags instructor
// @Param id path int true "Course ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not course owner"
// @Failure 404 {object} map[string]string "Course not found"
// @Security BearerAuth
// @Router /instructor/courses/{id} [delete]
func (h *InstructorHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	courseID, ok := h.URLParamInt(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteCourse(r.Context(), actorFrom(r), courseID); err != nil {
		h.HandleServiceError(w, err, "failed to delete course")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddChapter handles POST /instructor/courses/{id}/chapters
// @Summary Add a chapter
// @Description Append an unpublished chapter at the end of an owned course
// @Tags instructor
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param request body models.CreateChapterRequest true "Chapter creation request"
// @Success 201 {object} map[string]any "Chapter created"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not course owner"
// @Failure 404 {object} map[string]string "Course not found"
// @Security BearerAuth
// @Router /instructor/courses/{id}/chapters [post]
func (h *InstructorHandler) AddChapter(w http.ResponseWriter, r *http.Request) {
	courseID, ok := h.URLParamInt(w, r, "id")
	if !ok {
		return
	}

	var req models.CreateChapterRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	chapterID, err := h.service.AddChapter(r.Context(), actorFrom(r), courseID, &req)
	if err != nil {
		h.HandleServiceError(w, err, "failed to add chapter")
		return
	}

	h.RespondJSON(w, http.StatusCreated, map[string]any{
		"id":      chapterID,
		"message": "chapter created successfully",
	})
}

// ReorderChapters handles PUT /instructor/courses/{id}/chapters/order
// @Summary Reorder chapters
// @Description Apply a new chapter ordering inside an owned course
// @Tags instructor
// @Accept json
// @Param id path int true "Course ID"
// @Param request body models.ReorderRequest true "Ordered chapter IDs"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not course owner"
// @Security BearerAuth
// @Router /instructor/courses/{id}/chapters/order [put]
func (h *InstructorHandler) ReorderChapters(w http.ResponseWriter, r *http.Request) {
	courseID, ok := h.URLParamInt(w, r, "id")
	if !ok {
		return
	}

	var req models.ReorderRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.ReorderChapters(r.Context(), actorFrom(r), courseID, req.OrderedIDs); err != nil {
		h.HandleServiceError(w, err, "failed to reorder chapters")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetRoster handles GET /instructor/courses/{id}/roster
// @Summary Get course roster
// @Description Get the enrolled students of an owned course with each student's completion percentage
// @Tags instructor
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {array} models.StudentProgress "Roster"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not course owner"
// @Failure 404 {object} map[string]string "Course not found"
// @Security BearerAuth
// @Router /instructor/courses/{id}/roster [get]
func (h *InstructorHandler) GetRoster(w http.ResponseWriter, r *http.Request) {
	courseID, ok := h.URLParamInt(w, r, "id")
	if !ok {
		return
	}

	roster, err := h.service.GetRoster(r.Context(), actorFrom(r), courseID)
	if err != nil {
		h.HandleServiceError(w, err, "failed to get roster")
		return
	}

	h.RespondJSON(w, http.StatusOK, roster)
}

// UpdateChapter handles PATCH /instructor/chapters/{id}
// @Summary Update a chapter
// @Tags instructor
// @Accept json
// @Param id path int true "Chapter ID"
// @Param request body models.UpdateChapterRequest true "Chapter update request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 403 {object} map[string]string "Not course owner"
// @Failure 404 {object} map[string]string "Chapter not found"
// @Security BearerAuth
// @Router /instructor/chapters/{id} [patch]
func (h *InstructorHandler) UpdateChapter(w http.ResponseWriter, r *http.Request) {
	chapterID, ok := h.URLParamInt(w, r, "id")
	if !ok {
		return
	}

	var req models.UpdateChapterRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.UpdateChapter(r.Context(), actorFrom(r), chapterID, &req); err != nil {
		h.HandleServiceError(w, err, "failed to update chapter")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetChapterPublished handles PUT /instructor/chapters/{id}/publish
// @Summary Publish or unpublish a chapter
// @Description Publishing requires at least one published lesson inside the chapter
// @Tags instructor
// @Accept json
// @Param id path int true "Chapter ID"
// @Param request body publishRequest true "Desired publish state"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "No published lessons"
// @Failure 403 {object} map[string]string "Not course owner"
// @Failure 404 {object} map[string]string "Chapter not found"
// @Security BearerAuth
// @Router /instructor/chapters/{id}/publish [put]
func (h *InstructorHandler) SetChapterPublished(w http.ResponseWriter, r *http.Request) {
	chapterID, ok := h.URLParamInt(w, r, "id")
	if !ok {
		return
	}

	var req publishRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.SetChapterPublished(r.Context(), actorFrom(r), chapterID, req.Published); err != nil {
		h.HandleServiceError(w, err, "failed to change chapter publish state")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteChapter handles DELETE /instructor/chapters/{id}
// @Summary Delete a chapter
// @Tags instructor
// @Param id path int true "Chapter ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Not course owner"
// @Failure 404 {object} map[string]string "Chapter not found"
// @Security BearerAuth
// @Router /instructor/chapters/{id} [delete]
func (h *InstructorHandler) DeleteChapter(w http.ResponseWriter, r *http.Request) {
	chapterID, ok := h.URLParamInt(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteChapter(r.Context(), actorFrom(r), chapterID); err != nil {
		h.HandleServiceError(w, err, "failed to delete chapter")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetChapterLessons handles GET /instructor/chapters/{id}/lessons
// @Summary List chapter lessons
// @Description Get all lessons of a chapter for the management view, drafts included
// @Tags instructor
// @Produce json
// @Param id path int true "Chapter ID"
// @Success 200 {array} models.Lesson "Lessons"
// @Failure 403 {object} map[string]string "Not course owner"
// @Failure 404 {object} map[string]string "Chapter not found"
// @Security BearerAuth
// @Router /instructor/chapters/{id}/lessons [get]
func (h *InstructorHandler) GetChapterLessons(w http.ResponseWriter, r *http.Request) {
	chapterID, ok := h.URLParamInt(w, r, "id")
	if !ok {
		return
	}

	lessons, err := h.service.GetChapterLessons(r.Context(), actorFrom(r), chapterID)
	if err != nil {
		h.HandleServiceError(w, err, "failed to list chapter lessons")
		return
	}

	h.RespondJSON(w, http.StatusOK, lessons)
}

// AddLesson handles POST /instructor/chapters/{id}/lessons
// @Summary Add a lesson
// @Description Append an unpublished lesson at the end of a chapter
// @Tags instructor
// @Accept json
// @Produce json
// @Param id path int true "Chapter ID"
// @Param request body models.CreateLessonRequest true "Lesson creation request"
// @Success 201 {object} map[string]any "Lesson created"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 403 {object} map[string]string "Not course owner"
// @Failure 404 {object} map[string]string "Chapter not found"
// @Security BearerAuth
// @Router /instructor/chapters/{id}/lessons [post]
func (h *InstructorHandler) AddLesson(w http.ResponseWriter, r *http.Request) {
	chapterID, ok := h.URLParamInt(w, r, "id")
	if !ok {
		return
	}

	var req models.CreateLessonRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	lessonID, err := h.service.AddLesson(r.Context(), actorFrom(r), chapterID, &req)
	if err != nil {
		h.HandleServiceError(w, err, "failed to add lesson")
		return
	}

	h.RespondJSON(w, http.StatusCreated, map[string]any{
		"id":      lessonID,
		"message": "lesson created successfully",
	})
}

// ReorderLessons handles PUT /instructor/chapters/{id}/lessons/order
// @Summary Reorder lessons
// @Description Apply a new lesson ordering inside a chapter
// @Tags instructor
// @Accept json
// @Param id path int true "Chapter ID"
// @Param request body models.ReorderRequest true "Ordered lesson IDs"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 403 {object} map[string]string "Not course owner"
// @Failure 404 {object} map[string]string "Chapter not found"
// @Security BearerAuth
// @Router /instructor/chapters/{id}/lessons/order [put]
func (h *InstructorHandler) ReorderLessons(w http.ResponseWriter, r *http.Request) {
	chapterID, ok := h.URLParamInt(w, r, "id")
	if !ok {
		return
	}

	var req models.ReorderRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.ReorderLessons(r.Context(), actorFrom(r), chapterID, req.OrderedIDs); err != nil {
		h.HandleServiceError(w, err, "failed to reorder lessons")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdateLesson handles PATCH /instructor/lessons/{id}
// @Summary Update a lesson
// @Tags instructor
// @Accept json
// @Param id path int true "Lesson ID"
// @Param request body models.UpdateLessonRequest true "Lesson update request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 403 {object} map[string]string "Not course owner"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Security BearerAuth
// @Router /instructor/lessons/{id} [patch]
func (h *InstructorHandler) UpdateLesson(w http.ResponseWriter, r *http.Request) {
	lessonID, ok := h.URLParamInt(w, r, "id")
	if !ok {
		return
	}

	var req models.UpdateLessonRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.UpdateLesson(r.Context(), actorFrom(r), lessonID, &req); err != nil {
		h.HandleServiceError(w, err, "failed to update lesson")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetLessonPublished handles PUT /instructor/lessons/{id}/publish
// @Summary Publish or unpublish a lesson
// @Description Publishing requires the lesson to carry a video URL
// @Tags instructor
// @Accept json
// @Param id path int true "Lesson ID"
// @Param request body publishRequest true "Desired publish state"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "No video attached"
// @Failure 403 {object} map[string]string "Not course owner"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Security BearerAuth
// @Router /instructor/lessons/{id}/publish [put]
func (h *InstructorHandler) SetLessonPublished(w http.ResponseWriter, r *http.Request) {
	lessonID, ok := h.URLParamInt(w, r, "id")
	if !ok {
		return
	}

	var req publishRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.SetLessonPublished(r.Context(), actorFrom(r), lessonID, req.Published); err != nil {
		h.HandleServiceError(w, err, "failed to change lesson publish state")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteLesson handles DELETE /instructor/lessons/{id}
// @Summary Delete a lesson
// @Tags instructor
// @Param id path int true "Lesson ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Not course owner"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Security BearerAuth
// @Router /instructor/lessons/{id} [delete]
func (h *InstructorHandler) DeleteLesson(w http.ResponseWriter, r *http.Request) {
	lessonID, ok := h.URLParamInt(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteLesson(r.Context(), actorFrom(r), lessonID); err != nil {
		h.HandleServiceError(w, err, "failed to delete lesson")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
