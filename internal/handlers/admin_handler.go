package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/eduflex/backend/internal/models"
)

// AdminService is the interface that wraps methods for platform administration
type AdminService interface {
	// ListUsers retrieves a paginated user listing with optional role and search filters
	ListUsers(ctx context.Context, actor models.Actor, page, count int, role *models.Role, search string) ([]models.UserListItem, error)
	// AddUser creates a user with a generated one-time temporary password
	AddUser(ctx context.Context, actor models.Actor, req *models.AddUserRequest) (*models.AddUserResponse, error)
	// UpdateUserRole changes another user's role
	UpdateUserRole(ctx context.Context, actor models.Actor, targetUserID int, role models.Role) error
	// DeleteUser deletes another user's account
	DeleteUser(ctx context.Context, actor models.Actor, targetUserID int) error
	// ListCourses retrieves every course, unpublished included
	ListCourses(ctx context.Context, actor models.Actor, page, count int) ([]models.Course, error)
	// TogglePublish flips a course's publish state and returns the new state
	TogglePublish(ctx context.Context, actor models.Actor, courseID int) (bool, error)
	// DeleteCourse deletes any course regardless of owner
	DeleteCourse(ctx context.Context, actor models.Actor, courseID int) error
	// ListMessages retrieves contact messages with an optional status filter
	ListMessages(ctx context.Context, actor models.Actor, page, count int, status *models.MessageStatus) ([]models.ContactMessage, error)
	// UpdateMessageStatus changes a contact message's moderation status
	UpdateMessageStatus(ctx context.Context, actor models.Actor, messageID int, status models.MessageStatus) error
	// DeleteMessage deletes a contact message
	DeleteMessage(ctx context.Context, actor models.Actor, messageID int) error
}

// SettingsService is the interface that wraps platform settings access
type SettingsService interface {
	// GetSettings returns the merged settings view, defaults plus stored overrides
	GetSettings(ctx context.Context) (models.PlatformSettings, error)
	// UpdateSettings applies a partial admin update and returns the merged view
	UpdateSettings(ctx context.Context, actor models.Actor, req *models.UpdateSettingsRequest) (models.PlatformSettings, error)
}

// AdminHandler handles HTTP requests for the admin surface
type AdminHandler struct {
	BaseHandler
	adminService    AdminService
	settingsService SettingsService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService AdminService, settingsService SettingsService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		adminService:    adminService,
		settingsService: settingsService,
		BaseHandler:     BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all admin handler routes
func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.ListUsers)
			r.Post("/", h.AddUser)
			r.Patch("/{id}/role", h.UpdateUserRole)
			r.Delete("/{id}", h.DeleteUser)
		})
		r.Route("/courses", func(r chi.Router) {
			r.Get("/", h.ListCourses)
			r.Post("/{id}/toggle-publish", h.TogglePublish)
			r.Delete("/{id}", h.DeleteCourse)
		})
		r.Route("/messages", func(r chi.Router) {
			r.Get("/", h.ListMessages)
			r.Patch("/{id}/status", h.UpdateMessageStatus)
			r.Delete("/{id}", h.DeleteMessage)
		})
		r.Route("/settings", func(r chi.Router) {
			r.Get("/", h.GetSettings)
			r.Patch("/", h.UpdateSettings)
		})
	})
}

// ListUsers handles GET /admin/users
// @Summary List users
// @Description Get paginated list of users with optional role and search filters
// @Tags admin
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param count query int false "Items per page (default: 10)"
// @Param role query int false "Role filter (1-4)"
// @Param search query string false "Name or email search"
// @Success 200 {array} models.UserListItem "List of users"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page := QueryInt(r, "page", 1)
	count := QueryInt(r, "count", 10)
	search := r.URL.Query().Get("search")

	var role *models.Role
	if raw := r.URL.Query().Get("role"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || !models.Role(n).Valid() {
			h.RespondError(w, http.StatusBadRequest, "invalid role filter")
			return
		}
		v := models.Role(n)
		role = &v
	}

	users, err := h.adminService.ListUsers(r.Context(), actorFrom(r), page, count, role, search)
	if err != nil {
		h.HandleServiceError(w, err, "failed to list users")
		return
	}

	h.RespondJSON(w, http.StatusOK, users)
}

// AddUser handles POST /admin/users
// @Summary Add a user
// @Description Create a user account with a generated temporary password. The plaintext credential is returned once.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body models.AddUserRequest true "User creation request"
// @Success 201 {object} models.AddUserResponse "Created user and one-time credential"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 409 {object} map[string]string "Email already registered"
// @Security BearerAuth
// @Router /admin/users [post]
func (h *AdminHandler) AddUser(w http.ResponseWriter, r *http.Request) {
	var req models.AddUserRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.adminService.AddUser(r.Context(), actorFrom(r), &req)
	if err != nil {
		h.HandleServiceError(w, err, "failed to add user")
		return
	}

	h.RespondJSON(w, http.StatusCreated, resp)
}

// UpdateUserRole handles PATCH /admin/users/{id}/role
// @Summary Change a user's role
// @Description Change another user's role. Admins cannot change their own.
// @Tags admin
// @Accept json
// @Param id path int true "User ID"
// @Param request body models.UpdateUserRoleRequest true "New role"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid role"
// @Failure 403 {object} map[string]string "Admin access required or self change"
// @Failure 404 {object} map[string]string "User not found"
// @Security BearerAuth
// @Router /admin/users/{id}/role [patch]
func (h *AdminHandler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.URLParamInt(w, r, "id")
	if !ok {
		return
	}

	var req models.UpdateUserRoleRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	if err := h.adminService.UpdateUserRole(r.Context(), actorFrom(r), userID, req.Role); err != nil {
		h.HandleServiceError(w, err, "failed to update user role")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteUser handles DELETE /admin/users/{id}
// @Summary Delete a user
// @Description Delete another user's account. Admins cannot delete their own.
// @Tags admin
// @Param id path int true "User ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Admin access required or self deletion"
// @Failure 404 {object} map[string]string "User not found"
// @Security BearerAuth
// @Router /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.URLParamInt(w, r, "id")
	if !ok {
		return
	}

	if err := h.adminService.DeleteUser(r.Context(), actorFrom(r), userID); err != nil {
		h.HandleServiceError(w, err, "failed to delete user")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListCourses handles GET /admin/courses
// @Summary List all courses
// @Description Get paginated list of every course, drafts included
// @Tags admin
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param count query int false "Items per page (default: 10)"
// @Success 200 {array} models.Course "List of courses"
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /admin/courses [get]
func (h *AdminHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	page := QueryInt(r, "page", 1)
	count := QueryInt(r, "count", 10)

	courses, err := h.adminService.ListCourses(r.Context(), actorFrom(r), page, count)
	if err != nil {
		h.HandleServiceError(w, err, "failed to list courses")
		return
	}

	h.RespondJSON(w, http.StatusOK, courses)
}

// TogglePublish handles POST /admin/courses/{id}/toggle-publish
// @Summary Toggle course publish state
// @Description Flip a course's publish state regardless of owner and return the new state
// @Tags admin
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} map[string]bool "New publish state"
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 404 {object} map[string]string "Course not found"
// @Security BearerAuth
// @Router /admin/courses/{id}/toggle-publish [post]
func (h *AdminHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	courseID, ok := h.URLParamInt(w, r, "id")
	if !ok {
		return
	}

	published, err := h.adminService.TogglePublish(r.Context(), actorFrom(r), courseID)
	if err != nil {
		h.HandleServiceError(w, err, "failed to toggle course publish state")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]bool{"published": published})
}

// DeleteCourse handles DELETE /admin/courses/{id}
// @Summary Delete any course
// @Tags admin
// @Param id path int true "Course ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 404 {object} map[string]string "Course not found"
// @Security BearerAuth
// @Router /admin/courses/{id} [delete]
func (h *AdminHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	courseID, ok := h.URLParamInt(w, r, "id")
	if !ok {
		return
	}

	if err := h.adminService.DeleteCourse(r.Context(), actorFrom(r), courseID); err != nil {
		h.HandleServiceError(w, err, "failed to delete course")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListMessages handles GET /admin/messages
// @Summary List contact messages
// @Description Get paginated contact messages with an optional status filter
// @Tags admin
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param count query int false "Items per page (default: 10)"
// @Param status query string false "Status filter (unread, read, archived)"
// @Success 200 {array} models.ContactMessage "List of messages"
// @Failure 400 {object} map[string]string "Unknown status"
// @Failure 403 {object} map[string]string "Admin access required"
// @Security BearerAuth
// @Router /admin/messages [get]
func (h *AdminHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	page := QueryInt(r, "page", 1)
	count := QueryInt(r, "count", 10)

	var status *models.MessageStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		v := models.MessageStatus(raw)
		status = &v
	}

	messages, err := h.adminService.ListMessages(r.Context(), actorFrom(r), page, count, status)
	if err != nil {
		h.HandleServiceError(w, err, "failed to list messages")
		return
	}

	h.RespondJSON(w, http.StatusOK, messages)
}

// UpdateMessageStatus handles PATCH /admin/messages/{id}/status
// @Summary Change message status
// @Description Change a contact message's moderation status
// @Tags admin
// @Accept json
// @Param id path int true "Message ID"
// @Param request body models.UpdateMessageStatusRequest true "New status"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Unknown status"
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 404 {object} map[string]string "Message not found"
// @Security BearerAuth
// @Router /admin/messages/{id}/status [patch]
func (h *AdminHandler) UpdateMessageStatus(w http.ResponseWriter, r *http.Request) {
	messageID, ok := h.URLParamInt(w, r, "id")
	if !ok {
		return
	}

	var req models.UpdateMessageStatusRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	if err := h.adminService.UpdateMessageStatus(r.Context(), actorFrom(r), messageID, req.Status); err != nil {
		h.HandleServiceError(w, err, "failed to update message status")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteMessage handles DELETE /admin/messages/{id}
// @Summary Delete a contact message
// @Tags admin
// @Param id path int true "Message ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 404 {object} map[string]string "Message not found"
// @Security BearerAuth
// @Router /admin/messages/{id} [delete]
func (h *AdminHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	messageID, ok := h.URLParamInt(w, r, "id")
	if !ok {
		return
	}

	if err := h.adminService.DeleteMessage(r.Context(), actorFrom(r), messageID); err != nil {
		h.HandleServiceError(w, err, "failed to delete message")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetSettings handles GET /admin/settings
// @Summary Get platform settings
// @Description Get the merged platform settings, defaults plus stored overrides
// @Tags admin
// @Produce json
// @Success 200 {object} models.PlatformSettings "Platform settings"
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /admin/settings [get]
func (h *AdminHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsService.GetSettings(r.Context())
	if err != nil {
		h.HandleServiceError(w, err, "failed to get settings")
		return
	}

	h.RespondJSON(w, http.StatusOK, settings)
}

// UpdateSettings handles PATCH /admin/settings
// @Summary Update platform settings
// @Description Apply a partial settings update and return the merged view
// @Tags admin
// @Accept json
// @Produce json
// @Param request body models.UpdateSettingsRequest true "Settings update"
// @Success 200 {object} models.PlatformSettings "Merged settings"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /admin/settings [patch]
func (h *AdminHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateSettingsRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	settings, err := h.settingsService.UpdateSettings(r.Context(), actorFrom(r), &req)
	if err != nil {
		h.HandleServiceError(w, err, "failed to update settings")
		return
	}

	h.RespondJSON(w, http.StatusOK, settings)
}
