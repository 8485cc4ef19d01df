package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/eduflex/backend/internal/gate"
	"github.com/eduflex/backend/internal/models"
	"github.com/eduflex/backend/internal/repositories"
	"github.com/eduflex/backend/internal/revalidate"
)

// AdminUserRepository defines user data access for administration
type AdminUserRepository interface {
	// GetAll retrieves a paginated list of users with optional filters
	GetAll(ctx context.Context, page, count int, role *models.Role, search string) ([]models.User, error)
	// ExistsByEmail checks if a user with the given email exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Create inserts a new user
	Create(ctx context.Context, user *models.User) error
	// UpdateRole changes a user's role
	UpdateRole(ctx context.Context, userID int, role models.Role) error
	// Delete deletes a user by ID
	Delete(ctx context.Context, userID int) error
}

// AdminCourseRepository defines course data access for administration
type AdminCourseRepository interface {
	// GetAll retrieves a paginated list of all courses, unpublished included
	GetAll(ctx context.Context, page, count int) ([]models.Course, error)
	// GetByID retrieves a course by ID
	GetByID(ctx context.Context, id int) (*models.Course, error)
	// SetPublished sets the publish state of a course
	SetPublished(ctx context.Context, id int, published bool) error
	// Delete deletes a course
	Delete(ctx context.Context, id int) error
}

// AdminMessageRepository defines contact message access for moderation
type AdminMessageRepository interface {
	// GetAll retrieves a paginated list of messages with an optional status filter
	GetAll(ctx context.Context, page, count int, status *models.MessageStatus) ([]models.ContactMessage, error)
	// UpdateStatus changes a message's moderation status
	UpdateStatus(ctx context.Context, id int, status models.MessageStatus) error
	// Delete deletes a message
	Delete(ctx context.Context, id int) error
}

type adminService struct {
	userRepo    AdminUserRepository
	courseRepo  AdminCourseRepository
	messageRepo AdminMessageRepository
	revalidator Revalidator
}

// NewAdminService creates a new admin service
func NewAdminService(
	userRepo AdminUserRepository,
	courseRepo AdminCourseRepository,
	messageRepo AdminMessageRepository,
	revalidator Revalidator,
) *adminService {
	return &adminService{
		userRepo:    userRepo,
		courseRepo:  courseRepo,
		messageRepo: messageRepo,
		revalidator: revalidator,
	}
}

// ListUsers retrieves a paginated user listing with optional role and search filters
func (s *adminService) ListUsers(ctx context.Context, actor models.Actor, page, count int, role *models.Role, search string) ([]models.UserListItem, error) {
	if actor.Role != models.RoleAdmin {
		return nil, gate.Deny(gate.ReasonNotAuthorized, "admin access required")
	}

	page, count = normalizePage(page, count)
	users, err := s.userRepo.GetAll(ctx, page, count, role, search)
	if err != nil {
		return nil, err
	}

	items := make([]models.UserListItem, 0, len(users))
	for _, user := range users {
		items = append(items, models.UserListItem{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		})
	}
	return items, nil
}

// AddUser creates a user with a generated temporary password. The plaintext
// credential is returned once and never stored.
func (s *adminService) AddUser(ctx context.Context, actor models.Actor, req *models.AddUserRequest) (*models.AddUserResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	taken, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if d := gate.DecideAddUser(actor, req.Name, email, req.Role, taken); d != nil {
		return nil, d
	}

	tempPassword := uuid.NewString()
	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         req.Role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return &models.AddUserResponse{
		ID:           user.ID,
		TempPassword: tempPassword,
	}, nil
}

// UpdateUserRole changes a user's role. Admins cannot change their own role.
func (s *adminService) UpdateUserRole(ctx context.Context, actor models.Actor, targetUserID int, role models.Role) error {
	if d := gate.DecideUpdateUserRole(actor, targetUserID, role); d != nil {
		return d
	}

	err := s.userRepo.UpdateRole(ctx, targetUserID, role)
	if errors.Is(err, repositories.ErrNotFound) {
		return gate.Deny(gate.ReasonNotFound, "user not found")
	}
	return err
}

// DeleteUser deletes a user. Admins cannot delete their own account.
func (s *adminService) DeleteUser(ctx context.Context, actor models.Actor, targetUserID int) error {
	if d := gate.DecideDeleteUser(actor, targetUserID); d != nil {
		return d
	}

	err := s.userRepo.Delete(ctx, targetUserID)
	if errors.Is(err, repositories.ErrNotFound) {
		return gate.Deny(gate.ReasonNotFound, "user not found")
	}
	return err
}

// ListCourses retrieves every course for the admin catalog view
func (s *adminService) ListCourses(ctx context.Context, actor models.Actor, page, count int) ([]models.Course, error) {
	if actor.Role != models.RoleAdmin {
		return nil, gate.Deny(gate.ReasonNotAuthorized, "admin access required")
	}

	page, count = normalizePage(page, count)
	return s.courseRepo.GetAll(ctx, page, count)
}

// TogglePublish flips a course's publish state regardless of owner
func (s *adminService) TogglePublish(ctx context.Context, actor models.Actor, courseID int) (bool, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	exists := err == nil
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return false, err
	}

	if d := gate.DecideAdminTogglePublish(actor, exists); d != nil {
		return false, d
	}

	published := !course.IsPublished
	if err := s.courseRepo.SetPublished(ctx, courseID, published); err != nil {
		return false, err
	}

	s.revalidator.Trigger(ctx, revalidate.CatalogPath, revalidate.CoursePath(courseID))
	return published, nil
}

// DeleteCourse deletes any course regardless of owner
func (s *adminService) DeleteCourse(ctx context.Context, actor models.Actor, courseID int) error {
	_, err := s.courseRepo.GetByID(ctx, courseID)
	exists := err == nil
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return err
	}

	if d := gate.DecideAdminDeleteCourse(actor, exists); d != nil {
		return d
	}

	if err := s.courseRepo.Delete(ctx, courseID); err != nil {
		return err
	}

	s.revalidator.Trigger(ctx, revalidate.CatalogPath)
	return nil
}

// ListMessages retrieves contact messages with an optional status filter
func (s *adminService) ListMessages(ctx context.Context, actor models.Actor, page, count int, status *models.MessageStatus) ([]models.ContactMessage, error) {
	if d := gate.DecideModerateMessages(actor); d != nil {
		return nil, d
	}

	if status != nil && !status.Valid() {
		return nil, gate.DenyField("status", "unknown message status")
	}

	page, count = normalizePage(page, count)
	return s.messageRepo.GetAll(ctx, page, count, status)
}

// UpdateMessageStatus changes a contact message's moderation status
func (s *adminService) UpdateMessageStatus(ctx context.Context, actor models.Actor, messageID int, status models.MessageStatus) error {
	if d := gate.DecideModerateMessages(actor); d != nil {
		return d
	}
	if !status.Valid() {
		return gate.DenyField("status", "unknown message status")
	}

	err := s.messageRepo.UpdateStatus(ctx, messageID, status)
	if errors.Is(err, repositories.ErrNotFound) {
		return gate.Deny(gate.ReasonNotFound, "message not found")
	}
	return err
}

// DeleteMessage deletes a contact message
func (s *adminService) DeleteMessage(ctx context.Context, actor models.Actor, messageID int) error {
	if d := gate.DecideModerateMessages(actor); d != nil {
		return d
	}

	err := s.messageRepo.Delete(ctx, messageID)
	if errors.Is(err, repositories.ErrNotFound) {
		return gate.Deny(gate.ReasonNotFound, "message not found")
	}
	return err
}

// normalizePage applies the default page and page size
func normalizePage(page, count int) (int, int) {
	if page < 1 {
		page = 1
	}
	if count < 1 || count > 100 {
		count = 10
	}
	return page, count
}
