package services

import (
	"context"
	"fmt"

	"github.com/eduflex/backend/internal/models"
	"github.com/eduflex/backend/internal/payments"
	"github.com/eduflex/backend/internal/repositories"
)

// mockCourseRepo is a mock implementation of the course repository interfaces
type mockCourseRepo struct {
	course    *models.Course
	courses   []models.Course
	listItems []models.CourseListItem
	err       error

	updatedID    int
	publishedSet *bool
	deletedID    int
	createdID    int
}

func (m *mockCourseRepo) GetByID(ctx context.Context, id int) (*models.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.course == nil {
		return nil, fmt.Errorf("course %w", repositories.ErrNotFound)
	}
	return m.course, nil
}

func (m *mockCourseRepo) GetPublished(ctx context.Context, category, search string, page, count int) ([]models.CourseListItem, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.listItems, nil
}

func (m *mockCourseRepo) GetAll(ctx context.Context, page, count int) ([]models.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.courses, nil
}

func (m *mockCourseRepo) GetByInstructor(ctx context.Context, instructorID int) ([]models.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.courses, nil
}

func (m *mockCourseRepo) Create(ctx context.Context, course *models.Course) error {
	if m.err != nil {
		return m.err
	}
	course.ID = m.createdID
	return nil
}

func (m *mockCourseRepo) Update(ctx context.Context, id int, req *models.UpdateCourseRequest) error {
	if m.err != nil {
		return m.err
	}
	m.updatedID = id
	return nil
}

func (m *mockCourseRepo) SetPublished(ctx context.Context, id int, published bool) error {
	if m.err != nil {
		return m.err
	}
	m.publishedSet = &published
	return nil
}

func (m *mockCourseRepo) Delete(ctx context.Context, id int) error {
	if m.err != nil {
		return m.err
	}
	m.deletedID = id
	return nil
}

// mockLessonRepo is a mock implementation of the lesson repository interfaces
type mockLessonRepo struct {
	lesson         *models.Lesson
	lessons        []models.Lesson
	tree           []models.ChapterWithLessons
	accessCourseID int
	published      bool
	freePreview    bool
	publishedCount int
	err            error
	accessErr      error
}

func (m *mockLessonRepo) GetByID(ctx context.Context, id int) (*models.Lesson, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.lesson == nil {
		return nil, fmt.Errorf("lesson %w", repositories.ErrNotFound)
	}
	return m.lesson, nil
}

func (m *mockLessonRepo) GetByChapterID(ctx context.Context, chapterID int) ([]models.Lesson, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.lessons, nil
}

func (m *mockLessonRepo) GetPublishedTree(ctx context.Context, courseID int) ([]models.ChapterWithLessons, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.tree, nil
}

func (m *mockLessonRepo) GetAccessInfo(ctx context.Context, lessonID int) (int, bool, bool, error) {
	if m.accessErr != nil {
		return 0, false, false, m.accessErr
	}
	return m.accessCourseID, m.published, m.freePreview, nil
}

func (m *mockLessonRepo) Create(ctx context.Context, lesson *models.Lesson) error {
	return m.err
}

func (m *mockLessonRepo) Update(ctx context.Context, id int, req *models.UpdateLessonRequest) error {
	return m.err
}

func (m *mockLessonRepo) SetPublished(ctx context.Context, id int, published bool) error {
	return m.err
}

func (m *mockLessonRepo) Reorder(ctx context.Context, chapterID int, orderedIDs []int) error {
	return m.err
}

func (m *mockLessonRepo) CountPublishedByChapter(ctx context.Context, chapterID int) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.publishedCount, nil
}

func (m *mockLessonRepo) Delete(ctx context.Context, id int) error {
	return m.err
}

// mockChapterRepo is a mock implementation of the chapter repository interface
type mockChapterRepo struct {
	chapter        *models.Chapter
	chapters       []models.Chapter
	publishedCount int
	err            error

	publishedSet *bool
	reorderedIDs []int
	deletedID    int
}

func (m *mockChapterRepo) GetByID(ctx context.Context, id int) (*models.Chapter, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.chapter == nil {
		return nil, fmt.Errorf("chapter %w", repositories.ErrNotFound)
	}
	return m.chapter, nil
}

func (m *mockChapterRepo) GetByCourseID(ctx context.Context, courseID int) ([]models.Chapter, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.chapters, nil
}

func (m *mockChapterRepo) Create(ctx context.Context, chapter *models.Chapter) error {
	return m.err
}

func (m *mockChapterRepo) Update(ctx context.Context, id int, req *models.UpdateChapterRequest) error {
	return m.err
}

func (m *mockChapterRepo) SetPublished(ctx context.Context, id int, published bool) error {
	if m.err != nil {
		return m.err
	}
	m.publishedSet = &published
	return nil
}

func (m *mockChapterRepo) Reorder(ctx context.Context, courseID int, orderedIDs []int) error {
	if m.err != nil {
		return m.err
	}
	m.reorderedIDs = orderedIDs
	return nil
}

func (m *mockChapterRepo) CountPublishedByCourse(ctx context.Context, courseID int) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.publishedCount, nil
}

func (m *mockChapterRepo) Delete(ctx context.Context, id int) error {
	if m.err != nil {
		return m.err
	}
	m.deletedID = id
	return nil
}

// mockEnrollmentRepo is a mock implementation of the enrollment repository interfaces
type mockEnrollmentRepo struct {
	enrolled  bool
	courseIDs []int
	students  []models.EnrolledStudent
	err       error

	createCalled bool
}

func (m *mockEnrollmentRepo) Exists(ctx context.Context, userID, courseID int) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.enrolled, nil
}

func (m *mockEnrollmentRepo) Create(ctx context.Context, userID, courseID int) error {
	if m.err != nil {
		return m.err
	}
	m.createCalled = true
	return nil
}

func (m *mockEnrollmentRepo) ListCourseIDsByUser(ctx context.Context, userID int) ([]int, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.courseIDs, nil
}

func (m *mockEnrollmentRepo) ListStudentsByCourse(ctx context.Context, courseID int) ([]models.EnrolledStudent, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.students, nil
}

// mockProgressRepo is a mock implementation of the progress repository interfaces
type mockProgressRepo struct {
	completed    bool
	completedIDs map[int][]int // keyed by userID, falls back to defaultIDs
	defaultIDs   []int
	err          error

	setLessonID  int
	setCompleted *bool
}

func (m *mockProgressRepo) IsCompleted(ctx context.Context, userID, lessonID int) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.completed, nil
}

func (m *mockProgressRepo) SetCompleted(ctx context.Context, userID, lessonID int, completed bool) error {
	if m.err != nil {
		return m.err
	}
	m.setLessonID = lessonID
	m.setCompleted = &completed
	return nil
}

func (m *mockProgressRepo) GetCompletedLessonIDsByCourse(ctx context.Context, userID, courseID int) ([]int, error) {
	if m.err != nil {
		return nil, m.err
	}
	if ids, ok := m.completedIDs[userID]; ok {
		return ids, nil
	}
	return m.defaultIDs, nil
}

// mockUserRepo is a mock implementation of the user repository interfaces
type mockUserRepo struct {
	user       *models.User
	users      []models.User
	emailTaken bool
	err        error

	createdUser *models.User
	updatedRole *models.Role
	deletedID   int
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.user == nil {
		return nil, fmt.Errorf("user %w", repositories.ErrNotFound)
	}
	return m.user, nil
}

func (m *mockUserRepo) GetAll(ctx context.Context, page, count int, role *models.Role, search string) ([]models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.users, nil
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.emailTaken, nil
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if m.err != nil {
		return m.err
	}
	user.ID = 42
	m.createdUser = user
	return nil
}

func (m *mockUserRepo) UpdateRole(ctx context.Context, userID int, role models.Role) error {
	if m.err != nil {
		return m.err
	}
	m.updatedRole = &role
	return nil
}

func (m *mockUserRepo) Delete(ctx context.Context, userID int) error {
	if m.err != nil {
		return m.err
	}
	m.deletedID = userID
	return nil
}

// mockWishlistRepo is a mock implementation of WishlistRepository
type mockWishlistRepo struct {
	exists    bool
	listItems []models.CourseListItem
	err       error

	createCalled bool
	deleteCalled bool
}

func (m *mockWishlistRepo) Exists(ctx context.Context, userID, courseID int) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.exists, nil
}

func (m *mockWishlistRepo) Create(ctx context.Context, userID, courseID int) error {
	if m.err != nil {
		return m.err
	}
	m.createCalled = true
	return nil
}

func (m *mockWishlistRepo) Delete(ctx context.Context, userID, courseID int) error {
	if m.err != nil {
		return m.err
	}
	m.deleteCalled = true
	return nil
}

func (m *mockWishlistRepo) ListByUser(ctx context.Context, userID int) ([]models.CourseListItem, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.listItems, nil
}

// mockReviewRepo is a mock implementation of ReviewRepository
type mockReviewRepo struct {
	reviews []models.ReviewListItem
	err     error

	upsertCalled bool
	lastRating   int
}

func (m *mockReviewRepo) Upsert(ctx context.Context, userID, courseID, rating int, comment string) error {
	if m.err != nil {
		return m.err
	}
	m.upsertCalled = true
	m.lastRating = rating
	return nil
}

func (m *mockReviewRepo) ListByCourse(ctx context.Context, courseID int) ([]models.ReviewListItem, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.reviews, nil
}

// mockMessageRepo is a mock implementation of the contact message interfaces
type mockMessageRepo struct {
	messages []models.ContactMessage
	err      error

	created       *models.ContactMessage
	updatedStatus *models.MessageStatus
	deletedID     int
}

func (m *mockMessageRepo) Create(ctx context.Context, message *models.ContactMessage) error {
	if m.err != nil {
		return m.err
	}
	message.ID = 7
	m.created = message
	return nil
}

func (m *mockMessageRepo) GetAll(ctx context.Context, page, count int, status *models.MessageStatus) ([]models.ContactMessage, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.messages, nil
}

func (m *mockMessageRepo) UpdateStatus(ctx context.Context, id int, status models.MessageStatus) error {
	if m.err != nil {
		return m.err
	}
	m.updatedStatus = &status
	return nil
}

func (m *mockMessageRepo) Delete(ctx context.Context, id int) error {
	if m.err != nil {
		return m.err
	}
	m.deletedID = id
	return nil
}

// mockSettingsRepo is a mock implementation of SettingsRepository
type mockSettingsRepo struct {
	stored map[string]string
	err    error

	upserted map[string]string
}

func (m *mockSettingsRepo) GetAll(ctx context.Context) (map[string]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.stored == nil {
		return map[string]string{}, nil
	}
	return m.stored, nil
}

func (m *mockSettingsRepo) UpsertBatch(ctx context.Context, values map[string]string) error {
	if m.err != nil {
		return m.err
	}
	m.upserted = values
	return nil
}

// mockSettingsReader is a mock implementation of PlatformSettingsReader
type mockSettingsReader struct {
	settings models.PlatformSettings
	err      error
}

func (m *mockSettingsReader) GetSettings(ctx context.Context) (models.PlatformSettings, error) {
	if m.err != nil {
		return models.PlatformSettings{}, m.err
	}
	return m.settings, nil
}

// mockCheckoutProvider is a mock implementation of CheckoutProvider
type mockCheckoutProvider struct {
	session *payments.CheckoutSession
	err     error

	lastOrder *payments.CheckoutOrder
}

func (m *mockCheckoutProvider) CreateSession(order payments.CheckoutOrder) (*payments.CheckoutSession, error) {
	m.lastOrder = &order
	if m.err != nil {
		return nil, m.err
	}
	return m.session, nil
}

// mockRevalidator is a mock implementation of Revalidator
type mockRevalidator struct {
	paths []string
}

func (m *mockRevalidator) Trigger(ctx context.Context, paths ...string) {
	m.paths = append(m.paths, paths...)
}
