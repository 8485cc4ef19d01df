package services

import (
	"context"
	"errors"
	"strings"

	"github.com/eduflex/backend/internal/gate"
	"github.com/eduflex/backend/internal/models"
	"github.com/eduflex/backend/internal/progress"
	"github.com/eduflex/backend/internal/repositories"
	"github.com/eduflex/backend/internal/revalidate"
)

// InstructorCourseRepository defines course data access for instructors
type InstructorCourseRepository interface {
	// GetByID retrieves a course by ID
	GetByID(ctx context.Context, id int) (*models.Course, error)
	// GetByInstructor retrieves all courses owned by an instructor
	GetByInstructor(ctx context.Context, instructorID int) ([]models.Course, error)
	// Create creates a new course
	Create(ctx context.Context, course *models.Course) error
	// Update updates course fields
	Update(ctx context.Context, id int, req *models.UpdateCourseRequest) error
	// SetPublished sets the publish state of a course
	SetPublished(ctx context.Context, id int, published bool) error
	// Delete deletes a course
	Delete(ctx context.Context, id int) error
}

// InstructorChapterRepository defines chapter data access for instructors
type InstructorChapterRepository interface {
	// GetByID retrieves a chapter by ID
	GetByID(ctx context.Context, id int) (*models.Chapter, error)
	// GetByCourseID retrieves all chapters of a course
	GetByCourseID(ctx context.Context, courseID int) ([]models.Chapter, error)
	// Create creates a new chapter at the end of the course
	Create(ctx context.Context, chapter *models.Chapter) error
	// Update updates chapter fields
	Update(ctx context.Context, id int, req *models.UpdateChapterRequest) error
	// SetPublished sets the publish state of a chapter
	SetPublished(ctx context.Context, id int, published bool) error
	// Reorder assigns positions following the given ID order
	Reorder(ctx context.Context, courseID int, orderedIDs []int) error
	// CountPublishedByCourse counts the published chapters of a course
	CountPublishedByCourse(ctx context.Context, courseID int) (int, error)
	// Delete deletes a chapter
	Delete(ctx context.Context, id int) error
}

// InstructorLessonRepository defines lesson data access for instructors
type InstructorLessonRepository interface {
	// GetByID retrieves a lesson by ID
	GetByID(ctx context.Context, id int) (*models.Lesson, error)
	// GetByChapterID retrieves all lessons of a chapter
	GetByChapterID(ctx context.Context, chapterID int) ([]models.Lesson, error)
	// GetPublishedTree retrieves published chapters with their published lessons
	GetPublishedTree(ctx context.Context, courseID int) ([]models.ChapterWithLessons, error)
	// Create creates a new lesson at the end of the chapter
	Create(ctx context.Context, lesson *models.Lesson) error
	// Update updates lesson fields
	Update(ctx context.Context, id int, req *models.UpdateLessonRequest) error
	// SetPublished sets the publish state of a lesson
	SetPublished(ctx context.Context, id int, published bool) error
	// Reorder assigns positions following the given ID order
	Reorder(ctx context.Context, chapterID int, orderedIDs []int) error
	// CountPublishedByChapter counts the published lessons of a chapter
	CountPublishedByChapter(ctx context.Context, chapterID int) (int, error)
	// Delete deletes a lesson
	Delete(ctx context.Context, id int) error
}

// InstructorEnrollmentRepository defines enrollment access for the roster
type InstructorEnrollmentRepository interface {
	// ListStudentsByCourse retrieves the enrolled students of a course
	ListStudentsByCourse(ctx context.Context, courseID int) ([]models.EnrolledStudent, error)
}

// InstructorProgressRepository defines completion lookups for the roster
type InstructorProgressRepository interface {
	// GetCompletedLessonIDsByCourse retrieves completed published lesson IDs
	GetCompletedLessonIDsByCourse(ctx context.Context, userID, courseID int) ([]int, error)
}

// PlatformSettingsReader exposes the merged platform settings
type PlatformSettingsReader interface {
	// GetSettings returns the merged settings view
	GetSettings(ctx context.Context) (models.PlatformSettings, error)
}

// Revalidator triggers frontend cache rebuilds for changed pages
type Revalidator interface {
	// Trigger asks the frontend to rebuild the given paths
	Trigger(ctx context.Context, paths ...string)
}

type instructorService struct {
	courseRepo     InstructorCourseRepository
	chapterRepo    InstructorChapterRepository
	lessonRepo     InstructorLessonRepository
	enrollmentRepo InstructorEnrollmentRepository
	progressRepo   InstructorProgressRepository
	settings       PlatformSettingsReader
	revalidator    Revalidator
}

// NewInstructorService creates a new instructor service
func NewInstructorService(
	courseRepo InstructorCourseRepository,
	chapterRepo InstructorChapterRepository,
	lessonRepo InstructorLessonRepository,
	enrollmentRepo InstructorEnrollmentRepository,
	progressRepo InstructorProgressRepository,
	settings PlatformSettingsReader,
	revalidator Revalidator,
) *instructorService {
	return &instructorService{
		courseRepo:     courseRepo,
		chapterRepo:    chapterRepo,
		lessonRepo:     lessonRepo,
		enrollmentRepo: enrollmentRepo,
		progressRepo:   progressRepo,
		settings:       settings,
		revalidator:    revalidator,
	}
}

// ListCourses retrieves the actor's own courses, published or not
func (s *instructorService) ListCourses(ctx context.Context, actor models.Actor) ([]models.Course, error) {
	return s.courseRepo.GetByInstructor(ctx, actor.ID)
}

// CreateCourse creates an unpublished course owned by the actor
func (s *instructorService) CreateCourse(ctx context.Context, actor models.Actor, req *models.CreateCourseRequest) (int, error) {
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return 0, err
	}

	if d := gate.DecideCreateCourse(actor, settings.AllowCourseSubmissions, req.Title); d != nil {
		return 0, d
	}

	course := &models.Course{
		InstructorID: actor.ID,
		Title:        strings.TrimSpace(req.Title),
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return 0, err
	}

	return course.ID, nil
}

// GetCourseEditor retrieves a course with its full chapter and lesson tree
// for the management view, unpublished items included
func (s *instructorService) GetCourseEditor(ctx context.Context, actor models.Actor, courseID int) (*models.Course, []models.Chapter, error) {
	course, err := s.ownedCourse(ctx, actor, courseID)
	if err != nil {
		return nil, nil, err
	}

	chapters, err := s.chapterRepo.GetByCourseID(ctx, courseID)
	if err != nil {
		return nil, nil, err
	}

	return course, chapters, nil
}

// UpdateCourse applies a partial update to an owned course
func (s *instructorService) UpdateCourse(ctx context.Context, actor models.Actor, courseID int, req *models.UpdateCourseRequest) error {
	course, err := s.ownedCourse(ctx, actor, courseID)
	if err != nil {
		return err
	}

	if req.Price != nil && *req.Price < 0 {
		return gate.DenyField("price", "price cannot be negative")
	}
	if req.Title != nil && len(strings.TrimSpace(*req.Title)) < 3 {
		return gate.DenyField("title", "title must be at least 3 characters")
	}

	if err := s.courseRepo.Update(ctx, courseID, req); err != nil {
		return err
	}

	if course.IsPublished {
		s.revalidator.Trigger(ctx, revalidate.CatalogPath, revalidate.CoursePath(courseID))
	}
	return nil
}

// SetCoursePublished publishes or unpublishes an owned course. Publishing
// requires the descriptive fields plus at least one published chapter;
// unpublishing is always allowed for the owner.
func (s *instructorService) SetCoursePublished(ctx context.Context, actor models.Actor, courseID int, publish bool) error {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	state := courseState(course, err)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return err
	}

	requiredFieldsPresent := false
	if course != nil {
		publishedChapters, err := s.chapterRepo.CountPublishedByCourse(ctx, courseID)
		if err != nil {
			return err
		}
		requiredFieldsPresent = course.Title != "" &&
			course.Description != "" &&
			course.ImageURL != "" &&
			course.Category != "" &&
			publishedChapters > 0
	}

	if d := gate.DecidePublishCourse(actor, state, publish, requiredFieldsPresent); d != nil {
		return d
	}

	if err := s.courseRepo.SetPublished(ctx, courseID, publish); err != nil {
		return err
	}

	s.revalidator.Trigger(ctx, revalidate.CatalogPath, revalidate.CoursePath(courseID))
	return nil
}

// DeleteCourse deletes an owned course together with its content
func (s *instructorService) DeleteCourse(ctx context.Context, actor models.Actor, courseID int) error {
	if _, err := s.ownedCourse(ctx, actor, courseID); err != nil {
		return err
	}

	if err := s.courseRepo.Delete(ctx, courseID); err != nil {
		return err
	}

	s.revalidator.Trigger(ctx, revalidate.CatalogPath)
	return nil
}

// AddChapter appends an unpublished chapter to an owned course
func (s *instructorService) AddChapter(ctx context.Context, actor models.Actor, courseID int, req *models.CreateChapterRequest) (int, error) {
	if _, err := s.ownedCourse(ctx, actor, courseID); err != nil {
		return 0, err
	}

	if strings.TrimSpace(req.Title) == "" {
		return 0, gate.DenyField("title", "title is required")
	}

	chapter := &models.Chapter{
		CourseID: courseID,
		Title:    strings.TrimSpace(req.Title),
	}
	if err := s.chapterRepo.Create(ctx, chapter); err != nil {
		return 0, err
	}

	return chapter.ID, nil
}

// UpdateChapter applies a partial update to a chapter of an owned course
func (s *instructorService) UpdateChapter(ctx context.Context, actor models.Actor, chapterID int, req *models.UpdateChapterRequest) error {
	if _, _, err := s.ownedChapter(ctx, actor, chapterID); err != nil {
		return err
	}

	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return gate.DenyField("title", "title cannot be empty")
	}

	return s.chapterRepo.Update(ctx, chapterID, req)
}

// SetChapterPublished publishes or unpublishes a chapter. Publishing
// requires at least one published lesson inside it.
func (s *instructorService) SetChapterPublished(ctx context.Context, actor models.Actor, chapterID int, publish bool) error {
	chapter, course, err := s.ownedChapter(ctx, actor, chapterID)
	if err != nil {
		return err
	}

	if publish {
		publishedLessons, err := s.lessonRepo.CountPublishedByChapter(ctx, chapterID)
		if err != nil {
			return err
		}
		if publishedLessons == 0 {
			return gate.DenyField("chapter", "publish at least one lesson first")
		}
	}

	if err := s.chapterRepo.SetPublished(ctx, chapterID, publish); err != nil {
		return err
	}

	if course.IsPublished {
		s.revalidator.Trigger(ctx, revalidate.CoursePath(chapter.CourseID))
	}
	return nil
}

// ReorderChapters applies a new chapter ordering inside an owned course
func (s *instructorService) ReorderChapters(ctx context.Context, actor models.Actor, courseID int, orderedIDs []int) error {
	if _, err := s.ownedCourse(ctx, actor, courseID); err != nil {
		return err
	}

	if len(orderedIDs) == 0 {
		return gate.DenyField("orderedIds", "ordering cannot be empty")
	}

	return s.chapterRepo.Reorder(ctx, courseID, orderedIDs)
}

// DeleteChapter deletes a chapter of an owned course; its lessons go with it
func (s *instructorService) DeleteChapter(ctx context.Context, actor models.Actor, chapterID int) error {
	if _, _, err := s.ownedChapter(ctx, actor, chapterID); err != nil {
		return err
	}

	return s.chapterRepo.Delete(ctx, chapterID)
}

// GetChapterLessons retrieves all lessons of a chapter for the management view
func (s *instructorService) GetChapterLessons(ctx context.Context, actor models.Actor, chapterID int) ([]models.Lesson, error) {
	if _, _, err := s.ownedChapter(ctx, actor, chapterID); err != nil {
		return nil, err
	}

	return s.lessonRepo.GetByChapterID(ctx, chapterID)
}

// AddLesson appends an unpublished lesson to a chapter of an owned course
func (s *instructorService) AddLesson(ctx context.Context, actor models.Actor, chapterID int, req *models.CreateLessonRequest) (int, error) {
	if _, _, err := s.ownedChapter(ctx, actor, chapterID); err != nil {
		return 0, err
	}

	if strings.TrimSpace(req.Title) == "" {
		return 0, gate.DenyField("title", "title is required")
	}

	lesson := &models.Lesson{
		ChapterID: chapterID,
		Title:     strings.TrimSpace(req.Title),
	}
	if err := s.lessonRepo.Create(ctx, lesson); err != nil {
		return 0, err
	}

	return lesson.ID, nil
}

// UpdateLesson applies a partial update to a lesson of an owned course
func (s *instructorService) UpdateLesson(ctx context.Context, actor models.Actor, lessonID int, req *models.UpdateLessonRequest) error {
	if _, err := s.ownedLesson(ctx, actor, lessonID); err != nil {
		return err
	}

	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return gate.DenyField("title", "title cannot be empty")
	}
	if req.Duration != nil && *req.Duration < 0 {
		return gate.DenyField("duration", "duration cannot be negative")
	}

	return s.lessonRepo.Update(ctx, lessonID, req)
}

// SetLessonPublished publishes or unpublishes a lesson. Publishing requires
// the lesson to carry video content.
func (s *instructorService) SetLessonPublished(ctx context.Context, actor models.Actor, lessonID int, publish bool) error {
	lesson, err := s.ownedLesson(ctx, actor, lessonID)
	if err != nil {
		return err
	}

	if publish && lesson.VideoURL == "" {
		return gate.DenyField("videoUrl", "add a video before publishing")
	}

	return s.lessonRepo.SetPublished(ctx, lessonID, publish)
}

// ReorderLessons applies a new lesson ordering inside a chapter
func (s *instructorService) ReorderLessons(ctx context.Context, actor models.Actor, chapterID int, orderedIDs []int) error {
	if _, _, err := s.ownedChapter(ctx, actor, chapterID); err != nil {
		return err
	}

	if len(orderedIDs) == 0 {
		return gate.DenyField("orderedIds", "ordering cannot be empty")
	}

	return s.lessonRepo.Reorder(ctx, chapterID, orderedIDs)
}

// DeleteLesson deletes a lesson of an owned course
func (s *instructorService) DeleteLesson(ctx context.Context, actor models.Actor, lessonID int) error {
	if _, err := s.ownedLesson(ctx, actor, lessonID); err != nil {
		return err
	}

	return s.lessonRepo.Delete(ctx, lessonID)
}

// GetRoster retrieves the enrolled students of an owned course with each
// student's completion percentage
func (s *instructorService) GetRoster(ctx context.Context, actor models.Actor, courseID int) ([]models.StudentProgress, error) {
	if _, err := s.ownedCourse(ctx, actor, courseID); err != nil {
		return nil, err
	}

	students, err := s.enrollmentRepo.ListStudentsByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	chapters, err := s.lessonRepo.GetPublishedTree(ctx, courseID)
	if err != nil {
		return nil, err
	}

	roster := make([]models.StudentProgress, 0, len(students))
	for _, student := range students {
		completedIDs, err := s.progressRepo.GetCompletedLessonIDsByCourse(ctx, student.UserID, courseID)
		if err != nil {
			return nil, err
		}

		roster = append(roster, models.StudentProgress{
			UserID:  student.UserID,
			Name:    student.Name,
			Percent: progress.ComputeStudentProgress(chapters, completedIDs),
		})
	}

	return roster, nil
}

// ownedCourse loads a course and verifies the actor may manage it
func (s *instructorService) ownedCourse(ctx context.Context, actor models.Actor, courseID int) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	state := courseState(course, err)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	if d := gate.DecideManageCourse(actor, state); d != nil {
		return nil, d
	}
	return course, nil
}

// ownedChapter loads a chapter and verifies ownership through its course
func (s *instructorService) ownedChapter(ctx context.Context, actor models.Actor, chapterID int) (*models.Chapter, *models.Course, error) {
	chapter, err := s.chapterRepo.GetByID(ctx, chapterID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, gate.Deny(gate.ReasonNotFound, "chapter not found")
		}
		return nil, nil, err
	}

	course, err := s.ownedCourse(ctx, actor, chapter.CourseID)
	if err != nil {
		return nil, nil, err
	}
	return chapter, course, nil
}

// ownedLesson loads a lesson and verifies ownership through its chapter
func (s *instructorService) ownedLesson(ctx context.Context, actor models.Actor, lessonID int) (*models.Lesson, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, gate.Deny(gate.ReasonNotFound, "lesson not found")
		}
		return nil, err
	}

	if _, _, err := s.ownedChapter(ctx, actor, lesson.ChapterID); err != nil {
		return nil, err
	}
	return lesson, nil
}

// courseState builds the gate snapshot from a course lookup result
func courseState(course *models.Course, err error) gate.CourseState {
	if err != nil || course == nil {
		return gate.CourseState{}
	}
	return gate.CourseState{
		Exists:       true,
		Published:    course.IsPublished,
		Free:         course.IsFree(),
		InstructorID: course.InstructorID,
	}
}
