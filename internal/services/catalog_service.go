package services

import (
	"context"

	"github.com/eduflex/backend/internal/models"
	"github.com/eduflex/backend/internal/progress"
)

// CatalogCourseRepository defines methods for course data access in the catalog
type CatalogCourseRepository interface {
	// GetByID retrieves a course by ID
	GetByID(ctx context.Context, id int) (*models.Course, error)
	// GetPublished retrieves published courses with filtering and pagination
	GetPublished(ctx context.Context, category, search string, page, count int) ([]models.CourseListItem, error)
}

// CatalogLessonRepository defines methods for lesson tree access in the catalog
type CatalogLessonRepository interface {
	// GetPublishedTree retrieves published chapters with their published lessons
	GetPublishedTree(ctx context.Context, courseID int) ([]models.ChapterWithLessons, error)
}

// CatalogEnrollmentRepository defines enrollment checks for the catalog
type CatalogEnrollmentRepository interface {
	// Exists checks if a user is enrolled in a course
	Exists(ctx context.Context, userID, courseID int) (bool, error)
}

// CatalogProgressRepository defines completion lookups for the catalog
type CatalogProgressRepository interface {
	// GetCompletedLessonIDsByCourse retrieves completed published lesson IDs
	GetCompletedLessonIDsByCourse(ctx context.Context, userID, courseID int) ([]int, error)
}

// CatalogReviewRepository defines review listing for the catalog
type CatalogReviewRepository interface {
	// ListByCourse retrieves the reviews of a course
	ListByCourse(ctx context.Context, courseID int) ([]models.ReviewListItem, error)
}

type catalogService struct {
	courseRepo     CatalogCourseRepository
	lessonRepo     CatalogLessonRepository
	enrollmentRepo CatalogEnrollmentRepository
	progressRepo   CatalogProgressRepository
	reviewRepo     CatalogReviewRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	courseRepo CatalogCourseRepository,
	lessonRepo CatalogLessonRepository,
	enrollmentRepo CatalogEnrollmentRepository,
	progressRepo CatalogProgressRepository,
	reviewRepo CatalogReviewRepository,
) *catalogService {
	return &catalogService{
		courseRepo:     courseRepo,
		lessonRepo:     lessonRepo,
		enrollmentRepo: enrollmentRepo,
		progressRepo:   progressRepo,
		reviewRepo:     reviewRepo,
	}
}

// ListCourses retrieves published courses with filtering and pagination
func (s *catalogService) ListCourses(ctx context.Context, category, search string, page, count int) ([]models.CourseListItem, error) {
	if page < 1 {
		page = 1
	}
	if count < 1 {
		count = 10
	}

	return s.courseRepo.GetPublished(ctx, category, search, page, count)
}

// GetCourseDetail retrieves a published course with its chapter tree.
// For an enrolled actor the tree carries completion flags and nothing is
// locked; for everyone else, non-preview lessons are locked.
func (s *catalogService) GetCourseDetail(ctx context.Context, actor models.Actor, courseID int) (*models.CourseDetailResponse, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !course.IsPublished {
		return nil, errNotFoundCourse()
	}

	chapters, err := s.lessonRepo.GetPublishedTree(ctx, courseID)
	if err != nil {
		return nil, err
	}

	enrolled := false
	if actor.IsAuthenticated() {
		enrolled, err = s.enrollmentRepo.Exists(ctx, actor.ID, courseID)
		if err != nil {
			return nil, err
		}
	}

	detail := &models.CourseDetailResponse{
		ID:          course.ID,
		Title:       course.Title,
		Description: course.Description,
		ImageURL:    course.ImageURL,
		Price:       course.Price,
		Category:    course.Category,
		Enrolled:    enrolled,
		Chapters:    chapters,
	}

	if enrolled {
		completedIDs, err := s.progressRepo.GetCompletedLessonIDsByCourse(ctx, actor.ID, courseID)
		if err != nil {
			return nil, err
		}
		completed := progress.CompletedSet(completedIDs)

		for ci := range detail.Chapters {
			for li := range detail.Chapters[ci].Lessons {
				lesson := &detail.Chapters[ci].Lessons[li]
				lesson.Locked = false
				lesson.IsCompleted = completed[lesson.ID]
			}
		}

		courseProgress := progress.ComputeCourseProgress(detail.Chapters, completed)
		detail.Progress = &courseProgress
	} else {
		for ci := range detail.Chapters {
			for li := range detail.Chapters[ci].Lessons {
				lesson := &detail.Chapters[ci].Lessons[li]
				lesson.Locked = !lesson.IsFree
			}
		}
	}

	return detail, nil
}

// ListReviews retrieves the reviews of a published course
func (s *catalogService) ListReviews(ctx context.Context, courseID int) ([]models.ReviewListItem, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !course.IsPublished {
		return nil, errNotFoundCourse()
	}

	return s.reviewRepo.ListByCourse(ctx, courseID)
}
