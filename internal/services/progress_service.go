package services

import (
	"context"
	"errors"

	"github.com/eduflex/backend/internal/gate"
	"github.com/eduflex/backend/internal/models"
	"github.com/eduflex/backend/internal/progress"
	"github.com/eduflex/backend/internal/repositories"
)

// ProgressLessonRepository defines lesson lookups for progress tracking
type ProgressLessonRepository interface {
	// GetAccessInfo looks up the course, publish state and preview flag of a lesson
	GetAccessInfo(ctx context.Context, lessonID int) (courseID int, published bool, freePreview bool, err error)
	// GetPublishedTree retrieves published chapters with their published lessons
	GetPublishedTree(ctx context.Context, courseID int) ([]models.ChapterWithLessons, error)
}

// ProgressEnrollmentRepository defines enrollment lookups for progress tracking
type ProgressEnrollmentRepository interface {
	// Exists checks if a user is enrolled in a course
	Exists(ctx context.Context, userID, courseID int) (bool, error)
	// ListCourseIDsByUser retrieves the IDs of the courses a user is enrolled in
	ListCourseIDsByUser(ctx context.Context, userID int) ([]int, error)
}

// ProgressRepository defines completion flag access
type ProgressRepository interface {
	// IsCompleted reports whether the user has completed the lesson
	IsCompleted(ctx context.Context, userID, lessonID int) (bool, error)
	// SetCompleted upserts the completion flag for a (user, lesson) pair
	SetCompleted(ctx context.Context, userID, lessonID int, completed bool) error
	// GetCompletedLessonIDsByCourse retrieves completed published lesson IDs
	GetCompletedLessonIDsByCourse(ctx context.Context, userID, courseID int) ([]int, error)
}

// ProgressCourseRepository defines course lookups for the dashboard
type ProgressCourseRepository interface {
	// GetByID retrieves a course by ID
	GetByID(ctx context.Context, id int) (*models.Course, error)
}

type progressService struct {
	lessonRepo     ProgressLessonRepository
	enrollmentRepo ProgressEnrollmentRepository
	progressRepo   ProgressRepository
	courseRepo     ProgressCourseRepository
}

// NewProgressService creates a new progress service
func NewProgressService(
	lessonRepo ProgressLessonRepository,
	enrollmentRepo ProgressEnrollmentRepository,
	progressRepo ProgressRepository,
	courseRepo ProgressCourseRepository,
) *progressService {
	return &progressService{
		lessonRepo:     lessonRepo,
		enrollmentRepo: enrollmentRepo,
		progressRepo:   progressRepo,
		courseRepo:     courseRepo,
	}
}

// ToggleCompletion flips the actor's completion flag for a lesson and
// returns the new state together with the recomputed course progress.
func (s *progressService) ToggleCompletion(ctx context.Context, actor models.Actor, lessonID int) (*models.ToggleCompletionResponse, *models.CourseProgress, error) {
	courseID, published, freePreview, err := s.lessonRepo.GetAccessInfo(ctx, lessonID)
	access := gate.LessonAccess{}
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, err
		}
	} else {
		access.Exists = published
		access.FreePreview = freePreview
		if actor.IsAuthenticated() {
			access.Enrolled, err = s.enrollmentRepo.Exists(ctx, actor.ID, courseID)
			if err != nil {
				return nil, nil, err
			}
		}
	}

	if d := gate.DecideToggleCompletion(actor, access); d != nil {
		return nil, nil, d
	}

	current, err := s.progressRepo.IsCompleted(ctx, actor.ID, lessonID)
	if err != nil {
		return nil, nil, err
	}

	if err := s.progressRepo.SetCompleted(ctx, actor.ID, lessonID, !current); err != nil {
		return nil, nil, err
	}

	courseProgress, err := s.courseProgress(ctx, actor.ID, courseID)
	if err != nil {
		return nil, nil, err
	}

	return &models.ToggleCompletionResponse{IsCompleted: !current}, &courseProgress, nil
}

// GetCourseProgress computes the actor's progress in one enrolled course
func (s *progressService) GetCourseProgress(ctx context.Context, actor models.Actor, courseID int) (models.CourseProgress, error) {
	if !actor.IsAuthenticated() {
		return models.CourseProgress{}, gate.Deny(gate.ReasonNotAuthenticated, "authentication required")
	}

	enrolled, err := s.enrollmentRepo.Exists(ctx, actor.ID, courseID)
	if err != nil {
		return models.CourseProgress{}, err
	}
	if !enrolled {
		return models.CourseProgress{}, gate.Deny(gate.ReasonNotEnrolled, "you are not enrolled in this course")
	}

	return s.courseProgress(ctx, actor.ID, courseID)
}

// GetDashboard computes per-course progress for every enrollment plus the
// overall figure. The overall percentage divides summed lesson counts, it
// never averages course percentages.
func (s *progressService) GetDashboard(ctx context.Context, actor models.Actor) (*models.DashboardResponse, error) {
	if !actor.IsAuthenticated() {
		return nil, gate.Deny(gate.ReasonNotAuthenticated, "authentication required")
	}

	courseIDs, err := s.enrollmentRepo.ListCourseIDsByUser(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	dashboard := &models.DashboardResponse{
		Courses: make([]models.EnrolledCourseProgress, 0, len(courseIDs)),
	}

	perCourse := make([]models.CourseProgress, 0, len(courseIDs))
	for _, courseID := range courseIDs {
		course, err := s.courseRepo.GetByID(ctx, courseID)
		if err != nil {
			// An enrollment can outlive its course row mid-delete; skip it
			if errors.Is(err, repositories.ErrNotFound) {
				continue
			}
			return nil, err
		}

		courseProgress, err := s.courseProgress(ctx, actor.ID, courseID)
		if err != nil {
			return nil, err
		}

		dashboard.Courses = append(dashboard.Courses, models.EnrolledCourseProgress{
			Course: models.CourseListItem{
				ID:           course.ID,
				Title:        course.Title,
				ImageURL:     course.ImageURL,
				Price:        course.Price,
				Category:     course.Category,
				TotalLessons: courseProgress.TotalLessons,
			},
			Progress: courseProgress,
		})
		perCourse = append(perCourse, courseProgress)
	}

	dashboard.Overall = progress.ComputeOverallProgress(perCourse)
	return dashboard, nil
}

func (s *progressService) courseProgress(ctx context.Context, userID, courseID int) (models.CourseProgress, error) {
	chapters, err := s.lessonRepo.GetPublishedTree(ctx, courseID)
	if err != nil {
		return models.CourseProgress{}, err
	}

	completedIDs, err := s.progressRepo.GetCompletedLessonIDsByCourse(ctx, userID, courseID)
	if err != nil {
		return models.CourseProgress{}, err
	}

	return progress.ComputeCourseProgress(chapters, progress.CompletedSet(completedIDs)), nil
}
