package services

import (
	"context"

	"github.com/eduflex/backend/internal/gate"
	"github.com/eduflex/backend/internal/models"
)

// ReviewRepository defines review data access
type ReviewRepository interface {
	// Upsert creates a review or replaces the user's previous one
	Upsert(ctx context.Context, userID, courseID, rating int, comment string) error
}

// ReviewCourseRepository defines course lookups for reviews
type ReviewCourseRepository interface {
	// GetByID retrieves a course by ID
	GetByID(ctx context.Context, id int) (*models.Course, error)
}

// ReviewEnrollmentRepository defines enrollment checks for reviews
type ReviewEnrollmentRepository interface {
	// Exists checks if a user is enrolled in a course
	Exists(ctx context.Context, userID, courseID int) (bool, error)
}

type reviewService struct {
	reviewRepo     ReviewRepository
	courseRepo     ReviewCourseRepository
	enrollmentRepo ReviewEnrollmentRepository
}

// NewReviewService creates a new review service
func NewReviewService(
	reviewRepo ReviewRepository,
	courseRepo ReviewCourseRepository,
	enrollmentRepo ReviewEnrollmentRepository,
) *reviewService {
	return &reviewService{
		reviewRepo:     reviewRepo,
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

// SubmitReview creates or replaces the actor's review of an enrolled course
func (s *reviewService) SubmitReview(ctx context.Context, actor models.Actor, courseID int, req *models.SubmitReviewRequest) error {
	// Guests are turned away before any lookup so an unauthenticated
	// request cannot learn whether the course exists.
	if !actor.IsAuthenticated() {
		if d := gate.DecideSubmitReview(actor, req.Rating, false); d != nil {
			return d
		}
	}

	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return err
	}
	if !course.IsPublished {
		return errNotFoundCourse()
	}

	enrolled := false
	if actor.IsAuthenticated() {
		enrolled, err = s.enrollmentRepo.Exists(ctx, actor.ID, courseID)
		if err != nil {
			return err
		}
	}

	if d := gate.DecideSubmitReview(actor, req.Rating, enrolled); d != nil {
		return d
	}

	return s.reviewRepo.Upsert(ctx, actor.ID, courseID, req.Rating, req.Comment)
}
