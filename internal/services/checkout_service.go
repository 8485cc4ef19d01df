package services

import (
	"context"
	"errors"
	"math"

	"go.uber.org/zap"

	"github.com/eduflex/backend/internal/gate"
	"github.com/eduflex/backend/internal/models"
	"github.com/eduflex/backend/internal/payments"
	"github.com/eduflex/backend/internal/repositories"
)

// CheckoutProvider defines the payment gateway used to start hosted checkouts
type CheckoutProvider interface {
	// CreateSession starts a hosted checkout for one course
	CreateSession(order payments.CheckoutOrder) (*payments.CheckoutSession, error)
}

// CheckoutCourseRepository defines course lookups for checkout
type CheckoutCourseRepository interface {
	// GetByID retrieves a course by ID
	GetByID(ctx context.Context, id int) (*models.Course, error)
}

// CheckoutEnrollmentRepository defines enrollment access for checkout
type CheckoutEnrollmentRepository interface {
	// Exists checks if a user is enrolled in a course
	Exists(ctx context.Context, userID, courseID int) (bool, error)
	// Create enrolls a user in a course
	Create(ctx context.Context, userID, courseID int) error
}

// CheckoutUserRepository defines user lookups for checkout
type CheckoutUserRepository interface {
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id int) (*models.User, error)
}

type checkoutService struct {
	provider       CheckoutProvider
	courseRepo     CheckoutCourseRepository
	enrollmentRepo CheckoutEnrollmentRepository
	userRepo       CheckoutUserRepository
	logger         *zap.Logger
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	provider CheckoutProvider,
	courseRepo CheckoutCourseRepository,
	enrollmentRepo CheckoutEnrollmentRepository,
	userRepo CheckoutUserRepository,
	logger *zap.Logger,
) *checkoutService {
	return &checkoutService{
		provider:       provider,
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		userRepo:       userRepo,
		logger:         logger,
	}
}

// StartCheckout creates a payment gateway session for a paid course
func (s *checkoutService) StartCheckout(ctx context.Context, actor models.Actor, courseID int) (*payments.CheckoutSession, error) {
	course, state, enrolled, err := s.courseSnapshot(ctx, actor, courseID)
	if err != nil {
		return nil, err
	}

	if d := gate.DecideCheckout(actor, state, enrolled); d != nil {
		return nil, d
	}

	user, err := s.userRepo.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	session, err := s.provider.CreateSession(payments.CheckoutOrder{
		UserID:        actor.ID,
		CourseID:      course.ID,
		CourseTitle:   course.Title,
		AmountCents:   int64(math.Round(*course.Price * 100)),
		CustomerName:  user.Name,
		CustomerEmail: user.Email,
	})
	if err != nil {
		// Gateway faults surface as a denial so clients get a stable reason
		// instead of a bare 500; the cause still lands in the log.
		s.logger.Error("checkout session creation failed",
			zap.Int("course_id", courseID),
			zap.Int("user_id", actor.ID),
			zap.Error(err),
		)
		return nil, gate.Deny(gate.ReasonCheckoutSessionFailed, "could not start checkout, try again later")
	}

	return session, nil
}

// EnrollFree enrolls the actor directly into a free course
func (s *checkoutService) EnrollFree(ctx context.Context, actor models.Actor, courseID int) error {
	_, state, enrolled, err := s.courseSnapshot(ctx, actor, courseID)
	if err != nil {
		return err
	}

	if d := gate.DecideFreeEnroll(actor, state, enrolled); d != nil {
		return d
	}

	return s.enrollmentRepo.Create(ctx, actor.ID, courseID)
}

func (s *checkoutService) courseSnapshot(ctx context.Context, actor models.Actor, courseID int) (*models.Course, gate.CourseState, bool, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, gate.CourseState{}, false, nil
		}
		return nil, gate.CourseState{}, false, err
	}

	state := gate.CourseState{
		Exists:       true,
		Published:    course.IsPublished,
		Free:         course.IsFree(),
		InstructorID: course.InstructorID,
	}

	enrolled := false
	if actor.IsAuthenticated() {
		enrolled, err = s.enrollmentRepo.Exists(ctx, actor.ID, courseID)
		if err != nil {
			return nil, gate.CourseState{}, false, err
		}
	}

	return course, state, enrolled, nil
}
