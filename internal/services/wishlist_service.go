package services

import (
	"context"

	"github.com/eduflex/backend/internal/gate"
	"github.com/eduflex/backend/internal/models"
)

// WishlistRepository defines wishlist data access
type WishlistRepository interface {
	// Exists checks if a course is on the user's wishlist
	Exists(ctx context.Context, userID, courseID int) (bool, error)
	// Create adds a course to the user's wishlist
	Create(ctx context.Context, userID, courseID int) error
	// Delete removes a course from the user's wishlist
	Delete(ctx context.Context, userID, courseID int) error
	// ListByUser retrieves the published wishlist courses as catalog list items
	ListByUser(ctx context.Context, userID int) ([]models.CourseListItem, error)
}

// WishlistCourseRepository defines course lookups for the wishlist
type WishlistCourseRepository interface {
	// GetByID retrieves a course by ID
	GetByID(ctx context.Context, id int) (*models.Course, error)
}

type wishlistService struct {
	wishlistRepo WishlistRepository
	courseRepo   WishlistCourseRepository
}

// NewWishlistService creates a new wishlist service
func NewWishlistService(wishlistRepo WishlistRepository, courseRepo WishlistCourseRepository) *wishlistService {
	return &wishlistService{
		wishlistRepo: wishlistRepo,
		courseRepo:   courseRepo,
	}
}

// Toggle adds the course to the actor's wishlist, or removes it if already
// present. Toggling twice always restores the original state.
func (s *wishlistService) Toggle(ctx context.Context, actor models.Actor, courseID int) (*models.ToggleWishlistResponse, error) {
	if d := gate.DecideToggleWishlist(actor); d != nil {
		return nil, d
	}

	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !course.IsPublished {
		return nil, errNotFoundCourse()
	}

	exists, err := s.wishlistRepo.Exists(ctx, actor.ID, courseID)
	if err != nil {
		return nil, err
	}

	if exists {
		if err := s.wishlistRepo.Delete(ctx, actor.ID, courseID); err != nil {
			return nil, err
		}
		return &models.ToggleWishlistResponse{Added: false}, nil
	}

	if err := s.wishlistRepo.Create(ctx, actor.ID, courseID); err != nil {
		return nil, err
	}
	return &models.ToggleWishlistResponse{Added: true}, nil
}

// List retrieves the actor's wishlist
func (s *wishlistService) List(ctx context.Context, actor models.Actor) ([]models.CourseListItem, error) {
	if d := gate.DecideToggleWishlist(actor); d != nil {
		return nil, d
	}

	return s.wishlistRepo.ListByUser(ctx, actor.ID)
}
