package services

import (
	"context"

	"github.com/eduflex/backend/internal/gate"
	"github.com/eduflex/backend/internal/models"
)

// ProfileUserRepository defines user access for profile completion
type ProfileUserRepository interface {
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id int) (*models.User, error)
	// UpdateRole changes a user's role
	UpdateRole(ctx context.Context, userID int, role models.Role) error
}

type profileService struct {
	userRepo ProfileUserRepository
}

// NewProfileService creates a new profile service
func NewProfileService(userRepo ProfileUserRepository) *profileService {
	return &profileService{
		userRepo: userRepo,
	}
}

// CompleteProfile lets a freshly registered user pick the student or
// instructor role. The choice is one-shot: once the stored role leaves the
// new-user state the operation is rejected.
func (s *profileService) CompleteProfile(ctx context.Context, actor models.Actor, chosen models.Role) error {
	if d := gate.DecideCompleteProfile(actor, chosen); d != nil {
		return d
	}

	user, err := s.userRepo.GetByID(ctx, actor.ID)
	if err != nil {
		return err
	}
	if user.Role != models.RoleNewUser {
		return gate.Deny(gate.ReasonNotAuthorized, "profile is already completed")
	}

	return s.userRepo.UpdateRole(ctx, actor.ID, chosen)
}
