package services

import (
	"context"

	"github.com/eduflex/backend/internal/gate"
	"github.com/eduflex/backend/internal/models"
)

// ContactMessageRepository defines contact message persistence
type ContactMessageRepository interface {
	// Create stores a contact form submission
	Create(ctx context.Context, message *models.ContactMessage) error
}

type contactService struct {
	repo ContactMessageRepository
}

// NewContactService creates a new contact service
func NewContactService(repo ContactMessageRepository) *contactService {
	return &contactService{
		repo: repo,
	}
}

// SubmitMessage stores a contact form submission. Guests may submit; a
// signed-in actor's identity is attached to the stored message.
func (s *contactService) SubmitMessage(ctx context.Context, actor models.Actor, req *models.ContactMessageRequest) (*models.ContactMessage, error) {
	if d := gate.DecideContactMessage(req.Name, req.Email, req.Subject, req.Message); d != nil {
		return nil, d
	}

	// New messages always enter moderation unread
	message := &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
		Status:  models.MessageStatusUnread,
	}
	if actor.IsAuthenticated() {
		userID := actor.ID
		message.UserID = &userID
	}

	if err := s.repo.Create(ctx, message); err != nil {
		return nil, err
	}

	return message, nil
}
