package models

import "time"

// MessageStatus represents the moderation state of a contact message
type MessageStatus string

const (
	MessageStatusUnread   MessageStatus = "unread"
	MessageStatusRead     MessageStatus = "read"
	MessageStatusArchived MessageStatus = "archived"
)

// Valid reports whether the status is one of the known states
func (s MessageStatus) Valid() bool {
	return s == MessageStatusUnread || s == MessageStatusRead || s == MessageStatusArchived
}

// ContactMessage represents a message submitted through the contact form
type ContactMessage struct {
	ID        int           `json:"id"`
	UserID    *int          `json:"userId,omitempty"` // nil for guest submissions
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Subject   string        `json:"subject"`
	Message   string        `json:"message"`
	Status    MessageStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
}

// ContactMessageRequest represents a contact form submission
type ContactMessageRequest struct {
	Name    string `json:"name" validate:"required,min=2"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,min=3"`
	Message string `json:"message" validate:"required,min=10"`
}

// UpdateMessageStatusRequest represents an admin status change
type UpdateMessageStatusRequest struct {
	Status MessageStatus `json:"status" validate:"required"`
}
