package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/eduflex/backend/internal/models"
)

type contactMessageRepository struct {
	db *sql.DB
}

// NewContactMessageRepository creates a new contact message repository
func NewContactMessageRepository(db *sql.DB) *contactMessageRepository {
	return &contactMessageRepository{
		db: db,
	}
}

// Create stores a contact form submission. UserID is nil for guests.
func (r *contactMessageRepository) Create(ctx context.Context, message *models.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (user_id, name, email, subject, message, status)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		message.UserID,
		message.Name,
		message.Email,
		message.Subject,
		message.Message,
		models.MessageStatusUnread,
	)
	if err != nil {
		return fmt.Errorf("failed to create contact message: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	message.ID = int(id)
	message.Status = models.MessageStatusUnread
	return nil
}

// GetAll retrieves a paginated list of contact messages with an optional status filter
func (r *contactMessageRepository) GetAll(ctx context.Context, page, count int, status *models.MessageStatus) ([]models.ContactMessage, error) {
	var whereClauses []string
	var args []any

	if status != nil {
		whereClauses = append(whereClauses, "status = ?")
		args = append(args, *status)
	}

	whereClause := ""
	if len(whereClauses) > 0 {
		whereClause = "WHERE " + strings.Join(whereClauses, " AND ")
	}

	// Calculate offset
	offset := (page - 1) * count

	query := fmt.Sprintf(`
		SELECT id, user_id, name, email, subject, message, status, created_at
		FROM contact_messages
		%s
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`, whereClause)

	args = append(args, count, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query contact messages: %w", err)
	}
	defer rows.Close()

	var messages []models.ContactMessage
	for rows.Next() {
		var message models.ContactMessage
		err := rows.Scan(
			&message.ID,
			&message.UserID,
			&message.Name,
			&message.Email,
			&message.Subject,
			&message.Message,
			&message.Status,
			&message.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact message: %w", err)
		}
		messages = append(messages, message)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return messages, nil
}

// UpdateStatus changes the moderation status of a message
func (r *contactMessageRepository) UpdateStatus(ctx context.Context, id int, status models.MessageStatus) error {
	query := "UPDATE contact_messages SET status = ? WHERE id = ?"

	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update message status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("message %w", ErrNotFound)
	}

	return nil
}

// Delete deletes a message by ID
func (r *contactMessageRepository) Delete(ctx context.Context, id int) error {
	query := "DELETE FROM contact_messages WHERE id = ?"

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete contact message: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("message %w", ErrNotFound)
	}

	return nil
}
