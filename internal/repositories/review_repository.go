package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/eduflex/backend/internal/models"
)

type reviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *sql.DB) *reviewRepository {
	return &reviewRepository{
		db: db,
	}
}

// Upsert creates a review or replaces the user's previous one for the course
func (r *reviewRepository) Upsert(ctx context.Context, userID, courseID, rating int, comment string) error {
	query := `
		INSERT INTO reviews (user_id, course_id, rating, comment)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE rating = VALUES(rating), comment = VALUES(comment)
	`

	if _, err := r.db.ExecContext(ctx, query, userID, courseID, rating, comment); err != nil {
		return fmt.Errorf("failed to upsert review: %w", err)
	}

	return nil
}

// ListByCourse retrieves the reviews of a course, newest first
func (r *reviewRepository) ListByCourse(ctx context.Context, courseID int) ([]models.ReviewListItem, error) {
	query := `
		SELECT u.name, rv.rating, COALESCE(rv.comment, ''), rv.updated_at
		FROM reviews rv
		JOIN users u ON u.id = rv.user_id
		WHERE rv.course_id = ?
		ORDER BY rv.updated_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []models.ReviewListItem
	for rows.Next() {
		var review models.ReviewListItem
		err := rows.Scan(
			&review.UserName,
			&review.Rating,
			&review.Comment,
			&review.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return reviews, nil
}
