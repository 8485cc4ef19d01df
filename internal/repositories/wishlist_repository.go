package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/eduflex/backend/internal/models"
)

type wishlistRepository struct {
	db *sql.DB
}

// NewWishlistRepository creates a new wishlist repository
func NewWishlistRepository(db *sql.DB) *wishlistRepository {
	return &wishlistRepository{
		db: db,
	}
}

// Exists checks if a course is on the user's wishlist
func (r *wishlistRepository) Exists(ctx context.Context, userID, courseID int) (bool, error) {
	query := "SELECT EXISTS(SELECT 1 FROM wishlist_items WHERE user_id = ? AND course_id = ?)"

	var exists bool
	err := r.db.QueryRowContext(ctx, query, userID, courseID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check wishlist existence: %w", err)
	}

	return exists, nil
}

// Create adds a course to the user's wishlist. INSERT IGNORE makes a
// concurrent duplicate land on the unique key as a no-op, so a racing
// toggle never surfaces a constraint error.
func (r *wishlistRepository) Create(ctx context.Context, userID, courseID int) error {
	query := "INSERT IGNORE INTO wishlist_items (user_id, course_id) VALUES (?, ?)"

	result, err := r.db.ExecContext(ctx, query, userID, courseID)
	if err != nil {
		return fmt.Errorf("failed to create wishlist item: %w", err)
	}

	// Zero rows affected means another request inserted the row first;
	// the item is on the wishlist either way.
	if _, err := result.RowsAffected(); err != nil {
		return fmt.Errorf("failed to read wishlist insert result: %w", err)
	}

	return nil
}

// Delete removes a course from the user's wishlist
func (r *wishlistRepository) Delete(ctx context.Context, userID, courseID int) error {
	query := "DELETE FROM wishlist_items WHERE user_id = ? AND course_id = ?"

	if _, err := r.db.ExecContext(ctx, query, userID, courseID); err != nil {
		return fmt.Errorf("failed to delete wishlist item: %w", err)
	}

	return nil
}

// ListByUser retrieves the published wishlist courses as catalog list items
func (r *wishlistRepository) ListByUser(ctx context.Context, userID int) ([]models.CourseListItem, error) {
	query := `
		SELECT
			c.id,
			c.title,
			COALESCE(c.image_url, ''),
			c.price,
			COALESCE(c.category, ''),
			COUNT(DISTINCT l.id) as total_lessons
		FROM wishlist_items w
		JOIN courses c ON c.id = w.course_id AND c.is_published = 1
		LEFT JOIN chapters ch ON ch.course_id = c.id AND ch.is_published = 1
		LEFT JOIN lessons l ON l.chapter_id = ch.id AND l.is_published = 1
		WHERE w.user_id = ?
		GROUP BY c.id, c.title, c.image_url, c.price, c.category
		ORDER BY c.id
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query wishlist courses: %w", err)
	}
	defer rows.Close()

	var courses []models.CourseListItem
	for rows.Next() {
		var course models.CourseListItem
		err := rows.Scan(
			&course.ID,
			&course.Title,
			&course.ImageURL,
			&course.Price,
			&course.Category,
			&course.TotalLessons,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wishlist course: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return courses, nil
}
