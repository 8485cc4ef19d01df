package repositories

import (
	"context"
	"database/sql"
	"fmt"
)

type userProgressRepository struct {
	db *sql.DB
}

// NewUserProgressRepository creates a new user progress repository
func NewUserProgressRepository(db *sql.DB) *userProgressRepository {
	return &userProgressRepository{
		db: db,
	}
}

// IsCompleted reports whether the user has completed the lesson.
// No row means not completed.
func (r *userProgressRepository) IsCompleted(ctx context.Context, userID, lessonID int) (bool, error) {
	query := `
		SELECT is_completed
		FROM user_progress
		WHERE user_id = ? AND lesson_id = ?
		LIMIT 1
	`

	var completed bool
	err := r.db.QueryRowContext(ctx, query, userID, lessonID).Scan(&completed)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check lesson completion: %w", err)
	}

	return completed, nil
}

// SetCompleted upserts the completion flag for a (user, lesson) pair
func (r *userProgressRepository) SetCompleted(ctx context.Context, userID, lessonID int, completed bool) error {
	query := `
		INSERT INTO user_progress (user_id, lesson_id, is_completed)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE is_completed = VALUES(is_completed)
	`

	if _, err := r.db.ExecContext(ctx, query, userID, lessonID, completed); err != nil {
		return fmt.Errorf("failed to set lesson completion: %w", err)
	}

	return nil
}

// GetCompletedLessonIDsByCourse retrieves the IDs of the published lessons of
// a course the user has completed. Lessons in unpublished chapters do not count.
func (r *userProgressRepository) GetCompletedLessonIDsByCourse(ctx context.Context, userID, courseID int) ([]int, error) {
	query := `
		SELECT up.lesson_id
		FROM user_progress up
		JOIN lessons l ON l.id = up.lesson_id
		JOIN chapters ch ON ch.id = l.chapter_id
		WHERE up.user_id = ? AND ch.course_id = ?
			AND up.is_completed = 1 AND l.is_published = 1 AND ch.is_published = 1
	`

	rows, err := r.db.QueryContext(ctx, query, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query completed lessons: %w", err)
	}
	defer rows.Close()

	var lessonIDs []int
	for rows.Next() {
		var lessonID int
		if err := rows.Scan(&lessonID); err != nil {
			return nil, fmt.Errorf("failed to scan completed lesson: %w", err)
		}
		lessonIDs = append(lessonIDs, lessonID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return lessonIDs, nil
}
