package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/eduflex/backend/internal/models"
)

type chapterRepository struct {
	db *sql.DB
}

// NewChapterRepository creates a new chapter repository
func NewChapterRepository(db *sql.DB) *chapterRepository {
	return &chapterRepository{
		db: db,
	}
}

// GetByID retrieves a chapter by its ID
func (r *chapterRepository) GetByID(ctx context.Context, id int) (*models.Chapter, error) {
	query := `
		SELECT id, course_id, title, position, is_published, is_free
		FROM chapters
		WHERE id = ?
		LIMIT 1
	`

	var chapter models.Chapter
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&chapter.ID,
		&chapter.CourseID,
		&chapter.Title,
		&chapter.Position,
		&chapter.IsPublished,
		&chapter.IsFree,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("chapter %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get chapter by id: %w", err)
	}

	return &chapter, nil
}

// GetByCourseID retrieves all chapters of a course ordered by position
func (r *chapterRepository) GetByCourseID(ctx context.Context, courseID int) ([]models.Chapter, error) {
	query := `
		SELECT id, course_id, title, position, is_published, is_free
		FROM chapters
		WHERE course_id = ?
		ORDER BY position
	`

	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query chapters: %w", err)
	}
	defer rows.Close()

	var chapters []models.Chapter
	for rows.Next() {
		var chapter models.Chapter
		err := rows.Scan(
			&chapter.ID,
			&chapter.CourseID,
			&chapter.Title,
			&chapter.Position,
			&chapter.IsPublished,
			&chapter.IsFree,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan chapter: %w", err)
		}
		chapters = append(chapters, chapter)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return chapters, nil
}

// Create creates a new chapter at the end of the course
func (r *chapterRepository) Create(ctx context.Context, chapter *models.Chapter) error {
	query := `
		INSERT INTO chapters (course_id, title, position, is_published, is_free)
		SELECT ?, ?, COALESCE(MAX(position), 0) + 1, 0, 0
		FROM chapters
		WHERE course_id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		chapter.CourseID,
		chapter.Title,
		chapter.CourseID,
	)
	if err != nil {
		return fmt.Errorf("failed to create chapter: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	chapter.ID = int(id)
	return nil
}

// Update updates chapter fields (partial update)
func (r *chapterRepository) Update(ctx context.Context, id int, req *models.UpdateChapterRequest) error {
	var setParts []string
	var args []any

	if req.Title != nil {
		setParts = append(setParts, "title = ?")
		args = append(args, *req.Title)
	}
	if req.IsFree != nil {
		setParts = append(setParts, "is_free = ?")
		args = append(args, *req.IsFree)
	}

	if len(setParts) == 0 {
		return fmt.Errorf("no fields to update")
	}

	query := fmt.Sprintf(`
		UPDATE chapters
		SET %s
		WHERE id = ?
	`, strings.Join(setParts, ", "))

	args = append(args, id)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update chapter: %w", err)
	}

	return nil
}

// SetPublished sets the publish state of a chapter
func (r *chapterRepository) SetPublished(ctx context.Context, id int, published bool) error {
	query := "UPDATE chapters SET is_published = ? WHERE id = ?"

	_, err := r.db.ExecContext(ctx, query, published, id)
	if err != nil {
		return fmt.Errorf("failed to set chapter publish state: %w", err)
	}

	return nil
}

// Reorder assigns positions following the given ID order inside one transaction
func (r *chapterRepository) Reorder(ctx context.Context, courseID int, orderedIDs []int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := "UPDATE chapters SET position = ? WHERE id = ? AND course_id = ?"
	for i, id := range orderedIDs {
		if _, err := tx.ExecContext(ctx, query, i+1, id, courseID); err != nil {
			return fmt.Errorf("failed to reorder chapter: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reorder: %w", err)
	}

	return nil
}

// CountPublishedByCourse counts the published chapters of a course
func (r *chapterRepository) CountPublishedByCourse(ctx context.Context, courseID int) (int, error) {
	query := "SELECT COUNT(*) FROM chapters WHERE course_id = ? AND is_published = 1"

	var count int
	err := r.db.QueryRowContext(ctx, query, courseID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count published chapters: %w", err)
	}

	return count, nil
}

// Delete deletes a chapter by ID; lessons cascade in the database
func (r *chapterRepository) Delete(ctx context.Context, id int) error {
	query := "DELETE FROM chapters WHERE id = ?"

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete chapter: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("chapter %w", ErrNotFound)
	}

	return nil
}
