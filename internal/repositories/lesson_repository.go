package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/eduflex/backend/internal/models"
)

type lessonRepository struct {
	db *sql.DB
}

// NewLessonRepository creates a new lesson repository
func NewLessonRepository(db *sql.DB) *lessonRepository {
	return &lessonRepository{
		db: db,
	}
}

// GetByID retrieves a lesson by its ID
func (r *lessonRepository) GetByID(ctx context.Context, id int) (*models.Lesson, error) {
	query := `
		SELECT id, chapter_id, title, position, is_published, is_free, COALESCE(video_url, ''), duration
		FROM lessons
		WHERE id = ?
		LIMIT 1
	`

	var lesson models.Lesson
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&lesson.ID,
		&lesson.ChapterID,
		&lesson.Title,
		&lesson.Position,
		&lesson.IsPublished,
		&lesson.IsFree,
		&lesson.VideoURL,
		&lesson.Duration,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("lesson %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson by id: %w", err)
	}

	return &lesson, nil
}

// GetByChapterID retrieves all lessons of a chapter ordered by position
func (r *lessonRepository) GetByChapterID(ctx context.Context, chapterID int) ([]models.Lesson, error) {
	query := `
		SELECT id, chapter_id, title, position, is_published, is_free, COALESCE(video_url, ''), duration
		FROM lessons
		WHERE chapter_id = ?
		ORDER BY position
	`

	rows, err := r.db.QueryContext(ctx, query, chapterID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lessons: %w", err)
	}
	defer rows.Close()

	var lessons []models.Lesson
	for rows.Next() {
		var lesson models.Lesson
		err := rows.Scan(
			&lesson.ID,
			&lesson.ChapterID,
			&lesson.Title,
			&lesson.Position,
			&lesson.IsPublished,
			&lesson.IsFree,
			&lesson.VideoURL,
			&lesson.Duration,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		lessons = append(lessons, lesson)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return lessons, nil
}

// GetPublishedTree retrieves the published chapters of a course together with
// their published lessons, ordered by position. This is the structure course
// progress is computed over.
func (r *lessonRepository) GetPublishedTree(ctx context.Context, courseID int) ([]models.ChapterWithLessons, error) {
	chapterQuery := `
		SELECT id, course_id, title, position, is_published, is_free
		FROM chapters
		WHERE course_id = ? AND is_published = 1
		ORDER BY position
	`

	rows, err := r.db.QueryContext(ctx, chapterQuery, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query chapters: %w", err)
	}
	defer rows.Close()

	var chapters []models.ChapterWithLessons
	for rows.Next() {
		var chapter models.ChapterWithLessons
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

	lessonQuery := `
		SELECT l.id, l.chapter_id, l.title, l.position, l.duration, (l.is_free OR ch.is_free)
		FROM lessons l
		JOIN chapters ch ON ch.id = l.chapter_id
		WHERE ch.course_id = ? AND ch.is_published = 1 AND l.is_published = 1
		ORDER BY l.position
	`

	lessonRows, err := r.db.QueryContext(ctx, lessonQuery, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lessons: %w", err)
	}
	defer lessonRows.Close()

	lessonsByChapter := make(map[int][]models.LessonListItem)
	for lessonRows.Next() {
		var lesson models.LessonListItem
		var chapterID int
		err := lessonRows.Scan(
			&lesson.ID,
			&chapterID,
			&lesson.Title,
			&lesson.Position,
			&lesson.Duration,
			&lesson.IsFree,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		lessonsByChapter[chapterID] = append(lessonsByChapter[chapterID], lesson)
	}

	if err := lessonRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	for i := range chapters {
		chapters[i].Lessons = lessonsByChapter[chapters[i].ID]
	}

	return chapters, nil
}

// GetAccessInfo looks up what gating a lesson needs. Published means both the
// lesson and its chapter are published; FreePreview means either the lesson or
// its chapter is marked free.
func (r *lessonRepository) GetAccessInfo(ctx context.Context, lessonID int) (courseID int, published bool, freePreview bool, err error) {
	query := `
		SELECT ch.course_id, (l.is_published AND ch.is_published), (l.is_free OR ch.is_free)
		FROM lessons l
		JOIN chapters ch ON ch.id = l.chapter_id
		WHERE l.id = ?
		LIMIT 1
	`

	err = r.db.QueryRowContext(ctx, query, lessonID).Scan(&courseID, &published, &freePreview)
	if err == sql.ErrNoRows {
		return 0, false, false, fmt.Errorf("lesson %w", ErrNotFound)
	}
	if err != nil {
		return 0, false, false, fmt.Errorf("failed to get lesson access info: %w", err)
	}

	return courseID, published, freePreview, nil
}

// Create creates a new lesson at the end of the chapter
func (r *lessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	query := `
		INSERT INTO lessons (chapter_id, title, position, is_published, is_free, duration)
		SELECT ?, ?, COALESCE(MAX(position), 0) + 1, 0, 0, 0
		FROM lessons
		WHERE chapter_id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		lesson.ChapterID,
		lesson.Title,
		lesson.ChapterID,
	)
	if err != nil {
		return fmt.Errorf("failed to create lesson: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	lesson.ID = int(id)
	return nil
}

// Update updates lesson fields (partial update)
func (r *lessonRepository) Update(ctx context.Context, id int, req *models.UpdateLessonRequest) error {
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
	if req.VideoURL != nil {
		setParts = append(setParts, "video_url = ?")
		args = append(args, *req.VideoURL)
	}
	if req.Duration != nil {
		setParts = append(setParts, "duration = ?")
		args = append(args, *req.Duration)
	}

	if len(setParts) == 0 {
		return fmt.Errorf("no fields to update")
	}

	query := fmt.Sprintf(`
		UPDATE lessons
		SET %s
		WHERE id = ?
	`, strings.Join(setParts, ", "))

	args = append(args, id)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update lesson: %w", err)
	}

	return nil
}

// SetPublished sets the publish state of a lesson
func (r *lessonRepository) SetPublished(ctx context.Context, id int, published bool) error {
	query := "UPDATE lessons SET is_published = ? WHERE id = ?"

	_, err := r.db.ExecContext(ctx, query, published, id)
	if err != nil {
		return fmt.Errorf("failed to set lesson publish state: %w", err)
	}

	return nil
}

// Reorder assigns positions following the given ID order inside one transaction
func (r *lessonRepository) Reorder(ctx context.Context, chapterID int, orderedIDs []int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := "UPDATE lessons SET position = ? WHERE id = ? AND chapter_id = ?"
	for i, id := range orderedIDs {
		if _, err := tx.ExecContext(ctx, query, i+1, id, chapterID); err != nil {
			return fmt.Errorf("failed to reorder lesson: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reorder: %w", err)
	}

	return nil
}

// CountPublishedByChapter counts the published lessons of a chapter
func (r *lessonRepository) CountPublishedByChapter(ctx context.Context, chapterID int) (int, error) {
	query := "SELECT COUNT(*) FROM lessons WHERE chapter_id = ? AND is_published = 1"

	var count int
	err := r.db.QueryRowContext(ctx, query, chapterID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count published lessons: %w", err)
	}

	return count, nil
}

// Delete deletes a lesson by ID
func (r *lessonRepository) Delete(ctx context.Context, id int) error {
	query := "DELETE FROM lessons WHERE id = ?"

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete lesson: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("lesson %w", ErrNotFound)
	}

	return nil
}
