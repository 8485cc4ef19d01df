package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/eduflex/backend/internal/models"
)

type courseRepository struct {
	db *sql.DB
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *sql.DB) *courseRepository {
	return &courseRepository{
		db: db,
	}
}

// GetByID retrieves a course by its ID
func (r *courseRepository) GetByID(ctx context.Context, id int) (*models.Course, error) {
	query := `
		SELECT id, instructor_id, title, description, image_url, price, category, is_published
		FROM courses
		WHERE id = ?
		LIMIT 1
	`

	var course models.Course
	var description, imageURL, category sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&course.ID,
		&course.InstructorID,
		&course.Title,
		&description,
		&imageURL,
		&course.Price,
		&category,
		&course.IsPublished,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("course %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course by id: %w", err)
	}

	course.Description = description.String
	course.ImageURL = imageURL.String
	course.Category = category.String

	return &course, nil
}

// GetPublished retrieves published courses with filtering and pagination.
// Lesson counts only include published lessons in published chapters.
func (r *courseRepository) GetPublished(ctx context.Context, category, search string, page, count int) ([]models.CourseListItem, error) {
	whereClauses := []string{"c.is_published = 1"}
	var args []any

	if category != "" {
		whereClauses = append(whereClauses, "c.category = ?")
		args = append(args, category)
	}

	if search != "" {
		whereClauses = append(whereClauses, "c.title LIKE ?")
		args = append(args, "%"+search+"%")
	}

	whereClause := "WHERE " + strings.Join(whereClauses, " AND ")

	// Calculate offset
	offset := (page - 1) * count

	query := fmt.Sprintf(`
		SELECT
			c.id,
			c.title,
			COALESCE(c.image_url, ''),
			c.price,
			COALESCE(c.category, ''),
			COUNT(DISTINCT l.id) as total_lessons
		FROM courses c
		LEFT JOIN chapters ch ON ch.course_id = c.id AND ch.is_published = 1
		LEFT JOIN lessons l ON l.chapter_id = ch.id AND l.is_published = 1
		%s
		GROUP BY c.id, c.title, c.image_url, c.price, c.category
		ORDER BY c.id
		LIMIT ? OFFSET ?
	`, whereClause)

	args = append(args, count, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
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
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return courses, nil
}

// GetAll retrieves a paginated list of all courses, published or not
func (r *courseRepository) GetAll(ctx context.Context, page, count int) ([]models.Course, error) {
	// Calculate offset
	offset := (page - 1) * count

	query := `
		SELECT id, instructor_id, title, COALESCE(description, ''), COALESCE(image_url, ''), price, COALESCE(category, ''), is_published
		FROM courses
		ORDER BY id
		LIMIT ? OFFSET ?
	`

	rows, err := r.db.QueryContext(ctx, query, count, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var course models.Course
		err := rows.Scan(
			&course.ID,
			&course.InstructorID,
			&course.Title,
			&course.Description,
			&course.ImageURL,
			&course.Price,
			&course.Category,
			&course.IsPublished,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return courses, nil
}

// GetByInstructor retrieves all courses owned by an instructor
func (r *courseRepository) GetByInstructor(ctx context.Context, instructorID int) ([]models.Course, error) {
	query := `
		SELECT id, instructor_id, title, COALESCE(description, ''), COALESCE(image_url, ''), price, COALESCE(category, ''), is_published
		FROM courses
		WHERE instructor_id = ?
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, instructorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var course models.Course
		err := rows.Scan(
			&course.ID,
			&course.InstructorID,
			&course.Title,
			&course.Description,
			&course.ImageURL,
			&course.Price,
			&course.Category,
			&course.IsPublished,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return courses, nil
}

// Create creates a new course
func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (instructor_id, title, is_published)
		VALUES (?, ?, 0)
	`

	result, err := r.db.ExecContext(ctx, query,
		course.InstructorID,
		course.Title,
	)
	if err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	course.ID = int(id)
	return nil
}

// Update updates course fields (partial update)
func (r *courseRepository) Update(ctx context.Context, id int, req *models.UpdateCourseRequest) error {
	var setParts []string
	var args []any

	if req.Title != nil {
		setParts = append(setParts, "title = ?")
		args = append(args, *req.Title)
	}
	if req.Description != nil {
		setParts = append(setParts, "description = ?")
		args = append(args, *req.Description)
	}
	if req.ImageURL != nil {
		setParts = append(setParts, "image_url = ?")
		args = append(args, *req.ImageURL)
	}
	if req.Free != nil && *req.Free {
		setParts = append(setParts, "price = NULL")
	} else if req.Price != nil {
		setParts = append(setParts, "price = ?")
		args = append(args, *req.Price)
	}
	if req.Category != nil {
		setParts = append(setParts, "category = ?")
		args = append(args, *req.Category)
	}

	if len(setParts) == 0 {
		return fmt.Errorf("no fields to update")
	}

	query := fmt.Sprintf(`
		UPDATE courses
		SET %s
		WHERE id = ?
	`, strings.Join(setParts, ", "))

	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}

	if _, err := result.RowsAffected(); err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	return nil
}

// SetPublished sets the publish state of a course
func (r *courseRepository) SetPublished(ctx context.Context, id int, published bool) error {
	query := "UPDATE courses SET is_published = ? WHERE id = ?"

	_, err := r.db.ExecContext(ctx, query, published, id)
	if err != nil {
		return fmt.Errorf("failed to set course publish state: %w", err)
	}

	return nil
}

// Delete deletes a course by ID; chapters and lessons cascade in the database
func (r *courseRepository) Delete(ctx context.Context, id int) error {
	query := "DELETE FROM courses WHERE id = ?"

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("course %w", ErrNotFound)
	}

	return nil
}
