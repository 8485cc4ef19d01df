package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/eduflex/backend/internal/models"
)

type enrollmentRepository struct {
	db *sql.DB
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *sql.DB) *enrollmentRepository {
	return &enrollmentRepository{
		db: db,
	}
}

// Exists checks if a user is enrolled in a course
func (r *enrollmentRepository) Exists(ctx context.Context, userID, courseID int) (bool, error) {
	query := "SELECT EXISTS(SELECT 1 FROM enrollments WHERE user_id = ? AND course_id = ?)"

	var exists bool
	err := r.db.QueryRowContext(ctx, query, userID, courseID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check enrollment existence: %w", err)
	}

	return exists, nil
}

// Create enrolls a user in a course. INSERT IGNORE against the
// (user_id, course_id) unique key makes a concurrent double enroll a
// no-op rather than a constraint error.
func (r *enrollmentRepository) Create(ctx context.Context, userID, courseID int) error {
	query := "INSERT IGNORE INTO enrollments (user_id, course_id) VALUES (?, ?)"

	result, err := r.db.ExecContext(ctx, query, userID, courseID)
	if err != nil {
		return fmt.Errorf("failed to create enrollment: %w", err)
	}

	// Zero rows affected means the enrollment already existed, which is
	// the state the caller wanted.
	if _, err := result.RowsAffected(); err != nil {
		return fmt.Errorf("failed to read enrollment insert result: %w", err)
	}

	return nil
}

// ListCourseIDsByUser retrieves the IDs of all courses a user is enrolled in
func (r *enrollmentRepository) ListCourseIDsByUser(ctx context.Context, userID int) ([]int, error) {
	query := "SELECT course_id FROM enrollments WHERE user_id = ? ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrollments: %w", err)
	}
	defer rows.Close()

	var courseIDs []int
	for rows.Next() {
		var courseID int
		if err := rows.Scan(&courseID); err != nil {
			return nil, fmt.Errorf("failed to scan enrollment: %w", err)
		}
		courseIDs = append(courseIDs, courseID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return courseIDs, nil
}

// ListStudentsByCourse retrieves the enrolled students of a course
func (r *enrollmentRepository) ListStudentsByCourse(ctx context.Context, courseID int) ([]models.EnrolledStudent, error) {
	query := `
		SELECT u.id, u.name
		FROM enrollments e
		JOIN users u ON u.id = e.user_id
		WHERE e.course_id = ?
		ORDER BY u.name
	`

	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrolled students: %w", err)
	}
	defer rows.Close()

	var students []models.EnrolledStudent
	for rows.Next() {
		var student models.EnrolledStudent
		if err := rows.Scan(&student.UserID, &student.Name); err != nil {
			return nil, fmt.Errorf("failed to scan enrolled student: %w", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return students, nil
}
