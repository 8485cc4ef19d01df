package models

import "time"

// Enrollment represents a user's access to a course.
// Rows are unique per (UserID, CourseID) and are only ever created, never updated.
type Enrollment struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	CourseID  int       `json:"courseId"`
	CreatedAt time.Time `json:"createdAt"`
}

// EnrolledStudent represents a student row for the instructor roster
type EnrolledStudent struct {
	UserID int    `json:"userId"`
	Name   string `json:"name"`
}
