package models

// Course represents a course in the marketplace
type Course struct {
	ID           int      `json:"id"`
	InstructorID int      `json:"instructorId"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	ImageURL     string   `json:"imageUrl"`
	Price        *float64 `json:"price"` // nil = free course
	Category     string   `json:"category"`
	IsPublished  bool     `json:"isPublished"`
}

// IsFree reports whether the course has no price
func (c *Course) IsFree() bool {
	return c.Price == nil
}

// CourseListItem represents a course in catalog list responses
type CourseListItem struct {
	ID           int      `json:"id"`
	Title        string   `json:"title"`
	ImageURL     string   `json:"imageUrl"`
	Price        *float64 `json:"price"`
	Category     string   `json:"category"`
	TotalLessons int      `json:"totalLessons"`
}

// CourseDetailResponse represents a course with its published chapter tree
type CourseDetailResponse struct {
	ID          int                  `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	ImageURL    string               `json:"imageUrl"`
	Price       *float64             `json:"price"`
	Category    string               `json:"category"`
	Enrolled    bool                 `json:"enrolled"`
	Progress    *CourseProgress      `json:"progress,omitempty"`
	Chapters    []ChapterWithLessons `json:"chapters"`
}

// CreateCourseRequest represents an instructor request to create a course
type CreateCourseRequest struct {
	Title string `json:"title" validate:"required,min=3"`
}

// UpdateCourseRequest represents a partial course update
type UpdateCourseRequest struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,min=3"`
	Description *string  `json:"description,omitempty"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Free        *bool    `json:"free,omitempty"` // true clears the price
	Category    *string  `json:"category,omitempty"`
}

// CourseProgress holds completion metrics for one course
type CourseProgress struct {
	CompletedLessons int `json:"completedLessons"`
	TotalLessons     int `json:"totalLessons"`
	Percent          int `json:"percent"`
}

// EnrolledCourseProgress pairs a course with the learner's progress in it
type EnrolledCourseProgress struct {
	Course   CourseListItem `json:"course"`
	Progress CourseProgress `json:"progress"`
}

// DashboardResponse represents a learner's cross-course dashboard
type DashboardResponse struct {
	Courses []EnrolledCourseProgress `json:"courses"`
	Overall CourseProgress           `json:"overall"`
}

// StudentProgress represents one student's progress in an instructor roster
type StudentProgress struct {
	UserID  int    `json:"userId"`
	Name    string `json:"name"`
	Percent int    `json:"percent"`
}
