package models

// Lesson represents a lesson within a chapter
type Lesson struct {
	ID          int    `json:"id"`
	ChapterID   int    `json:"chapterId"`
	Title       string `json:"title"`
	Position    int    `json:"position"`
	IsPublished bool   `json:"isPublished"`
	IsFree      bool   `json:"isFree"`
	VideoURL    string `json:"videoUrl"`
	Duration    int    `json:"duration"` // seconds
}

// LessonListItem represents a lesson in course detail responses
type LessonListItem struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Position    int    `json:"position"`
	IsFree      bool   `json:"isFree"`
	Duration    int    `json:"duration"`
	IsCompleted bool   `json:"isCompleted"`
	Locked      bool   `json:"locked"`
}

// CreateLessonRequest represents an instructor request to create a lesson
type CreateLessonRequest struct {
	Title string `json:"title" validate:"required,min=1"`
}

// UpdateLessonRequest represents a partial lesson update
type UpdateLessonRequest struct {
	Title    *string `json:"title,omitempty" validate:"omitempty,min=1"`
	IsFree   *bool   `json:"isFree,omitempty"`
	VideoURL *string `json:"videoUrl,omitempty"`
	Duration *int    `json:"duration,omitempty" validate:"omitempty,min=0"`
}
