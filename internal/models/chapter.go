package models

// Chapter represents a chapter within a course
type Chapter struct {
	ID          int    `json:"id"`
	CourseID    int    `json:"courseId"`
	Title       string `json:"title"`
	Position    int    `json:"position"`
	IsPublished bool   `json:"isPublished"`
	IsFree      bool   `json:"isFree"`
}

// ChapterWithLessons represents a chapter together with its lessons
type ChapterWithLessons struct {
	Chapter
	Lessons []LessonListItem `json:"lessons"`
}

// CreateChapterRequest represents an instructor request to create a chapter
type CreateChapterRequest struct {
	Title string `json:"title" validate:"required,min=1"`
}

// UpdateChapterRequest represents a partial chapter update
type UpdateChapterRequest struct {
	Title  *string `json:"title,omitempty" validate:"omitempty,min=1"`
	IsFree *bool   `json:"isFree,omitempty"`
}

// ReorderRequest carries the new ordering of chapter or lesson IDs
type ReorderRequest struct {
	OrderedIDs []int `json:"orderedIds" validate:"required,min=1"`
}
