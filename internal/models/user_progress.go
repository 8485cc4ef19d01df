package models

// UserProgress represents a learner's completion flag for one lesson.
// Rows are unique per (UserID, LessonID) and upserted when the learner toggles.
type UserProgress struct {
	ID          int  `json:"id"`
	UserID      int  `json:"userId"`
	LessonID    int  `json:"lessonId"`
	IsCompleted bool `json:"isCompleted"`
}

// ToggleCompletionResponse reports the new completion state after a toggle
type ToggleCompletionResponse struct {
	IsCompleted bool `json:"isCompleted"`
}
