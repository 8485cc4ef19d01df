package progress

import (
	"testing"

	"github.com/eduflex/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

// buildChapters creates a chapter tree with the given lesson IDs per chapter
func buildChapters(lessonIDs ...[]int) []models.ChapterWithLessons {
	chapters := make([]models.ChapterWithLessons, len(lessonIDs))
	for i, ids := range lessonIDs {
		lessons := make([]models.LessonListItem, len(ids))
		for j, id := range ids {
			lessons[j] = models.LessonListItem{ID: id}
		}
		chapters[i] = models.ChapterWithLessons{Lessons: lessons}
	}
	return chapters
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		total     int
		expected  int
	}{
		{name: "zero total returns zero, never NaN", completed: 0, total: 0, expected: 0},
		{name: "zero completed", completed: 0, total: 10, expected: 0},
		{name: "all completed", completed: 10, total: 10, expected: 100},
		{name: "rounds down below half", completed: 1, total: 3, expected: 33},
		{name: "rounds up from half", completed: 1, total: 8, expected: 13},
		{name: "two thirds rounds up", completed: 2, total: 3, expected: 67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Percent(tt.completed, tt.total))
		})
	}
}

func TestComputeCourseProgress(t *testing.T) {
	tests := []struct {
		name      string
		chapters  []models.ChapterWithLessons
		completed map[int]bool
		expected  models.CourseProgress
	}{
		{
			name:      "empty course",
			chapters:  nil,
			completed: map[int]bool{},
			expected:  models.CourseProgress{CompletedLessons: 0, TotalLessons: 0, Percent: 0},
		},
		{
			name:      "no chapters with lessons completed elsewhere",
			chapters:  buildChapters(),
			completed: map[int]bool{99: true},
			expected:  models.CourseProgress{CompletedLessons: 0, TotalLessons: 0, Percent: 0},
		},
		{
			name:      "half complete across chapters",
			chapters:  buildChapters([]int{1, 2}, []int{3, 4}),
			completed: map[int]bool{1: true, 3: true},
			expected:  models.CourseProgress{CompletedLessons: 2, TotalLessons: 4, Percent: 50},
		},
		{
			name:      "completed ids outside the tree are ignored",
			chapters:  buildChapters([]int{1, 2}),
			completed: map[int]bool{1: true, 77: true},
			expected:  models.CourseProgress{CompletedLessons: 1, TotalLessons: 2, Percent: 50},
		},
		{
			name:      "fully complete",
			chapters:  buildChapters([]int{1}, []int{2}, []int{3}),
			completed: map[int]bool{1: true, 2: true, 3: true},
			expected:  models.CourseProgress{CompletedLessons: 3, TotalLessons: 3, Percent: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ComputeCourseProgress(tt.chapters, tt.completed)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestComputeCourseProgress_Monotonicity(t *testing.T) {
	chapters := buildChapters([]int{1, 2, 3}, []int{4, 5, 6, 7})

	completed := map[int]bool{}
	previous := 0
	for _, id := range []int{1, 2, 3, 4, 5, 6, 7} {
		completed[id] = true
		result := ComputeCourseProgress(chapters, completed)
		assert.GreaterOrEqual(t, result.Percent, previous,
			"marking lesson %d complete must never decrease percent", id)
		previous = result.Percent
	}
	assert.Equal(t, 100, previous)
}

func TestComputeOverallProgress(t *testing.T) {
	tests := []struct {
		name     string
		courses  []models.CourseProgress
		expected models.CourseProgress
	}{
		{
			name:     "no courses",
			courses:  nil,
			expected: models.CourseProgress{CompletedLessons: 0, TotalLessons: 0, Percent: 0},
		},
		{
			name: "sums before dividing, never averages percentages",
			courses: []models.CourseProgress{
				{CompletedLessons: 2, TotalLessons: 4, Percent: 50},
				{CompletedLessons: 1, TotalLessons: 1, Percent: 100},
			},
			// 3/5 = 60, not the 75 an average of 50 and 100 would give
			expected: models.CourseProgress{CompletedLessons: 3, TotalLessons: 5, Percent: 60},
		},
		{
			name: "courses with no lessons do not poison the total",
			courses: []models.CourseProgress{
				{CompletedLessons: 0, TotalLessons: 0, Percent: 0},
				{CompletedLessons: 1, TotalLessons: 2, Percent: 50},
			},
			expected: models.CourseProgress{CompletedLessons: 1, TotalLessons: 2, Percent: 50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ComputeOverallProgress(tt.courses)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestComputeStudentProgress(t *testing.T) {
	chapters := buildChapters([]int{1, 2}, []int{3})

	assert.Equal(t, 0, ComputeStudentProgress(chapters, nil))
	assert.Equal(t, 33, ComputeStudentProgress(chapters, []int{1}))
	assert.Equal(t, 100, ComputeStudentProgress(chapters, []int{1, 2, 3}))
}
