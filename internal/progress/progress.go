// Package progress computes completion metrics over course trees.
// All functions are pure: they operate on whatever chapter set the caller
// supplies (callers are expected to pass published items only) and never
// touch the store.
package progress

import (
	"math"

	"github.com/eduflex/backend/internal/models"
)

// CompletedSet builds a lookup set from a slice of completed lesson IDs
func CompletedSet(lessonIDs []int) map[int]bool {
	set := make(map[int]bool, len(lessonIDs))
	for _, id := range lessonIDs {
		set[id] = true
	}
	return set
}

// Percent returns the rounded completion percentage with a zero guard.
// Rounding is to the nearest integer everywhere; "fully complete" checks
// must compare counts, not percentages.
func Percent(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}

// ComputeCourseProgress computes completion metrics for one course tree
func ComputeCourseProgress(chapters []models.ChapterWithLessons, completed map[int]bool) models.CourseProgress {
	var totalLessons, completedLessons int
	for _, chapter := range chapters {
		totalLessons += len(chapter.Lessons)
		for _, lesson := range chapter.Lessons {
			if completed[lesson.ID] {
				completedLessons++
			}
		}
	}

	return models.CourseProgress{
		CompletedLessons: completedLessons,
		TotalLessons:     totalLessons,
		Percent:          Percent(completedLessons, totalLessons),
	}
}

// ComputeOverallProgress aggregates per-course metrics into one figure by
// summing numerators and denominators before dividing. Averaging per-course
// percentages would bias toward small courses.
func ComputeOverallProgress(courses []models.CourseProgress) models.CourseProgress {
	var totalLessons, completedLessons int
	for _, course := range courses {
		totalLessons += course.TotalLessons
		completedLessons += course.CompletedLessons
	}

	return models.CourseProgress{
		CompletedLessons: completedLessons,
		TotalLessons:     totalLessons,
		Percent:          Percent(completedLessons, totalLessons),
	}
}

// ComputeStudentProgress returns one student's percentage in a course tree,
// used to rank students in the instructor roster
func ComputeStudentProgress(chapters []models.ChapterWithLessons, completedLessonIDs []int) int {
	return ComputeCourseProgress(chapters, CompletedSet(completedLessonIDs)).Percent
}
