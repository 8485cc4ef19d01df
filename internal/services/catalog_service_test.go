package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eduflex/backend/internal/models"
)

func catalogTree() []models.ChapterWithLessons {
	return []models.ChapterWithLessons{
		{
			Chapter: models.Chapter{ID: 1, CourseID: 1, Title: "Basics", IsPublished: true},
			Lessons: []models.LessonListItem{
				{ID: 10, Title: "Intro", Position: 1, IsFree: true},
				{ID: 11, Title: "Setup", Position: 2},
				{ID: 12, Title: "Syntax", Position: 3},
			},
		},
	}
}

func TestCatalogService_GetCourseDetail(t *testing.T) {
	price := 49.99
	publishedCourse := &models.Course{
		ID: 1, InstructorID: 9, Title: "Go from Scratch",
		Price: &price, IsPublished: true,
	}

	t.Run("guest sees previews unlocked and the rest locked", func(t *testing.T) {
		svc := NewCatalogService(
			&mockCourseRepo{course: publishedCourse},
			&mockLessonRepo{tree: catalogTree()},
			&mockEnrollmentRepo{},
			&mockProgressRepo{},
			&mockReviewRepo{},
		)

		detail, err := svc.GetCourseDetail(context.Background(), models.Actor{}, 1)

		assert.NoError(t, err)
		assert.False(t, detail.Enrolled)
		assert.Nil(t, detail.Progress)
		lessons := detail.Chapters[0].Lessons
		assert.False(t, lessons[0].Locked)
		assert.True(t, lessons[1].Locked)
		assert.True(t, lessons[2].Locked)
	})

	t.Run("enrolled learner sees everything unlocked with progress", func(t *testing.T) {
		svc := NewCatalogService(
			&mockCourseRepo{course: publishedCourse},
			&mockLessonRepo{tree: catalogTree()},
			&mockEnrollmentRepo{enrolled: true},
			&mockProgressRepo{defaultIDs: []int{10, 11}},
			&mockReviewRepo{},
		)

		detail, err := svc.GetCourseDetail(context.Background(), models.Actor{ID: 5, Role: models.RoleStudent}, 1)

		assert.NoError(t, err)
		assert.True(t, detail.Enrolled)
		lessons := detail.Chapters[0].Lessons
		assert.False(t, lessons[1].Locked)
		assert.True(t, lessons[0].IsCompleted)
		assert.True(t, lessons[1].IsCompleted)
		assert.False(t, lessons[2].IsCompleted)
		assert.NotNil(t, detail.Progress)
		assert.Equal(t, 67, detail.Progress.Percent)
	})

	t.Run("unpublished course reads as not found", func(t *testing.T) {
		svc := NewCatalogService(
			&mockCourseRepo{course: &models.Course{ID: 1, IsPublished: false}},
			&mockLessonRepo{},
			&mockEnrollmentRepo{},
			&mockProgressRepo{},
			&mockReviewRepo{},
		)

		_, err := svc.GetCourseDetail(context.Background(), models.Actor{}, 1)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "course not found")
	})
}

func TestCatalogService_ListCourses(t *testing.T) {
	courseRepo := &mockCourseRepo{
		listItems: []models.CourseListItem{{ID: 1, Title: "Go from Scratch"}},
	}
	svc := NewCatalogService(courseRepo, &mockLessonRepo{}, &mockEnrollmentRepo{}, &mockProgressRepo{}, &mockReviewRepo{})

	items, err := svc.ListCourses(context.Background(), "", "", 0, 0)

	assert.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestCatalogService_ListReviews(t *testing.T) {
	reviewRepo := &mockReviewRepo{
		reviews: []models.ReviewListItem{{UserName: "Dana", Rating: 5, Comment: "great"}},
	}

	t.Run("published course lists reviews", func(t *testing.T) {
		svc := NewCatalogService(
			&mockCourseRepo{course: &models.Course{ID: 1, IsPublished: true}},
			&mockLessonRepo{}, &mockEnrollmentRepo{}, &mockProgressRepo{}, reviewRepo,
		)

		reviews, err := svc.ListReviews(context.Background(), 1)
		assert.NoError(t, err)
		assert.Len(t, reviews, 1)
	})

	t.Run("unpublished course hides reviews", func(t *testing.T) {
		svc := NewCatalogService(
			&mockCourseRepo{course: &models.Course{ID: 1, IsPublished: false}},
			&mockLessonRepo{}, &mockEnrollmentRepo{}, &mockProgressRepo{}, reviewRepo,
		)

		_, err := svc.ListReviews(context.Background(), 1)
		assert.Error(t, err)
	})
}
