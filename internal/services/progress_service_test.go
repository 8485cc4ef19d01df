package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eduflex/backend/internal/gate"
	"github.com/eduflex/backend/internal/models"
)

func publishedTree(lessonIDs ...int) []models.ChapterWithLessons {
	lessons := make([]models.LessonListItem, 0, len(lessonIDs))
	for i, id := range lessonIDs {
		lessons = append(lessons, models.LessonListItem{ID: id, Position: i + 1})
	}
	return []models.ChapterWithLessons{
		{
			Chapter: models.Chapter{ID: 1, CourseID: 1, Title: "Basics", IsPublished: true},
			Lessons: lessons,
		},
	}
}

func TestProgressService_ToggleCompletion(t *testing.T) {
	tests := []struct {
		name              string
		actor             models.Actor
		lessonRepo        *mockLessonRepo
		enrollmentRepo    *mockEnrollmentRepo
		progressRepo      *mockProgressRepo
		expectedReason    gate.Reason
		expectedError     bool
		expectedCompleted bool
	}{
		{
			name:  "enrolled learner marks a lesson complete",
			actor: models.Actor{ID: 5, Role: models.RoleStudent},
			lessonRepo: &mockLessonRepo{
				accessCourseID: 1, published: true,
				tree: publishedTree(10, 11, 12),
			},
			enrollmentRepo:    &mockEnrollmentRepo{enrolled: true},
			progressRepo:      &mockProgressRepo{completed: false, defaultIDs: []int{10}},
			expectedCompleted: true,
		},
		{
			name:  "second toggle marks it incomplete again",
			actor: models.Actor{ID: 5, Role: models.RoleStudent},
			lessonRepo: &mockLessonRepo{
				accessCourseID: 1, published: true,
				tree: publishedTree(10, 11, 12),
			},
			enrollmentRepo:    &mockEnrollmentRepo{enrolled: true},
			progressRepo:      &mockProgressRepo{completed: true},
			expectedCompleted: false,
		},
		{
			name:  "free preview works without enrollment",
			actor: models.Actor{ID: 5, Role: models.RoleStudent},
			lessonRepo: &mockLessonRepo{
				accessCourseID: 1, published: true, freePreview: true,
				tree: publishedTree(10),
			},
			enrollmentRepo:    &mockEnrollmentRepo{enrolled: false},
			progressRepo:      &mockProgressRepo{},
			expectedCompleted: true,
		},
		{
			name:  "locked lesson without enrollment",
			actor: models.Actor{ID: 5, Role: models.RoleStudent},
			lessonRepo: &mockLessonRepo{
				accessCourseID: 1, published: true,
			},
			enrollmentRepo: &mockEnrollmentRepo{enrolled: false},
			progressRepo:   &mockProgressRepo{},
			expectedReason: gate.ReasonNotEnrolled,
			expectedError:  true,
		},
		{
			name:  "guest is rejected before any lookup",
			actor: models.Actor{},
			lessonRepo: &mockLessonRepo{
				accessCourseID: 1, published: true, freePreview: true,
			},
			enrollmentRepo: &mockEnrollmentRepo{},
			progressRepo:   &mockProgressRepo{},
			expectedReason: gate.ReasonNotAuthenticated,
			expectedError:  true,
		},
		{
			name:  "unpublished lesson reads as not found",
			actor: models.Actor{ID: 5, Role: models.RoleStudent},
			lessonRepo: &mockLessonRepo{
				accessCourseID: 1, published: false,
			},
			enrollmentRepo: &mockEnrollmentRepo{enrolled: true},
			progressRepo:   &mockProgressRepo{},
			expectedReason: gate.ReasonNotFound,
			expectedError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewProgressService(tt.lessonRepo, tt.enrollmentRepo, tt.progressRepo, &mockCourseRepo{})

			resp, _, err := svc.ToggleCompletion(context.Background(), tt.actor, 10)

			if tt.expectedError {
				assert.Error(t, err)
				d, ok := gate.AsDenial(err)
				assert.True(t, ok)
				assert.Equal(t, tt.expectedReason, d.Reason)
				assert.Nil(t, tt.progressRepo.setCompleted)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedCompleted, resp.IsCompleted)
				assert.NotNil(t, tt.progressRepo.setCompleted)
				assert.Equal(t, tt.expectedCompleted, *tt.progressRepo.setCompleted)
			}
		})
	}
}

func TestProgressService_ToggleCompletion_ReturnsCourseProgress(t *testing.T) {
	lessonRepo := &mockLessonRepo{
		accessCourseID: 1, published: true,
		tree: publishedTree(10, 11, 12, 13),
	}
	progressRepo := &mockProgressRepo{completed: false, defaultIDs: []int{10, 11}}
	svc := NewProgressService(lessonRepo, &mockEnrollmentRepo{enrolled: true}, progressRepo, &mockCourseRepo{})

	_, courseProgress, err := svc.ToggleCompletion(context.Background(), models.Actor{ID: 5, Role: models.RoleStudent}, 11)

	assert.NoError(t, err)
	assert.Equal(t, 4, courseProgress.TotalLessons)
	assert.Equal(t, 2, courseProgress.CompletedLessons)
	assert.Equal(t, 50, courseProgress.Percent)
}

func TestProgressService_GetCourseProgress(t *testing.T) {
	tests := []struct {
		name           string
		actor          models.Actor
		enrollmentRepo *mockEnrollmentRepo
		expectedReason gate.Reason
		expectedError  bool
	}{
		{
			name:           "enrolled learner gets progress",
			actor:          models.Actor{ID: 5, Role: models.RoleStudent},
			enrollmentRepo: &mockEnrollmentRepo{enrolled: true},
		},
		{
			name:           "not enrolled",
			actor:          models.Actor{ID: 5, Role: models.RoleStudent},
			enrollmentRepo: &mockEnrollmentRepo{enrolled: false},
			expectedReason: gate.ReasonNotEnrolled,
			expectedError:  true,
		},
		{
			name:           "guest",
			actor:          models.Actor{},
			enrollmentRepo: &mockEnrollmentRepo{},
			expectedReason: gate.ReasonNotAuthenticated,
			expectedError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lessonRepo := &mockLessonRepo{tree: publishedTree(10, 11)}
			progressRepo := &mockProgressRepo{defaultIDs: []int{10}}
			svc := NewProgressService(lessonRepo, tt.enrollmentRepo, progressRepo, &mockCourseRepo{})

			result, err := svc.GetCourseProgress(context.Background(), tt.actor, 1)

			if tt.expectedError {
				assert.Error(t, err)
				d, ok := gate.AsDenial(err)
				assert.True(t, ok)
				assert.Equal(t, tt.expectedReason, d.Reason)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 50, result.Percent)
			}
		})
	}
}

func TestProgressService_GetDashboard(t *testing.T) {
	lessonRepo := &mockLessonRepo{
		tree: publishedTree(1, 2, 3, 4, 5, 6, 7, 8, 9, 10),
	}
	enrollmentRepo := &mockEnrollmentRepo{courseIDs: []int{1}}
	progressRepo := &mockProgressRepo{defaultIDs: []int{1}}
	courseRepo := &mockCourseRepo{course: &models.Course{ID: 1, Title: "Big", IsPublished: true}}
	svc := NewProgressService(lessonRepo, enrollmentRepo, progressRepo, courseRepo)

	dashboard, err := svc.GetDashboard(context.Background(), models.Actor{ID: 5, Role: models.RoleStudent})

	assert.NoError(t, err)
	assert.Len(t, dashboard.Courses, 1)
	assert.Equal(t, 10, dashboard.Overall.TotalLessons)
	assert.Equal(t, 1, dashboard.Overall.CompletedLessons)
	assert.Equal(t, 10, dashboard.Overall.Percent)
}

func TestProgressService_GetDashboard_NoEnrollments(t *testing.T) {
	svc := NewProgressService(&mockLessonRepo{}, &mockEnrollmentRepo{}, &mockProgressRepo{}, &mockCourseRepo{})

	dashboard, err := svc.GetDashboard(context.Background(), models.Actor{ID: 5, Role: models.RoleStudent})

	assert.NoError(t, err)
	assert.Empty(t, dashboard.Courses)
	assert.Equal(t, 0, dashboard.Overall.Percent)
}
