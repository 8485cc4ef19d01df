package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eduflex/backend/internal/gate"
	"github.com/eduflex/backend/internal/models"
)

func TestContactService_SubmitMessage(t *testing.T) {
	validReq := func() *models.ContactMessageRequest {
		return &models.ContactMessageRequest{
			Name:    "Dana",
			Email:   "dana@example.com",
			Subject: "Refund request",
			Message: "I purchased the wrong course, please help.",
		}
	}

	t.Run("guest submission stores no user id", func(t *testing.T) {
		repo := &mockMessageRepo{}
		svc := NewContactService(repo)

		message, err := svc.SubmitMessage(context.Background(), models.Actor{}, validReq())

		assert.NoError(t, err)
		assert.Nil(t, message.UserID)
		assert.Equal(t, models.MessageStatusUnread, repo.created.Status)
	})

	t.Run("signed in submission carries the user id", func(t *testing.T) {
		repo := &mockMessageRepo{}
		svc := NewContactService(repo)

		message, err := svc.SubmitMessage(context.Background(), models.Actor{ID: 5, Role: models.RoleStudent}, validReq())

		assert.NoError(t, err)
		assert.NotNil(t, message.UserID)
		assert.Equal(t, 5, *message.UserID)
	})

	t.Run("first violated field is reported", func(t *testing.T) {
		repo := &mockMessageRepo{}
		svc := NewContactService(repo)

		req := validReq()
		req.Email = "nope"
		req.Message = "short"

		_, err := svc.SubmitMessage(context.Background(), models.Actor{}, req)

		assert.Error(t, err)
		d, ok := gate.AsDenial(err)
		assert.True(t, ok)
		assert.Equal(t, gate.ReasonInvalidInput, d.Reason)
		assert.Equal(t, "email", d.Field)
		assert.Nil(t, repo.created)
	})
}

func TestProfileService_CompleteProfile(t *testing.T) {
	tests := []struct {
		name           string
		actor          models.Actor
		storedRole     models.Role
		chosen         models.Role
		expectedReason gate.Reason
		expectedError  bool
	}{
		{
			name:       "new user becomes a student",
			actor:      models.Actor{ID: 5, Role: models.RoleNewUser},
			storedRole: models.RoleNewUser,
			chosen:     models.RoleStudent,
		},
		{
			name:       "new user becomes an instructor",
			actor:      models.Actor{ID: 5, Role: models.RoleNewUser},
			storedRole: models.RoleNewUser,
			chosen:     models.RoleInstructor,
		},
		{
			name:           "admin cannot be chosen",
			actor:          models.Actor{ID: 5, Role: models.RoleNewUser},
			storedRole:     models.RoleNewUser,
			chosen:         models.RoleAdmin,
			expectedReason: gate.ReasonInvalidInput,
			expectedError:  true,
		},
		{
			name:           "already completed profile is rejected",
			actor:          models.Actor{ID: 5, Role: models.RoleStudent},
			storedRole:     models.RoleStudent,
			chosen:         models.RoleInstructor,
			expectedReason: gate.ReasonNotAuthorized,
			expectedError:  true,
		},
		{
			name:           "guest is rejected",
			actor:          models.Actor{},
			storedRole:     models.RoleNewUser,
			chosen:         models.RoleStudent,
			expectedReason: gate.ReasonNotAuthenticated,
			expectedError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := &mockUserRepo{user: &models.User{ID: 5, Role: tt.storedRole}}
			svc := NewProfileService(userRepo)

			err := svc.CompleteProfile(context.Background(), tt.actor, tt.chosen)

			if tt.expectedError {
				assert.Error(t, err)
				d, ok := gate.AsDenial(err)
				assert.True(t, ok)
				assert.Equal(t, tt.expectedReason, d.Reason)
				assert.Nil(t, userRepo.updatedRole)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.chosen, *userRepo.updatedRole)
			}
		})
	}
}
