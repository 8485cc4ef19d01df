package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eduflex/backend/internal/gate"
	"github.com/eduflex/backend/internal/models"
)

func TestSettingsService_GetSettings(t *testing.T) {
	tests := []struct {
		name     string
		stored   map[string]string
		expected models.PlatformSettings
	}{
		{
			name:     "empty store yields the defaults",
			stored:   map[string]string{},
			expected: models.DefaultPlatformSettings(),
		},
		{
			name: "stored overrides win",
			stored: map[string]string{
				models.SettingAllowCourseSubmissions: "false",
				models.SettingMaintenanceMode:        "true",
				models.SettingPlatformName:           "Acme Academy",
			},
			expected: models.PlatformSettings{
				AllowNewRegistrations:  true,
				AllowCourseSubmissions: false,
				MaintenanceMode:        true,
				PlatformName:           "Acme Academy",
			},
		},
		{
			name: "unparseable value keeps the default",
			stored: map[string]string{
				models.SettingMaintenanceMode: "definitely",
				models.SettingPlatformName:    "  ",
			},
			expected: models.DefaultPlatformSettings(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewSettingsService(&mockSettingsRepo{stored: tt.stored})

			settings, err := svc.GetSettings(context.Background())

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, settings)
		})
	}
}

func TestSettingsService_UpdateSettings(t *testing.T) {
	boolPtr := func(v bool) *bool { return &v }
	strPtr := func(v string) *string { return &v }

	tests := []struct {
		name           string
		actor          models.Actor
		req            *models.UpdateSettingsRequest
		expectedKeys   []string
		expectedReason gate.Reason
		expectedError  bool
	}{
		{
			name:  "admin updates two settings",
			actor: models.Actor{ID: 1, Role: models.RoleAdmin},
			req: &models.UpdateSettingsRequest{
				AllowCourseSubmissions: boolPtr(false),
				PlatformName:           strPtr("Acme Academy"),
			},
			expectedKeys: []string{models.SettingAllowCourseSubmissions, models.SettingPlatformName},
		},
		{
			name:         "untouched fields write nothing",
			actor:        models.Actor{ID: 1, Role: models.RoleAdmin},
			req:          &models.UpdateSettingsRequest{},
			expectedKeys: []string{},
		},
		{
			name:           "non admin is rejected",
			actor:          models.Actor{ID: 2, Role: models.RoleInstructor},
			req:            &models.UpdateSettingsRequest{MaintenanceMode: boolPtr(true)},
			expectedReason: gate.ReasonNotAuthorized,
			expectedError:  true,
		},
		{
			name:           "blank platform name is rejected",
			actor:          models.Actor{ID: 1, Role: models.RoleAdmin},
			req:            &models.UpdateSettingsRequest{PlatformName: strPtr("   ")},
			expectedReason: gate.ReasonInvalidInput,
			expectedError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockSettingsRepo{stored: map[string]string{}}
			svc := NewSettingsService(repo)

			_, err := svc.UpdateSettings(context.Background(), tt.actor, tt.req)

			if tt.expectedError {
				assert.Error(t, err)
				d, ok := gate.AsDenial(err)
				assert.True(t, ok)
				assert.Equal(t, tt.expectedReason, d.Reason)
				assert.Nil(t, repo.upserted)
			} else {
				assert.NoError(t, err)
				assert.Len(t, repo.upserted, len(tt.expectedKeys))
				for _, key := range tt.expectedKeys {
					assert.Contains(t, repo.upserted, key)
				}
			}
		})
	}
}
