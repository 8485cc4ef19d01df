package services

import (
	"context"
	"strconv"
	"strings"

	"github.com/eduflex/backend/internal/gate"
	"github.com/eduflex/backend/internal/models"
)

// SettingsRepository defines methods for platform settings data access
type SettingsRepository interface {
	// GetAll retrieves all stored settings as a key-value map
	GetAll(ctx context.Context) (map[string]string, error)
	// UpsertBatch writes key-value pairs atomically
	UpsertBatch(ctx context.Context, values map[string]string) error
}

type settingsService struct {
	repo SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(repo SettingsRepository) *settingsService {
	return &settingsService{
		repo: repo,
	}
}

// GetSettings returns the merged settings view: stored overrides applied on
// top of the hardcoded defaults. Unparseable stored values keep the default.
func (s *settingsService) GetSettings(ctx context.Context) (models.PlatformSettings, error) {
	settings := models.DefaultPlatformSettings()

	stored, err := s.repo.GetAll(ctx)
	if err != nil {
		return settings, err
	}

	if v, ok := parseBool(stored, models.SettingAllowNewRegistrations); ok {
		settings.AllowNewRegistrations = v
	}
	if v, ok := parseBool(stored, models.SettingAllowCourseSubmissions); ok {
		settings.AllowCourseSubmissions = v
	}
	if v, ok := parseBool(stored, models.SettingMaintenanceMode); ok {
		settings.MaintenanceMode = v
	}
	if v, ok := stored[models.SettingPlatformName]; ok && strings.TrimSpace(v) != "" {
		settings.PlatformName = v
	}

	return settings, nil
}

// UpdateSettings applies a partial admin update and returns the merged view.
// Only known keys are ever written; all provided keys land in one transaction.
func (s *settingsService) UpdateSettings(ctx context.Context, actor models.Actor, req *models.UpdateSettingsRequest) (models.PlatformSettings, error) {
	if d := gate.DecideUpdateSettings(actor); d != nil {
		return models.PlatformSettings{}, d
	}

	values := make(map[string]string)
	if req.AllowNewRegistrations != nil {
		values[models.SettingAllowNewRegistrations] = strconv.FormatBool(*req.AllowNewRegistrations)
	}
	if req.AllowCourseSubmissions != nil {
		values[models.SettingAllowCourseSubmissions] = strconv.FormatBool(*req.AllowCourseSubmissions)
	}
	if req.MaintenanceMode != nil {
		values[models.SettingMaintenanceMode] = strconv.FormatBool(*req.MaintenanceMode)
	}
	if req.PlatformName != nil {
		if strings.TrimSpace(*req.PlatformName) == "" {
			return models.PlatformSettings{}, gate.DenyField("platformName", "platform name cannot be empty")
		}
		values[models.SettingPlatformName] = *req.PlatformName
	}

	if err := s.repo.UpsertBatch(ctx, values); err != nil {
		return models.PlatformSettings{}, err
	}

	return s.GetSettings(ctx)
}

func parseBool(stored map[string]string, key string) (bool, bool) {
	raw, ok := stored[key]
	if !ok {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
