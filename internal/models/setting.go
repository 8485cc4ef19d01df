package models

// Setting keys form a closed set; unknown keys are rejected on write.
const (
	SettingAllowNewRegistrations  = "allowNewRegistrations"
	SettingAllowCourseSubmissions = "allowCourseSubmissions"
	SettingMaintenanceMode        = "maintenanceMode"
	SettingPlatformName           = "platformName"
)

// PlatformSettings is the merged settings view: stored values override defaults
type PlatformSettings struct {
	AllowNewRegistrations  bool   `json:"allowNewRegistrations"`
	AllowCourseSubmissions bool   `json:"allowCourseSubmissions"`
	MaintenanceMode        bool   `json:"maintenanceMode"`
	PlatformName           string `json:"platformName"`
}

// DefaultPlatformSettings returns the hardcoded defaults applied when no override is stored
func DefaultPlatformSettings() PlatformSettings {
	return PlatformSettings{
		AllowNewRegistrations:  true,
		AllowCourseSubmissions: true,
		MaintenanceMode:        false,
		PlatformName:           "EduFlex",
	}
}

// UpdateSettingsRequest represents a partial settings update; nil fields are untouched
type UpdateSettingsRequest struct {
	AllowNewRegistrations  *bool   `json:"allowNewRegistrations,omitempty"`
	AllowCourseSubmissions *bool   `json:"allowCourseSubmissions,omitempty"`
	MaintenanceMode        *bool   `json:"maintenanceMode,omitempty"`
	PlatformName           *string `json:"platformName,omitempty" validate:"omitempty,min=1"`
}
