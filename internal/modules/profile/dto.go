package profile

import "agenda/internal/domain"

// SettingsInput replaces the provider's timezone, slot duration and weekly
// windows in one go.
type SettingsInput struct {
	Timezone            string        `json:"timezone" validate:"required,max=255"`
	SlotDurationMinutes int           `json:"slot_duration_minutes" validate:"min=5,max=1440"`
	Availabilities      []WindowInput `json:"availabilities" validate:"required,min=1,dive"`
}

type WindowInput struct {
	WeekDay   int    `json:"week_day" validate:"min=0,max=6"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

type Settings struct {
	Timezone            string                `json:"timezone"`
	SlotDurationMinutes int                   `json:"slot_duration_minutes"`
	DisplayName         string                `json:"display_name"`
	ImageURL            string                `json:"image_url,omitempty"`
	Availabilities      []domain.Availability `json:"availabilities"`
}

// Defaults for profiles created on first access.
type Defaults struct {
	Timezone            string
	SlotDurationMinutes int
}
