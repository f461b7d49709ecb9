package domain

import (
	"time"

	"agenda/internal/pkg/timewindow"
)

const (
	DefaultTimezone            = "America/Caracas"
	DefaultSlotDurationMinutes = 30
)

// Profile is the provider's scheduling profile, keyed by the identity
// provider's user id.
type Profile struct {
	UserID              string    `json:"user_id"`
	Timezone            string    `json:"timezone"`
	SlotDurationMinutes int       `json:"slot_duration_minutes"`
	DisplayName         string    `json:"display_name"`
	ImageURL            string    `json:"image_url,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func (p *Profile) Location() (*time.Location, error) {
	return timewindow.LoadLocation(p.Timezone)
}

// Identity is what the identity provider tells us about the caller.
type Identity struct {
	UserID      string
	DisplayName string
	ImageURL    string
}
