package domain

import (
	"time"

	"github.com/google/uuid"
)

const MaxDurationMinutes = 1440

// Service is something a provider offers for booking.
type Service struct {
	ID              uuid.UUID `json:"id"`
	UserID          string    `json:"-"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	DurationMinutes int       `json:"duration_minutes"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}
