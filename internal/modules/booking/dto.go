package booking

import (
	"strings"
	"time"

	"agenda/internal/domain"
	"agenda/internal/pkg/timewindow"

	"github.com/google/uuid"
)

// Slot is a bookable interval. It marshals as its start instant in the
// provider's offset, e.g. "2030-01-07T09:00:00-04:00".
type Slot struct {
	Start time.Time
	End   time.Time
}

func (s Slot) String() string {
	return s.Start.Format(timewindow.SlotLayout)
}

func (s Slot) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type SlotsQuery struct {
	ServiceID string `form:"service_id"`
	Date      string `form:"date"`
}

type SlotsResponse struct {
	Slots []Slot `json:"slots"`
}

type CreateGuestBookingRequest struct {
	ServiceID  string `json:"service_id" binding:"required,uuid"`
	StartAt    string `json:"start_at" binding:"required"`
	GuestName  string `json:"guest_name" binding:"required,max=255"`
	GuestEmail string `json:"guest_email" binding:"omitempty,email,max=255"`
	GuestPhone string `json:"guest_phone" binding:"omitempty,max=50"`
}

// GuestBookingRequest is the committer input. StartAt is the slot string
// returned by the enumerator.
type GuestBookingRequest struct {
	ProviderID string
	ServiceID  uuid.UUID
	StartAt    string
	GuestName  string
	GuestEmail string
	GuestPhone string
}

func (r CreateGuestBookingRequest) toInput(providerID string) GuestBookingRequest {
	id, _ := uuid.Parse(r.ServiceID)
	return GuestBookingRequest{
		ProviderID: providerID,
		ServiceID:  id,
		StartAt:    strings.TrimSpace(r.StartAt),
		GuestName:  strings.TrimSpace(r.GuestName),
		GuestEmail: strings.TrimSpace(r.GuestEmail),
		GuestPhone: strings.TrimSpace(r.GuestPhone),
	}
}

type CreateGuestBookingResponse struct {
	OK        bool      `json:"ok"`
	BookingID uuid.UUID `json:"booking_id"`
}

// ReserveData backs the public reservation page.
type ReserveData struct {
	Provider        ProviderCard     `json:"provider"`
	Services        []domain.Service `json:"services"`
	SelectedService *domain.Service  `json:"selected_service"`
	Date            string           `json:"date"`
	Slots           []Slot           `json:"slots"`
}

type ProviderCard struct {
	UserID              string `json:"user_id"`
	DisplayName         string `json:"display_name"`
	ImageURL            string `json:"image_url,omitempty"`
	Timezone            string `json:"timezone"`
	SlotDurationMinutes int    `json:"slot_duration_minutes"`
}

type AgendaItem struct {
	ID          uuid.UUID `json:"id"`
	ServiceID   uuid.UUID `json:"service_id"`
	ServiceName string    `json:"service_name"`
	GuestName   string    `json:"guest_name,omitempty"`
	GuestEmail  string    `json:"guest_email,omitempty"`
	GuestPhone  string    `json:"guest_phone,omitempty"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
}
