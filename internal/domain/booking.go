package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrBookingTimeRange = errors.New("booking start must be before end")
	ErrBookingContact   = errors.New("booking needs a customer or a guest name with email or phone")
)

type Booking struct {
	ID             uuid.UUID `json:"id"`
	ServiceID      uuid.UUID `json:"service_id"`
	ProviderUserID string    `json:"provider_user_id"`
	CustomerUserID string    `json:"customer_user_id,omitempty"`
	GuestName      string    `json:"guest_name,omitempty"`
	GuestEmail     string    `json:"guest_email,omitempty"`
	GuestPhone     string    `json:"guest_phone,omitempty"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	CreatedAt      time.Time `json:"created_at"`
}

// Validate checks the invariants the bookings table enforces.
func (b *Booking) Validate() error {
	if !b.StartTime.Before(b.EndTime) {
		return ErrBookingTimeRange
	}
	return b.ValidateContact()
}

// ValidateContact requires a customer, or a guest name plus email or phone.
func (b *Booking) ValidateContact() error {
	if strings.TrimSpace(b.CustomerUserID) != "" {
		return nil
	}
	if strings.TrimSpace(b.GuestName) == "" {
		return ErrBookingContact
	}
	if strings.TrimSpace(b.GuestEmail) == "" && strings.TrimSpace(b.GuestPhone) == "" {
		return ErrBookingContact
	}
	return nil
}

// BookingDetail is a booking joined with the service it was made for.
type BookingDetail struct {
	Booking
	Service Service `json:"service"`
}
