package booking

import "errors"

// Rejections returned by CreateGuestBooking, in the order they are checked.
var (
	ErrInvalidContact       = errors.New("guest name and email or phone are required")
	ErrInvalidSlot          = errors.New("invalid slot")
	ErrPastSlot             = errors.New("slot is in the past")
	ErrProfileNotConfigured = errors.New("provider profile not configured")
	ErrServiceNotFound      = errors.New("service not found")
	ErrSlotUnavailable      = errors.New("slot no longer available")
	ErrSlotTaken            = errors.New("slot just taken")
	ErrInsertFailed         = errors.New("booking insert failed")
)

var ErrBookingNotFound = errors.New("booking not found")

// IsConflict reports whether err means another booking holds the slot.
func IsConflict(err error) bool {
	return errors.Is(err, ErrSlotTaken) || errors.Is(err, ErrSlotUnavailable)
}

// RejectionMessage is the guest-facing text for a booking rejection.
func RejectionMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidContact):
		return "Enter your name and an email or phone number."
	case errors.Is(err, ErrInvalidSlot):
		return "The selected slot is not valid."
	case errors.Is(err, ErrPastSlot):
		return "You cannot book a time in the past."
	case errors.Is(err, ErrProfileNotConfigured):
		return "The provider has not configured a profile."
	case errors.Is(err, ErrServiceNotFound):
		return "The selected service does not exist."
	case errors.Is(err, ErrSlotUnavailable):
		return "That time is no longer available. Choose another slot."
	case errors.Is(err, ErrSlotTaken):
		return "That time was just taken. Choose another slot."
	default:
		return "Could not create the booking."
	}
}
