package booking

import (
	"context"
	"time"

	"agenda/internal/domain"

	"github.com/google/uuid"
)

// Store is the data access the booking core needs. Lookups that find nothing
// return repository.ErrNotFound.
type Store interface {
	GetProfile(ctx context.Context, providerID string) (*domain.Profile, error)
	GetActiveService(ctx context.Context, providerID string, serviceID uuid.UUID) (*domain.Service, error)
	ListActiveServices(ctx context.Context, providerID string) ([]domain.Service, error)
	ListAvailability(ctx context.Context, providerID string, weekDay int) ([]domain.Availability, error)
	ListBookingsStartingIn(ctx context.Context, providerID string, from, to time.Time) ([]domain.Booking, error)
	HasOverlappingBooking(ctx context.Context, providerID string, start, end time.Time) (bool, error)
	CreateBooking(ctx context.Context, b *domain.Booking) error
	GetBookingDetail(ctx context.Context, id uuid.UUID) (*domain.BookingDetail, error)
	ListAgenda(ctx context.Context, providerID string) ([]domain.BookingDetail, error)

	// WithinProviderLock runs fn in one transaction holding the provider's
	// write lock. Committers for the same provider are serialized.
	WithinProviderLock(ctx context.Context, providerID string, fn func(tx Store) error) error
}
