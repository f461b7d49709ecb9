package booking

import (
	"context"
	"time"

	"agenda/internal/domain"
	"agenda/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStore implements Store on top of the repositories.
type GormStore struct {
	db           *gorm.DB
	profiles     *repository.ProfileRepository
	services     *repository.ServiceRepository
	availability *repository.AvailabilityRepository
	bookings     *repository.BookingRepository
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db:           db,
		profiles:     repository.NewProfileRepository(db),
		services:     repository.NewServiceRepository(db),
		availability: repository.NewAvailabilityRepository(db),
		bookings:     repository.NewBookingRepository(db),
	}
}

func (s *GormStore) GetProfile(ctx context.Context, providerID string) (*domain.Profile, error) {
	return s.profiles.Get(ctx, providerID)
}

func (s *GormStore) GetActiveService(ctx context.Context, providerID string, serviceID uuid.UUID) (*domain.Service, error) {
	return s.services.GetActive(ctx, providerID, serviceID)
}

func (s *GormStore) ListActiveServices(ctx context.Context, providerID string) ([]domain.Service, error) {
	return s.services.ListActive(ctx, providerID, 0, 0)
}

func (s *GormStore) ListAvailability(ctx context.Context, providerID string, weekDay int) ([]domain.Availability, error) {
	return s.availability.ListForWeekDay(ctx, providerID, weekDay)
}

func (s *GormStore) ListBookingsStartingIn(ctx context.Context, providerID string, from, to time.Time) ([]domain.Booking, error) {
	return s.bookings.ListStartingIn(ctx, providerID, from, to)
}

func (s *GormStore) HasOverlappingBooking(ctx context.Context, providerID string, start, end time.Time) (bool, error) {
	return s.bookings.HasOverlap(ctx, providerID, start, end)
}

func (s *GormStore) CreateBooking(ctx context.Context, b *domain.Booking) error {
	return s.bookings.Create(ctx, b)
}

func (s *GormStore) GetBookingDetail(ctx context.Context, id uuid.UUID) (*domain.BookingDetail, error) {
	return s.bookings.GetDetail(ctx, id)
}

func (s *GormStore) ListAgenda(ctx context.Context, providerID string) ([]domain.BookingDetail, error) {
	return s.bookings.ListForProvider(ctx, providerID)
}

func (s *GormStore) WithinProviderLock(ctx context.Context, providerID string, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repository.NewProfileRepository(tx).LockForUpdate(ctx, providerID); err != nil {
			return err
		}
		return fn(NewGormStore(tx))
	})
}
