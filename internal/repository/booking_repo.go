package repository

import (
	"context"
	"time"

	"agenda/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	ServiceID      uuid.UUID      `gorm:"column:service_id;type:uuid;not null;index:bookings_service_id_idx"`
	ProviderUserID string         `gorm:"column:provider_user_id;type:text;not null;index:bookings_provider_user_id_idx"`
	CustomerUserID *string        `gorm:"column:customer_user_id;type:text;index:bookings_customer_user_id_idx;check:bookings_customer_info_check,customer_user_id IS NOT NULL OR (guest_name IS NOT NULL AND (guest_email IS NOT NULL OR guest_phone IS NOT NULL))"`
	GuestName      *string        `gorm:"column:guest_name;type:text"`
	GuestEmail     *string        `gorm:"column:guest_email;type:text"`
	GuestPhone     *string        `gorm:"column:guest_phone;type:text"`
	StartTime      time.Time      `gorm:"column:start_time;not null;check:bookings_time_check,start_time < end_time"`
	EndTime        time.Time      `gorm:"column:end_time;not null"`
	CreatedAt      time.Time      `gorm:"column:created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"column:deleted_at;index"`

	Service  *serviceModel `gorm:"foreignKey:ServiceID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Provider *profileModel `gorm:"foreignKey:ProviderUserID;references:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (bookingModel) TableName() string { return "bookings" }

func (m *bookingModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	v := s
	return &v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:             m.ID,
		ServiceID:      m.ServiceID,
		ProviderUserID: m.ProviderUserID,
		CustomerUserID: deref(m.CustomerUserID),
		GuestName:      deref(m.GuestName),
		GuestEmail:     deref(m.GuestEmail),
		GuestPhone:     deref(m.GuestPhone),
		StartTime:      m.StartTime,
		EndTime:        m.EndTime,
		CreatedAt:      m.CreatedAt,
	}
}

// Instants are stored in UTC so that drivers comparing timestamps as text
// (sqlite) order them correctly.
func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:             b.ID,
		ServiceID:      b.ServiceID,
		ProviderUserID: b.ProviderUserID,
		CustomerUserID: optional(b.CustomerUserID),
		GuestName:      optional(b.GuestName),
		GuestEmail:     optional(b.GuestEmail),
		GuestPhone:     optional(b.GuestPhone),
		StartTime:      b.StartTime.UTC(),
		EndTime:        b.EndTime.UTC(),
		CreatedAt:      b.CreatedAt,
	}
}

func toDomainBookingDetail(m bookingModel) domain.BookingDetail {
	d := domain.BookingDetail{Booking: *toDomainBooking(m)}
	if m.Service != nil {
		d.Service = *toDomainService(*m.Service)
	}
	return d
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*b = *toDomainBooking(m)
	return nil
}

// ListStartingIn returns the provider's active bookings whose start lies in [from, to).
func (r *BookingRepository) ListStartingIn(ctx context.Context, providerUserID string, from, to time.Time) ([]domain.Booking, error) {
	var rows []bookingModel
	err := r.db.WithContext(ctx).
		Where("provider_user_id = ?", providerUserID).
		Where("start_time >= ? AND start_time < ?", from.UTC(), to.UTC()).
		Order("start_time ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// HasOverlap reports whether an active booking of the provider intersects [start, end).
func (r *BookingRepository) HasOverlap(ctx context.Context, providerUserID string, start, end time.Time) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("provider_user_id = ?", providerUserID).
		Where("start_time < ? AND end_time > ?", end.UTC(), start.UTC()).
		Count(&cnt).Error
	if err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// GetDetail returns an active booking with its active service.
func (r *BookingRepository) GetDetail(ctx context.Context, id uuid.UUID) (*domain.BookingDetail, error) {
	var m bookingModel
	err := r.db.WithContext(ctx).
		Preload("Service").
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		return nil, translate(err)
	}
	if m.Service == nil {
		return nil, ErrNotFound
	}
	d := toDomainBookingDetail(m)
	return &d, nil
}

// ListForProvider returns the provider's active bookings ordered by start,
// including those of services deleted after booking.
func (r *BookingRepository) ListForProvider(ctx context.Context, providerUserID string) ([]domain.BookingDetail, error) {
	var rows []bookingModel
	err := r.db.WithContext(ctx).
		Preload("Service", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Where("provider_user_id = ?", providerUserID).
		Order("start_time ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.BookingDetail, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainBookingDetail(m))
	}
	return out, nil
}
