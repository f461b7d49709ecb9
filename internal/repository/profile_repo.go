package repository

import (
	"context"
	"time"

	"agenda/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

type profileModel struct {
	UserID              string    `gorm:"column:user_id;type:text;primaryKey"`
	Timezone            string    `gorm:"column:timezone;type:text;not null"`
	SlotDurationMinutes int       `gorm:"column:slot_duration_minutes;type:smallint;not null;default:30;check:profiles_slot_duration_check,slot_duration_minutes > 0 AND slot_duration_minutes <= 1440"`
	DisplayName         string    `gorm:"column:display_name;type:text;not null;default:''"`
	ImageURL            string    `gorm:"column:image_url;type:text;not null;default:''"`
	CreatedAt           time.Time `gorm:"column:created_at"`
	UpdatedAt           time.Time `gorm:"column:updated_at"`
}

func (profileModel) TableName() string { return "profiles" }

func toDomainProfile(m profileModel) *domain.Profile {
	return &domain.Profile{
		UserID:              m.UserID,
		Timezone:            m.Timezone,
		SlotDurationMinutes: m.SlotDurationMinutes,
		DisplayName:         m.DisplayName,
		ImageURL:            m.ImageURL,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

func (r *ProfileRepository) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	var m profileModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainProfile(m), nil
}

// CreateIfMissing inserts p unless a profile for p.UserID already exists.
func (r *ProfileRepository) CreateIfMissing(ctx context.Context, p *domain.Profile) error {
	m := profileModel{
		UserID:              p.UserID,
		Timezone:            p.Timezone,
		SlotDurationMinutes: p.SlotDurationMinutes,
		DisplayName:         p.DisplayName,
		ImageURL:            p.ImageURL,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(&m).Error
}

func (r *ProfileRepository) UpdateDisplay(ctx context.Context, userID, displayName, imageURL string) error {
	return r.db.WithContext(ctx).Model(&profileModel{}).
		Where("user_id = ?", userID).
		Where("(display_name <> ? OR image_url <> ?)", displayName, imageURL).
		Updates(map[string]any{"display_name": displayName, "image_url": imageURL}).Error
}

func (r *ProfileRepository) UpdateSettings(ctx context.Context, userID, timezone string, slotDurationMinutes int) error {
	res := r.db.WithContext(ctx).Model(&profileModel{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{"timezone": timezone, "slot_duration_minutes": slotDurationMinutes})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// LockForUpdate takes a row lock on the provider's profile for the rest of the
// surrounding transaction. SQLite has no row locks; there the write lock of
// the transaction itself serializes writers.
func (r *ProfileRepository) LockForUpdate(ctx context.Context, userID string) error {
	q := r.db.WithContext(ctx)
	if isPostgres(r.db) {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var m profileModel
	if err := q.Where("user_id = ?", userID).First(&m).Error; err != nil {
		return translate(err)
	}
	return nil
}
