package repository

import (
	"context"
	"time"

	"agenda/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

type serviceModel struct {
	ID              uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	UserID          string         `gorm:"column:user_id;type:text;not null;index:services_user_id_idx"`
	Name            string         `gorm:"column:name;type:text;not null;check:services_name_length_check,length(name) > 0 AND length(name) <= 255"`
	Description     string         `gorm:"column:description;type:text;not null;default:'';check:services_description_length_check,length(description) <= 5000"`
	DurationMinutes int            `gorm:"column:duration_minutes;type:smallint;not null;default:30;check:services_duration_check,duration_minutes > 0 AND duration_minutes <= 1440"`
	CreatedAt       time.Time      `gorm:"column:created_at"`
	UpdatedAt       time.Time      `gorm:"column:updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"column:deleted_at;index"`

	Profile *profileModel `gorm:"foreignKey:UserID;references:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (serviceModel) TableName() string { return "services" }

func (m *serviceModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func toDomainService(m serviceModel) *domain.Service {
	return &domain.Service{
		ID:              m.ID,
		UserID:          m.UserID,
		Name:            m.Name,
		Description:     m.Description,
		DurationMinutes: m.DurationMinutes,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// GetActive returns the provider's service unless it is soft-deleted or owned
// by someone else.
func (r *ServiceRepository) GetActive(ctx context.Context, userID string, id uuid.UUID) (*domain.Service, error) {
	var m serviceModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&m).Error
	if err != nil {
		return nil, translate(err)
	}
	return toDomainService(m), nil
}

// ListActive returns the provider's services oldest first. limit <= 0 means all.
func (r *ServiceRepository) ListActive(ctx context.Context, userID string, limit, offset int) ([]domain.Service, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Order("id ASC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	var rows []serviceModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Service, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainService(m))
	}
	return out, nil
}

func (r *ServiceRepository) Create(ctx context.Context, s *domain.Service) error {
	m := serviceModel{
		ID:              s.ID,
		UserID:          s.UserID,
		Name:            s.Name,
		Description:     s.Description,
		DurationMinutes: s.DurationMinutes,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*s = *toDomainService(m)
	return nil
}

func (r *ServiceRepository) UpdateDuration(ctx context.Context, userID string, id uuid.UUID, durationMinutes int) error {
	res := r.db.WithContext(ctx).Model(&serviceModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("duration_minutes", durationMinutes)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SoftDelete marks the service deleted; its bookings stay in place.
func (r *ServiceRepository) SoftDelete(ctx context.Context, userID string, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&serviceModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
