package repository

import (
	"context"
	"fmt"
	"time"

	"agenda/internal/domain"
	"agenda/internal/pkg/timewindow"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AvailabilityRepository struct {
	db *gorm.DB
}

func NewAvailabilityRepository(db *gorm.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

type availabilityModel struct {
	ID        int64          `gorm:"column:id;primaryKey;autoIncrement"`
	UserID    string         `gorm:"column:user_id;type:text;not null;index:availabilities_user_id_idx"`
	WeekDay   int            `gorm:"column:week_day;type:smallint;not null;check:availabilities_weekday_check,week_day >= 0 AND week_day <= 6"`
	StartTime datatypes.Time `gorm:"column:start_time;type:time;not null;check:availabilities_time_check,start_time < end_time"`
	EndTime   datatypes.Time `gorm:"column:end_time;type:time;not null"`

	Profile *profileModel `gorm:"foreignKey:UserID;references:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (availabilityModel) TableName() string { return "availabilities" }

func clockToTime(c timewindow.Clock) datatypes.Time {
	return datatypes.NewTime(c.Hour(), c.Minute(), 0, 0)
}

func timeToClock(t datatypes.Time) timewindow.Clock {
	return timewindow.Clock(time.Duration(t) / time.Minute)
}

func toDomainAvailability(m availabilityModel) domain.Availability {
	return domain.Availability{
		WeekDay:   m.WeekDay,
		StartTime: timeToClock(m.StartTime),
		EndTime:   timeToClock(m.EndTime),
	}
}

func (r *AvailabilityRepository) ListForWeekDay(ctx context.Context, userID string, weekDay int) ([]domain.Availability, error) {
	var rows []availabilityModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND week_day = ?", userID, weekDay).
		Order("start_time ASC").Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return mapAvailability(rows), nil
}

func (r *AvailabilityRepository) ListForUser(ctx context.Context, userID string) ([]domain.Availability, error) {
	var rows []availabilityModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("week_day ASC").Order("start_time ASC").Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return mapAvailability(rows), nil
}

// Replace deletes every window of the provider and inserts windows. Callers run
// it inside a transaction so a failed insert does not leave the provider empty.
func (r *AvailabilityRepository) Replace(ctx context.Context, userID string, windows []domain.Availability) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("user_id = ?", userID).Delete(&availabilityModel{}).Error; err != nil {
		return fmt.Errorf("delete availability: %w", err)
	}
	if len(windows) == 0 {
		return nil
	}
	rows := make([]availabilityModel, 0, len(windows))
	for _, w := range windows {
		rows = append(rows, availabilityModel{
			UserID:    userID,
			WeekDay:   w.WeekDay,
			StartTime: clockToTime(w.StartTime),
			EndTime:   clockToTime(w.EndTime),
		})
	}
	if err := db.Create(&rows).Error; err != nil {
		return fmt.Errorf("insert availability: %w", err)
	}
	return nil
}

func mapAvailability(rows []availabilityModel) []domain.Availability {
	out := make([]domain.Availability, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainAvailability(m))
	}
	return out
}
