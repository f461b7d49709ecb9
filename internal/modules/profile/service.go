package profile

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"agenda/internal/domain"
	"agenda/internal/pkg/timewindow"
	"agenda/internal/pkg/validator"
	"agenda/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	db       *gorm.DB
	profiles *repository.ProfileRepository
	windows  *repository.AvailabilityRepository
	defaults Defaults
}

func NewService(db *gorm.DB, defaults Defaults) *Service {
	if defaults.Timezone == "" {
		defaults.Timezone = domain.DefaultTimezone
	}
	if defaults.SlotDurationMinutes <= 0 {
		defaults.SlotDurationMinutes = domain.DefaultSlotDurationMinutes
	}
	return &Service{
		db:       db,
		profiles: repository.NewProfileRepository(db),
		windows:  repository.NewAvailabilityRepository(db),
		defaults: defaults,
	}
}

// Ensure creates the caller's profile on first access and keeps its display
// fields in sync with the identity token.
func (s *Service) Ensure(ctx context.Context, id domain.Identity) (*domain.Profile, error) {
	err := s.profiles.CreateIfMissing(ctx, &domain.Profile{
		UserID:              id.UserID,
		Timezone:            s.defaults.Timezone,
		SlotDurationMinutes: s.defaults.SlotDurationMinutes,
		DisplayName:         id.DisplayName,
		ImageURL:            id.ImageURL,
	})
	if err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	if err := s.profiles.UpdateDisplay(ctx, id.UserID, id.DisplayName, id.ImageURL); err != nil {
		return nil, fmt.Errorf("update profile display: %w", err)
	}

	p, err := s.profiles.Get(ctx, id.UserID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

func (s *Service) GetSettings(ctx context.Context, providerID string) (*Settings, error) {
	p, err := s.profiles.Get(ctx, providerID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	windows, err := s.windows.ListForUser(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("list availability: %w", err)
	}

	return &Settings{
		Timezone:            p.Timezone,
		SlotDurationMinutes: p.SlotDurationMinutes,
		DisplayName:         p.DisplayName,
		ImageURL:            p.ImageURL,
		Availabilities:      windows,
	}, nil
}

// ReplaceAvailability validates in and then, in one transaction, updates the
// profile and swaps the provider's whole weekly availability for in's
// windows. Overlapping windows are stored as given.
func (s *Service) ReplaceAvailability(ctx context.Context, providerID string, in SettingsInput) (*Settings, error) {
	in.Timezone = strings.TrimSpace(in.Timezone)
	windows, err := validateSettings(in)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repository.NewProfileRepository(tx).UpdateSettings(ctx, providerID, in.Timezone, in.SlotDurationMinutes); err != nil {
			return err
		}
		return repository.NewAvailabilityRepository(tx).Replace(ctx, providerID, windows)
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		log.Printf("replace_availability_failed provider_id=%s windows=%d err=%v", providerID, len(windows), err)
		return nil, fmt.Errorf("replace availability: %w", err)
	}

	return s.GetSettings(ctx, providerID)
}

func validateSettings(in SettingsInput) ([]domain.Availability, error) {
	fields := validator.Validate(in)
	if fields == nil {
		fields = map[string]string{}
	}

	if _, bad := fields["timezone"]; !bad {
		if _, err := timewindow.LoadLocation(in.Timezone); err != nil {
			fields["timezone"] = "invalid_timezone"
		}
	}

	windows := make([]domain.Availability, 0, len(in.Availabilities))
	for i, w := range in.Availabilities {
		prefix := fmt.Sprintf("availabilities[%d].", i)
		start, startErr := timewindow.ParseClock(w.StartTime)
		end, endErr := timewindow.ParseClock(w.EndTime)
		if startErr != nil {
			setOnce(fields, prefix+"start_time", "invalid_time")
		}
		if endErr != nil {
			setOnce(fields, prefix+"end_time", "invalid_time")
		}
		if startErr == nil && endErr == nil && start >= end {
			setOnce(fields, prefix+"end_time", "must_be_after_start")
		}
		windows = append(windows, domain.Availability{WeekDay: w.WeekDay, StartTime: start, EndTime: end})
	}

	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}
	return windows, nil
}

func setOnce(fields map[string]string, key, value string) {
	if _, ok := fields[key]; !ok {
		fields[key] = value
	}
}
