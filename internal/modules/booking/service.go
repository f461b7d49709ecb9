package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"agenda/internal/domain"
	"agenda/internal/pkg/timewindow"
	"agenda/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE raised by an EXCLUDE constraint.
const exclusionViolation = "23P01"

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{
		store: store,
		now:   time.Now,
	}
}

// ListAvailableSlots returns the free start instants of serviceID on date
// (YYYY-MM-DD) in the provider's zone, oldest first. An unknown zone, a
// malformed date or a missing, deleted or foreign service yields an empty
// list. Only store failures are returned as errors.
func (s *Service) ListAvailableSlots(ctx context.Context, providerID string, serviceID uuid.UUID, date, timezone string) ([]Slot, error) {
	return s.listSlots(ctx, s.store, providerID, serviceID, date, timezone)
}

func (s *Service) listSlots(ctx context.Context, st Store, providerID string, serviceID uuid.UUID, date, timezone string) ([]Slot, error) {
	loc, err := timewindow.LoadLocation(timezone)
	if err != nil {
		return []Slot{}, nil
	}
	day, err := timewindow.ParseDate(date, loc)
	if err != nil {
		return []Slot{}, nil
	}

	svc, err := st.GetActiveService(ctx, providerID, serviceID)
	if errors.Is(err, repository.ErrNotFound) {
		return []Slot{}, nil
	}
	if err != nil {
		log.Printf("list_slots_failed step=service provider_id=%s service_id=%s err=%v", providerID, serviceID, err)
		return nil, fmt.Errorf("get service: %w", err)
	}

	windows, err := st.ListAvailability(ctx, providerID, timewindow.WeekDay(day))
	if err != nil {
		log.Printf("list_slots_failed step=availability provider_id=%s date=%s err=%v", providerID, date, err)
		return nil, fmt.Errorf("list availability: %w", err)
	}

	bounds := timewindow.DayBounds(day)
	bookings, err := st.ListBookingsStartingIn(ctx, providerID, bounds.Start, bounds.End)
	if err != nil {
		log.Printf("list_slots_failed step=bookings provider_id=%s date=%s err=%v", providerID, date, err)
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	return enumerate(day, windows, bookings, svc.Duration(), s.now()), nil
}

// enumerate walks every window in steps of d. Windows are not merged, so
// overlapping windows may yield the same instant twice.
func enumerate(day time.Time, windows []domain.Availability, bookings []domain.Booking, d time.Duration, now time.Time) []Slot {
	slots := []Slot{}
	step := timewindow.Clock(d / time.Minute)
	if step <= 0 {
		return slots
	}

	busy := make([]timewindow.Range, 0, len(bookings))
	for _, b := range bookings {
		busy = append(busy, timewindow.Range{Start: b.StartTime, End: b.EndTime})
	}

	for _, w := range windows {
		for cursor := w.StartTime; cursor+step <= w.EndTime; cursor += step {
			candidate := timewindow.NewRange(timewindow.At(day, cursor), d)
			if !candidate.Start.After(now) {
				continue
			}
			if candidate.OverlapsAny(busy) {
				continue
			}
			slots = append(slots, Slot{Start: candidate.Start, End: candidate.End})
		}
	}

	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].Start.Before(slots[j].Start)
	})
	return slots
}

// GetSlots resolves the provider's zone and enumerates slots for a raw
// service id. Bad input gives an empty list.
func (s *Service) GetSlots(ctx context.Context, providerID, serviceID, date string) ([]Slot, error) {
	id, err := uuid.Parse(serviceID)
	if err != nil {
		return []Slot{}, nil
	}
	profile, err := s.store.GetProfile(ctx, providerID)
	if errors.Is(err, repository.ErrNotFound) {
		return []Slot{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return s.ListAvailableSlots(ctx, providerID, id, date, profile.Timezone)
}

// CreateGuestBooking re-validates the requested slot and inserts the booking.
// Rejections are the sentinel errors of this package; anything else is a
// store failure.
func (s *Service) CreateGuestBooking(ctx context.Context, req GuestBookingRequest) (*domain.Booking, error) {
	b := &domain.Booking{
		ServiceID:      req.ServiceID,
		ProviderUserID: req.ProviderID,
		GuestName:      req.GuestName,
		GuestEmail:     req.GuestEmail,
		GuestPhone:     req.GuestPhone,
	}
	if err := b.ValidateContact(); err != nil {
		return nil, ErrInvalidContact
	}

	start, err := time.Parse(time.RFC3339, req.StartAt)
	if err != nil {
		return nil, ErrInvalidSlot
	}
	if !start.After(s.now()) {
		return nil, ErrPastSlot
	}

	profile, err := s.store.GetProfile(ctx, req.ProviderID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProfileNotConfigured
	}
	if err != nil {
		log.Printf("create_booking_failed step=profile provider_id=%s err=%v", req.ProviderID, err)
		return nil, fmt.Errorf("get profile: %w", err)
	}
	loc, err := profile.Location()
	if err != nil {
		return nil, ErrProfileNotConfigured
	}

	svc, err := s.store.GetActiveService(ctx, req.ProviderID, req.ServiceID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		log.Printf("create_booking_failed step=service provider_id=%s service_id=%s err=%v", req.ProviderID, req.ServiceID, err)
		return nil, fmt.Errorf("get service: %w", err)
	}

	date := timewindow.DateOf(start, loc).Format(timewindow.DateLayout)
	err = s.store.WithinProviderLock(ctx, req.ProviderID, func(tx Store) error {
		slots, err := s.listSlots(ctx, tx, req.ProviderID, svc.ID, date, profile.Timezone)
		if err != nil {
			return err
		}

		end := start.Add(svc.Duration())
		taken, err := tx.HasOverlappingBooking(ctx, req.ProviderID, start, end)
		if err != nil {
			return fmt.Errorf("check overlap: %w", err)
		}
		if taken {
			return ErrSlotTaken
		}
		if !containsSlot(slots, req.StartAt) {
			return ErrSlotUnavailable
		}

		b.ServiceID = svc.ID
		b.StartTime = start
		b.EndTime = end
		return tx.CreateBooking(ctx, b)
	})

	switch {
	case err == nil:
		log.Printf("booking_created booking_id=%s provider_id=%s service_id=%s start=%s", b.ID, b.ProviderUserID, b.ServiceID, start.Format(time.RFC3339))
		return b, nil
	case errors.Is(err, ErrSlotUnavailable), errors.Is(err, ErrSlotTaken):
		return nil, err
	case isOverlapViolation(err):
		return nil, ErrSlotTaken
	case errors.Is(err, repository.ErrNotFound):
		return nil, ErrProfileNotConfigured
	default:
		log.Printf("create_booking_failed step=commit provider_id=%s service_id=%s start=%s err=%v", req.ProviderID, req.ServiceID, req.StartAt, err)
		return nil, fmt.Errorf("%w: %v", ErrInsertFailed, err)
	}
}

// containsSlot matches the rendered slot text exactly, so only instants
// written in the provider's offset are accepted.
func containsSlot(slots []Slot, startAt string) bool {
	for _, slot := range slots {
		if slot.String() == startAt {
			return true
		}
	}
	return false
}

func isOverlapViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == exclusionViolation && pgErr.ConstraintName == repository.BookingNoOverlapConstraint
}

// GetPublicReserveData loads what the public reservation page shows: the
// provider card, its services and the slots of the selected service. The
// requested service is selected when it is active, otherwise the first one.
// An empty date means today in the provider's zone.
func (s *Service) GetPublicReserveData(ctx context.Context, providerID, serviceID, date string) (*ReserveData, error) {
	profile, err := s.store.GetProfile(ctx, providerID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProfileNotConfigured
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	services, err := s.store.ListActiveServices(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}

	if date == "" {
		if loc, err := profile.Location(); err == nil {
			date = timewindow.DateOf(s.now(), loc).Format(timewindow.DateLayout)
		}
	}

	data := &ReserveData{
		Provider: ProviderCard{
			UserID:              profile.UserID,
			DisplayName:         profile.DisplayName,
			ImageURL:            profile.ImageURL,
			Timezone:            profile.Timezone,
			SlotDurationMinutes: profile.SlotDurationMinutes,
		},
		Services: services,
		Date:     date,
		Slots:    []Slot{},
	}
	if len(services) == 0 {
		return data, nil
	}

	selected := &services[0]
	if id, err := uuid.Parse(serviceID); err == nil {
		for i := range services {
			if services[i].ID == id {
				selected = &services[i]
				break
			}
		}
	}
	data.SelectedService = selected

	data.Slots, err = s.ListAvailableSlots(ctx, providerID, selected.ID, date, profile.Timezone)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *Service) GetBookingDetail(ctx context.Context, id uuid.UUID) (*domain.BookingDetail, error) {
	d, err := s.store.GetBookingDetail(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return d, nil
}

// ListAgenda returns the provider's active bookings ordered by start, with
// times rendered in the provider's zone.
func (s *Service) ListAgenda(ctx context.Context, providerID string) ([]AgendaItem, error) {
	loc := time.UTC
	profile, err := s.store.GetProfile(ctx, providerID)
	switch {
	case err == nil:
		if l, lerr := profile.Location(); lerr == nil {
			loc = l
		}
	case errors.Is(err, repository.ErrNotFound):
	default:
		return nil, fmt.Errorf("get profile: %w", err)
	}

	rows, err := s.store.ListAgenda(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("list agenda: %w", err)
	}

	out := make([]AgendaItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, AgendaItem{
			ID:          r.ID,
			ServiceID:   r.ServiceID,
			ServiceName: r.Service.Name,
			GuestName:   r.GuestName,
			GuestEmail:  r.GuestEmail,
			GuestPhone:  r.GuestPhone,
			StartTime:   r.StartTime.In(loc).Format(timewindow.SlotLayout),
			EndTime:     r.EndTime.In(loc).Format(timewindow.SlotLayout),
		})
	}
	return out, nil
}
