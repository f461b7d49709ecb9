package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"agenda/internal/domain"
	"agenda/internal/pkg/validator"
	"agenda/internal/repository"

	"github.com/google/uuid"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

var (
	ErrServiceNotFound = errors.New("service not found")
	ErrInvalidService  = errors.New("invalid service")
)

// ValidationError lists the rejected fields by json name. It matches
// ErrInvalidService under errors.Is.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "invalid service: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidService }

// ServiceRepository is the subset of repository.ServiceRepository the
// catalogue needs.
type ServiceRepository interface {
	GetActive(ctx context.Context, userID string, id uuid.UUID) (*domain.Service, error)
	ListActive(ctx context.Context, userID string, limit, offset int) ([]domain.Service, error)
	Create(ctx context.Context, s *domain.Service) error
	UpdateDuration(ctx context.Context, userID string, id uuid.UUID, durationMinutes int) error
	SoftDelete(ctx context.Context, userID string, id uuid.UUID) error
}

type Service struct {
	services ServiceRepository
}

func NewService(services ServiceRepository) *Service {
	return &Service{services: services}
}

/* ---------- SERVICES ---------- */

// List pages through the provider's active services, oldest first.
func (s *Service) List(ctx context.Context, providerID string, page, pageSize int) ([]domain.Service, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	if page < 1 {
		page = 1
	}
	return s.services.ListActive(ctx, providerID, pageSize, (page-1)*pageSize)
}

func (s *Service) Create(ctx context.Context, providerID string, req CreateServiceRequest) (*domain.Service, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	if err := validate(req); err != nil {
		return nil, err
	}

	svc := &domain.Service{
		UserID:          providerID,
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
	}
	if err := s.services.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}
	return svc, nil
}

// UpdateDuration changes the duration of an active service. Existing
// bookings keep the end time they were created with.
func (s *Service) UpdateDuration(ctx context.Context, providerID string, serviceID uuid.UUID, durationMinutes int) (*domain.Service, error) {
	if err := validate(UpdateDurationRequest{DurationMinutes: durationMinutes}); err != nil {
		return nil, err
	}
	if err := s.services.UpdateDuration(ctx, providerID, serviceID, durationMinutes); err != nil {
		return nil, notFound(err)
	}
	svc, err := s.services.GetActive(ctx, providerID, serviceID)
	if err != nil {
		return nil, notFound(err)
	}
	return svc, nil
}

// Delete soft-deletes the service. Its bookings stay on the agenda.
func (s *Service) Delete(ctx context.Context, providerID string, serviceID uuid.UUID) error {
	return notFound(s.services.SoftDelete(ctx, providerID, serviceID))
}

func validate(v interface{}) error {
	if fields := validator.Validate(v); fields != nil {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrServiceNotFound
	}
	return err
}
