package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"agenda/internal/domain"
	"agenda/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockServiceRepository struct {
	mock.Mock
}

func (m *MockServiceRepository) GetActive(ctx context.Context, userID string, id uuid.UUID) (*domain.Service, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}

func (m *MockServiceRepository) ListActive(ctx context.Context, userID string, limit, offset int) ([]domain.Service, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Service), args.Error(1)
}

func (m *MockServiceRepository) Create(ctx context.Context, s *domain.Service) error {
	args := m.Called(ctx, s)
	if args.Error(0) == nil {
		s.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockServiceRepository) UpdateDuration(ctx context.Context, userID string, id uuid.UUID, durationMinutes int) error {
	return m.Called(ctx, userID, id, durationMinutes).Error(0)
}

func (m *MockServiceRepository) SoftDelete(ctx context.Context, userID string, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func TestService_List_Pagination(t *testing.T) {
	cases := []struct {
		name           string
		page, pageSize int
		limit, offset  int
	}{
		{"defaults", 0, 0, DefaultPageSize, 0},
		{"second page", 2, 10, 10, 10},
		{"capped", 3, 1000, MaxPageSize, 2 * MaxPageSize},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(MockServiceRepository)
			repo.On("ListActive", mock.Anything, "prov", tc.limit, tc.offset).Return([]domain.Service{}, nil)

			_, err := NewService(repo).List(context.Background(), "prov", tc.page, tc.pageSize)

			require.NoError(t, err)
			repo.AssertExpectations(t)
		})
	}
}

func TestService_Create(t *testing.T) {
	repo := new(MockServiceRepository)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Service")).Return(nil)

	svc, err := NewService(repo).Create(context.Background(), "prov", CreateServiceRequest{
		Name:            "  Corte de cabello ",
		DurationMinutes: 45,
	})

	require.NoError(t, err)
	assert.Equal(t, "Corte de cabello", svc.Name)
	assert.Equal(t, "prov", svc.UserID)
	assert.NotEqual(t, uuid.Nil, svc.ID)
}

func TestService_CreateRejectsInvalid(t *testing.T) {
	repo := new(MockServiceRepository)
	s := NewService(repo)

	for _, req := range []CreateServiceRequest{
		{Name: "   ", DurationMinutes: 30},
		{Name: strings.Repeat("x", 256), DurationMinutes: 30},
		{Name: "ok", Description: strings.Repeat("d", 5001), DurationMinutes: 30},
		{Name: "ok", DurationMinutes: 0},
		{Name: "ok", DurationMinutes: 1441},
	} {
		_, err := s.Create(context.Background(), "prov", req)
		assert.ErrorIs(t, err, ErrInvalidService)
	}
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_CreateReportsFieldErrors(t *testing.T) {
	repo := new(MockServiceRepository)

	_, err := NewService(repo).Create(context.Background(), "prov", CreateServiceRequest{
		Name:            "  ",
		Description:     strings.Repeat("d", 5001),
		DurationMinutes: 0,
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{
		"name":             "required",
		"description":      "max",
		"duration_minutes": "min",
	}, verr.Fields)
}

func TestService_UpdateDurationRejectsOutOfRange(t *testing.T) {
	repo := new(MockServiceRepository)
	s := NewService(repo)

	for _, d := range []int{0, -5, 1441} {
		_, err := s.UpdateDuration(context.Background(), "prov", uuid.New(), d)
		assert.ErrorIs(t, err, ErrInvalidService, d)
	}
	repo.AssertNotCalled(t, "UpdateDuration", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_UpdateDuration(t *testing.T) {
	id := uuid.New()
	repo := new(MockServiceRepository)
	repo.On("UpdateDuration", mock.Anything, "prov", id, 60).Return(nil)
	repo.On("GetActive", mock.Anything, "prov", id).Return(&domain.Service{ID: id, DurationMinutes: 60}, nil)

	svc, err := NewService(repo).UpdateDuration(context.Background(), "prov", id, 60)

	require.NoError(t, err)
	assert.Equal(t, 60, svc.DurationMinutes)
}

func TestService_UpdateDurationNotFound(t *testing.T) {
	id := uuid.New()
	repo := new(MockServiceRepository)
	repo.On("UpdateDuration", mock.Anything, "prov", id, 60).Return(repository.ErrNotFound)

	_, err := NewService(repo).UpdateDuration(context.Background(), "prov", id, 60)

	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestService_Delete(t *testing.T) {
	id := uuid.New()
	repo := new(MockServiceRepository)
	repo.On("SoftDelete", mock.Anything, "prov", id).Return(repository.ErrNotFound).Once()
	repo.On("SoftDelete", mock.Anything, "prov", id).Return(errors.New("db down")).Once()

	s := NewService(repo)
	assert.ErrorIs(t, s.Delete(context.Background(), "prov", id), ErrServiceNotFound)
	err := s.Delete(context.Background(), "prov", id)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrServiceNotFound)
}
