package infras

import (
	"context"
	"fmt"
	"testing"

	"github.com/Domenick1991/aerodrome/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockInfrastructureRepository struct {
	mock.Mock
}

func (m *MockInfrastructureRepository) List(ctx context.Context) ([]domain.Infrastructure, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Infrastructure), args.Error(1)
}

func (m *MockInfrastructureRepository) GetByID(ctx context.Context, id int64) (*domain.Infrastructure, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Infrastructure), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetInfrastructures(ctx context.Context) ([]domain.Infrastructure, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Infrastructure), args.Error(1)
}

func (m *MockCache) SetInfrastructures(ctx context.Context, infras []domain.Infrastructure) error {
	args := m.Called(ctx, infras)
	return args.Error(0)
}

func TestInfraService_List_CacheHit(t *testing.T) {
	mockRepo := &MockInfrastructureRepository{}
	mockCache := &MockCache{}
	service := NewInfraService(mockRepo, mockCache)

	ctx := context.Background()
	cached := []domain.Infrastructure{{ID: 1, Name: "Runway 09"}}

	mockCache.On("GetInfrastructures", ctx).Return(cached, nil).Once()

	list, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, cached, list)
	mockRepo.AssertNotCalled(t, "List")
	mockCache.AssertExpectations(t)
}

func TestInfraService_List_CacheMissFallsBackToRepo(t *testing.T) {
	mockRepo := &MockInfrastructureRepository{}
	mockCache := &MockCache{}
	service := NewInfraService(mockRepo, mockCache)

	ctx := context.Background()
	infras := []domain.Infrastructure{{ID: 1, Name: "Runway 09"}, {ID: 2, Name: "Hangar A"}}

	mockCache.On("GetInfrastructures", ctx).Return(nil, nil).Once()
	mockRepo.On("List", ctx).Return(infras, nil).Once()
	mockCache.On("SetInfrastructures", ctx, infras).Return(nil).Once()

	list, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, infras, list)
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestInfraService_List_NoCache(t *testing.T) {
	mockRepo := &MockInfrastructureRepository{}
	service := NewInfraService(mockRepo, nil)

	ctx := context.Background()
	infras := []domain.Infrastructure{{ID: 1, Name: "Runway 09"}}

	mockRepo.On("List", ctx).Return(infras, nil).Once()

	list, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, infras, list)
}

func TestInfraService_GetByID_NotFound(t *testing.T) {
	mockRepo := &MockInfrastructureRepository{}
	service := NewInfraService(mockRepo, nil)

	ctx := context.Background()
	wantErr := fmt.Errorf("infrastructure 99: %w", domain.ErrNotFound)

	mockRepo.On("GetByID", ctx, int64(99)).Return(nil, wantErr).Once()

	infra, err := service.GetByID(ctx, 99)

	assert.Error(t, err)
	assert.Nil(t, infra)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
