package infras

import (
	"context"

	"github.com/Domenick1991/aerodrome/internal/domain"
	"github.com/Domenick1991/aerodrome/internal/repository"
)

type InfraUseCase interface {
	List(ctx context.Context) ([]domain.Infrastructure, error)
	GetByID(ctx context.Context, id int64) (*domain.Infrastructure, error)
}

type Cache interface {
	GetInfrastructures(ctx context.Context) ([]domain.Infrastructure, error)
	SetInfrastructures(ctx context.Context, infras []domain.Infrastructure) error
}

type InfraService struct {
	repo  repository.InfrastructureRepository
	cache Cache
}

func NewInfraService(repo repository.InfrastructureRepository, cache Cache) *InfraService {
	return &InfraService{repo: repo, cache: cache}
}

func (s *InfraService) List(ctx context.Context) ([]domain.Infrastructure, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetInfrastructures(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	infras, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetInfrastructures(ctx, infras)
	}
	return infras, nil
}

func (s *InfraService) GetByID(ctx context.Context, id int64) (*domain.Infrastructure, error) {
	return s.repo.GetByID(ctx, id)
}

var _ InfraUseCase = (*InfraService)(nil)
