package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/aerodrome/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type InfrastructureRepository interface {
	List(ctx context.Context) ([]domain.Infrastructure, error)
	GetByID(ctx context.Context, id int64) (*domain.Infrastructure, error)
}

type PGInfrastructureRepository struct {
	db *pgxpool.Pool
}

func NewInfrastructureRepository(db *pgxpool.Pool) InfrastructureRepository {
	return &PGInfrastructureRepository{db: db}
}

const infraColumns = `id, name, type, max_capacity, price_day, price_week, price_month, created_at, updated_at`

func (r *PGInfrastructureRepository) List(ctx context.Context) ([]domain.Infrastructure, error) {
	rows, err := r.db.Query(ctx, `SELECT `+infraColumns+` FROM infrastructures ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	infras := make([]domain.Infrastructure, 0)
	for rows.Next() {
		var i domain.Infrastructure
		if err := rows.Scan(&i.ID, &i.Name, &i.Type, &i.MaxCapacity, &i.PriceDay, &i.PriceWeek, &i.PriceMonth, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, err
		}
		infras = append(infras, i)
	}
	return infras, rows.Err()
}

func (r *PGInfrastructureRepository) GetByID(ctx context.Context, id int64) (*domain.Infrastructure, error) {
	row := r.db.QueryRow(ctx, `SELECT `+infraColumns+` FROM infrastructures WHERE id=$1`, id)
	var i domain.Infrastructure
	if err := row.Scan(&i.ID, &i.Name, &i.Type, &i.MaxCapacity, &i.PriceDay, &i.PriceWeek, &i.PriceMonth, &i.CreatedAt, &i.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("infrastructure %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return &i, nil
}

var _ InfrastructureRepository = (*PGInfrastructureRepository)(nil)
