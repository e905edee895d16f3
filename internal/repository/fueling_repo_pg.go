package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/aerodrome/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FuelingRepository interface {
	CreateFueling(ctx context.Context, fueling *domain.Fueling) error
	GetFueling(ctx context.Context, id int64) (*domain.Fueling, error)
	GetAircraft(ctx context.Context, registration string) (*domain.Aircraft, error)
	GetFuelPrice(ctx context.Context, fuelType string) (float64, error)
}

type PGFuelingRepository struct {
	db *pgxpool.Pool
}

func NewFuelingRepository(db *pgxpool.Pool) FuelingRepository {
	return &PGFuelingRepository{db: db}
}

func (r *PGFuelingRepository) CreateFueling(ctx context.Context, fueling *domain.Fueling) error {
	return r.db.QueryRow(ctx, `INSERT INTO fuelings (time, quantity_liters, cost, aircraft_id)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		fueling.Time, fueling.QuantityLiters, fueling.Cost, fueling.AircraftID).
		Scan(&fueling.ID)
}

func (r *PGFuelingRepository) GetFueling(ctx context.Context, id int64) (*domain.Fueling, error) {
	row := r.db.QueryRow(ctx, `SELECT id, time, quantity_liters, cost, aircraft_id FROM fuelings WHERE id=$1`, id)
	var f domain.Fueling
	if err := row.Scan(&f.ID, &f.Time, &f.QuantityLiters, &f.Cost, &f.AircraftID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("fueling %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return &f, nil
}

func (r *PGFuelingRepository) GetAircraft(ctx context.Context, registration string) (*domain.Aircraft, error) {
	row := r.db.QueryRow(ctx, `SELECT registration, make, model, fuel_type, pilot_id FROM aircraft WHERE registration=$1`, registration)
	var a domain.Aircraft
	if err := row.Scan(&a.Registration, &a.Make, &a.Model, &a.FuelType, &a.PilotID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("aircraft %s: %w", registration, domain.ErrNotFound)
		}
		return nil, err
	}
	return &a, nil
}

func (r *PGFuelingRepository) GetFuelPrice(ctx context.Context, fuelType string) (float64, error) {
	var price float64
	if err := r.db.QueryRow(ctx, `SELECT price_per_liter FROM fuel_types WHERE name=$1`, fuelType).Scan(&price); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("fuel type %s: %w", fuelType, domain.ErrNotFound)
		}
		return 0, err
	}
	return price, nil
}

var _ FuelingRepository = (*PGFuelingRepository)(nil)
