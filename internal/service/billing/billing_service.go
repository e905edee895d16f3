package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/aerodrome/internal/domain"
	"github.com/Domenick1991/aerodrome/internal/repository"
)

type BillingUseCase interface {
	SlotCost(ctx context.Context, infrastructureID int64, fuelingID *int64, start, end time.Time) (float64, error)
	RecordFueling(ctx context.Context, input RecordFuelingInput) (*domain.Fueling, error)
	GetFueling(ctx context.Context, id int64) (*domain.Fueling, error)
}

type Service struct {
	infras   repository.InfrastructureRepository
	fuelings repository.FuelingRepository
}

type RecordFuelingInput struct {
	Time           time.Time `json:"time"`
	QuantityLiters float64   `json:"quantity_liters"`
	Cost           *float64  `json:"cost"`
	AircraftID     string    `json:"aircraft_id"`
}

func NewService(infras repository.InfrastructureRepository, fuelings repository.FuelingRepository) *Service {
	return &Service{infras: infras, fuelings: fuelings}
}

// SlotCost computes the total for one slot: infrastructure rental for the
// occupancy window plus the fueling charge when a record is attached. The
// result is rounded to currency precision; intermediate values are not.
func (s *Service) SlotCost(ctx context.Context, infrastructureID int64, fuelingID *int64, start, end time.Time) (float64, error) {
	if !end.After(start) {
		return 0, domain.NewRuleError(domain.RuleInvalidWindow, "end time must be after start time")
	}

	infra, err := s.infras.GetByID(ctx, infrastructureID)
	if err != nil {
		return 0, err
	}

	total := InfrastructureCost(infra, DurationDays(start, end))

	if fuelingID != nil {
		fueling, err := s.fuelings.GetFueling(ctx, *fuelingID)
		if err != nil {
			return 0, err
		}
		fuelCost, err := s.fuelingCost(ctx, fueling)
		if err != nil {
			return 0, err
		}
		total += fuelCost
	}

	return RoundCurrency(total), nil
}

// fuelingCost prefers the cost recorded at fueling time; it recomputes from
// the fuel-price table only when no cost was stored.
func (s *Service) fuelingCost(ctx context.Context, fueling *domain.Fueling) (float64, error) {
	if fueling.Cost != nil {
		return *fueling.Cost, nil
	}
	if fueling.QuantityLiters < 0 {
		return 0, domain.NewRuleError(domain.RuleInvalidQuantity, "fueling quantity must not be negative")
	}

	aircraft, err := s.fuelings.GetAircraft(ctx, fueling.AircraftID)
	if err != nil {
		return 0, err
	}
	if aircraft.FuelType == nil {
		return 0, fmt.Errorf("aircraft %s has no fuel type: %w", aircraft.Registration, domain.ErrNotFound)
	}

	price, err := s.fuelings.GetFuelPrice(ctx, *aircraft.FuelType)
	if err != nil {
		return 0, err
	}
	return fueling.QuantityLiters * price, nil
}

func (s *Service) RecordFueling(ctx context.Context, input RecordFuelingInput) (*domain.Fueling, error) {
	if input.QuantityLiters <= 0 {
		return nil, domain.NewRuleError(domain.RuleInvalidQuantity, "fueling quantity must be positive")
	}
	if input.Cost != nil && *input.Cost < 0 {
		return nil, domain.NewRuleError(domain.RuleInvalidQuantity, "fueling cost must not be negative")
	}
	if input.AircraftID == "" {
		return nil, domain.NewRuleError(domain.RuleInvalidQuantity, "aircraft registration is required")
	}

	when := input.Time
	if when.IsZero() {
		when = time.Now()
	}

	fueling := &domain.Fueling{
		Time:           when,
		QuantityLiters: input.QuantityLiters,
		Cost:           input.Cost,
		AircraftID:     input.AircraftID,
	}

	// Fix the cost at recording time so later price changes do not alter it.
	// Stored unrounded: only the final slot total is rounded to currency.
	if fueling.Cost == nil {
		cost, err := s.fuelingCost(ctx, fueling)
		if err != nil {
			return nil, err
		}
		fueling.Cost = &cost
	}

	if err := s.fuelings.CreateFueling(ctx, fueling); err != nil {
		return nil, err
	}
	return fueling, nil
}

func (s *Service) GetFueling(ctx context.Context, id int64) (*domain.Fueling, error) {
	return s.fuelings.GetFueling(ctx, id)
}

var _ BillingUseCase = (*Service)(nil)
