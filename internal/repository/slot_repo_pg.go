package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/aerodrome/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SlotRepository interface {
	Create(ctx context.Context, slot *domain.Slot) error
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	List(ctx context.Context) ([]domain.Slot, error)
	ListByPilot(ctx context.Context, pilotID int64) ([]domain.Slot, error)
	ListBlocking(ctx context.Context, infrastructureID int64, windowStart, windowEnd time.Time) ([]domain.Slot, error)
	UpdateState(ctx context.Context, id int64, state domain.SlotState, actualStart, actualEnd *time.Time, totalCost *float64) (*domain.Slot, error)
	AttachFueling(ctx context.Context, id, fuelingID int64, totalCost float64) (*domain.Slot, error)
	CancelStaleRequests(ctx context.Context, deadline time.Time) ([]domain.Slot, error)
}

const slotColumns = `id, reference, pilot_id, infrastructure_id, aircraft_id, fueling_id, planned_start, planned_end, actual_start, actual_end, state, total_cost, created_at, updated_at`

type PGSlotRepository struct {
	db *pgxpool.Pool
}

func NewSlotRepository(db *pgxpool.Pool) SlotRepository {
	return &PGSlotRepository{db: db}
}

func (r *PGSlotRepository) Create(ctx context.Context, slot *domain.Slot) error {
	if err := r.db.QueryRow(ctx, `INSERT INTO slots (reference, pilot_id, infrastructure_id, aircraft_id, fueling_id, planned_start, planned_end, state, total_cost)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`,
		slot.Reference, slot.PilotID, slot.InfrastructureID, slot.AircraftID, slot.FuelingID,
		slot.PlannedStart, slot.PlannedEnd, slot.State, slot.TotalCost).
		Scan(&slot.ID, &slot.CreatedAt, &slot.UpdatedAt); err != nil {
		return err
	}
	return nil
}

func (r *PGSlotRepository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	row := r.db.QueryRow(ctx, `SELECT `+slotColumns+` FROM slots WHERE id=$1`, id)
	s, err := scanSlot(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("slot %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return s, nil
}

func (r *PGSlotRepository) List(ctx context.Context) ([]domain.Slot, error) {
	rows, err := r.db.Query(ctx, `SELECT `+slotColumns+` FROM slots ORDER BY planned_start`)
	if err != nil {
		return nil, err
	}
	return collectSlots(rows)
}

func (r *PGSlotRepository) ListByPilot(ctx context.Context, pilotID int64) ([]domain.Slot, error) {
	rows, err := r.db.Query(ctx, `SELECT `+slotColumns+` FROM slots WHERE pilot_id=$1 ORDER BY planned_start`, pilotID)
	if err != nil {
		return nil, err
	}
	return collectSlots(rows)
}

// ListBlocking returns every non-cancelled slot on the infrastructure whose
// occupancy window intersects [windowStart, windowEnd). Completed slots stay
// in the result on purpose: a past movement still blocks a new request whose
// margin-expanded window reaches it (policy pending product confirmation).
// The recorded window counts only when both actuals are set, same as
// domain.Slot.Window; a half-recorded slot is judged on its planned window.
func (r *PGSlotRepository) ListBlocking(ctx context.Context, infrastructureID int64, windowStart, windowEnd time.Time) ([]domain.Slot, error) {
	rows, err := r.db.Query(ctx, `SELECT `+slotColumns+` FROM slots
		WHERE infrastructure_id=$1 AND state <> $2
		AND (CASE WHEN actual_start IS NOT NULL AND actual_end IS NOT NULL
			THEN actual_start ELSE planned_start END) < $4
		AND (CASE WHEN actual_start IS NOT NULL AND actual_end IS NOT NULL
			THEN actual_end ELSE planned_end END) > $3
		ORDER BY planned_start`,
		infrastructureID, domain.SlotStateCancelled, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}
	return collectSlots(rows)
}

func (r *PGSlotRepository) UpdateState(ctx context.Context, id int64, state domain.SlotState, actualStart, actualEnd *time.Time, totalCost *float64) (*domain.Slot, error) {
	row := r.db.QueryRow(ctx, `UPDATE slots SET state=$1,
		actual_start=COALESCE($2, actual_start),
		actual_end=COALESCE($3, actual_end),
		total_cost=COALESCE($4, total_cost),
		updated_at=now()
		WHERE id=$5 RETURNING `+slotColumns,
		state, actualStart, actualEnd, totalCost, id)
	s, err := scanSlot(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("slot %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return s, nil
}

func (r *PGSlotRepository) AttachFueling(ctx context.Context, id, fuelingID int64, totalCost float64) (*domain.Slot, error) {
	row := r.db.QueryRow(ctx, `UPDATE slots SET fueling_id=$1, total_cost=$2, updated_at=now()
		WHERE id=$3 RETURNING `+slotColumns, fuelingID, totalCost, id)
	s, err := scanSlot(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("slot %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return s, nil
}

func (r *PGSlotRepository) CancelStaleRequests(ctx context.Context, deadline time.Time) ([]domain.Slot, error) {
	rows, err := r.db.Query(ctx, `UPDATE slots SET state=$1, updated_at=now()
		WHERE state=$2 AND planned_start <= $3 RETURNING `+slotColumns,
		domain.SlotStateCancelled, domain.SlotStateRequested, deadline)
	if err != nil {
		return nil, err
	}
	return collectSlots(rows)
}

func scanSlot(row pgx.Row) (*domain.Slot, error) {
	var s domain.Slot
	// infrastructure_id is nulled when the referenced asset is deleted.
	var infraID *int64
	if err := row.Scan(&s.ID, &s.Reference, &s.PilotID, &infraID, &s.AircraftID, &s.FuelingID,
		&s.PlannedStart, &s.PlannedEnd, &s.ActualStart, &s.ActualEnd, &s.State, &s.TotalCost,
		&s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	if infraID != nil {
		s.InfrastructureID = *infraID
	}
	return &s, nil
}

func collectSlots(rows pgx.Rows) ([]domain.Slot, error) {
	defer rows.Close()

	slots := make([]domain.Slot, 0)
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, *s)
	}
	return slots, rows.Err()
}

var _ SlotRepository = (*PGSlotRepository)(nil)
