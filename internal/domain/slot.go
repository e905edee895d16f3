package domain

import "time"

type SlotState string

const (
	SlotStateRequested  SlotState = "REQUESTED"
	SlotStateConfirmed  SlotState = "CONFIRMED"
	SlotStateAuthorized SlotState = "AUTHORIZED"
	SlotStateCompleted  SlotState = "COMPLETED"
	SlotStateCancelled  SlotState = "CANCELLED"
)

// slotTransitions lists the states reachable from each state. Cancellation is
// allowed from every non-terminal state; Completed and Cancelled are terminal.
var slotTransitions = map[SlotState][]SlotState{
	SlotStateRequested:  {SlotStateConfirmed, SlotStateCancelled},
	SlotStateConfirmed:  {SlotStateAuthorized, SlotStateCancelled},
	SlotStateAuthorized: {SlotStateCompleted, SlotStateCancelled},
	SlotStateCompleted:  {},
	SlotStateCancelled:  {},
}

func (s SlotState) Terminal() bool {
	return s == SlotStateCompleted || s == SlotStateCancelled
}

// CanTransitionTo reports whether the transition s -> next is allowed.
// A same-state transition is a no-op and always allowed.
func (s SlotState) CanTransitionTo(next SlotState) bool {
	if s == next {
		return true
	}
	for _, allowed := range slotTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Slot is a reserved occupancy window on one infrastructure for one pilot's
// aircraft movement. It references infrastructure and fueling records by id
// but does not own them.
type Slot struct {
	ID               int64
	Reference        string
	PilotID          int64
	InfrastructureID int64
	AircraftID       *string
	FuelingID        *int64
	PlannedStart     time.Time
	PlannedEnd       time.Time
	ActualStart      *time.Time
	ActualEnd        *time.Time
	State            SlotState
	TotalCost        *float64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Window returns the occupancy window: the actual one when both bounds are
// recorded, the planned one otherwise.
func (s *Slot) Window() (time.Time, time.Time) {
	if s.ActualStart != nil && s.ActualEnd != nil {
		return *s.ActualStart, *s.ActualEnd
	}
	return s.PlannedStart, s.PlannedEnd
}
