package slots

import (
	"time"

	"github.com/Domenick1991/aerodrome/internal/domain"
)

// SafetyMargin is the mandatory separation between movements on the same
// exclusive infrastructure.
const SafetyMargin = 90 * time.Minute

// ValidateWindow rejects degenerate candidate intervals before any conflict
// checking happens.
func ValidateWindow(start, end time.Time) error {
	if !end.After(start) {
		return domain.NewRuleError(domain.RuleInvalidWindow, "end time must be after start time")
	}
	return nil
}

// CheckAdmissible decides whether the candidate window [start, end) may be
// booked on infra given every existing slot on it. Pure: no lookups, no
// mutation; callers pass the blocking set and persist only on nil.
//
// Exclusive infrastructure (single occupant): the candidate must keep at
// least the margin from every existing slot. The comparisons are strict, so
// two slots exactly one margin apart are admissible.
//
// Shared infrastructure (MaxCapacity > 1): concurrent occupancy is allowed;
// the peak number of simultaneous slots inside the candidate window must not
// exceed MaxCapacity.
func CheckAdmissible(infra *domain.Infrastructure, start, end time.Time, existing []domain.Slot, margin time.Duration) error {
	if infra.Exclusive() {
		for i := range existing {
			ex := &existing[i]
			if ex.State == domain.SlotStateCancelled {
				continue
			}
			exStart, exEnd := ex.Window()
			if start.Before(exEnd.Add(margin)) && end.After(exStart.Add(-margin)) {
				return domain.NewRuleError(domain.RuleMarginConflict,
					"time slot conflicts with an existing one (including %d-minute safety interval)", int(margin.Minutes()))
			}
		}
		return nil
	}

	if peak := peakOccupancy(start, end, existing); peak+1 > infra.MaxCapacity {
		return domain.NewRuleError(domain.RuleCapacityExceeded,
			"infrastructure %s is fully occupied during the requested window (capacity %d)", infra.Name, infra.MaxCapacity)
	}
	return nil
}

// peakOccupancy returns the maximum number of existing slots simultaneously
// active at any instant within [start, end). Occupancy only changes at the
// candidate start or at an existing slot's start, so checking those instants
// is enough.
func peakOccupancy(start, end time.Time, existing []domain.Slot) int {
	instants := []time.Time{start}
	for i := range existing {
		if existing[i].State == domain.SlotStateCancelled {
			continue
		}
		s, _ := existing[i].Window()
		if !s.Before(start) && s.Before(end) {
			instants = append(instants, s)
		}
	}

	peak := 0
	for _, t := range instants {
		n := 0
		for i := range existing {
			if existing[i].State == domain.SlotStateCancelled {
				continue
			}
			s, e := existing[i].Window()
			if !t.Before(s) && t.Before(e) {
				n++
			}
		}
		if n > peak {
			peak = n
		}
	}
	return peak
}
