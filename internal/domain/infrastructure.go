package domain

import "time"

// Infrastructure is a bookable ground asset (runway, hangar, parking stand,
// fuel station) with degressive rental pricing.
type Infrastructure struct {
	ID          int64
	Name        string
	Type        string
	MaxCapacity int
	PriceDay    float64
	PriceWeek   float64
	PriceMonth  float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Exclusive reports whether the asset admits a single occupant at a time, in
// which case the safety margin applies between consecutive slots.
func (i *Infrastructure) Exclusive() bool {
	return i.MaxCapacity <= 1
}
