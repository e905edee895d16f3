package billing

import (
	"testing"
	"time"

	"github.com/Domenick1991/aerodrome/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDurationDays(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	testCases := []struct {
		name string
		end  time.Time
		want int
	}{
		{name: "same day counts as one", end: base.Add(2 * time.Hour), want: 1},
		{name: "exactly one day", end: base.Add(24 * time.Hour), want: 1},
		{name: "a day and an hour rounds up", end: base.Add(25 * time.Hour), want: 2},
		{name: "ten days", end: base.Add(240 * time.Hour), want: 10},
		{name: "thirty five days", end: base.Add(35 * 24 * time.Hour), want: 35},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DurationDays(base, tc.end))
		})
	}
}

func TestInfrastructureCost_Tiers(t *testing.T) {
	infra := &domain.Infrastructure{PriceDay: 100, PriceWeek: 500, PriceMonth: 1500}

	testCases := []struct {
		name string
		days int
		want float64
	}{
		{name: "daily tier", days: 3, want: 300},
		{name: "weekly tier boundary", days: 7, want: 500},
		{name: "weekly tier proportional", days: 10, want: 10.0 / 7 * 500},
		{name: "monthly tier boundary", days: 30, want: 1500},
		{name: "monthly tier proportional", days: 35, want: 1750},
		{name: "single day", days: 1, want: 100},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, InfrastructureCost(infra, tc.days), 1e-9)
		})
	}
}

func TestRoundCurrency(t *testing.T) {
	assert.Equal(t, 714.29, RoundCurrency(10.0/7*500))
	assert.Equal(t, 1750.00, RoundCurrency(35.0/30*1500))
	assert.Equal(t, 300.00, RoundCurrency(300))
	assert.Equal(t, 0.1, RoundCurrency(0.1049))
}
