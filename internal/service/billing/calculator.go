package billing

import (
	"math"
	"time"

	"github.com/Domenick1991/aerodrome/internal/domain"
)

// DurationDays converts an occupancy window to billable whole days: the
// elapsed time rounded up to full 24h periods, never less than one day.
func DurationDays(start, end time.Time) int {
	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}

// InfrastructureCost applies the degressive tariff, largest tier first. The
// multiplier is proportional (days/30, days/7 as real division), so partial
// months and weeks are charged against the tier's aggregate rate rather than
// rounded up to a whole tier.
func InfrastructureCost(infra *domain.Infrastructure, days int) float64 {
	d := float64(days)
	switch {
	case days >= 30:
		return d / 30 * infra.PriceMonth
	case days >= 7:
		return d / 7 * infra.PriceWeek
	default:
		return d * infra.PriceDay
	}
}

// RoundCurrency rounds to 2 decimals. Applied once, on final totals only.
func RoundCurrency(v float64) float64 {
	return math.Round(v*100) / 100
}
