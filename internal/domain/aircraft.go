package domain

import "time"

type Aircraft struct {
	Registration string
	Make         string
	Model        string
	FuelType     *string
	PilotID      *int64
}

// FuelType is a price-per-liter reference row.
type FuelType struct {
	Name          string
	PricePerLiter float64
}

// Fueling is one fuel-dispensing event for an aircraft. Cost is the invoiced
// amount when it was recorded at fueling time; when nil the cost is derived
// from the fuel-price table at computation time.
type Fueling struct {
	ID             int64
	Time           time.Time
	QuantityLiters float64
	Cost           *float64
	AircraftID     string
}

type AccountRole string

const (
	AccountRolePilot   AccountRole = "PILOT"
	AccountRoleAgent   AccountRole = "AGENT"
	AccountRoleManager AccountRole = "MANAGER"
)

// Account is a role-tagged user record; pilot-only attributes are optional.
type Account struct {
	ID        int64
	Role      AccountRole
	LastName  string
	FirstName string
	Phone     string
	Email     string
	Username  string
	License   *string
	Medical   *string
}
