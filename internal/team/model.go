package team

import (
	"time"

	"github.com/shopspring/decimal"
)

// Team represents a row in the equipo table.
type Team struct {
	ID      int64
	Name    string
	VenueID int64
	// FoundedOn is a calendar date at UTC midnight.
	FoundedOn time.Time
	Budget    decimal.Decimal
}
