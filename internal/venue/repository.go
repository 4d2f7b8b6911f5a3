package venue

import (
	"context"
	"errors"

	"github.com/daap14/liga/internal/database"
)

// ErrVenueNotFound is returned when a venue record is not found.
var ErrVenueNotFound = errors.New("venue not found")

// Repository provides CRUD operations on the estadio table.
type Repository interface {
	Create(ctx context.Context, v *Venue) error
	GetByID(ctx context.Context, id int64) (*Venue, error)
	List(ctx context.Context, page database.Page) ([]Venue, error)
	Update(ctx context.Context, id int64, v *Venue) (*Venue, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
