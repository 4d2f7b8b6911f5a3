package season

import (
	"context"
	"errors"

	"github.com/daap14/liga/internal/database"
)

// ErrSeasonNotFound is returned when a season record is not found.
var ErrSeasonNotFound = errors.New("season not found")

// Repository provides CRUD operations on the temporada table.
type Repository interface {
	Create(ctx context.Context, s *Season) error
	GetByID(ctx context.Context, id int64) (*Season, error)
	List(ctx context.Context, page database.Page) ([]Season, error)
	Update(ctx context.Context, id int64, s *Season) (*Season, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
