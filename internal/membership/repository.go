package membership

import (
	"context"
	"errors"

	"github.com/daap14/liga/internal/database"
)

// ErrMembershipNotFound is returned when no link exists for a key.
var ErrMembershipNotFound = errors.New("team-season link not found")

// Repository provides CRUD operations on the equipo_temporada table.
// Creating an existing pair yields database.ErrDuplicate; unknown team or
// season ids yield database.ErrReferenceNotFound.
type Repository interface {
	Create(ctx context.Context, m *Membership) error
	GetByKey(ctx context.Context, key Key) (*Membership, error)
	List(ctx context.Context, page database.Page) ([]Membership, error)
	Update(ctx context.Context, key Key, m *Membership) (*Membership, error)
	Delete(ctx context.Context, key Key) (bool, error)
}
