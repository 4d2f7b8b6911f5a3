package venue

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/daap14/liga/internal/database"
)

const venueColumns = `estadio_id, nombre, capacidad, ciudad, pais`

// PostgresRepository implements Repository on top of the persistence gateway.
type PostgresRepository struct {
	db *database.Gateway
}

// NewRepository creates a new Repository backed by the given gateway.
func NewRepository(db *database.Gateway) Repository {
	return &PostgresRepository{db: db}
}

// Create inserts a new venue and fills in its generated ID.
func (r *PostgresRepository) Create(ctx context.Context, v *Venue) error {
	query := `
		INSERT INTO estadio (nombre, capacidad, ciudad, pais)
		VALUES ($1, $2, $3, $4)
		RETURNING estadio_id`

	return r.db.WithTx(ctx, func(q database.Querier) error {
		err := q.QueryRow(ctx, query, v.Name, v.Capacity, v.City, v.Country).Scan(&v.ID)
		if err != nil {
			return database.WriteError(err, "inserting venue")
		}
		return nil
	})
}

// GetByID retrieves a single venue by its ID.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*Venue, error) {
	query := `SELECT ` + venueColumns + ` FROM estadio WHERE estadio_id = $1`

	var v Venue
	err := r.db.WithConn(ctx, func(q database.Querier) error {
		return scanVenue(q.QueryRow(ctx, query, id), &v)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, fmt.Errorf("querying venue: %w", err)
	}

	return &v, nil
}

// List retrieves a page of venues in insertion order.
func (r *PostgresRepository) List(ctx context.Context, page database.Page) ([]Venue, error) {
	query := `SELECT ` + venueColumns + ` FROM estadio ORDER BY estadio_id LIMIT $1 OFFSET $2`

	var venues []Venue
	err := r.db.WithConn(ctx, func(q database.Querier) error {
		rows, err := q.Query(ctx, query, page.Limit, page.Offset)
		if err != nil {
			return fmt.Errorf("listing venues: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var v Venue
			if err := scanVenue(rows, &v); err != nil {
				return fmt.Errorf("scanning venue row: %w", err)
			}
			venues = append(venues, v)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterating venue rows: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if venues == nil {
		venues = []Venue{}
	}

	return venues, nil
}

// Update overwrites every field of the venue with the given ID.
func (r *PostgresRepository) Update(ctx context.Context, id int64, v *Venue) (*Venue, error) {
	query := `
		UPDATE estadio
		SET nombre = $1, capacidad = $2, ciudad = $3, pais = $4
		WHERE estadio_id = $5
		RETURNING ` + venueColumns

	var updated Venue
	err := r.db.WithTx(ctx, func(q database.Querier) error {
		err := scanVenue(q.QueryRow(ctx, query, v.Name, v.Capacity, v.City, v.Country, id), &updated)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrVenueNotFound
			}
			return database.WriteError(err, "updating venue")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// Delete removes a venue by its ID. It reports false when no such venue
// exists and ErrReferenced when teams still play there.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query := `DELETE FROM estadio WHERE estadio_id = $1`

	var deleted bool
	err := r.db.WithTx(ctx, func(q database.Querier) error {
		result, err := q.Exec(ctx, query, id)
		if err != nil {
			return database.DeleteError(err, "deleting venue")
		}
		deleted = result.RowsAffected() > 0
		return nil
	})
	if err != nil {
		return false, err
	}

	return deleted, nil
}

func scanVenue(row pgx.Row, v *Venue) error {
	return row.Scan(&v.ID, &v.Name, &v.Capacity, &v.City, &v.Country)
}
