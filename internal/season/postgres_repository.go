package season

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/daap14/liga/internal/database"
)

// Year columns carry a non-ASCII letter and are always quoted.
const seasonColumns = `temporada_id, "año_inicio", "año_fin", nombre_temporada`

// PostgresRepository implements Repository on top of the persistence gateway.
type PostgresRepository struct {
	db *database.Gateway
}

// NewRepository creates a new Repository backed by the given gateway.
func NewRepository(db *database.Gateway) Repository {
	return &PostgresRepository{db: db}
}

// Create inserts a new season and fills in its generated ID.
func (r *PostgresRepository) Create(ctx context.Context, s *Season) error {
	query := `
		INSERT INTO temporada ("año_inicio", "año_fin", nombre_temporada)
		VALUES ($1, $2, $3)
		RETURNING temporada_id`

	return r.db.WithTx(ctx, func(q database.Querier) error {
		err := q.QueryRow(ctx, query, s.StartYear, s.EndYear, s.Name).Scan(&s.ID)
		if err != nil {
			return database.WriteError(err, "inserting season")
		}
		return nil
	})
}

// GetByID retrieves a single season by its ID.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*Season, error) {
	query := `SELECT ` + seasonColumns + ` FROM temporada WHERE temporada_id = $1`

	var s Season
	err := r.db.WithConn(ctx, func(q database.Querier) error {
		return scanSeason(q.QueryRow(ctx, query, id), &s)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSeasonNotFound
		}
		return nil, fmt.Errorf("querying season: %w", err)
	}

	return &s, nil
}

// List retrieves a page of seasons in insertion order.
func (r *PostgresRepository) List(ctx context.Context, page database.Page) ([]Season, error) {
	query := `SELECT ` + seasonColumns + ` FROM temporada ORDER BY temporada_id LIMIT $1 OFFSET $2`

	var seasons []Season
	err := r.db.WithConn(ctx, func(q database.Querier) error {
		rows, err := q.Query(ctx, query, page.Limit, page.Offset)
		if err != nil {
			return fmt.Errorf("listing seasons: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var s Season
			if err := scanSeason(rows, &s); err != nil {
				return fmt.Errorf("scanning season row: %w", err)
			}
			seasons = append(seasons, s)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterating season rows: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if seasons == nil {
		seasons = []Season{}
	}

	return seasons, nil
}

// Update overwrites every field of the season with the given ID.
func (r *PostgresRepository) Update(ctx context.Context, id int64, s *Season) (*Season, error) {
	query := `
		UPDATE temporada
		SET "año_inicio" = $1, "año_fin" = $2, nombre_temporada = $3
		WHERE temporada_id = $4
		RETURNING ` + seasonColumns

	var updated Season
	err := r.db.WithTx(ctx, func(q database.Querier) error {
		err := scanSeason(q.QueryRow(ctx, query, s.StartYear, s.EndYear, s.Name, id), &updated)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrSeasonNotFound
			}
			return database.WriteError(err, "updating season")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// Delete removes a season by its ID.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query := `DELETE FROM temporada WHERE temporada_id = $1`

	var deleted bool
	err := r.db.WithTx(ctx, func(q database.Querier) error {
		result, err := q.Exec(ctx, query, id)
		if err != nil {
			return database.DeleteError(err, "deleting season")
		}
		deleted = result.RowsAffected() > 0
		return nil
	})
	if err != nil {
		return false, err
	}

	return deleted, nil
}

func scanSeason(row pgx.Row, s *Season) error {
	return row.Scan(&s.ID, &s.StartYear, &s.EndYear, &s.Name)
}
