package team

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/daap14/liga/internal/database"
)

const teamColumns = `equipo_id, nombre, estadio_id, fecha_fundacion, presupuesto`

// PostgresRepository implements Repository on top of the persistence gateway.
type PostgresRepository struct {
	db *database.Gateway
}

// NewRepository creates a new Repository backed by the given gateway.
func NewRepository(db *database.Gateway) Repository {
	return &PostgresRepository{db: db}
}

// Create inserts a new team record. A venue that does not exist is reported
// as database.ErrReferenceNotFound.
func (r *PostgresRepository) Create(ctx context.Context, t *Team) error {
	query := `
		INSERT INTO equipo (nombre, estadio_id, fecha_fundacion, presupuesto)
		VALUES ($1, $2, $3, $4)
		RETURNING equipo_id`

	return r.db.WithTx(ctx, func(q database.Querier) error {
		err := q.QueryRow(ctx, query, t.Name, t.VenueID, t.FoundedOn, t.Budget).Scan(&t.ID)
		if err != nil {
			return database.WriteError(err, "inserting team")
		}
		return nil
	})
}

// GetByID retrieves a single team by its ID.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*Team, error) {
	query := `SELECT ` + teamColumns + ` FROM equipo WHERE equipo_id = $1`

	var t Team
	err := r.db.WithConn(ctx, func(q database.Querier) error {
		return scanTeam(q.QueryRow(ctx, query, id), &t)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("querying team: %w", err)
	}

	return &t, nil
}

// List retrieves a page of teams in insertion order.
func (r *PostgresRepository) List(ctx context.Context, page database.Page) ([]Team, error) {
	query := `SELECT ` + teamColumns + ` FROM equipo ORDER BY equipo_id LIMIT $1 OFFSET $2`

	var teams []Team
	err := r.db.WithConn(ctx, func(q database.Querier) error {
		rows, err := q.Query(ctx, query, page.Limit, page.Offset)
		if err != nil {
			return fmt.Errorf("listing teams: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var t Team
			if err := scanTeam(rows, &t); err != nil {
				return fmt.Errorf("scanning team row: %w", err)
			}
			teams = append(teams, t)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterating team rows: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if teams == nil {
		teams = []Team{}
	}

	return teams, nil
}

// Update overwrites every field of the team with the given ID.
func (r *PostgresRepository) Update(ctx context.Context, id int64, t *Team) (*Team, error) {
	query := `
		UPDATE equipo
		SET nombre = $1, estadio_id = $2, fecha_fundacion = $3, presupuesto = $4
		WHERE equipo_id = $5
		RETURNING ` + teamColumns

	var updated Team
	err := r.db.WithTx(ctx, func(q database.Querier) error {
		err := scanTeam(q.QueryRow(ctx, query, t.Name, t.VenueID, t.FoundedOn, t.Budget, id), &updated)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrTeamNotFound
			}
			return database.WriteError(err, "updating team")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// Delete removes a team by its ID. Returns database.ErrReferenced if the team
// is still linked to a season.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query := `DELETE FROM equipo WHERE equipo_id = $1`

	var deleted bool
	err := r.db.WithTx(ctx, func(q database.Querier) error {
		result, err := q.Exec(ctx, query, id)
		if err != nil {
			return database.DeleteError(err, "deleting team")
		}
		deleted = result.RowsAffected() > 0
		return nil
	})
	if err != nil {
		return false, err
	}

	return deleted, nil
}

func scanTeam(row pgx.Row, t *Team) error {
	if err := row.Scan(&t.ID, &t.Name, &t.VenueID, &t.FoundedOn, &t.Budget); err != nil {
		return err
	}
	t.FoundedOn = t.FoundedOn.UTC()
	return nil
}
