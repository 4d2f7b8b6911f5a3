package membership

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/daap14/liga/internal/database"
)

// PostgresRepository implements Repository on top of the persistence gateway.
type PostgresRepository struct {
	db *database.Gateway
}

// NewRepository creates a new Repository backed by the given gateway.
func NewRepository(db *database.Gateway) Repository {
	return &PostgresRepository{db: db}
}

// Create inserts a new link.
func (r *PostgresRepository) Create(ctx context.Context, m *Membership) error {
	query := `INSERT INTO equipo_temporada (equipo_id, temporada_id) VALUES ($1, $2)`

	return r.db.WithTx(ctx, func(q database.Querier) error {
		if _, err := q.Exec(ctx, query, m.TeamID, m.SeasonID); err != nil {
			return database.WriteError(err, "inserting team-season link")
		}
		return nil
	})
}

// GetByKey retrieves a single link.
func (r *PostgresRepository) GetByKey(ctx context.Context, key Key) (*Membership, error) {
	query := `
		SELECT equipo_id, temporada_id
		FROM equipo_temporada
		WHERE equipo_id = $1 AND temporada_id = $2`

	var m Membership
	err := r.db.WithConn(ctx, func(q database.Querier) error {
		return q.QueryRow(ctx, query, key.TeamID, key.SeasonID).Scan(&m.TeamID, &m.SeasonID)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMembershipNotFound
		}
		return nil, fmt.Errorf("querying team-season link: %w", err)
	}

	return &m, nil
}

// List retrieves a page of links ordered by team, then season.
func (r *PostgresRepository) List(ctx context.Context, page database.Page) ([]Membership, error) {
	query := `
		SELECT equipo_id, temporada_id
		FROM equipo_temporada
		ORDER BY equipo_id, temporada_id
		LIMIT $1 OFFSET $2`

	var links []Membership
	err := r.db.WithConn(ctx, func(q database.Querier) error {
		rows, err := q.Query(ctx, query, page.Limit, page.Offset)
		if err != nil {
			return fmt.Errorf("listing team-season links: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var m Membership
			if err := rows.Scan(&m.TeamID, &m.SeasonID); err != nil {
				return fmt.Errorf("scanning team-season link row: %w", err)
			}
			links = append(links, m)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterating team-season link rows: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if links == nil {
		links = []Membership{}
	}

	return links, nil
}

// Update rewrites both key columns of the link identified by key.
func (r *PostgresRepository) Update(ctx context.Context, key Key, m *Membership) (*Membership, error) {
	query := `
		UPDATE equipo_temporada
		SET equipo_id = $1, temporada_id = $2
		WHERE equipo_id = $3 AND temporada_id = $4
		RETURNING equipo_id, temporada_id`

	var updated Membership
	err := r.db.WithTx(ctx, func(q database.Querier) error {
		err := q.QueryRow(ctx, query, m.TeamID, m.SeasonID, key.TeamID, key.SeasonID).
			Scan(&updated.TeamID, &updated.SeasonID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrMembershipNotFound
			}
			return database.WriteError(err, "updating team-season link")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// Delete removes a link. It reports false when no such link exists.
func (r *PostgresRepository) Delete(ctx context.Context, key Key) (bool, error) {
	query := `DELETE FROM equipo_temporada WHERE equipo_id = $1 AND temporada_id = $2`

	var deleted bool
	err := r.db.WithTx(ctx, func(q database.Querier) error {
		result, err := q.Exec(ctx, query, key.TeamID, key.SeasonID)
		if err != nil {
			return database.DeleteError(err, "deleting team-season link")
		}
		deleted = result.RowsAffected() > 0
		return nil
	})
	if err != nil {
		return false, err
	}

	return deleted, nil
}
