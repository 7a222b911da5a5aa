package room

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a PostgreSQL-backed room repository
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (p *postgresRepository) Insert(ctx context.Context, r *Room) error {
	query := `
		INSERT INTO rooms (id, name, center, capacity, status, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := p.db.ExecContext(ctx, query,
		r.ID, r.Name, r.Center, r.Capacity, r.Status, r.Description, r.CreatedAt,
	)
	return err
}

func (p *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Room, error) {
	var r Room
	err := p.db.GetContext(ctx, &r, `SELECT * FROM rooms WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &r, nil
}

func (p *postgresRepository) List(ctx context.Context) ([]*Room, error) {
	var rooms []*Room
	err := p.db.SelectContext(ctx, &rooms, `SELECT * FROM rooms ORDER BY created_at`)
	return rooms, err
}

func (p *postgresRepository) Update(ctx context.Context, r *Room) error {
	query := `
		UPDATE rooms
		SET name = $2, center = $3, capacity = $4, status = $5, description = $6, updated_at = $7
		WHERE id = $1
	`
	result, err := p.db.ExecContext(ctx, query,
		r.ID, r.Name, r.Center, r.Capacity, r.Status, r.Description, r.UpdatedAt,
	)
	if err != nil {
		return err
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *postgresRepository) Delete(ctx context.Context, id uuid.UUID) (*Room, error) {
	r, err := p.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrNotFound
	}
	if _, err := p.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return r, nil
}
