package center

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

// NewPostgresRepository creates a PostgreSQL-backed center repository
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (p *postgresRepository) Insert(ctx context.Context, c *Center) error {
	query := `
		INSERT INTO centers (id, name, address, phone, email, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := p.db.ExecContext(ctx, query,
		c.ID, c.Name, c.Address, c.Phone, c.Email, c.Description, c.CreatedAt,
	)
	return err
}

func (p *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Center, error) {
	var c Center
	err := p.db.GetContext(ctx, &c, `SELECT * FROM centers WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (p *postgresRepository) List(ctx context.Context) ([]*Center, error) {
	var centers []*Center
	err := p.db.SelectContext(ctx, &centers, `SELECT * FROM centers ORDER BY created_at`)
	return centers, err
}

func (p *postgresRepository) Update(ctx context.Context, c *Center) error {
	query := `
		UPDATE centers
		SET name = $2, address = $3, phone = $4, email = $5, description = $6, updated_at = $7
		WHERE id = $1
	`
	result, err := p.db.ExecContext(ctx, query,
		c.ID, c.Name, c.Address, c.Phone, c.Email, c.Description, c.UpdatedAt,
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

func (p *postgresRepository) Delete(ctx context.Context, id uuid.UUID) (*Center, error) {
	c, err := p.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}
	if _, err := p.db.ExecContext(ctx, `DELETE FROM centers WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return c, nil
}
