package notification

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a PostgreSQL-backed notification repository
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (p *postgresRepository) Create(ctx context.Context, n *Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, booking_id, type, title, message, email, data, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := p.db.ExecContext(ctx, query,
		n.ID, n.UserID, n.BookingID, n.Type, n.Title, n.Message, n.Email, n.Data, n.Status, n.CreatedAt,
	)
	return err
}

func (p *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Notification, error) {
	var n Notification
	err := p.db.GetContext(ctx, &n, `SELECT * FROM notifications WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &n, nil
}

func (p *postgresRepository) List(ctx context.Context) ([]*Notification, error) {
	var notifications []*Notification
	err := p.db.SelectContext(ctx, &notifications, `SELECT * FROM notifications ORDER BY created_at`)
	return notifications, err
}

func (p *postgresRepository) Delete(ctx context.Context, id uuid.UUID) (*Notification, error) {
	n, err := p.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, ErrNotFound
	}
	if _, err := p.db.ExecContext(ctx, `DELETE FROM notifications WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return n, nil
}

func (p *postgresRepository) UpdateDelivery(ctx context.Context, id uuid.UUID, status DeliveryStatus, sentAt time.Time) error {
	var sent interface{}
	if status == DeliverySent {
		sent = sentAt
	}
	result, err := p.db.ExecContext(ctx,
		`UPDATE notifications SET status = $2, sent_at = COALESCE($3, sent_at) WHERE id = $1`,
		id, status, sent,
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
