package booking

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

// NewPostgresRepository creates a PostgreSQL-backed booking repository
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Insert(ctx context.Context, b *Booking) error {
	query := `
		INSERT INTO bookings (id, room_id, user_id, start_time, end_time, purpose, attendees, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		b.ID,
		b.RoomID,
		b.UserID,
		b.StartTime,
		b.EndTime,
		b.Purpose,
		b.Attendees,
		b.Status,
		b.CreatedAt,
	)
	return err
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	query := `SELECT * FROM bookings WHERE id = $1`
	var b Booking
	err := r.db.GetContext(ctx, &b, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]*Booking, error) {
	query := `SELECT * FROM bookings ORDER BY created_at`
	var bookings []*Booking
	err := r.db.SelectContext(ctx, &bookings, query)
	return bookings, err
}

func (r *postgresRepository) ListApprovedByRoom(ctx context.Context, roomID string, exclude uuid.UUID) ([]*Booking, error) {
	query := `
		SELECT * FROM bookings
		WHERE room_id = $1 AND status = 'approved' AND id <> $2
	`
	var bookings []*Booking
	err := r.db.SelectContext(ctx, &bookings, query, roomID, exclude)
	return bookings, err
}

func (r *postgresRepository) Update(ctx context.Context, b *Booking) error {
	query := `
		UPDATE bookings
		SET room_id = $2, user_id = $3, start_time = $4, end_time = $5, purpose = $6,
		    attendees = $7, status = $8, approval_reason = $9, reschedule_reason = $10,
		    rescheduled_at = $11, updated_at = $12
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		b.ID,
		b.RoomID,
		b.UserID,
		b.StartTime,
		b.EndTime,
		b.Purpose,
		b.Attendees,
		b.Status,
		b.ApprovalReason,
		b.RescheduleReason,
		b.RescheduledAt,
		b.UpdatedAt,
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
