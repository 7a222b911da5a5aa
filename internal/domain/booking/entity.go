package booking

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Status represents the booking lifecycle state
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// Booking represents a room reservation with an approval workflow.
// Cancelled bookings are kept as tombstones so the history survives.
type Booking struct {
	ID               uuid.UUID      `db:"id" json:"id"`
	RoomID           string         `db:"room_id" json:"room_id"`
	UserID           uuid.UUID      `db:"user_id" json:"user_id"`
	StartTime        time.Time      `db:"start_time" json:"start_time"`
	EndTime          time.Time      `db:"end_time" json:"end_time"`
	Purpose          string         `db:"purpose" json:"purpose"`
	Attendees        *int           `db:"attendees" json:"attendees,omitempty"`
	Status           Status         `db:"status" json:"status"`
	ApprovalReason   sql.NullString `db:"approval_reason" json:"-"`
	RescheduleReason sql.NullString `db:"reschedule_reason" json:"-"`
	RescheduledAt    sql.NullTime   `db:"rescheduled_at" json:"-"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt        sql.NullTime   `db:"updated_at" json:"-"`
}

// Overlaps reports whether the booking's [start, end) interval overlaps
// the given one. Back-to-back bookings do not overlap.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return start.Before(b.EndTime) && end.After(b.StartTime)
}

// IsCancelled reports whether the booking reached its terminal state
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// Clone returns a deep copy of the booking
func (b *Booking) Clone() *Booking {
	c := *b
	if b.Attendees != nil {
		v := *b.Attendees
		c.Attendees = &v
	}
	return &c
}
