package notification

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Type represents notification type
type Type string

const (
	TypeRescheduled Type = "booking_rescheduled"
	TypeApproved    Type = "booking_approved"
	TypeRejected    Type = "booking_rejected"
	TypeCancelled   Type = "booking_cancelled"
)

// DeliveryStatus represents email delivery state
type DeliveryStatus string

const (
	DeliveryPending DeliveryStatus = "pending"
	DeliverySent    DeliveryStatus = "sent"
	DeliveryFailed  DeliveryStatus = "failed"
)

// Notification represents a delivery record for a booking change
type Notification struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	UserID    uuid.UUID       `db:"user_id" json:"user_id"`
	BookingID uuid.UUID       `db:"booking_id" json:"booking_id"`
	Type      Type            `db:"type" json:"type"`
	Title     string          `db:"title" json:"title"`
	Message   string          `db:"message" json:"message"`
	Email     string          `db:"email" json:"email"`
	Data      json.RawMessage `db:"data" json:"data,omitempty"`
	Status    DeliveryStatus  `db:"status" json:"status"`
	SentAt    sql.NullTime    `db:"sent_at" json:"-"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// Clone returns a copy of the notification
func (n *Notification) Clone() *Notification {
	c := *n
	if n.Data != nil {
		c.Data = append(json.RawMessage(nil), n.Data...)
	}
	return &c
}
