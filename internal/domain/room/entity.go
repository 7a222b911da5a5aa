package room

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Status represents room availability state
type Status string

const (
	StatusAvailable   Status = "available"
	StatusOccupied    Status = "occupied"
	StatusMaintenance Status = "maintenance"
)

// Room represents a bookable room inside a center
type Room struct {
	ID          uuid.UUID      `db:"id" json:"id"`
	Name        string         `db:"name" json:"name"`
	Center      string         `db:"center" json:"center"`
	Capacity    int            `db:"capacity" json:"capacity"`
	Status      Status         `db:"status" json:"status"`
	Description sql.NullString `db:"description" json:"-"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   sql.NullTime   `db:"updated_at" json:"-"`
}

// Clone returns a copy of the room
func (r *Room) Clone() *Room {
	c := *r
	return &c
}
