package center

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Center represents a building that hosts bookable rooms
type Center struct {
	ID          uuid.UUID      `db:"id" json:"id"`
	Name        string         `db:"name" json:"name"`
	Address     string         `db:"address" json:"address"`
	Phone       sql.NullString `db:"phone" json:"-"`
	Email       sql.NullString `db:"email" json:"-"`
	Description sql.NullString `db:"description" json:"-"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   sql.NullTime   `db:"updated_at" json:"-"`
}

// Clone returns a copy of the center
func (c *Center) Clone() *Center {
	cp := *c
	return &cp
}
