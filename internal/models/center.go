package models

import "time"

// Center is an organizational unit with one coordinator and many lecturers.
// Claims are always scoped to exactly one center.
type Center struct {
	ID            string    `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Location      string    `db:"location" json:"location"`
	CoordinatorID *string   `db:"coordinator_id" json:"coordinator_id,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}
