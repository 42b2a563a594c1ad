package database

import (
	"time"
)

// Model is the gorm base for recorded rows. Runs are append only, so there is
// no update or soft delete column.
type Model struct {
	ID        uint      `gorm:"primary_key" json:"id,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"created"`
}
