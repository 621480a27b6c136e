package models

import "time"

// Base contains common columns for all tables. IDs are auto-increment
// integers so the web tier can address records by numeric path segments.
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
