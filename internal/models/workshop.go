package models

import "time"

// Workshop is a ministry-published training listing. The API surface is
// read-only; workshop authoring happens in the ministry portal.
type Workshop struct {
	ID          int64     `gorm:"primaryKey;autoIncrement:false" json:"workshop_id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	Provider    string    `json:"provider"`
	Location    string    `json:"location"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}
