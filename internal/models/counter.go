package models

// Counter holds the last-issued integer id for one logical collection.
// Mutated only through the counter repository's atomic increment.
type Counter struct {
	Collection string `gorm:"primaryKey" json:"collection"`
	Value      int64  `gorm:"not null;default:0" json:"value"`
}
