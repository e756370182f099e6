package models

import "gorm.io/gorm"

// PlayerStats rows are created lazily the first time a player is touched by a
// transaction. Counters only ever go up.
type PlayerStats struct {
	gorm.Model
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"uniqueIndex; size:64"`
	Transfers int    `gorm:"default:0"`
	Demands   int    `gorm:"default:0"`
}
