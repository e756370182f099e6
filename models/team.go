package models

import "gorm.io/gorm"

type Team struct {
	gorm.Model
	ID          uint   `gorm:"primaryKey"`
	TeamRoleID  string `gorm:"uniqueIndex; size:64"`
	GuildID     string `gorm:"size:64"`
	Logo        string
	RosterLimit int `gorm:"default:20"`
	// URL of the custom transaction-card background, nil for the default.
	CardBackground *string
}
