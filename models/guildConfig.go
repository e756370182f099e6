package models

import "gorm.io/gorm"

type GuildConfig struct {
	gorm.Model
	ID                uint   `gorm:"primaryKey"`
	GuildID           string `gorm:"uniqueIndex; size:64"`
	ManagerRoleID     string `gorm:"size:64"`
	AsstRoleID        string `gorm:"size:64"`
	AnnounceChannelID string `gorm:"size:64"`
	FreeAgentRoleID   string `gorm:"size:64"`
	WindowOpen        bool   `gorm:"default:true"`
	DemandLimit       int    `gorm:"default:3"`
}
