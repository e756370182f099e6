package models

import (
	"time"

	"gorm.io/gorm"
)

type FreeAgentListing struct {
	gorm.Model
	ID          uint   `gorm:"primaryKey"`
	UserID      string `gorm:"uniqueIndex:agent_guild_idx; size:64"`
	GuildID     string `gorm:"uniqueIndex:agent_guild_idx; size:64"`
	Region      string `gorm:"size:16"`
	Position    string `gorm:"size:16"`
	Description string
	ListedAt    time.Time
}
