package teamService

import (
	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"

	"proximaBot/services/common"
	"proximaBot/services/guildService"
)

// Managers splits a team's roster into head managers and assistants based on
// the configured staff roles.
func Managers(s *discordgo.Session, db *gorm.DB, guildID, teamRoleID string) (heads, assistants []*discordgo.Member) {
	cfg, err := guildService.GetConfig(db, guildID)
	if err != nil || cfg == nil {
		return nil, nil
	}

	for _, member := range common.TeamMembers(s, guildID, teamRoleID) {
		if common.HasRole(member, cfg.ManagerRoleID) {
			heads = append(heads, member)
		} else if common.HasRole(member, cfg.AsstRoleID) {
			assistants = append(assistants, member)
		}
	}
	return heads, assistants
}
