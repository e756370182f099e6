package rosterService

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"

	"proximaBot/services/common"
	"proximaBot/services/guildService"
	"proximaBot/services/teamService"
)

// Promote grants the assistant-manager role to a teammate. Head managers
// only.
func Promote(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	if err := common.Defer(s, i, false); err != nil {
		return
	}

	cfg, err := guildService.GetConfig(db, i.GuildID)
	if err != nil || cfg == nil {
		common.FollowUpText(s, i, "Server is not configured yet. Run `/setup-global` first.", true)
		return
	}
	if !common.HasRole(i.Member, cfg.ManagerRoleID) && !common.IsAdmin(s, i) {
		common.FollowUpText(s, i, "Head managers only.", true)
		return
	}

	team, err := teamService.FindMemberTeam(db, i.Member)
	if err != nil {
		common.FollowUpText(s, i, "Could not look up your team.", true)
		common.RecordError(db, i.GuildID, err)
		return
	}
	if team == nil {
		common.FollowUpText(s, i, "You aren't managing a team.", true)
		return
	}

	player, err := common.MemberFromOption(s, i, common.Options(i)["player"])
	if err != nil {
		common.FollowUpText(s, i, "Could not resolve that player.", true)
		return
	}
	if !common.HasRole(player, team.TeamRoleID) {
		common.FollowUpText(s, i, "❌ Player is not on your team.", false)
		return
	}

	if cfg.AsstRoleID == "" {
		common.FollowUpText(s, i, "❌ Assistant role not configured.", true)
		return
	}

	if err := s.GuildMemberRoleAdd(i.GuildID, player.User.ID, cfg.AsstRoleID); err != nil {
		common.FollowUpText(s, i, "Could not assign the assistant role.", true)
		common.RecordError(db, i.GuildID, err)
		return
	}

	teamName := team.TeamRoleID
	if role := common.GuildRole(s, i.GuildID, team.TeamRoleID); role != nil {
		teamName = role.Name
	}
	common.FollowUpText(s, i,
		fmt.Sprintf("✅ Promoted %s to **Assistant Manager** of %s!", player.Mention(), teamName), false)
}

// TMTransfer hands the head-manager role from the caller to a teammate.
func TMTransfer(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	if err := common.Defer(s, i, true); err != nil {
		return
	}

	cfg, err := guildService.GetConfig(db, i.GuildID)
	if err != nil || cfg == nil {
		common.FollowUpText(s, i, "Server is not configured yet. Run `/setup-global` first.", true)
		return
	}
	if cfg.ManagerRoleID == "" || common.GuildRole(s, i.GuildID, cfg.ManagerRoleID) == nil {
		common.FollowUpText(s, i, "❌ Manager role missing from config.", true)
		return
	}
	if !common.HasRole(i.Member, cfg.ManagerRoleID) {
		common.FollowUpText(s, i, "❌ You are not a team manager.", true)
		return
	}

	team, err := teamService.FindMemberTeam(db, i.Member)
	if err != nil {
		common.FollowUpText(s, i, "Could not look up your team.", true)
		common.RecordError(db, i.GuildID, err)
		return
	}
	if team == nil {
		common.FollowUpText(s, i, "❌ You don't have a team.", true)
		return
	}

	player, err := common.MemberFromOption(s, i, common.Options(i)["player"])
	if err != nil {
		common.FollowUpText(s, i, "Could not resolve that player.", true)
		return
	}
	if !common.HasRole(player, team.TeamRoleID) {
		common.FollowUpText(s, i, "❌ That player is not on your team.", true)
		return
	}

	if err := s.GuildMemberRoleRemove(i.GuildID, i.Member.User.ID, cfg.ManagerRoleID); err != nil {
		common.FollowUpText(s, i, "Could not transfer ownership.", true)
		common.RecordError(db, i.GuildID, err)
		return
	}
	if err := s.GuildMemberRoleAdd(i.GuildID, player.User.ID, cfg.ManagerRoleID); err != nil {
		common.FollowUpText(s, i, "Could not transfer ownership.", true)
		common.RecordError(db, i.GuildID, err)
		return
	}

	teamName := team.TeamRoleID
	if role := common.GuildRole(s, i.GuildID, team.TeamRoleID); role != nil {
		teamName = role.Name
	}
	common.FollowUpText(s, i,
		fmt.Sprintf("✅ **Ownership transferred!**\n%s ➝ %s\n%s is now the manager of **%s**.",
			i.Member.Mention(), player.Mention(), player.Mention(), teamName), false)
}
