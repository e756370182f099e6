package rosterService

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"proximaBot/services/agentService"
	"proximaBot/services/cardService"
	"proximaBot/services/common"
	"proximaBot/services/guildService"
	"proximaBot/services/messageService"
	"proximaBot/services/statsService"
	"proximaBot/services/teamService"
)

// Sign adds a teamless player to the caller's team.
func Sign(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	if err := common.Defer(s, i, false); err != nil {
		return
	}

	if ok, msg := guildService.GateWindow(db, i.GuildID); !ok {
		common.FollowUpText(s, i, msg, false)
		return
	}

	cfg, err := guildService.GetConfig(db, i.GuildID)
	if err != nil || cfg == nil {
		common.FollowUpText(s, i, "Server is not configured yet. Run `/setup-global` first.", true)
		return
	}
	if !common.HasRole(i.Member, cfg.ManagerRoleID) && !common.HasRole(i.Member, cfg.AsstRoleID) {
		common.FollowUpText(s, i, "Not authorized.", true)
		return
	}

	team, err := teamService.FindMemberTeam(db, i.Member)
	if err != nil {
		common.FollowUpText(s, i, "Could not look up your team.", true)
		common.RecordError(db, i.GuildID, err)
		return
	}
	if team == nil {
		common.FollowUpText(s, i, "You don't have a team role.", true)
		return
	}

	player, err := common.MemberFromOption(s, i, common.Options(i)["player"])
	if err != nil {
		common.FollowUpText(s, i, "Could not resolve that player.", true)
		return
	}

	if common.HasRole(player, team.TeamRoleID) {
		common.FollowUpText(s, i, "⚠️ Player is already on your team.", false)
		return
	}
	other, err := teamService.FindMemberTeam(db, player)
	if err != nil {
		common.FollowUpText(s, i, "Could not look up the player's team.", true)
		common.RecordError(db, i.GuildID, err)
		return
	}
	if other != nil {
		common.FollowUpText(s, i, "🚫 Player is on another team. Use `/transfer`.", false)
		return
	}

	roster := common.TeamMembers(s, i.GuildID, team.TeamRoleID)
	if team.RosterLimit > 0 && len(roster) >= team.RosterLimit {
		common.FollowUpText(s, i, "❌ Roster full!", false)
		return
	}

	if err := s.GuildMemberRoleAdd(i.GuildID, player.User.ID, team.TeamRoleID); err != nil {
		common.FollowUpText(s, i, "Could not assign the team role.", true)
		common.RecordError(db, i.GuildID, err)
		return
	}

	agentService.Cleanup(s, db, i.GuildID, player.User.ID)
	if err := statsService.IncrementTransfers(db, player.User.ID); err != nil {
		common.RecordError(db, i.GuildID, err)
	}

	teamRole := common.GuildRole(s, i.GuildID, team.TeamRoleID)
	teamName, teamColor := team.TeamRoleID, 0
	if teamRole != nil {
		teamName, teamColor = teamRole.Name, teamRole.Color
	}

	description := fmt.Sprintf("The <@&%s> have **signed** %s", team.TeamRoleID, player.Mention())
	embed := messageService.TransactionEmbed(s, i.GuildID, fmt.Sprintf("%s Transaction", teamName),
		description, 0x3498db, team.Logo, i.Member.User.ID, len(roster)+1, team.RosterLimit)

	announceWithCard(s, i, db, embed, cardService.CardRequest{
		PlayerName:    common.GetUsernameFromUser(player.User),
		AvatarURL:     player.User.AvatarURL("256"),
		Title:         "OFFICIAL SIGNING",
		TeamColor:     teamColor,
		BackgroundURL: background(team.CardBackground),
	}, player.User.ID, fmt.Sprintf("✅ You have been signed to **%s**!", teamName))

	common.FollowUpText(s, i, "✅ Player signed!", false)
}

// Release removes a player from the caller's team.
func Release(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	if err := common.Defer(s, i, false); err != nil {
		return
	}

	if ok, msg := guildService.GateWindow(db, i.GuildID); !ok {
		common.FollowUpText(s, i, msg, false)
		return
	}

	team, err := teamService.FindMemberTeam(db, i.Member)
	if err != nil {
		common.FollowUpText(s, i, "Could not look up your team.", true)
		common.RecordError(db, i.GuildID, err)
		return
	}
	if team == nil {
		common.FollowUpText(s, i, "You don't have a team role.", true)
		return
	}

	player, err := common.MemberFromOption(s, i, common.Options(i)["player"])
	if err != nil {
		common.FollowUpText(s, i, "Could not resolve that player.", true)
		return
	}
	if !common.HasRole(player, team.TeamRoleID) {
		common.FollowUpText(s, i, "⚠️ Player is not on your team.", false)
		return
	}

	if err := s.GuildMemberRoleRemove(i.GuildID, player.User.ID, team.TeamRoleID); err != nil {
		common.FollowUpText(s, i, "Could not remove the team role.", true)
		common.RecordError(db, i.GuildID, err)
		return
	}

	teamRole := common.GuildRole(s, i.GuildID, team.TeamRoleID)
	teamName, teamColor := team.TeamRoleID, 0
	if teamRole != nil {
		teamName, teamColor = teamRole.Name, teamRole.Color
	}
	roster := common.TeamMembers(s, i.GuildID, team.TeamRoleID)

	description := fmt.Sprintf("The **%s** have **released** %s", teamName, player.Mention())
	embed := messageService.TransactionEmbed(s, i.GuildID, fmt.Sprintf("%s Transaction", teamName),
		description, 0xe74c3c, team.Logo, i.Member.User.ID, len(roster), team.RosterLimit)

	announceWithCard(s, i, db, embed, cardService.CardRequest{
		PlayerName:    common.GetUsernameFromUser(player.User),
		AvatarURL:     player.User.AvatarURL("256"),
		Title:         "OFFICIAL RELEASE",
		TeamColor:     teamColor,
		BackgroundURL: background(team.CardBackground),
	}, player.User.ID, fmt.Sprintf("⚠️ Released from **%s**.", teamName))

	common.FollowUpText(s, i, "✅ Released!", false)
}

// CanDemand reports whether a player with the given completed-demand count may
// demand another release. The limit counts completed demands, so the last
// allowed demand is the one taken at demands == limit-1.
func CanDemand(demands, limit int) bool {
	return demands < limit
}

// Demand lets a player force their own departure, bounded by the guild's
// demand limit.
func Demand(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	if err := common.Defer(s, i, false); err != nil {
		return
	}

	team, err := teamService.FindMemberTeam(db, i.Member)
	if err != nil {
		common.FollowUpText(s, i, "Could not look up your team.", true)
		common.RecordError(db, i.GuildID, err)
		return
	}
	if team == nil {
		common.FollowUpText(s, i, "❌ You are not in a team.", false)
		return
	}

	cfg, err := guildService.GetConfig(db, i.GuildID)
	if err != nil {
		common.FollowUpText(s, i, "Could not read the guild configuration.", true)
		common.RecordError(db, i.GuildID, err)
		return
	}
	limit := guildService.DemandLimit(cfg)

	stats, err := statsService.GetStats(db, i.Member.User.ID)
	if err != nil {
		common.FollowUpText(s, i, "Could not read your stats.", true)
		common.RecordError(db, i.GuildID, err)
		return
	}
	if !CanDemand(stats.Demands, limit) {
		common.FollowUpText(s, i,
			fmt.Sprintf("🚫 **Demand limit reached!** (%d/%d)\nYou cannot leave your team.", stats.Demands, limit), false)
		return
	}

	if err := s.GuildMemberRoleRemove(i.GuildID, i.Member.User.ID, team.TeamRoleID); err != nil {
		common.FollowUpText(s, i, "Could not remove the team role.", true)
		common.RecordError(db, i.GuildID, err)
		return
	}
	if err := statsService.IncrementDemands(db, i.Member.User.ID); err != nil {
		common.RecordError(db, i.GuildID, err)
	}
	demandsLeft := limit - (stats.Demands + 1)

	if cfg != nil && cfg.FreeAgentRoleID != "" {
		if err := s.GuildMemberRoleAdd(i.GuildID, i.Member.User.ID, cfg.FreeAgentRoleID); err != nil {
			log.Debug().Err(err).Str("guild", i.GuildID).Msg("could not grant free-agent role")
		}
	}

	teamRole := common.GuildRole(s, i.GuildID, team.TeamRoleID)
	teamName := team.TeamRoleID
	if teamRole != nil {
		teamName = teamRole.Name
	}
	roster := common.TeamMembers(s, i.GuildID, team.TeamRoleID)

	description := fmt.Sprintf("%s has **demanded release** from the team.\n\n⚠️ **Demands left:** %d",
		i.Member.Mention(), demandsLeft)
	embed := messageService.TransactionEmbed(s, i.GuildID, "Transfer Demand",
		description, 0x607d8b, team.Logo, "", len(roster), team.RosterLimit)
	messageService.PostTransaction(s, db, i.GuildID, embed, nil)

	heads, assistants := teamService.Managers(s, db, i.GuildID, team.TeamRoleID)
	for _, mgr := range append(heads, assistants...) {
		messageService.SendDM(s, mgr.User.ID,
			fmt.Sprintf("📢 %s has left your team.", common.GetUsernameFromUser(i.Member.User)), nil)
	}

	common.FollowUpText(s, i,
		fmt.Sprintf("👋 Left **%s**.\nDemands remaining: %d", teamName, demandsLeft), false)
}

// announceWithCard renders the card and posts the announcement off the
// interaction path; the blocking fetch/composite work never stalls other
// events.
func announceWithCard(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB, embed *discordgo.MessageEmbed, req cardService.CardRequest, dmUserID, dmContent string) {
	guildID := i.GuildID
	go func() {
		card, err := cardService.Render(req)
		if err != nil {
			common.RecordError(db, guildID, err)
			card = nil
		}
		messageService.PostTransaction(s, db, guildID, embed, card)
		if dmUserID != "" {
			messageService.SendDM(s, dmUserID, dmContent, embed)
		}
	}()
}

func background(url *string) string {
	if url == nil {
		return ""
	}
	return *url
}
