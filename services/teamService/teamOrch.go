package teamService

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"

	"proximaBot/models"
	"proximaBot/services/cache"
	"proximaBot/services/common"
	"proximaBot/services/guildService"
)

var teamCache = cache.New[string, *models.Team](60 * time.Second)

// GetTeam returns the registered team for a role id, nil when the role is not
// a team. Reads go through a 60s cache.
func GetTeam(db *gorm.DB, roleID string) (*models.Team, error) {
	if team, ok := teamCache.Get(roleID); ok {
		return team, nil
	}

	var team models.Team
	err := db.Where("team_role_id = ?", roleID).First(&team).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		teamCache.Put(roleID, nil)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	teamCache.Put(roleID, &team)
	return &team, nil
}

func InvalidateTeam(roleID string) {
	teamCache.Drop(roleID)
}

func AllTeams(db *gorm.DB, guildID string) ([]models.Team, error) {
	var teams []models.Team
	err := db.Where("guild_id = ?", guildID).Find(&teams).Error
	return teams, err
}

// FindMemberTeam scans a member's roles for a registered team. First match
// wins; duplicate team roles are possible if grants raced and are not
// resolved here.
func FindMemberTeam(db *gorm.DB, member *discordgo.Member) (*models.Team, error) {
	if member == nil {
		return nil, nil
	}
	for _, roleID := range member.Roles {
		team, err := GetTeam(db, roleID)
		if err != nil {
			return nil, err
		}
		if team != nil {
			return team, nil
		}
	}
	return nil, nil
}

// UpsertTeam registers a team role, overwriting any existing row for the same
// role while keeping its custom card background.
func UpsertTeam(db *gorm.DB, guildID, roleID, logo string, rosterLimit int) error {
	var team models.Team
	err := db.Where("team_role_id = ?", roleID).First(&team).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	team.TeamRoleID = roleID
	team.GuildID = guildID
	team.Logo = logo
	team.RosterLimit = rosterLimit

	if err := db.Save(&team).Error; err != nil {
		return err
	}
	InvalidateTeam(roleID)
	return nil
}

func SetupTeam(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	if !common.IsAdmin(s, i) {
		common.RespondText(s, i, "Admin only.", true)
		return
	}

	opts := common.Options(i)
	teamRole := opts["team-role"].RoleValue(s, i.GuildID)
	logo := opts["logo"].StringValue()

	rosterLimit := 20
	if opt, ok := opts["roster-limit"]; ok {
		rosterLimit = int(opt.IntValue())
	}

	if err := common.Defer(s, i, true); err != nil {
		return
	}

	if err := UpsertTeam(db, i.GuildID, teamRole.ID, logo, rosterLimit); err != nil {
		common.FollowUpText(s, i, "Could not register the team.", true)
		common.RecordError(db, i.GuildID, err)
		return
	}

	common.FollowUpText(s, i, fmt.Sprintf("✅ **%s** registered!", teamRole.Name), true)
}

func DeleteTeam(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	if !common.IsAdmin(s, i) {
		common.RespondText(s, i, "Admin only.", true)
		return
	}

	opts := common.Options(i)
	teamRole := opts["team-role"].RoleValue(s, i.GuildID)

	if err := common.Defer(s, i, true); err != nil {
		return
	}

	// Hard delete so the role can be re-registered later.
	err := db.Unscoped().Where("team_role_id = ?", teamRole.ID).Delete(&models.Team{}).Error
	if err != nil {
		common.FollowUpText(s, i, "Could not delete the team.", true)
		common.RecordError(db, i.GuildID, err)
		return
	}
	InvalidateTeam(teamRole.ID)

	common.FollowUpText(s, i, fmt.Sprintf("🗑️ **%s** removed.", teamRole.Name), true)
}

func TeamList(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	if !common.IsAdmin(s, i) {
		common.RespondText(s, i, "Admin only.", true)
		return
	}

	if err := common.Defer(s, i, false); err != nil {
		return
	}

	cfg, err := guildService.GetConfig(db, i.GuildID)
	if err != nil {
		common.FollowUpText(s, i, "Could not read the guild configuration.", true)
		common.RecordError(db, i.GuildID, err)
		return
	}
	mgrID, asstID := "", ""
	if cfg != nil {
		mgrID, asstID = cfg.ManagerRoleID, cfg.AsstRoleID
	}

	teams, err := AllTeams(db, i.GuildID)
	if err != nil {
		common.FollowUpText(s, i, "Could not list teams.", true)
		common.RecordError(db, i.GuildID, err)
		return
	}
	if len(teams) == 0 {
		common.FollowUpText(s, i, "No teams registered.", false)
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: "🏆 Registered Teams",
		Color: 0xd4af37,
	}
	for _, team := range teams {
		role := common.GuildRole(s, i.GuildID, team.TeamRoleID)
		if role == nil {
			continue
		}
		members := common.TeamMembers(s, i.GuildID, team.TeamRoleID)
		roster := common.FormatRosterList(members, mgrID, asstID)
		value := "*No players.*"
		if len(roster) > 0 {
			value = strings.Join(roster, "\n")
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s %s (%d)", headerEmoji(team.Logo), role.Name, len(members)),
			Value: value,
		})
	}

	_, err = s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{embed},
	})
	if err != nil {
		common.RecordError(db, i.GuildID, err)
	}
}

func TeamView(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	opts := common.Options(i)
	teamRole := opts["team"].RoleValue(s, i.GuildID)

	if err := common.Defer(s, i, true); err != nil {
		return
	}

	team, err := GetTeam(db, teamRole.ID)
	if err != nil {
		common.FollowUpText(s, i, "Could not read the team.", true)
		common.RecordError(db, i.GuildID, err)
		return
	}
	if team == nil {
		common.FollowUpText(s, i, "Not a registered team.", true)
		return
	}

	cfg, _ := guildService.GetConfig(db, i.GuildID)
	mgrID, asstID := "", ""
	if cfg != nil {
		mgrID, asstID = cfg.ManagerRoleID, cfg.AsstRoleID
	}

	members := common.TeamMembers(s, i.GuildID, teamRole.ID)
	roster := common.FormatRosterList(members, mgrID, asstID)
	description := "*No players.*"
	if len(roster) > 0 {
		description = strings.Join(roster, "\n")
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s %s Roster", headerEmoji(team.Logo), teamRole.Name),
		Description: description,
		Color:       teamRole.Color,
		Footer:      &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Total: %d", len(members))},
	}
	if strings.Contains(team.Logo, "http") {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: team.Logo}
	}

	_, err = s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{embed},
		Flags:  discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		common.RecordError(db, i.GuildID, err)
	}
}

// headerEmoji treats a non-URL logo as an emoji, defaulting to a shield.
func headerEmoji(logo string) string {
	if logo != "" && !strings.Contains(logo, "http") {
		return logo
	}
	return "🛡️"
}
