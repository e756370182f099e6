package teamService

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"

	"proximaBot/models"
	"proximaBot/services/common"
	"proximaBot/services/guildService"
)

// DecorateTransactions sets (or clears) the custom transaction-card
// background for the caller's team. Accepts an uploaded image or a URL; the
// magic words reset/none/remove revert to the default background.
func DecorateTransactions(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	if err := common.Defer(s, i, true); err != nil {
		return
	}

	cfg, err := guildService.GetConfig(db, i.GuildID)
	if err != nil || cfg == nil {
		common.FollowUpText(s, i, "Server is not configured yet. Run `/setup-global` first.", true)
		return
	}

	isManager := common.HasRole(i.Member, cfg.ManagerRoleID) || common.HasRole(i.Member, cfg.AsstRoleID)
	if !isManager && !common.IsAdmin(s, i) {
		common.FollowUpText(s, i, "Managers or admins only.", true)
		return
	}

	team, err := FindMemberTeam(db, i.Member)
	if err != nil {
		common.FollowUpText(s, i, "Could not look up your team.", true)
		common.RecordError(db, i.GuildID, err)
		return
	}
	if team == nil {
		common.FollowUpText(s, i, "You aren't managing a team.", true)
		return
	}

	role := common.GuildRole(s, i.GuildID, team.TeamRoleID)
	teamName := team.TeamRoleID
	if role != nil {
		teamName = role.Name
	}

	opts := common.Options(i)

	var rawURL string
	if opt, ok := opts["url"]; ok {
		rawURL = opt.StringValue()
	}

	switch strings.ToLower(rawURL) {
	case "reset", "none", "remove":
		err := db.Model(&models.Team{}).
			Where("team_role_id = ?", team.TeamRoleID).
			Update("card_background", nil).Error
		if err != nil {
			common.FollowUpText(s, i, "Could not reset the background.", true)
			common.RecordError(db, i.GuildID, err)
			return
		}
		InvalidateTeam(team.TeamRoleID)
		common.FollowUpText(s, i, fmt.Sprintf("✅ **%s** reverted to the default background.", teamName), true)
		return
	}

	finalURL := ""
	if opt, ok := opts["image"]; ok {
		attachmentID, _ := opt.Value.(string)
		attachment := i.ApplicationCommandData().Resolved.Attachments[attachmentID]
		if attachment == nil || !strings.HasPrefix(attachment.ContentType, "image/") {
			common.FollowUpText(s, i, "File must be an image.", true)
			return
		}
		finalURL = attachment.URL
	} else if rawURL != "" {
		if !strings.HasPrefix(rawURL, "http") {
			common.FollowUpText(s, i, "Invalid link.", true)
			return
		}
		finalURL = rawURL
	} else {
		common.FollowUpText(s, i, "Provide an **image file** OR a **URL**.", true)
		return
	}

	err = db.Model(&models.Team{}).
		Where("team_role_id = ?", team.TeamRoleID).
		Update("card_background", finalURL).Error
	if err != nil {
		common.FollowUpText(s, i, "Could not save the background.", true)
		common.RecordError(db, i.GuildID, err)
		return
	}
	InvalidateTeam(team.TeamRoleID)

	embed := &discordgo.MessageEmbed{
		Title:       "Background Updated",
		Description: "Your future signings will look like this:",
		Color:       0x2ecc71,
		Image:       &discordgo.MessageEmbedImage{URL: finalURL},
	}
	_, err = s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: fmt.Sprintf("✅ **%s** custom background set!", teamName),
		Embeds:  []*discordgo.MessageEmbed{embed},
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		common.RecordError(db, i.GuildID, err)
	}
}
