package agentService

import (
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"proximaBot/models"
	"proximaBot/services/common"
	"proximaBot/services/guildService"
)

const maxListedAgents = 20

// UpsertListing replaces a user's free-agent listing; re-posting never
// duplicates the row.
func UpsertListing(db *gorm.DB, listing *models.FreeAgentListing) error {
	var existing models.FreeAgentListing
	err := db.Where("user_id = ? AND guild_id = ?", listing.UserID, listing.GuildID).
		First(&existing).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	existing.UserID = listing.UserID
	existing.GuildID = listing.GuildID
	existing.Region = listing.Region
	existing.Position = listing.Position
	existing.Description = listing.Description
	existing.ListedAt = listing.ListedAt

	return db.Save(&existing).Error
}

func LookingForTeam(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	opts := common.Options(i)
	region := opts["region"].StringValue()
	position := opts["position"].StringValue()
	description := opts["description"].StringValue()

	if err := common.Defer(s, i, true); err != nil {
		return
	}

	listing := models.FreeAgentListing{
		UserID:      i.Member.User.ID,
		GuildID:     i.GuildID,
		Region:      region,
		Position:    position,
		Description: description,
		ListedAt:    time.Now(),
	}
	if err := UpsertListing(db, &listing); err != nil {
		common.FollowUpText(s, i, "Could not save your listing.", true)
		common.RecordError(db, i.GuildID, err)
		return
	}

	cfg, err := guildService.GetConfig(db, i.GuildID)
	if err == nil && cfg != nil && cfg.FreeAgentRoleID != "" {
		if err := s.GuildMemberRoleAdd(i.GuildID, i.Member.User.ID, cfg.FreeAgentRoleID); err != nil {
			log.Error().Err(err).Str("guild", i.GuildID).Msg("error granting free-agent role")
		}
	}

	common.FollowUpText(s, i, fmt.Sprintf("✅ Listed as **Free Agent** (%s - %s)!", region, position), true)
}

func FreeAgents(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	if err := common.Defer(s, i, false); err != nil {
		return
	}

	var listings []models.FreeAgentListing
	err := db.Where("guild_id = ?", i.GuildID).Order("listed_at desc").Find(&listings).Error
	if err != nil {
		common.FollowUpText(s, i, "Could not read the free-agent list.", true)
		common.RecordError(db, i.GuildID, err)
		return
	}
	if len(listings) == 0 {
		common.FollowUpText(s, i, "🤷 No free agents currently listed.", false)
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: "📄 Free Agency Market",
		Color: 0x1abc9c,
	}
	count := 0
	for _, listing := range listings {
		member, err := s.GuildMember(i.GuildID, listing.UserID)
		if err != nil || member == nil {
			continue
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s | %s (%s)", listing.Position, common.GetUsernameFromUser(member.User), listing.Region),
			Value: fmt.Sprintf("📝 %s", listing.Description),
		})
		count++
		if count >= maxListedAgents {
			embed.Footer = &discordgo.MessageEmbedFooter{
				Text: fmt.Sprintf("Showing first %d agents...", maxListedAgents),
			}
			break
		}
	}

	_, err = s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{embed},
	})
	if err != nil {
		common.RecordError(db, i.GuildID, err)
	}
}

// Cleanup removes a user's listing and free-agent role once they land on a
// team. All failures are swallowed; the signing proceeds regardless.
func Cleanup(s *discordgo.Session, db *gorm.DB, guildID, userID string) {
	// Hard delete; a soft-deleted row would block the unique index on
	// the player's next listing.
	err := db.Unscoped().Where("user_id = ? AND guild_id = ?", userID, guildID).
		Delete(&models.FreeAgentListing{}).Error
	if err != nil {
		log.Error().Err(err).Str("guild", guildID).Msg("error deleting free-agent listing")
	}

	cfg, err := guildService.GetConfig(db, guildID)
	if err != nil || cfg == nil || cfg.FreeAgentRoleID == "" {
		return
	}
	if err := s.GuildMemberRoleRemove(guildID, userID, cfg.FreeAgentRoleID); err != nil {
		log.Debug().Err(err).Str("guild", guildID).Msg("could not remove free-agent role")
	}
}
