package messageService

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"proximaBot/services/guildService"
)

const cardFilename = "transaction.png"

// TransactionEmbed builds the standard announcement embed for roster moves.
// coachID may be empty; a limit of zero or less renders as "No Limit".
func TransactionEmbed(s *discordgo.Session, guildID, title, description string, color int, logo, coachID string, rosterCount, limit int) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
		Timestamp:   time.Now().Format(time.RFC3339),
		Footer:      &discordgo.MessageEmbedFooter{Text: "Official Transaction"},
	}

	if guild, err := s.State.Guild(guildID); err == nil && guild != nil {
		author := &discordgo.MessageEmbedAuthor{Name: guild.Name}
		if guild.Icon != "" {
			author.IconURL = guild.IconURL("")
		}
		embed.Author = author
	}

	if strings.Contains(logo, "http") {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: logo}
	}
	if coachID != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Coach:",
			Value: fmt.Sprintf("👔 <@%s>", coachID),
		})
	}

	rosterText := fmt.Sprintf("%d (No Limit)", rosterCount)
	if limit > 0 {
		rosterText = fmt.Sprintf("%d/%d", rosterCount, limit)
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "Roster:",
		Value: fmt.Sprintf("👥 %s", rosterText),
	})

	return embed
}

// PostTransaction sends an embed (optionally with a rendered card attached)
// to the guild's announcement channel. Returns false when no channel is
// configured or the send failed.
func PostTransaction(s *discordgo.Session, db *gorm.DB, guildID string, embed *discordgo.MessageEmbed, card []byte) bool {
	cfg, err := guildService.GetConfig(db, guildID)
	if err != nil || cfg == nil || cfg.AnnounceChannelID == "" {
		return false
	}

	msg := &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embed},
	}
	if len(card) > 0 {
		embed.Image = &discordgo.MessageEmbedImage{URL: "attachment://" + cardFilename}
		msg.Files = []*discordgo.File{{
			Name:        cardFilename,
			ContentType: "image/png",
			Reader:      bytes.NewReader(card),
		}}
	}

	if _, err := s.ChannelMessageSendComplex(cfg.AnnounceChannelID, msg); err != nil {
		log.Error().Err(err).Str("guild", guildID).Msg("error posting transaction")
		return false
	}
	return true
}

// SendDM delivers a direct message, swallowing failures (closed DMs are
// routine).
func SendDM(s *discordgo.Session, userID, content string, embed *discordgo.MessageEmbed) bool {
	channel, err := s.UserChannelCreate(userID)
	if err != nil {
		log.Debug().Err(err).Str("user", userID).Msg("could not open DM channel")
		return false
	}

	msg := &discordgo.MessageSend{Content: content}
	if embed != nil {
		msg.Embeds = []*discordgo.MessageEmbed{embed}
	}
	if _, err := s.ChannelMessageSendComplex(channel.ID, msg); err != nil {
		log.Debug().Err(err).Str("user", userID).Msg("could not deliver DM")
		return false
	}
	return true
}

// SendDMComplex delivers a DM with components (used for transfer offers).
func SendDMComplex(s *discordgo.Session, userID string, msg *discordgo.MessageSend) bool {
	channel, err := s.UserChannelCreate(userID)
	if err != nil {
		log.Debug().Err(err).Str("user", userID).Msg("could not open DM channel")
		return false
	}
	if _, err := s.ChannelMessageSendComplex(channel.ID, msg); err != nil {
		log.Debug().Err(err).Str("user", userID).Msg("could not deliver DM")
		return false
	}
	return true
}
