package guildService

import (
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"proximaBot/models"
	"proximaBot/services/cache"
	"proximaBot/services/common"
)

const defaultDemandLimit = 3

var configCache = cache.New[string, *models.GuildConfig](60 * time.Second)

// GetConfig returns the guild configuration, nil when the guild was never set
// up. Reads go through a 60s cache; absent rows are cached too.
func GetConfig(db *gorm.DB, guildID string) (*models.GuildConfig, error) {
	if cfg, ok := configCache.Get(guildID); ok {
		return cfg, nil
	}

	var cfg models.GuildConfig
	err := db.Where("guild_id = ?", guildID).First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		configCache.Put(guildID, nil)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	configCache.Put(guildID, &cfg)
	return &cfg, nil
}

func InvalidateConfig(guildID string) {
	configCache.Drop(guildID)
}

// IsWindowOpen reports the transfer-window gate. An unconfigured guild is
// treated as open.
func IsWindowOpen(db *gorm.DB, guildID string) bool {
	cfg, err := GetConfig(db, guildID)
	if err != nil {
		log.Error().Err(err).Str("guild", guildID).Msg("error reading guild config")
		return true
	}
	if cfg == nil {
		return true
	}
	return cfg.WindowOpen
}

// WindowClosedMessage is the shared refusal for window-gated moves.
const WindowClosedMessage = "❌ **Transfer window is closed.**"

// GateWindow is the single enforcement point for the transfer window: signing,
// releasing, transfer proposals and transfer accepts all pass through it. It
// reports whether the move may proceed, with the refusal message when not.
func GateWindow(db *gorm.DB, guildID string) (bool, string) {
	if IsWindowOpen(db, guildID) {
		return true, ""
	}
	return false, WindowClosedMessage
}

func DemandLimit(cfg *models.GuildConfig) int {
	if cfg == nil || cfg.DemandLimit <= 0 {
		return defaultDemandLimit
	}
	return cfg.DemandLimit
}

func SetupGlobal(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	if !common.IsAdmin(s, i) {
		common.RespondText(s, i, "Admin only.", true)
		return
	}

	opts := common.Options(i)
	managerRole := opts["manager-role"].RoleValue(s, i.GuildID)
	asstRole := opts["assistant-role"].RoleValue(s, i.GuildID)
	freeAgentRole := opts["free-agent-role"].RoleValue(s, i.GuildID)
	channel := opts["channel"].ChannelValue(s)

	demandLimit := defaultDemandLimit
	if opt, ok := opts["demand-limit"]; ok {
		demandLimit = int(opt.IntValue())
	}

	if err := common.Defer(s, i, true); err != nil {
		return
	}

	// Re-running setup must not flip the window state.
	var cfg models.GuildConfig
	err := db.Where("guild_id = ?", i.GuildID).First(&cfg).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		common.FollowUpText(s, i, "Could not save the configuration.", true)
		common.RecordError(db, i.GuildID, err)
		return
	}

	cfg.GuildID = i.GuildID
	cfg.ManagerRoleID = managerRole.ID
	cfg.AsstRoleID = asstRole.ID
	cfg.FreeAgentRoleID = freeAgentRole.ID
	cfg.AnnounceChannelID = channel.ID
	cfg.DemandLimit = demandLimit

	if err := db.Save(&cfg).Error; err != nil {
		common.FollowUpText(s, i, "Could not save the configuration.", true)
		common.RecordError(db, i.GuildID, err)
		return
	}
	InvalidateConfig(i.GuildID)

	common.FollowUpText(s, i, fmt.Sprintf("✅ **Config saved!** (Demand limit: %d)", demandLimit), true)
}

func ToggleWindow(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	if !common.IsAdmin(s, i) {
		common.RespondText(s, i, "Admin only.", true)
		return
	}

	opts := common.Options(i)
	open := opts["status"].IntValue() == 1

	if err := common.Defer(s, i, false); err != nil {
		return
	}

	err := db.Model(&models.GuildConfig{}).
		Where("guild_id = ?", i.GuildID).
		Update("window_open", open).Error
	if err != nil {
		common.FollowUpText(s, i, "Could not update the transfer window.", true)
		common.RecordError(db, i.GuildID, err)
		return
	}
	InvalidateConfig(i.GuildID)

	msg := "❌ **Transfer window CLOSED!**"
	if open {
		msg = "✅ **Transfer window OPEN!**"
	}
	common.FollowUpText(s, i, msg, false)

	cfg, err := GetConfig(db, i.GuildID)
	if err != nil || cfg == nil || cfg.AnnounceChannelID == "" {
		return
	}
	if _, err := s.ChannelMessageSend(cfg.AnnounceChannelID, msg); err != nil {
		log.Error().Err(err).Str("guild", i.GuildID).Msg("error announcing window change")
	}
}

func ResetConfigPrompt(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !common.IsAdmin(s, i) {
		common.RespondText(s, i, "Admin only.", true)
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: "⚠️ DANGER ZONE",
		Description: "Are you sure you want to **RESET** the bot configuration for this server?\n\n" +
			"This will delete:\n- Global config (roles/channels)\n- Demand limits\n\n" +
			"(It will NOT delete teams or player stats)",
		Color: 0x8b0000,
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.Button{
							Label:    "⚠️ CONFIRM WIPE",
							Style:    discordgo.DangerButton,
							CustomID: "resetcfg_confirm",
						},
						discordgo.Button{
							Label:    "Cancel",
							Style:    discordgo.SecondaryButton,
							CustomID: "resetcfg_cancel",
						},
					},
				},
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("error sending reset prompt")
	}
}

func HandleResetConfirm(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	if !common.IsAdmin(s, i) {
		common.RespondText(s, i, "Admin only.", true)
		return
	}

	// Hard delete so /setup-global can recreate the row cleanly.
	err := db.Unscoped().Where("guild_id = ?", i.GuildID).Delete(&models.GuildConfig{}).Error
	if err != nil {
		common.SendError(s, i, err, db)
		return
	}
	InvalidateConfig(i.GuildID)

	respondUpdate(s, i, "✅ **Configuration wiped.** Please run `/setup-global` again.")
}

func HandleResetCancel(s *discordgo.Session, i *discordgo.InteractionCreate) {
	respondUpdate(s, i, "❌ **Reset cancelled.**")
}

// respondUpdate replaces the prompt message, dropping buttons and embeds so
// the prompt can't be used twice.
func respondUpdate(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Embeds:     []*discordgo.MessageEmbed{},
			Components: []discordgo.MessageComponent{},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("error updating prompt message")
	}
}
