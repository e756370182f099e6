package services

import (
	"strings"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"

	"proximaBot/services/guildService"
	"proximaBot/services/transferService"
)

func HandleComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	customID := i.MessageComponentData().CustomID

	switch {
	case strings.HasPrefix(customID, "transfer_accept_"):
		transferService.HandleAccept(s, i, db, strings.TrimPrefix(customID, "transfer_accept_"))
	case strings.HasPrefix(customID, "transfer_decline_"):
		transferService.HandleDecline(s, i, db, strings.TrimPrefix(customID, "transfer_decline_"))
	case strings.HasPrefix(customID, "help_prev_"):
		HandleHelpPage(s, i, strings.TrimPrefix(customID, "help_prev_"), -1)
	case strings.HasPrefix(customID, "help_next_"):
		HandleHelpPage(s, i, strings.TrimPrefix(customID, "help_next_"), +1)
	case customID == "resetcfg_confirm":
		guildService.HandleResetConfirm(s, i, db)
	case customID == "resetcfg_cancel":
		guildService.HandleResetCancel(s, i)
	}
}
