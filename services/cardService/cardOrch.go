package cardService

import (
	"bytes"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"

	"proximaBot/services/common"
)

// TestCard renders a sample card for the invoker so staff can preview the
// layout and their background.
func TestCard(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	if err := common.Defer(s, i, false); err != nil {
		return
	}

	teamColor := 0
	for _, roleID := range i.Member.Roles {
		if role := common.GuildRole(s, i.GuildID, roleID); role != nil && role.Color != 0 {
			teamColor = role.Color
			break
		}
	}

	card, err := Render(CardRequest{
		PlayerName: common.GetUsernameFromUser(i.Member.User),
		AvatarURL:  i.Member.User.AvatarURL("256"),
		Title:      "TEST CARD",
		TeamColor:  teamColor,
	})
	if err != nil {
		common.FollowUpText(s, i, "Could not render the test card.", true)
		common.RecordError(db, i.GuildID, err)
		return
	}

	_, err = s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: "🖼️ **Test image generation:**",
		Files: []*discordgo.File{{
			Name:        "transaction.png",
			ContentType: "image/png",
			Reader:      bytes.NewReader(card),
		}},
	})
	if err != nil {
		common.RecordError(db, i.GuildID, err)
	}
}
