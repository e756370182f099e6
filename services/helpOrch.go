package services

import (
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// The help pages are static, so the pager keeps no state: the current page
// rides along in the button custom IDs.
func helpPages() []*discordgo.MessageEmbed {
	general := &discordgo.MessageEmbed{
		Title: "Help - General Commands (Page 1/3)",
		Color: 0x3498db,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "/looking-for-team", Value: "Post yourself as a free agent"},
			{Name: "/demand", Value: "Leave your current team (uses demand limit)"},
			{Name: "/team-view [role]", Value: "View a team's roster"},
			{Name: "/free-agents", Value: "View available players"},
		},
	}
	manager := &discordgo.MessageEmbed{
		Title: "Help - Manager Commands (Page 2/3)",
		Color: 0x2ecc71,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "/sign [player]", Value: "Sign a player to your team"},
			{Name: "/release [player]", Value: "Release a player"},
			{Name: "/transfer [player]", Value: "Request to buy a player"},
			{Name: "/promote [player]", Value: "Promote a player to assistant manager"},
			{Name: "/tm-transfer [player]", Value: "Transfer team ownership to a player"},
			{Name: "/decorate-transactions", Value: "Set a custom transaction card background"},
		},
	}
	admin := &discordgo.MessageEmbed{
		Title: "Help - Admin Commands (Page 3/3)",
		Color: 0xe74c3c,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "/setup-global", Value: "Configure bot roles/channels"},
			{Name: "/setup-team", Value: "Register a new team"},
			{Name: "/team-delete", Value: "Delete a team"},
			{Name: "/window", Value: "Open/close the transfer window"},
			{Name: "/reset-config", Value: "Wipe the server configuration"},
			{Name: "/transfer-list", Value: "View the top transfers leaderboard"},
		},
	}
	return []*discordgo.MessageEmbed{general, manager, admin}
}

func helpButtons(page, total int) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Previous",
					Style:    discordgo.PrimaryButton,
					CustomID: fmt.Sprintf("help_prev_%d", page),
					Disabled: page == 0,
				},
				discordgo.Button{
					Label:    "Next",
					Style:    discordgo.PrimaryButton,
					CustomID: fmt.Sprintf("help_next_%d", page),
					Disabled: page == total-1,
				},
			},
		},
	}
}

func HelpCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	pages := helpPages()
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{pages[0]},
			Components: helpButtons(0, len(pages)),
			Flags:      discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("error sending help message")
	}
}

func HandleHelpPage(s *discordgo.Session, i *discordgo.InteractionCreate, pageStr string, delta int) {
	pages := helpPages()

	page, err := strconv.Atoi(pageStr)
	if err != nil {
		return
	}
	page += delta
	if page < 0 {
		page = 0
	}
	if page > len(pages)-1 {
		page = len(pages) - 1
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{pages[page]},
			Components: helpButtons(page, len(pages)),
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("error updating help page")
	}
}
