package services

import (
	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"

	"proximaBot/services/agentService"
	"proximaBot/services/cardService"
	"proximaBot/services/guildService"
	"proximaBot/services/rosterService"
	"proximaBot/services/statsService"
	"proximaBot/services/teamService"
	"proximaBot/services/transferService"
)

func HandleSlashCommand(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	switch i.ApplicationCommandData().Name {
	case "help":
		HelpCommand(s, i)
	case "looking-for-team":
		agentService.LookingForTeam(s, i, db)
	case "free-agents":
		agentService.FreeAgents(s, i, db)
	case "team-view":
		teamService.TeamView(s, i, db)
	case "demand":
		rosterService.Demand(s, i, db)
	case "sign":
		rosterService.Sign(s, i, db)
	case "release":
		rosterService.Release(s, i, db)
	case "transfer":
		transferService.Propose(s, i, db)
	case "promote":
		rosterService.Promote(s, i, db)
	case "tm-transfer":
		rosterService.TMTransfer(s, i, db)
	case "decorate-transactions":
		teamService.DecorateTransactions(s, i, db)
	case "test-card":
		cardService.TestCard(s, i, db)
	case "setup-global":
		guildService.SetupGlobal(s, i, db)
	case "setup-team":
		teamService.SetupTeam(s, i, db)
	case "team-delete":
		teamService.DeleteTeam(s, i, db)
	case "team-list":
		teamService.TeamList(s, i, db)
	case "window":
		guildService.ToggleWindow(s, i, db)
	case "reset-config":
		guildService.ResetConfigPrompt(s, i)
	case "transfer-list":
		statsService.TransferList(s, i, db)
	}
}

func RegisterCommands(s *discordgo.Session) error {
	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "help",
			Description: "Show bot commands",
		},
		{
			Name:        "looking-for-team",
			Description: "Post yourself as a free agent",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "region",
					Description: "Your region",
					Type:        discordgo.ApplicationCommandOptionString,
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "Asia", Value: "ASIA"},
						{Name: "Europe", Value: "EU"},
						{Name: "NA", Value: "NA"},
						{Name: "SA", Value: "SA"},
					},
				},
				{
					Name:        "position",
					Description: "Your position",
					Type:        discordgo.ApplicationCommandOptionString,
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "ST", Value: "ST"},
						{Name: "MF", Value: "MF"},
						{Name: "DF", Value: "DF"},
						{Name: "GK", Value: "GK"},
					},
				},
				{
					Name:        "description",
					Description: "Tell managers about yourself",
					Type:        discordgo.ApplicationCommandOptionString,
					Required:    true,
				},
			},
		},
		{
			Name:        "free-agents",
			Description: "View available players",
		},
		{
			Name:        "team-view",
			Description: "View a specific team's roster",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "team",
					Description: "Team role",
					Type:        discordgo.ApplicationCommandOptionRole,
					Required:    true,
				},
			},
		},
		{
			Name:        "demand",
			Description: "Leave your current team (uses demand limit)",
		},
		{
			Name:        "sign",
			Description: "Sign a player to YOUR team",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "player",
					Description: "Player to sign",
					Type:        discordgo.ApplicationCommandOptionUser,
					Required:    true,
				},
			},
		},
		{
			Name:        "release",
			Description: "Release a player",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "player",
					Description: "Player to release",
					Type:        discordgo.ApplicationCommandOptionUser,
					Required:    true,
				},
			},
		},
		{
			Name:        "transfer",
			Description: "Request to sign a player from another team",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "player",
					Description: "Player to buy",
					Type:        discordgo.ApplicationCommandOptionUser,
					Required:    true,
				},
			},
		},
		{
			Name:        "promote",
			Description: "Promote a player to assistant manager",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "player",
					Description: "Player to promote",
					Type:        discordgo.ApplicationCommandOptionUser,
					Required:    true,
				},
			},
		},
		{
			Name:        "tm-transfer",
			Description: "Transfer team ownership to another player",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "player",
					Description: "New team manager",
					Type:        discordgo.ApplicationCommandOptionUser,
					Required:    true,
				},
			},
		},
		{
			Name:        "decorate-transactions",
			Description: "Set a custom transaction card background (upload image OR link)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "image",
					Description: "Background image file",
					Type:        discordgo.ApplicationCommandOptionAttachment,
					Required:    false,
				},
				{
					Name:        "url",
					Description: "Background image URL (or reset/none/remove)",
					Type:        discordgo.ApplicationCommandOptionString,
					Required:    false,
				},
			},
		},
		{
			Name:        "test-card",
			Description: "TEST: Generates a sample signing card",
		},
		{
			Name:        "setup-global",
			Description: "🛡 Set roles, channels, and limits - ADMIN ONLY",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "manager-role",
					Description: "Team manager role",
					Type:        discordgo.ApplicationCommandOptionRole,
					Required:    true,
				},
				{
					Name:        "assistant-role",
					Description: "Assistant manager role",
					Type:        discordgo.ApplicationCommandOptionRole,
					Required:    true,
				},
				{
					Name:        "free-agent-role",
					Description: "Free agent role",
					Type:        discordgo.ApplicationCommandOptionRole,
					Required:    true,
				},
				{
					Name:        "channel",
					Description: "Transaction announcement channel",
					Type:        discordgo.ApplicationCommandOptionChannel,
					Required:    true,
				},
				{
					Name:        "demand-limit",
					Description: "Demands allowed per player (default 3)",
					Type:        discordgo.ApplicationCommandOptionInteger,
					Required:    false,
				},
			},
		},
		{
			Name:        "setup-team",
			Description: "🛡 Register a team role - ADMIN ONLY",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "team-role",
					Description: "Team role",
					Type:        discordgo.ApplicationCommandOptionRole,
					Required:    true,
				},
				{
					Name:        "logo",
					Description: "Logo URL or emoji",
					Type:        discordgo.ApplicationCommandOptionString,
					Required:    true,
				},
				{
					Name:        "roster-limit",
					Description: "Roster limit (default 20)",
					Type:        discordgo.ApplicationCommandOptionInteger,
					Required:    false,
				},
			},
		},
		{
			Name:        "team-delete",
			Description: "🛡 Unregister a team - ADMIN ONLY",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "team-role",
					Description: "Team role",
					Type:        discordgo.ApplicationCommandOptionRole,
					Required:    true,
				},
			},
		},
		{
			Name:        "team-list",
			Description: "🛡 List registered teams - ADMIN ONLY",
		},
		{
			Name:        "window",
			Description: "🛡 Open/close the transfer window - ADMIN ONLY",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "status",
					Description: "Window state",
					Type:        discordgo.ApplicationCommandOptionInteger,
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "Open ✅", Value: 1},
						{Name: "Closed ❌", Value: 0},
					},
				},
			},
		},
		{
			Name:        "reset-config",
			Description: "🛡 ⚠️ WIPE SERVER DATA - ADMIN ONLY",
		},
		{
			Name:        "transfer-list",
			Description: "🛡 Show top players by transfer count - ADMIN ONLY",
		},
	}

	for _, cmd := range commands {
		_, err := s.ApplicationCommandCreate(s.State.User.ID, "", cmd)
		if err != nil {
			return err
		}
	}

	return nil
}
