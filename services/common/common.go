package common

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"proximaBot/models"
)

func IsAdmin(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	// Use member data from the interaction - no privileged intent needed
	if i.Member == nil {
		return false
	}

	for _, roleID := range i.Member.Roles {
		role, err := s.State.Role(i.GuildID, roleID)
		if err != nil || role == nil {
			roles, err := s.GuildRoles(i.GuildID)
			if err != nil {
				log.Error().Err(err).Msg("error fetching roles from API")
				continue
			}

			for _, r := range roles {
				if r.ID == roleID {
					role = r
					break
				}
			}

			if role == nil {
				log.Warn().Str("role", roleID).Str("guild", i.GuildID).Msg("role not found in guild")
				continue
			}
		}

		if role.Permissions&discordgo.PermissionAdministrator != 0 {
			return true
		}
	}

	return false
}

// InteractionUser works for both guild interactions (Member set) and DM
// button clicks (User set).
func InteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil {
		return i.Member.User
	}
	return i.User
}

func HasRole(member *discordgo.Member, roleID string) bool {
	if member == nil || roleID == "" {
		return false
	}
	for _, r := range member.Roles {
		if r == roleID {
			return true
		}
	}
	return false
}

// GuildRole resolves a role through the state cache, hitting the API when the
// cache misses.
func GuildRole(s *discordgo.Session, guildID, roleID string) *discordgo.Role {
	role, err := s.State.Role(guildID, roleID)
	if err == nil && role != nil {
		return role
	}

	roles, err := s.GuildRoles(guildID)
	if err != nil {
		log.Error().Err(err).Str("guild", guildID).Msg("error fetching guild roles")
		return nil
	}
	for _, r := range roles {
		if r.ID == roleID {
			return r
		}
	}
	return nil
}

// TeamMembers returns the guild members holding the given team role.
func TeamMembers(s *discordgo.Session, guildID, roleID string) []*discordgo.Member {
	var members []*discordgo.Member

	guild, err := s.State.Guild(guildID)
	if err == nil && guild != nil && len(guild.Members) > 0 {
		members = guild.Members
	} else {
		members, err = s.GuildMembers(guildID, "", 1000)
		if err != nil {
			log.Error().Err(err).Str("guild", guildID).Msg("error fetching guild members")
			return nil
		}
	}

	var out []*discordgo.Member
	for _, m := range members {
		if HasRole(m, roleID) {
			out = append(out, m)
		}
	}
	return out
}

// FormatRosterList renders member mentions, tagging head managers (TM) and
// assistant managers (AM).
func FormatRosterList(members []*discordgo.Member, mgrRoleID, asstRoleID string) []string {
	var formatted []string
	for _, m := range members {
		if m.User == nil {
			continue
		}
		name := m.User.Mention()
		if HasRole(m, mgrRoleID) {
			name += " **(TM)**"
		} else if HasRole(m, asstRoleID) {
			name += " **(AM)**"
		}
		formatted = append(formatted, name)
	}
	return formatted
}

func GetUsernameFromUser(user *discordgo.User) string {
	if user == nil {
		return "Unknown User"
	}
	username := user.GlobalName
	if username == "" {
		username = user.Username
	}
	if username == "" {
		return "Unknown User"
	}
	return username
}

// Options returns the command options keyed by name.
func Options(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	opts := i.ApplicationCommandData().Options
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, opt := range opts {
		m[opt.Name] = opt
	}
	return m
}

func RespondText(s *discordgo.Session, i *discordgo.InteractionCreate, content string, ephemeral bool) {
	var flags discordgo.MessageFlags
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   flags,
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("error sending interaction response")
	}
}

func Defer(s *discordgo.Session, i *discordgo.InteractionCreate, ephemeral bool) error {
	var flags discordgo.MessageFlags
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: flags},
	})
}

func FollowUpText(s *discordgo.Session, i *discordgo.InteractionCreate, content string, ephemeral bool) {
	var flags discordgo.MessageFlags
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}
	_, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: content,
		Flags:   flags,
	})
	if err != nil {
		log.Error().Err(err).Msg("error sending follow-up message")
	}
}

// SendError reduces a failure to a short user-facing message and records it
// in the error log table.
func SendError(s *discordgo.Session, i *discordgo.InteractionCreate, err error, db *gorm.DB) {
	log.Error().Err(err).Msg("command error")

	guildID := ""
	if i != nil {
		guildID = i.GuildID
		localErr := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: fmt.Sprintf("An error occured: %v", err),
				Flags:   discordgo.MessageFlagsEphemeral,
			},
		})
		if localErr != nil {
			log.Error().Err(localErr).Msg("error sending interaction response")
		}
	}
	errLog := models.ErrorLog{
		GuildID: guildID,
		Message: fmt.Sprintf("%v", err),
	}
	db.Create(&errLog)
}

// RecordError logs and persists a swallowed error without touching the
// interaction (used after the response has already gone out).
func RecordError(db *gorm.DB, guildID string, err error) {
	log.Error().Err(err).Str("guild", guildID).Msg("background error")
	db.Create(&models.ErrorLog{GuildID: guildID, Message: fmt.Sprintf("%v", err)})
}
