package common

import (
	"github.com/bwmarrin/discordgo"
)

// MemberFromOption resolves a user option to a guild member, preferring the
// resolved data attached to the interaction over an API round trip.
func MemberFromOption(s *discordgo.Session, i *discordgo.InteractionCreate, opt *discordgo.ApplicationCommandInteractionDataOption) (*discordgo.Member, error) {
	user := opt.UserValue(s)
	if user == nil {
		return nil, discordgo.ErrStateNotFound
	}

	if resolved := i.ApplicationCommandData().Resolved; resolved != nil {
		if member, ok := resolved.Members[user.ID]; ok && member != nil {
			member.User = user
			return member, nil
		}
	}

	return s.GuildMember(i.GuildID, user.ID)
}
