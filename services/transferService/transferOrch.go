package transferService

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"proximaBot/services/agentService"
	"proximaBot/services/cardService"
	"proximaBot/services/common"
	"proximaBot/services/guildService"
	"proximaBot/services/messageService"
	"proximaBot/services/statsService"
	"proximaBot/services/teamService"
)

// Propose DMs an accept/decline offer to the target team's head manager
// (falling back to an assistant when the team has no head manager).
func Propose(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	if err := common.Defer(s, i, true); err != nil {
		return
	}

	if ok, msg := guildService.GateWindow(db, i.GuildID); !ok {
		common.FollowUpText(s, i, msg, true)
		return
	}

	cfg, err := guildService.GetConfig(db, i.GuildID)
	if err != nil || cfg == nil {
		common.FollowUpText(s, i, "Server is not configured yet. Run `/setup-global` first.", true)
		return
	}
	if !common.HasRole(i.Member, cfg.ManagerRoleID) && !common.HasRole(i.Member, cfg.AsstRoleID) {
		common.FollowUpText(s, i, "❌ You are not a manager.", true)
		return
	}

	myTeam, err := teamService.FindMemberTeam(db, i.Member)
	if err != nil {
		common.FollowUpText(s, i, "Could not look up your team.", true)
		common.RecordError(db, i.GuildID, err)
		return
	}
	if myTeam == nil {
		common.FollowUpText(s, i, "❌ You don't have a team.", true)
		return
	}

	player, err := common.MemberFromOption(s, i, common.Options(i)["player"])
	if err != nil {
		common.FollowUpText(s, i, "Could not resolve that player.", true)
		return
	}

	targetTeam, err := teamService.FindMemberTeam(db, player)
	if err != nil {
		common.FollowUpText(s, i, "Could not look up the player's team.", true)
		common.RecordError(db, i.GuildID, err)
		return
	}
	if targetTeam == nil {
		common.FollowUpText(s, i, "⚠️ Player is not on a team. Use `/sign`.", true)
		return
	}
	if targetTeam.TeamRoleID == myTeam.TeamRoleID {
		common.FollowUpText(s, i, "⚠️ Player is already on your team!", true)
		return
	}

	heads, assistants := teamService.Managers(s, db, i.GuildID, targetTeam.TeamRoleID)
	var targetManager *discordgo.Member
	if len(heads) > 0 {
		targetManager = heads[0]
	} else if len(assistants) > 0 {
		targetManager = assistants[0]
	}
	if targetManager == nil {
		name := targetTeam.TeamRoleID
		if role := common.GuildRole(s, i.GuildID, targetTeam.TeamRoleID); role != nil {
			name = role.Name
		}
		common.FollowUpText(s, i, fmt.Sprintf("❌ **%s** has no active manager.", name), true)
		return
	}

	offerID := Offers.Add(&Offer{
		GuildID:         i.GuildID,
		PlayerID:        player.User.ID,
		FromRoleID:      targetTeam.TeamRoleID,
		ToRoleID:        myTeam.TeamRoleID,
		ProposerID:      i.Member.User.ID,
		TargetManagerID: targetManager.User.ID,
		Logo:            myTeam.Logo,
	})

	dmEmbed := &discordgo.MessageEmbed{
		Title: "Transfer Offer 📝",
		Description: fmt.Sprintf("**%s** wants to buy **%s**.\nDo you accept?",
			i.Member.Mention(), common.GetUsernameFromUser(player.User)),
		Color: 0xd4af37,
	}
	sent := messageService.SendDMComplex(s, targetManager.User.ID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{dmEmbed},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "Accept Transfer",
						Style:    discordgo.SuccessButton,
						CustomID: "transfer_accept_" + offerID,
						Emoji:    &discordgo.ComponentEmoji{Name: "✅"},
					},
					discordgo.Button{
						Label:    "Decline",
						Style:    discordgo.DangerButton,
						CustomID: "transfer_decline_" + offerID,
						Emoji:    &discordgo.ComponentEmoji{Name: "❌"},
					},
				},
			},
		},
	})

	if sent {
		common.FollowUpText(s, i,
			fmt.Sprintf("✅ **Offer sent!** Waiting for %s.", targetManager.Mention()), true)
	} else {
		Offers.Resolve(offerID)
		common.FollowUpText(s, i, "❌ Could not DM the manager.", true)
	}
}

// HandleAccept executes an accepted offer: re-validates the window, swaps the
// team roles, counts the transfer, and announces it with a fresh card.
func HandleAccept(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB, offerID string) {
	offer, ok := Offers.Peek(offerID)
	if !ok {
		respondEphemeral(s, i, "This offer is no longer valid.")
		return
	}

	// The window may have closed since the offer went out; leave the offer
	// alive so it can be accepted once the window reopens.
	if ok, msg := guildService.GateWindow(db, offer.GuildID); !ok {
		respondEphemeral(s, i, msg)
		return
	}

	member, err := s.GuildMember(offer.GuildID, offer.PlayerID)
	if err != nil || member == nil {
		respondEphemeral(s, i, "❌ Player is no longer in the server.")
		return
	}

	offer, ok = Offers.Resolve(offerID)
	if !ok {
		respondEphemeral(s, i, "This offer is no longer valid.")
		return
	}

	err = swapTeamRoles(
		func() error { return s.GuildMemberRoleRemove(offer.GuildID, offer.PlayerID, offer.FromRoleID) },
		func() error { return s.GuildMemberRoleAdd(offer.GuildID, offer.PlayerID, offer.ToRoleID) },
	)
	if err != nil {
		common.RecordError(db, offer.GuildID, err)
		disableButtons(s, i, "❌ **Transfer failed.** The team roles could not be updated.")
		messageService.SendDM(s, offer.ProposerID,
			fmt.Sprintf("❌ Transfer for **%s** FAILED: the team roles could not be updated.",
				common.GetUsernameFromUser(member.User)), nil)
		return
	}

	disableButtons(s, i, "✅ **Transfer approved.**")

	agentService.Cleanup(s, db, offer.GuildID, offer.PlayerID)
	if err := statsService.IncrementTransfers(db, offer.PlayerID); err != nil {
		common.RecordError(db, offer.GuildID, err)
	}

	toTeam, err := teamService.GetTeam(db, offer.ToRoleID)
	if err != nil {
		common.RecordError(db, offer.GuildID, err)
	}
	limit, customBg := 0, ""
	if toTeam != nil {
		limit = toTeam.RosterLimit
		if toTeam.CardBackground != nil {
			customBg = *toTeam.CardBackground
		}
	}

	toRole := common.GuildRole(s, offer.GuildID, offer.ToRoleID)
	teamColor := 0
	if toRole != nil {
		teamColor = toRole.Color
	}
	roster := common.TeamMembers(s, offer.GuildID, offer.ToRoleID)

	description := fmt.Sprintf("🚨 **TRANSFER NEWS** 🚨\n\n%s has been transferred\nFrom: <@&%s>\nTo: <@&%s>",
		member.Mention(), offer.FromRoleID, offer.ToRoleID)
	embed := messageService.TransactionEmbed(s, offer.GuildID, "Official Transfer",
		description, 0x9b59b6, offer.Logo, offer.TargetManagerID, len(roster), limit)

	playerName := common.GetUsernameFromUser(member.User)
	avatarURL := member.User.AvatarURL("256")
	go func() {
		card, err := cardService.Render(cardService.CardRequest{
			PlayerName:    playerName,
			AvatarURL:     avatarURL,
			Title:         "OFFICIAL TRANSFER",
			TeamColor:     teamColor,
			BackgroundURL: customBg,
		})
		if err != nil {
			common.RecordError(db, offer.GuildID, err)
			card = nil
		}
		messageService.PostTransaction(s, db, offer.GuildID, embed, card)
		messageService.SendDM(s, offer.ProposerID,
			fmt.Sprintf("✅ Transfer for **%s** ACCEPTED!", playerName), nil)
	}()
}

// HandleDecline notifies the proposer and disables the offer.
func HandleDecline(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB, offerID string) {
	offer, ok := Offers.Resolve(offerID)
	if !ok {
		respondEphemeral(s, i, "This offer is no longer valid.")
		return
	}

	disableButtons(s, i, "❌ **Transfer declined.**")

	playerName := offer.PlayerID
	if member, err := s.GuildMember(offer.GuildID, offer.PlayerID); err == nil && member != nil {
		playerName = common.GetUsernameFromUser(member.User)
	}
	messageService.SendDM(s, offer.ProposerID,
		fmt.Sprintf("❌ Transfer for **%s** DECLINED.", playerName), nil)
}

// swapTeamRoles removes the old team role before assigning the new one,
// stopping at the first failure so a player never ends up holding both roles
// (or counted and announced for a move that never happened).
func swapTeamRoles(remove, add func() error) error {
	if err := remove(); err != nil {
		return fmt.Errorf("remove old team role: %w", err)
	}
	if err := add(); err != nil {
		return fmt.Errorf("assign new team role: %w", err)
	}
	return nil
}

// disableButtons replaces the offer DM with a resolution notice, stripping
// the components so the buttons can't fire again.
func disableButtons(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Components: []discordgo.MessageComponent{},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("error updating offer message")
	}
}

func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("error sending offer response")
	}
}
