package statsService

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"

	"proximaBot/models"
	"proximaBot/services/common"
)

// GetStats fetches a player's counters, creating the row on first access.
func GetStats(db *gorm.DB, userID string) (models.PlayerStats, error) {
	var stats models.PlayerStats
	err := db.FirstOrCreate(&stats, models.PlayerStats{UserID: userID}).Error
	return stats, err
}

func IncrementTransfers(db *gorm.DB, userID string) error {
	return increment(db, userID, "transfers")
}

func IncrementDemands(db *gorm.DB, userID string) error {
	return increment(db, userID, "demands")
}

func increment(db *gorm.DB, userID, column string) error {
	if _, err := GetStats(db, userID); err != nil {
		return err
	}
	return db.Model(&models.PlayerStats{}).
		Where("user_id = ?", userID).
		UpdateColumn(column, gorm.Expr(column+" + ?", 1)).Error
}

// TransferList shows the top players by transfer count.
func TransferList(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	if !common.IsAdmin(s, i) {
		common.RespondText(s, i, "Admin only.", true)
		return
	}

	if err := common.Defer(s, i, false); err != nil {
		return
	}

	var top []models.PlayerStats
	err := db.Order("transfers desc").Limit(15).Find(&top).Error
	if err != nil {
		common.FollowUpText(s, i, "Could not read transfer history.", true)
		common.RecordError(db, i.GuildID, err)
		return
	}
	if len(top) == 0 {
		common.FollowUpText(s, i, "No transfer history found.", false)
		return
	}

	description := ""
	for idx, stats := range top {
		name := fmt.Sprintf("Unknown (%s)", stats.UserID)
		if member, err := s.GuildMember(i.GuildID, stats.UserID); err == nil && member != nil {
			name = common.GetUsernameFromUser(member.User)
		}
		description += fmt.Sprintf("**%d.** %s — %d transfers\n", idx+1, name, stats.Transfers)
	}

	embed := &discordgo.MessageEmbed{
		Title:       "📊 Most Transfers",
		Description: description,
		Color:       0xd4af37,
	}
	_, err = s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{embed},
	})
	if err != nil {
		common.RecordError(db, i.GuildID, err)
	}
}
