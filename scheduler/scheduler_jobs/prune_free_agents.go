package scheduler_jobs

import (
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"proximaBot/models"
)

const listingMaxAge = 30 * 24 * time.Hour

// PruneFreeAgents drops listings that have sat unclaimed for over a month.
func PruneFreeAgents(db *gorm.DB) error {
	cutoff := time.Now().Add(-listingMaxAge)
	result := db.Unscoped().Where("listed_at < ?", cutoff).Delete(&models.FreeAgentListing{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		log.Info().Int64("removed", result.RowsAffected).Msg("pruned stale free-agent listings")
	}
	return nil
}
