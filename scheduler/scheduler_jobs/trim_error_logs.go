package scheduler_jobs

import (
	"time"

	"gorm.io/gorm"

	"proximaBot/models"
)

const errorLogMaxAge = 90 * 24 * time.Hour

// TrimErrorLogs keeps the error table from growing without bound.
func TrimErrorLogs(db *gorm.DB) error {
	cutoff := time.Now().Add(-errorLogMaxAge)
	return db.Unscoped().Where("created_at < ?", cutoff).Delete(&models.ErrorLog{}).Error
}
