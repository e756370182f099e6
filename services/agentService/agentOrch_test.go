package agentService

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"proximaBot/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.FreeAgentListing{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestUpsertListingReplacesOnRepost(t *testing.T) {
	db := newTestDB(t)

	first := models.FreeAgentListing{
		UserID:      "user1",
		GuildID:     "guild1",
		Region:      "EU",
		Position:    "ST",
		Description: "fast striker",
		ListedAt:    time.Now().Add(-time.Hour),
	}
	if err := UpsertListing(db, &first); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}

	second := models.FreeAgentListing{
		UserID:      "user1",
		GuildID:     "guild1",
		Region:      "NA",
		Position:    "GK",
		Description: "switched to keeper",
		ListedAt:    time.Now(),
	}
	if err := UpsertListing(db, &second); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	var count int64
	db.Model(&models.FreeAgentListing{}).
		Where("user_id = ? AND guild_id = ?", "user1", "guild1").
		Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 listing after re-post, got %d", count)
	}

	var got models.FreeAgentListing
	if err := db.Where("user_id = ? AND guild_id = ?", "user1", "guild1").First(&got).Error; err != nil {
		t.Fatalf("failed to read listing: %v", err)
	}
	if got.Region != "NA" || got.Position != "GK" || got.Description != "switched to keeper" {
		t.Errorf("expected replaced fields, got %+v", got)
	}
}

func TestUpsertListingSeparateGuilds(t *testing.T) {
	db := newTestDB(t)

	for _, guild := range []string{"guildA", "guildB"} {
		listing := models.FreeAgentListing{
			UserID:      "user1",
			GuildID:     guild,
			Region:      "EU",
			Position:    "MF",
			Description: "box to box",
			ListedAt:    time.Now(),
		}
		if err := UpsertListing(db, &listing); err != nil {
			t.Fatalf("upsert for %s failed: %v", guild, err)
		}
	}

	var count int64
	db.Model(&models.FreeAgentListing{}).Where("user_id = ?", "user1").Count(&count)
	if count != 2 {
		t.Errorf("expected listings to be per-guild, got %d rows", count)
	}
}
