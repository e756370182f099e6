package statsService

import (
	"fmt"
	"testing"

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
	if err := db.AutoMigrate(&models.PlayerStats{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestGetStatsCreatesLazily(t *testing.T) {
	db := newTestDB(t)

	stats, err := GetStats(db, "user1")
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.Transfers != 0 || stats.Demands != 0 {
		t.Errorf("expected zeroed counters, got transfers=%d demands=%d", stats.Transfers, stats.Demands)
	}

	// A second read must reuse the row, not create another.
	if _, err := GetStats(db, "user1"); err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}

	var count int64
	db.Model(&models.PlayerStats{}).Where("user_id = ?", "user1").Count(&count)
	if count != 1 {
		t.Errorf("expected 1 stats row, got %d", count)
	}
}

func TestIncrementTransfers(t *testing.T) {
	db := newTestDB(t)

	if err := IncrementTransfers(db, "user2"); err != nil {
		t.Fatalf("IncrementTransfers failed: %v", err)
	}
	if err := IncrementTransfers(db, "user2"); err != nil {
		t.Fatalf("IncrementTransfers failed: %v", err)
	}

	stats, err := GetStats(db, "user2")
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.Transfers != 2 {
		t.Errorf("expected 2 transfers, got %d", stats.Transfers)
	}
	if stats.Demands != 0 {
		t.Errorf("expected demands untouched, got %d", stats.Demands)
	}
}

func TestIncrementDemands(t *testing.T) {
	db := newTestDB(t)

	for n := 0; n < 3; n++ {
		if err := IncrementDemands(db, "user3"); err != nil {
			t.Fatalf("IncrementDemands failed: %v", err)
		}
	}

	stats, err := GetStats(db, "user3")
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.Demands != 3 {
		t.Errorf("expected 3 demands, got %d", stats.Demands)
	}
	if stats.Transfers != 0 {
		t.Errorf("expected transfers untouched, got %d", stats.Transfers)
	}
}
