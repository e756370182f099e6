package teamService

import (
	"fmt"
	"testing"

	"github.com/bwmarrin/discordgo"
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
	if err := db.AutoMigrate(&models.Team{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestUpsertTeamOverwrites(t *testing.T) {
	db := newTestDB(t)

	if err := UpsertTeam(db, "guild1", "role-overwrite", "🦅", 20); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	if err := UpsertTeam(db, "guild1", "role-overwrite", "🦈", 12); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	var count int64
	db.Model(&models.Team{}).Where("team_role_id = ?", "role-overwrite").Count(&count)
	if count != 1 {
		t.Fatalf("expected re-registration to overwrite, got %d rows", count)
	}

	team, err := GetTeam(db, "role-overwrite")
	if err != nil {
		t.Fatalf("GetTeam failed: %v", err)
	}
	if team == nil {
		t.Fatal("expected team to exist")
	}
	if team.Logo != "🦈" || team.RosterLimit != 12 {
		t.Errorf("expected overwritten fields, got logo=%s limit=%d", team.Logo, team.RosterLimit)
	}
}

func TestUpsertTeamKeepsCardBackground(t *testing.T) {
	db := newTestDB(t)

	if err := UpsertTeam(db, "guild1", "role-bg", "🦅", 20); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	bg := "https://example.com/bg.png"
	err := db.Model(&models.Team{}).
		Where("team_role_id = ?", "role-bg").
		Update("card_background", bg).Error
	if err != nil {
		t.Fatalf("failed to set background: %v", err)
	}
	InvalidateTeam("role-bg")

	// Re-registering the team must not clobber the custom background.
	if err := UpsertTeam(db, "guild1", "role-bg", "🦅", 25); err != nil {
		t.Fatalf("re-upsert failed: %v", err)
	}

	team, err := GetTeam(db, "role-bg")
	if err != nil {
		t.Fatalf("GetTeam failed: %v", err)
	}
	if team.CardBackground == nil || *team.CardBackground != bg {
		t.Errorf("expected background preserved, got %v", team.CardBackground)
	}
}

func TestGetTeamUnknownRole(t *testing.T) {
	db := newTestDB(t)

	team, err := GetTeam(db, "role-unknown")
	if err != nil {
		t.Fatalf("GetTeam failed: %v", err)
	}
	if team != nil {
		t.Errorf("expected nil for an unregistered role, got %+v", team)
	}
}

func TestFindMemberTeamPropagatesErrors(t *testing.T) {
	db := newTestDB(t)
	if err := db.Migrator().DropTable(&models.Team{}); err != nil {
		t.Fatalf("failed to drop table: %v", err)
	}

	// A transient query failure must surface, not read as "teamless".
	member := &discordgo.Member{Roles: []string{"role-errprop"}}
	if _, err := FindMemberTeam(db, member); err == nil {
		t.Error("expected the query failure to propagate")
	}
}

func TestGetTeamUsesCache(t *testing.T) {
	db := newTestDB(t)

	if err := UpsertTeam(db, "guild1", "role-cached", "🦅", 20); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if _, err := GetTeam(db, "role-cached"); err != nil {
		t.Fatalf("GetTeam failed: %v", err)
	}

	// Delete behind the cache's back; the stale read proves the cache path.
	db.Where("team_role_id = ?", "role-cached").Delete(&models.Team{})

	team, err := GetTeam(db, "role-cached")
	if err != nil {
		t.Fatalf("GetTeam failed: %v", err)
	}
	if team == nil {
		t.Fatal("expected cached team despite deletion")
	}

	InvalidateTeam("role-cached")
	team, err = GetTeam(db, "role-cached")
	if err != nil {
		t.Fatalf("GetTeam failed: %v", err)
	}
	if team != nil {
		t.Error("expected nil after invalidation")
	}
}
