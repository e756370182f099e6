package guildService

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"proximaBot/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock DB: %v", err)
	}

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, _ := gormDB.DB()
		sqlDB.Close()
	})
	return gormDB, mock
}

func configRow(guildID string, windowOpen bool, demandLimit int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "guild_id", "manager_role_id", "asst_role_id", "announce_channel_id", "free_agent_role_id", "window_open", "demand_limit"}).
		AddRow(1, guildID, "mgr", "asst", "chan", "fa", windowOpen, demandLimit)
}

func TestGetConfigCachesReads(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM `guild_configs`").
		WillReturnRows(configRow("guild-cache", true, 3))

	cfg, err := GetConfig(db, "guild-cache")
	if err != nil {
		t.Fatalf("GetConfig failed: %v", err)
	}
	if cfg == nil || cfg.ManagerRoleID != "mgr" {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	// Second read within the TTL must not touch the database: no further
	// expectations are registered.
	cfg, err = GetConfig(db, "guild-cache")
	if err != nil {
		t.Fatalf("cached GetConfig failed: %v", err)
	}
	if cfg == nil || cfg.ManagerRoleID != "mgr" {
		t.Fatalf("unexpected cached config: %+v", cfg)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetConfigCachesAbsence(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM `guild_configs`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	cfg, err := GetConfig(db, "guild-absent")
	if err != nil {
		t.Fatalf("GetConfig failed: %v", err)
	}
	if cfg != nil {
		t.Fatalf("expected nil for unconfigured guild, got %+v", cfg)
	}

	// Absence is cached too.
	if _, err := GetConfig(db, "guild-absent"); err != nil {
		t.Fatalf("cached GetConfig failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestInvalidateConfigForcesReread(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM `guild_configs`").
		WillReturnRows(configRow("guild-invalidate", true, 3))
	mock.ExpectQuery("SELECT (.+) FROM `guild_configs`").
		WillReturnRows(configRow("guild-invalidate", false, 3))

	if _, err := GetConfig(db, "guild-invalidate"); err != nil {
		t.Fatalf("GetConfig failed: %v", err)
	}

	InvalidateConfig("guild-invalidate")

	cfg, err := GetConfig(db, "guild-invalidate")
	if err != nil {
		t.Fatalf("GetConfig failed: %v", err)
	}
	if cfg.WindowOpen {
		t.Error("expected re-read to observe the updated window flag")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestIsWindowOpenDefaults(t *testing.T) {
	tests := []struct {
		name     string
		rows     *sqlmock.Rows
		expected bool
	}{
		{
			name:     "unconfigured guild defaults open",
			rows:     sqlmock.NewRows([]string{"id"}),
			expected: true,
		},
		{
			name:     "configured open",
			rows:     configRow("g", true, 3),
			expected: true,
		},
		{
			name:     "configured closed",
			rows:     configRow("g", false, 3),
			expected: false,
		},
	}

	for idx, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			mock.ExpectQuery("SELECT (.+) FROM `guild_configs`").WillReturnRows(tt.rows)

			// Unique guild per case so the shared cache can't interfere.
			guildID := tt.name + string(rune('a'+idx))
			if got := IsWindowOpen(db, guildID); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestGateWindow(t *testing.T) {
	tests := []struct {
		name    string
		rows    *sqlmock.Rows
		allowed bool
	}{
		{
			name:    "unconfigured guild is not gated",
			rows:    sqlmock.NewRows([]string{"id"}),
			allowed: true,
		},
		{
			name:    "open window passes",
			rows:    configRow("g", true, 3),
			allowed: true,
		},
		{
			name:    "closed window refuses with the shared message",
			rows:    configRow("g", false, 3),
			allowed: false,
		},
	}

	for idx, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			mock.ExpectQuery("SELECT (.+) FROM `guild_configs`").WillReturnRows(tt.rows)

			// Unique guild per case so the shared cache can't interfere.
			guildID := tt.name + string(rune('a'+idx))
			ok, msg := GateWindow(db, guildID)
			if ok != tt.allowed {
				t.Errorf("expected allowed=%v, got %v", tt.allowed, ok)
			}
			if tt.allowed && msg != "" {
				t.Errorf("expected no refusal message, got %q", msg)
			}
			if !tt.allowed && msg != WindowClosedMessage {
				t.Errorf("expected the shared refusal message, got %q", msg)
			}
		})
	}
}

func TestDemandLimit(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *models.GuildConfig
		expected int
	}{
		{name: "nil config uses default", cfg: nil, expected: 3},
		{name: "zero limit uses default", cfg: &models.GuildConfig{DemandLimit: 0}, expected: 3},
		{name: "negative limit uses default", cfg: &models.GuildConfig{DemandLimit: -1}, expected: 3},
		{name: "configured limit wins", cfg: &models.GuildConfig{DemandLimit: 5}, expected: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DemandLimit(tt.cfg); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}
