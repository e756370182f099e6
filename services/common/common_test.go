package common

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

func member(id string, roles ...string) *discordgo.Member {
	return &discordgo.Member{
		User:  &discordgo.User{ID: id},
		Roles: roles,
	}
}

func TestHasRole(t *testing.T) {
	m := member("u1", "r1", "r2")

	if !HasRole(m, "r1") {
		t.Error("expected member to have r1")
	}
	if HasRole(m, "r3") {
		t.Error("expected member to lack r3")
	}
	if HasRole(nil, "r1") {
		t.Error("expected nil member to have no roles")
	}
	if HasRole(m, "") {
		t.Error("expected empty role id to never match")
	}
}

func TestFormatRosterList(t *testing.T) {
	members := []*discordgo.Member{
		member("head", "team", "mgr"),
		member("assistant", "team", "asst"),
		member("both", "team", "mgr", "asst"),
		member("player", "team"),
	}

	got := FormatRosterList(members, "mgr", "asst")
	if len(got) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(got))
	}

	expected := []string{
		"<@head> **(TM)**",
		"<@assistant> **(AM)**",
		"<@both> **(TM)**", // manager tag wins over assistant
		"<@player>",
	}
	for idx, want := range expected {
		if got[idx] != want {
			t.Errorf("entry %d: expected %q, got %q", idx, want, got[idx])
		}
	}
}

func TestFormatRosterListEmpty(t *testing.T) {
	if got := FormatRosterList(nil, "mgr", "asst"); len(got) != 0 {
		t.Errorf("expected empty list, got %v", got)
	}
}

func TestGetUsernameFromUser(t *testing.T) {
	tests := []struct {
		name     string
		user     *discordgo.User
		expected string
	}{
		{name: "nil user", user: nil, expected: "Unknown User"},
		{name: "global name preferred", user: &discordgo.User{GlobalName: "Global", Username: "login"}, expected: "Global"},
		{name: "username fallback", user: &discordgo.User{Username: "login"}, expected: "login"},
		{name: "empty everything", user: &discordgo.User{}, expected: "Unknown User"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetUsernameFromUser(tt.user); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestInteractionUser(t *testing.T) {
	guildInteraction := &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Member: &discordgo.Member{User: &discordgo.User{ID: "in-guild"}},
		},
	}
	if got := InteractionUser(guildInteraction); got.ID != "in-guild" {
		t.Errorf("expected member user, got %v", got)
	}

	dmInteraction := &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			User: &discordgo.User{ID: "in-dm"},
		},
	}
	if got := InteractionUser(dmInteraction); got.ID != "in-dm" {
		t.Errorf("expected DM user, got %v", got)
	}
}
