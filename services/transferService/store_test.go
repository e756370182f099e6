package transferService

import (
	"testing"
	"time"
)

func newOffer() *Offer {
	return &Offer{
		GuildID:         "guild1",
		PlayerID:        "player1",
		FromRoleID:      "teamA",
		ToRoleID:        "teamB",
		ProposerID:      "manager1",
		TargetManagerID: "manager2",
	}
}

func TestAddAssignsID(t *testing.T) {
	st := NewOfferStore(time.Hour)

	id := st.Add(newOffer())
	if id == "" {
		t.Fatal("expected a non-empty offer id")
	}

	other := st.Add(newOffer())
	if other == id {
		t.Error("expected distinct ids for distinct offers")
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	st := NewOfferStore(time.Hour)
	id := st.Add(newOffer())

	if _, ok := st.Peek(id); !ok {
		t.Fatal("expected Peek to find a live offer")
	}
	if _, ok := st.Peek(id); !ok {
		t.Error("expected a second Peek to still find the offer")
	}
	if _, ok := st.Resolve(id); !ok {
		t.Error("expected Resolve to succeed after Peek")
	}
}

func TestResolveIsSingleUse(t *testing.T) {
	st := NewOfferStore(time.Hour)
	id := st.Add(newOffer())

	offer, ok := st.Resolve(id)
	if !ok {
		t.Fatal("expected first Resolve to succeed")
	}
	if offer.PlayerID != "player1" {
		t.Errorf("expected player1, got %s", offer.PlayerID)
	}

	if _, ok := st.Resolve(id); ok {
		t.Error("expected second Resolve to fail")
	}
	if _, ok := st.Peek(id); ok {
		t.Error("expected Peek to fail after Resolve")
	}
}

func TestResolveUnknownID(t *testing.T) {
	st := NewOfferStore(time.Hour)

	if _, ok := st.Resolve("not-an-id"); ok {
		t.Error("expected Resolve to fail for an unknown id")
	}
}

func TestExpiredOfferIsRefused(t *testing.T) {
	st := NewOfferStore(10 * time.Millisecond)
	id := st.Add(newOffer())

	time.Sleep(25 * time.Millisecond)

	if _, ok := st.Peek(id); ok {
		t.Error("expected Peek to fail after expiry")
	}
	if _, ok := st.Resolve(id); ok {
		t.Error("expected Resolve to fail after expiry")
	}
}

func TestSweep(t *testing.T) {
	st := NewOfferStore(time.Hour)

	live := st.Add(newOffer())
	stale := st.Add(newOffer())

	// Backdate the second offer past the TTL.
	st.mu.Lock()
	st.offers[stale].CreatedAt = time.Now().Add(-2 * time.Hour)
	st.mu.Unlock()

	if removed := st.Sweep(); removed != 1 {
		t.Errorf("expected 1 swept offer, got %d", removed)
	}
	if _, ok := st.Peek(live); !ok {
		t.Error("expected the live offer to survive the sweep")
	}
	if _, ok := st.Peek(stale); ok {
		t.Error("expected the stale offer to be gone")
	}
}
