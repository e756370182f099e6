package transferService

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const offerTTL = 24 * time.Hour

// Offer is a pending team-to-team transfer proposal. Offers live only in
// memory; a restart discards them.
type Offer struct {
	ID              string
	GuildID         string
	PlayerID        string
	FromRoleID      string // the player's current team
	ToRoleID        string // the proposing manager's team
	ProposerID      string
	TargetManagerID string
	Logo            string
	CreatedAt       time.Time

	resolved bool
}

type OfferStore struct {
	mu     sync.Mutex
	ttl    time.Duration
	offers map[string]*Offer
}

func NewOfferStore(ttl time.Duration) *OfferStore {
	return &OfferStore{
		ttl:    ttl,
		offers: make(map[string]*Offer),
	}
}

// Offers is the process-wide store backing the accept/decline buttons.
var Offers = NewOfferStore(offerTTL)

// Add stores the offer under a fresh id and returns it.
func (st *OfferStore) Add(o *Offer) string {
	st.mu.Lock()
	defer st.mu.Unlock()

	o.ID = uuid.NewString()
	o.CreatedAt = time.Now()
	st.offers[o.ID] = o
	return o.ID
}

// Peek returns a live offer without consuming it.
func (st *OfferStore) Peek(id string) (*Offer, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	o, ok := st.offers[id]
	if !ok || o.resolved || st.expired(o) {
		return nil, false
	}
	return o, true
}

// Resolve consumes an offer exactly once. A second click on either button,
// or a click on an expired offer, returns false.
func (st *OfferStore) Resolve(id string) (*Offer, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	o, ok := st.offers[id]
	if !ok || o.resolved || st.expired(o) {
		return nil, false
	}
	o.resolved = true
	delete(st.offers, id)
	return o, true
}

// Sweep drops expired and resolved offers, returning how many were removed.
func (st *OfferStore) Sweep() int {
	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for id, o := range st.offers {
		if o.resolved || st.expired(o) {
			delete(st.offers, id)
			removed++
		}
	}
	return removed
}

func (st *OfferStore) expired(o *Offer) bool {
	return time.Since(o.CreatedAt) > st.ttl
}
