// Package reconcile tracks optimistic like/save state on the client side of
// the API. A toggle is shown immediately, flagged in flight so it cannot be
// resubmitted, then either confirmed with the server's authoritative answer
// or rolled back to the last confirmed state.
package reconcile

import (
	"sync"

	"github.com/google/uuid"
)

// State is the reconciliation phase of one post's toggle control.
type State int

const (
	// Idle: displayed state equals the last server-confirmed state.
	Idle State = iota
	// Speculative: a toggle was applied locally and is awaiting the server.
	Speculative
	// Confirmed: the server response overwrote the speculative state.
	Confirmed
	// RolledBack: the server failed and the speculative state was discarded.
	RolledBack
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Speculative:
		return "speculative"
	case Confirmed:
		return "confirmed"
	case RolledBack:
		return "rolled-back"
	}
	return "unknown"
}

// Entry is the displayed toggle state for one post.
type Entry struct {
	State State
	// Active and Count are what the UI shows right now.
	Active bool
	Count  int64
	// confirmedActive/confirmedCount are the fallback on rollback.
	confirmedActive bool
	confirmedCount  int64
	inFlight        bool
}

// Tracker reconciles optimistic toggle state per post.
type Tracker struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*Entry
}

func NewTracker() *Tracker {
	return &Tracker{entries: make(map[uuid.UUID]*Entry)}
}

// Seed records the server-confirmed state for a post, as delivered by a feed
// fetch. It resets any previous reconciliation state.
func (t *Tracker) Seed(postID uuid.UUID, active bool, count int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[postID] = &Entry{
		State:           Idle,
		Active:          active,
		Count:           count,
		confirmedActive: active,
		confirmedCount:  count,
	}
}

// Begin applies the speculative flip for a toggle: the displayed boolean is
// inverted and the displayed count adjusted by one from the *displayed*
// state, so it composes with a pending unconfirmed toggle. It returns false
// when the post is unknown or already in flight; the caller must not submit
// in that case.
func (t *Tracker) Begin(postID uuid.UUID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entries[postID]
	if !ok || e.inFlight {
		return false
	}

	e.Active = !e.Active
	if e.Active {
		e.Count++
	} else if e.Count > 0 {
		e.Count--
	}
	e.State = Speculative
	e.inFlight = true
	return true
}

// Confirm overwrites the speculative state with the server-reported flag and
// authoritative count, and clears the in-flight marker.
func (t *Tracker) Confirm(postID uuid.UUID, active bool, count int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entries[postID]
	if !ok {
		return
	}

	e.Active = active
	e.Count = count
	e.confirmedActive = active
	e.confirmedCount = count
	e.State = Confirmed
	e.inFlight = false
}

// Rollback discards the speculative state, reverting to the last confirmed
// state, and clears the in-flight marker so the control is re-triggerable.
func (t *Tracker) Rollback(postID uuid.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entries[postID]
	if !ok {
		return
	}

	e.Active = e.confirmedActive
	e.Count = e.confirmedCount
	e.State = RolledBack
	e.inFlight = false
}

// Get returns a snapshot of the displayed state for a post.
func (t *Tracker) Get(postID uuid.UUID) (Entry, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entries[postID]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// InFlight reports whether a toggle for the post is awaiting the server.
func (t *Tracker) InFlight(postID uuid.UUID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entries[postID]
	return ok && e.inFlight
}
