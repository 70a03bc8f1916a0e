package display

import (
	"setgame-server/pkg/deck"
	"sync"
	"time"
)

// Event is a single notification captured by a Recorder
type Event struct {
	Name      string
	PlayerID  int
	Slot      int
	Card      deck.Card
	Remaining time.Duration
	Warn      bool
	Score     int
	PlayerIDs []int
}

// event names
const (
	EventPlaceCard       = "placeCard"
	EventRemoveCard      = "removeCard"
	EventPlaceClaim      = "placeClaim"
	EventRemoveClaim     = "removeClaim"
	EventRemoveClaims    = "removeClaims"
	EventSetCountdown    = "setCountdown"
	EventSetFreeze       = "setFreeze"
	EventSetScore        = "setScore"
	EventAnnounceWinners = "announceWinners"
)

// Recorder keeps every notification it receives
// It is safe for concurrent use and is meant for tests
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

var _ Display = &Recorder{}

func (r *Recorder) add(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

// Events returns a copy of the recorded events
// If names are given, only events with those names are returned
func (r *Recorder) Events(names ...string) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	events := make([]Event, 0, len(r.events))
	for _, e := range r.events {
		if len(names) == 0 || containsString(names, e.Name) {
			events = append(events, e)
		}
	}

	return events
}

// Reset forgets every recorded event
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}

// PlaceCard records the event
func (r *Recorder) PlaceCard(card deck.Card, slot int) {
	r.add(Event{Name: EventPlaceCard, Card: card, Slot: slot})
}

// RemoveCard records the event
func (r *Recorder) RemoveCard(slot int) {
	r.add(Event{Name: EventRemoveCard, Slot: slot})
}

// PlaceClaim records the event
func (r *Recorder) PlaceClaim(playerID, slot int) {
	r.add(Event{Name: EventPlaceClaim, PlayerID: playerID, Slot: slot})
}

// RemoveClaim records the event
func (r *Recorder) RemoveClaim(playerID, slot int) {
	r.add(Event{Name: EventRemoveClaim, PlayerID: playerID, Slot: slot})
}

// RemoveClaims records the event
func (r *Recorder) RemoveClaims(slot int) {
	r.add(Event{Name: EventRemoveClaims, Slot: slot})
}

// SetCountdown records the event
func (r *Recorder) SetCountdown(remaining time.Duration, warn bool) {
	r.add(Event{Name: EventSetCountdown, Remaining: remaining, Warn: warn})
}

// SetFreeze records the event
func (r *Recorder) SetFreeze(playerID int, remaining time.Duration) {
	r.add(Event{Name: EventSetFreeze, PlayerID: playerID, Remaining: remaining})
}

// SetScore records the event
func (r *Recorder) SetScore(playerID, score int) {
	r.add(Event{Name: EventSetScore, PlayerID: playerID, Score: score})
}

// AnnounceWinners records the event
func (r *Recorder) AnnounceWinners(playerIDs []int) {
	ids := make([]int, len(playerIDs))
	copy(ids, playerIDs)
	r.add(Event{Name: EventAnnounceWinners, PlayerIDs: ids})
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}

	return false
}
