package display

import (
	"setgame-server/pkg/deck"
	"time"
)

// Display receives notifications about the table
// Every call is fire-and-forget: implementations must return quickly and must not
// call back into the game.
type Display interface {
	PlaceCard(card deck.Card, slot int)
	RemoveCard(slot int)
	PlaceClaim(playerID, slot int)
	RemoveClaim(playerID, slot int)
	// RemoveClaims removes every claim on the slot
	RemoveClaims(slot int)
	// SetCountdown sets the time left in the round; warn is true inside the warning window
	SetCountdown(remaining time.Duration, warn bool)
	// SetFreeze sets how long the player is frozen for; 0 means the player is free
	SetFreeze(playerID int, remaining time.Duration)
	SetScore(playerID, score int)
	AnnounceWinners(playerIDs []int)
}

// Nop is a display that discards everything
type Nop struct{}

var _ Display = Nop{}

// PlaceCard does nothing
func (Nop) PlaceCard(deck.Card, int) {}

// RemoveCard does nothing
func (Nop) RemoveCard(int) {}

// PlaceClaim does nothing
func (Nop) PlaceClaim(int, int) {}

// RemoveClaim does nothing
func (Nop) RemoveClaim(int, int) {}

// RemoveClaims does nothing
func (Nop) RemoveClaims(int) {}

// SetCountdown does nothing
func (Nop) SetCountdown(time.Duration, bool) {}

// SetFreeze does nothing
func (Nop) SetFreeze(int, time.Duration) {}

// SetScore does nothing
func (Nop) SetScore(int, int) {}

// AnnounceWinners does nothing
func (Nop) AnnounceWinners([]int) {}

// Multi fans every notification out to each display in order
type Multi []Display

var _ Display = Multi{}

// PlaceCard notifies every display
func (m Multi) PlaceCard(card deck.Card, slot int) {
	for _, d := range m {
		d.PlaceCard(card, slot)
	}
}

// RemoveCard notifies every display
func (m Multi) RemoveCard(slot int) {
	for _, d := range m {
		d.RemoveCard(slot)
	}
}

// PlaceClaim notifies every display
func (m Multi) PlaceClaim(playerID, slot int) {
	for _, d := range m {
		d.PlaceClaim(playerID, slot)
	}
}

// RemoveClaim notifies every display
func (m Multi) RemoveClaim(playerID, slot int) {
	for _, d := range m {
		d.RemoveClaim(playerID, slot)
	}
}

// RemoveClaims notifies every display
func (m Multi) RemoveClaims(slot int) {
	for _, d := range m {
		d.RemoveClaims(slot)
	}
}

// SetCountdown notifies every display
func (m Multi) SetCountdown(remaining time.Duration, warn bool) {
	for _, d := range m {
		d.SetCountdown(remaining, warn)
	}
}

// SetFreeze notifies every display
func (m Multi) SetFreeze(playerID int, remaining time.Duration) {
	for _, d := range m {
		d.SetFreeze(playerID, remaining)
	}
}

// SetScore notifies every display
func (m Multi) SetScore(playerID, score int) {
	for _, d := range m {
		d.SetScore(playerID, score)
	}
}

// AnnounceWinners notifies every display
func (m Multi) AnnounceWinners(playerIDs []int) {
	for _, d := range m {
		d.AnnounceWinners(playerIDs)
	}
}
