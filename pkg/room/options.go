package room

import (
	"errors"
	"time"
)

// Options provides options for the dealer
type Options struct {
	// TurnTimeout is how long a round lasts without a confirmed match
	TurnTimeout time.Duration
	// TurnTimeoutWarning is the window at the end of a round where the countdown is in a warning state
	TurnTimeoutWarning time.Duration
	// PointFreeze is how long a player is frozen for after a match
	PointFreeze time.Duration
	// PenaltyFreeze is how long a player is frozen for after a wrong guess
	PenaltyFreeze time.Duration
	// TableSize is the number of slots on the table
	TableSize int
	// DeckSize is the number of cards in the deck
	DeckSize int
	// Hints will log the matches on the table after every deal
	Hints bool
}

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		TurnTimeout:        time.Minute,
		TurnTimeoutWarning: 5 * time.Second,
		PointFreeze:        time.Second,
		PenaltyFreeze:      3 * time.Second,
		TableSize:          12,
		DeckSize:           81,
	}
}

func (o Options) validate() error {
	if o.TurnTimeout <= 0 {
		return errors.New("turn timeout must be greater than 0")
	}

	if o.TableSize < 3 {
		return errors.New("table must have at least three slots")
	}

	if o.DeckSize < 0 {
		return errors.New("deck size cannot be negative")
	}

	if o.PointFreeze < 0 || o.PenaltyFreeze < 0 {
		return errors.New("freeze cannot be negative")
	}

	return nil
}
