package room

import (
	"context"
	"io"
	"setgame-server/internal/rng"
	"setgame-server/pkg/deck"
	"setgame-server/pkg/display"
	"setgame-server/pkg/playable"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func testOptions() Options {
	return Options{
		TurnTimeout:        time.Second,
		TurnTimeoutWarning: 100 * time.Millisecond,
		PointFreeze:        50 * time.Millisecond,
		PenaltyFreeze:      300 * time.Millisecond,
		TableSize:          12,
		DeckSize:           81,
	}
}

func testLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestDealer(t *testing.T, opts Options, verifier playable.Verifier) (*Dealer, *display.Recorder) {
	t.Helper()

	if verifier == nil {
		verifier = playable.NewSetRule(deck.StandardLayout)
	}

	rec := &display.Recorder{}
	d, err := NewDealer(opts, verifier, rng.NewSeeded(1), rec, testLogger())
	assert.NoError(t, err)

	return d, rec
}

func card(features ...int) deck.Card {
	return deck.StandardLayout.CardFromFeatures(features)
}

// layTable puts onTable on the table slot by slot and replaces the deck with rest
func layTable(d *Dealer, onTable []deck.Card, rest []deck.Card) {
	for slot, c := range onTable {
		if c == deck.NoCard {
			continue
		}

		if err := d.board.PlaceCard(c, slot); err != nil {
			panic(err)
		}
	}

	d.deck = deck.NewFromCards(rest, d.rng)
}

// capSet returns n cards of the standard deck with no match among them
func capSet(n int) []deck.Card {
	rule := playable.NewSetRule(deck.StandardLayout)
	cards := make([]deck.Card, 0, n)
	for c := deck.Card(0); c < 81 && len(cards) < n; c++ {
		if !playable.HasMatch(rule, append(append([]deck.Card{}, cards...), c)) {
			cards = append(cards, c)
		}
	}

	if len(cards) < n {
		panic("could not build cap set")
	}

	return cards
}

// the cards on slots 2, 5 and 9 form a match
var matchTable = []deck.Card{1, 2, card(0, 0, 0, 0), 3, 4, card(1, 1, 1, 1), 5, 6, 7, card(2, 2, 2, 2), 8, 9}

// runPress presses slot in the background and returns a channel closed once the press is fully handled
func runPress(p *Player, slot int) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		p.handleKeyPress(context.Background(), slot)
	}()

	return done
}

func waitFor(t *testing.T, ch <-chan struct{}, timeout time.Duration) bool {
	t.Helper()

	select {
	case <-ch:
		return true
	case <-time.After(timeout):
		t.Errorf("timed out after %s", timeout)
		return false
	}
}
