package deck

import (
	"errors"
	"setgame-server/internal/rng"
)

// ErrEndOfDeck is an error when Draw() is attempted and there are no more cards
var ErrEndOfDeck = errors.New("end of deck reached")

// Deck holds the cards that are not on the table
// A deck is owned by the dealer and is not safe for concurrent use
type Deck struct {
	cards []Card
	rng   rng.Generator
}

// New returns a deck containing the cards 0..size-1
func New(size int, gen rng.Generator) *Deck {
	cards := make([]Card, size)
	for i := range cards {
		cards[i] = Card(i)
	}

	return &Deck{
		cards: cards,
		rng:   gen,
	}
}

// Draw removes a card chosen uniformly at random and returns it
// If there are no more cards, an ErrEndOfDeck is returned along with NoCard.
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return NoCard, ErrEndOfDeck
	}

	i := d.rng.Intn(len(d.cards))
	card := d.cards[i]

	last := len(d.cards) - 1
	d.cards[i] = d.cards[last]
	d.cards = d.cards[:last]

	return card, nil
}

// Return puts cards back into the deck
func (d *Deck) Return(cards ...Card) {
	d.cards = append(d.cards, cards...)
}

// CanDraw returns true if there are {want} cards left in the deck
func (d *Deck) CanDraw(want int) bool {
	return len(d.cards) >= want
}

// CardsLeft returns the number of cards left in the deck
func (d *Deck) CardsLeft() int {
	return len(d.cards)
}

// Cards returns a copy of the cards left in the deck
func (d *Deck) Cards() []Card {
	cards := make([]Card, len(d.cards))
	copy(cards, d.cards)

	return cards
}

// NewFromCards returns a deck holding exactly cards
func NewFromCards(cards []Card, gen rng.Generator) *Deck {
	d := &Deck{
		cards: make([]Card, len(cards)),
		rng:   gen,
	}

	copy(d.cards, cards)
	return d
}
