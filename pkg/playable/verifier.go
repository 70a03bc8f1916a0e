package playable

import (
	"setgame-server/pkg/deck"
)

// Verifier decides whether three cards form a match
// Implementations must be pure: the same cards always yield the same answer
type Verifier interface {
	IsMatch(c1, c2, c3 deck.Card) bool
}

// SizedVerifier is a Verifier that only tells apart a fixed number of cards
type SizedVerifier interface {
	Verifier
	DeckSize() int
}

// VerifierFunc adapts a function to a Verifier
type VerifierFunc func(c1, c2, c3 deck.Card) bool

// IsMatch calls f(c1, c2, c3)
func (f VerifierFunc) IsMatch(c1, c2, c3 deck.Card) bool {
	return f(c1, c2, c3)
}

// SetRule is the attribute rule: for every feature, the three cards must
// either all share the value, or all have different values
type SetRule struct {
	Layout deck.Layout
}

// NewSetRule returns a SetRule for the layout
func NewSetRule(layout deck.Layout) SetRule {
	return SetRule{Layout: layout}
}

// DeckSize returns the number of distinct cards in the layout
func (s SetRule) DeckSize() int {
	return s.Layout.Size()
}

// IsMatch returns true if the cards satisfy the rule
func (s SetRule) IsMatch(c1, c2, c3 deck.Card) bool {
	if c1 == c2 || c1 == c3 || c2 == c3 {
		return false
	}

	f1 := s.Layout.Features(c1)
	f2 := s.Layout.Features(c2)
	f3 := s.Layout.Features(c3)
	for i := range f1 {
		allSame := f1[i] == f2[i] && f2[i] == f3[i]
		allDifferent := f1[i] != f2[i] && f1[i] != f3[i] && f2[i] != f3[i]
		if !allSame && !allDifferent {
			return false
		}
	}

	return true
}

// Match is a triple of cards accepted by a Verifier
type Match [3]deck.Card

// FindMatches returns up to limit matches among cards
// If limit <= 0, all matches are returned
func FindMatches(v Verifier, cards []deck.Card, limit int) []Match {
	matches := make([]Match, 0)
	for i := 0; i < len(cards); i++ {
		for j := i + 1; j < len(cards); j++ {
			for k := j + 1; k < len(cards); k++ {
				if !v.IsMatch(cards[i], cards[j], cards[k]) {
					continue
				}

				matches = append(matches, Match{cards[i], cards[j], cards[k]})
				if limit > 0 && len(matches) >= limit {
					return matches
				}
			}
		}
	}

	return matches
}

// HasMatch returns true if any three of cards form a match
func HasMatch(v Verifier, cards []deck.Card) bool {
	return len(FindMatches(v, cards, 1)) > 0
}
