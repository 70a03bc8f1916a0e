package table

import (
	"setgame-server/pkg/deck"
	"sort"
	"sync"
)

// MaxClaims is how many claims a player may hold at once
// Holding MaxClaims claims makes a candidate match
const MaxClaims = 3

// ClaimAction is the result of toggling a claim
type ClaimAction int

// claim action constants
const (
	// ClaimIgnored means nothing changed
	ClaimIgnored ClaimAction = iota
	// ClaimPlaced means a claim was added to the slot
	ClaimPlaced
	// ClaimRemoved means the player's claim on the slot was withdrawn
	ClaimRemoved
)

func (c ClaimAction) String() string {
	switch c {
	case ClaimPlaced:
		return "placed"
	case ClaimRemoved:
		return "removed"
	default:
		return "ignored"
	}
}

// Claim is a player's marker on a slot, along with the card that was on the slot when claimed
type Claim struct {
	Slot int       `json:"slot"`
	Card deck.Card `json:"card"`
}

// ClaimObserver is told about claim changes while the board is locked,
// so it sees them in the order the board applied them
type ClaimObserver interface {
	PlaceClaim(playerID, slot int)
	RemoveClaim(playerID, slot int)
	RemoveClaims(slot int)
}

// Board is the shared table of face-up cards
//
// A single lock guards the slot/card mapping and both directions of the claims,
// so removing a card and placing a claim on its slot can never interleave.
type Board struct {
	mu sync.Mutex

	slotToCard     []deck.Card
	cardToSlot     map[deck.Card]int
	claimsOnSlot   []map[int]bool
	claimsByPlayer map[int][]int

	observer ClaimObserver
}

// NewBoard returns an empty board with size slots
// observer may be nil
func NewBoard(size int, observer ClaimObserver) *Board {
	b := &Board{
		observer:       observer,
		slotToCard:     make([]deck.Card, size),
		cardToSlot:     make(map[deck.Card]int),
		claimsOnSlot:   make([]map[int]bool, size),
		claimsByPlayer: make(map[int][]int),
	}

	for i := range b.slotToCard {
		b.slotToCard[i] = deck.NoCard
		b.claimsOnSlot[i] = make(map[int]bool)
	}

	return b
}

// Size returns the number of slots
func (b *Board) Size() int {
	return len(b.slotToCard)
}

func (b *Board) validSlot(slot int) bool {
	return slot >= 0 && slot < len(b.slotToCard)
}

// PlaceCard puts card on an empty slot
func (b *Board) PlaceCard(card deck.Card, slot int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.validSlot(slot) {
		return ErrInvalidSlot
	}

	if b.slotToCard[slot] != deck.NoCard {
		return ErrSlotOccupied
	}

	if _, found := b.cardToSlot[card]; found {
		return ErrCardOnTable
	}

	b.slotToCard[slot] = card
	b.cardToSlot[card] = slot

	return nil
}

// RemoveCard takes the card off of slot and clears every claim on the slot
// The IDs of the players that lost a claim are returned in ascending order
func (b *Board) RemoveCard(slot int) (deck.Card, []int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.validSlot(slot) {
		return deck.NoCard, nil, ErrInvalidSlot
	}

	card := b.slotToCard[slot]
	if card == deck.NoCard {
		return deck.NoCard, nil, ErrSlotEmpty
	}

	b.slotToCard[slot] = deck.NoCard
	delete(b.cardToSlot, card)

	playerIDs := make([]int, 0, len(b.claimsOnSlot[slot]))
	for playerID := range b.claimsOnSlot[slot] {
		playerIDs = append(playerIDs, playerID)
		b.claimsByPlayer[playerID] = removeInt(b.claimsByPlayer[playerID], slot)
	}

	b.claimsOnSlot[slot] = make(map[int]bool)
	sort.Ints(playerIDs)

	if len(playerIDs) > 0 && b.observer != nil {
		b.observer.RemoveClaims(slot)
	}

	return card, playerIDs, nil
}

// CardAt returns the card on the slot, or NoCard
func (b *Board) CardAt(slot int) deck.Card {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.validSlot(slot) {
		return deck.NoCard
	}

	return b.slotToCard[slot]
}

// SlotOf returns the slot the card is on
func (b *Board) SlotOf(card deck.Card) (int, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	slot, found := b.cardToSlot[card]
	return slot, found
}

// CountOccupied returns how many slots have a card
func (b *Board) CountOccupied() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.cardToSlot)
}

// EmptySlots returns the empty slots in ascending order
func (b *Board) EmptySlots() []int {
	b.mu.Lock()
	defer b.mu.Unlock()

	slots := make([]int, 0, len(b.slotToCard)-len(b.cardToSlot))
	for slot, card := range b.slotToCard {
		if card == deck.NoCard {
			slots = append(slots, slot)
		}
	}

	return slots
}

// Slots returns a copy of the slots; empty slots hold NoCard
func (b *Board) Slots() []deck.Card {
	b.mu.Lock()
	defer b.mu.Unlock()

	slots := make([]deck.Card, len(b.slotToCard))
	copy(slots, b.slotToCard)

	return slots
}

// Cards returns the cards on the table in slot order
func (b *Board) Cards() []deck.Card {
	b.mu.Lock()
	defer b.mu.Unlock()

	cards := make([]deck.Card, 0, len(b.cardToSlot))
	for _, card := range b.slotToCard {
		if card != deck.NoCard {
			cards = append(cards, card)
		}
	}

	return cards
}

// ToggleClaim places or withdraws playerID's claim on slot
//
// A claim on a slot the player already claimed is withdrawn. Otherwise a claim is placed,
// unless the slot is empty or the player already holds MaxClaims claims.
// The player's claims after the toggle are returned in the order they were placed.
func (b *Board) ToggleClaim(playerID, slot int) (ClaimAction, []Claim) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.validSlot(slot) || b.slotToCard[slot] == deck.NoCard {
		return ClaimIgnored, b.claimsLocked(playerID)
	}

	if b.claimsOnSlot[slot][playerID] {
		delete(b.claimsOnSlot[slot], playerID)
		b.claimsByPlayer[playerID] = removeInt(b.claimsByPlayer[playerID], slot)
		if b.observer != nil {
			b.observer.RemoveClaim(playerID, slot)
		}

		return ClaimRemoved, b.claimsLocked(playerID)
	}

	if len(b.claimsByPlayer[playerID]) >= MaxClaims {
		return ClaimIgnored, b.claimsLocked(playerID)
	}

	b.claimsOnSlot[slot][playerID] = true
	b.claimsByPlayer[playerID] = append(b.claimsByPlayer[playerID], slot)
	if b.observer != nil {
		b.observer.PlaceClaim(playerID, slot)
	}

	return ClaimPlaced, b.claimsLocked(playerID)
}

// Claims returns the player's claims in the order they were placed
func (b *Board) Claims(playerID int) []Claim {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.claimsLocked(playerID)
}

func (b *Board) claimsLocked(playerID int) []Claim {
	slots := b.claimsByPlayer[playerID]
	claims := make([]Claim, len(slots))
	for i, slot := range slots {
		claims[i] = Claim{Slot: slot, Card: b.slotToCard[slot]}
	}

	return claims
}

// ClaimsOn returns the IDs of the players with a claim on slot in ascending order
func (b *Board) ClaimsOn(slot int) []int {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.validSlot(slot) {
		return nil
	}

	playerIDs := make([]int, 0, len(b.claimsOnSlot[slot]))
	for playerID := range b.claimsOnSlot[slot] {
		playerIDs = append(playerIDs, playerID)
	}

	sort.Ints(playerIDs)
	return playerIDs
}

// Holds returns true if every claim is still on the table: the slot holds the same card,
// and the player's claim is still on the slot
func (b *Board) Holds(playerID int, claims []Claim) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, claim := range claims {
		if !b.validSlot(claim.Slot) {
			return false
		}

		if b.slotToCard[claim.Slot] != claim.Card || !b.claimsOnSlot[claim.Slot][playerID] {
			return false
		}
	}

	return true
}

func removeInt(ints []int, v int) []int {
	for i, val := range ints {
		if val == v {
			return append(ints[:i:i], ints[i+1:]...)
		}
	}

	return ints
}
