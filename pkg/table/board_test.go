package table

import (
	"fmt"
	"setgame-server/pkg/deck"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func fullBoard() *Board {
	b := NewBoard(12, nil)
	for slot := 0; slot < 12; slot++ {
		if err := b.PlaceCard(deck.Card(slot+10), slot); err != nil {
			panic(err)
		}
	}

	return b
}

func TestBoard_PlaceCard(t *testing.T) {
	a := assert.New(t)

	b := NewBoard(12, nil)
	a.Equal(12, b.Size())
	a.Equal(0, b.CountOccupied())

	a.NoError(b.PlaceCard(5, 3))
	a.Equal(deck.Card(5), b.CardAt(3))
	slot, found := b.SlotOf(5)
	a.True(found)
	a.Equal(3, slot)

	a.Equal(ErrSlotOccupied, b.PlaceCard(6, 3))
	a.Equal(ErrCardOnTable, b.PlaceCard(5, 4))
	a.Equal(ErrInvalidSlot, b.PlaceCard(6, 12))
	a.Equal(ErrInvalidSlot, b.PlaceCard(6, -1))

	a.Equal(1, b.CountOccupied())
	a.Equal([]deck.Card{5}, b.Cards())
	a.Len(b.EmptySlots(), 11)
	a.NotContains(b.EmptySlots(), 3)
}

func TestBoard_RemoveCard(t *testing.T) {
	a := assert.New(t)

	b := fullBoard()
	b.ToggleClaim(1, 4)
	b.ToggleClaim(2, 4)
	b.ToggleClaim(2, 5)

	card, playerIDs, err := b.RemoveCard(4)
	a.NoError(err)
	a.Equal(deck.Card(14), card)
	a.Equal([]int{1, 2}, playerIDs)

	a.Equal(deck.NoCard, b.CardAt(4))
	_, found := b.SlotOf(14)
	a.False(found)
	a.Empty(b.ClaimsOn(4))
	a.Empty(b.Claims(1))
	a.Equal([]Claim{{Slot: 5, Card: 15}}, b.Claims(2))

	_, _, err = b.RemoveCard(4)
	a.Equal(ErrSlotEmpty, err)
	_, _, err = b.RemoveCard(40)
	a.Equal(ErrInvalidSlot, err)
}

func TestBoard_ToggleClaim(t *testing.T) {
	a := assert.New(t)

	b := fullBoard()

	action, claims := b.ToggleClaim(0, 2)
	a.Equal(ClaimPlaced, action)
	a.Equal([]Claim{{Slot: 2, Card: 12}}, claims)
	a.Equal([]int{0}, b.ClaimsOn(2))

	// toggling the same slot withdraws it and leaves no residue
	action, claims = b.ToggleClaim(0, 2)
	a.Equal(ClaimRemoved, action)
	a.Empty(claims)
	a.Empty(b.ClaimsOn(2))

	b.ToggleClaim(0, 9)
	b.ToggleClaim(0, 2)
	action, claims = b.ToggleClaim(0, 5)
	a.Equal(ClaimPlaced, action)
	a.Equal([]Claim{{9, 19}, {2, 12}, {5, 15}}, claims)

	// a fourth distinct slot is ignored
	action, claims = b.ToggleClaim(0, 7)
	a.Equal(ClaimIgnored, action)
	a.Len(claims, 3)
	a.Empty(b.ClaimsOn(7))

	// but a held slot can still be withdrawn
	action, claims = b.ToggleClaim(0, 2)
	a.Equal(ClaimRemoved, action)
	a.Equal([]Claim{{9, 19}, {5, 15}}, claims)

	// empty and invalid slots are ignored
	_, _, _ = b.RemoveCard(7)
	action, _ = b.ToggleClaim(0, 7)
	a.Equal(ClaimIgnored, action)
	action, _ = b.ToggleClaim(0, 12)
	a.Equal(ClaimIgnored, action)
}

func TestBoard_Holds(t *testing.T) {
	a := assert.New(t)

	b := fullBoard()
	b.ToggleClaim(3, 0)
	b.ToggleClaim(3, 1)
	_, claims := b.ToggleClaim(3, 2)
	a.True(b.Holds(3, claims))
	a.False(b.Holds(4, claims))

	// same slot, different card
	_, _, _ = b.RemoveCard(1)
	a.NoError(b.PlaceCard(50, 1))
	a.False(b.Holds(3, claims))

	a.False(b.Holds(3, []Claim{{Slot: 99, Card: 1}}))
}

func TestBoard_concurrentClaimsAndRemoval(t *testing.T) {
	a := assert.New(t)

	b := fullBoard()
	var wg sync.WaitGroup
	for playerID := 0; playerID < 4; playerID++ {
		wg.Add(1)
		go func(playerID int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				b.ToggleClaim(playerID, i%12)
			}
		}(playerID)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			slot := i % 12
			if card, _, err := b.RemoveCard(slot); err == nil {
				_ = b.PlaceCard(card, slot)
			}
		}
	}()

	wg.Wait()

	// claims stay consistent in both directions
	for playerID := 0; playerID < 4; playerID++ {
		claims := b.Claims(playerID)
		a.True(len(claims) <= MaxClaims)
		for _, claim := range claims {
			a.Contains(b.ClaimsOn(claim.Slot), playerID)
		}
	}

	for slot := 0; slot < 12; slot++ {
		for _, playerID := range b.ClaimsOn(slot) {
			found := false
			for _, claim := range b.Claims(playerID) {
				found = found || claim.Slot == slot
			}
			a.True(found)
		}
	}
}

func TestClaimAction_String(t *testing.T) {
	assert.Equal(t, "placed", ClaimPlaced.String())
	assert.Equal(t, "removed", ClaimRemoved.String())
	assert.Equal(t, "ignored", ClaimIgnored.String())
}

type claimLog []string

func (c *claimLog) PlaceClaim(playerID, slot int) {
	*c = append(*c, fmt.Sprintf("place %d %d", playerID, slot))
}

func (c *claimLog) RemoveClaim(playerID, slot int) {
	*c = append(*c, fmt.Sprintf("remove %d %d", playerID, slot))
}

func (c *claimLog) RemoveClaims(slot int) {
	*c = append(*c, fmt.Sprintf("clear %d", slot))
}

func TestBoard_observer(t *testing.T) {
	log := &claimLog{}
	b := NewBoard(3, log)
	_ = b.PlaceCard(0, 0)
	_ = b.PlaceCard(1, 1)

	b.ToggleClaim(1, 0)
	b.ToggleClaim(1, 0)
	b.ToggleClaim(1, 2)
	b.ToggleClaim(2, 1)
	_, _, _ = b.RemoveCard(1)
	// no claims, nothing to clear
	_, _, _ = b.RemoveCard(0)

	assert.Equal(t, claimLog{"place 1 0", "remove 1 0", "place 2 1", "clear 1"}, *log)
}
