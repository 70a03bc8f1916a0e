package mux

import (
	"net/http/httptest"
	"setgame-server/pkg/deck"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGameHandler(t *testing.T) {
	a := assert.New(t)

	m, dealer, spectators := newTestMux(t)
	dealer.AddPlayer("Alice", true, 0)
	dealer.AddPlayer("Bot", false, time.Second)
	spectators.PlaceCard(40, 3)
	spectators.SetScore(1, 2)

	ts := httptest.NewServer(m)
	defer ts.Close()

	var resp gameResponse
	assertGet(t, ts, "/game", &resp, 200)

	a.Equal(dealer.UUID, resp.UUID)
	a.Equal([]playerResponse{
		{ID: 0, Name: "Alice", Human: true, State: "idle", Claims: []int{}},
		{ID: 1, Name: "Bot", Human: false, State: "idle", Claims: []int{}},
	}, resp.Players)
	a.Equal(12, len(resp.Table.Slots))
	a.Equal(deck.Card(40), resp.Table.Slots[3])
	a.Equal(deck.NoCard, resp.Table.Slots[0])
	a.Equal(map[int]int{1: 2}, resp.Table.Scores)
}
