package room

import (
	"setgame-server/pkg/deck"
	"setgame-server/pkg/display"
	"setgame-server/pkg/playable"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Snapshot is the state of the table as seen by spectators
type Snapshot struct {
	Slots     []deck.Card   `json:"slots"`
	Claims    map[int][]int `json:"claims"`
	Scores    map[int]int   `json:"scores"`
	Frozen    map[int]int64 `json:"frozen"`
	Countdown int64         `json:"countdown"`
	Warn      bool          `json:"warn"`
	Winners   []int         `json:"winners"`
}

type cardEvent struct {
	Slot int       `json:"slot"`
	Card deck.Card `json:"card"`
}

type claimEvent struct {
	Slot     int `json:"slot"`
	PlayerID int `json:"playerId"`
}

type slotEvent struct {
	Slot int `json:"slot"`
}

type scoreEvent struct {
	PlayerID int `json:"playerId"`
	Score    int `json:"score"`
}

type freezeEvent struct {
	PlayerID int   `json:"playerId"`
	Frozen   int64 `json:"frozen"`
}

type countdownEvent struct {
	Remaining int64 `json:"remaining"`
	Warn      bool  `json:"warn"`
}

// Spectators is a display that mirrors the table to every connected client
// Newly connected clients first receive a snapshot of the table
type Spectators struct {
	lock    sync.RWMutex
	clients map[*Client]bool
	state   Snapshot

	lastCountdown int64
	logger        logrus.FieldLogger
}

var _ display.Display = &Spectators{}

// NewSpectators returns a spectator hub for a table with tableSize slots
func NewSpectators(tableSize int, logger logrus.FieldLogger) *Spectators {
	slots := make([]deck.Card, tableSize)
	for i := range slots {
		slots[i] = deck.NoCard
	}

	return &Spectators{
		clients: make(map[*Client]bool),
		state: Snapshot{
			Slots:   slots,
			Claims:  make(map[int][]int),
			Scores:  make(map[int]int),
			Frozen:  make(map[int]int64),
			Winners: make([]int, 0),
		},
		lastCountdown: -1,
		logger:        logger,
	}
}

// AddClient adds a client and sends it the current snapshot
func (s *Spectators) AddClient(client *Client) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.clients[client] = true
	client.Send(&playable.Response{
		Key:  "snapshot",
		Data: s.snapshotLocked(),
	})

	s.logger.WithField("client", client.String()).Debug("spectator connected")
}

// RemoveClient removes a client
func (s *Spectators) RemoveClient(client *Client) {
	s.lock.Lock()
	delete(s.clients, client)
	s.lock.Unlock()

	s.logger.WithField("client", client.String()).Debug("spectator disconnected")
}

// Count returns the number of connected clients
func (s *Spectators) Count() int {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return len(s.clients)
}

// Snapshot returns a copy of the current state
func (s *Spectators) Snapshot() Snapshot {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.snapshotLocked()
}

func (s *Spectators) snapshotLocked() Snapshot {
	snap := Snapshot{
		Slots:     make([]deck.Card, len(s.state.Slots)),
		Claims:    make(map[int][]int, len(s.state.Claims)),
		Scores:    make(map[int]int, len(s.state.Scores)),
		Frozen:    make(map[int]int64, len(s.state.Frozen)),
		Countdown: s.state.Countdown,
		Warn:      s.state.Warn,
		Winners:   make([]int, len(s.state.Winners)),
	}

	copy(snap.Slots, s.state.Slots)
	copy(snap.Winners, s.state.Winners)
	for slot, playerIDs := range s.state.Claims {
		snap.Claims[slot] = append([]int{}, playerIDs...)
	}

	for id, score := range s.state.Scores {
		snap.Scores[id] = score
	}

	for id, frozen := range s.state.Frozen {
		snap.Frozen[id] = frozen
	}

	return snap
}

// NOTE: must be called with the lock held
func (s *Spectators) broadcastLocked(key string, data interface{}) {
	res := &playable.Response{
		Key:  key,
		Data: data,
	}

	for client := range s.clients {
		if !client.Send(res) {
			s.logger.WithField("client", client.String()).Warn("spectator is not keeping up, dropped message")
		}
	}
}

func (s *Spectators) validSlot(slot int) bool {
	return slot >= 0 && slot < len(s.state.Slots)
}

// PlaceCard updates the slot and notifies the clients
func (s *Spectators) PlaceCard(card deck.Card, slot int) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.validSlot(slot) {
		s.state.Slots[slot] = card
	}

	s.broadcastLocked("placeCard", cardEvent{Slot: slot, Card: card})
}

// RemoveCard updates the slot and notifies the clients
func (s *Spectators) RemoveCard(slot int) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.validSlot(slot) {
		s.state.Slots[slot] = deck.NoCard
	}

	delete(s.state.Claims, slot)
	s.broadcastLocked("removeCard", slotEvent{Slot: slot})
}

// PlaceClaim updates the claims and notifies the clients
func (s *Spectators) PlaceClaim(playerID, slot int) {
	s.lock.Lock()
	defer s.lock.Unlock()

	claims := append(s.state.Claims[slot], playerID)
	sort.Ints(claims)
	s.state.Claims[slot] = claims

	s.broadcastLocked("placeClaim", claimEvent{Slot: slot, PlayerID: playerID})
}

// RemoveClaim updates the claims and notifies the clients
func (s *Spectators) RemoveClaim(playerID, slot int) {
	s.lock.Lock()
	defer s.lock.Unlock()

	claims := make([]int, 0, len(s.state.Claims[slot]))
	for _, id := range s.state.Claims[slot] {
		if id != playerID {
			claims = append(claims, id)
		}
	}

	if len(claims) == 0 {
		delete(s.state.Claims, slot)
	} else {
		s.state.Claims[slot] = claims
	}

	s.broadcastLocked("removeClaim", claimEvent{Slot: slot, PlayerID: playerID})
}

// RemoveClaims updates the claims and notifies the clients
func (s *Spectators) RemoveClaims(slot int) {
	s.lock.Lock()
	defer s.lock.Unlock()

	delete(s.state.Claims, slot)
	s.broadcastLocked("removeClaims", slotEvent{Slot: slot})
}

// SetCountdown notifies the clients when the displayed value changes
// Outside of the warning window the countdown is shown in whole seconds, inside it in tenths
func (s *Spectators) SetCountdown(remaining time.Duration, warn bool) {
	resolution := time.Second
	if warn {
		resolution = 100 * time.Millisecond
	}

	ms := remaining.Truncate(resolution).Milliseconds()

	s.lock.Lock()
	defer s.lock.Unlock()

	s.state.Countdown = remaining.Milliseconds()
	s.state.Warn = warn

	if ms == s.lastCountdown {
		return
	}

	s.lastCountdown = ms
	s.broadcastLocked("countdown", countdownEvent{Remaining: ms, Warn: warn})
}

// SetFreeze updates the player and notifies the clients
func (s *Spectators) SetFreeze(playerID int, remaining time.Duration) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if remaining <= 0 {
		delete(s.state.Frozen, playerID)
	} else {
		s.state.Frozen[playerID] = remaining.Milliseconds()
	}

	s.broadcastLocked("freeze", freezeEvent{PlayerID: playerID, Frozen: remaining.Milliseconds()})
}

// SetScore updates the player and notifies the clients
func (s *Spectators) SetScore(playerID, score int) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.state.Scores[playerID] = score
	s.broadcastLocked("score", scoreEvent{PlayerID: playerID, Score: score})
	s.broadcastLocked("log", playable.SimpleLogMessage(playerID, "player %d found a match (%d total)", playerID, score))
}

// AnnounceWinners notifies the clients that the game is over
func (s *Spectators) AnnounceWinners(playerIDs []int) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.state.Winners = append([]int{}, playerIDs...)
	s.broadcastLocked("gameEnded", s.state.Winners)
	s.broadcastLocked("log", playable.SimpleLogMessage(-1, "game over, winners: %v", playerIDs))
}
