package room

import (
	"context"
	"fmt"
	"setgame-server/internal/rng"
	"setgame-server/internal/util"
	"setgame-server/pkg/deck"
	"setgame-server/pkg/display"
	"setgame-server/pkg/playable"
	"setgame-server/pkg/table"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// how long the timer loop sleeps for
const (
	coarseQuantum = time.Second
	fineQuantum   = 10 * time.Millisecond
)

// Results are the final scores of a game
type Results struct {
	// Scores maps player ID to score
	Scores map[int]int `json:"scores"`
	// Winners are the IDs of every player with the top score
	Winners []int `json:"winners"`
}

// Dealer is responsible for running the game
// The dealer is the only one that places or removes cards, and the only one that judges requests
type Dealer struct {
	UUID string

	options  Options
	board    *table.Board
	deck     *deck.Deck
	verifier playable.Verifier
	display  display.Display
	rng      rng.Generator
	logger   logrus.FieldLogger

	players  []*Player
	requests *requestQueue
	clock    *turnClock

	round   int
	running bool
}

// NewDealer creates a new dealer with a fresh deck
func NewDealer(options Options, verifier playable.Verifier, gen rng.Generator, disp display.Display, logger logrus.FieldLogger) (*Dealer, error) {
	if err := options.validate(); err != nil {
		return nil, err
	}

	if sized, ok := verifier.(playable.SizedVerifier); ok && options.DeckSize > sized.DeckSize() {
		return nil, fmt.Errorf("deck size cannot be more than %d cards", sized.DeckSize())
	}

	if disp == nil {
		disp = display.Nop{}
	}

	id := util.NewGameID()
	d := &Dealer{
		UUID:     id,
		options:  options,
		board:    table.NewBoard(options.TableSize, disp),
		deck:     deck.New(options.DeckSize, gen),
		verifier: verifier,
		display:  disp,
		rng:      gen,
		logger:   logger.WithField("uuid", id),
		requests: newRequestQueue(),
		clock:    &turnClock{},
	}

	return d, nil
}

// AddPlayer seats a new player at the table
// Players must be added before Run() is called
func (d *Dealer) AddPlayer(name string, human bool, thinkDelay time.Duration) *Player {
	if d.running {
		panic("cannot add a player to a running game")
	}

	p := newPlayer(len(d.players), name, human)
	p.board = d.board
	p.dealer = d
	p.display = d.display
	p.rng = d.rng
	p.thinkDelay = thinkDelay
	p.logger = d.logger.WithFields(logrus.Fields{
		"player": p.ID,
		"name":   name,
	})

	d.players = append(d.players, p)
	return p
}

// Players returns the players in ID order
func (d *Dealer) Players() []*Player {
	players := make([]*Player, len(d.players))
	copy(players, d.players)

	return players
}

// Board returns the table
func (d *Dealer) Board() *table.Board {
	return d.board
}

// Deadline returns when the current round times out
func (d *Dealer) Deadline() time.Time {
	return d.clock.get()
}

// Run plays the game until there are no more matches or ctx is done
// Every player goroutine has returned by the time Run returns
func (d *Dealer) Run(ctx context.Context) *Results {
	d.running = true
	d.logger.Info("dealer starting")
	defer d.logger.Info("dealer terminated")

	playerCtx, stopPlayers := context.WithCancel(ctx)
	defer stopPlayers()

	var wg sync.WaitGroup
	started := false
	for {
		d.round++
		d.dealRound()

		if !started {
			for _, p := range d.players {
				p.start(playerCtx, &wg)
			}

			started = true
		}

		d.runTimer(ctx)
		d.endRound()

		if d.shouldEndGame(ctx) {
			break
		}
	}

	stopPlayers()
	wg.Wait()

	return d.announceWinners()
}

// submit queues a request for the dealer
// NOTE: called from the player goroutines
func (d *Dealer) submit(r *Request) {
	d.logger.WithFields(logrus.Fields{
		"player": r.PlayerID,
		"slots":  r.Slots(),
	}).Debug("request submitted")

	d.requests.push(r)
}

// dealRound fills every empty slot with a random card from the deck
func (d *Dealer) dealRound() {
	slots := d.board.EmptySlots()
	rng.Shuffle(d.rng, slots)

	for _, slot := range slots {
		card, err := d.deck.Draw()
		if err != nil {
			break
		}

		if err := d.board.PlaceCard(card, slot); err != nil {
			d.logger.WithError(err).WithField("slot", slot).Error("could not place card")
			d.deck.Return(card)
			continue
		}

		d.display.PlaceCard(card, slot)
	}

	if d.options.Hints {
		d.logHints()
	}
}

func (d *Dealer) logHints() {
	for _, match := range playable.FindMatches(d.verifier, d.board.Cards(), 0) {
		slots := make([]int, 0, len(match))
		for _, card := range match {
			slot, _ := d.board.SlotOf(card)
			slots = append(slots, slot)
		}

		sort.Ints(slots)
		d.logger.WithField("slots", slots).Info("hint")
	}
}

// runTimer runs the round until the deadline or until ctx is done
// Requests are judged every time the loop wakes up
func (d *Dealer) runTimer(ctx context.Context) {
	log := d.logger.WithField("round", d.round)
	log.Debug("round starting")

	d.resetClock()
	for ctx.Err() == nil {
		remaining := d.clock.remaining()
		if remaining <= 0 {
			break
		}

		warn := remaining <= d.options.TurnTimeoutWarning
		d.display.SetCountdown(remaining, warn)
		d.sleepUntilWokenOrTimeout(ctx, remaining, warn)
		d.serviceRequests()
	}

	d.display.SetCountdown(0, d.options.TurnTimeoutWarning > 0)
	log.Debug("round over")
}

// sleepUntilWokenOrTimeout sleeps for one quantum, or less if a request arrives
// Far from the deadline the dealer wakes on whole seconds; inside the warning window it wakes often
func (d *Dealer) sleepUntilWokenOrTimeout(ctx context.Context, remaining time.Duration, warn bool) {
	quantum := remaining % coarseQuantum
	if quantum == 0 {
		quantum = coarseQuantum
	}

	if warn && quantum > fineQuantum {
		quantum = fineQuantum
	}

	// wake up in time to enter the warning window
	if !warn {
		if untilWarn := remaining - d.options.TurnTimeoutWarning; untilWarn > 0 && untilWarn < quantum {
			quantum = untilWarn
		}
	}

	t := time.NewTimer(quantum)
	defer t.Stop()

	select {
	case <-ctx.Done():
	case <-d.requests.wake:
	case <-t.C:
	}
}

func (d *Dealer) resetClock() {
	d.clock.reset(d.options.TurnTimeout)
	d.display.SetCountdown(d.options.TurnTimeout, false)
}

// serviceRequests judges every queued request in the order they were submitted
func (d *Dealer) serviceRequests() {
	for _, r := range d.requests.drain() {
		d.resolveRequest(r)
	}
}

func (d *Dealer) resolveRequest(r *Request) {
	if r.PlayerID < 0 || r.PlayerID >= len(d.players) {
		d.logger.WithField("player", r.PlayerID).Error("request from unknown player")
		return
	}

	p := d.players[r.PlayerID]
	log := d.logger.WithFields(logrus.Fields{
		"player": r.PlayerID,
		"slots":  r.Slots(),
	})

	if len(r.Claims) != table.MaxClaims || !d.board.Holds(r.PlayerID, r.Claims) {
		log.Debug("discarding stale request")
		p.resolve(OutcomeStale, 0)
		return
	}

	if !d.verifier.IsMatch(r.Claims[0].Card, r.Claims[1].Card, r.Claims[2].Card) {
		log.Debug("not a match")
		p.resolve(OutcomeNoMatch, d.options.PenaltyFreeze)
		return
	}

	log.Info("match")
	d.removeCards(r.Slots())
	d.dealRound()
	d.resetClock()
	p.resolve(OutcomeMatch, d.options.PointFreeze)
}

// removeCards takes the cards off of the slots for good
// Every claim on those slots is cleared, whoever placed it
func (d *Dealer) removeCards(slots []int) {
	for _, slot := range slots {
		card, playerIDs, err := d.board.RemoveCard(slot)
		if err != nil {
			d.logger.WithError(err).WithField("slot", slot).Error("could not remove card")
			continue
		}

		d.display.RemoveCard(slot)
		if len(playerIDs) > 0 {
			d.logger.WithFields(logrus.Fields{
				"slot":    slot,
				"card":    card.String(),
				"players": playerIDs,
			}).Debug("claims cleared")
		}
	}
}

// endRound returns every card on the table to the deck
// Any request still queued is now stale and is resolved as such
func (d *Dealer) endRound() {
	for slot := 0; slot < d.board.Size(); slot++ {
		card, _, err := d.board.RemoveCard(slot)
		if err != nil {
			continue
		}

		d.deck.Return(card)
		d.display.RemoveCard(slot)
	}

	d.serviceRequests()
}

// shouldEndGame returns true if ctx is done or if no match can be made from the cards left
func (d *Dealer) shouldEndGame(ctx context.Context) bool {
	if ctx.Err() != nil {
		return true
	}

	cards := append(d.deck.Cards(), d.board.Cards()...)
	return !playable.HasMatch(d.verifier, cards)
}

// announceWinners reports every player with the top score
func (d *Dealer) announceWinners() *Results {
	results := &Results{
		Scores:  make(map[int]int, len(d.players)),
		Winners: make([]int, 0),
	}

	top := 0
	for _, p := range d.players {
		score := p.Score()
		results.Scores[p.ID] = score
		if score > top {
			top = score
		}
	}

	for _, p := range d.players {
		if results.Scores[p.ID] == top {
			results.Winners = append(results.Winners, p.ID)
		}
	}

	d.logger.WithField("winners", results.Winners).Info("announcing winners")
	d.display.AnnounceWinners(results.Winners)

	return results
}

// turnClock is the round deadline
type turnClock struct {
	mu       sync.Mutex
	deadline time.Time
}

func (t *turnClock) reset(d time.Duration) {
	t.mu.Lock()
	t.deadline = time.Now().Add(d)
	t.mu.Unlock()
}

func (t *turnClock) get() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.deadline
}

func (t *turnClock) remaining() time.Duration {
	return time.Until(t.get())
}
