package room

import (
	"context"
	"setgame-server/internal/rng"
	"setgame-server/pkg/display"
	"setgame-server/pkg/table"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// inputBufferSize is how many key presses a player can have pending
const inputBufferSize = table.MaxClaims

// idleThinkDelay is the least a computer player waits after a press that changed nothing
const idleThinkDelay = 10 * time.Millisecond

// PlayerState is where a player is in the claim cycle
type PlayerState int

// player states
const (
	StateIdle PlayerState = iota
	StateClaiming
	StateAwaiting
	StateFrozen
)

func (s PlayerState) String() string {
	switch s {
	case StateClaiming:
		return "claiming"
	case StateAwaiting:
		return "awaiting"
	case StateFrozen:
		return "frozen"
	default:
		return "idle"
	}
}

type blockState int

const (
	notBlocked blockState = iota
	blockedAwaiting
	blockedFrozen
)

// submitter accepts candidate matches
type submitter interface {
	submit(r *Request)
}

// Player is an agent at the table
// A human player is driven by KeyPressed(), a computer player drives itself
type Player struct {
	ID    int
	Name  string
	Human bool

	board   *table.Board
	dealer  submitter
	display display.Display
	rng     rng.Generator
	logger  logrus.FieldLogger

	// thinkDelay is how long a computer player waits between key presses
	thinkDelay time.Duration

	input   chan int
	results chan Resolution
	// handled receives the outcome of every press once it has been dealt with
	handled chan table.ClaimAction
	// ready is signaled when the player stops being blocked
	ready chan struct{}

	mu      sync.Mutex
	blocked blockState
	score   int
}

func newPlayer(id int, name string, human bool) *Player {
	return &Player{
		ID:      id,
		Name:    name,
		Human:   human,
		input:   make(chan int, inputBufferSize),
		results: make(chan Resolution, 1),
		handled: make(chan table.ClaimAction, 1),
		ready:   make(chan struct{}, 1),
	}
}

// KeyPressed queues a slot for the player
// The press is dropped if the player is blocked or already has a full buffer
func (p *Player) KeyPressed(slot int) bool {
	if p.isBlocked() {
		return false
	}

	select {
	case p.input <- slot:
		return true
	default:
		return false
	}
}

// Score returns the number of matches the player found
func (p *Player) Score() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.score
}

// State returns the player's current state
func (p *Player) State() PlayerState {
	p.mu.Lock()
	blocked := p.blocked
	p.mu.Unlock()

	switch blocked {
	case blockedAwaiting:
		return StateAwaiting
	case blockedFrozen:
		return StateFrozen
	}

	if len(p.board.Claims(p.ID)) > 0 {
		return StateClaiming
	}

	return StateIdle
}

// Claims returns the slots the player has claimed in the order they were claimed
func (p *Player) Claims() []int {
	claims := p.board.Claims(p.ID)
	slots := make([]int, len(claims))
	for i, claim := range claims {
		slots[i] = claim.Slot
	}

	return slots
}

func (p *Player) isBlocked() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.blocked != notBlocked
}

func (p *Player) setBlocked(state blockState) {
	p.mu.Lock()
	p.blocked = state
	p.mu.Unlock()

	if state == notBlocked {
		select {
		case p.ready <- struct{}{}:
		default:
		}
	}
}

// start launches the player's goroutines
// wg is done once every goroutine the player started has returned
func (p *Player) start(ctx context.Context, wg *sync.WaitGroup) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		p.run(ctx)
	}()

	if !p.Human {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.runComputer(ctx)
		}()
	}
}

func (p *Player) run(ctx context.Context) {
	p.logger.Info("player starting")
	defer p.logger.Info("player terminated")

	for {
		select {
		case <-ctx.Done():
			return
		case slot := <-p.input:
			p.pressHandled(p.handleKeyPress(ctx, slot))
		}
	}
}

// pressHandled signals the computer driver that its last press is done
func (p *Player) pressHandled(action table.ClaimAction) {
	select {
	case p.handled <- action:
	default:
	}
}

// runComputer generates random key presses
// Only one press is outstanding at a time: the driver sleeps until the player has handled it
func (p *Player) runComputer(ctx context.Context) {
	log := p.logger.WithField("thread", "computer")
	log.Info("computer starting")
	defer log.Info("computer terminated")

	for {
		if !p.waitUntilFree(ctx) {
			return
		}

		slot := p.rng.Intn(p.board.Size())
		select {
		case <-ctx.Done():
			return
		case p.input <- slot:
		}

		var action table.ClaimAction
		select {
		case <-ctx.Done():
			return
		case action = <-p.handled:
		}

		delay := p.thinkDelay
		if action == table.ClaimIgnored && delay < idleThinkDelay {
			delay = idleThinkDelay
		}

		if delay > 0 && !sleep(ctx, delay) {
			return
		}
	}
}

// waitUntilFree returns false if ctx is done before the player is unblocked
func (p *Player) waitUntilFree(ctx context.Context) bool {
	for p.isBlocked() {
		select {
		case <-ctx.Done():
			return false
		case <-p.ready:
		}
	}

	return ctx.Err() == nil
}

// handleKeyPress toggles the claim on slot, and submits the claims once there are three of them
// It returns once any request it submitted has been resolved and the player is no longer frozen
func (p *Player) handleKeyPress(ctx context.Context, slot int) table.ClaimAction {
	if p.isBlocked() {
		return table.ClaimIgnored
	}

	action, claims := p.board.ToggleClaim(p.ID, slot)
	if action != table.ClaimPlaced || len(claims) < table.MaxClaims {
		return action
	}

	p.setBlocked(blockedAwaiting)
	p.drainInput()

	p.dealer.submit(&Request{
		PlayerID:  p.ID,
		Claims:    claims,
		Submitted: time.Now(),
	})

	var res Resolution
	select {
	case <-ctx.Done():
		return action
	case res = <-p.results:
	}

	p.logger.WithField("outcome", res.Outcome.String()).Debug("request resolved")
	if res.Outcome == OutcomeStale {
		p.setBlocked(notBlocked)
		return action
	}

	p.freeze(ctx, res.Freeze)
	return action
}

// drainInput discards presses made before the player became blocked
func (p *Player) drainInput() {
	for {
		select {
		case <-p.input:
		default:
			return
		}
	}
}

// resolve is called by the dealer once the player's request has been judged
// It must not block
func (p *Player) resolve(outcome Outcome, freeze time.Duration) {
	if outcome == OutcomeMatch {
		p.mu.Lock()
		p.score++
		score := p.score
		p.mu.Unlock()

		p.display.SetScore(p.ID, score)
	}

	select {
	case p.results <- Resolution{Outcome: outcome, Freeze: freeze}:
	default:
		p.logger.WithField("outcome", outcome.String()).Error("player already has a pending resolution")
	}
}

// freeze blocks the player for d, publishing the time left every second
func (p *Player) freeze(ctx context.Context, d time.Duration) {
	p.setBlocked(blockedFrozen)
	defer func() {
		p.display.SetFreeze(p.ID, 0)
		p.setBlocked(notBlocked)
	}()

	until := time.Now().Add(d)
	for {
		remaining := time.Until(until)
		if remaining <= 0 {
			return
		}

		p.display.SetFreeze(p.ID, remaining)

		wait := remaining % time.Second
		if wait == 0 {
			wait = time.Second
		}

		if !sleep(ctx, wait) {
			return
		}
	}
}

// sleep returns false if ctx is done before d elapses
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
