package room

import (
	"context"
	"sync"
)

// PitBoss is responsible for starting the dealer and shutting the game down
type PitBoss struct {
	dealer *Dealer

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	results *Results
}

// NewPitBoss returns a pit boss for the dealer
func NewPitBoss(dealer *Dealer) *PitBoss {
	return &PitBoss{
		dealer: dealer,
		done:   make(chan struct{}),
	}
}

// StartShift runs the dealer in the background
// It must only be called once
func (p *PitBoss) StartShift(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		panic("shift already started")
	}

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	go func() {
		defer close(p.done)
		results := p.dealer.Run(ctx)

		p.mu.Lock()
		p.results = results
		p.mu.Unlock()
	}()
}

// EndShift tells the dealer and every player to stop, and waits until they have
func (p *PitBoss) EndShift() *Results {
	p.mu.Lock()
	cancel := p.cancel
	p.mu.Unlock()

	if cancel == nil {
		return nil
	}

	cancel()
	return p.Wait()
}

// Done is closed once the game is over
func (p *PitBoss) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the game is over and returns the results
func (p *PitBoss) Wait() *Results {
	<-p.done

	p.mu.Lock()
	defer p.mu.Unlock()

	return p.results
}
