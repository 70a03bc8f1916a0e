package room

import (
	"setgame-server/pkg/table"
	"sync"
	"time"
)

// Outcome is the dealer's verdict on a request
type Outcome int

// outcome constants
const (
	// OutcomeStale means the table changed before the request was judged
	OutcomeStale Outcome = iota
	// OutcomeMatch means the cards formed a match
	OutcomeMatch
	// OutcomeNoMatch means the cards did not form a match
	OutcomeNoMatch
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMatch:
		return "match"
	case OutcomeNoMatch:
		return "no match"
	default:
		return "stale"
	}
}

// Request is a candidate match submitted by a player
type Request struct {
	PlayerID  int
	Claims    []table.Claim
	Submitted time.Time
}

// Slots returns the slots of the request in claim order
func (r *Request) Slots() []int {
	slots := make([]int, len(r.Claims))
	for i, claim := range r.Claims {
		slots[i] = claim.Slot
	}

	return slots
}

// Resolution is what the dealer sends back to the player
type Resolution struct {
	Outcome Outcome
	Freeze  time.Duration
}

// requestQueue is a FIFO of requests waiting to be judged
// push never blocks. Every push signals wake so a sleeping dealer gets up early
type requestQueue struct {
	mu       sync.Mutex
	requests []*Request
	wake     chan struct{}
}

func newRequestQueue() *requestQueue {
	return &requestQueue{
		wake: make(chan struct{}, 1),
	}
}

func (q *requestQueue) push(r *Request) {
	q.mu.Lock()
	q.requests = append(q.requests, r)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// drain removes and returns every queued request in submission order
func (q *requestQueue) drain() []*Request {
	q.mu.Lock()
	defer q.mu.Unlock()

	requests := q.requests
	q.requests = nil

	return requests
}

func (q *requestQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.requests)
}
