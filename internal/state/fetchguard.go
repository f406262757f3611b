package state

import "sync"

// fetchGuard hands out monotonically increasing tickets per view so that
// only the most recently issued fetch for a view may write its result back.
// A response holding a stale ticket is discarded, whatever order the
// responses arrive in.
type fetchGuard struct {
	mu  sync.Mutex
	seq map[string]uint64
}

func newFetchGuard() *fetchGuard {
	return &fetchGuard{seq: map[string]uint64{}}
}

// begin registers a new fetch for the view and returns its ticket.
func (g *fetchGuard) begin(view string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq[view]++
	return g.seq[view]
}

// current reports whether the ticket still belongs to the newest fetch.
func (g *fetchGuard) current(view string, ticket uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.seq[view] == ticket
}
