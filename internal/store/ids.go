package store

import (
	"strconv"
	"sync"
	"time"
)

// IDGenerator issues time-derived analysis IDs: the upload time in Unix
// milliseconds, bumped forward when needed so IDs are strictly increasing.
type IDGenerator struct {
	mu   sync.Mutex
	last int64
}

// Next returns a new ID for an upload completed at now
func (g *IDGenerator) Next(now time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := now.UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return strconv.FormatInt(ms, 10)
}

// Observe records an already-issued ID so later IDs sort after it.
// Non-numeric IDs are ignored.
func (g *IDGenerator) Observe(id string) {
	ms, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if ms > g.last {
		g.last = ms
	}
}
