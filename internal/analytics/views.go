package analytics

import (
	"sort"
	"sync"
)

type ViewCount struct {
	FlightID string `json:"flightId"`
	Views    int    `json:"views"`
}

// ViewTracker counts deal views. Safe for concurrent use.
type ViewTracker struct {
	mu     sync.RWMutex
	counts map[string]int
	total  int
}

func NewViewTracker() *ViewTracker {
	return &ViewTracker{counts: make(map[string]int)}
}

func (t *ViewTracker) Record(flightID string) {
	t.mu.Lock()
	t.counts[flightID]++
	t.total++
	t.mu.Unlock()
}

func (t *ViewTracker) Total() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.total
}

// Top returns up to n flights by views, ties broken by id.
func (t *ViewTracker) Top(n int) []ViewCount {
	t.mu.RLock()
	out := make([]ViewCount, 0, len(t.counts))
	for id, views := range t.counts {
		out = append(out, ViewCount{FlightID: id, Views: views})
	}
	t.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Views != out[j].Views {
			return out[i].Views > out[j].Views
		}
		return out[i].FlightID < out[j].FlightID
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
