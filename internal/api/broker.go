package api

import (
	"sync"
)

// allRuns is the broker channel carrying every run event regardless of ID.
const allRuns = "*"

// RunEvent is one engine run lifecycle event, fanned out to SSE and
// websocket subscribers.
type RunEvent struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data,omitempty"`
}

type Broker struct {
	mu   sync.Mutex
	subs map[string]map[chan RunEvent]struct{} // runId -> set of channels
}

func NewBroker() *Broker {
	return &Broker{subs: map[string]map[chan RunEvent]struct{}{}}
}

func (b *Broker) Subscribe(runID string) chan RunEvent {
	ch := make(chan RunEvent, 8)
	b.mu.Lock()
	if b.subs[runID] == nil {
		b.subs[runID] = map[chan RunEvent]struct{}{}
	}
	b.subs[runID][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *Broker) Unsubscribe(runID string, ch chan RunEvent) {
	b.mu.Lock()
	if m := b.subs[runID]; m != nil {
		delete(m, ch)
		if len(m) == 0 {
			delete(b.subs, runID)
		}
	}
	b.mu.Unlock()
	close(ch)
}

// Publish delivers the event to the run's subscribers and to wildcard
// subscribers; slow consumers are skipped rather than blocked on.
func (b *Broker) Publish(runID string, evt RunEvent) {
	b.mu.Lock()
	for _, key := range []string{runID, allRuns} {
		for ch := range b.subs[key] {
			select {
			case ch <- evt:
			default:
			}
		}
	}
	b.mu.Unlock()
}
