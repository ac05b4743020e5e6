package eventmock

import (
	"context"
	"sync"

	"peerlend-backend/internal/domain/event"
)

var _ event.Emitter = (*Emitter)(nil)

// Emitter records everything emitted.
type Emitter struct {
	mu     sync.Mutex
	Events []event.Event
}

func (m *Emitter) Emit(_ context.Context, ev event.Event) {
	m.mu.Lock()
	m.Events = append(m.Events, ev)
	m.mu.Unlock()
}

func (m *Emitter) Last() (event.Event, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Events) == 0 {
		return event.Event{}, false
	}
	return m.Events[len(m.Events)-1], true
}
