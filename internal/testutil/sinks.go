package testutil

import (
	"sync"

	"github.com/To0nsa/philo/internal/actionlog"
)

// RecordingSink collects every event published to it.
type RecordingSink struct {
	mu     sync.Mutex
	events []actionlog.Event
	closed bool
}

// Publish implements actionlog.Sink.
func (r *RecordingSink) Publish(ev actionlog.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

// Close implements io.Closer.
func (r *RecordingSink) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

// Events returns a copy of the collected events.
func (r *RecordingSink) Events() []actionlog.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]actionlog.Event(nil), r.events...)
}

// Closed reports whether Close was called.
func (r *RecordingSink) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}
