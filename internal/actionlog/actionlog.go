// Package actionlog serializes philosopher actions to the run's output.
//
// Every line has the form "<elapsed_ms> <philosopher> <text>". A single mutex
// orders all lines, and the termination check happens under that mutex, so
// once a terminal line (a death or the quota banner) is written no other line
// can follow it.
package actionlog

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/To0nsa/philo/internal/termination"
	"github.com/To0nsa/philo/internal/timing"
)

// Action is something a philosopher does that shows up in the output.
type Action int

const (
	TookFork Action = iota + 1
	Eating
	Sleeping
	Thinking
	Died
	// QuotaReached is the run-level completion marker. It prints Banner
	// instead of a regular line.
	QuotaReached
)

// Banner is printed once when every philosopher has eaten enough.
const Banner = "All philosophers ate enough!"

func (a Action) String() string {
	switch a {
	case TookFork:
		return "has taken a fork"
	case Eating:
		return "is eating"
	case Sleeping:
		return "is sleeping"
	case Thinking:
		return "is thinking"
	case Died:
		return "died"
	case QuotaReached:
		return Banner
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Event is a printed record, as delivered to sinks.
type Event struct {
	Elapsed int64
	Actor   int
	Action  Action
}

// Sink receives every printed event in output order. Publish is called with
// the log mutex held and must not block.
type Sink interface {
	Publish(Event)
}

// Log is the serialized action emitter for one run.
type Log struct {
	mu     sync.Mutex
	w      io.Writer
	timing *timing.Service
	start  time.Time
	signal *termination.Signal
	sinks  []Sink
	err    error
}

// New creates a Log writing to w, with timestamps relative to start.
func New(w io.Writer, svc *timing.Service, start time.Time, signal *termination.Signal, sinks ...Sink) *Log {
	return &Log{
		w:      w,
		timing: svc,
		start:  start,
		signal: signal,
		sinks:  sinks,
	}
}

// Record prints one action unless the run has already ended. It reports
// whether the line was written.
func (l *Log) Record(actor int, action Action) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.signal.Stopped() {
		return false
	}
	l.emit(actor, action)
	return true
}

// RecordFinal prints a terminal action and raises the termination signal in
// one step. It returns false, printing nothing, if the run already ended.
func (l *Log) RecordFinal(actor int, action Action, cause termination.Cause) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.signal.Stopped() {
		return false
	}
	l.emit(actor, action)
	l.signal.Stop(cause, actor)
	return true
}

// Err returns the first write error, if any.
func (l *Log) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// emit must be called with l.mu held.
func (l *Log) emit(actor int, action Action) {
	elapsed := l.timing.Elapsed(l.start)
	var err error
	if action == QuotaReached {
		_, err = fmt.Fprintln(l.w, Banner)
	} else {
		_, err = fmt.Fprintf(l.w, "%d %d %s\n", elapsed, actor, action)
	}
	if err != nil && l.err == nil {
		l.err = fmt.Errorf("writing action log: %w", err)
	}
	ev := Event{Elapsed: elapsed, Actor: actor, Action: action}
	for _, s := range l.sinks {
		s.Publish(ev)
	}
}
