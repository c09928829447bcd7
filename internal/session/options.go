package session

import (
	"context"
	"io"
	"os"

	"github.com/To0nsa/philo/internal/actionlog"
	"github.com/To0nsa/philo/internal/timing"
)

// SinkOpener opens an extra destination for action events. If the returned
// sink implements io.Closer it is closed when the session is cleaned up.
type SinkOpener func(ctx context.Context, runID string) (actionlog.Sink, error)

// Option customizes a Session.
type Option func(*options)

type options struct {
	out        io.Writer
	clock      timing.Clock
	runID      string
	openers    []SinkOpener
	spawnLimit int
}

func defaultOptions() options {
	return options{out: os.Stdout}
}

// WithOutput sets where action lines are written. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithClock replaces the system clock.
func WithClock(c timing.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithRunID sets the run identifier instead of generating one.
func WithRunID(id string) Option {
	return func(o *options) { o.runID = id }
}

// WithSinks registers sink openers, opened in order during New.
func WithSinks(openers ...SinkOpener) Option {
	return func(o *options) { o.openers = append(o.openers, openers...) }
}

// WithSpawnLimit caps how many philosopher goroutines may run at once. A
// limit below the number of philosophers makes seating fail; 0 means no limit.
func WithSpawnLimit(n int) Option {
	return func(o *options) { o.spawnLimit = n }
}
