package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/xid"
	"golang.org/x/sync/errgroup"

	"github.com/To0nsa/philo/internal/actionlog"
	"github.com/To0nsa/philo/internal/config"
	"github.com/To0nsa/philo/internal/ctxlog"
	"github.com/To0nsa/philo/internal/forks"
	"github.com/To0nsa/philo/internal/monitor"
	"github.com/To0nsa/philo/internal/philosopher"
	"github.com/To0nsa/philo/internal/termination"
	"github.com/To0nsa/philo/internal/timing"
)

var (
	// ErrSpawn is returned by Run when not every philosopher could be seated.
	ErrSpawn = errors.New("couldn't seat the philosophers")
	// ErrAlreadyRun is returned by Run on a session that already ran.
	ErrAlreadyRun = errors.New("session already ran")
)

// Session owns every piece of shared state of one dinner.
type Session struct {
	rules      config.Rules
	runID      string
	spawnLimit int

	timing *timing.Service
	signal *termination.Signal
	start  time.Time

	// mu guards forks, log and philos, which are dropped on cleanup.
	mu     sync.RWMutex
	forks  *forks.Set
	log    *actionlog.Log
	philos []*philosopher.Philosopher

	ran        atomic.Bool
	violations atomic.Int64

	cleanupMu    sync.Mutex
	cleanupStack []cleanup
}

// New builds a session for rules. If any step fails, everything acquired so
// far is released before the error is returned.
func New(ctx context.Context, rules config.Rules, opts ...Option) (_ *Session, err error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.runID == "" {
		o.runID = xid.New().String()
	}

	svc := timing.New(o.clock, rules.PollInterval)
	s := &Session{
		rules:      rules,
		runID:      o.runID,
		spawnLimit: o.spawnLimit,
		timing:     svc,
		signal:     termination.New(),
	}
	logger := ctxlog.FromContext(ctx).With("run", s.runID)

	defer func() {
		if err != nil {
			logger.Error("Session setup failed, releasing partial state.", "error", err)
			s.executeCleanupStack(ctx)
		}
	}()

	set, err := forks.New(rules.Philosophers)
	if err != nil {
		return nil, fmt.Errorf("couldn't get the forks: %w", err)
	}
	s.forks = set
	s.pushCleanup("forks", func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.forks.Release()
		s.forks = nil
	})

	var sinks []actionlog.Sink
	for i, open := range o.openers {
		sink, err := open(ctx, s.runID)
		if err != nil {
			return nil, fmt.Errorf("opening action sink %d: %w", i, err)
		}
		sinks = append(sinks, sink)
		if c, ok := sink.(io.Closer); ok {
			s.pushCleanup(fmt.Sprintf("sink-%d", i), func() {
				if err := c.Close(); err != nil {
					logger.Warn("Closing action sink failed.", "sink", i, "error", err)
				}
			})
		}
	}

	s.start = svc.Now()
	s.log = actionlog.New(o.out, svc, s.start, s.signal, sinks...)
	table := philosopher.Table{Forks: s.forks, Log: s.log, Signal: s.signal, Timing: svc}
	s.philos = make([]*philosopher.Philosopher, rules.Philosophers)
	for i := range s.philos {
		s.philos[i] = philosopher.New(i+1, rules, s.start, table)
	}
	s.pushCleanup("philosophers", func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.philos = nil
		s.log = nil
	})

	logger.Debug("Session built.", "philosophers", rules.Philosophers, "sinks", len(sinks))
	return s, nil
}

// RunID returns the identifier of this dinner.
func (s *Session) RunID() string {
	return s.runID
}

// Run seats the philosophers, monitors them until the dinner ends, joins
// every philosopher and releases all shared state.
func (s *Session) Run(ctx context.Context) (monitor.Outcome, error) {
	if !s.ran.CompareAndSwap(false, true) {
		return monitor.Outcome{}, ErrAlreadyRun
	}
	ctx = ctxlog.With(ctx, "run", s.runID)
	logger := ctxlog.FromContext(ctx)

	g := new(errgroup.Group)
	if s.spawnLimit > 0 {
		g.SetLimit(s.spawnLimit)
	}

	logger.Info("🍝 Dinner started.",
		"philosophers", s.rules.Philosophers,
		"time_to_die", s.rules.TimeToDie,
		"time_to_eat", s.rules.TimeToEat,
		"time_to_sleep", s.rules.TimeToSleep,
		"meals", s.rules.Meals,
		"odd_ring_delay", s.rules.OddRingDelay,
	)

	var spawnErr error
	for i, p := range s.philos {
		if !g.TryGo(func() error {
			p.Dine(ctx)
			return nil
		}) {
			spawnErr = fmt.Errorf("%w: seated %d of %d", ErrSpawn, i, len(s.philos))
			break
		}
	}

	var outcome monitor.Outcome
	if spawnErr != nil {
		s.signal.Stop(termination.Aborted, 0)
		logger.Error("Seating failed, sending everyone home.", "error", spawnErr)
		outcome = monitor.Outcome{Cause: termination.Aborted, Elapsed: s.timing.Now().Sub(s.start)}
	} else {
		outcome = monitor.New(s.diners(), s.rules, s.log, s.signal, s.timing, s.start).Watch(ctx)
	}

	logErr := s.shutdown(ctx, g)
	if spawnErr != nil {
		return outcome, spawnErr
	}
	if logErr != nil {
		return outcome, logErr
	}

	logger.Info("🏁 Dinner finished.", "cause", outcome.Cause, "philosopher", outcome.Actor, "elapsed", outcome.Elapsed)
	return outcome, nil
}

// ForkViolations returns how many fork ownership inconsistencies the last
// run observed. It is only meaningful after Run returns.
func (s *Session) ForkViolations() int64 {
	return s.violations.Load()
}

// Close releases the session's resources without running it. It is a no-op
// after Run.
func (s *Session) Close(ctx context.Context) error {
	if s.ran.CompareAndSwap(false, true) {
		s.executeCleanupStack(ctx)
	}
	return nil
}

// shutdown joins every philosopher, then unwinds the cleanup stack. It
// returns the action log's write error, if any.
func (s *Session) shutdown(ctx context.Context, g *errgroup.Group) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Waiting for philosophers to leave the table...")
	_ = g.Wait()

	v := s.forks.Violations()
	s.violations.Store(v)
	if v > 0 {
		logger.Error("Fork ownership was violated.", "violations", v)
	}
	logErr := s.log.Err()
	s.executeCleanupStack(ctx)
	return logErr
}

func (s *Session) diners() []monitor.Diner {
	diners := make([]monitor.Diner, len(s.philos))
	for i, p := range s.philos {
		diners[i] = p
	}
	return diners
}
