// Package philosopher implements the per-actor state machine.
//
// A philosopher cycles through thinking, acquiring its two forks, eating,
// releasing the forks and sleeping until the run's termination signal is
// raised. Even ids lock their left fork first and odd ids their right fork
// first, which breaks the circular wait that would otherwise deadlock a ring
// of philosophers all reaching the same way.
package philosopher

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/To0nsa/philo/internal/actionlog"
	"github.com/To0nsa/philo/internal/config"
	"github.com/To0nsa/philo/internal/ctxlog"
	"github.com/To0nsa/philo/internal/forks"
	"github.com/To0nsa/philo/internal/termination"
	"github.com/To0nsa/philo/internal/timing"
)

// State is the philosopher's current phase.
type State int32

const (
	Seated State = iota
	Thinking
	AcquiringForks
	Eating
	ReleasingForks
	Sleeping
	Exited
)

func (s State) String() string {
	switch s {
	case Seated:
		return "seated"
	case Thinking:
		return "thinking"
	case AcquiringForks:
		return "acquiring_forks"
	case Eating:
		return "eating"
	case ReleasingForks:
		return "releasing_forks"
	case Sleeping:
		return "sleeping"
	case Exited:
		return "exited"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Table is everything a philosopher shares with the rest of the run.
type Table struct {
	Forks  *forks.Set
	Log    *actionlog.Log
	Signal *termination.Signal
	Timing *timing.Service
}

// Philosopher is one actor at the table.
type Philosopher struct {
	id    int
	left  int
	right int

	rules config.Rules
	table Table

	// mu guards meals and lastMeal; the monitor reads them under it too.
	mu       sync.Mutex
	meals    int
	lastMeal time.Time

	state atomic.Int32
}

// New seats philosopher id (1-based). Fork id-1 is its left fork and fork
// id mod N its right fork, so fork i is shared by philosophers i and i+1.
func New(id int, rules config.Rules, start time.Time, table Table) *Philosopher {
	return &Philosopher{
		id:       id,
		left:     id - 1,
		right:    id % rules.Philosophers,
		rules:    rules,
		table:    table,
		lastMeal: start,
	}
}

// ID returns the philosopher's 1-based seat number.
func (p *Philosopher) ID() int {
	return p.id
}

// Forks returns the indices of the left and right forks.
func (p *Philosopher) Forks() (left, right int) {
	return p.left, p.right
}

// State returns the current phase.
func (p *Philosopher) State() State {
	return State(p.state.Load())
}

// Meals returns how many meals have been eaten so far.
func (p *Philosopher) Meals() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.meals
}

// Inspect calls fn with the meal state while holding the meal lock, so fn
// sees a consistent pair and no meal can be recorded until it returns.
func (p *Philosopher) Inspect(fn func(meals int, lastMeal time.Time)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(p.meals, p.lastMeal)
}

// Dine runs the state machine until the termination signal is observed.
func (p *Philosopher) Dine(ctx context.Context) {
	logger := ctxlog.FromContext(ctx).With("philosopher", p.id)
	logger.Debug("Philosopher seated.", "left_fork", p.left, "right_fork", p.right)
	defer func() {
		p.setState(Exited)
		logger.Debug("Philosopher left the table.", "meals", p.Meals())
	}()

	if p.rules.Philosophers == 1 {
		p.dineAlone()
		return
	}
	if p.id%2 == 0 {
		p.wait(p.rules.TimeToEat / 2)
	}
	for !p.table.Signal.Stopped() {
		p.think()
		p.eat()
		p.sleep()
	}
}

// dineAlone handles the single-seat table: there is only one fork, so the
// philosopher holds it until starving.
func (p *Philosopher) dineAlone() {
	p.setState(AcquiringForks)
	p.table.Forks.Take(p.left, p.id)
	p.table.Log.Record(p.id, actionlog.TookFork)
	p.wait(p.rules.TimeToDie)
	p.table.Log.RecordFinal(p.id, actionlog.Died, termination.Starvation)
	p.table.Forks.Put(p.left, p.id)
}

func (p *Philosopher) think() {
	p.setState(Thinking)
	p.table.Log.Record(p.id, actionlog.Thinking)
}

func (p *Philosopher) eat() {
	first, second := p.left, p.right
	if p.id%2 != 0 {
		first, second = p.right, p.left
	}

	p.setState(AcquiringForks)
	p.table.Forks.Take(first, p.id)
	p.table.Log.Record(p.id, actionlog.TookFork)
	p.table.Forks.Take(second, p.id)
	p.table.Log.Record(p.id, actionlog.TookFork)

	p.setState(Eating)
	p.table.Log.Record(p.id, actionlog.Eating)
	if p.wait(p.rules.TimeToEat) {
		// Must land before the forks are put back.
		p.mu.Lock()
		p.meals++
		p.lastMeal = p.table.Timing.Now()
		p.mu.Unlock()
	}

	p.setState(ReleasingForks)
	p.table.Forks.Put(second, p.id)
	p.table.Forks.Put(first, p.id)
}

func (p *Philosopher) sleep() {
	p.setState(Sleeping)
	p.table.Log.Record(p.id, actionlog.Sleeping)
	p.wait(p.rules.TimeToSleep)
	if p.rules.OddRingDelay > 0 {
		p.wait(p.rules.OddRingDelay)
	}
}

func (p *Philosopher) wait(d time.Duration) bool {
	return p.table.Timing.BoundedWait(d, p.table.Signal.Stopped)
}

func (p *Philosopher) setState(s State) {
	p.state.Store(int32(s))
}
