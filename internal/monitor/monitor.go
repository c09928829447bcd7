// Package monitor implements the supervisory loop that ends a dinner.
//
// The monitor sweeps every philosopher in seat order. A philosopher whose
// last meal is at least time_to_die old is declared dead; otherwise, when a
// quota is configured, the sweep counts the philosophers that reached it and
// ends the dinner once all of them have, within that same sweep.
package monitor

import (
	"context"
	"time"

	"github.com/To0nsa/philo/internal/actionlog"
	"github.com/To0nsa/philo/internal/config"
	"github.com/To0nsa/philo/internal/ctxlog"
	"github.com/To0nsa/philo/internal/termination"
	"github.com/To0nsa/philo/internal/timing"
)

// DefaultInterval is the pause between two sweeps.
const DefaultInterval = 100 * time.Microsecond

// Diner is the view of a philosopher the monitor needs.
type Diner interface {
	ID() int
	// Inspect runs fn under the diner's meal lock.
	Inspect(fn func(meals int, lastMeal time.Time))
}

// Outcome describes how a dinner ended.
type Outcome struct {
	Cause   termination.Cause
	Actor   int
	Elapsed time.Duration
	Sweeps  int
}

// Monitor watches a fixed set of diners.
type Monitor struct {
	diners   []Diner
	rules    config.Rules
	log      *actionlog.Log
	signal   *termination.Signal
	timing   *timing.Service
	start    time.Time
	interval time.Duration
}

// New creates a Monitor. diners must be in seat order.
func New(diners []Diner, rules config.Rules, log *actionlog.Log, signal *termination.Signal, svc *timing.Service, start time.Time) *Monitor {
	interval := rules.MonitorInterval
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Monitor{
		diners:   diners,
		rules:    rules,
		log:      log,
		signal:   signal,
		timing:   svc,
		start:    start,
		interval: interval,
	}
}

// Watch sweeps until the dinner ends, then returns its outcome. Cancelling
// ctx ends the dinner with termination.Interrupted.
func (m *Monitor) Watch(ctx context.Context) Outcome {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Monitor started.", "diners", len(m.diners), "interval", m.interval)

	timer := time.NewTimer(m.interval)
	defer timer.Stop()

	sweeps := 0
	for {
		sweeps++
		if m.sweep() || m.signal.Stopped() {
			break
		}
		timer.Reset(m.interval)
		select {
		case <-ctx.Done():
			if m.signal.Stop(termination.Interrupted, 0) {
				logger.Warn("Dinner interrupted.", "reason", ctx.Err())
			}
		case <-m.signal.Done():
		case <-timer.C:
		}
	}

	cause, actor := m.signal.Cause()
	outcome := Outcome{
		Cause:   cause,
		Actor:   actor,
		Elapsed: m.timing.Now().Sub(m.start),
		Sweeps:  sweeps,
	}
	logger.Debug("Monitor finished.", "cause", cause, "actor", actor, "sweeps", sweeps)
	return outcome
}

// sweep checks every diner once and reports whether the dinner ended.
func (m *Monitor) sweep() bool {
	full := 0
	for _, d := range m.diners {
		ended := false
		d.Inspect(func(meals int, lastMeal time.Time) {
			if m.timing.Now().Sub(lastMeal) >= m.rules.TimeToDie {
				m.log.RecordFinal(d.ID(), actionlog.Died, termination.Starvation)
				ended = true
				return
			}
			if m.rules.HasQuota() && meals >= m.rules.Meals {
				full++
				if full == len(m.diners) {
					m.log.RecordFinal(0, actionlog.QuotaReached, termination.QuotaReached)
					ended = true
				}
			}
		})
		if ended {
			return true
		}
	}
	return false
}
