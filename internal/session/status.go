package session

import (
	"time"

	"github.com/To0nsa/philo/internal/termination"
)

// PhilosopherStatus is a point-in-time view of one philosopher.
type PhilosopherStatus struct {
	ID            int           `json:"id"`
	State         string        `json:"state"`
	Meals         int           `json:"meals"`
	SinceLastMeal time.Duration `json:"since_last_meal_ns"`
}

// Status is a point-in-time view of the dinner.
type Status struct {
	RunID        string              `json:"run_id"`
	Running      bool                `json:"running"`
	Cause        string              `json:"cause"`
	Elapsed      time.Duration       `json:"elapsed_ns"`
	Philosophers []PhilosopherStatus `json:"philosophers"`
}

// Snapshot reports the dinner's current state. After cleanup the
// philosopher list is empty.
func (s *Session) Snapshot() Status {
	cause, _ := s.signal.Cause()
	now := s.timing.Now()
	st := Status{
		RunID:   s.runID,
		Running: s.ran.Load() && cause == termination.Running,
		Cause:   cause.String(),
		Elapsed: now.Sub(s.start),
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	st.Philosophers = make([]PhilosopherStatus, 0, len(s.philos))
	for _, p := range s.philos {
		ps := PhilosopherStatus{ID: p.ID(), State: p.State().String()}
		p.Inspect(func(meals int, lastMeal time.Time) {
			ps.Meals = meals
			ps.SinceLastMeal = now.Sub(lastMeal)
		})
		st.Philosophers = append(st.Philosophers, ps)
	}
	return st
}
