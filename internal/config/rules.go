package config

import (
	"errors"
	"fmt"
	"time"
)

const (
	// MaxPhilosophers is the largest table the simulator accepts.
	MaxPhilosophers = 200
	// AutoOddRingDelay selects the default odd-ring compensation.
	AutoOddRingDelay = -1
	// MaxInterval bounds the poll and monitor intervals.
	MaxInterval = time.Millisecond
)

// ErrInvalidRules is wrapped by every validation failure of NewRules.
var ErrInvalidRules = errors.New("invalid rules")

// Input is the raw, unvalidated set of parameters collected from the command
// line and configuration files. Times are in milliseconds.
type Input struct {
	Philosophers int
	TimeToDie    int
	TimeToEat    int
	TimeToSleep  int
	// Meals is nil when no quota is configured.
	Meals *int

	OddRingDelay    int
	PollInterval    time.Duration
	MonitorInterval time.Duration
}

// NewInput returns an Input with engine defaults and nothing else set.
func NewInput() Input {
	return Input{OddRingDelay: AutoOddRingDelay}
}

// Rules are the immutable parameters of one dinner.
type Rules struct {
	Philosophers int
	TimeToDie    time.Duration
	TimeToEat    time.Duration
	TimeToSleep  time.Duration
	// Meals is the per-philosopher quota; 0 means the dinner only ends on a death.
	Meals int

	// OddRingDelay is an extra wait after sleeping, applied by every
	// philosopher when the table has an odd number of seats. It is an
	// empirical compensation: with it, odd tables keep the even/odd
	// alternation from drifting into starvation.
	OddRingDelay time.Duration

	PollInterval    time.Duration
	MonitorInterval time.Duration
}

// HasQuota reports whether the dinner can end by everyone eating enough.
func (r Rules) HasQuota() bool {
	return r.Meals > 0
}

// NewRules validates in and converts it to Rules.
func NewRules(in Input) (Rules, error) {
	if in.Philosophers < 1 || in.Philosophers > MaxPhilosophers {
		return Rules{}, fmt.Errorf("%w: <number_of_philosophers> must be between 1 and %d", ErrInvalidRules, MaxPhilosophers)
	}
	if in.TimeToDie < 1 || in.TimeToEat < 1 || in.TimeToSleep < 1 {
		return Rules{}, fmt.Errorf("%w: <time_to_die> <time_to_eat> <time_to_sleep> must be integers greater than 0", ErrInvalidRules)
	}
	meals := 0
	if in.Meals != nil {
		if *in.Meals < 1 {
			return Rules{}, fmt.Errorf("%w: <nbr_of_times_each_philosopher_must_eat> must be an integer greater than 0", ErrInvalidRules)
		}
		meals = *in.Meals
	}
	if in.OddRingDelay < AutoOddRingDelay {
		return Rules{}, fmt.Errorf("%w: odd ring delay must be -1 (auto) or a non-negative number of milliseconds", ErrInvalidRules)
	}
	if in.PollInterval < 0 || in.MonitorInterval < 0 {
		return Rules{}, fmt.Errorf("%w: poll and monitor intervals must not be negative", ErrInvalidRules)
	}
	// Deaths must be reported within a millisecond of time_to_die.
	if in.PollInterval >= MaxInterval {
		return Rules{}, fmt.Errorf("%w: poll interval must be under %s, got %s", ErrInvalidRules, MaxInterval, in.PollInterval)
	}
	if in.MonitorInterval >= MaxInterval {
		return Rules{}, fmt.Errorf("%w: monitor interval must be under %s, got %s", ErrInvalidRules, MaxInterval, in.MonitorInterval)
	}

	r := Rules{
		Philosophers:    in.Philosophers,
		TimeToDie:       ms(in.TimeToDie),
		TimeToEat:       ms(in.TimeToEat),
		TimeToSleep:     ms(in.TimeToSleep),
		Meals:           meals,
		PollInterval:    in.PollInterval,
		MonitorInterval: in.MonitorInterval,
	}
	switch {
	case in.OddRingDelay != AutoOddRingDelay:
		r.OddRingDelay = ms(in.OddRingDelay)
	case in.Philosophers%2 != 0:
		r.OddRingDelay = r.TimeToEat
	}
	return r, nil
}

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}
