package config

import "time"

// File is the format-agnostic representation of a configuration file. Every
// field is optional; nil means "not set in the file".
type File struct {
	Table   *Table
	Runtime *Runtime
}

// Table holds the dinner parameters, in milliseconds where applicable.
type Table struct {
	Philosophers *int
	TimeToDie    *int
	TimeToEat    *int
	TimeToSleep  *int
	Meals        *int
}

// Runtime holds tuning knobs of the engine itself.
type Runtime struct {
	PollInterval    *time.Duration
	MonitorInterval *time.Duration
	// OddRingDelay is in milliseconds; AutoOddRingDelay selects the default.
	OddRingDelay *int
}

// ApplyTo copies every attribute set in the file onto in.
func (f *File) ApplyTo(in *Input) {
	if f == nil {
		return
	}
	if t := f.Table; t != nil {
		setInt(&in.Philosophers, t.Philosophers)
		setInt(&in.TimeToDie, t.TimeToDie)
		setInt(&in.TimeToEat, t.TimeToEat)
		setInt(&in.TimeToSleep, t.TimeToSleep)
		if t.Meals != nil {
			m := *t.Meals
			in.Meals = &m
		}
	}
	if r := f.Runtime; r != nil {
		if r.PollInterval != nil {
			in.PollInterval = *r.PollInterval
		}
		if r.MonitorInterval != nil {
			in.MonitorInterval = *r.MonitorInterval
		}
		setInt(&in.OddRingDelay, r.OddRingDelay)
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}
