package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestNewRules_Valid(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	in := NewInput()
	in.Philosophers = 5
	in.TimeToDie = 800
	in.TimeToEat = 200
	in.TimeToSleep = 100
	in.Meals = intPtr(7)

	// --- Act ---
	r, err := NewRules(in)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, 5, r.Philosophers)
	require.Equal(t, 800*time.Millisecond, r.TimeToDie)
	require.Equal(t, 200*time.Millisecond, r.TimeToEat)
	require.Equal(t, 100*time.Millisecond, r.TimeToSleep)
	require.Equal(t, 7, r.Meals)
	require.True(t, r.HasQuota())
	require.Equal(t, 200*time.Millisecond, r.OddRingDelay, "odd tables default to time_to_eat")
}

func TestNewRules_SubMillisecondIntervals(t *testing.T) {
	t.Parallel()

	in := Input{Philosophers: 4, TimeToDie: 410, TimeToEat: 200, TimeToSleep: 200, OddRingDelay: AutoOddRingDelay}
	in.PollInterval = 999 * time.Microsecond
	in.MonitorInterval = 250 * time.Microsecond

	r, err := NewRules(in)

	require.NoError(t, err)
	require.Equal(t, 999*time.Microsecond, r.PollInterval)
	require.Equal(t, 250*time.Microsecond, r.MonitorInterval)
}

func TestNewRules_OddRingDelay(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		philosophers int
		delay        int
		want         time.Duration
	}{
		{name: "even table auto", philosophers: 4, delay: AutoOddRingDelay, want: 0},
		{name: "odd table auto", philosophers: 3, delay: AutoOddRingDelay, want: 60 * time.Millisecond},
		{name: "odd table disabled", philosophers: 3, delay: 0, want: 0},
		{name: "explicit value", philosophers: 4, delay: 15, want: 15 * time.Millisecond},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			in := Input{Philosophers: tc.philosophers, TimeToDie: 400, TimeToEat: 60, TimeToSleep: 60, OddRingDelay: tc.delay}
			r, err := NewRules(in)
			require.NoError(t, err)
			require.Equal(t, tc.want, r.OddRingDelay)
		})
	}
}

func TestNewRules_Invalid(t *testing.T) {
	t.Parallel()

	base := func() Input {
		return Input{Philosophers: 4, TimeToDie: 410, TimeToEat: 200, TimeToSleep: 200, OddRingDelay: AutoOddRingDelay}
	}
	testCases := []struct {
		name    string
		mutate  func(*Input)
		wantMsg string
	}{
		{name: "no philosophers", mutate: func(in *Input) { in.Philosophers = 0 }, wantMsg: "between 1 and 200"},
		{name: "too many philosophers", mutate: func(in *Input) { in.Philosophers = 201 }, wantMsg: "between 1 and 200"},
		{name: "zero time to die", mutate: func(in *Input) { in.TimeToDie = 0 }, wantMsg: "greater than 0"},
		{name: "zero time to sleep", mutate: func(in *Input) { in.TimeToSleep = 0 }, wantMsg: "greater than 0"},
		{name: "zero meals", mutate: func(in *Input) { in.Meals = intPtr(0) }, wantMsg: "must_eat"},
		{name: "bad odd delay", mutate: func(in *Input) { in.OddRingDelay = -2 }, wantMsg: "odd ring delay"},
		{name: "negative poll", mutate: func(in *Input) { in.PollInterval = -time.Microsecond }, wantMsg: "intervals"},
		{name: "millisecond poll", mutate: func(in *Input) { in.PollInterval = time.Millisecond }, wantMsg: "poll interval must be under 1ms"},
		{name: "slow poll", mutate: func(in *Input) { in.PollInterval = 50 * time.Millisecond }, wantMsg: "poll interval must be under 1ms, got 50ms"},
		{name: "slow monitor", mutate: func(in *Input) { in.MonitorInterval = 2 * time.Second }, wantMsg: "monitor interval must be under 1ms, got 2s"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			in := base()
			tc.mutate(&in)
			_, err := NewRules(in)
			require.ErrorIs(t, err, ErrInvalidRules)
			require.ErrorContains(t, err, tc.wantMsg)
		})
	}
}

func TestFile_ApplyTo(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	poll := 50 * time.Microsecond
	f := &File{
		Table:   &Table{Philosophers: intPtr(3), TimeToEat: intPtr(90), Meals: intPtr(2)},
		Runtime: &Runtime{PollInterval: &poll, OddRingDelay: intPtr(0)},
	}
	in := NewInput()
	in.TimeToDie = 300

	// --- Act ---
	f.ApplyTo(&in)

	// --- Assert ---
	require.Equal(t, 3, in.Philosophers)
	require.Equal(t, 300, in.TimeToDie, "unset attributes must not clobber existing values")
	require.Equal(t, 90, in.TimeToEat)
	require.Equal(t, 2, *in.Meals)
	require.Equal(t, poll, in.PollInterval)
	require.Equal(t, 0, in.OddRingDelay)
}

func TestFile_ApplyToNil(t *testing.T) {
	t.Parallel()

	var f *File
	in := NewInput()
	f.ApplyTo(&in)
	require.Equal(t, NewInput(), in)
}
