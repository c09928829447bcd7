package timing

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBoundedWait_FullDuration(t *testing.T) {
	t.Parallel()

	svc := New(nil, 0)
	start := time.Now()

	completed := svc.BoundedWait(20*time.Millisecond, func() bool { return false })

	require.True(t, completed)
	require.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	require.Less(t, time.Since(start), 200*time.Millisecond)
}

func TestBoundedWait_StopsEarly(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	svc := New(nil, 0)
	var stop atomic.Bool
	time.AfterFunc(10*time.Millisecond, func() { stop.Store(true) })
	start := time.Now()

	// --- Act ---
	completed := svc.BoundedWait(5*time.Second, stop.Load)

	// --- Assert ---
	require.False(t, completed)
	require.Less(t, time.Since(start), time.Second, "wait should wake shortly after the stop condition")
}

func TestBoundedWait_AlreadyStopped(t *testing.T) {
	t.Parallel()

	svc := New(nil, 0)
	require.False(t, svc.BoundedWait(time.Hour, func() bool { return true }))
}

func TestBoundedWait_NilCondition(t *testing.T) {
	t.Parallel()

	svc := New(nil, time.Millisecond)
	require.True(t, svc.BoundedWait(2*time.Millisecond, nil))
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func TestElapsed_Milliseconds(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 1, 0, 0, 1, 500_000_000, time.UTC)
	svc := New(fixedClock{t: now}, 0)

	require.Equal(t, int64(1500), svc.Elapsed(now.Add(-1500*time.Millisecond)))
	require.Equal(t, now, svc.Now())
}
