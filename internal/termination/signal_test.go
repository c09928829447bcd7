package termination

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignal_FirstStopWins(t *testing.T) {
	t.Parallel()

	s := New()
	require.False(t, s.Stopped())

	require.True(t, s.Stop(Starvation, 4))
	require.False(t, s.Stop(QuotaReached, 0))

	cause, actor := s.Cause()
	require.Equal(t, Starvation, cause)
	require.Equal(t, 4, actor)
	require.True(t, s.Stopped())

	select {
	case <-s.Done():
	default:
		t.Fatal("Done channel should be closed after Stop")
	}
}

func TestSignal_ConcurrentStop(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	s := New()
	var winners atomic.Int32
	var wg sync.WaitGroup

	// --- Act ---
	for i := 1; i <= 64; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			if s.Stop(Starvation, id) {
				winners.Add(1)
			}
		}(i)
	}
	wg.Wait()

	// --- Assert ---
	require.Equal(t, int32(1), winners.Load(), "exactly one Stop call must win")
}

func TestCause_String(t *testing.T) {
	t.Parallel()

	require.Equal(t, "starvation", Starvation.String())
	require.Equal(t, "quota_reached", QuotaReached.String())
	require.Equal(t, "cause(42)", Cause(42).String())
}
