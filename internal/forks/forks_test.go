package forks

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Bounds(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		n       int
		wantErr bool
	}{
		{name: "zero", n: 0, wantErr: true},
		{name: "one", n: 1},
		{name: "max", n: MaxForks},
		{name: "above max", n: MaxForks + 1, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			s, err := New(tc.n)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrSize)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.n, s.Len())
		})
	}
}

func TestTakePut_Ownership(t *testing.T) {
	t.Parallel()

	s, err := New(3)
	require.NoError(t, err)

	s.Take(1, 2)
	require.Equal(t, 2, s.Holder(1))
	require.Equal(t, 0, s.Holder(0))

	s.Put(1, 2)
	require.Equal(t, 0, s.Holder(1))
	require.Zero(t, s.Violations())
}

func TestTake_BlocksUntilPut(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	s, err := New(2)
	require.NoError(t, err)
	s.Take(0, 1)
	acquired := make(chan struct{})

	// --- Act ---
	go func() {
		s.Take(0, 2)
		close(acquired)
	}()

	// --- Assert ---
	select {
	case <-acquired:
		t.Fatal("second actor acquired a held fork")
	case <-time.After(20 * time.Millisecond):
	}
	s.Put(0, 1)
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second actor never acquired the released fork")
	}
	require.Equal(t, 2, s.Holder(0))
	s.Put(0, 2)
	require.Zero(t, s.Violations())
}

func TestPut_WrongOwnerIsViolation(t *testing.T) {
	t.Parallel()

	s, err := New(2)
	require.NoError(t, err)
	s.Take(0, 1)
	s.Put(0, 2)
	require.Equal(t, int64(1), s.Violations())
}

func TestContention_NoDoubleOwnership(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	s, err := New(1)
	require.NoError(t, err)
	var wg sync.WaitGroup

	// --- Act ---
	for actor := 1; actor <= 16; actor++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				s.Take(0, id)
				assert.Equal(t, id, s.Holder(0))
				s.Put(0, id)
			}
		}(actor)
	}
	wg.Wait()

	// --- Assert ---
	require.Zero(t, s.Violations())
}
