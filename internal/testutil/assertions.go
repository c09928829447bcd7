package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/To0nsa/philo/internal/actionlog"
)

// AssertSingleTerminalLine checks that the output ends in exactly one
// terminal line (a death or the banner) and that nothing follows it.
func AssertSingleTerminalLine(t *testing.T, lines []Line) Line {
	t.Helper()
	require.NotEmpty(t, lines, "dinner produced no output")

	terminal := -1
	for i, l := range lines {
		if l.Banner || l.Text == actionlog.Died.String() {
			require.Equal(t, -1, terminal, "second terminal line %+v after %+v", l, lines[max(terminal, 0)])
			terminal = i
		}
	}
	require.NotEqual(t, -1, terminal, "no terminal line in output")
	require.Equal(t, len(lines)-1, terminal, "lines were printed after the terminal line: %+v", lines[terminal:])
	return lines[terminal]
}

// AssertTimestampsOrdered checks that timestamps never go backwards.
func AssertTimestampsOrdered(t *testing.T, lines []Line) {
	t.Helper()
	var last int64
	for _, l := range lines {
		if l.Banner {
			continue
		}
		require.GreaterOrEqual(t, l.Elapsed, last, "timestamp went backwards at %+v", l)
		last = l.Elapsed
	}
}
