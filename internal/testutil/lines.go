package testutil

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/To0nsa/philo/internal/actionlog"
)

// Line is one parsed line of dinner output.
type Line struct {
	Elapsed int64
	Actor   int
	Text    string
	// Banner is set for the quota banner, which has no timestamp or actor.
	Banner bool
}

// ParseLines splits dinner output into lines, failing on any malformed one.
func ParseLines(t *testing.T, out string) []Line {
	t.Helper()
	var lines []Line
	for _, raw := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		if raw == "" {
			continue
		}
		if raw == actionlog.Banner {
			lines = append(lines, Line{Text: raw, Banner: true})
			continue
		}
		parts := strings.SplitN(raw, " ", 3)
		require.Len(t, parts, 3, "malformed line %q", raw)
		elapsed, err := strconv.ParseInt(parts[0], 10, 64)
		require.NoError(t, err, "bad timestamp in %q", raw)
		actor, err := strconv.Atoi(parts[1])
		require.NoError(t, err, "bad philosopher id in %q", raw)
		lines = append(lines, Line{Elapsed: elapsed, Actor: actor, Text: parts[2]})
	}
	return lines
}

// Count returns how many lines carry text, per philosopher.
func Count(lines []Line, text string) map[int]int {
	counts := make(map[int]int)
	for _, l := range lines {
		if !l.Banner && l.Text == text {
			counts[l.Actor]++
		}
	}
	return counts
}

// Total returns how many lines carry text.
func Total(lines []Line, text string) int {
	n := 0
	for _, c := range Count(lines, text) {
		n += c
	}
	return n
}
