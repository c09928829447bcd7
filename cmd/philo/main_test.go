package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/To0nsa/philo/internal/actionlog"
	"github.com/To0nsa/philo/internal/cli"
	"github.com/To0nsa/philo/internal/config"
)

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	errW := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), &bytes.Buffer{}, errW, []string{"-h"})

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, errW.String(), "Usage:")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err)
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
	require.Equal(t, 2, exitCode(err))
}

func TestRun_InvalidRules(t *testing.T) {
	t.Parallel()

	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, []string{"0", "800", "200", "200"})

	require.ErrorIs(t, err, config.ErrInvalidRules)
	require.Equal(t, 2, exitCode(err))
}

func TestRun_QuotaFromConfigFile(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := filepath.Join(t.TempDir(), "dinner.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
table {
  philosophers  = 4
  time_to_die   = 410
  time_to_eat   = 50
  time_to_sleep = 50
  meals         = 3
}
`), 0o600))
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, &bytes.Buffer{}, []string{"-log-level", "error", "-config", path})

	// --- Assert ---
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Equal(t, actionlog.Banner, lines[len(lines)-1])
	require.NotContains(t, out.String(), "died")
}

func TestRun_BrokenConfigFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "dinner.hcl")
	require.NoError(t, os.WriteFile(path, []byte("table {"), 0o600))

	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, []string{"-config", path})

	require.ErrorContains(t, err, "failed to parse HCL file")
	require.Equal(t, 1, exitCode(err))
}

func TestRun_Interrupted(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	// --- Act ---
	err := run(ctx, &bytes.Buffer{}, &bytes.Buffer{}, []string{"4", "10000", "50", "50"})

	// --- Assert ---
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, exitInterrupted, exitCode(err))
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	require.Equal(t, 1, exitCode(errors.New("setup failed")))
	require.Equal(t, 2, exitCode(fmt.Errorf("wrapped: %w", config.ErrInvalidRules)))
	require.Equal(t, 7, exitCode(&cli.ExitError{Code: 7}))
}
