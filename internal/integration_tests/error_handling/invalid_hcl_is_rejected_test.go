package integration_tests

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/To0nsa/philo/internal/app"
	"github.com/To0nsa/philo/internal/config"
	"github.com/To0nsa/philo/internal/hcl"
)

func runWithFile(t *testing.T, content string) (string, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dinner.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := app.NewConfig(app.Config{ConfigPath: path, LogLevel: "debug"})
	require.NoError(t, err)
	out := &bytes.Buffer{}
	_, runErr := app.NewApp(out, &bytes.Buffer{}, cfg, hcl.NewLoader()).Run(context.Background())
	return out.String(), runErr
}

// Test for: invalid hcl is rejected
func TestErrorHandling_InvalidHCL_IsRejected(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	invalidHCL := `
		table {
			philosophers = 5
		// Missing closing brace here
	`

	// --- Act ---
	out, runErr := runWithFile(t, invalidHCL)

	// --- Assert ---
	require.Error(t, runErr)
	errMsg := runErr.Error()
	if !strings.Contains(errMsg, "failed to parse") && !strings.Contains(errMsg, "failed to decode") {
		t.Errorf("expected error message to indicate an HCL parsing failure, but got: %s", errMsg)
	}
	require.Empty(t, out, "nothing may be printed when the table is never set")
}

func TestErrorHandling_IncompleteFile_IsRejected(t *testing.T) {
	t.Parallel()

	out, runErr := runWithFile(t, `
		table {
			philosophers = 5
			time_to_die  = 800
		}
	`)

	require.ErrorIs(t, runErr, config.ErrInvalidRules)
	require.ErrorContains(t, runErr, "<time_to_die> <time_to_eat> <time_to_sleep> must be integers greater than 0")
	require.Empty(t, out)
}

func TestErrorHandling_OutOfRangeFile_IsRejected(t *testing.T) {
	t.Parallel()

	_, runErr := runWithFile(t, `
		table {
			philosophers  = 250
			time_to_die   = 800
			time_to_eat   = 200
			time_to_sleep = 200
		}
	`)

	require.ErrorIs(t, runErr, config.ErrInvalidRules)
	require.ErrorContains(t, runErr, "<number_of_philosophers> must be between 1 and 200")
}
