// Package testutil holds helpers shared by tests that run whole dinners.
package testutil

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/To0nsa/philo/internal/config"
	"github.com/To0nsa/philo/internal/ctxlog"
	"github.com/To0nsa/philo/internal/monitor"
	"github.com/To0nsa/philo/internal/session"
)

// SafeBuffer is a thread-safe buffer for capturing output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcome of a dinner run by the harness.
type HarnessResult struct {
	Outcome   monitor.Outcome
	Err       error
	Output    string
	Lines     []Line
	LogOutput string
	Session   *session.Session
}

// Context returns a context carrying a debug logger that writes to buf.
func Context(buf *SafeBuffer) context.Context {
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return ctxlog.WithLogger(context.Background(), logger)
}

// Rules builds validated rules from in, failing the test on error.
func Rules(t *testing.T, in config.Input) config.Rules {
	t.Helper()
	rules, err := config.NewRules(in)
	require.NoError(t, err)
	return rules
}

// RunSession runs a full dinner with a background context.
func RunSession(t *testing.T, rules config.Rules, opts ...session.Option) *HarnessResult {
	t.Helper()
	return RunSessionWithContext(context.Background(), t, rules, opts...)
}

// RunSessionWithContext runs a full dinner. Action lines and diagnostics are
// captured separately; set PHILO_TEST_LOGS=true to dump them.
func RunSessionWithContext(ctx context.Context, t *testing.T, rules config.Rules, opts ...session.Option) *HarnessResult {
	t.Helper()

	out := &SafeBuffer{}
	logs := &SafeBuffer{}
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx = ctxlog.WithLogger(ctx, logger)

	opts = append([]session.Option{session.WithOutput(out)}, opts...)
	s, err := session.New(ctx, rules, opts...)
	require.NoError(t, err, "session setup failed")

	outcome, runErr := s.Run(ctx)

	if os.Getenv("PHILO_TEST_LOGS") == "true" {
		t.Logf("--- Output for %s ---\n%s", t.Name(), out.String())
		t.Logf("--- Logs for %s ---\n%s", t.Name(), logs.String())
	}

	return &HarnessResult{
		Outcome:   outcome,
		Err:       runErr,
		Output:    out.String(),
		Lines:     ParseLines(t, out.String()),
		LogOutput: logs.String(),
		Session:   s,
	}
}
