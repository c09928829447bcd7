package session

import (
	"context"

	"github.com/To0nsa/philo/internal/ctxlog"
)

type cleanup struct {
	name string
	fn   func()
}

// pushCleanup adds a release function to the LIFO cleanup stack.
func (s *Session) pushCleanup(name string, fn func()) {
	s.cleanupMu.Lock()
	defer s.cleanupMu.Unlock()
	s.cleanupStack = append(s.cleanupStack, cleanup{name: name, fn: fn})
}

// executeCleanupStack runs all registered cleanup functions in LIFO order.
// It is safe to call more than once; later calls find an empty stack.
func (s *Session) executeCleanupStack(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)
	s.cleanupMu.Lock()
	defer s.cleanupMu.Unlock()
	logger.Debug("Executing cleanup stack...", "entries", len(s.cleanupStack))
	for i := len(s.cleanupStack) - 1; i >= 0; i-- {
		c := s.cleanupStack[i]
		logger.Debug("Releasing resource.", "resource", c.name)
		c.fn()
	}
	s.cleanupStack = nil
}
