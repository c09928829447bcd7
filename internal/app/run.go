package app

import (
	"context"
	"fmt"

	"github.com/To0nsa/philo/internal/ctxlog"
	"github.com/To0nsa/philo/internal/monitor"
	"github.com/To0nsa/philo/internal/session"
)

// Run executes one dinner based on the App's configuration. It returns once
// every philosopher has left the table and all resources are released.
func (a *App) Run(ctx context.Context) (monitor.Outcome, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	rules, err := a.Rules(ctx)
	if err != nil {
		return monitor.Outcome{}, err
	}

	s, err := session.New(ctx, rules, a.sessionOptions()...)
	if err != nil {
		return monitor.Outcome{}, fmt.Errorf("failed to set the table: %w", err)
	}
	a.setSession(s)

	a.healthCheckServer()
	defer func() {
		if err := a.closeHealthCheckServer(); err != nil {
			a.logger.Warn("Health check server did not stop cleanly.", "error", err)
		}
	}()

	outcome, err := s.Run(ctx)
	if err != nil {
		return outcome, fmt.Errorf("dinner failed: %w", err)
	}

	a.logger.Debug("App.Run method finished.", "run", s.RunID(), "cause", outcome.Cause)
	return outcome, nil
}
