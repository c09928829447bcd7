package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/To0nsa/philo/internal/config"
	"github.com/To0nsa/philo/internal/ctxlog"
	"github.com/To0nsa/philo/internal/feed"
	"github.com/To0nsa/philo/internal/session"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	loader config.Loader
	opts   []session.Option

	ctx        context.Context
	httpServer *http.Server

	mu      sync.RWMutex
	session *session.Session
}

// NewApp is the constructor for the main application. Action lines go to
// outW, diagnostics to errW.
func NewApp(outW, errW io.Writer, cfg *Config, loader config.Loader, opts ...session.Option) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, errW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		loader: loader,
		opts:   opts,
		ctx:    ctxlog.WithLogger(context.Background(), logger),
	}
}

// Rules merges the optional config file with the command-line values and
// validates the result.
func (a *App) Rules(ctx context.Context) (config.Rules, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	in := config.NewInput()

	if a.config.ConfigPath != "" {
		file, err := a.loader.Load(ctx, a.config.ConfigPath)
		if err != nil {
			return config.Rules{}, fmt.Errorf("failed to load configuration: %w", err)
		}
		file.ApplyTo(&in)
		a.logger.Debug("Configuration file applied.", "path", a.config.ConfigPath)
	}

	overrides := &config.File{
		Table:   &a.config.Table,
		Runtime: &config.Runtime{OddRingDelay: a.config.OddRingDelay},
	}
	overrides.ApplyTo(&in)

	return config.NewRules(in)
}

func (a *App) sessionOptions() []session.Option {
	opts := []session.Option{session.WithOutput(a.outW)}
	if a.config.FeedURL != "" {
		opts = append(opts, session.WithSinks(feed.Opener(feed.Options{
			URL:       a.config.FeedURL,
			Namespace: a.config.FeedNamespace,
		})))
	}
	return append(opts, a.opts...)
}

func (a *App) setSession(s *session.Session) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session = s
}

func (a *App) currentSession() *session.Session {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session
}
