package app

import (
	"errors"

	"github.com/To0nsa/philo/internal/config"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ConfigPath string // optional hcl file

	// Table carries the positional arguments; they win over the file.
	Table config.Table
	// OddRingDelay overrides the file when non-nil; milliseconds, -1 is auto.
	OddRingDelay *int

	LogFormat       string
	LogLevel        string
	HealthcheckPort int

	FeedURL       string
	FeedNamespace string
}

// NewConfig checks that the dinner can be fully described: either a file is
// given or all four mandatory arguments are.
func NewConfig(cfg Config) (*Config, error) {
	t := cfg.Table
	complete := t.Philosophers != nil && t.TimeToDie != nil && t.TimeToEat != nil && t.TimeToSleep != nil
	if cfg.ConfigPath == "" && !complete {
		return nil, errors.New("Wrong format")
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, errors.New("healthcheck-port must be between 0 and 65535")
	}
	return &cfg, nil
}
