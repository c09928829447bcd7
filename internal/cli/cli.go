package cli

import (
	"flag"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/To0nsa/philo/internal/app"
	"github.com/To0nsa/philo/internal/config"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

const usageLine = "Usage: ./philo <number_of_philosophers> <time_to_die> <time_to_eat> <time_to_sleep>\n (Opt : <nbr_of_times_each_philosopher_must_eat>)"

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("philo", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
philo - A concurrent dining philosophers simulator.

Usage:
  philo [options] <number_of_philosophers> <time_to_die> <time_to_eat> <time_to_sleep> [meals]
  philo -config dinner.hcl [arguments overriding the file]

Arguments:
  Times are in milliseconds. The dinner ends when a philosopher dies or,
  if meals is given, when every philosopher has eaten that many times.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to an .hcl file describing the dinner.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health and status server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	feedURLFlag := flagSet.String("feed-url", "", "socket.io server to stream actions to, e.g. http://localhost:3000.")
	feedNamespaceFlag := flagSet.String("feed-namespace", "/", "socket.io namespace for the action feed.")
	oddRingFlag := flagSet.Int("odd-ring-delay", config.AutoOddRingDelay, "Extra wait in ms after sleeping on odd tables. -1 picks time_to_eat, 0 disables.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	positional := flagSet.Args()
	if n := len(positional); n > 5 || (*configFlag == "" && n < 4) {
		return nil, false, &ExitError{Code: 2, Message: "Wrong format\n" + usageLine}
	}

	values := make([]*int, 5)
	for i, raw := range positional {
		v, err := parseArgument(raw)
		if err != nil {
			return nil, false, err
		}
		values[i] = &v
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	cfg := app.Config{
		ConfigPath: *configFlag,
		Table: config.Table{
			Philosophers: values[0],
			TimeToDie:    values[1],
			TimeToEat:    values[2],
			TimeToSleep:  values[3],
			Meals:        values[4],
		},
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		HealthcheckPort: *healthPortFlag,
		FeedURL:         *feedURLFlag,
		FeedNamespace:   *feedNamespaceFlag,
	}
	// Only an explicit flag overrides the file.
	flagSet.Visit(func(f *flag.Flag) {
		if f.Name == "odd-ring-delay" {
			cfg.OddRingDelay = oddRingFlag
		}
	})

	appConfig, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	return appConfig, false, nil
}

// parseArgument accepts only plain decimal digits that fit in an int32.
// Range checks are left to config.NewRules.
func parseArgument(raw string) (int, error) {
	if raw == "" || strings.TrimLeft(raw, "0123456789") != "" {
		return 0, &ExitError{Code: 2, Message: "Wrong format: Arguments can only be positive integers"}
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v > math.MaxInt32 {
		return 0, &ExitError{Code: 2, Message: "Error: integer overflow detected"}
	}
	return int(v), nil
}
