package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/To0nsa/philo/internal/app"
	"github.com/To0nsa/philo/internal/cli"
	"github.com/To0nsa/philo/internal/config"
	"github.com/To0nsa/philo/internal/hcl"
	"github.com/To0nsa/philo/internal/termination"
)

// exitInterrupted is the conventional status for a run stopped by SIGINT.
const exitInterrupted = 130

// main is the entrypoint for the philo simulator.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Stdout, os.Stderr, os.Args[1:])
	stop()

	if err != nil {
		code := exitCode(err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(code)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW, errW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, errW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	philoApp := app.NewApp(outW, errW, appConfig, hcl.NewLoader())
	outcome, err := philoApp.Run(ctx)
	if err != nil {
		return err
	}
	if outcome.Cause == termination.Interrupted {
		return &cli.ExitError{Code: exitInterrupted, Message: "interrupted"}
	}
	return nil
}

// exitCode maps an error returned by run to the process exit status.
func exitCode(err error) int {
	var exitErr *cli.ExitError
	switch {
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.Is(err, config.ErrInvalidRules):
		return 2
	default:
		return 1
	}
}
