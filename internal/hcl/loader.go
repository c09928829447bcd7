package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/To0nsa/philo/internal/config"
	"github.com/To0nsa/philo/internal/ctxlog"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses the dinner file at path and translates it into config.File.
func (l *Loader) Load(ctx context.Context, path string) (*config.File, error) {
	logger := ctxlog.FromContext(ctx).With("path", path)
	logger.Debug("HCL loader started.")

	if ext := filepath.Ext(path); ext != ".hcl" {
		return nil, fmt.Errorf("config file %s: expected a .hcl file, got %q", path, ext)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing path %s: %w", path, err)
	}

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	file := &config.File{}
	if root.Table != nil {
		if file.Table, err = l.translateTable(ctx, root.Table); err != nil {
			return nil, fmt.Errorf("in table block of %s: %w", path, err)
		}
	}
	if root.Runtime != nil {
		if file.Runtime, err = l.translateRuntime(ctx, root.Runtime); err != nil {
			return nil, fmt.Errorf("in runtime block of %s: %w", path, err)
		}
	}

	logger.Debug("HCL loading complete.", "table", file.Table != nil, "runtime", file.Runtime != nil)
	return file, nil
}

func (l *Loader) translateTable(ctx context.Context, b *tableBlock) (*config.Table, error) {
	t := &config.Table{}
	var err error
	if t.Philosophers, err = decodeInt(ctx, b.Philosophers, "philosophers"); err != nil {
		return nil, err
	}
	if t.TimeToDie, err = decodeInt(ctx, b.TimeToDie, "time_to_die"); err != nil {
		return nil, err
	}
	if t.TimeToEat, err = decodeInt(ctx, b.TimeToEat, "time_to_eat"); err != nil {
		return nil, err
	}
	if t.TimeToSleep, err = decodeInt(ctx, b.TimeToSleep, "time_to_sleep"); err != nil {
		return nil, err
	}
	if t.Meals, err = decodeInt(ctx, b.Meals, "meals"); err != nil {
		return nil, err
	}
	return t, nil
}

func (l *Loader) translateRuntime(ctx context.Context, b *runtimeBlock) (*config.Runtime, error) {
	r := &config.Runtime{}
	var err error
	if r.PollInterval, err = decodeDuration(ctx, b.PollInterval, "poll_interval"); err != nil {
		return nil, err
	}
	if r.MonitorInterval, err = decodeDuration(ctx, b.MonitorInterval, "monitor_interval"); err != nil {
		return nil, err
	}
	if r.OddRingDelay, err = decodeInt(ctx, b.OddRingDelay, "odd_ring_delay"); err != nil {
		return nil, err
	}
	return r, nil
}
