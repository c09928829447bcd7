package config

import "context"

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads the file at path and translates it into the
	// format-agnostic File model. Attributes absent from the file stay nil.
	Load(ctx context.Context, path string) (*File, error)
}
