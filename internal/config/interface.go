package config

import "context"

// Loader is the interface for a format-specific profile loader.
type Loader interface {
	// Load reads every profile defined in the file at path and translates it
	// into the format-agnostic model.
	Load(ctx context.Context, path string) ([]*Profile, error)

	// Extensions lists the file extensions this loader understands,
	// including the leading dot.
	Extensions() []string
}
