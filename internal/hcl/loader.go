package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/wordgrid/internal/config"
	"github.com/vk/wordgrid/internal/ctxlog"
)

// Loader is the HCL implementation of config.Loader.
type Loader struct {
	converter *Converter
}

// NewLoader creates a new HCL profile loader.
func NewLoader() *Loader {
	return &Loader{converter: NewConverter()}
}

// Extensions implements config.Loader.
func (l *Loader) Extensions() []string {
	return []string{".hcl"}
}

// Load parses the file at path. A fresh parser is used on every call so a
// file edited on disk is always re-read.
func (l *Loader) Load(ctx context.Context, path string) ([]*config.Profile, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading HCL profiles.", "path", path)

	file, diags := hclparse.NewParser().ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}
	profiles, err := l.translateFile(ctx, file.Body, path)
	if err != nil {
		return nil, err
	}
	logger.Debug("HCL profiles loaded.", "path", path, "profiles", len(profiles))
	return profiles, nil
}

// Parse decodes profiles from in-memory HCL source. filename is used in
// diagnostics only.
func (l *Loader) Parse(ctx context.Context, src []byte, filename string) ([]*config.Profile, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	return l.translateFile(ctx, file.Body, filename)
}
