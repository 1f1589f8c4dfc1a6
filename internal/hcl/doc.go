// Package hcl provides the HCL implementation of the config.Loader
// interface. It parses profile files, evaluates attribute expressions with a
// small function library, and binds the resulting cty values onto
// config.Overrides.
package hcl
