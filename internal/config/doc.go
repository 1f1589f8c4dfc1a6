// Package config defines the Configuration record consumed by the word grid
// pipeline, the format-agnostic profile model, and the Loader interface for
// reading profiles from files.
//
// Concrete implementations of Loader, such as for HCL and YAML, are provided
// in separate packages.
package config
