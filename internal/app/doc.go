// Package app wires application dependencies for the CLI.
//
// Config is loaded from YAML with environment overrides and validated once.
// NewWire builds the vault store, generator, scheduler and clipboard guard
// from it, and App is the facade the commands drive: open or create a vault,
// edit entries, generate passwords, copy secrets with a timed clear, and
// lock or close the session.
package app
