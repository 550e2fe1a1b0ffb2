// Package commands defines the svault CLI and wires dependencies for subcommands.
//
// Commands
//
//   - create     Create a new vault
//   - info       Print the vault header and fingerprint
//   - list       List entries, optionally filtered by category or search text
//   - add        Add an entry
//   - show       Print one entry
//   - edit       Change fields of an entry
//   - rm         Remove an entry
//   - category   List, add, rename or remove categories
//   - generate   Generate a random password
//   - copy       Copy an entry field to the clipboard with a timed clear
//   - passwd     Change the master password
//
// # Implementation
//
// The root command loads the configuration and builds the app before any
// subcommand runs. Commands that touch entries open the vault with the
// master password from -p or a terminal prompt, save after mutating, and the
// vault is locked and closed when the command returns, success or not.
// Errors map to exit codes by kind: 2 authentication, 3 format, 4 not found,
// 5 validation, 6 I/O, 1 anything else.
package commands
