// Package domain defines the vault's core data models, contracts and error
// taxonomy. It contains plain types (types/), interfaces (interfaces/) and the
// error kinds every layer reports through.
package domain
