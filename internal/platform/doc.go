// Package platform adapts operating system facilities the engine relies on:
// the system clipboard and core dump suppression.
package platform
