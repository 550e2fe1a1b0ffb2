package types

import "fmt"

// State is the lifecycle position of a vault session.
type State int

const (
	StateClosed State = iota
	StateUnlocking
	StateUnlocked
	StateLocked
)

// String returns a lower-case name for the state.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateUnlocking:
		return "unlocking"
	case StateUnlocked:
		return "unlocked"
	case StateLocked:
		return "locked"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// LockPolicy decides what happens to unsaved changes when a vault locks.
type LockPolicy string

const (
	// LockFlush saves pending changes before locking.
	LockFlush LockPolicy = "flush"
	// LockDiscard drops pending changes; the file keeps its last saved content.
	LockDiscard LockPolicy = "discard"
)

// Valid reports whether p is a known policy.
func (p LockPolicy) Valid() bool { return p == LockFlush || p == LockDiscard }
