package domain

import (
	"errors"
	"fmt"
)

// Kind classifies an engine error.
type Kind int

const (
	KindUnknown Kind = iota
	// KindAuthentication covers wrong passwords and tampered ciphertext alike.
	KindAuthentication
	// KindFormat covers structurally invalid plaintext and unsupported versions.
	KindFormat
	// KindIO covers missing, unreadable or unwritable files.
	KindIO
	// KindValidation covers bad caller input such as an empty generator policy.
	KindValidation
	// KindNotFound covers operations on absent entries or categories.
	KindNotFound
)

// String returns the taxonomy name of the kind.
func (k Kind) String() string {
	switch k {
	case KindAuthentication:
		return "authentication error"
	case KindFormat:
		return "format error"
	case KindIO:
		return "io error"
	case KindValidation:
		return "validation error"
	case KindNotFound:
		return "not found"
	default:
		return "error"
	}
}

// MsgCannotOpen is the only message shown for unlock failures.
const MsgCannotOpen = "incorrect password or corrupted file"

// Kind sentinels. errors.Is(err, ErrNotFound) matches any *Error of that kind.
var (
	ErrAuthentication = &Error{Kind: KindAuthentication}
	ErrFormat         = &Error{Kind: KindFormat}
	ErrIO             = &Error{Kind: KindIO}
	ErrValidation     = &Error{Kind: KindValidation}
	ErrNotFound       = &Error{Kind: KindNotFound}
)

// Session state errors.
var (
	ErrLocked      = errors.New("vault is locked")
	ErrClosed      = errors.New("vault is closed")
	ErrAlreadyOpen = errors.New("vault already open in this process")
	ErrExists      = errors.New("vault file already exists")
	ErrUnsupported = errors.New("unsupported vault version")
)

// Error is the structured error returned across the engine boundary.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

// E builds an *Error of kind k for operation op wrapping err.
func E(k Kind, op string, err error) *Error {
	return &Error{Kind: k, Op: op, Err: err}
}

// Errorf builds an *Error of kind k with a formatted message.
func Errorf(k Kind, op, format string, args ...any) *Error {
	return &Error{Kind: k, Op: op, Msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Op == "" {
		return msg
	}
	return e.Op + ": " + msg
}

// Unwrap exposes the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Is matches kind sentinels: a bare *Error with only Kind set.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Op != "" || t.Msg != "" || t.Err != nil {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the outermost *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
