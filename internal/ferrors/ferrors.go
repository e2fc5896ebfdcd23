// Package ferrors defines the error-kind vocabulary shared by every
// collaborator in this module (§7 of the design): InvalidInput, IoError,
// ParseError, GeometryError, ProjectionError, and Bug. Every exported
// operation returns errors built through this package instead of bare
// fmt.Errorf, so callers (in particular the CLI) can recover the kind
// with As/Is and pick an exit code.
package ferrors

import (
	"fmt"

	"github.com/rotisserie/eris"
)

// Kind classifies a failure the way §7 of the design enumerates them.
type Kind int

const (
	// InvalidInput covers bad CLI arguments, out-of-range offsets, and
	// disallowed file extensions.
	InvalidInput Kind = iota
	// IoError covers file open/read/write/extract failures.
	IoError
	// ParseError covers XML/DBF/SHP schema violations and malformed ids.
	ParseError
	// GeometryError covers invalid polygons after buffer/simplify and
	// validator failures.
	GeometryError
	// ProjectionError covers projection construction/transform failures.
	ProjectionError
	// Bug marks an internal precondition violation. Most checks return a
	// Bug-kind error like any other kind; a check in a helper that has no
	// error result panics with one instead, and cmd/insetxml's recover
	// site turns such a panic back into a returned Bug-kind error.
	Bug
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "InvalidInput"
	case IoError:
		return "IoError"
	case ParseError:
		return "ParseError"
	case GeometryError:
		return "GeometryError"
	case ProjectionError:
		return "ProjectionError"
	case Bug:
		return "Bug"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type every package in this module returns.
// It carries a Kind plus the human-readable message naming the offending
// file path/record/element, per §7's error policy.
type Error struct {
	Kind Kind
	err  error
}

func (e *Error) Error() string { return e.err.Error() }

func (e *Error) Unwrap() error { return e.err }

// New builds a Kind-tagged error from a message, in the style of eris.New
// so the resulting error carries a stack trace.
func New(kind Kind, msg string) error {
	return &Error{Kind: kind, err: eris.New(msg)}
}

// Errorf builds a Kind-tagged error with fmt.Sprintf-style formatting.
func Errorf(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, err: eris.New(fmt.Sprintf(format, args...))}
}

// Wrap attaches a Kind and a message to an existing error, preserving the
// wrapped error's stack trace via eris.Wrap.
func Wrap(kind Kind, err error, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, err: eris.Wrap(err, msg)}
}

// Wrapf is Wrap with Sprintf-style formatting.
func Wrapf(kind Kind, err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, err: eris.Wrap(err, fmt.Sprintf(format, args...))}
}

// KindOf returns the Kind of err if it (or something it wraps) is a
// *Error, and false otherwise.
func KindOf(err error) (Kind, bool) {
	var fe *Error
	for err != nil {
		if e, ok := err.(*Error); ok {
			fe = e
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	if fe == nil {
		return 0, false
	}
	return fe.Kind, true
}

// Is reports whether err carries the given Kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
