package errs

import (
	"errors"
	"fmt"

	"github.com/ztrue/tracerr"
)

type Kind int

const (
	Unknown Kind = iota
	NotFound
	InvalidFormat
	NoOffsetFound
	NoImages
	EmptyShiftPattern
	ExternalToolFailure
	UnsupportedTrackFormat
)

var kindNames = map[Kind]string{
	Unknown:                "Unknown",
	NotFound:               "NotFound",
	InvalidFormat:          "InvalidFormat",
	NoOffsetFound:          "NoOffsetFound",
	NoImages:               "NoImages",
	EmptyShiftPattern:      "EmptyShiftPattern",
	ExternalToolFailure:    "ExternalToolFailure",
	UnsupportedTrackFormat: "UnsupportedTrackFormat",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is a classified failure. Values are always handed out wrapped by
// tracerr so the creation site travels with them.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, format string, args ...interface{}) error {
	return tracerr.Wrap(&Error{Kind: kind, Msg: fmt.Sprintf(format, args...)})
}

// Wrap classifies err. A nil err stays nil.
func Wrap(kind Kind, err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return tracerr.Wrap(&Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err})
}

// Is reports whether any error in the chain of err has the given kind.
func Is(err error, kind Kind) bool {
	for err != nil {
		err = tracerr.Unwrap(err)
		if e, ok := err.(*Error); ok && e.Kind == kind {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// KindOf returns the kind of the outermost classified error in the chain.
func KindOf(err error) Kind {
	for err != nil {
		err = tracerr.Unwrap(err)
		if e, ok := err.(*Error); ok {
			return e.Kind
		}
		err = errors.Unwrap(err)
	}
	return Unknown
}

// Sprint renders err for the terminal, with source lines when verbose.
func Sprint(err error, verbose bool) string {
	if err == nil {
		return ""
	}
	if verbose {
		return tracerr.SprintSource(tracerr.Wrap(err), 2)
	}
	return err.Error()
}
