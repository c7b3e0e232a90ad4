package packedbits

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange is returned when a writable reference is requested
	// for a position outside [0, Len()).
	ErrIndexOutOfRange = errors.New("packedbits: index out of range")

	// ErrMalformedList is returned when a textual list cannot be parsed.
	ErrMalformedList = errors.New("packedbits: malformed list")

	// ErrNotFound is returned by the Redis store for unknown keys.
	ErrNotFound = errors.New("packedbits: not found")

	// ErrInvalidData is returned when a binary or compressed payload is corrupt.
	ErrInvalidData = errors.New("packedbits: invalid data")
)

// IndexError reports an out-of-range reference request.
//
// errors.Is(err, ErrIndexOutOfRange) holds for every IndexError.
type IndexError struct {
	Index int
	Size  int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("packedbits: index %d out of range [0,%d)", e.Index, e.Size)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }

// ParseError reports malformed textual input, with the byte offset
// at which parsing stopped.
type ParseError struct {
	Offset int
	Msg    string
	cause  error
}

func (e *ParseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("packedbits: parse error at offset %d: %s: %v", e.Offset, e.Msg, e.cause)
	}
	return fmt.Sprintf("packedbits: parse error at offset %d: %s", e.Offset, e.Msg)
}

func (e *ParseError) Unwrap() []error {
	if e.cause != nil {
		return []error{ErrMalformedList, e.cause}
	}
	return []error{ErrMalformedList}
}
