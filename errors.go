package dmp

import (
	"errors"
	"fmt"
)

// Kind identifies the class of failure an Error reports, per the error
// kinds enumerated for this library: each operation that can fail
// reports one of these instead of an ad-hoc message.
type Kind int

// Kind values.
const (
	// KindNullInput means an operation received an absent text,
	// pattern, or location where one was required.
	KindNullInput Kind = iota + 1
	// KindIllegalEscape means percent-decoding a delta or patch body
	// failed.
	KindIllegalEscape
	// KindInvalidNumber means a delta length token was not a
	// non-negative integer.
	KindInvalidNumber
	// KindInvalidOp means a delta token's operation code was
	// unrecognized.
	KindInvalidOp
	// KindLengthMismatch means delta consumption did not equal the
	// source text length.
	KindLengthMismatch
	// KindInvalidPatch means a patch header was malformed, or that
	// ValidatePatches found a patch whose lengths disagree with its diffs.
	KindInvalidPatch
	// KindInvalidMode means a patch body line's prefix was
	// unrecognized.
	KindInvalidMode
	// KindPatternTooLong means a match pattern exceeded MatchMaxBits.
	KindPatternTooLong
	// KindUnknownCall means PatchMake was called with an argument
	// combination matching none of its accepted shapes.
	KindUnknownCall
	// KindNotInitialized means a patch had no usable start offset:
	// PatchAddContext found its offsets out of range for the text, or
	// ValidatePatches found a patch with no diffs and all-zero fields.
	KindNotInitialized
)

func (k Kind) String() string {
	switch k {
	case KindNullInput:
		return "null-input"
	case KindIllegalEscape:
		return "illegal-escape"
	case KindInvalidNumber:
		return "invalid-number"
	case KindInvalidOp:
		return "invalid-op"
	case KindLengthMismatch:
		return "length-mismatch"
	case KindInvalidPatch:
		return "invalid-patch"
	case KindInvalidMode:
		return "invalid-mode"
	case KindPatternTooLong:
		return "pattern-too-long"
	case KindUnknownCall:
		return "unknown-call"
	case KindNotInitialized:
		return "not-initialized"
	default:
		return "unknown"
	}
}

// Error reports a failure from a dmp operation, identifying which
// operation failed, what kind of failure it was, and the offending
// values.
type Error struct {
	Kind   Kind
	Op     string
	Detail string
	Err    error // wrapped cause, if any
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("dmp: %s: %s", e.Op, e.Kind)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error with the same Kind, so callers
// can compare against a sentinel *Error via errors.Is.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return other.Kind == e.Kind
	}
	return false
}

func newError(op string, kind Kind, detail string) *Error {
	return &Error{Op: op, Kind: kind, Detail: detail}
}

func wrapError(op string, kind Kind, detail string, err error) *Error {
	return &Error{Op: op, Kind: kind, Detail: detail, Err: err}
}

// ErrorKind returns the Kind carried by err if err is (or wraps) an
// *Error produced by this package, and ok=false otherwise.
func ErrorKind(err error) (kind Kind, ok bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
