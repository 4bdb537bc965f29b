// Package calcerr defines the input-error taxonomy shared by the weighting
// and labor-return engines. Every error returned for bad input is a *Error
// whose kind can be matched with errors.Is against one of the sentinels.
package calcerr

import (
	"errors"
	"fmt"
)

// Kind classifies an input error.
type Kind int

const (
	// KindStructural covers shape problems: non-square matrix, wrong value count.
	KindStructural Kind = iota + 1
	// KindDomain covers values outside their allowed domain.
	KindDomain
	// KindArithmetic covers guards in front of a division.
	KindArithmetic
)

var (
	ErrStructural = errors.New("structural error")
	ErrDomain     = errors.New("domain error")
	ErrArithmetic = errors.New("arithmetic guard")
)

func (k Kind) String() string {
	switch k {
	case KindStructural:
		return "structural"
	case KindDomain:
		return "domain"
	case KindArithmetic:
		return "arithmetic"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindStructural:
		return ErrStructural
	case KindDomain:
		return ErrDomain
	case KindArithmetic:
		return ErrArithmetic
	default:
		return nil
	}
}

// Error is a caller-input error. Field names the offending input when there is one.
type Error struct {
	Kind    Kind
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Kind.sentinel() }

func newError(k Kind, field, format string, args ...interface{}) *Error {
	return &Error{Kind: k, Field: field, Message: fmt.Sprintf(format, args...)}
}

// Structural returns a KindStructural error.
func Structural(field, format string, args ...interface{}) error {
	return newError(KindStructural, field, format, args...)
}

// Domain returns a KindDomain error.
func Domain(field, format string, args ...interface{}) error {
	return newError(KindDomain, field, format, args...)
}

// Arithmetic returns a KindArithmetic error.
func Arithmetic(field, format string, args ...interface{}) error {
	return newError(KindArithmetic, field, format, args...)
}

// KindOf reports the kind of err, or 0 if err is not an input error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsInput reports whether err is any caller-input error.
func IsInput(err error) bool {
	return KindOf(err) != 0
}
