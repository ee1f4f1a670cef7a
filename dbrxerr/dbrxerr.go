// Package dbrxerr defines the error kinds raised by the engine:
// ConfigurationError, WiringError, TypeError, ScheduleError and
// ResourceError. All five are values of the single Error struct, told
// apart by its Kind and carrying key/value context, so an error can both
// satisfy the error interface and log itself as a structured zap field,
// following the pattern in bg/common/zaperr.
package dbrxerr

import (
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
)

// Kind identifies which of the five error classes an error belongs to.
type Kind int

const (
	// Configuration covers malformed JSON, type mismatches during
	// applyConfig, unknown dynamic type names, and bad variable syntax.
	Configuration Kind = iota
	// Wiring covers unresolvable reference paths, non-sibling sourcing,
	// duplicate or reserved component names.
	Wiring
	// Type covers slot binding mismatches and bad PropVal casts.
	Type
	// Schedule covers graph cycles, deadlocks, and post-finish steps.
	Schedule
	// Resource covers stream-ownership conflicts and host-loader failures.
	Resource
)

func (k Kind) String() string {
	switch k {
	case Configuration:
		return "ConfigurationError"
	case Wiring:
		return "WiringError"
	case Type:
		return "TypeError"
	case Schedule:
		return "ScheduleError"
	case Resource:
		return "ResourceError"
	default:
		return "UnknownError"
	}
}

// Error is the engine's structured error type. It carries a kind, a
// message, and an optional set of key/value pairs for structured
// logging, along with an optional wrapped cause.
type Error struct {
	kind Kind
	msg  string
	kv   []interface{}
	err  error
}

// Error satisfies the error interface.
func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.kind, e.msg, e.err)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.msg)
}

// Unwrap exposes the wrapped cause, if any, for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.err
}

// Kind returns the error's class.
func (e *Error) Kind() Kind {
	return e.kind
}

// MarshalLogObject lets a *Error be passed directly to zap.Error /
// zap.Object, following bg/common/zaperr's ZapError.MarshalLogObject.
func (e *Error) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("kind", e.kind.String())
	enc.AddString("msg", e.msg)
	for i := 0; i+1 < len(e.kv); i += 2 {
		key, ok := e.kv[i].(string)
		if !ok {
			continue
		}
		enc.AddReflected(key, e.kv[i+1])
	}
	if e.err != nil {
		enc.AddString("cause", e.err.Error())
	}
	return nil
}

func build(kind Kind, format string, args ...interface{}) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Configurationf builds a ConfigurationError.
func Configurationf(format string, args ...interface{}) *Error {
	return build(Configuration, format, args...)
}

// Wiringf builds a WiringError.
func Wiringf(format string, args ...interface{}) *Error {
	return build(Wiring, format, args...)
}

// Typef builds a TypeError.
func Typef(format string, args ...interface{}) *Error {
	return build(Type, format, args...)
}

// Schedulef builds a ScheduleError.
func Schedulef(format string, args ...interface{}) *Error {
	return build(Schedule, format, args...)
}

// Resourcef builds a ResourceError.
func Resourcef(format string, args ...interface{}) *Error {
	return build(Resource, format, args...)
}

// Wrap attaches a cause to an existing *Error, preserving its kind, and
// records a stack trace on the cause via github.com/pkg/errors so the
// original site of failure survives CLI-level reporting.
func (e *Error) Wrap(cause error) *Error {
	e.err = errors.WithStack(cause)
	return e
}

// With appends key/value context to an error for structured logging,
// mirroring zaperr's variadic With-style construction.
func (e *Error) With(kv ...interface{}) *Error {
	e.kv = append(e.kv, kv...)
	return e
}

// Is reports whether err is a dbrxerr.Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.kind == kind
}
