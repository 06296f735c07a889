// Package errors provides structured error reporting for the player bridge.
//
// Failures that have no caller to return to (a surface command that could not
// be delivered, a malformed wire frame, a listener that panicked on the
// dispatcher) are wrapped in a [BridgeError] and sent to the global
// [ErrorHandler] with [Report]. Usage errors that do have a caller are
// returned directly and may also be reported.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindSurface indicates the embedding surface rejected or failed a command.
	KindSurface
	// KindParsing indicates an inbound frame or token could not be parsed.
	KindParsing
	// KindInit indicates an initialization error.
	KindInit
	// KindUsage indicates a programming error by the host (precondition violation).
	KindUsage
	// KindEnvironment indicates a missing or failing host facility, such as
	// the connectivity service.
	KindEnvironment
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindSurface:
		return "surface"
	case KindParsing:
		return "parsing"
	case KindInit:
		return "init"
	case KindUsage:
		return "usage"
	case KindEnvironment:
		return "environment"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// BridgeError represents a structured error raised while bridging a player.
type BridgeError struct {
	// Op is the operation that failed (e.g., "player.Initialize").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Handle is the player handle ID, if applicable.
	Handle int64
	// Event is the raw event or command name, if applicable.
	Event string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *BridgeError) Error() string {
	switch {
	case e.Handle != 0 && e.Event != "":
		return fmt.Sprintf("%s [%s] handle=%d event=%s: %v", e.Op, e.Kind, e.Handle, e.Event, e.Err)
	case e.Handle != 0:
		return fmt.Sprintf("%s [%s] handle=%d: %v", e.Op, e.Kind, e.Handle, e.Err)
	case e.Event != "":
		return fmt.Sprintf("%s [%s] event=%s: %v", e.Op, e.Kind, e.Event, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *BridgeError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "dispatch.Loop").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ParseError represents a failure to parse an inbound frame.
type ParseError struct {
	// Event is the event name the frame claimed to carry.
	Event string
	// DataType is the expected type name.
	DataType string
	// Got is the actual data received.
	Got any
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s from event %q: got %T", e.DataType, e.Event, e.Got)
}

// ErrorHandler receives errors reported by the bridge.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *BridgeError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
