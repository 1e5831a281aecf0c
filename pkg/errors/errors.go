// Package errors provides structured error handling for crossview.
//
// Broken caller contracts (unsatisfiable layout, disallowed construction paths,
// re-entrant writes, unconfigured resolvers) are reported through the active
// ErrorHandler and then abort the current call with a panic. There is no soft
// error channel inside the core.
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
	// KindPrecondition indicates a violated caller contract.
	KindPrecondition
	// KindLayout indicates an unsatisfiable or incomplete layout.
	KindLayout
	// KindAvailability indicates use of a backend the target does not provide.
	KindAvailability
	// KindReentrant indicates a cell written from inside its own notification.
	KindReentrant
	// KindConfig indicates an invalid configuration file or value.
	KindConfig
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindPrecondition:
		return "precondition"
	case KindLayout:
		return "layout"
	case KindAvailability:
		return "availability"
	case KindReentrant:
		return "reentrant"
	case KindConfig:
		return "config"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// ViewError represents a structured error raised by the composition layer.
type ViewError struct {
	// Op is the operation that failed (e.g., "compose.Fill").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *ViewError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ViewError) Unwrap() error {
	return e.Err
}

// PreconditionError describes the contract a caller broke.
type PreconditionError struct {
	// Message explains the violated contract.
	Message string
}

func (e *PreconditionError) Error() string {
	return e.Message
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "view.MakeNative").
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

// ErrorHandler receives errors reported by crossview.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *ViewError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
