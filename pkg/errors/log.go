package errors

import (
	"os"

	"github.com/rs/zerolog"
)

// LogHandler is an ErrorHandler that writes structured events through zerolog.
type LogHandler struct {
	// Verbose enables stack traces in the output.
	Verbose bool
	// Logger receives the events. A zero Logger writes to stderr.
	Logger *zerolog.Logger
}

func (h *LogHandler) logger() *zerolog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	l := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	h.Logger = &l
	return h.Logger
}

// HandleError logs a ViewError.
func (h *LogHandler) HandleError(err *ViewError) {
	if err == nil {
		return
	}
	ev := h.logger().Error().
		Str("op", err.Op).
		Stringer("kind", err.Kind).
		Err(err.Err)
	if h.Verbose && err.StackTrace != "" {
		ev = ev.Str("stack", err.StackTrace)
	}
	ev.Msg("crossview error")
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	ev := h.logger().Error().Interface("value", err.Value)
	if err.Op != "" {
		ev = ev.Str("op", err.Op)
	}
	if h.Verbose && err.StackTrace != "" {
		ev = ev.Str("stack", err.StackTrace)
	}
	ev.Msg("crossview panic")
}
