package errors

import (
	"github.com/sirupsen/logrus"
)

// LogHandler is an ErrorHandler that logs through logrus.
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
	// Logger receives the entries. Nil means the logrus standard logger.
	Logger logrus.FieldLogger
}

func (h *LogHandler) logger() logrus.FieldLogger {
	if h.Logger != nil {
		return h.Logger
	}
	return logrus.StandardLogger()
}

// HandleError logs a BridgeError.
func (h *LogHandler) HandleError(err *BridgeError) {
	if err == nil {
		return
	}
	fields := logrus.Fields{
		"op":   err.Op,
		"kind": err.Kind.String(),
	}
	if err.Handle != 0 {
		fields["handle"] = err.Handle
	}
	if err.Event != "" {
		fields["event"] = err.Event
	}
	if h.Verbose && err.StackTrace != "" {
		fields["stack"] = err.StackTrace
	}

	entry := h.logger().WithFields(fields)
	switch err.Kind {
	case KindParsing, KindEnvironment:
		entry.Warn(err.Err)
	default:
		entry.Error(err.Err)
	}
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	fields := logrus.Fields{"kind": KindPanic.String()}
	if err.Op != "" {
		fields["op"] = err.Op
	}
	if h.Verbose && err.StackTrace != "" {
		fields["stack"] = err.StackTrace
	}
	h.logger().WithFields(fields).Errorf("panic: %v", err.Value)
}
