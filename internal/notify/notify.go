// Package notify carries user-facing notifications out of the core logic.
//
// Core components decide *that* something noteworthy happened and emit a
// Notification; adapters decide how to render it. This keeps the business
// layer testable without a UI harness.
package notify

import (
	"fmt"
	"io"
	"log/slog"
)

// Level classifies a notification for presentation purposes.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification is a single non-blocking, toast-style message for the user.
type Notification struct {
	Level   Level
	Message string
}

// Notifier delivers notifications to the user.
type Notifier interface {
	Notify(n Notification)
}

// LogNotifier renders notifications through slog. It is the default sink
// when no interactive surface is attached.
type LogNotifier struct{}

func (LogNotifier) Notify(n Notification) {
	switch n.Level {
	case LevelWarning:
		slog.Warn(n.Message, "notification", true)
	case LevelError:
		slog.Error(n.Message, "notification", true)
	default:
		slog.Info(n.Message, "notification", true)
	}
}

// WriterNotifier renders notifications as single lines on a writer. The
// interactive CLI attaches it to stderr so toasts do not interleave with
// transcript output.
type WriterNotifier struct {
	W io.Writer
}

func (w WriterNotifier) Notify(n Notification) {
	fmt.Fprintf(w.W, "[%s] %s\n", n.Level, n.Message)
}
