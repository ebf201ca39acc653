// Package logging defines the small structured-logging facade used across the
// client. The console (or, in TUI mode, a log file) is the only diagnostic
// channel besides the UI itself, so the surface stays deliberately minimal.
package logging

import "context"

// Logger is a context-aware, structured logger. The variadic args are
// interpreted as key–value pairs:
//
//	log.Info(ctx, "post created", "id", post.ID)
type Logger interface {
	// Debug logs fine-grained diagnostics (request/response traces).
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given
	// key–value pairs.
	With(args ...any) Logger
}
