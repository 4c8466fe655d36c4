// Package logging defines the logging contract used across the server and
// an implementation backed by log/slog.
package logging

import "context"

// Logger is the leveled, structured logger passed between components.
// Args follow the slog convention of alternating keys and values.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
	With(args ...any) Logger
}
