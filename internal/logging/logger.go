// Package logging provides the structured logger used across the service.
package logging

import "context"

// Logger is a context-aware, structured logger.
//
// Args are key-value pairs:
//
//	log.Info(ctx, "category created", "category_id", id, "creator_id", userID)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given pairs.
	With(args ...any) Logger
}
