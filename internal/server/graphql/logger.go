package graphql

import (
	"context"
	"runtime/debug"

	"github.com/dmitrijs2005/blogql/internal/logging"
)

// panicLogger reports resolver panics recovered by graphql-go.
type panicLogger struct {
	logger logging.Logger
}

func (l panicLogger) LogPanic(ctx context.Context, value interface{}) {
	l.logger.Error(ctx, "graphql: panic occurred",
		"panic", value,
		"request_id", requestIDFromContext(ctx),
		"stack", string(debug.Stack()),
	)
}
