package tracing

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const TraceIDField = "traceId"

// InjectTraceID attaches a logger carrying a fresh trace id to ctx.
func InjectTraceID(ctx context.Context) context.Context {
	return InjectTraceIDWithFields(ctx, nil)
}

// InjectTraceIDWithFields is InjectTraceID with extra structured fields on the logger.
func InjectTraceIDWithFields(ctx context.Context, fields map[string]any) context.Context {
	logger := log.With().
		Str(TraceIDField, uuid.New().String()).
		Fields(fields).
		Logger()
	return logger.WithContext(ctx)
}
