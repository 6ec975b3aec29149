package serverutils

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const CorrelationIDHeader = "X-Correlation-ID"

type correlationContextKey struct{}

// CorrelationIDContextKey carries the correlation id through context so
// outbound collaborator calls can forward it.
var CorrelationIDContextKey = correlationContextKey{}

func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, CorrelationIDContextKey, correlationID)
}

func CorrelationIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CorrelationIDContextKey).(string); ok {
		return v
	}
	return ""
}

// CorrelationMiddleware honors an incoming correlation id or mints one, and
// echoes it on the response so callers can stitch traces across services.
func CorrelationMiddleware(ctx *fiber.Ctx) error {
	correlationID := ctx.Get(CorrelationIDHeader)
	if correlationID == "" {
		correlationID = uuid.NewString()
	}
	ctx.Locals("correlation_id", correlationID)
	ctx.Set(CorrelationIDHeader, correlationID)
	return ctx.Next()
}
