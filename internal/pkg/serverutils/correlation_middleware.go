package serverutils

import (
	"urban-assistant-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// CorrelationMiddleware puts the request id set by the requestid middleware and
// a correlated logger into the request's user context.
func CorrelationMiddleware(base logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id, _ := ctx.Locals("requestid").(string)
		if id == "" {
			id = ctx.Get(fiber.HeaderXRequestID)
		}
		if id != "" {
			ctx.SetUserContext(logger.WithCorrelation(ctx.UserContext(), base, id))
		}
		return ctx.Next()
	}
}
