package middlewares

import (
	"fmt"

	gokitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// RecoveryMiddleware turns a panic into a 500 and logs it with its stack.
func RecoveryMiddleware(logger gokitlog.Logger) fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			_ = level.Error(logger).Log("msg", "panic recovered", "path", c.Path(),
				"request_id", c.Locals(RequestIDKey), "panic", fmt.Sprint(e))
		},
	})
}
