package middlewares

import (
	"os"

	"classroom_backend/internals/configs"
	accessLogger "classroom_backend/internals/middlewares/logger"

	gokitlog "github.com/go-kit/log"
	"github.com/gofiber/fiber/v2"
)

// SetupMiddlewares installs the stack in order: recover, request context,
// access log, cors, rate limit.
func SetupMiddlewares(app *fiber.App, cfg *configs.Config, logger gokitlog.Logger) {
	app.Use(RecoveryMiddleware(logger))
	app.Use(RequestContext(cfg.RequestTimeout, logger))
	app.Use(accessLogger.LoggerMiddleware(os.Stdout))
	app.Use(CorsMiddleware(cfg.CorsAllowOrigins))
	app.Use(GlobalRateLimiter(cfg.RateLimitMax))
}
