package routes

import (
	"time"

	"classroom_backend/internals/configs"
	routeDetails "classroom_backend/internals/route/details"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *configs.Config, logger log.Logger) {
	startTime = time.Now()

	_ = level.Info(logger).Log("msg", "setting up base routes")
	BaseRoutes(app, db, cfg)

	_ = level.Info(logger).Log("msg", "mounting classroom routes")
	api := app.Group("/api")
	routeDetails.ClassroomRoutes(api, db, logger)
}
