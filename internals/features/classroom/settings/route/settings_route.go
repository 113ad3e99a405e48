package route

import (
	controller "classroom_backend/internals/features/classroom/settings/controller"
	service "classroom_backend/internals/features/classroom/settings/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SettingsRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewSettingsController(service.New(service.NewGormStore(db)))

	g := r.Group("/settings")
	g.Get("/", ctl.List)
	g.Put("/", ctl.Put)
}
