package route

import (
	controller "classroom_backend/internals/features/classroom/sessions/controller"
	service "classroom_backend/internals/features/classroom/sessions/service"

	"github.com/go-kit/log"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SessionsRoutes(r fiber.Router, db *gorm.DB, logger log.Logger) {
	ctl := controller.NewSessionController(service.New(service.NewGormStore(db), logger))

	g := r.Group("/sessions")
	g.Post("/", ctl.Create)
	g.Get("/", ctl.List)
	g.Put("/students", ctl.PutRecord)
	g.Get("/:id", ctl.Get)
	g.Patch("/:id/students/:student_id", ctl.PatchRecord)
}
