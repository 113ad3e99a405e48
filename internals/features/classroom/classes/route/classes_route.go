package route

import (
	controller "classroom_backend/internals/features/classroom/classes/controller"
	service "classroom_backend/internals/features/classroom/classes/service"
	studentService "classroom_backend/internals/features/classroom/students/service"
	"classroom_backend/internals/middlewares"

	"github.com/go-kit/log"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ClassesRoutes(r fiber.Router, db *gorm.DB, logger log.Logger) {
	students := studentService.New(studentService.NewGormStore(db))
	ctl := controller.NewClassController(service.New(service.NewGormStore(db), students, logger))

	g := r.Group("/classes")
	g.Post("/", ctl.Create)
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.Get)
	g.Post("/:id/students", ctl.Enroll)
	g.Post("/:id/students/import", middlewares.ImportRateLimiter(), ctl.ImportRoster)
	g.Delete("/:id/students/:student_id", ctl.Unenroll)
}
