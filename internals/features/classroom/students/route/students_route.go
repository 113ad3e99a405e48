package route

import (
	controller "classroom_backend/internals/features/classroom/students/controller"
	service "classroom_backend/internals/features/classroom/students/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// StudentsRoutes registers /students. Grade routes nest under /students/:id
// and are registered by the grades feature.
func StudentsRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewStudentController(service.New(service.NewGormStore(db)))

	g := r.Group("/students")
	g.Post("/", ctl.Create)
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.Get)
}
