package route

import (
	controller "classroom_backend/internals/features/classroom/grades/controller"
	service "classroom_backend/internals/features/classroom/grades/service"
	sessionService "classroom_backend/internals/features/classroom/sessions/service"
	settingService "classroom_backend/internals/features/classroom/settings/service"

	"github.com/go-kit/log"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func GradesRoutes(r fiber.Router, db *gorm.DB, logger log.Logger) {
	records := sessionService.New(sessionService.NewGormStore(db), logger)
	deduction := settingService.New(settingService.NewGormStore(db))
	ctl := controller.NewGradeController(service.New(records, deduction, logger))

	r.Get("/grades", ctl.ByQuery)
	r.Get("/students/:id/grades", ctl.ByStudent)
	r.Get("/students/:id/grades/export", ctl.Export)
}
