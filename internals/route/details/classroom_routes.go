package details

import (
	classRoute "classroom_backend/internals/features/classroom/classes/route"
	gradeRoute "classroom_backend/internals/features/classroom/grades/route"
	sessionRoute "classroom_backend/internals/features/classroom/sessions/route"
	settingRoute "classroom_backend/internals/features/classroom/settings/route"
	studentRoute "classroom_backend/internals/features/classroom/students/route"

	"github.com/go-kit/log"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ClassroomRoutes mounts every classroom feature on api.
func ClassroomRoutes(api fiber.Router, db *gorm.DB, logger log.Logger) {
	classRoute.ClassesRoutes(api, db, logger)
	studentRoute.StudentsRoutes(api, db)
	gradeRoute.GradesRoutes(api, db, logger)
	sessionRoute.SessionsRoutes(api, db, logger)
	settingRoute.SettingsRoutes(api, db)
}
