package database

import (
	classModel "classroom_backend/internals/features/classroom/classes/model"
	sessionModel "classroom_backend/internals/features/classroom/sessions/model"
	settingModel "classroom_backend/internals/features/classroom/settings/model"
	studentModel "classroom_backend/internals/features/classroom/students/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Models lists the tables in dependency order.
func Models() []any {
	return []any{
		&studentModel.UserModel{},
		&studentModel.StudentModel{},
		&classModel.ClassModel{},
		&classModel.ClassStudentModel{},
		&sessionModel.SessionModel{},
		&sessionModel.AttendanceRecordModel{},
		&settingModel.SettingModel{},
	}
}

// Migrate creates tables and the unique indexes the services rely on:
// (class, student) enrollment, (session, student) record, setting key,
// user email and student national id.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return errors.Wrap(err, "enable pgcrypto")
	}
	return errors.Wrap(db.AutoMigrate(Models()...), "auto migrate")
}
