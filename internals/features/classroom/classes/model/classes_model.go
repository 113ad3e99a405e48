package model

import (
	"time"

	studentModel "classroom_backend/internals/features/classroom/students/model"

	"github.com/google/uuid"
)

const DefaultMaxStudents = 30

/* =========================
   Model: classes
========================= */

type ClassModel struct {
	ClassID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:class_id" json:"class_id"`
	ClassName        string    `gorm:"type:varchar(160);not null;column:class_name" json:"class_name"`
	ClassSlug        string    `gorm:"type:varchar(160);not null;uniqueIndex:uq_classes_slug;column:class_slug" json:"class_slug"`
	ClassDescription *string   `gorm:"type:text;column:class_description" json:"class_description,omitempty"`
	ClassGrade       *string   `gorm:"type:varchar(40);column:class_grade" json:"class_grade,omitempty"`
	ClassMaxStudents int       `gorm:"not null;default:30;column:class_max_students" json:"class_max_students"`

	ClassCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;index:idx_classes_created_at,sort:desc;column:class_created_at" json:"class_created_at"`
	ClassUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:class_updated_at" json:"class_updated_at"`

	Enrollments []ClassStudentModel `gorm:"foreignKey:ClassStudentClassID;references:ClassID" json:"enrollments,omitempty"`
}

func (ClassModel) TableName() string { return "classes" }

/* =========================
   Model: class_students (enrollment)
========================= */

type ClassStudentModel struct {
	ClassStudentID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:class_student_id" json:"class_student_id"`
	ClassStudentClassID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_class_students_pair,priority:1;column:class_student_class_id" json:"class_student_class_id"`
	ClassStudentStudentID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_class_students_pair,priority:2;index:idx_class_students_student;column:class_student_student_id" json:"class_student_student_id"`
	ClassStudentEnrolledAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:class_student_enrolled_at" json:"class_student_enrolled_at"`

	Class   *ClassModel                `gorm:"foreignKey:ClassStudentClassID;references:ClassID;constraint:OnDelete:CASCADE" json:"class,omitempty"`
	Student *studentModel.StudentModel `gorm:"foreignKey:ClassStudentStudentID;references:StudentID;constraint:OnDelete:CASCADE" json:"student,omitempty"`
}

func (ClassStudentModel) TableName() string { return "class_students" }
