package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

/* =========================
   Enums
========================= */

type UserRole string

const (
	UserRoleAdmin   UserRole = "ADMIN"
	UserRoleParent  UserRole = "PARENT"
	UserRoleStudent UserRole = "STUDENT"
)

/* =========================
   Model: users
========================= */

type UserModel struct {
	UserID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:user_id" json:"user_id"`
	UserEmail    string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_users_email;column:user_email" json:"user_email"`
	UserPassword string    `gorm:"type:text;not null;column:user_password" json:"-"`
	UserName     string    `gorm:"type:varchar(160);not null;column:user_name" json:"user_name"`
	UserRole     UserRole  `gorm:"type:varchar(20);not null;default:'STUDENT';column:user_role" json:"user_role"`

	UserCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:user_created_at" json:"user_created_at"`
	UserUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:user_updated_at" json:"user_updated_at"`
}

func (UserModel) TableName() string { return "users" }

/* =========================
   Model: students
========================= */

type StudentModel struct {
	StudentID         uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:student_id" json:"student_id"`
	StudentUserID     *uuid.UUID      `gorm:"type:uuid;uniqueIndex:uq_students_user;column:student_user_id" json:"student_user_id,omitempty"`
	StudentFirstName  string          `gorm:"type:varchar(100);not null;column:student_first_name" json:"student_first_name"`
	StudentLastName   string          `gorm:"type:varchar(100);not null;index:idx_students_last_name;column:student_last_name" json:"student_last_name"`
	StudentNationalID string          `gorm:"type:varchar(32);not null;uniqueIndex:uq_students_national_id;column:student_national_id" json:"student_national_id"`
	StudentPhone      *string         `gorm:"type:varchar(32);column:student_phone" json:"student_phone,omitempty"`
	StudentAddress    *string         `gorm:"type:text;column:student_address" json:"student_address,omitempty"`
	StudentBirthDate  *datatypes.Date `gorm:"type:date;column:student_birth_date" json:"student_birth_date,omitempty"`

	StudentCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:student_created_at" json:"student_created_at"`
	StudentUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:student_updated_at" json:"student_updated_at"`

	User *UserModel `gorm:"foreignKey:StudentUserID;references:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

func (StudentModel) TableName() string { return "students" }

func (m StudentModel) FullName() string {
	if m.StudentLastName == "" {
		return m.StudentFirstName
	}
	return m.StudentFirstName + " " + m.StudentLastName
}
