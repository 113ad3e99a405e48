package model

import (
	"strings"
	"time"

	classModel "classroom_backend/internals/features/classroom/classes/model"
	studentModel "classroom_backend/internals/features/classroom/students/model"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

/* =========================
   Enums
========================= */

type AttendanceStatus string

const (
	AttendancePresent          AttendanceStatus = "PRESENT"
	AttendanceExcusedAbsence   AttendanceStatus = "EXCUSED_ABSENCE"
	AttendanceUnexcusedAbsence AttendanceStatus = "UNEXCUSED_ABSENCE"
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceExcusedAbsence, AttendanceUnexcusedAbsence:
		return true
	}
	return false
}

// ParseAttendanceStatus accepts any casing and surrounding spaces.
func ParseAttendanceStatus(s string) (AttendanceStatus, bool) {
	st := AttendanceStatus(strings.ToUpper(strings.TrimSpace(s)))
	return st, st.Valid()
}

/* =========================
   Model: class_sessions
========================= */

type SessionModel struct {
	SessionID          uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:session_id" json:"session_id"`
	SessionClassID     uuid.UUID         `gorm:"type:uuid;not null;index:idx_sessions_class_date,priority:1;column:session_class_id" json:"session_class_id"`
	SessionDate        datatypes.Date    `gorm:"type:date;not null;index:idx_sessions_class_date,priority:2;column:session_date" json:"session_date"`
	SessionTitle       *string           `gorm:"type:varchar(200);column:session_title" json:"session_title,omitempty"`
	SessionDescription *string           `gorm:"type:text;column:session_description" json:"session_description,omitempty"`
	SessionMeta        datatypes.JSONMap `gorm:"type:jsonb;column:session_meta" json:"session_meta,omitempty"`

	SessionCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:session_created_at" json:"session_created_at"`
	SessionUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:session_updated_at" json:"session_updated_at"`

	Class   *classModel.ClassModel  `gorm:"foreignKey:SessionClassID;references:ClassID;constraint:OnDelete:CASCADE" json:"class,omitempty"`
	Records []AttendanceRecordModel `gorm:"foreignKey:AttendanceRecordSessionID;references:SessionID" json:"records,omitempty"`
}

func (SessionModel) TableName() string { return "class_sessions" }

/* =========================
   Model: attendance_records
========================= */

type AttendanceRecordModel struct {
	AttendanceRecordID            uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attendance_record_id" json:"attendance_record_id"`
	AttendanceRecordSessionID     uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_records_pair,priority:1;column:attendance_record_session_id" json:"attendance_record_session_id"`
	AttendanceRecordStudentID     uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_records_pair,priority:2;index:idx_attendance_records_student;column:attendance_record_student_id" json:"attendance_record_student_id"`
	AttendanceRecordAttendance    AttendanceStatus `gorm:"type:varchar(24);not null;default:'PRESENT';column:attendance_record_attendance" json:"attendance_record_attendance"`
	AttendanceRecordClassScore    *float64         `gorm:"type:double precision;column:attendance_record_class_score" json:"attendance_record_class_score"`
	AttendanceRecordHomeworkScore *float64         `gorm:"type:double precision;column:attendance_record_homework_score" json:"attendance_record_homework_score"`
	AttendanceRecordNotes         *string          `gorm:"type:text;column:attendance_record_notes" json:"attendance_record_notes,omitempty"`

	AttendanceRecordCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:attendance_record_created_at" json:"attendance_record_created_at"`
	AttendanceRecordUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:attendance_record_updated_at" json:"attendance_record_updated_at"`

	Session *SessionModel              `gorm:"foreignKey:AttendanceRecordSessionID;references:SessionID;constraint:OnDelete:CASCADE" json:"session,omitempty"`
	Student *studentModel.StudentModel `gorm:"foreignKey:AttendanceRecordStudentID;references:StudentID;constraint:OnDelete:CASCADE" json:"student,omitempty"`
}

func (AttendanceRecordModel) TableName() string { return "attendance_records" }

// NewPendingRecord is the row a fresh session gets for every enrolled student.
func NewPendingRecord(sessionID, studentID uuid.UUID) AttendanceRecordModel {
	return AttendanceRecordModel{
		AttendanceRecordID:         uuid.New(),
		AttendanceRecordSessionID:  sessionID,
		AttendanceRecordStudentID:  studentID,
		AttendanceRecordAttendance: AttendancePresent,
	}
}
