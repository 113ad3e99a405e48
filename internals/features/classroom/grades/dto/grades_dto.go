package dto

import (
	"time"

	sessionModel "classroom_backend/internals/features/classroom/sessions/model"

	"github.com/google/uuid"
)

// GradeSession is one attendance record as shown on a report.
type GradeSession struct {
	RecordID      uuid.UUID                     `json:"record_id"`
	SessionID     uuid.UUID                     `json:"session_id"`
	SessionDate   string                        `json:"session_date,omitempty"`
	SessionTitle  *string                       `json:"session_title,omitempty"`
	ClassID       uuid.UUID                     `json:"class_id,omitempty"`
	ClassName     string                        `json:"class_name,omitempty"`
	Attendance    sessionModel.AttendanceStatus `json:"attendance"`
	ClassScore    *float64                      `json:"class_score"`
	HomeworkScore *float64                      `json:"homework_score"`
	Notes         *string                       `json:"notes,omitempty"`
}

// GradeReport is derived on every request and never stored. Averages and
// FinalGrade are rounded to 2 decimals.
type GradeReport struct {
	StudentID             uuid.UUID      `json:"student_id"`
	TotalSessions         int            `json:"total_sessions"`
	PresentCount          int            `json:"present_count"`
	ExcusedAbsenceCount   int            `json:"excused_absence_count"`
	UnexcusedAbsenceCount int            `json:"unexcused_absence_count"`
	AvgClassScore         float64        `json:"avg_class_score"`
	AvgHomeworkScore      float64        `json:"avg_homework_score"`
	AverageScore          float64        `json:"average_score"`
	FinalGrade            float64        `json:"final_grade"`
	DeductionPerAbsence   float64        `json:"deduction_per_absence"`
	Sessions              []GradeSession `json:"sessions"`
}

func FromRecord(m *sessionModel.AttendanceRecordModel) GradeSession {
	out := GradeSession{
		RecordID:      m.AttendanceRecordID,
		SessionID:     m.AttendanceRecordSessionID,
		Attendance:    m.AttendanceRecordAttendance,
		ClassScore:    m.AttendanceRecordClassScore,
		HomeworkScore: m.AttendanceRecordHomeworkScore,
		Notes:         m.AttendanceRecordNotes,
	}
	if s := m.Session; s != nil {
		out.SessionDate = time.Time(s.SessionDate).Format("2006-01-02")
		out.SessionTitle = s.SessionTitle
		out.ClassID = s.SessionClassID
		if s.Class != nil {
			out.ClassName = s.Class.ClassName
		}
	}
	return out
}
