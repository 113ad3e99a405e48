package dto

import (
	"strings"
	"time"

	model "classroom_backend/internals/features/classroom/classes/model"
	studentDTO "classroom_backend/internals/features/classroom/students/dto"

	"github.com/google/uuid"
)

/* =========================================================
   REQUEST: CREATE
========================================================= */

type CreateClassRequest struct {
	Name        string  `json:"name"         validate:"required,max=160"`
	Description *string `json:"description"`
	Grade       *string `json:"grade"        validate:"omitempty,max=40"`
	MaxStudents *int    `json:"max_students" validate:"omitempty,min=1,max=1000"`
}

func (r *CreateClassRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = trimPtr(r.Description)
	r.Grade = trimPtr(r.Grade)
}

func (r CreateClassRequest) ToModel(id uuid.UUID, slug string) *model.ClassModel {
	maxStudents := model.DefaultMaxStudents
	if r.MaxStudents != nil && *r.MaxStudents > 0 {
		maxStudents = *r.MaxStudents
	}
	return &model.ClassModel{
		ClassID:          id,
		ClassName:        r.Name,
		ClassSlug:        slug,
		ClassDescription: r.Description,
		ClassGrade:       r.Grade,
		ClassMaxStudents: maxStudents,
	}
}

/* =========================================================
   REQUEST: ENROLL
========================================================= */

type EnrollRequest struct {
	StudentID string `json:"student_id" validate:"required"`
}

/* =========================================================
   RESPONSE
========================================================= */

type ClassResponse struct {
	ClassID          uuid.UUID `json:"class_id"`
	ClassName        string    `json:"class_name"`
	ClassSlug        string    `json:"class_slug"`
	ClassDescription *string   `json:"class_description,omitempty"`
	ClassGrade       *string   `json:"class_grade,omitempty"`
	ClassMaxStudents int       `json:"class_max_students"`
	ClassCreatedAt   time.Time `json:"class_created_at"`

	StudentCount int64 `json:"student_count"`
	SessionCount int64 `json:"session_count"`
}

type RosterEntry struct {
	StudentID  uuid.UUID `json:"student_id"`
	FullName   string    `json:"full_name"`
	NationalID string    `json:"national_id"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

type ClassDetailResponse struct {
	ClassResponse
	Students []RosterEntry `json:"students"`
}

type EnrollmentResponse struct {
	ClassStudentID uuid.UUID `json:"class_student_id"`
	ClassID        uuid.UUID `json:"class_id"`
	StudentID      uuid.UUID `json:"student_id"`
	EnrolledAt     time.Time `json:"enrolled_at"`
}

func FromModel(m *model.ClassModel, studentCount, sessionCount int64) ClassResponse {
	return ClassResponse{
		ClassID:          m.ClassID,
		ClassName:        m.ClassName,
		ClassSlug:        m.ClassSlug,
		ClassDescription: m.ClassDescription,
		ClassGrade:       m.ClassGrade,
		ClassMaxStudents: m.ClassMaxStudents,
		ClassCreatedAt:   m.ClassCreatedAt,
		StudentCount:     studentCount,
		SessionCount:     sessionCount,
	}
}

func FromEnrollment(m *model.ClassStudentModel) EnrollmentResponse {
	return EnrollmentResponse{
		ClassStudentID: m.ClassStudentID,
		ClassID:        m.ClassStudentClassID,
		StudentID:      m.ClassStudentStudentID,
		EnrolledAt:     m.ClassStudentEnrolledAt,
	}
}

// FromModelWithRoster expects Enrollments with Student preloaded.
func FromModelWithRoster(m *model.ClassModel, sessionCount int64) ClassDetailResponse {
	out := ClassDetailResponse{
		ClassResponse: FromModel(m, int64(len(m.Enrollments)), sessionCount),
		Students:      make([]RosterEntry, 0, len(m.Enrollments)),
	}
	for _, e := range m.Enrollments {
		entry := RosterEntry{StudentID: e.ClassStudentStudentID, EnrolledAt: e.ClassStudentEnrolledAt}
		if e.Student != nil {
			entry.FullName = e.Student.FullName()
			entry.NationalID = e.Student.StudentNationalID
		}
		out.Students = append(out.Students, entry)
	}
	return out
}

/* =========================================================
   ROSTER IMPORT
========================================================= */

// Roster sheet columns, after a header row.
const (
	ColFirstName = iota
	ColLastName
	ColNationalID
	ColPhone
)

type ImportRowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type ImportResult struct {
	Enrolled int              `json:"enrolled"`
	Created  int              `json:"created"`
	Skipped  int              `json:"skipped"`
	Failed   []ImportRowError `json:"failed"`
}

// RowToStudent maps one sheet row; ok is false when a required cell is empty.
func RowToStudent(row []string) (studentDTO.CreateStudentRequest, bool) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}
	req := studentDTO.CreateStudentRequest{
		FirstName:  cell(ColFirstName),
		LastName:   cell(ColLastName),
		NationalID: cell(ColNationalID),
	}
	if phone := cell(ColPhone); phone != "" {
		req.Phone = &phone
	}
	return req, req.FirstName != "" && req.LastName != "" && req.NationalID != ""
}

func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	s := strings.TrimSpace(*p)
	if s == "" {
		return nil
	}
	return &s
}
