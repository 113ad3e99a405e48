package dto

import (
	"strings"
	"time"

	model "classroom_backend/internals/features/classroom/students/model"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

/* =========================================================
   REQUEST: CREATE
========================================================= */

// Email and Password are optional as a pair: without them the student gets
// a profile but no login.
type CreateStudentRequest struct {
	Email      string  `json:"email"       validate:"omitempty,email,max=255"`
	Password   string  `json:"password"    validate:"required_with=Email,omitempty,min=6,max=72"`
	FirstName  string  `json:"first_name"  validate:"required,max=100"`
	LastName   string  `json:"last_name"   validate:"required,max=100"`
	NationalID string  `json:"national_id" validate:"required,max=32"`
	Phone      *string `json:"phone"       validate:"omitempty,max=32"`
	Address    *string `json:"address"`
	BirthDate  *string `json:"birth_date"`
}

func (r *CreateStudentRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.NationalID = strings.TrimSpace(r.NationalID)
	r.Phone = trimPtr(r.Phone)
	r.Address = trimPtr(r.Address)
	r.BirthDate = trimPtr(r.BirthDate)
}

// ParseBirthDate accepts YYYY-MM-DD or a full RFC3339 timestamp.
func (r CreateStudentRequest) ParseBirthDate() (*datatypes.Date, bool) {
	if r.BirthDate == nil {
		return nil, true
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, *r.BirthDate); err == nil {
			d := datatypes.Date(t)
			return &d, true
		}
	}
	return nil, false
}

func (r CreateStudentRequest) DisplayName() string {
	return strings.TrimSpace(r.FirstName + " " + r.LastName)
}

func (r CreateStudentRequest) ToModel(id uuid.UUID) *model.StudentModel {
	bd, _ := r.ParseBirthDate()
	return &model.StudentModel{
		StudentID:         id,
		StudentFirstName:  r.FirstName,
		StudentLastName:   r.LastName,
		StudentNationalID: r.NationalID,
		StudentPhone:      r.Phone,
		StudentAddress:    r.Address,
		StudentBirthDate:  bd,
	}
}

/* =========================================================
   RESPONSE
========================================================= */

type ClassRef struct {
	ClassID   uuid.UUID `json:"class_id"`
	ClassName string    `json:"class_name"`
}

type StudentResponse struct {
	StudentID         uuid.UUID  `json:"student_id"`
	StudentUserID     *uuid.UUID `json:"student_user_id,omitempty"`
	StudentEmail      string     `json:"student_email,omitempty"`
	StudentFirstName  string     `json:"student_first_name"`
	StudentLastName   string     `json:"student_last_name"`
	StudentFullName   string     `json:"student_full_name"`
	StudentNationalID string     `json:"student_national_id"`
	StudentPhone      *string    `json:"student_phone,omitempty"`
	StudentAddress    *string    `json:"student_address,omitempty"`
	StudentBirthDate  *string    `json:"student_birth_date,omitempty"`
	StudentClasses    []ClassRef `json:"student_classes"`
	StudentCreatedAt  time.Time  `json:"student_created_at"`
}

func FromModel(m *model.StudentModel, classes []ClassRef) StudentResponse {
	out := StudentResponse{
		StudentID:         m.StudentID,
		StudentUserID:     m.StudentUserID,
		StudentFirstName:  m.StudentFirstName,
		StudentLastName:   m.StudentLastName,
		StudentFullName:   m.FullName(),
		StudentNationalID: m.StudentNationalID,
		StudentPhone:      m.StudentPhone,
		StudentAddress:    m.StudentAddress,
		StudentClasses:    classes,
		StudentCreatedAt:  m.StudentCreatedAt,
	}
	if out.StudentClasses == nil {
		out.StudentClasses = []ClassRef{}
	}
	if m.User != nil {
		out.StudentEmail = m.User.UserEmail
	}
	if m.StudentBirthDate != nil {
		s := time.Time(*m.StudentBirthDate).Format("2006-01-02")
		out.StudentBirthDate = &s
	}
	return out
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
