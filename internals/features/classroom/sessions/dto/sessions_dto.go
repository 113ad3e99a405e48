package dto

import (
	"bytes"
	"math"
	"strconv"
	"strings"
	"time"

	model "classroom_backend/internals/features/classroom/sessions/model"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

/* =========================================================
   PATCH FIELD (tri-state: absent | null | value)
========================================================= */

type PatchField[T any] struct {
	Present bool
	Value   *T
}

func (p *PatchField[T]) UnmarshalJSON(b []byte) error {
	p.Present = true
	if string(b) == "null" {
		p.Value = nil
		return nil
	}
	var v T
	if err := sonic.Unmarshal(b, &v); err != nil {
		return err
	}
	p.Value = &v
	return nil
}

func (p PatchField[T]) Get() (*T, bool) { return p.Value, p.Present }

/* =========================================================
   NUMERIC TEXT (score input)
========================================================= */

// NumericText takes a JSON number or a string holding one. Empty or
// unparseable text decodes to a nil Value, never to zero.
type NumericText struct {
	Value *float64
}

func (n *NumericText) UnmarshalJSON(b []byte) error {
	n.Value = nil
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := sonic.Unmarshal(b, &s); err != nil {
			return err
		}
		n.Value = ParseScore(s)
		return nil
	}
	var f float64
	if err := sonic.Unmarshal(b, &f); err != nil {
		// true/false/objects are treated like unparseable text
		return nil
	}
	if !math.IsNaN(f) && !math.IsInf(f, 0) {
		n.Value = &f
	}
	return nil
}

// ParseScore converts text to a score; nil when empty or not a finite number.
func ParseScore(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

/* =========================================================
   REQUEST: CREATE SESSION
========================================================= */

type CreateSessionRequest struct {
	ClassID     string         `json:"class_id"    validate:"required"`
	Date        string         `json:"date"        validate:"required"`
	Title       *string        `json:"title"       validate:"omitempty,max=200"`
	Description *string        `json:"description"`
	Meta        map[string]any `json:"meta"`
}

func (r *CreateSessionRequest) Normalize() {
	r.ClassID = strings.TrimSpace(r.ClassID)
	r.Date = strings.TrimSpace(r.Date)
	r.Title = trimPtr(r.Title)
	r.Description = trimPtr(r.Description)
}

// ParseDate accepts YYYY-MM-DD or RFC3339; the time of day is dropped.
func (r CreateSessionRequest) ParseDate() (datatypes.Date, bool) {
	for _, layout := range []string{"2006-01-02", time.RFC3339, time.RFC3339Nano} {
		if t, err := time.Parse(layout, r.Date); err == nil {
			y, m, d := t.Date()
			return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC)), true
		}
	}
	return datatypes.Date{}, false
}

func (r CreateSessionRequest) ToModel(id, classID uuid.UUID, date datatypes.Date) *model.SessionModel {
	m := &model.SessionModel{
		SessionID:          id,
		SessionClassID:     classID,
		SessionDate:        date,
		SessionTitle:       r.Title,
		SessionDescription: r.Description,
	}
	if len(r.Meta) > 0 {
		m.SessionMeta = datatypes.JSONMap(r.Meta)
	}
	return m
}

/* =========================================================
   REQUEST: UPDATE RECORD (partial)
========================================================= */

type UpdateRecordRequest struct {
	Attendance    PatchField[string]      `json:"attendance"`
	ClassScore    PatchField[NumericText] `json:"class_score"`
	HomeworkScore PatchField[NumericText] `json:"homework_score"`
	Notes         PatchField[string]      `json:"notes"`
}

// UpdateRecordByPairRequest is the body of PUT /sessions/students, which
// names the record in the body instead of the path.
type UpdateRecordByPairRequest struct {
	SessionID string `json:"session_id"`
	StudentID string `json:"student_id"`
	UpdateRecordRequest
}

// Score resolves a tri-state score: present=false leaves the column alone,
// a nil value clears it.
func Score(p PatchField[NumericText]) (value *float64, present bool) {
	if !p.Present {
		return nil, false
	}
	if p.Value == nil {
		return nil, true
	}
	return p.Value.Value, true
}

/* =========================================================
   RESPONSE
========================================================= */

type RecordResponse struct {
	RecordID        uuid.UUID              `json:"record_id"`
	SessionID       uuid.UUID              `json:"session_id"`
	StudentID       uuid.UUID              `json:"student_id"`
	StudentName     string                 `json:"student_name,omitempty"`
	Attendance      model.AttendanceStatus `json:"attendance"`
	ClassScore      *float64               `json:"class_score"`
	HomeworkScore   *float64               `json:"homework_score"`
	Notes           *string                `json:"notes"`
	RecordUpdatedAt time.Time              `json:"record_updated_at"`
}

type SessionResponse struct {
	SessionID          uuid.UUID         `json:"session_id"`
	SessionClassID     uuid.UUID         `json:"session_class_id"`
	SessionClassName   string            `json:"session_class_name,omitempty"`
	SessionDate        string            `json:"session_date"`
	SessionTitle       *string           `json:"session_title,omitempty"`
	SessionDescription *string           `json:"session_description,omitempty"`
	SessionMeta        datatypes.JSONMap `json:"session_meta,omitempty"`
	SessionCreatedAt   time.Time         `json:"session_created_at"`

	RecordCount int64            `json:"record_count"`
	Records     []RecordResponse `json:"records,omitempty"`
}

func FromRecord(m *model.AttendanceRecordModel) RecordResponse {
	out := RecordResponse{
		RecordID:        m.AttendanceRecordID,
		SessionID:       m.AttendanceRecordSessionID,
		StudentID:       m.AttendanceRecordStudentID,
		Attendance:      m.AttendanceRecordAttendance,
		ClassScore:      m.AttendanceRecordClassScore,
		HomeworkScore:   m.AttendanceRecordHomeworkScore,
		Notes:           m.AttendanceRecordNotes,
		RecordUpdatedAt: m.AttendanceRecordUpdatedAt,
	}
	if m.Student != nil {
		out.StudentName = m.Student.FullName()
	}
	return out
}

func FromSession(m *model.SessionModel, recordCount int64) SessionResponse {
	out := SessionResponse{
		SessionID:          m.SessionID,
		SessionClassID:     m.SessionClassID,
		SessionDate:        FormatDate(m.SessionDate),
		SessionTitle:       m.SessionTitle,
		SessionDescription: m.SessionDescription,
		SessionMeta:        m.SessionMeta,
		SessionCreatedAt:   m.SessionCreatedAt,
		RecordCount:        recordCount,
	}
	if m.Class != nil {
		out.SessionClassName = m.Class.ClassName
	}
	return out
}

// FromSessionWithRecords uses the preloaded Records.
func FromSessionWithRecords(m *model.SessionModel) SessionResponse {
	out := FromSession(m, int64(len(m.Records)))
	out.Records = make([]RecordResponse, 0, len(m.Records))
	for i := range m.Records {
		out.Records = append(out.Records, FromRecord(&m.Records[i]))
	}
	return out
}

func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format("2006-01-02")
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
