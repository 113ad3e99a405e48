package service

import (
	"context"
	"strings"

	dto "classroom_backend/internals/features/classroom/sessions/dto"
	model "classroom_backend/internals/features/classroom/sessions/model"
	helper "classroom_backend/internals/helpers"
	"classroom_backend/internals/helpers/apperr"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Scores live on a 0..20 scale.
const (
	MinScore = 0.0
	MaxScore = 20.0
)

type SessionRow struct {
	model.SessionModel
	ClassName   string `gorm:"column:class_name"`
	RecordCount int64  `gorm:"column:record_count"`
}

type Store interface {
	ClassExists(ctx context.Context, classID uuid.UUID) (bool, error)
	EnrolledStudentIDs(ctx context.Context, classID uuid.UUID) ([]uuid.UUID, error)
	// CreateWithRecords inserts the session and all its records atomically.
	CreateWithRecords(ctx context.Context, s *model.SessionModel, records []model.AttendanceRecordModel) error
	List(ctx context.Context, classID *uuid.UUID, limit, offset int) ([]SessionRow, int64, error)
	// Get preloads Class and Records.Student.
	Get(ctx context.Context, id uuid.UUID) (*model.SessionModel, error)
	FindRecord(ctx context.Context, sessionID, studentID uuid.UUID) (*model.AttendanceRecordModel, error)
	UpdateRecord(ctx context.Context, recordID uuid.UUID, updates map[string]any) error
	// RecordsByStudent preloads Session.Class, newest session first.
	RecordsByStudent(ctx context.Context, studentID uuid.UUID) ([]model.AttendanceRecordModel, error)
}

type Service struct {
	store  Store
	logger log.Logger
}

func New(store Store, logger log.Logger) *Service {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Service{store: store, logger: log.With(logger, "feature", "sessions")}
}

// BuildPendingRecords gives every listed student one PRESENT record with no scores.
func BuildPendingRecords(sessionID uuid.UUID, studentIDs []uuid.UUID) []model.AttendanceRecordModel {
	seen := make(map[uuid.UUID]struct{}, len(studentIDs))
	out := make([]model.AttendanceRecordModel, 0, len(studentIDs))
	for _, sid := range studentIDs {
		if _, dup := seen[sid]; dup {
			continue
		}
		seen[sid] = struct{}{}
		out = append(out, model.NewPendingRecord(sessionID, sid))
	}
	return out
}

// CreateSession creates the session together with one record per student
// enrolled in the class right now. Students enrolled later get no record for
// this session.
func (s *Service) CreateSession(ctx context.Context, req dto.CreateSessionRequest) (*model.SessionModel, error) {
	req.Normalize()
	classID, err := helper.ParseID(req.ClassID, "class_id")
	if err != nil {
		return nil, err
	}
	if req.Date == "" {
		return nil, apperr.InvalidInput("date is required")
	}
	date, ok := req.ParseDate()
	if !ok {
		return nil, apperr.InvalidInput("date must be YYYY-MM-DD")
	}

	exists, err := s.store.ClassExists(ctx, classID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("class not found")
	}

	roster, err := s.store.EnrolledStudentIDs(ctx, classID)
	if err != nil {
		return nil, err
	}

	sess := req.ToModel(uuid.New(), classID, date)
	records := BuildPendingRecords(sess.SessionID, roster)
	if err := s.store.CreateWithRecords(ctx, sess, records); err != nil {
		return nil, err
	}
	sess.Records = records

	_ = level.Info(s.logger).Log("msg", "session created", "session_id", sess.SessionID,
		"class_id", classID, "records", len(records))
	return sess, nil
}

func (s *Service) ListSessions(ctx context.Context, rawClassID string, paging helper.Paging) ([]dto.SessionResponse, int64, error) {
	var classID *uuid.UUID
	if strings.TrimSpace(rawClassID) != "" {
		id, err := helper.ParseID(rawClassID, "class_id")
		if err != nil {
			return nil, 0, err
		}
		classID = &id
	}

	rows, total, err := s.store.List(ctx, classID, paging.Limit, paging.Offset)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.SessionResponse, 0, len(rows))
	for i := range rows {
		r := dto.FromSession(&rows[i].SessionModel, rows[i].RecordCount)
		r.SessionClassName = rows[i].ClassName
		out = append(out, r)
	}
	return out, total, nil
}

func (s *Service) GetSession(ctx context.Context, rawID string) (dto.SessionResponse, error) {
	id, err := helper.ParseID(rawID, "session_id")
	if err != nil {
		return dto.SessionResponse{}, err
	}
	m, err := s.store.Get(ctx, id)
	if err != nil {
		return dto.SessionResponse{}, err
	}
	return dto.FromSessionWithRecords(m), nil
}

// UpdateAttendanceRecord applies a partial update to the record of
// (session, student). Absent fields are left alone; empty or unparseable
// scores clear the column.
func (s *Service) UpdateAttendanceRecord(ctx context.Context, rawSessionID, rawStudentID string, req dto.UpdateRecordRequest) (*model.AttendanceRecordModel, error) {
	sessionID, err := helper.ParseID(rawSessionID, "session_id")
	if err != nil {
		return nil, err
	}
	studentID, err := helper.ParseID(rawStudentID, "student_id")
	if err != nil {
		return nil, err
	}

	updates, err := recordUpdates(req)
	if err != nil {
		return nil, err
	}

	rec, err := s.store.FindRecord(ctx, sessionID, studentID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.NotFound("attendance record not found")
		}
		return nil, err
	}
	if len(updates) == 0 {
		return rec, nil
	}

	if err := s.store.UpdateRecord(ctx, rec.AttendanceRecordID, updates); err != nil {
		return nil, err
	}
	return s.store.FindRecord(ctx, sessionID, studentID)
}

// ListRecordsByStudent returns every record of the student across all
// sessions and classes, each with its session and class.
func (s *Service) ListRecordsByStudent(ctx context.Context, studentID uuid.UUID) ([]model.AttendanceRecordModel, error) {
	if studentID == uuid.Nil {
		return nil, apperr.InvalidInput("student_id is required")
	}
	return s.store.RecordsByStudent(ctx, studentID)
}

func recordUpdates(req dto.UpdateRecordRequest) (map[string]any, error) {
	updates := map[string]any{}

	if v, ok := req.Attendance.Get(); ok {
		if v == nil {
			return nil, apperr.InvalidInput("attendance cannot be null")
		}
		st, valid := model.ParseAttendanceStatus(*v)
		if !valid {
			return nil, apperr.InvalidInput("attendance must be PRESENT, EXCUSED_ABSENCE or UNEXCUSED_ABSENCE")
		}
		updates["attendance_record_attendance"] = st
	}

	for _, f := range []struct {
		field  string
		column string
		patch  dto.PatchField[dto.NumericText]
	}{
		{"class_score", "attendance_record_class_score", req.ClassScore},
		{"homework_score", "attendance_record_homework_score", req.HomeworkScore},
	} {
		v, ok := dto.Score(f.patch)
		if !ok {
			continue
		}
		if v != nil && (*v < MinScore || *v > MaxScore) {
			return nil, apperr.InvalidInput(f.field + " must be between 0 and 20")
		}
		updates[f.column] = v
	}

	if v, ok := req.Notes.Get(); ok {
		if v == nil || strings.TrimSpace(*v) == "" {
			updates["attendance_record_notes"] = nil
		} else {
			updates["attendance_record_notes"] = strings.TrimSpace(*v)
		}
	}
	return updates, nil
}
