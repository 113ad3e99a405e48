package service

import (
	"context"
	"sort"
	"time"

	classModel "classroom_backend/internals/features/classroom/classes/model"
	model "classroom_backend/internals/features/classroom/sessions/model"
	"classroom_backend/internals/helpers/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const recordBatchSize = 200

type gormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) ClassExists(ctx context.Context, classID uuid.UUID) (bool, error) {
	var n int64
	if err := s.db.WithContext(ctx).
		Model(&classModel.ClassModel{}).
		Where("class_id = ?", classID).
		Count(&n).Error; err != nil {
		return false, apperr.Store(err, "check class")
	}
	return n > 0, nil
}

func (s *gormStore) EnrolledStudentIDs(ctx context.Context, classID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := s.db.WithContext(ctx).
		Model(&classModel.ClassStudentModel{}).
		Where("class_student_class_id = ?", classID).
		Order("class_student_enrolled_at ASC").
		Pluck("class_student_student_id", &ids).Error; err != nil {
		return nil, apperr.Store(err, "class roster")
	}
	return ids, nil
}

func (s *gormStore) CreateWithRecords(ctx context.Context, sess *model.SessionModel, records []model.AttendanceRecordModel) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Class", "Records").Create(sess).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.Omit("Session", "Student").CreateInBatches(&records, recordBatchSize).Error
	})
	return apperr.Store(err, "create session")
}

func (s *gormStore) List(ctx context.Context, classID *uuid.UUID, limit, offset int) ([]SessionRow, int64, error) {
	base := s.db.WithContext(ctx).Model(&model.SessionModel{})
	if classID != nil {
		base = base.Where("session_class_id = ?", *classID)
	}
	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, apperr.Store(err, "count sessions")
	}

	q := s.db.WithContext(ctx).
		Table("class_sessions AS s").
		Joins("JOIN classes AS c ON c.class_id = s.session_class_id").
		Select(`s.*, c.class_name AS class_name,
			(SELECT COUNT(*) FROM attendance_records r WHERE r.attendance_record_session_id = s.session_id) AS record_count`)
	if classID != nil {
		q = q.Where("s.session_class_id = ?", *classID)
	}

	var rows []SessionRow
	if err := q.
		Order("s.session_date DESC, s.session_created_at DESC").
		Limit(limit).Offset(offset).
		Scan(&rows).Error; err != nil {
		return nil, 0, apperr.Store(err, "list sessions")
	}
	return rows, total, nil
}

func (s *gormStore) Get(ctx context.Context, id uuid.UUID) (*model.SessionModel, error) {
	var m model.SessionModel
	if err := s.db.WithContext(ctx).
		Preload("Class").
		Preload("Records", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("attendance_record_created_at ASC")
		}).
		Preload("Records.Student").
		Where("session_id = ?", id).
		Take(&m).Error; err != nil {
		return nil, apperr.Store(err, "session")
	}
	return &m, nil
}

func (s *gormStore) FindRecord(ctx context.Context, sessionID, studentID uuid.UUID) (*model.AttendanceRecordModel, error) {
	var m model.AttendanceRecordModel
	if err := s.db.WithContext(ctx).
		Preload("Student").
		Where("attendance_record_session_id = ? AND attendance_record_student_id = ?", sessionID, studentID).
		Take(&m).Error; err != nil {
		return nil, apperr.Store(err, "attendance record")
	}
	return &m, nil
}

// UpdateRecord is last-write-wins per column.
func (s *gormStore) UpdateRecord(ctx context.Context, recordID uuid.UUID, updates map[string]any) error {
	updates["attendance_record_updated_at"] = time.Now()
	res := s.db.WithContext(ctx).
		Model(&model.AttendanceRecordModel{}).
		Where("attendance_record_id = ?", recordID).
		Updates(updates)
	if res.Error != nil {
		return apperr.Store(res.Error, "update attendance record")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("attendance record not found")
	}
	return nil
}

func (s *gormStore) RecordsByStudent(ctx context.Context, studentID uuid.UUID) ([]model.AttendanceRecordModel, error) {
	var rows []model.AttendanceRecordModel
	if err := s.db.WithContext(ctx).
		Preload("Session.Class").
		Where("attendance_record_student_id = ?", studentID).
		Find(&rows).Error; err != nil {
		return nil, apperr.Store(err, "student records")
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return sessionDate(rows[i]).After(sessionDate(rows[j]))
	})
	return rows, nil
}

func sessionDate(r model.AttendanceRecordModel) time.Time {
	if r.Session == nil {
		return time.Time{}
	}
	return time.Time(r.Session.SessionDate)
}
