package service

import (
	"context"

	model "classroom_backend/internals/features/classroom/classes/model"
	"classroom_backend/internals/helpers/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type gormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Create(ctx context.Context, m *model.ClassModel) error {
	return apperr.Store(s.db.WithContext(ctx).Omit("Enrollments").Create(m).Error, "create class")
}

func (s *gormStore) SlugExists(ctx context.Context, slug string) (bool, error) {
	var n int64
	if err := s.db.WithContext(ctx).
		Model(&model.ClassModel{}).
		Where("LOWER(class_slug) = ?", slug).
		Count(&n).Error; err != nil {
		return false, apperr.Store(err, "check class slug")
	}
	return n > 0, nil
}

func (s *gormStore) Get(ctx context.Context, id uuid.UUID) (*model.ClassModel, error) {
	var m model.ClassModel
	if err := s.db.WithContext(ctx).
		Preload("Enrollments", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("class_student_enrolled_at ASC")
		}).
		Preload("Enrollments.Student").
		Where("class_id = ?", id).
		Take(&m).Error; err != nil {
		return nil, apperr.Store(err, "class")
	}
	return &m, nil
}

func (s *gormStore) SessionCount(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).
		Table("class_sessions").
		Where("session_class_id = ?", id).
		Count(&n).Error; err != nil {
		return 0, apperr.Store(err, "count sessions")
	}
	return n, nil
}

func (s *gormStore) EnrolledCount(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).
		Model(&model.ClassStudentModel{}).
		Where("class_student_class_id = ?", id).
		Count(&n).Error; err != nil {
		return 0, apperr.Store(err, "count enrollments")
	}
	return n, nil
}

func (s *gormStore) List(ctx context.Context, limit, offset int) ([]ClassRow, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&model.ClassModel{}).Count(&total).Error; err != nil {
		return nil, 0, apperr.Store(err, "count classes")
	}

	var rows []ClassRow
	if err := s.db.WithContext(ctx).
		Table("classes AS c").
		Select(`c.*,
			(SELECT COUNT(*) FROM class_students cs WHERE cs.class_student_class_id = c.class_id) AS student_count,
			(SELECT COUNT(*) FROM class_sessions s WHERE s.session_class_id = c.class_id) AS session_count`).
		Order("c.class_created_at DESC").
		Limit(limit).Offset(offset).
		Scan(&rows).Error; err != nil {
		return nil, 0, apperr.Store(err, "list classes")
	}
	return rows, total, nil
}

func (s *gormStore) Enroll(ctx context.Context, m *model.ClassStudentModel) error {
	return apperr.Store(s.db.WithContext(ctx).Omit("Class", "Student").Create(m).Error, "enroll student")
}

func (s *gormStore) Unenroll(ctx context.Context, classID, studentID uuid.UUID) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("class_student_class_id = ? AND class_student_student_id = ?", classID, studentID).
		Delete(&model.ClassStudentModel{})
	if res.Error != nil {
		return false, apperr.Store(res.Error, "unenroll student")
	}
	return res.RowsAffected > 0, nil
}
