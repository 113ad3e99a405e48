package service

import (
	"context"

	dto "classroom_backend/internals/features/classroom/students/dto"
	model "classroom_backend/internals/features/classroom/students/model"
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

func (s *gormStore) Create(ctx context.Context, user *model.UserModel, student *model.StudentModel) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if user != nil {
			if err := tx.Create(user).Error; err != nil {
				return err
			}
		}
		return tx.Omit("User").Create(student).Error
	})
	return apperr.Store(err, "create student")
}

func (s *gormStore) Get(ctx context.Context, id uuid.UUID) (*model.StudentModel, error) {
	var m model.StudentModel
	if err := s.db.WithContext(ctx).
		Preload("User").
		Where("student_id = ?", id).
		Take(&m).Error; err != nil {
		return nil, apperr.Store(err, "student")
	}
	return &m, nil
}

func (s *gormStore) FindByNationalID(ctx context.Context, nationalID string) (*model.StudentModel, error) {
	var m model.StudentModel
	if err := s.db.WithContext(ctx).
		Where("student_national_id = ?", nationalID).
		Take(&m).Error; err != nil {
		return nil, apperr.Store(err, "student")
	}
	return &m, nil
}

func (s *gormStore) List(ctx context.Context, q string, limit, offset int) ([]model.StudentModel, int64, error) {
	tx := s.db.WithContext(ctx).Model(&model.StudentModel{})
	if q != "" {
		like := "%" + q + "%"
		tx = tx.Where(`student_first_name ILIKE ? OR student_last_name ILIKE ? OR student_national_id ILIKE ?`, like, like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, apperr.Store(err, "count students")
	}

	var rows []model.StudentModel
	if err := tx.
		Preload("User").
		Order("student_last_name ASC, student_first_name ASC").
		Limit(limit).Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, 0, apperr.Store(err, "list students")
	}
	return rows, total, nil
}

type membershipRow struct {
	StudentID uuid.UUID `gorm:"column:student_id"`
	ClassID   uuid.UUID `gorm:"column:class_id"`
	ClassName string    `gorm:"column:class_name"`
}

func (s *gormStore) Memberships(ctx context.Context, studentIDs []uuid.UUID) (map[uuid.UUID][]dto.ClassRef, error) {
	out := make(map[uuid.UUID][]dto.ClassRef, len(studentIDs))
	if len(studentIDs) == 0 {
		return out, nil
	}
	var rows []membershipRow
	if err := s.db.WithContext(ctx).
		Table("class_students AS cs").
		Joins("JOIN classes AS c ON c.class_id = cs.class_student_class_id").
		Where("cs.class_student_student_id IN ?", studentIDs).
		Select(`cs.class_student_student_id AS student_id, c.class_id AS class_id, c.class_name AS class_name`).
		Order("c.class_name ASC").
		Scan(&rows).Error; err != nil {
		return nil, apperr.Store(err, "student classes")
	}
	for _, r := range rows {
		out[r.StudentID] = append(out[r.StudentID], dto.ClassRef{ClassID: r.ClassID, ClassName: r.ClassName})
	}
	return out, nil
}
