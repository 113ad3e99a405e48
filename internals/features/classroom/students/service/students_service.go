package service

import (
	"context"
	"strings"

	dto "classroom_backend/internals/features/classroom/students/dto"
	model "classroom_backend/internals/features/classroom/students/model"
	helper "classroom_backend/internals/helpers"
	"classroom_backend/internals/helpers/apperr"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

type Store interface {
	// Create inserts user (when non-nil) and student in one transaction.
	Create(ctx context.Context, user *model.UserModel, student *model.StudentModel) error
	Get(ctx context.Context, id uuid.UUID) (*model.StudentModel, error)
	FindByNationalID(ctx context.Context, nationalID string) (*model.StudentModel, error)
	List(ctx context.Context, q string, limit, offset int) ([]model.StudentModel, int64, error)
	Memberships(ctx context.Context, studentIDs []uuid.UUID) (map[uuid.UUID][]dto.ClassRef, error)
}

type Service struct {
	store    Store
	hashCost int
}

func New(store Store) *Service {
	return &Service{store: store, hashCost: bcrypt.DefaultCost}
}

// CreateStudent stores the profile and, when an email is given, its login.
// Duplicate email or national id is an apperr.ErrConflict.
func (s *Service) CreateStudent(ctx context.Context, req dto.CreateStudentRequest) (*model.StudentModel, error) {
	req.Normalize()
	switch {
	case req.FirstName == "":
		return nil, apperr.InvalidInput("first_name is required")
	case req.LastName == "":
		return nil, apperr.InvalidInput("last_name is required")
	case req.NationalID == "":
		return nil, apperr.InvalidInput("national_id is required")
	case req.Email == "" && req.Password != "":
		return nil, apperr.InvalidInput("email is required when password is set")
	case req.Email != "" && req.Password == "":
		return nil, apperr.InvalidInput("password is required when email is set")
	}
	if _, ok := req.ParseBirthDate(); !ok {
		return nil, apperr.InvalidInput("birth_date must be YYYY-MM-DD")
	}

	var user *model.UserModel
	if req.Email != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
		if err != nil {
			return nil, errors.Wrap(err, "hash password")
		}
		user = &model.UserModel{
			UserID:       uuid.New(),
			UserEmail:    req.Email,
			UserPassword: string(hash),
			UserName:     req.DisplayName(),
			UserRole:     model.UserRoleStudent,
		}
	}

	student := req.ToModel(uuid.New())
	if user != nil {
		student.StudentUserID = &user.UserID
	}
	if err := s.store.Create(ctx, user, student); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, apperr.Conflict("email or national_id already registered")
		}
		return nil, err
	}
	student.User = user
	return student, nil
}

func (s *Service) GetStudent(ctx context.Context, rawID string) (dto.StudentResponse, error) {
	id, err := helper.ParseID(rawID, "student_id")
	if err != nil {
		return dto.StudentResponse{}, err
	}
	m, err := s.store.Get(ctx, id)
	if err != nil {
		return dto.StudentResponse{}, err
	}
	classes, err := s.store.Memberships(ctx, []uuid.UUID{id})
	if err != nil {
		return dto.StudentResponse{}, err
	}
	return dto.FromModel(m, classes[id]), nil
}

// Exists is used by enrollment before it writes.
func (s *Service) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, err := s.store.Get(ctx, id)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, apperr.ErrNotFound):
		return false, nil
	}
	return false, err
}

// FindByNationalID returns nil, nil when nobody holds that national id.
func (s *Service) FindByNationalID(ctx context.Context, nationalID string) (*model.StudentModel, error) {
	nationalID = strings.TrimSpace(nationalID)
	if nationalID == "" {
		return nil, apperr.InvalidInput("national_id is required")
	}
	m, err := s.store.FindByNationalID(ctx, nationalID)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, nil
	}
	return m, err
}

// ListStudents orders by last name then first name.
func (s *Service) ListStudents(ctx context.Context, q string, paging helper.Paging) ([]dto.StudentResponse, int64, error) {
	rows, total, err := s.store.List(ctx, strings.TrimSpace(q), paging.Limit, paging.Offset)
	if err != nil {
		return nil, 0, err
	}
	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.StudentID)
	}
	classes, err := s.store.Memberships(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.StudentResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.FromModel(&rows[i], classes[rows[i].StudentID]))
	}
	return out, total, nil
}
