package service

import (
	"context"
	"io"
	"strings"

	dto "classroom_backend/internals/features/classroom/classes/dto"
	model "classroom_backend/internals/features/classroom/classes/model"
	studentDTO "classroom_backend/internals/features/classroom/students/dto"
	studentModel "classroom_backend/internals/features/classroom/students/model"
	helper "classroom_backend/internals/helpers"
	"classroom_backend/internals/helpers/apperr"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const (
	slugMaxLen         = 160
	msgAlreadyEnrolled = "student already enrolled in class"
)

type ClassRow struct {
	model.ClassModel
	StudentCount int64 `gorm:"column:student_count"`
	SessionCount int64 `gorm:"column:session_count"`
}

type Store interface {
	Create(ctx context.Context, m *model.ClassModel) error
	SlugExists(ctx context.Context, slug string) (bool, error)
	// Get preloads the roster with student profiles.
	Get(ctx context.Context, id uuid.UUID) (*model.ClassModel, error)
	SessionCount(ctx context.Context, id uuid.UUID) (int64, error)
	EnrolledCount(ctx context.Context, id uuid.UUID) (int64, error)
	List(ctx context.Context, limit, offset int) ([]ClassRow, int64, error)
	// Enroll must report a duplicate (class, student) pair as apperr.ErrConflict.
	Enroll(ctx context.Context, m *model.ClassStudentModel) error
	Unenroll(ctx context.Context, classID, studentID uuid.UUID) (bool, error)
}

// StudentDirectory is the part of the students feature enrollment needs.
type StudentDirectory interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	FindByNationalID(ctx context.Context, nationalID string) (*studentModel.StudentModel, error)
	CreateStudent(ctx context.Context, req studentDTO.CreateStudentRequest) (*studentModel.StudentModel, error)
}

type Service struct {
	store    Store
	students StudentDirectory
	logger   log.Logger
}

func New(store Store, students StudentDirectory, logger log.Logger) *Service {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Service{store: store, students: students, logger: log.With(logger, "feature", "classes")}
}

func (s *Service) CreateClass(ctx context.Context, req dto.CreateClassRequest) (*model.ClassModel, error) {
	req.Normalize()
	if req.Name == "" {
		return nil, apperr.InvalidInput("name is required")
	}
	if req.MaxStudents != nil && *req.MaxStudents < 1 {
		return nil, apperr.InvalidInput("max_students must be at least 1")
	}

	slug, err := helper.UniqueSlug(helper.Slugify(req.Name, slugMaxLen), slugMaxLen, func(candidate string) (bool, error) {
		return s.store.SlugExists(ctx, candidate)
	})
	if err != nil {
		return nil, err
	}

	m := req.ToModel(uuid.New(), slug)
	if err := s.store.Create(ctx, m); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, apperr.Conflict("class slug already taken, retry")
		}
		return nil, err
	}
	return m, nil
}

// ListClasses returns newest classes first.
func (s *Service) ListClasses(ctx context.Context, paging helper.Paging) ([]dto.ClassResponse, int64, error) {
	rows, total, err := s.store.List(ctx, paging.Limit, paging.Offset)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.ClassResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.FromModel(&rows[i].ClassModel, rows[i].StudentCount, rows[i].SessionCount))
	}
	return out, total, nil
}

func (s *Service) GetClass(ctx context.Context, rawID string) (dto.ClassDetailResponse, error) {
	id, err := helper.ParseID(rawID, "class_id")
	if err != nil {
		return dto.ClassDetailResponse{}, err
	}
	m, err := s.store.Get(ctx, id)
	if err != nil {
		return dto.ClassDetailResponse{}, err
	}
	sessions, err := s.store.SessionCount(ctx, id)
	if err != nil {
		return dto.ClassDetailResponse{}, err
	}
	return dto.FromModelWithRoster(m, sessions), nil
}

// Enroll adds a student to the class roster. Enrolling the same pair twice
// fails with apperr.ErrConflict; the unique index decides under concurrency.
func (s *Service) Enroll(ctx context.Context, rawClassID, rawStudentID string) (*model.ClassStudentModel, error) {
	classID, err := helper.ParseID(rawClassID, "class_id")
	if err != nil {
		return nil, err
	}
	studentID, err := helper.ParseID(rawStudentID, "student_id")
	if err != nil {
		return nil, err
	}
	return s.enroll(ctx, classID, studentID)
}

func (s *Service) enroll(ctx context.Context, classID, studentID uuid.UUID) (*model.ClassStudentModel, error) {
	class, err := s.store.Get(ctx, classID)
	if err != nil {
		return nil, err
	}
	ok, err := s.students.Exists(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("student not found")
	}

	for _, e := range class.Enrollments {
		if e.ClassStudentStudentID == studentID {
			return nil, apperr.Conflict(msgAlreadyEnrolled)
		}
	}
	n, err := s.store.EnrolledCount(ctx, classID)
	if err != nil {
		return nil, err
	}
	if class.ClassMaxStudents > 0 && n >= int64(class.ClassMaxStudents) {
		return nil, apperr.Conflict("class is full")
	}

	m := &model.ClassStudentModel{
		ClassStudentID:        uuid.New(),
		ClassStudentClassID:   classID,
		ClassStudentStudentID: studentID,
	}
	if err := s.store.Enroll(ctx, m); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, apperr.Conflict(msgAlreadyEnrolled)
		}
		return nil, err
	}
	return m, nil
}

// Unenroll removes the roster entry. Records of sessions already created stay.
func (s *Service) Unenroll(ctx context.Context, rawClassID, rawStudentID string) error {
	classID, err := helper.ParseID(rawClassID, "class_id")
	if err != nil {
		return err
	}
	studentID, err := helper.ParseID(rawStudentID, "student_id")
	if err != nil {
		return err
	}
	removed, err := s.store.Unenroll(ctx, classID, studentID)
	if err != nil {
		return err
	}
	if !removed {
		return apperr.NotFound("enrollment not found")
	}
	return nil
}

// ImportRoster reads the first sheet of an xlsx workbook (header row, then
// first_name, last_name, national_id, phone), creates unknown students and
// enrolls everyone. Already enrolled students count as skipped.
func (s *Service) ImportRoster(ctx context.Context, rawClassID string, r io.Reader) (dto.ImportResult, error) {
	res := dto.ImportResult{Failed: []dto.ImportRowError{}}

	classID, err := helper.ParseID(rawClassID, "class_id")
	if err != nil {
		return res, err
	}
	if _, err := s.store.Get(ctx, classID); err != nil {
		return res, err
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return res, apperr.InvalidInput("file is not a valid xlsx workbook")
	}
	defer func() {
		if err := f.Close(); err != nil {
			_ = level.Warn(s.logger).Log("msg", "close workbook", "err", err)
		}
	}()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return res, apperr.InvalidInput("workbook has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return res, apperr.InvalidInput("cannot read sheet " + sheet)
	}

	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		rowNum := i + 1
		if isBlank(row) {
			continue
		}

		req, ok := dto.RowToStudent(row)
		if !ok {
			res.Failed = append(res.Failed, dto.ImportRowError{Row: rowNum, Reason: "first_name, last_name and national_id are required"})
			continue
		}

		student, err := s.students.FindByNationalID(ctx, req.NationalID)
		if err != nil {
			return res, err
		}
		if student == nil {
			student, err = s.students.CreateStudent(ctx, req)
			if err != nil {
				if errors.Is(err, apperr.ErrStoreUnavailable) {
					return res, err
				}
				res.Failed = append(res.Failed, dto.ImportRowError{Row: rowNum, Reason: apperr.Message(err)})
				continue
			}
			res.Created++
		}

		if _, err := s.enroll(ctx, classID, student.StudentID); err != nil {
			switch {
			case errors.Is(err, apperr.ErrConflict) && apperr.Message(err) == msgAlreadyEnrolled:
				res.Skipped++
			case errors.Is(err, apperr.ErrStoreUnavailable):
				return res, err
			default:
				res.Failed = append(res.Failed, dto.ImportRowError{Row: rowNum, Reason: apperr.Message(err)})
			}
			continue
		}
		res.Enrolled++
	}

	_ = level.Info(s.logger).Log("msg", "roster imported", "class_id", classID,
		"enrolled", res.Enrolled, "created", res.Created, "skipped", res.Skipped, "failed", len(res.Failed))
	return res, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
