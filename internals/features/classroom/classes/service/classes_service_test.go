package service

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	dto "classroom_backend/internals/features/classroom/classes/dto"
	model "classroom_backend/internals/features/classroom/classes/model"
	studentDTO "classroom_backend/internals/features/classroom/students/dto"
	studentModel "classroom_backend/internals/features/classroom/students/model"
	helper "classroom_backend/internals/helpers"
	"classroom_backend/internals/helpers/apperr"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

/* ===== fakes ===== */

type memStore struct {
	classes     map[uuid.UUID]model.ClassModel
	enrollments []model.ClassStudentModel
	sessions    map[uuid.UUID]int64
}

func newMemStore() *memStore {
	return &memStore{classes: map[uuid.UUID]model.ClassModel{}, sessions: map[uuid.UUID]int64{}}
}

func (m *memStore) Create(_ context.Context, c *model.ClassModel) error {
	for _, existing := range m.classes {
		if existing.ClassSlug == c.ClassSlug {
			return apperr.Conflict("create class: duplicate key")
		}
	}
	c.ClassCreatedAt = time.Now().Add(time.Duration(len(m.classes)) * time.Second)
	m.classes[c.ClassID] = *c
	return nil
}

func (m *memStore) SlugExists(_ context.Context, slug string) (bool, error) {
	for _, c := range m.classes {
		if strings.EqualFold(c.ClassSlug, slug) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) Get(_ context.Context, id uuid.UUID) (*model.ClassModel, error) {
	c, ok := m.classes[id]
	if !ok {
		return nil, apperr.NotFound("class not found")
	}
	c.Enrollments = nil
	for _, e := range m.enrollments {
		if e.ClassStudentClassID == id {
			c.Enrollments = append(c.Enrollments, e)
		}
	}
	return &c, nil
}

func (m *memStore) SessionCount(_ context.Context, id uuid.UUID) (int64, error) {
	return m.sessions[id], nil
}

func (m *memStore) EnrolledCount(_ context.Context, id uuid.UUID) (int64, error) {
	var n int64
	for _, e := range m.enrollments {
		if e.ClassStudentClassID == id {
			n++
		}
	}
	return n, nil
}

func (m *memStore) List(ctx context.Context, limit, offset int) ([]ClassRow, int64, error) {
	var rows []ClassRow
	for id, c := range m.classes {
		n, _ := m.EnrolledCount(ctx, id)
		rows = append(rows, ClassRow{ClassModel: c, StudentCount: n, SessionCount: m.sessions[id]})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ClassCreatedAt.After(rows[j].ClassCreatedAt) })
	total := int64(len(rows))
	if offset >= len(rows) {
		return nil, total, nil
	}
	rows = rows[offset:]
	if limit < len(rows) {
		rows = rows[:limit]
	}
	return rows, total, nil
}

// Enroll mimics the unique index on (class, student).
func (m *memStore) Enroll(_ context.Context, e *model.ClassStudentModel) error {
	for _, x := range m.enrollments {
		if x.ClassStudentClassID == e.ClassStudentClassID && x.ClassStudentStudentID == e.ClassStudentStudentID {
			return apperr.Store(errors.New("ERROR: duplicate key value violates unique constraint (SQLSTATE 23505)"), "enroll student")
		}
	}
	e.ClassStudentEnrolledAt = time.Now()
	m.enrollments = append(m.enrollments, *e)
	return nil
}

func (m *memStore) Unenroll(_ context.Context, classID, studentID uuid.UUID) (bool, error) {
	for i, x := range m.enrollments {
		if x.ClassStudentClassID == classID && x.ClassStudentStudentID == studentID {
			m.enrollments = append(m.enrollments[:i], m.enrollments[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type memStudents struct {
	byID map[uuid.UUID]studentModel.StudentModel
}

func newMemStudents() *memStudents {
	return &memStudents{byID: map[uuid.UUID]studentModel.StudentModel{}}
}

func (m *memStudents) add(first, last, nid string) uuid.UUID {
	id := uuid.New()
	m.byID[id] = studentModel.StudentModel{StudentID: id, StudentFirstName: first, StudentLastName: last, StudentNationalID: nid}
	return id
}

func (m *memStudents) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := m.byID[id]
	return ok, nil
}

func (m *memStudents) FindByNationalID(_ context.Context, nid string) (*studentModel.StudentModel, error) {
	for _, s := range m.byID {
		if s.StudentNationalID == nid {
			return &s, nil
		}
	}
	return nil, nil
}

func (m *memStudents) CreateStudent(_ context.Context, req studentDTO.CreateStudentRequest) (*studentModel.StudentModel, error) {
	id := m.add(req.FirstName, req.LastName, req.NationalID)
	s := m.byID[id]
	return &s, nil
}

func newTestService() (*Service, *memStore, *memStudents) {
	st, students := newMemStore(), newMemStudents()
	return New(st, students, nil), st, students
}

func mustClass(t *testing.T, svc *Service, name string, max *int) *model.ClassModel {
	t.Helper()
	c, err := svc.CreateClass(context.Background(), dto.CreateClassRequest{Name: name, MaxStudents: max})
	require.NoError(t, err)
	return c
}

/* ===== tests ===== */

func TestCreateClass(t *testing.T) {
	svc, _, _ := newTestService()

	c := mustClass(t, svc, "  Grade 7 A ", nil)
	assert.Equal(t, "Grade 7 A", c.ClassName)
	assert.Equal(t, "grade-7-a", c.ClassSlug)
	assert.Equal(t, model.DefaultMaxStudents, c.ClassMaxStudents)

	again := mustClass(t, svc, "Grade 7 A", nil)
	assert.Equal(t, "grade-7-a-2", again.ClassSlug)

	_, err := svc.CreateClass(context.Background(), dto.CreateClassRequest{Name: "   "})
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))
}

func TestListClasses_NewestFirst(t *testing.T) {
	svc, _, _ := newTestService()
	mustClass(t, svc, "First", nil)
	mustClass(t, svc, "Second", nil)

	got, total, err := svc.ListClasses(context.Background(), helper.Paging{Page: 1, PerPage: 10, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, got, 2)
	assert.Equal(t, "Second", got[0].ClassName)
}

func TestEnroll_TwiceIsConflict(t *testing.T) {
	svc, _, students := newTestService()
	ctx := context.Background()
	c := mustClass(t, svc, "7A", nil)
	sid := students.add("Ana", "Bauer", "N1")

	_, err := svc.Enroll(ctx, c.ClassID.String(), sid.String())
	require.NoError(t, err)

	_, err = svc.Enroll(ctx, c.ClassID.String(), sid.String())
	assert.True(t, errors.Is(err, apperr.ErrConflict))
}

func TestEnroll_StoreUniqueIndexIsConflict(t *testing.T) {
	st, students := newMemStore(), newMemStudents()
	classID, sid := uuid.New(), students.add("Ana", "Bauer", "N1")
	st.classes[classID] = model.ClassModel{ClassID: classID, ClassMaxStudents: 30}
	// another writer got there between our read and our insert
	st.enrollments = append(st.enrollments, model.ClassStudentModel{ClassStudentClassID: classID, ClassStudentStudentID: sid})

	err := st.Enroll(context.Background(), &model.ClassStudentModel{ClassStudentClassID: classID, ClassStudentStudentID: sid})
	assert.True(t, errors.Is(err, apperr.ErrConflict))
}

func TestEnroll_Errors(t *testing.T) {
	svc, _, students := newTestService()
	ctx := context.Background()
	one := 1
	c := mustClass(t, svc, "Tiny", &one)
	a := students.add("Ana", "Bauer", "N1")
	b := students.add("Ben", "Cole", "N2")

	_, err := svc.Enroll(ctx, uuid.NewString(), a.String())
	assert.True(t, errors.Is(err, apperr.ErrNotFound), "missing class")

	_, err = svc.Enroll(ctx, c.ClassID.String(), uuid.NewString())
	assert.True(t, errors.Is(err, apperr.ErrNotFound), "missing student")

	_, err = svc.Enroll(ctx, c.ClassID.String(), "")
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput), "empty student id")

	_, err = svc.Enroll(ctx, c.ClassID.String(), a.String())
	require.NoError(t, err)
	_, err = svc.Enroll(ctx, c.ClassID.String(), b.String())
	assert.True(t, errors.Is(err, apperr.ErrConflict), "full class")
	assert.Equal(t, "class is full", apperr.Message(err))
}

func TestUnenroll(t *testing.T) {
	svc, _, students := newTestService()
	ctx := context.Background()
	c := mustClass(t, svc, "7A", nil)
	sid := students.add("Ana", "Bauer", "N1")

	_, err := svc.Enroll(ctx, c.ClassID.String(), sid.String())
	require.NoError(t, err)
	require.NoError(t, svc.Unenroll(ctx, c.ClassID.String(), sid.String()))

	err = svc.Unenroll(ctx, c.ClassID.String(), sid.String())
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	// enrolling again after leaving is allowed
	_, err = svc.Enroll(ctx, c.ClassID.String(), sid.String())
	assert.NoError(t, err)
}

func TestGetClass_WithRoster(t *testing.T) {
	svc, st, students := newTestService()
	ctx := context.Background()
	c := mustClass(t, svc, "7A", nil)
	sid := students.add("Ana", "Bauer", "N1")
	_, err := svc.Enroll(ctx, c.ClassID.String(), sid.String())
	require.NoError(t, err)
	st.sessions[c.ClassID] = 4

	got, err := svc.GetClass(ctx, c.ClassID.String())
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.StudentCount)
	assert.EqualValues(t, 4, got.SessionCount)
	require.Len(t, got.Students, 1)
	assert.Equal(t, sid, got.Students[0].StudentID)
}

func rosterWorkbook(t *testing.T, rows [][]string) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		vals := make([]interface{}, len(row))
		for j, v := range row {
			vals[j] = v
		}
		require.NoError(t, f.SetSheetRow(sheet, cell, &vals))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestImportRoster(t *testing.T) {
	svc, st, students := newTestService()
	ctx := context.Background()
	c := mustClass(t, svc, "7A", nil)
	known := students.add("Ana", "Bauer", "N1")
	already := students.add("Ben", "Cole", "N2")
	_, err := svc.Enroll(ctx, c.ClassID.String(), already.String())
	require.NoError(t, err)

	buf := rosterWorkbook(t, [][]string{
		{"first_name", "last_name", "national_id", "phone"},
		{"Ana", "Bauer", "N1"},
		{"Ben", "Cole", "N2"},
		{"Cleo", "Dunn", "N3", "555-0101"},
		{"", "", "", ""},
		{"NoId", "Person"},
	})

	res, err := svc.ImportRoster(ctx, c.ClassID.String(), buf)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Enrolled)
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 1, res.Skipped)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, 6, res.Failed[0].Row)

	n, _ := st.EnrolledCount(ctx, c.ClassID)
	assert.EqualValues(t, 3, n)
	ok, _ := students.Exists(ctx, known)
	assert.True(t, ok)
}

func TestImportRoster_BadInput(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	c := mustClass(t, svc, "7A", nil)

	_, err := svc.ImportRoster(ctx, c.ClassID.String(), strings.NewReader("not a workbook"))
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))

	_, err = svc.ImportRoster(ctx, uuid.NewString(), rosterWorkbook(t, nil))
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}
