package service

import (
	"context"
	"sort"
	"strings"
	"testing"

	dto "classroom_backend/internals/features/classroom/students/dto"
	model "classroom_backend/internals/features/classroom/students/model"
	helper "classroom_backend/internals/helpers"
	"classroom_backend/internals/helpers/apperr"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memStore struct {
	users    map[string]model.UserModel
	students map[uuid.UUID]model.StudentModel
	classes  map[uuid.UUID][]dto.ClassRef
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[string]model.UserModel{},
		students: map[uuid.UUID]model.StudentModel{},
		classes:  map[uuid.UUID][]dto.ClassRef{},
	}
}

func (m *memStore) Create(_ context.Context, user *model.UserModel, student *model.StudentModel) error {
	if user != nil {
		if _, ok := m.users[user.UserEmail]; ok {
			return apperr.Store(errors.New("duplicate key value violates unique constraint"), "create student")
		}
	}
	for _, s := range m.students {
		if s.StudentNationalID == student.StudentNationalID {
			return apperr.Store(errors.New("duplicate key value violates unique constraint"), "create student")
		}
	}
	if user != nil {
		m.users[user.UserEmail] = *user
	}
	m.students[student.StudentID] = *student
	return nil
}

func (m *memStore) Get(_ context.Context, id uuid.UUID) (*model.StudentModel, error) {
	s, ok := m.students[id]
	if !ok {
		return nil, apperr.NotFound("student not found")
	}
	return &s, nil
}

func (m *memStore) FindByNationalID(_ context.Context, nationalID string) (*model.StudentModel, error) {
	for _, s := range m.students {
		if s.StudentNationalID == nationalID {
			return &s, nil
		}
	}
	return nil, apperr.NotFound("student not found")
}

func (m *memStore) List(_ context.Context, q string, limit, offset int) ([]model.StudentModel, int64, error) {
	var rows []model.StudentModel
	for _, s := range m.students {
		if q == "" || strings.Contains(strings.ToLower(s.FullName()), strings.ToLower(q)) {
			rows = append(rows, s)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].StudentLastName != rows[j].StudentLastName {
			return rows[i].StudentLastName < rows[j].StudentLastName
		}
		return rows[i].StudentFirstName < rows[j].StudentFirstName
	})
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

func (m *memStore) Memberships(_ context.Context, ids []uuid.UUID) (map[uuid.UUID][]dto.ClassRef, error) {
	out := map[uuid.UUID][]dto.ClassRef{}
	for _, id := range ids {
		if refs, ok := m.classes[id]; ok {
			out[id] = refs
		}
	}
	return out, nil
}

func newTestService(st Store) *Service {
	svc := New(st)
	svc.hashCost = bcrypt.MinCost
	return svc
}

func validRequest() dto.CreateStudentRequest {
	return dto.CreateStudentRequest{
		Email:      " Ana@Example.com ",
		Password:   "secret123",
		FirstName:  "Ana",
		LastName:   "Bauer",
		NationalID: "NID-1",
	}
}

func TestCreateStudent_WithLogin(t *testing.T) {
	st := newMemStore()
	svc := newTestService(st)

	got, err := svc.CreateStudent(context.Background(), validRequest())
	require.NoError(t, err)
	require.NotNil(t, got.StudentUserID)

	user, ok := st.users["ana@example.com"]
	require.True(t, ok)
	assert.Equal(t, *got.StudentUserID, user.UserID)
	assert.Equal(t, model.UserRoleStudent, user.UserRole)
	assert.Equal(t, "Ana Bauer", user.UserName)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.UserPassword), []byte("secret123")))
}

func TestCreateStudent_ProfileOnly(t *testing.T) {
	st := newMemStore()
	req := validRequest()
	req.Email, req.Password = "", ""
	bd := "2012-04-09"
	req.BirthDate = &bd

	got, err := newTestService(st).CreateStudent(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, got.StudentUserID)
	assert.Empty(t, st.users)
	require.NotNil(t, got.StudentBirthDate)
}

func TestCreateStudent_Invalid(t *testing.T) {
	bad := "09/04/2012"
	tests := []struct {
		name   string
		mutate func(r *dto.CreateStudentRequest)
	}{
		{name: "no first name", mutate: func(r *dto.CreateStudentRequest) { r.FirstName = " " }},
		{name: "no last name", mutate: func(r *dto.CreateStudentRequest) { r.LastName = "" }},
		{name: "no national id", mutate: func(r *dto.CreateStudentRequest) { r.NationalID = "" }},
		{name: "password without email", mutate: func(r *dto.CreateStudentRequest) { r.Email = "" }},
		{name: "email without password", mutate: func(r *dto.CreateStudentRequest) { r.Password = "" }},
		{name: "bad birth date", mutate: func(r *dto.CreateStudentRequest) { r.BirthDate = &bad }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			_, err := newTestService(newMemStore()).CreateStudent(context.Background(), req)
			assert.True(t, errors.Is(err, apperr.ErrInvalidInput), "got %v", err)
		})
	}
}

func TestCreateStudent_Duplicate(t *testing.T) {
	svc := newTestService(newMemStore())
	ctx := context.Background()

	_, err := svc.CreateStudent(ctx, validRequest())
	require.NoError(t, err)

	again := validRequest()
	again.Email = "other@example.com"
	_, err = svc.CreateStudent(ctx, again)
	assert.True(t, errors.Is(err, apperr.ErrConflict))
	assert.Equal(t, "email or national_id already registered", apperr.Message(err))
}

func TestGetStudent(t *testing.T) {
	st := newMemStore()
	svc := newTestService(st)
	ctx := context.Background()

	created, err := svc.CreateStudent(ctx, validRequest())
	require.NoError(t, err)
	classID := uuid.New()
	st.classes[created.StudentID] = []dto.ClassRef{{ClassID: classID, ClassName: "7A"}}

	got, err := svc.GetStudent(ctx, created.StudentID.String())
	require.NoError(t, err)
	assert.Equal(t, "Ana Bauer", got.StudentFullName)
	assert.Equal(t, []dto.ClassRef{{ClassID: classID, ClassName: "7A"}}, got.StudentClasses)

	_, err = svc.GetStudent(ctx, uuid.NewString())
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	_, err = svc.GetStudent(ctx, "nope")
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))
}

func TestListStudents_OrderedByLastName(t *testing.T) {
	svc := newTestService(newMemStore())
	ctx := context.Background()
	for i, name := range [][2]string{{"Zoe", "Young"}, {"Ali", "Adams"}, {"Mia", "Meyer"}} {
		_, err := svc.CreateStudent(ctx, dto.CreateStudentRequest{
			FirstName: name[0], LastName: name[1], NationalID: "N" + string(rune('0'+i)),
		})
		require.NoError(t, err)
	}

	got, total, err := svc.ListStudents(ctx, "", helper.Paging{Page: 1, PerPage: 2, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, got, 2)
	assert.Equal(t, "Adams", got[0].StudentLastName)
	assert.Equal(t, "Meyer", got[1].StudentLastName)
	assert.NotNil(t, got[0].StudentClasses)
}

func TestExistsAndFindByNationalID(t *testing.T) {
	svc := newTestService(newMemStore())
	ctx := context.Background()
	created, err := svc.CreateStudent(ctx, validRequest())
	require.NoError(t, err)

	ok, err := svc.Exists(ctx, created.StudentID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Exists(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)

	found, err := svc.FindByNationalID(ctx, " NID-1 ")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.StudentID, found.StudentID)

	found, err = svc.FindByNationalID(ctx, "NID-404")
	require.NoError(t, err)
	assert.Nil(t, found)
}
