package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	dto "classroom_backend/internals/features/classroom/students/dto"
	model "classroom_backend/internals/features/classroom/students/model"
	service "classroom_backend/internals/features/classroom/students/service"
	helper "classroom_backend/internals/helpers"
	"classroom_backend/internals/helpers/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	students []model.StudentModel
}

func (f *fakeStore) Create(_ context.Context, _ *model.UserModel, s *model.StudentModel) error {
	for _, existing := range f.students {
		if existing.StudentNationalID == s.StudentNationalID {
			return apperr.Conflict("student: duplicate key")
		}
	}
	f.students = append(f.students, *s)
	return nil
}

func (f *fakeStore) Get(_ context.Context, id uuid.UUID) (*model.StudentModel, error) {
	for _, s := range f.students {
		if s.StudentID == id {
			s := s
			return &s, nil
		}
	}
	return nil, apperr.NotFound("student not found")
}

func (f *fakeStore) FindByNationalID(context.Context, string) (*model.StudentModel, error) {
	return nil, apperr.NotFound("student not found")
}

func (f *fakeStore) List(_ context.Context, _ string, _, _ int) ([]model.StudentModel, int64, error) {
	return f.students, int64(len(f.students)), nil
}

func (f *fakeStore) Memberships(context.Context, []uuid.UUID) (map[uuid.UUID][]dto.ClassRef, error) {
	return map[uuid.UUID][]dto.ClassRef{}, nil
}

func newApp(st service.Store) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	ctl := NewStudentController(service.New(st))
	app.Post("/students", ctl.Create)
	app.Get("/students", ctl.List)
	app.Get("/students/:id", ctl.Get)
	return app
}

func decode(t *testing.T, body any, raw []byte) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, body))
}

func TestCreateStudentHandler(t *testing.T) {
	st := &fakeStore{}
	app := newApp(st)

	req := httptest.NewRequest(fiber.MethodPost, "/students",
		strings.NewReader(`{"first_name":"Ana","last_name":"Bauer","national_id":"NID-1"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var out struct {
		Data dto.StudentResponse `json:"data"`
	}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	decode(t, &out, raw)
	assert.Equal(t, "Ana Bauer", out.Data.StudentFullName)
	assert.Len(t, st.students, 1)
}

func TestCreateStudentHandler_Validation(t *testing.T) {
	app := newApp(&fakeStore{})

	req := httptest.NewRequest(fiber.MethodPost, "/students",
		strings.NewReader(`{"last_name":"Bauer","national_id":"NID-1"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestGetStudentHandler(t *testing.T) {
	app := newApp(&fakeStore{})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/students/not-a-uuid", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/students/"+uuid.NewString(), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
