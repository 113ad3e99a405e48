package controller

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	model "classroom_backend/internals/features/classroom/settings/model"
	service "classroom_backend/internals/features/classroom/settings/service"
	helper "classroom_backend/internals/helpers"
	"classroom_backend/internals/helpers/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapStore map[string]string

func (m mapStore) Get(_ context.Context, key string) (*model.SettingModel, error) {
	v, ok := m[key]
	if !ok {
		return nil, apperr.NotFound(key)
	}
	return &model.SettingModel{SettingKey: key, SettingValue: v}, nil
}

func (m mapStore) InsertIfAbsent(_ context.Context, key, value string) error {
	if _, ok := m[key]; !ok {
		m[key] = value
	}
	return nil
}

func (m mapStore) Upsert(_ context.Context, key, value string) error {
	m[key] = value
	return nil
}

func (m mapStore) List(_ context.Context) ([]model.SettingModel, error) {
	out := make([]model.SettingModel, 0, len(m))
	for k, v := range m {
		out = append(out, model.SettingModel{SettingKey: k, SettingValue: v})
	}
	return out, nil
}

func newTestApp(st mapStore) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	ctl := NewSettingsController(service.New(st))
	app.Get("/settings", ctl.List)
	app.Put("/settings", ctl.Put)
	return app
}

func TestSettingsController_ListAppliesDefault(t *testing.T) {
	st := mapStore{}
	app := newTestApp(st)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/settings", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `"absence_deduction":"0.5"`)
	assert.Equal(t, "0.5", st[model.KeyAbsenceDeduction])
}

func TestSettingsController_Put(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		stored string
	}{
		{name: "numeric value", body: `{"key":"absence_deduction","value":0.75}`, status: fiber.StatusOK, stored: "0.75"},
		{name: "string value", body: `{"key":"absence_deduction","value":"1"}`, status: fiber.StatusOK, stored: "1"},
		{name: "missing key", body: `{"value":"1"}`, status: fiber.StatusUnprocessableEntity},
		{name: "not a number", body: `{"key":"absence_deduction","value":"lots"}`, status: fiber.StatusBadRequest},
		{name: "broken json", body: `{"key":`, status: fiber.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := mapStore{}
			app := newTestApp(st)

			req := httptest.NewRequest(fiber.MethodPut, "/settings", strings.NewReader(tt.body))
			req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.stored != "" {
				assert.Equal(t, tt.stored, st[model.KeyAbsenceDeduction])
			}
		})
	}
}
