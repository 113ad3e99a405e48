package controller

import (
	"strings"

	dto "classroom_backend/internals/features/classroom/settings/dto"
	service "classroom_backend/internals/features/classroom/settings/service"
	helper "classroom_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type SettingsController struct {
	Svc       *service.Service
	Validator *validator.Validate
}

func NewSettingsController(svc *service.Service) *SettingsController {
	return &SettingsController{
		Svc:       svc,
		Validator: helper.Validator(),
	}
}

// GET /settings
func (ctl *SettingsController) List(c *fiber.Ctx) error {
	all, err := ctl.Svc.All(c.UserContext())
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", all)
}

// PUT /settings
func (ctl *SettingsController) Put(c *fiber.Ctx) error {
	var req dto.PutSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	req.Normalize()
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.FromError(c, err)
	}

	value := req.ValueString()
	if strings.TrimSpace(value) == "" {
		return helper.JsonValidationError(c, map[string]string{"value": "value must be a string, number or boolean"})
	}
	if err := ctl.Svc.Put(c.UserContext(), req.Key, value); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "setting saved", dto.SettingResponse{Key: req.Key, Value: value})
}
