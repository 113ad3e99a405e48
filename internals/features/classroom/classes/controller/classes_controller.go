package controller

import (
	dto "classroom_backend/internals/features/classroom/classes/dto"
	service "classroom_backend/internals/features/classroom/classes/service"
	helper "classroom_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const maxRosterFileSize = 5 << 20

type ClassController struct {
	Svc       *service.Service
	Validator *validator.Validate
}

func NewClassController(svc *service.Service) *ClassController {
	return &ClassController{
		Svc:       svc,
		Validator: helper.Validator(),
	}
}

// POST /classes
func (ctl *ClassController) Create(c *fiber.Ctx) error {
	var req dto.CreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	req.Normalize()
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.FromError(c, err)
	}

	m, err := ctl.Svc.CreateClass(c.UserContext(), req)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "class created", dto.FromModel(m, 0, 0))
}

// GET /classes?page=&per_page=
func (ctl *ClassController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := ctl.Svc.ListClasses(c.UserContext(), p)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "ok", rows, helper.BuildPaginationFromPage(total, p.Page, p.PerPage, len(rows)))
}

// GET /classes/:id
func (ctl *ClassController) Get(c *fiber.Ctx) error {
	out, err := ctl.Svc.GetClass(c.UserContext(), c.Params("id"))
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", out)
}

// POST /classes/:id/students
func (ctl *ClassController) Enroll(c *fiber.Ctx) error {
	var req dto.EnrollRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.FromError(c, err)
	}

	m, err := ctl.Svc.Enroll(c.UserContext(), c.Params("id"), req.StudentID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "student enrolled", dto.FromEnrollment(m))
}

// DELETE /classes/:id/students/:student_id
func (ctl *ClassController) Unenroll(c *fiber.Ctx) error {
	if err := ctl.Svc.Unenroll(c.UserContext(), c.Params("id"), c.Params("student_id")); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonDeleted(c, "student removed from class", fiber.Map{
		"class_id":   c.Params("id"),
		"student_id": c.Params("student_id"),
	})
}

// POST /classes/:id/students/import (multipart, field "file")
func (ctl *ClassController) ImportRoster(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return helper.JsonValidationError(c, map[string]string{"file": "this field is required"})
	}
	if fh.Size > maxRosterFileSize {
		return helper.JsonError(c, fiber.StatusRequestEntityTooLarge, "file too large (max 5MB)")
	}
	f, err := fh.Open()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "cannot read uploaded file")
	}
	defer f.Close()

	res, err := ctl.Svc.ImportRoster(c.UserContext(), c.Params("id"), f)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "roster imported", res)
}
