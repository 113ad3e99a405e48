package controller

import (
	dto "classroom_backend/internals/features/classroom/students/dto"
	service "classroom_backend/internals/features/classroom/students/service"
	helper "classroom_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type StudentController struct {
	Svc       *service.Service
	Validator *validator.Validate
}

func NewStudentController(svc *service.Service) *StudentController {
	return &StudentController{
		Svc:       svc,
		Validator: helper.Validator(),
	}
}

// POST /students
func (ctl *StudentController) Create(c *fiber.Ctx) error {
	var req dto.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	req.Normalize()
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.FromError(c, err)
	}

	m, err := ctl.Svc.CreateStudent(c.UserContext(), req)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "student created", dto.FromModel(m, nil))
}

// GET /students?q=&page=&per_page=
func (ctl *StudentController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 50, 200)
	rows, total, err := ctl.Svc.ListStudents(c.UserContext(), c.Query("q"), p)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "ok", rows, helper.BuildPaginationFromPage(total, p.Page, p.PerPage, len(rows)))
}

// GET /students/:id
func (ctl *StudentController) Get(c *fiber.Ctx) error {
	out, err := ctl.Svc.GetStudent(c.UserContext(), c.Params("id"))
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", out)
}
