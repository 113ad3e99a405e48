package controller

import (
	"fmt"

	service "classroom_backend/internals/features/classroom/grades/service"
	helper "classroom_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type GradeController struct {
	Svc *service.Service
}

func NewGradeController(svc *service.Service) *GradeController {
	return &GradeController{Svc: svc}
}

// GET /grades?student_id=
func (ctl *GradeController) ByQuery(c *fiber.Ctx) error {
	return ctl.report(c, c.Query("student_id"))
}

// GET /students/:id/grades
func (ctl *GradeController) ByStudent(c *fiber.Ctx) error {
	return ctl.report(c, c.Params("id"))
}

func (ctl *GradeController) report(c *fiber.Ctx, studentID string) error {
	out, err := ctl.Svc.ComputeGradeReport(c.UserContext(), studentID)
	if err != nil {
		return helper.FromError(c, err)
	}
	c.Set(fiber.HeaderCacheControl, "no-store")
	return helper.JsonOK(c, "ok", out)
}

// GET /students/:id/grades/export
func (ctl *GradeController) Export(c *fiber.Ctx) error {
	f, err := ctl.Svc.ExportGradeReport(c.UserContext(), c.Params("id"))
	if err != nil {
		return helper.FromError(c, err)
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to render workbook")
	}
	c.Set(fiber.HeaderContentType, xlsxMIME)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="grades-%s.xlsx"`, c.Params("id")))
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Send(buf.Bytes())
}
