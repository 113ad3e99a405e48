package controller

import (
	dto "classroom_backend/internals/features/classroom/sessions/dto"
	service "classroom_backend/internals/features/classroom/sessions/service"
	helper "classroom_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type SessionController struct {
	Svc       *service.Service
	Validator *validator.Validate
}

func NewSessionController(svc *service.Service) *SessionController {
	return &SessionController{
		Svc:       svc,
		Validator: helper.Validator(),
	}
}

// POST /sessions
func (ctl *SessionController) Create(c *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	req.Normalize()
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.FromError(c, err)
	}

	m, err := ctl.Svc.CreateSession(c.UserContext(), req)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "session created", dto.FromSessionWithRecords(m))
}

// GET /sessions?class_id=&page=&per_page=
func (ctl *SessionController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := ctl.Svc.ListSessions(c.UserContext(), c.Query("class_id"), p)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "ok", rows, helper.BuildPaginationFromPage(total, p.Page, p.PerPage, len(rows)))
}

// GET /sessions/:id
func (ctl *SessionController) Get(c *fiber.Ctx) error {
	out, err := ctl.Svc.GetSession(c.UserContext(), c.Params("id"))
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", out)
}

// PATCH /sessions/:id/students/:student_id
func (ctl *SessionController) PatchRecord(c *fiber.Ctx) error {
	var req dto.UpdateRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	return ctl.updateRecord(c, c.Params("id"), c.Params("student_id"), req)
}

// PUT /sessions/students, record named in the body
func (ctl *SessionController) PutRecord(c *fiber.Ctx) error {
	var req dto.UpdateRecordByPairRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	return ctl.updateRecord(c, req.SessionID, req.StudentID, req.UpdateRecordRequest)
}

func (ctl *SessionController) updateRecord(c *fiber.Ctx, sessionID, studentID string, req dto.UpdateRecordRequest) error {
	rec, err := ctl.Svc.UpdateAttendanceRecord(c.UserContext(), sessionID, studentID, req)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "attendance record updated", dto.FromRecord(rec))
}
