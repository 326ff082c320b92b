package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/timesheet-tracker/backend/internal/http/dto"
	"github.com/timesheet-tracker/backend/internal/models"
	"github.com/timesheet-tracker/backend/internal/services"
	"go.uber.org/zap"
)

// ApprovalHandler serves the manager review surface. Route-level role
// checks admit managers and admins; per-entry authorization stays in the
// service so a manager only ever reviews their own reports.
type ApprovalHandler struct {
	entryService *services.EntryService
	userService  *services.UserService
	log          *zap.Logger
}

func NewApprovalHandler(entryService *services.EntryService, userService *services.UserService, log *zap.Logger) *ApprovalHandler {
	return &ApprovalHandler{entryService: entryService, userService: userService, log: log}
}

func (h *ApprovalHandler) Pending(c *fiber.Ctx) error {
	entries, err := h.entryService.ListPending(c.Context(), actorFrom(c))
	if err != nil {
		return respondErr(c, h.log, err)
	}
	return c.JSON(dto.OK(entries))
}

func (h *ApprovalHandler) TeamEntries(c *fiber.Ctx) error {
	f, err := entryFilterFromQuery(c)
	if err != nil {
		return respondErr(c, h.log, err)
	}

	entries, err := h.entryService.ListTeam(c.Context(), actorFrom(c), f)
	if err != nil {
		return respondErr(c, h.log, err)
	}
	return c.JSON(dto.OK(entries))
}

func (h *ApprovalHandler) Team(c *fiber.Ctx) error {
	members, err := h.userService.TeamMembers(c.Context(), actorFrom(c))
	if err != nil {
		return respondErr(c, h.log, err)
	}
	return c.JSON(dto.OK(members))
}

func (h *ApprovalHandler) Approve(c *fiber.Ctx) error {
	return h.review(c, h.entryService.Approve)
}

func (h *ApprovalHandler) Reject(c *fiber.Ctx) error {
	return h.review(c, h.entryService.Reject)
}

type reviewFn func(ctx context.Context, actor services.Actor, id int64, comments string) (*models.TimesheetEntry, error)

func (h *ApprovalHandler) review(c *fiber.Ctx, fn reviewFn) error {
	id, err := parseID(c)
	if err != nil {
		return respondErr(c, h.log, err)
	}

	var req dto.ReviewRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badBody(c)
		}
	}

	entry, err := fn(c.Context(), actorFrom(c), id, req.Comments)
	if err != nil {
		return respondErr(c, h.log, err)
	}
	return c.JSON(dto.OK(entry))
}
