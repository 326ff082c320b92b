package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/timesheet-tracker/backend/internal/http/dto"
	"github.com/timesheet-tracker/backend/internal/repositories"
	"github.com/timesheet-tracker/backend/internal/services"
	"go.uber.org/zap"
)

type EntryHandler struct {
	entryService *services.EntryService
	log          *zap.Logger
}

func NewEntryHandler(entryService *services.EntryService, log *zap.Logger) *EntryHandler {
	return &EntryHandler{entryService: entryService, log: log}
}

func (h *EntryHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	entryDate, err := parseDate(req.EntryDate, "entry_date")
	if err != nil {
		return respondErr(c, h.log, err)
	}

	entry, err := h.entryService.Create(c.Context(), actorFrom(c), services.CreateEntryInput{
		ProjectID:   req.ProjectID,
		EntryDate:   entryDate,
		Hours:       req.Hours,
		Description: req.Description,
	})
	if err != nil {
		return respondErr(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(entry))
}

func (h *EntryHandler) List(c *fiber.Ctx) error {
	f, err := entryFilterFromQuery(c)
	if err != nil {
		return respondErr(c, h.log, err)
	}

	entries, err := h.entryService.ListOwn(c.Context(), actorFrom(c), f)
	if err != nil {
		return respondErr(c, h.log, err)
	}
	return c.JSON(dto.OK(entries))
}

func (h *EntryHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondErr(c, h.log, err)
	}

	entry, err := h.entryService.Get(c.Context(), actorFrom(c), id)
	if err != nil {
		return respondErr(c, h.log, err)
	}
	return c.JSON(dto.OK(entry))
}

func (h *EntryHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondErr(c, h.log, err)
	}

	var req dto.UpdateEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	in := services.UpdateEntryInput{
		ProjectID:   req.ProjectID,
		Hours:       req.Hours,
		Description: req.Description,
	}
	if req.EntryDate != nil {
		entryDate, err := parseDate(*req.EntryDate, "entry_date")
		if err != nil {
			return respondErr(c, h.log, err)
		}
		in.EntryDate = &entryDate
	}

	entry, err := h.entryService.Update(c.Context(), actorFrom(c), id, in)
	if err != nil {
		return respondErr(c, h.log, err)
	}
	return c.JSON(dto.OK(entry))
}

func (h *EntryHandler) Submit(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondErr(c, h.log, err)
	}

	entry, err := h.entryService.Submit(c.Context(), actorFrom(c), id)
	if err != nil {
		return respondErr(c, h.log, err)
	}
	return c.JSON(dto.OK(entry))
}

func (h *EntryHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondErr(c, h.log, err)
	}

	if err := h.entryService.Delete(c.Context(), actorFrom(c), id); err != nil {
		return respondErr(c, h.log, err)
	}
	return c.JSON(dto.OK(nil))
}

func (h *EntryHandler) History(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondErr(c, h.log, err)
	}

	logs, err := h.entryService.ApprovalHistory(c.Context(), actorFrom(c), id)
	if err != nil {
		return respondErr(c, h.log, err)
	}
	return c.JSON(dto.OK(logs))
}

func entryFilterFromQuery(c *fiber.Ctx) (repositories.EntryFilter, error) {
	var f repositories.EntryFilter

	if status := c.Query("status"); status != "" {
		f.Status = &status
	}
	if from := c.Query("from"); from != "" {
		t, err := parseDate(from, "from")
		if err != nil {
			return f, err
		}
		f.FromDate = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := parseDate(to, "to")
		if err != nil {
			return f, err
		}
		f.ToDate = &t
	}
	if raw := c.Query("employee_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return f, badQueryInt("employee_id")
		}
		f.EmployeeID = &id
	}

	return f, nil
}
