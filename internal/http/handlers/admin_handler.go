package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/timesheet-tracker/backend/internal/http/dto"
	"github.com/timesheet-tracker/backend/internal/repositories"
	"github.com/timesheet-tracker/backend/internal/services"
	"go.uber.org/zap"
)

// AdminHandler serves the admin surface: user and project management,
// system settings and the audit trail.
type AdminHandler struct {
	userService     *services.UserService
	projectService  *services.ProjectService
	settingsService *services.SettingsService
	auditService    *services.AuditService
	log             *zap.Logger
}

func NewAdminHandler(
	userService *services.UserService,
	projectService *services.ProjectService,
	settingsService *services.SettingsService,
	auditService *services.AuditService,
	log *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		userService:     userService,
		projectService:  projectService,
		settingsService: settingsService,
		auditService:    auditService,
		log:             log,
	}
}

func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	user, err := h.userService.Create(c.Context(), actorFrom(c), services.CreateUserInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Role:       req.Role,
		Department: req.Department,
		ManagerID:  req.ManagerID,
	})
	if err != nil {
		return respondErr(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(user))
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	var f repositories.UserFilter
	if role := c.Query("role"); role != "" {
		f.Role = &role
	}
	if status := c.Query("status"); status != "" {
		f.Status = &status
	}

	users, err := h.userService.List(c.Context(), f)
	if err != nil {
		return respondErr(c, h.log, err)
	}
	return c.JSON(dto.OK(users))
}

func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondErr(c, h.log, err)
	}

	user, err := h.userService.Get(c.Context(), id)
	if err != nil {
		return respondErr(c, h.log, err)
	}
	return c.JSON(dto.OK(user))
}

func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondErr(c, h.log, err)
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	user, err := h.userService.Update(c.Context(), actorFrom(c), id, services.UpdateUserInput{
		Name:         req.Name,
		Email:        req.Email,
		Role:         req.Role,
		Department:   req.Department,
		ManagerID:    req.ManagerID,
		ClearManager: req.ClearManager,
		Status:       req.Status,
	})
	if err != nil {
		return respondErr(c, h.log, err)
	}
	return c.JSON(dto.OK(user))
}

// DeactivateUser handles DELETE on a user; accounts are never hard-deleted
// because audit and timesheet history reference them.
func (h *AdminHandler) DeactivateUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondErr(c, h.log, err)
	}

	if err := h.userService.Deactivate(c.Context(), actorFrom(c), id); err != nil {
		return respondErr(c, h.log, err)
	}
	return c.JSON(dto.OK(nil))
}

func (h *AdminHandler) CreateProject(c *fiber.Ctx) error {
	var req dto.CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	project, err := h.projectService.Create(c.Context(), actorFrom(c), services.CreateProjectInput{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		BillingRate: req.BillingRate,
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		return respondErr(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(project))
}

func (h *AdminHandler) ListProjects(c *fiber.Ctx) error {
	var status *string
	if s := c.Query("status"); s != "" {
		status = &s
	}

	projects, err := h.projectService.List(c.Context(), status)
	if err != nil {
		return respondErr(c, h.log, err)
	}
	return c.JSON(dto.OK(projects))
}

func (h *AdminHandler) GetProject(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondErr(c, h.log, err)
	}

	project, err := h.projectService.Get(c.Context(), id)
	if err != nil {
		return respondErr(c, h.log, err)
	}
	return c.JSON(dto.OK(project))
}

func (h *AdminHandler) UpdateProject(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondErr(c, h.log, err)
	}

	var req dto.UpdateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	project, err := h.projectService.Update(c.Context(), actorFrom(c), id, services.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		BillingRate: req.BillingRate,
		Status:      req.Status,
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		return respondErr(c, h.log, err)
	}
	return c.JSON(dto.OK(project))
}

func (h *AdminHandler) DeleteProject(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondErr(c, h.log, err)
	}

	if err := h.projectService.Delete(c.Context(), actorFrom(c), id); err != nil {
		return respondErr(c, h.log, err)
	}
	return c.JSON(dto.OK(nil))
}

func (h *AdminHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.settingsService.All(c.Context())
	if err != nil {
		return respondErr(c, h.log, err)
	}
	return c.JSON(dto.OK(settings))
}

func (h *AdminHandler) UpdateSettings(c *fiber.Ctx) error {
	var req dto.UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	if err := h.settingsService.Update(c.Context(), actorFrom(c), req.Settings); err != nil {
		return respondErr(c, h.log, err)
	}

	settings, err := h.settingsService.All(c.Context())
	if err != nil {
		return respondErr(c, h.log, err)
	}
	return c.JSON(dto.OK(settings))
}

func (h *AdminHandler) ListAuditLogs(c *fiber.Ctx) error {
	var f repositories.AuditFilter
	if raw := c.Query("user_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return respondErr(c, h.log, badQueryInt("user_id"))
		}
		f.UserID = &id
	}
	if entityType := c.Query("entity_type"); entityType != "" {
		f.EntityType = &entityType
	}
	if raw := c.Query("entity_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return respondErr(c, h.log, badQueryInt("entity_id"))
		}
		f.EntityID = &id
	}
	f.Limit = c.QueryInt("limit")
	f.Offset = c.QueryInt("offset")

	logs, err := h.auditService.List(c.Context(), f)
	if err != nil {
		return respondErr(c, h.log, err)
	}
	return c.JSON(dto.OK(logs))
}
