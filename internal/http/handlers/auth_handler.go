package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/timesheet-tracker/backend/internal/http/dto"
	"github.com/timesheet-tracker/backend/internal/services"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *services.AuthService
	log         *zap.Logger
}

func NewAuthHandler(authService *services.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	token, user, err := h.authService.Login(c.Context(), req.Email, req.Password, c.IP())
	if err != nil {
		return respondErr(c, h.log, err)
	}

	return c.JSON(dto.OK(dto.LoginResponse{Token: token, User: user}))
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.authService.Logout(c.Context(), actorFrom(c)); err != nil {
		return respondErr(c, h.log, err)
	}
	return c.JSON(dto.OK(nil))
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.authService.Me(c.Context(), actorFrom(c))
	if err != nil {
		return respondErr(c, h.log, err)
	}
	return c.JSON(dto.OK(user))
}

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	if err := h.authService.ChangePassword(c.Context(), actorFrom(c), req.CurrentPassword, req.NewPassword); err != nil {
		return respondErr(c, h.log, err)
	}
	return c.JSON(dto.OK(nil))
}
