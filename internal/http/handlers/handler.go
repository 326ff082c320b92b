package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/timesheet-tracker/backend/internal/apperr"
	"github.com/timesheet-tracker/backend/internal/http/dto"
	"github.com/timesheet-tracker/backend/internal/middleware"
	"github.com/timesheet-tracker/backend/internal/services"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

func actorFrom(c *fiber.Ctx) services.Actor {
	return services.Actor{
		ID:   middleware.GetUserID(c),
		Role: middleware.GetUserRole(c),
		IP:   c.IP(),
	}
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation(apperr.FieldError{Field: "id", Message: "invalid id"})
	}
	return id, nil
}

func parseDate(value, field string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, apperr.Validation(apperr.FieldError{Field: field, Message: "date must be YYYY-MM-DD"})
	}
	return t, nil
}

func badQueryInt(field string) error {
	return apperr.Validation(apperr.FieldError{Field: field, Message: field + " must be an integer"})
}

func badBody(c *fiber.Ctx) error {
	return respondErr(c, nil, apperr.Validation(apperr.FieldError{Field: "body", Message: "invalid request body"}))
}

// respondErr maps a service error to its HTTP shape. Internal causes are
// logged with the request id and never leak into the response.
func respondErr(c *fiber.Ctx, log *zap.Logger, err error) error {
	e := apperr.From(err)

	reqID, _ := c.Locals(middleware.CtxRequestID).(string)
	resp := dto.ErrorResponse{
		Error:     e.Message,
		State:     e.CurrentState,
		RequestID: reqID,
	}
	if len(e.Fields) > 0 {
		resp.Fields = make(map[string]string, len(e.Fields))
		for _, f := range e.Fields {
			resp.Fields[f.Field] = f.Message
		}
	}

	if e.Kind == apperr.KindInternal {
		if log != nil {
			log.Error("request failed",
				zap.String("request_id", reqID),
				zap.String("path", c.Path()),
				zap.Error(e),
			)
		}
		resp.Error = "internal error"
	}

	return c.Status(e.HTTPStatus()).JSON(resp)
}
