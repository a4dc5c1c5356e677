package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/eventsphere-backend/internal/models"
	"github.com/sefazor/eventsphere-backend/internal/service"
	"github.com/sefazor/eventsphere-backend/pkg/utils"
	"go.uber.org/zap"
)

const genericErrorMessage = "An error occurred while processing your request."

func init() {
	// Multipart formlardaki tarih alanları RFC3339 olarak gelir
	fiber.SetParserDecoder(fiber.ParserConfig{
		IgnoreUnknownKeys: true,
		ZeroEmpty:         true,
		ParserType: []fiber.ParserType{{
			Customtype: time.Time{},
			Converter:  parseFormTime,
		}},
	})
}

func parseFormTime(value string) reflect.Value {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return reflect.Value{}
	}
	return reflect.ValueOf(t)
}

// respondError maps service errors onto HTTP status codes. Anything that is
// not a known domain error is logged, reported and hidden from the client.
func respondError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	case errors.Is(err, service.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse(err.Error()))
	case errors.Is(err, service.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse(err.Error()))
	case errors.Is(err, service.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse(err.Error()))
	case errors.Is(err, service.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(models.ErrorResponse(err.Error()))
	}

	logger.Error("request failed",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	captureError(c, err)

	return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(genericErrorMessage))
}

func captureError(c *fiber.Ctx, err error) {
	if hub := sentryfiber.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
		return
	}
	if sentry.CurrentHub().Client() != nil {
		sentry.CaptureException(err)
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(message))
}

func forbidden(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse("You don't have permission to perform this action"))
}

// bind decodes the request body and runs struct validation on it. Failures
// are reported as validation errors.
func bind(c *fiber.Ctx, v *utils.Validator, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return fmt.Errorf("%w: invalid request body", service.ErrValidation)
	}
	if err := v.Struct(out); err != nil {
		return fmt.Errorf("%w: %s", service.ErrValidation, err.Error())
	}
	return nil
}

func paramID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func queryID(c *fiber.Ctx, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

type caller struct {
	ID    uint
	Email string
	Role  string
}

func (u caller) IsAdmin() bool {
	return u.Role == models.RoleAdmin
}

// CanAccess reports whether the caller owns the resource or is an admin.
func (u caller) CanAccess(ownerID uint) bool {
	return u.IsAdmin() || u.ID == ownerID
}

func currentUser(c *fiber.Ctx) caller {
	id, _ := c.Locals("userID").(uint)
	email, _ := c.Locals("userEmail").(string)
	role, _ := c.Locals("userRole").(string)
	return caller{ID: id, Email: email, Role: role}
}
