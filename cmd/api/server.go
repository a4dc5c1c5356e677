package main

import (
	"errors"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/sefazor/eventsphere-backend/internal/config"
	"github.com/sefazor/eventsphere-backend/internal/handler"
	"github.com/sefazor/eventsphere-backend/internal/models"
	"github.com/sefazor/eventsphere-backend/internal/realtime"
	"github.com/sefazor/eventsphere-backend/pkg/jwt"
	"go.uber.org/zap"
)

// Etkinlik resimleri multipart ile geldiği için varsayılan 4MB yetmiyor
const bodyLimit = 12 << 20

func newServer(cfg *config.Config, log *zap.Logger, handlers *handler.Handlers, tokens *jwt.Manager, hub *realtime.Hub) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "EventSphere API",
		BodyLimit:    bodyLimit,
		ErrorHandler: errorHandler(log),
	})

	// Global Middleware'ler önce tanımlanmalı
	app.Use(recover.New())
	app.Use(requestid.New())
	if sentry.CurrentHub().Client() != nil {
		app.Use(sentryfiber.New(sentryfiber.Options{
			Repanic: true,
			Timeout: 2 * time.Second,
		}))
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     normalizeOrigins(cfg.CORSOrigins),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Stripe-Signature",
		AllowMethods:     "GET, POST, PUT, DELETE",
		AllowCredentials: true,
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimit,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		Next: func(c *fiber.Ctx) bool {
			// Stripe retries must not be throttled
			return c.Path() == "/api/payments/webhook"
		},
	}))

	handler.RegisterRoutes(app, handlers, tokens, hub)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(models.SuccessResponse(fiber.Map{"status": "ok"}, ""))
	})

	return app
}

func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(models.ErrorResponse(fe.Message))
		}

		log.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("An error occurred while processing your request."))
	}
}

func normalizeOrigins(origins string) string {
	parts := strings.Split(origins, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}
