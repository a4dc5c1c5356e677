//go:build wireinject
// +build wireinject

package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/wire"
	"github.com/sefazor/eventsphere-backend/internal/config"
	"github.com/sefazor/eventsphere-backend/internal/handler"
	"github.com/sefazor/eventsphere-backend/internal/realtime"
	"github.com/sefazor/eventsphere-backend/internal/repository"
	"github.com/sefazor/eventsphere-backend/internal/service"
	"github.com/sefazor/eventsphere-backend/pkg/email"
	"github.com/sefazor/eventsphere-backend/pkg/utils"
	"go.uber.org/zap"
)

var repositorySet = wire.NewSet(
	provideDatabase,
	repository.NewUserRepository,
	repository.NewEventRepository,
	repository.NewNotificationRepository,
	repository.NewReportRepository,
	repository.NewTicketRepository,
	repository.NewPaymentRepository,
	provideRoleRepository,
	provideCategoryRepository,
	provideLocationRepository,
)

var infrastructureSet = wire.NewSet(
	provideMailer,
	email.NewEmailService,
	provideObjectStore,
	provideTokenManager,
	provideQRService,
	provideStripeService,
	provideCheckoutProvider,
	provideWebhookVerifier,
	realtime.NewRegistry,
	realtime.NewHub,
	wire.Bind(new(service.ConnectionLookup), new(*realtime.Registry)),
	wire.Bind(new(service.Pusher), new(*realtime.Hub)),
)

var serviceSet = wire.NewSet(
	service.NewNotificationService,
	service.NewEventService,
	service.NewReportService,
	service.NewUserService,
	service.NewAuthService,
	service.NewCatalogService,
	service.NewTicketService,
)

var handlerSet = wire.NewSet(
	utils.NewValidator,
	handler.NewAuthHandler,
	handler.NewEventHandler,
	handler.NewUserHandler,
	handler.NewReportHandler,
	handler.NewNotificationHandler,
	handler.NewCatalogHandler,
	handler.NewTicketHandler,
	handler.NewHandlers,
)

func InitializeApp(cfg *config.Config, log *zap.Logger) (*fiber.App, func(), error) {
	wire.Build(
		repositorySet,
		infrastructureSet,
		serviceSet,
		handlerSet,
		newServer,
	)
	return nil, nil, nil
}
