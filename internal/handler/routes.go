package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/eventsphere-backend/internal/middleware"
	"github.com/sefazor/eventsphere-backend/internal/realtime"
	"github.com/sefazor/eventsphere-backend/pkg/jwt"
)

type Handlers struct {
	Auth         *AuthHandler
	Event        *EventHandler
	User         *UserHandler
	Report       *ReportHandler
	Notification *NotificationHandler
	Catalog      *CatalogHandler
	Ticket       *TicketHandler
}

func NewHandlers(
	auth *AuthHandler,
	event *EventHandler,
	user *UserHandler,
	report *ReportHandler,
	notification *NotificationHandler,
	catalog *CatalogHandler,
	ticket *TicketHandler,
) *Handlers {
	return &Handlers{
		Auth:         auth,
		Event:        event,
		User:         user,
		Report:       report,
		Notification: notification,
		Catalog:      catalog,
		Ticket:       ticket,
	}
}

// RegisterRoutes mounts every endpoint under /api.
func RegisterRoutes(app *fiber.App, h *Handlers, tokens *jwt.Manager, hub *realtime.Hub) {
	api := app.Group("/api")

	auth := middleware.AuthMiddleware(tokens)
	admin := middleware.RequireRoles(middleware.PolicyAdmin...)
	staff := middleware.RequireRoles(middleware.PolicyAdminOrOrganizer...)
	anyone := middleware.RequireRoles(middleware.PolicyAll...)

	// Auth routes
	authGroup := api.Group("/auth")
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/login", h.Auth.Login)

	// Stripe webhook imzayla doğrulanır, token gerekmez
	api.Post("/payments/webhook", h.Ticket.HandleStripeWebhook)

	// Event routes
	events := api.Group("/events")
	events.Get("/", h.Event.GetApprovedEvents)
	events.Get("/all", auth, admin, h.Event.GetAllEvents)
	events.Get("/count", h.Event.CountEvents)
	events.Get("/search", h.Event.SearchEvents)
	events.Get("/nearby", h.Event.GetEventsNearby)
	events.Get("/date", h.Event.GetEventsByDate)
	events.Get("/datetime", h.Event.GetEventsByDateTime)
	events.Get("/category/:id", h.Event.GetEventsByCategory)
	events.Get("/organizer/:id", h.Event.GetEventsByOrganizer)
	events.Get("/city/:city", h.Event.GetEventsByCity)
	events.Get("/country/:country", h.Event.GetEventsByCountry)
	events.Get("/status/:status", auth, admin, h.Event.GetEventsByStatus)
	events.Get("/:id", h.Event.GetEvent)
	events.Get("/:id/organizer-email", auth, staff, h.Event.GetOrganizerEmail)
	events.Post("/", auth, staff, h.Event.CreateEvent)
	events.Put("/:id", auth, staff, h.Event.UpdateEvent)
	events.Delete("/:id", auth, staff, h.Event.DeleteEvent)
	events.Put("/:id/approve", auth, admin, h.Event.ApproveEvent)
	events.Put("/:id/disapprove", auth, admin, h.Event.DisapproveEvent)
	events.Put("/:id/reject", auth, admin, h.Event.RejectEvent)

	// Catalog routes
	categories := api.Group("/categories")
	categories.Get("/", h.Catalog.GetCategories)
	categories.Get("/:id", h.Catalog.GetCategory)
	categories.Post("/", auth, admin, h.Catalog.CreateCategory)
	categories.Put("/:id", auth, admin, h.Catalog.UpdateCategory)
	categories.Delete("/:id", auth, admin, h.Catalog.DeleteCategory)

	locations := api.Group("/locations")
	locations.Get("/", h.Catalog.GetLocations)
	locations.Get("/city/:city", h.Catalog.GetLocationsByCity)
	locations.Get("/country/:country", h.Catalog.GetLocationsByCountry)
	locations.Get("/:id", h.Catalog.GetLocation)
	locations.Post("/", auth, admin, h.Catalog.CreateLocation)
	locations.Put("/:id", auth, admin, h.Catalog.UpdateLocation)
	locations.Delete("/:id", auth, admin, h.Catalog.DeleteLocation)

	roles := api.Group("/roles", auth, admin)
	roles.Get("/", h.Catalog.GetRoles)
	roles.Get("/:id", h.Catalog.GetRole)
	roles.Post("/", h.Catalog.CreateRole)
	roles.Put("/:id", h.Catalog.UpdateRole)
	roles.Delete("/:id", h.Catalog.DeleteRole)

	// Protected routes
	users := api.Group("/users", auth, anyone)
	users.Get("/me", h.User.GetProfile)
	users.Get("/", admin, h.User.GetAllUsers)
	users.Get("/count", admin, h.User.CountUsers)
	users.Get("/role/:role", admin, h.User.GetUsersByRole)
	users.Get("/email/:email", admin, h.User.GetUserByEmail)
	users.Get("/:id", h.User.GetUser)
	users.Put("/:id", h.User.UpdateUser)
	users.Put("/:id/password", h.User.ChangePassword)
	users.Delete("/:id", h.User.DeleteUser)

	reports := api.Group("/reports", auth, anyone)
	reports.Post("/", h.Report.CreateReport)
	reports.Get("/mine", h.Report.GetMyReports)
	reports.Get("/", admin, h.Report.GetAllReports)
	reports.Get("/count", admin, h.Report.CountReports)
	reports.Get("/user/:userId", admin, h.Report.GetReportsByUser)
	reports.Get("/:id", h.Report.GetReport)
	reports.Put("/:id", admin, h.Report.UpdateReport)
	reports.Delete("/:id", admin, h.Report.DeleteReport)

	notifications := api.Group("/notifications", auth, anyone)
	notifications.Get("/", h.Notification.GetNotifications)
	notifications.Get("/unread", h.Notification.GetUnread)
	notifications.Put("/read-all", h.Notification.MarkAllAsRead)
	notifications.Put("/:id/read", h.Notification.MarkAsRead)

	tickets := api.Group("/tickets", auth, anyone)
	tickets.Post("/", h.Ticket.BookTicket)
	tickets.Get("/mine", h.Ticket.GetMyTickets)
	tickets.Get("/count", admin, h.Ticket.CountTickets)
	tickets.Get("/event/:eventId", staff, h.Ticket.GetTicketsByEvent)
	tickets.Get("/:id", h.Ticket.GetTicket)
	tickets.Get("/:id/payment", h.Ticket.GetTicketPayment)
	tickets.Get("/:id/qrcode", h.Ticket.GetTicketQRCode)

	// Gerçek zamanlı bildirimler; tarayıcılar token'ı ?access_token= ile gönderir
	api.Get("/ws", auth, anyone, hub.Upgrade, hub.Handler())
}
