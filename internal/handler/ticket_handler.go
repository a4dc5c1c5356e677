package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/eventsphere-backend/internal/models"
	"github.com/sefazor/eventsphere-backend/internal/service"
	"github.com/sefazor/eventsphere-backend/pkg/utils"
	"github.com/stripe/stripe-go/v74"
	"go.uber.org/zap"
)

// WebhookVerifier checks the Stripe-Signature header and decodes the event.
type WebhookVerifier interface {
	ConstructEvent(payload []byte, signature string) (stripe.Event, error)
}

type TicketHandler struct {
	ticketService *service.TicketService
	webhooks      WebhookVerifier
	validator     *utils.Validator
	logger        *zap.Logger
}

// NewTicketHandler accepts a nil verifier when Stripe is not configured.
func NewTicketHandler(ticketService *service.TicketService, webhooks WebhookVerifier, validator *utils.Validator, logger *zap.Logger) *TicketHandler {
	return &TicketHandler{
		ticketService: ticketService,
		webhooks:      webhooks,
		validator:     validator,
		logger:        logger,
	}
}

func (h *TicketHandler) BookTicket(c *fiber.Ctx) error {
	var req models.BookTicketRequest
	if err := bind(c, h.validator, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	booking, err := h.ticketService.BookTicket(c.UserContext(), currentUser(c).ID, req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(booking, "Ticket booked successfully"))
}

func (h *TicketHandler) GetMyTickets(c *fiber.Ctx) error {
	tickets, err := h.ticketService.GetTicketsByUser(c.UserContext(), currentUser(c).ID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(tickets, "Tickets retrieved successfully"))
}

func (h *TicketHandler) GetTicketsByEvent(c *fiber.Ctx) error {
	eventID, ok := paramID(c, "eventId")
	if !ok {
		return badRequest(c, "Invalid event ID")
	}

	tickets, err := h.ticketService.GetTicketsByEvent(c.UserContext(), eventID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(tickets, "Tickets retrieved successfully"))
}

func (h *TicketHandler) CountTickets(c *fiber.Ctx) error {
	count, err := h.ticketService.CountTickets(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(models.CountResponse{Count: count}, "Tickets counted"))
}

// ownedTicket loads the ticket and checks the caller may see it. It writes
// the response itself and returns nil ticket when access is denied.
func (h *TicketHandler) ownedTicket(c *fiber.Ctx) (*models.Ticket, error) {
	id, ok := paramID(c, "id")
	if !ok {
		return nil, badRequest(c, "Invalid ticket ID")
	}

	ticket, err := h.ticketService.GetTicketByID(c.UserContext(), id)
	if err != nil {
		return nil, respondError(c, h.logger, err)
	}
	if !currentUser(c).CanAccess(ticket.UserID) {
		return nil, forbidden(c)
	}
	return ticket, nil
}

func (h *TicketHandler) GetTicket(c *fiber.Ctx) error {
	ticket, err := h.ownedTicket(c)
	if ticket == nil {
		return err
	}
	return c.JSON(models.SuccessResponse(ticket, "Ticket retrieved successfully"))
}

func (h *TicketHandler) GetTicketPayment(c *fiber.Ctx) error {
	ticket, err := h.ownedTicket(c)
	if ticket == nil {
		return err
	}

	payment, err := h.ticketService.GetPayment(c.UserContext(), ticket.ID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(payment, "Payment retrieved successfully"))
}

func (h *TicketHandler) GetTicketQRCode(c *fiber.Ctx) error {
	ticket, err := h.ownedTicket(c)
	if ticket == nil {
		return err
	}

	png, err := h.ticketService.TicketQRCode(c.UserContext(), ticket.ID)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}

func (h *TicketHandler) HandleStripeWebhook(c *fiber.Ctx) error {
	if h.webhooks == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(models.ErrorResponse("Payments are not configured"))
	}

	event, err := h.webhooks.ConstructEvent(c.Body(), c.Get("Stripe-Signature"))
	if err != nil {
		h.logger.Warn("stripe webhook signature check failed", zap.Error(err))
		return badRequest(c, "Invalid webhook signature")
	}

	if err := h.ticketService.HandleStripeWebhook(c.UserContext(), event); err != nil {
		return respondError(c, h.logger, err)
	}

	return c.SendStatus(fiber.StatusOK)
}
