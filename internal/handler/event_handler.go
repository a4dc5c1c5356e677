package handler

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/eventsphere-backend/internal/models"
	"github.com/sefazor/eventsphere-backend/internal/service"
	"github.com/sefazor/eventsphere-backend/pkg/media"
	"github.com/sefazor/eventsphere-backend/pkg/utils"
	"go.uber.org/zap"
)

// Yüklenebilecek en büyük resim boyutu
const maxImageSize = 10 << 20

type EventHandler struct {
	eventService *service.EventService
	validator    *utils.Validator
	logger       *zap.Logger
}

func NewEventHandler(eventService *service.EventService, validator *utils.Validator, logger *zap.Logger) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		validator:    validator,
		logger:       logger,
	}
}

// readImage returns the uploaded file under field. A missing file yields nil.
func (h *EventHandler) readImage(c *fiber.Ctx, field string) ([]byte, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}
	if fileHeader.Size > maxImageSize {
		return nil, fmt.Errorf("%w: image exceeds %d bytes", service.ErrValidation, maxImageSize)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	mimeType, _ := media.DetectType(data)
	if err := h.validator.Var(mimeType, "supported_image"); err != nil {
		return nil, fmt.Errorf("%w: unsupported image type %s", service.ErrValidation, mimeType)
	}

	return data, nil
}

func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	user := currentUser(c)

	var req models.EventRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid form data")
	}
	// Organizatörler yalnızca kendi adlarına etkinlik açabilir
	if !user.IsAdmin() || req.OrganizerID == 0 {
		req.OrganizerID = user.ID
	}
	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	image, err := h.readImage(c, "image")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	event, err := h.eventService.CreateEvent(c.UserContext(), req, image)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(event, "Event created successfully"))
}

func (h *EventHandler) UpdateEvent(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid event ID")
	}

	existing, err := h.eventService.GetEventByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	user := currentUser(c)
	if !user.CanAccess(existing.OrganizerID) {
		return forbidden(c)
	}

	var req models.EventRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid form data")
	}
	if !user.IsAdmin() || req.OrganizerID == 0 {
		req.OrganizerID = existing.OrganizerID
	}
	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	newImage, err := h.readImage(c, "newImage")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	event, err := h.eventService.UpdateEvent(c.UserContext(), id, req, newImage)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(models.SuccessResponse(event, "Event updated successfully"))
}

func (h *EventHandler) DeleteEvent(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid event ID")
	}

	user := currentUser(c)
	if !user.IsAdmin() {
		event, err := h.eventService.GetEventByID(c.UserContext(), id)
		if err != nil {
			return respondError(c, h.logger, err)
		}
		if event.OrganizerID != user.ID {
			return forbidden(c)
		}
	}

	if err := h.eventService.DeleteEvent(c.UserContext(), id); err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(models.SuccessResponse(nil, "Event successfully deleted"))
}

func (h *EventHandler) ApproveEvent(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid event ID")
	}

	event, err := h.eventService.ApproveEvent(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(models.SuccessResponse(event, "Event approved"))
}

func (h *EventHandler) DisapproveEvent(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid event ID")
	}

	event, err := h.eventService.DisapproveEvent(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(models.SuccessResponse(event, "Event moved back to pending"))
}

func (h *EventHandler) RejectEvent(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid event ID")
	}

	var req models.RejectEventRequest
	if err := bind(c, h.validator, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	event, err := h.eventService.RejectEvent(c.UserContext(), id, req.Message)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(models.SuccessResponse(event, "Event rejected"))
}

func (h *EventHandler) GetEvent(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid event ID")
	}

	event, err := h.eventService.GetEventByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(models.SuccessResponse(event, "Event retrieved successfully"))
}

func (h *EventHandler) GetAllEvents(c *fiber.Ctx) error {
	return h.list(c, func() ([]models.Event, error) {
		return h.eventService.GetAllEvents(c.UserContext())
	})
}

func (h *EventHandler) GetApprovedEvents(c *fiber.Ctx) error {
	return h.list(c, func() ([]models.Event, error) {
		return h.eventService.GetApprovedEvents(c.UserContext())
	})
}

func (h *EventHandler) CountEvents(c *fiber.Ctx) error {
	count, err := h.eventService.CountEvents(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(models.CountResponse{Count: count}, "Events counted"))
}

func (h *EventHandler) GetOrganizerEmail(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid event ID")
	}

	email, err := h.eventService.GetOrganizerEmail(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(models.SuccessResponse(fiber.Map{"email": email}, "Organizer email retrieved"))
}

func (h *EventHandler) GetEventsByCategory(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid category ID")
	}
	return h.list(c, func() ([]models.Event, error) {
		return h.eventService.GetEventsByCategory(c.UserContext(), id)
	})
}

func (h *EventHandler) GetEventsByOrganizer(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid organizer ID")
	}
	return h.list(c, func() ([]models.Event, error) {
		return h.eventService.GetEventsByOrganizer(c.UserContext(), id)
	})
}

func (h *EventHandler) GetEventsByCity(c *fiber.Ctx) error {
	return h.list(c, func() ([]models.Event, error) {
		return h.eventService.GetEventsByCity(c.UserContext(), c.Params("city"))
	})
}

func (h *EventHandler) GetEventsByCountry(c *fiber.Ctx) error {
	return h.list(c, func() ([]models.Event, error) {
		return h.eventService.GetEventsByCountry(c.UserContext(), c.Params("country"))
	})
}

func (h *EventHandler) SearchEvents(c *fiber.Ctx) error {
	return h.list(c, func() ([]models.Event, error) {
		return h.eventService.GetEventsByName(c.UserContext(), c.Query("name"))
	})
}

func (h *EventHandler) GetEventsByStatus(c *fiber.Ctx) error {
	status := models.ApprovalStatus(c.Params("status"))
	return h.list(c, func() ([]models.Event, error) {
		return h.eventService.GetEventsByStatus(c.UserContext(), status)
	})
}

// GetEventsByDate expects ?date=YYYY-MM-DD and an optional organizerId.
func (h *EventHandler) GetEventsByDate(c *fiber.Ctx) error {
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		return badRequest(c, "date must be formatted as YYYY-MM-DD")
	}
	organizerID, ok := queryID(c, "organizerId")
	if !ok {
		return badRequest(c, "Invalid organizer ID")
	}
	return h.list(c, func() ([]models.Event, error) {
		return h.eventService.GetEventsByDate(c.UserContext(), date, organizerID)
	})
}

func (h *EventHandler) GetEventsByDateTime(c *fiber.Ctx) error {
	at, err := time.Parse(time.RFC3339, c.Query("at"))
	if err != nil {
		return badRequest(c, "at must be an RFC3339 timestamp")
	}
	organizerID, ok := queryID(c, "organizerId")
	if !ok {
		return badRequest(c, "Invalid organizer ID")
	}
	return h.list(c, func() ([]models.Event, error) {
		return h.eventService.GetEventsByDateTime(c.UserContext(), at, organizerID)
	})
}

func (h *EventHandler) GetEventsNearby(c *fiber.Ctx) error {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		return badRequest(c, "Invalid latitude")
	}
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		return badRequest(c, "Invalid longitude")
	}
	return h.list(c, func() ([]models.Event, error) {
		return h.eventService.GetEventsNearby(c.UserContext(), lat, lon)
	})
}

func (h *EventHandler) list(c *fiber.Ctx, fetch func() ([]models.Event, error)) error {
	events, err := fetch()
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(events, "Events retrieved successfully"))
}
