package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/eventsphere-backend/internal/models"
	"github.com/sefazor/eventsphere-backend/internal/service"
	"github.com/sefazor/eventsphere-backend/pkg/utils"
	"go.uber.org/zap"
)

// CatalogHandler serves categories, locations and roles.
type CatalogHandler struct {
	catalogService *service.CatalogService
	validator      *utils.Validator
	logger         *zap.Logger
}

func NewCatalogHandler(catalogService *service.CatalogService, validator *utils.Validator, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		validator:      validator,
		logger:         logger,
	}
}

func (h *CatalogHandler) respond(c *fiber.Ctx, status int, data interface{}, err error, message string) error {
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(status).JSON(models.SuccessResponse(data, message))
}

// Categories

func (h *CatalogHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.catalogService.GetCategories(c.UserContext())
	return h.respond(c, fiber.StatusOK, categories, err, "Categories retrieved successfully")
}

func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid category ID")
	}
	category, err := h.catalogService.GetCategory(c.UserContext(), id)
	return h.respond(c, fiber.StatusOK, category, err, "Category retrieved successfully")
}

func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var req models.CategoryRequest
	if err := bind(c, h.validator, &req); err != nil {
		return respondError(c, h.logger, err)
	}
	category, err := h.catalogService.CreateCategory(c.UserContext(), req)
	return h.respond(c, fiber.StatusCreated, category, err, "Category created successfully")
}

func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid category ID")
	}
	var req models.CategoryRequest
	if err := bind(c, h.validator, &req); err != nil {
		return respondError(c, h.logger, err)
	}
	category, err := h.catalogService.UpdateCategory(c.UserContext(), id, req)
	return h.respond(c, fiber.StatusOK, category, err, "Category updated successfully")
}

func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid category ID")
	}
	err := h.catalogService.DeleteCategory(c.UserContext(), id)
	return h.respond(c, fiber.StatusOK, nil, err, "Category deleted successfully")
}

// Locations

func (h *CatalogHandler) GetLocations(c *fiber.Ctx) error {
	locations, err := h.catalogService.GetLocations(c.UserContext())
	return h.respond(c, fiber.StatusOK, locations, err, "Locations retrieved successfully")
}

func (h *CatalogHandler) GetLocation(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid location ID")
	}
	location, err := h.catalogService.GetLocation(c.UserContext(), id)
	return h.respond(c, fiber.StatusOK, location, err, "Location retrieved successfully")
}

func (h *CatalogHandler) GetLocationsByCity(c *fiber.Ctx) error {
	locations, err := h.catalogService.GetLocationsByCity(c.UserContext(), c.Params("city"))
	return h.respond(c, fiber.StatusOK, locations, err, "Locations retrieved successfully")
}

func (h *CatalogHandler) GetLocationsByCountry(c *fiber.Ctx) error {
	locations, err := h.catalogService.GetLocationsByCountry(c.UserContext(), c.Params("country"))
	return h.respond(c, fiber.StatusOK, locations, err, "Locations retrieved successfully")
}

func (h *CatalogHandler) CreateLocation(c *fiber.Ctx) error {
	var req models.LocationRequest
	if err := bind(c, h.validator, &req); err != nil {
		return respondError(c, h.logger, err)
	}
	location, err := h.catalogService.CreateLocation(c.UserContext(), req)
	return h.respond(c, fiber.StatusCreated, location, err, "Location created successfully")
}

func (h *CatalogHandler) UpdateLocation(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid location ID")
	}
	var req models.LocationRequest
	if err := bind(c, h.validator, &req); err != nil {
		return respondError(c, h.logger, err)
	}
	location, err := h.catalogService.UpdateLocation(c.UserContext(), id, req)
	return h.respond(c, fiber.StatusOK, location, err, "Location updated successfully")
}

func (h *CatalogHandler) DeleteLocation(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid location ID")
	}
	err := h.catalogService.DeleteLocation(c.UserContext(), id)
	return h.respond(c, fiber.StatusOK, nil, err, "Location deleted successfully")
}

// Roles

func (h *CatalogHandler) GetRoles(c *fiber.Ctx) error {
	roles, err := h.catalogService.GetRoles(c.UserContext())
	return h.respond(c, fiber.StatusOK, roles, err, "Roles retrieved successfully")
}

func (h *CatalogHandler) GetRole(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid role ID")
	}
	role, err := h.catalogService.GetRole(c.UserContext(), id)
	return h.respond(c, fiber.StatusOK, role, err, "Role retrieved successfully")
}

func (h *CatalogHandler) CreateRole(c *fiber.Ctx) error {
	var req models.RoleRequest
	if err := bind(c, h.validator, &req); err != nil {
		return respondError(c, h.logger, err)
	}
	role, err := h.catalogService.CreateRole(c.UserContext(), req)
	return h.respond(c, fiber.StatusCreated, role, err, "Role created successfully")
}

func (h *CatalogHandler) UpdateRole(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid role ID")
	}
	var req models.RoleRequest
	if err := bind(c, h.validator, &req); err != nil {
		return respondError(c, h.logger, err)
	}
	role, err := h.catalogService.UpdateRole(c.UserContext(), id, req)
	return h.respond(c, fiber.StatusOK, role, err, "Role updated successfully")
}

func (h *CatalogHandler) DeleteRole(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid role ID")
	}
	err := h.catalogService.DeleteRole(c.UserContext(), id)
	return h.respond(c, fiber.StatusOK, nil, err, "Role deleted successfully")
}
