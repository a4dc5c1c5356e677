package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/eventsphere-backend/internal/models"
	"github.com/sefazor/eventsphere-backend/internal/service"
	"github.com/sefazor/eventsphere-backend/pkg/utils"
	"go.uber.org/zap"
)

type UserHandler struct {
	userService *service.UserService
	validator   *utils.Validator
	logger      *zap.Logger
}

func NewUserHandler(userService *service.UserService, validator *utils.Validator, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator,
		logger:      logger,
	}
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	user, err := h.userService.GetUserByID(c.UserContext(), currentUser(c).ID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(user, "Profile retrieved successfully"))
}

func (h *UserHandler) GetAllUsers(c *fiber.Ctx) error {
	users, err := h.userService.GetAllUsers(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(users, "Users retrieved successfully"))
}

func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid user ID")
	}
	if !currentUser(c).CanAccess(id) {
		return forbidden(c)
	}

	user, err := h.userService.GetUserByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(user, "User retrieved successfully"))
}

func (h *UserHandler) GetUserByEmail(c *fiber.Ctx) error {
	user, err := h.userService.GetUserByEmail(c.UserContext(), c.Params("email"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(user, "User retrieved successfully"))
}

func (h *UserHandler) GetUsersByRole(c *fiber.Ctx) error {
	users, err := h.userService.GetUsersByRole(c.UserContext(), c.Params("role"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(users, "Users retrieved successfully"))
}

func (h *UserHandler) CountUsers(c *fiber.Ctx) error {
	count, err := h.userService.CountUsers(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(models.CountResponse{Count: count}, "Users counted"))
}

func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid user ID")
	}

	user := currentUser(c)
	if !user.CanAccess(id) {
		return forbidden(c)
	}

	var req models.UpdateUserRequest
	if err := bind(c, h.validator, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	// Rol değişikliği sadece admin tarafından yapılabilir
	if req.RoleID != 0 && !user.IsAdmin() {
		existing, err := h.userService.GetUserByID(c.UserContext(), id)
		if err != nil {
			return respondError(c, h.logger, err)
		}
		if existing.RoleID != req.RoleID {
			return forbidden(c)
		}
	}

	updated, err := h.userService.UpdateUser(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(updated, "User updated successfully"))
}

func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid user ID")
	}
	if currentUser(c).ID != id {
		return forbidden(c)
	}

	var req models.ChangePasswordRequest
	if err := bind(c, h.validator, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	if err := h.userService.UpdatePassword(c.UserContext(), id, req); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(nil, "Password updated successfully"))
}

func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid user ID")
	}
	if !currentUser(c).CanAccess(id) {
		return forbidden(c)
	}

	if err := h.userService.DeleteUser(c.UserContext(), id); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(nil, "User deleted successfully"))
}
