package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/eventsphere-backend/internal/models"
	jwtPkg "github.com/sefazor/eventsphere-backend/pkg/jwt"
)

// AuthMiddleware validates the bearer token and stores the caller in locals.
// Websocket clients cannot set headers, so access_token is accepted as a
// query parameter as well.
func AuthMiddleware(tokens *jwtPkg.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Query("access_token")

		if authHeader := c.Get("Authorization"); authHeader != "" {
			// Check if the header starts with "Bearer "
			if !strings.HasPrefix(authHeader, "Bearer ") {
				return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid authorization header format"))
			}
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Authorization header is required"))
		}

		claims, err := tokens.ValidateToken(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid token"))
		}

		c.Locals("userID", claims.UserID)
		c.Locals("userEmail", claims.Email)
		c.Locals("userRole", claims.Role)

		return c.Next()
	}
}

// Yetki politikaları
var (
	PolicyAdmin            = []string{models.RoleAdmin}
	PolicyAdminOrOrganizer = []string{models.RoleAdmin, models.RoleOrganizer}
	PolicyAll              = []string{models.RoleAdmin, models.RoleOrganizer, models.RoleAttendee}
)

// RequireRoles must run after AuthMiddleware.
func RequireRoles(roles ...string) fiber.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("userRole").(string)
		if !allowed[role] {
			return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse("You don't have permission to perform this action"))
		}
		return c.Next()
	}
}
