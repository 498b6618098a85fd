package handler

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/sam7695/secure-asset-management/internal/auth/service"
	apperrors "github.com/sam7695/secure-asset-management/internal/errors"
)

// UserIDKey is the fiber.Ctx locals key under which Authenticate stores
// the resolved user ID.
const UserIDKey = "userID"

// Authenticate gates a route on a valid, unrevoked bearer token. All
// token rejections collapse into the same unauthorized response so
// callers learn nothing about why a token was refused.
func Authenticate(userService *service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}

		rawToken := strings.TrimPrefix(header, "Bearer ")

		userID, err := userService.Authenticate(c.UserContext(), rawToken)
		if errors.Is(err, apperrors.ErrInvalidToken) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}
		if err != nil {
			slog.Error("authentication gate failed", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "internal server error",
			})
		}

		c.Locals(UserIDKey, userID)

		return c.Next()
	}
}
