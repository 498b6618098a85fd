package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sam7695/secure-asset-management/internal/auth/service"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler, userService *service.UserService) {
	auth := app.Group("/auth")
	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)
	auth.Post("/logout", Authenticate(userService), h.Logout)
}
