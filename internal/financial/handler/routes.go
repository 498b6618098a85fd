package handler

import (
	"github.com/gofiber/fiber/v2"

	authhandler "github.com/sam7695/secure-asset-management/internal/auth/handler"
	authservice "github.com/sam7695/secure-asset-management/internal/auth/service"
)

func RegisterRoutes(app *fiber.App, h *FinancialHandler, userService *authservice.UserService) {
	financial := app.Group("/financial", authhandler.Authenticate(userService))
	financial.Post("/create-financial-data", h.Create)
	financial.Put("/update-financial-data", h.Update)
	financial.Get("/financial-data", h.Read)
}
