package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	authhandler "github.com/sam7695/secure-asset-management/internal/auth/handler"
	apperrors "github.com/sam7695/secure-asset-management/internal/errors"
	"github.com/sam7695/secure-asset-management/internal/financial/dto"
	"github.com/sam7695/secure-asset-management/internal/financial/service"
)

type FinancialHandler struct {
	financialService *service.FinancialService
}

func NewFinancialHandler(financialService *service.FinancialService) *FinancialHandler {
	return &FinancialHandler{financialService: financialService}
}

func (h *FinancialHandler) Create(c *fiber.Ctx) error {
	userID, _ := c.Locals(authhandler.UserIDKey).(string)

	var input dto.FinancialInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if err := h.financialService.Create(c.UserContext(), userID, input.Data); err != nil {
		return respondError(c, userID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "financial data created successfully",
	})
}

func (h *FinancialHandler) Update(c *fiber.Ctx) error {
	userID, _ := c.Locals(authhandler.UserIDKey).(string)

	var input dto.FinancialInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if err := h.financialService.Update(c.UserContext(), userID, input.Data); err != nil {
		return respondError(c, userID, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "financial data updated successfully",
	})
}

func (h *FinancialHandler) Read(c *fiber.Ctx) error {
	userID, _ := c.Locals(authhandler.UserIDKey).(string)

	payload, err := h.financialService.Read(c.UserContext(), userID)
	if err != nil {
		return respondError(c, userID, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.FinancialOutput{FinancialData: payload})
}

// respondError maps workflow errors to caller-facing responses. Crypto
// and upstream failures stay opaque: the detail is logged, never leaked.
func respondError(c *fiber.Ctx, userID string, err error) error {
	switch {
	case errors.Is(err, apperrors.ErrInvalidPayload):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "financial data must include account and balance",
		})
	case errors.Is(err, apperrors.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "financial data already exists",
		})
	case errors.Is(err, apperrors.ErrNotFound), errors.Is(err, apperrors.ErrKeyPairNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "financial data not found",
		})
	case errors.Is(err, apperrors.ErrPayloadTooLarge):
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
			"error": "financial data is too large",
		})
	default:
		slog.Error("financial data operation failed", "userId", userID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}
}
