package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/safemm/safemm-backend/internal/dto"
	"github.com/safemm/safemm-backend/internal/normalize"
	"github.com/safemm/safemm-backend/internal/services"
)

type LookupHandler struct {
	lookupService *services.LookupService
}

func NewLookupHandler(lookupService *services.LookupService) *LookupHandler {
	return &LookupHandler{lookupService: lookupService}
}

// Check answers the public "is this dangerous?" query.
func (h *LookupHandler) Check(c *fiber.Ctx) error {
	entityType := c.Query("type", normalize.TypeAuto)
	value := c.Query("value", "")

	view, err := h.lookupService.Lookup(entityType, value)
	if err != nil {
		if errors.Is(err, services.ErrInvalidLookup) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to check entity",
		})
	}

	return c.JSON(fiber.Map{"error": false, "result": view})
}

func (h *LookupHandler) ListAlerts(c *fiber.Ctx) error {
	alerts, err := h.lookupService.ActiveAlerts(c.QueryInt("limit", 10))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load alerts",
		})
	}
	return c.JSON(fiber.Map{"error": false, "alerts": alerts})
}

func (h *LookupHandler) ListConfirmed(c *fiber.Ctx) error {
	rows, err := h.lookupService.ConfirmedEntities(c.QueryInt("limit", 200))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load confirmed scam records",
		})
	}
	return c.JSON(fiber.Map{"error": false, "entities": rows})
}

// ValidatePhone is the live phone-format hint next to the lookup box.
func (h *LookupHandler) ValidatePhone(c *fiber.Ctx) error {
	info := normalize.Inspect(c.Query("value", ""))
	return c.JSON(fiber.Map{"error": false, "phone": info})
}
