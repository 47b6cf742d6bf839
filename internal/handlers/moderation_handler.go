package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/safemm/safemm-backend/internal/dto"
	"github.com/safemm/safemm-backend/internal/models"
	"github.com/safemm/safemm-backend/internal/services"
)

type ModerationHandler struct {
	moderationService *services.ModerationService
	entityService     *services.EntityService
}

func NewModerationHandler(moderationService *services.ModerationService, entityService *services.EntityService) *ModerationHandler {
	return &ModerationHandler{moderationService: moderationService, entityService: entityService}
}

func (h *ModerationHandler) ListReports(c *fiber.Ctx) error {
	status := c.Query("status", models.ReportStatusPending)
	limit := c.QueryInt("limit", 200)
	offset := c.QueryInt("offset", 0)

	reports, total, err := h.moderationService.ListReports(status, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch reports",
		})
	}

	return c.JSON(fiber.Map{
		"error":   false,
		"reports": reports,
		"total":   total,
	})
}

func (h *ModerationHandler) Approve(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid report ID",
		})
	}

	report, err := h.moderationService.Approve(id)
	if err != nil {
		return moderationError(c, err)
	}
	return c.JSON(fiber.Map{"error": false, "report": report})
}

func (h *ModerationHandler) Reject(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid report ID",
		})
	}

	report, err := h.moderationService.Reject(id)
	if err != nil {
		return moderationError(c, err)
	}
	return c.JSON(fiber.Map{"error": false, "report": report})
}

// Backfill re-syncs approved reports into entities. Safe to trigger any
// number of times.
func (h *ModerationHandler) Backfill(c *fiber.Ctx) error {
	result, err := h.moderationService.Backfill(c.QueryInt("limit", 0))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Backfill failed",
		})
	}
	return c.JSON(fiber.Map{"error": false, "result": result})
}

func (h *ModerationHandler) DeactivateAlert(c *fiber.Ctx) error {
	key := c.Params("key")
	if err := h.entityService.DeactivateAlert(key); err != nil {
		if errors.Is(err, services.ErrAlertNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to deactivate alert",
		})
	}
	return c.JSON(fiber.Map{"error": false, "message": "Alert deactivated"})
}

func moderationError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrReportNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrAlreadyReviewed):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Moderation action failed",
		})
	}
}
