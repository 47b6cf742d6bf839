package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/safemm/safemm-backend/internal/dto"
	"github.com/safemm/safemm-backend/internal/services"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Submit accepts an anonymous public report. Validation failures come back
// with the specific message; the report lands in the moderation queue.
func (h *ReportHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	report, err := h.reportService.Submit(&req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"error":   false,
		"message": "Report submitted. Thank you for helping protect others.",
		"report":  report,
	})
}
