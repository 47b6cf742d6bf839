package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/safemm/safemm-backend/internal/database"
	"github.com/safemm/safemm-backend/internal/dto"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	status := "ok"
	code := fiber.StatusOK

	if err := database.Ping(); err != nil {
		dbStatus = "unreachable"
		status = "degraded"
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(dto.HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
	})
}
