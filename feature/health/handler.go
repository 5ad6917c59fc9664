package health

import (
	"media-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for health checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the health route.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/api/health", h.HandleHealth)
}

// HandleHealth reports service health.
// @Summary Health Check
// @Description Checks the database, schema drift, sync map counts and the report archive.
// @Tags health
// @Produce json
// @Success 200 {object} Report "Healthy"
// @Failure 503 {object} Report "Degraded"
// @Router /api/health [get]
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	report := h.service.Check(c.UserContext())
	if report.Status != StatusOK {
		logger.WithRayID(h.service.logger, c).Warn("Health check degraded", zap.Strings("errors", report.Errors))
		return c.Status(fiber.StatusServiceUnavailable).JSON(report)
	}
	return c.JSON(report)
}
