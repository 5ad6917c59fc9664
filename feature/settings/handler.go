package settings

import (
	"errors"

	"media-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for settings.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the settings routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	api := app.Group("/api")
	api.Get("/config", h.HandleGetConfig)
	api.Put("/config", h.HandlePutConfig)
	api.Post("/services/test", h.HandleTestService)
}

// HandleGetConfig returns the effective settings.
// @Summary Get Settings
// @Description Returns stored settings layered over environment defaults.
// @Tags settings
// @Produce json
// @Success 200 {object} appsettings.Snapshot "Settings"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/config [get]
func (h *Handler) HandleGetConfig(c *fiber.Ctx) error {
	snap, err := h.service.Get(c.UserContext())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Settings read failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(snap)
}

// HandlePutConfig stores new settings.
// @Summary Save Settings
// @Description Merges the request over the current settings and stores the result. The next run uses the new values.
// @Tags settings
// @Accept json
// @Produce json
// @Param settings body appsettings.Snapshot true "Settings"
// @Success 200 {object} map[string]string "Saved"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/config [put]
func (h *Handler) HandlePutConfig(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	snap, err := h.service.Get(c.UserContext())
	if err != nil {
		l.Error("Settings read failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if err := c.BodyParser(snap); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if err := h.service.Save(c.UserContext(), *snap); err != nil {
		if errors.Is(err, ErrInvalid) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		l.Error("Settings save failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	l.Info("Settings saved")
	return c.JSON(fiber.Map{
		"message": "Configuration saved",
	})
}

// HandleTestService probes a service connection.
// @Summary Test Service Connection
// @Description Probes radarr, sonarr or plex. Without url/api_key the stored settings are used.
// @Tags settings
// @Accept json
// @Produce json
// @Param request body TestRequest true "Service"
// @Success 200 {object} reconcile.ConnectionStatus "Probe Result"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/services/test [post]
func (h *Handler) HandleTestService(c *fiber.Ctx) error {
	var req TestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	status, err := h.service.Test(c.UserContext(), req)
	if err != nil {
		if errors.Is(err, ErrInvalid) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		logger.WithRayID(h.service.logger, c).Error("Service probe failed", zap.String("service", req.name()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(status)
}
