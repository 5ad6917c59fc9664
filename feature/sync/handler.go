package sync

import (
	"errors"
	"net/url"

	"media-sync/core/logger"
	"media-sync/core/storage"
	"media-sync/core/syncmap"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for sync runs.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/api/sync")
	group.Post("/run", h.HandleRun)
	group.Get("/map", h.HandleListMap)
	group.Delete("/map/:key", h.HandleDeleteMapEntry)
	group.Get("/history", h.HandleHistory)
	group.Get("/reports", h.HandleListReports)
	group.Get("/reports/:id", h.HandleGetReport)
}

// HandleRun triggers a reconciliation run.
// @Summary Run Sync
// @Description Reconciles the watchlist against the catalogs now and returns the run report.
// @Tags sync
// @Produce json
// @Success 200 {object} reconcile.Outcome "Run Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/sync/run [post]
func (h *Handler) HandleRun(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Manual sync triggered")

	outcome, err := h.service.Run(c.UserContext())
	if err != nil {
		l.Error("Manual sync failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(outcome)
}

// HandleListMap lists the sync map.
// @Summary List Sync Map
// @Description Lists persisted watchlist-to-catalog mappings with status counts.
// @Tags sync
// @Produce json
// @Param media_type query string false "movie or show"
// @Param status query string false "requested or fulfilled"
// @Success 200 {object} MapListing "Sync Map"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/sync/map [get]
func (h *Handler) HandleListMap(c *fiber.Ctx) error {
	listing, err := h.service.Map(c.UserContext(), c.Query("media_type"), c.Query("status"))
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Sync map listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(listing)
}

// HandleDeleteMapEntry forgets one mapping.
// @Summary Delete Sync Map Entry
// @Description Removes a mapping so the next run resolves the title again.
// @Tags sync
// @Param key path string true "Source Key"
// @Success 204 "Deleted"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/sync/map/{key} [delete]
func (h *Handler) HandleDeleteMapEntry(c *fiber.Ctx) error {
	// Source keys often contain slashes and arrive percent-encoded.
	key, err := url.PathUnescape(c.Params("key"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid key",
		})
	}
	err = h.service.Forget(c.UserContext(), key)
	switch {
	case errors.Is(err, syncmap.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "entry not found",
		})
	case err != nil:
		logger.WithRayID(h.service.logger, c).Error("Sync map delete failed", zap.String("source_key", key), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleHistory lists recent runs.
// @Summary Sync History
// @Description Lists the most recent sync jobs, newest first.
// @Tags sync
// @Produce json
// @Param limit query int false "Maximum rows (default 50)"
// @Success 200 {array} history.JobHistory "Job History"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/sync/history [get]
func (h *Handler) HandleHistory(c *fiber.Ctx) error {
	jobs, err := h.service.History(c.UserContext(), c.QueryInt("limit", 50))
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Sync history listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(jobs)
}

// HandleListReports lists archived reports.
// @Summary List Run Reports
// @Description Lists archived run reports, newest first.
// @Tags sync
// @Produce json
// @Param limit query int false "Maximum reports"
// @Success 200 {array} storage.ReportInfo "Reports"
// @Failure 404 {object} map[string]string "Archive Disabled"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/sync/reports [get]
func (h *Handler) HandleListReports(c *fiber.Ctx) error {
	reports, err := h.service.Reports(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		return h.reportError(c, err)
	}
	return c.JSON(reports)
}

// HandleGetReport returns one archived report.
// @Summary Get Run Report
// @Description Returns the archived report of one run.
// @Tags sync
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} reconcile.Outcome "Run Report"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/sync/reports/{id} [get]
func (h *Handler) HandleGetReport(c *fiber.Ctx) error {
	outcome, err := h.service.Report(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.reportError(c, err)
	}
	return c.JSON(outcome)
}

func (h *Handler) reportError(c *fiber.Ctx, err error) error {
	if errors.Is(err, ErrArchiveDisabled) || errors.Is(err, storage.ErrReportNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	logger.WithRayID(h.service.logger, c).Error("Report archive request failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}
