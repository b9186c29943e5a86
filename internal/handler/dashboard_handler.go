package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/afkar-io/afkar-api/internal/service"
	"github.com/afkar-io/afkar-api/internal/utils"
)

// DashboardHandler serves the aggregated management overview.
type DashboardHandler struct {
	service service.DashboardService
	logger  zerolog.Logger
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service service.DashboardService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  logger.With().Str("component", "dashboard_handler").Logger(),
	}
}

// Register attaches dashboard endpoints. Callers gate these behind the
// management role.
func (h *DashboardHandler) Register(router fiber.Router) {
	router.Get("/overview", h.overview)
	router.Post("/refresh", h.refresh)
}

func (h *DashboardHandler) overview(c *fiber.Ctx) error {
	overview, err := h.service.Overview(c.UserContext())
	if err != nil {
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "dashboard overview retrieved", overview)
}

// refresh drops the cached overview and rebuilds it in one round trip.
func (h *DashboardHandler) refresh(c *fiber.Ctx) error {
	h.service.Invalidate(c.UserContext())

	overview, err := h.service.Overview(c.UserContext())
	if err != nil {
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "dashboard refreshed", overview)
}
