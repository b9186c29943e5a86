package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/afkar-io/afkar-api/internal/middleware"
	"github.com/afkar-io/afkar-api/internal/service"
	"github.com/afkar-io/afkar-api/internal/utils"
)

// LocalizationHandler serves locale bundles to clients.
type LocalizationHandler struct {
	service service.LocalizationService
	logger  zerolog.Logger
}

// NewLocalizationHandler constructs the handler.
func NewLocalizationHandler(service service.LocalizationService, logger zerolog.Logger) *LocalizationHandler {
	return &LocalizationHandler{
		service: service,
		logger:  logger.With().Str("component", "localization_handler").Logger(),
	}
}

// Register attaches the public localization endpoints.
func (h *LocalizationHandler) Register(router fiber.Router) {
	router.Get("/bundle", h.bundle)
	router.Get("/locale", h.locale)
}

// bundle returns the translation map and lookup values for the resolved
// locale. The locale comes from ?lang= or the Accept-Language header.
func (h *LocalizationHandler) bundle(c *fiber.Ctx) error {
	locale := middleware.GetLocale(c)
	domain := c.Query("domain")

	bundle, err := h.service.Bundle(c.UserContext(), locale, domain)
	if err != nil {
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "localization bundle retrieved", bundle)
}

func (h *LocalizationHandler) locale(c *fiber.Ctx) error {
	resolved := h.service.ResolveLocale(middleware.GetLocale(c))
	return utils.SendSuccess(c, "locale resolved", resolved)
}
