package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/afkar-io/afkar-api/internal/models"
	"github.com/afkar-io/afkar-api/internal/service"
	"github.com/afkar-io/afkar-api/internal/utils"
)

const seedTokenHeader = "X-Seed-Token"

// SeedHandler exposes the token-gated seeding endpoints used by operators to
// load reference data and fixture accounts.
type SeedHandler struct {
	service service.SeedService
	logger  zerolog.Logger
}

// NewSeedHandler constructs the handler.
func NewSeedHandler(service service.SeedService, logger zerolog.Logger) *SeedHandler {
	return &SeedHandler{
		service: service,
		logger:  logger.With().Str("component", "seed_handler").Logger(),
	}
}

// Register attaches the seeding endpoints.
func (h *SeedHandler) Register(router fiber.Router) {
	router.Post("/translations", h.translations)
	router.Post("/values", h.values)
	router.Post("/accounts", h.accounts)
}

func (h *SeedHandler) translations(c *fiber.Ctx) error {
	var payload []models.Translation
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	affected, err := h.service.SeedTranslations(c.UserContext(), c.Get(seedTokenHeader), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "translations seeded", fiber.Map{"affected": affected})
}

func (h *SeedHandler) values(c *fiber.Ctx) error {
	var payload []models.ListOfValue
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	affected, err := h.service.SeedValues(c.UserContext(), c.Get(seedTokenHeader), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "lookup values seeded", fiber.Map{"affected": affected})
}

func (h *SeedHandler) accounts(c *fiber.Ctx) error {
	var payload []service.SeedAccount
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	created, err := h.service.SeedAccounts(c.UserContext(), c.Get(seedTokenHeader), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "accounts seeded", fiber.Map{"created": created})
}

func (h *SeedHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrSeedDisabled):
		return utils.SendError(c, fiber.StatusNotFound, "seeding is disabled")
	case errors.Is(err, service.ErrSeedUnauthorized):
		return utils.SendError(c, fiber.StatusUnauthorized, "invalid seed token")
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
