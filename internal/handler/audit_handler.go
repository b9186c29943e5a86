package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/afkar-io/afkar-api/internal/dto"
	"github.com/afkar-io/afkar-api/internal/service"
	"github.com/afkar-io/afkar-api/internal/utils"
)

// AuditHandler exposes the idea action trail to management.
type AuditHandler struct {
	service service.AuditService
	logger  zerolog.Logger
}

// NewAuditHandler constructs the handler.
func NewAuditHandler(service service.AuditService, logger zerolog.Logger) *AuditHandler {
	return &AuditHandler{
		service: service,
		logger:  logger.With().Str("component", "audit_handler").Logger(),
	}
}

// Register attaches audit endpoints. Callers gate these behind the management
// role.
func (h *AuditHandler) Register(router fiber.Router) {
	router.Get("/", h.list)
}

func (h *AuditHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page_size")
	}
	if pageSize <= 0 || pageSize > 200 {
		pageSize = 50
	}

	ideaID, err := parseQueryInt(c, "idea_id")
	if err != nil || ideaID < 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid idea_id")
	}
	actorID, err := parseQueryInt(c, "actor_id")
	if err != nil || actorID < 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid actor_id")
	}

	request := dto.ActionLogListRequest{
		Page:     page,
		PageSize: pageSize,
		IdeaID:   uint(ideaID),
		ActorID:  uint(actorID),
		Action:   strings.TrimSpace(c.Query("action")),
	}

	entries, err := h.service.List(c.UserContext(), request)
	if err != nil {
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.OK(c, entries.Items, "audit trail retrieved", entries.Pagination)
}
