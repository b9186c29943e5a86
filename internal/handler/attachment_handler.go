package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/afkar-io/afkar-api/internal/service"
	"github.com/afkar-io/afkar-api/internal/utils"
)

// AttachmentHandler wires idea attachment HTTP routes.
type AttachmentHandler struct {
	service service.AttachmentService
	logger  zerolog.Logger
}

// NewAttachmentHandler constructs the handler.
func NewAttachmentHandler(service service.AttachmentService, logger zerolog.Logger) *AttachmentHandler {
	return &AttachmentHandler{
		service: service,
		logger:  logger.With().Str("component", "attachment_handler").Logger(),
	}
}

// Register attaches attachment endpoints to the ideas router group.
func (h *AttachmentHandler) Register(router fiber.Router) {
	router.Get("/:id/attachments", h.list)
	router.Post("/:id/attachments", h.add)
	router.Delete("/:id/attachments/:attachmentID", h.remove)
}

func (h *AttachmentHandler) add(c *fiber.Ctx) error {
	ideaID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	userID := userIDFromContext(c)
	if userID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "file is required")
	}

	attachment, err := h.service.Add(c.UserContext(), ideaID, userID, file)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "attachment uploaded", attachment)
}

func (h *AttachmentHandler) list(c *fiber.Ctx) error {
	ideaID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	attachments, err := h.service.List(c.UserContext(), ideaID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "attachments retrieved", attachments)
}

func (h *AttachmentHandler) remove(c *fiber.Ctx) error {
	ideaID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	attachmentID, err := parseUintParam(c, "attachmentID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.UserContext(), attachmentID, ideaID, userIDFromContext(c)); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "attachment deleted", fiber.Map{"id": attachmentID})
}

func (h *AttachmentHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrIdeaNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "idea not found")
	case errors.Is(err, service.ErrAttachmentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "attachment not found")
	case errors.Is(err, service.ErrNotIdeaOwner):
		return utils.SendError(c, fiber.StatusForbidden, "idea belongs to another submitter")
	case errors.Is(err, service.ErrAttachmentTooLarge):
		return utils.SendError(c, fiber.StatusRequestEntityTooLarge, "attachment exceeds the size limit")
	case errors.Is(err, service.ErrAttachmentTypeNotAllowed):
		return utils.SendError(c, fiber.StatusUnsupportedMediaType, "attachment file type not allowed")
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
