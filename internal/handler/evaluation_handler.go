package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/afkar-io/afkar-api/internal/dto"
	"github.com/afkar-io/afkar-api/internal/service"
	"github.com/afkar-io/afkar-api/internal/utils"
)

// EvaluationHandler wires evaluator review HTTP routes.
type EvaluationHandler struct {
	service service.EvaluationService
	logger  zerolog.Logger
}

// NewEvaluationHandler constructs the handler.
func NewEvaluationHandler(service service.EvaluationService, logger zerolog.Logger) *EvaluationHandler {
	return &EvaluationHandler{
		service: service,
		logger:  logger.With().Str("component", "evaluation_handler").Logger(),
	}
}

// Register attaches evaluator endpoints. Callers gate these behind the
// evaluator role.
func (h *EvaluationHandler) Register(router fiber.Router) {
	router.Get("/mine", h.listMine)
	router.Put("/ideas/:id/draft", h.saveDraft)
	router.Post("/ideas/:id/submit", h.submit)
	router.Get("/ideas/:id/summary", h.summary)
}

// RegisterManagement attaches assignment endpoints reserved for management.
func (h *EvaluationHandler) RegisterManagement(router fiber.Router) {
	router.Post("/ideas/:id/assignments", h.assign)
}

type assignRequest struct {
	EvaluatorID    uint   `json:"evaluator_id" validate:"required"`
	EvaluationType string `json:"evaluation_type"`
}

func (h *EvaluationHandler) assign(c *fiber.Ctx) error {
	ideaID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload assignRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if payload.EvaluatorID == 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "evaluator_id is required")
	}

	if err := h.service.Assign(c.UserContext(), ideaID, payload.EvaluatorID, payload.EvaluationType); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "evaluator assigned", fiber.Map{
		"idea_id":      ideaID,
		"evaluator_id": payload.EvaluatorID,
	})
}

func (h *EvaluationHandler) saveDraft(c *fiber.Ctx) error {
	ideaID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.EvaluationSubmitRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	evaluation, err := h.service.SaveDraft(c.UserContext(), ideaID, userIDFromContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "evaluation draft saved", evaluation)
}

func (h *EvaluationHandler) submit(c *fiber.Ctx) error {
	ideaID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.EvaluationSubmitRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	evaluation, err := h.service.Submit(c.UserContext(), ideaID, userIDFromContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "evaluation submitted", evaluation)
}

func (h *EvaluationHandler) listMine(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	evaluations, err := h.service.ListMine(c.UserContext(), userID)
	if err != nil {
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "evaluations retrieved", evaluations)
}

func (h *EvaluationHandler) summary(c *fiber.Ctx) error {
	ideaID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	summary, err := h.service.Summary(c.UserContext(), ideaID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "evaluation summary retrieved", summary)
}

func (h *EvaluationHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrIdeaNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "idea not found")
	case errors.Is(err, service.ErrNotAssigned):
		return utils.SendError(c, fiber.StatusForbidden, "no assignment for this idea")
	case errors.Is(err, service.ErrEvaluationCompleted):
		return utils.SendError(c, fiber.StatusConflict, "evaluation already completed")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		return h.internalError(c, err)
	}
}

func (h *EvaluationHandler) internalError(c *fiber.Ctx, err error) error {
	h.logger.Error().Err(err).Msg("internal server error")
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}
