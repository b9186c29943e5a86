package handler

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/afkar-io/afkar-api/internal/dto"
	"github.com/afkar-io/afkar-api/internal/repository"
	"github.com/afkar-io/afkar-api/internal/search"
	"github.com/afkar-io/afkar-api/internal/service"
	"github.com/afkar-io/afkar-api/internal/utils"
)

// IdeaHandler wires idea and draft lifecycle HTTP routes.
type IdeaHandler struct {
	service service.IdeaService
	logger  zerolog.Logger
}

// NewIdeaHandler constructs the handler.
func NewIdeaHandler(service service.IdeaService, logger zerolog.Logger) *IdeaHandler {
	return &IdeaHandler{
		service: service,
		logger:  logger.With().Str("component", "idea_handler").Logger(),
	}
}

// Register attaches idea endpoints to the router group.
func (h *IdeaHandler) Register(router fiber.Router) {
	router.Get("/", h.search)
	router.Post("/", h.createDraft)
	router.Get("/drafts", h.listDrafts)
	router.Get("/:id", h.get)
	router.Patch("/:id", h.updateDraft)
	router.Post("/:id/submit", h.submit)
	router.Delete("/:id", h.discard)
	router.Get("/:id/comments", h.listComments)
	router.Post("/:id/comments", h.addComment)
}

// search composes the filter set from query parameters. Every dimension is
// optional; an empty query returns the full active portfolio page by page.
func (h *IdeaHandler) search(c *fiber.Ctx) error {
	filters, err := filtersFromQuery(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page_size")
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	result, err := h.service.Search(c.UserContext(), filters, repository.IdeaPage{Page: page, PageSize: pageSize})
	if err != nil {
		return h.internalError(c, err)
	}

	return utils.OK(c, result.Items, "ideas retrieved", result.Pagination)
}

func (h *IdeaHandler) createDraft(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	var payload dto.IdeaCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	draft, err := h.service.CreateDraft(c.UserContext(), userID, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "draft created", draft)
}

func (h *IdeaHandler) listDrafts(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	drafts, err := h.service.ListDrafts(c.UserContext(), userID)
	if err != nil {
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "drafts retrieved", drafts)
}

func (h *IdeaHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	idea, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "idea retrieved", idea)
}

func (h *IdeaHandler) updateDraft(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.IdeaUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	idea, err := h.service.UpdateDraft(c.UserContext(), id, userIDFromContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "draft updated", idea)
}

func (h *IdeaHandler) submit(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	idea, err := h.service.Submit(c.UserContext(), id, userIDFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "idea submitted", idea)
}

func (h *IdeaHandler) discard(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Discard(c.UserContext(), id, userIDFromContext(c)); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "draft discarded", fiber.Map{"id": id})
}

func (h *IdeaHandler) listComments(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	comments, err := h.service.ListComments(c.UserContext(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "comments retrieved", comments)
}

func (h *IdeaHandler) addComment(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	userID := userIDFromContext(c)
	if userID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	var payload dto.CommentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	comment, err := h.service.AddComment(c.UserContext(), id, userID, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "comment added", comment)
}

func (h *IdeaHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrIdeaNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "idea not found")
	case errors.Is(err, service.ErrNotIdeaOwner):
		return utils.SendError(c, fiber.StatusForbidden, "idea belongs to another submitter")
	case errors.Is(err, service.ErrNotDraft):
		return utils.SendError(c, fiber.StatusConflict, "idea is not an editable draft")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		return h.internalError(c, err)
	}
}

func (h *IdeaHandler) internalError(c *fiber.Ctx, err error) error {
	h.logger.Error().Err(err).Msg("internal server error")
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}

func filtersFromQuery(c *fiber.Ctx) (search.Filters, error) {
	filters := search.Default()
	filters.Term = c.Query("q")
	filters.Statuses = splitAndTrim(c.Query("status"))
	filters.Categories = splitAndTrim(c.Query("category"))

	submitters, err := parseQueryUintList(c, "submitter")
	if err != nil {
		return search.Filters{}, errors.New("invalid submitter filter")
	}
	filters.SubmitterIDs = submitters

	evaluators, err := parseQueryUintList(c, "evaluator")
	if err != nil {
		return search.Filters{}, errors.New("invalid evaluator filter")
	}
	filters.EvaluatorIDs = evaluators

	if from := c.Query("date_from"); from != "" {
		parsed, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return search.Filters{}, errors.New("invalid date_from")
		}
		filters.DateFrom = &parsed
	}
	if to := c.Query("date_to"); to != "" {
		parsed, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return search.Filters{}, errors.New("invalid date_to")
		}
		filters.DateTo = &parsed
	}

	minScore, err := parseQueryFloat(c, "min_score", search.ScoreMin)
	if err != nil {
		return search.Filters{}, errors.New("invalid min_score")
	}
	maxScore, err := parseQueryFloat(c, "max_score", search.ScoreMax)
	if err != nil {
		return search.Filters{}, errors.New("invalid max_score")
	}
	filters.MinScore = clampScore(minScore)
	filters.MaxScore = clampScore(maxScore)

	if raw := c.Query("has_attachments"); raw != "" {
		value := raw == "true" || raw == "1"
		filters.HasAttachments = &value
	}
	if raw := c.Query("urgent"); raw != "" {
		value := raw == "true" || raw == "1"
		filters.IsUrgent = &value
	}

	return filters, nil
}

func clampScore(value float64) float64 {
	if value < search.ScoreMin {
		return search.ScoreMin
	}
	if value > search.ScoreMax {
		return search.ScoreMax
	}
	return value
}
