package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/vk-smartminds/practice-platform/internal/dto"
	"github.com/vk-smartminds/practice-platform/internal/service"
	"github.com/vk-smartminds/practice-platform/internal/utils"
)

// ChapterHandler exposes admin chapter management.
type ChapterHandler struct {
	service service.ChapterService
	logger  zerolog.Logger
}

// NewChapterHandler constructs the handler.
func NewChapterHandler(service service.ChapterService, logger zerolog.Logger) *ChapterHandler {
	return &ChapterHandler{
		service: service,
		logger:  logger.With().Str("component", "chapter_handler").Logger(),
	}
}

// Register attaches chapter routes to the router group.
func (h *ChapterHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/subject/:subjectId", h.listByParent)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *ChapterHandler) list(c *fiber.Ctx) error {
	subjectID, err := parseOptionalUintQuery(c, "subjectId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	chapters, err := h.service.List(requestContext(c), subjectID)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to list chapters")
	}
	return utils.SendSuccess(c, "chapters retrieved", chapters)
}

func (h *ChapterHandler) listByParent(c *fiber.Ctx) error {
	subjectID, err := parseUintParam(c, "subjectId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	chapters, err := h.service.List(requestContext(c), &subjectID)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to list chapters")
	}
	return utils.SendSuccess(c, "chapters retrieved", chapters)
}

func (h *ChapterHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	chapter, err := h.service.Get(requestContext(c), id)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to fetch chapter")
	}
	return utils.SendSuccess(c, "chapter retrieved", chapter)
}

func (h *ChapterHandler) create(c *fiber.Ctx) error {
	var payload dto.ChapterCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	chapter, err := h.service.Create(requestContext(c), payload, activityActorFromContext(c))
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to create chapter")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "chapter created", chapter)
}

func (h *ChapterHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.ChapterUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	chapter, err := h.service.Update(requestContext(c), id, payload, activityActorFromContext(c))
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to update chapter")
	}
	return utils.SendSuccess(c, "chapter updated", chapter)
}

func (h *ChapterHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := h.service.Delete(requestContext(c), id, activityActorFromContext(c))
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to delete chapter")
	}
	return utils.SendSuccess(c, "chapter and all its topics and questions removed", result)
}
