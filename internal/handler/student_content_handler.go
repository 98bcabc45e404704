package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/vk-smartminds/practice-platform/internal/middleware"
	"github.com/vk-smartminds/practice-platform/internal/service"
	"github.com/vk-smartminds/practice-platform/internal/utils"
)

// StudentContentHandler serves the curriculum to signed-in students.
type StudentContentHandler struct {
	service service.StudentContentService
	logger  zerolog.Logger
}

// NewStudentContentHandler constructs the handler.
func NewStudentContentHandler(service service.StudentContentService, logger zerolog.Logger) *StudentContentHandler {
	return &StudentContentHandler{
		service: service,
		logger:  logger.With().Str("component", "student_content_handler").Logger(),
	}
}

// RegisterPublic attaches the routes that need no session.
func (h *StudentContentHandler) RegisterPublic(router fiber.Router) {
	router.Get("/classes", h.listClasses)
}

// Register attaches the student-only routes behind guards, which must resolve
// a student session.
func (h *StudentContentHandler) Register(router fiber.Router, guards ...fiber.Handler) {
	router.Get("/class/:classId", guarded(guards, h.getClass)...)
	router.Get("/subjects", guarded(guards, h.listSubjects)...)
	router.Get("/chapters/:subjectId", guarded(guards, h.listChapters)...)
	router.Get("/chapter/:chapterId", guarded(guards, h.getChapter)...)
	router.Get("/topics/:chapterId", guarded(guards, h.listTopics)...)
	router.Get("/questions/:topicId", guarded(guards, h.listQuestionsByTopic)...)
	router.Get("/chapters/:chapterId/topics/:topicId/questions", guarded(guards, h.listQuestions)...)
}

func (h *StudentContentHandler) listClasses(c *fiber.Ctx) error {
	classes, err := h.service.ListClasses(requestContext(c))
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to list classes")
	}
	return utils.SendSuccess(c, "classes retrieved", classes)
}

func (h *StudentContentHandler) getClass(c *fiber.Ctx) error {
	classID, err := parseUintParam(c, "classId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	class, err := h.service.GetClass(requestContext(c), classID)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to fetch class")
	}
	return utils.SendSuccess(c, "class retrieved", class)
}

func (h *StudentContentHandler) listSubjects(c *fiber.Ctx) error {
	account, ok := middleware.AccountFromContext(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, middleware.ErrNoToken.Error())
	}

	subjects, err := h.service.ListSubjectsForClass(requestContext(c), account)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to list subjects")
	}
	return utils.SendSuccess(c, "subjects retrieved", subjects)
}

func (h *StudentContentHandler) listChapters(c *fiber.Ctx) error {
	account, ok := middleware.AccountFromContext(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, middleware.ErrNoToken.Error())
	}
	subjectID, err := parseUintParam(c, "subjectId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	chapters, err := h.service.ListChaptersForSubject(requestContext(c), account, subjectID)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to list chapters")
	}
	return utils.SendSuccess(c, "chapters retrieved", chapters)
}

func (h *StudentContentHandler) getChapter(c *fiber.Ctx) error {
	account, ok := middleware.AccountFromContext(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, middleware.ErrNoToken.Error())
	}
	chapterID, err := parseUintParam(c, "chapterId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	detail, err := h.service.GetChapter(requestContext(c), account, chapterID)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to fetch chapter")
	}
	return utils.SendSuccess(c, "chapter retrieved", detail)
}

func (h *StudentContentHandler) listTopics(c *fiber.Ctx) error {
	account, ok := middleware.AccountFromContext(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, middleware.ErrNoToken.Error())
	}
	chapterID, err := parseUintParam(c, "chapterId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	topics, err := h.service.ListTopicsForChapter(requestContext(c), account, chapterID)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to list topics")
	}
	return utils.SendSuccess(c, "topics retrieved", topics)
}

func (h *StudentContentHandler) listQuestions(c *fiber.Ctx) error {
	account, ok := middleware.AccountFromContext(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, middleware.ErrNoToken.Error())
	}
	chapterID, err := parseUintParam(c, "chapterId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	topicID, err := parseUintParam(c, "topicId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	questions, err := h.service.ListQuestionsForTopic(requestContext(c), account, chapterID, topicID)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to list questions")
	}
	return utils.SendSuccess(c, "questions retrieved", questions)
}

func (h *StudentContentHandler) listQuestionsByTopic(c *fiber.Ctx) error {
	account, ok := middleware.AccountFromContext(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, middleware.ErrNoToken.Error())
	}
	topicID, err := parseUintParam(c, "topicId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	questions, err := h.service.ListQuestionsByTopic(requestContext(c), account, topicID)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to list questions")
	}
	return utils.SendSuccess(c, "questions retrieved", questions)
}
