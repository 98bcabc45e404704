package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/vk-smartminds/practice-platform/internal/service"
	"github.com/vk-smartminds/practice-platform/internal/utils"
)

// EnrollmentHandler exposes signup analytics to admins.
type EnrollmentHandler struct {
	service service.EnrollmentService
	logger  zerolog.Logger
}

// NewEnrollmentHandler constructs the handler.
func NewEnrollmentHandler(service service.EnrollmentService, logger zerolog.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		service: service,
		logger:  logger.With().Str("component", "enrollment_handler").Logger(),
	}
}

// Register attaches the stats routes under the admin students group.
func (h *EnrollmentHandler) Register(router fiber.Router) {
	router.Get("/stats", h.stats)
	router.Get("/stats/pincode", h.byPincode)
}

func (h *EnrollmentHandler) stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(requestContext(c), c.Query("timeframe"))
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to compute enrollment stats")
	}
	return utils.SendSuccess(c, "enrollment stats", stats)
}

func (h *EnrollmentHandler) byPincode(c *fiber.Ctx) error {
	response, err := h.service.StudentsByPincode(requestContext(c), c.Query("pincode"), c.Query("timeframe"))
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to list students by pincode")
	}
	return utils.SendSuccess(c, "students by pincode", response)
}
