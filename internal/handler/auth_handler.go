package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/vk-smartminds/practice-platform/internal/dto"
	"github.com/vk-smartminds/practice-platform/internal/middleware"
	"github.com/vk-smartminds/practice-platform/internal/service"
	"github.com/vk-smartminds/practice-platform/internal/utils"
)

// CookieOptions controls the session cookie attributes.
type CookieOptions struct {
	Secure bool
	MaxAge time.Duration
}

// AuthHandler exposes registration, login, logout and the student profile.
type AuthHandler struct {
	service service.AuthService
	cookie  CookieOptions
	logger  zerolog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(service service.AuthService, cookie CookieOptions, logger zerolog.Logger) *AuthHandler {
	if cookie.MaxAge <= 0 {
		cookie.MaxAge = 30 * 24 * time.Hour
	}
	return &AuthHandler{
		service: service,
		cookie:  cookie,
		logger:  logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register attaches the public auth routes. limit throttles register and login.
func (h *AuthHandler) Register(router fiber.Router, limit fiber.Handler) {
	router.Post("/register", limit, h.register)
	router.Post("/login", limit, h.login)
	router.Post("/logout", h.logout)
}

// RegisterProfile attaches the profile routes behind guards, which must
// resolve a student session.
func (h *AuthHandler) RegisterProfile(router fiber.Router, guards ...fiber.Handler) {
	router.Get("/profile", guarded(guards, h.profile)...)
	router.Put("/profile", guarded(guards, h.updateProfile)...)
}

func (h *AuthHandler) register(c *fiber.Ctx) error {
	var payload dto.RegisterRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.Register(requestContext(c), payload)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to register student")
	}

	h.setSessionCookie(c, result.Token)
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "registration successful", dto.NewAuthResponse(result.Account, ""))
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.Login(requestContext(c), payload)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to log in")
	}

	requestLogger(h.logger, c).Info().Uint("account_id", result.Account.ID).Str("role", result.Account.Role).Msg("login succeeded")
	h.setSessionCookie(c, result.Token)
	return utils.SendSuccess(c, "login successful", dto.NewAuthResponse(result.Account, result.Token))
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	return utils.SendSuccess(c, "logged out successfully", nil)
}

func (h *AuthHandler) profile(c *fiber.Ctx) error {
	student, err := h.service.Profile(requestContext(c), userIDFromContext(c))
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to load profile")
	}
	return utils.SendSuccess(c, "profile retrieved", student)
}

func (h *AuthHandler) updateProfile(c *fiber.Ctx) error {
	var payload dto.ProfileUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	student, err := h.service.UpdateProfile(requestContext(c), userIDFromContext(c), payload)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to update profile")
	}
	return utils.SendSuccess(c, "profile updated", student)
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cookie.MaxAge.Seconds()),
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}
