package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/vk-smartminds/practice-platform/internal/models"
	"github.com/vk-smartminds/practice-platform/internal/utils"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "token"

// ErrNoToken is returned when a request carries neither cookie nor bearer token.
var ErrNoToken = errors.New("not authorized, no token provided")

// SessionResolver turns a raw session token into the account it belongs to.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (models.Account, error)
}

// Session authenticates the request from the session cookie, falling back to an
// Authorization bearer header, and stores the account in the request locals.
func Session(resolver SessionResolver, logger zerolog.Logger) fiber.Handler {
	log := logger.With().Str("component", "session_middleware").Logger()

	return func(c *fiber.Ctx) error {
		token := SessionToken(c)
		if token == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, ErrNoToken.Error())
		}

		account, err := resolver.ResolveSession(c.UserContext(), token)
		if err != nil {
			log.Debug().Err(err).Str("correlation_id", GetCorrelationID(c)).Msg("session rejected")
			return utils.SendError(c, fiber.StatusUnauthorized, "not authorized, token failed")
		}

		c.Locals("user_id", account.ID)
		c.Locals("user_role", account.Role)
		c.Locals("account", account)
		if account.ClassID != nil {
			c.Locals("class_id", *account.ClassID)
		}

		return c.Next()
	}
}

// SessionToken extracts the raw token from the cookie or bearer header.
func SessionToken(c *fiber.Ctx) string {
	if cookie := strings.TrimSpace(c.Cookies(SessionCookieName)); cookie != "" {
		return cookie
	}

	authorization := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	const bearer = "bearer "
	if len(authorization) > len(bearer) && strings.EqualFold(authorization[:len(bearer)], bearer) {
		return strings.TrimSpace(authorization[len(bearer):])
	}
	return ""
}

// AccountFromContext returns the account resolved by Session.
func AccountFromContext(c *fiber.Ctx) (models.Account, bool) {
	account, ok := c.Locals("account").(models.Account)
	return account, ok
}
