package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/vk-smartminds/practice-platform/internal/models"
)

type stubResolver struct {
	accounts map[string]models.Account
	calls    int
}

func (s *stubResolver) ResolveSession(_ context.Context, token string) (models.Account, error) {
	s.calls++
	account, ok := s.accounts[token]
	if !ok {
		return models.Account{}, errors.New("unknown token")
	}
	return account, nil
}

func newSessionApp(resolver SessionResolver) *fiber.App {
	app := fiber.New()
	app.Use(Session(resolver, zerolog.Nop()))
	app.Get("/me", func(c *fiber.Ctx) error {
		account, ok := AccountFromContext(c)
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.JSON(fiber.Map{
			"id":       c.Locals("user_id"),
			"role":     c.Locals("user_role"),
			"class_id": c.Locals("class_id"),
			"name":     account.Name,
		})
	})
	return app
}

func TestSessionRejectsMissingToken(t *testing.T) {
	resolver := &stubResolver{}
	app := newSessionApp(resolver)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/me", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	require.Zero(t, resolver.calls)
}

func TestSessionResolvesCookie(t *testing.T) {
	student := models.StudentAccount(models.Student{ID: 4, Name: "Asha", ClassID: 10})
	app := newSessionApp(&stubResolver{accounts: map[string]models.Account{"good": student}})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "good"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSessionFallsBackToBearerHeader(t *testing.T) {
	admin := models.AdminAccount(models.Admin{ID: 1, Name: "Root"})
	app := newSessionApp(&stubResolver{accounts: map[string]models.Account{"admin-token": admin}})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSessionRejectsUnknownToken(t *testing.T) {
	app := newSessionApp(&stubResolver{})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "forged"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
