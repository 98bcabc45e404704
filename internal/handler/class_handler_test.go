package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/vk-smartminds/practice-platform/internal/dto"
	"github.com/vk-smartminds/practice-platform/internal/handler"
	"github.com/vk-smartminds/practice-platform/internal/models"
	"github.com/vk-smartminds/practice-platform/internal/service"
)

type mockClassService struct {
	class     models.Class
	err       error
	lastActor service.ActivityActor
	lastID    uint
}

func (m *mockClassService) List(context.Context) ([]models.Class, error) {
	return []models.Class{m.class}, m.err
}

func (m *mockClassService) Get(_ context.Context, id uint) (models.Class, error) {
	m.lastID = id
	return m.class, m.err
}

func (m *mockClassService) Create(_ context.Context, req dto.ClassCreateRequest, actor service.ActivityActor) (models.Class, error) {
	m.lastActor = actor
	if m.err != nil {
		return models.Class{}, m.err
	}
	return models.Class{ID: 1, Name: req.Name}, nil
}

func (m *mockClassService) Update(_ context.Context, id uint, _ dto.ClassUpdateRequest, actor service.ActivityActor) (models.Class, error) {
	m.lastID = id
	m.lastActor = actor
	return m.class, m.err
}

func (m *mockClassService) Delete(_ context.Context, id uint, actor service.ActivityActor) error {
	m.lastID = id
	m.lastActor = actor
	return m.err
}

func newClassApp(svc service.ClassService) *fiber.App {
	app := fiber.New()
	admin := models.AdminAccount(models.Admin{ID: 77, Name: "Root"})
	handler.NewClassHandler(svc, testLogger()).Register(app.Group("/api/admin/classes", asAccount(admin)))
	return app
}

func TestClassHandler_CreateRecordsActor(t *testing.T) {
	svc := &mockClassService{}
	app := newClassApp(svc)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/admin/classes", `{"name":"10"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.Equal(t, uint(77), svc.lastActor.ID)
	require.Equal(t, models.RoleAdmin, svc.lastActor.Role)

	var class models.Class
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, resp).Data, &class))
	require.Equal(t, "10", class.Name)
}

func TestClassHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"duplicate", service.ErrDuplicate, fiber.StatusBadRequest},
		{"not found", service.ErrClassNotFound, fiber.StatusNotFound},
		{"unexpected", errors.New("connection reset"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newClassApp(&mockClassService{err: tc.err})

			resp, err := app.Test(jsonRequest(http.MethodPut, "/api/admin/classes/4", `{"name":"11"}`))
			require.NoError(t, err)
			require.Equal(t, tc.status, resp.StatusCode)

			body := decodeEnvelope(t, resp)
			require.False(t, body.Success)
			if tc.status == fiber.StatusInternalServerError {
				require.Equal(t, "failed to update class", body.Message)
			}
		})
	}
}

func TestClassHandler_RejectsInvalidIdentifier(t *testing.T) {
	svc := &mockClassService{}
	app := newClassApp(svc)

	for _, target := range []string{"/api/admin/classes/abc", "/api/admin/classes/0"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodDelete, target, nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	}
	require.Zero(t, svc.lastID)
}
