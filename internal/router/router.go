package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vk-smartminds/practice-platform/internal/config"
	"github.com/vk-smartminds/practice-platform/internal/handler"
	"github.com/vk-smartminds/practice-platform/internal/middleware"
	"github.com/vk-smartminds/practice-platform/internal/observability"
	"github.com/vk-smartminds/practice-platform/internal/utils"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler           *handler.AuthHandler
	StudentContentHandler *handler.StudentContentHandler
	ClassHandler          *handler.ClassHandler
	SubjectHandler        *handler.SubjectHandler
	ChapterHandler        *handler.ChapterHandler
	TopicHandler          *handler.TopicHandler
	QuestionHandler       *handler.QuestionHandler
	AdminStudentHandler   *handler.AdminStudentHandler
	EnrollmentHandler     *handler.EnrollmentHandler
	ActivityHandler       *handler.ActivityHandler
	// SessionMiddleware authenticates the request and populates user locals.
	SessionMiddleware fiber.Handler
	// AuthLimiter throttles register and login. Nil disables throttling.
	AuthLimiter fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/", handler.Root())
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	session := deps.SessionMiddleware
	if session == nil {
		session = func(c *fiber.Ctx) error {
			return utils.SendError(c, fiber.StatusUnauthorized, middleware.ErrNoToken.Error())
		}
	}
	limiter := deps.AuthLimiter
	if limiter == nil {
		limiter = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AuthHandler != nil {
		auth := api.Group("/auth")
		deps.AuthHandler.Register(auth, limiter)
		deps.AuthHandler.RegisterProfile(auth, session, middleware.RequireStudent())
	}

	if deps.StudentContentHandler != nil {
		student := api.Group("/student")
		deps.StudentContentHandler.RegisterPublic(student)
		deps.StudentContentHandler.Register(student, session, middleware.RequireStudent())
	}

	admin := api.Group("/admin", session, middleware.RequireAdmin())
	if deps.ClassHandler != nil {
		deps.ClassHandler.Register(admin.Group("/classes"))
	}
	if deps.SubjectHandler != nil {
		deps.SubjectHandler.Register(admin.Group("/subjects"))
	}
	if deps.ChapterHandler != nil {
		deps.ChapterHandler.Register(admin.Group("/chapters"))
	}
	if deps.TopicHandler != nil {
		deps.TopicHandler.Register(admin.Group("/topics"))
	}
	if deps.QuestionHandler != nil {
		deps.QuestionHandler.Register(admin.Group("/questions"))
	}

	students := admin.Group("/students")
	if deps.EnrollmentHandler != nil {
		deps.EnrollmentHandler.Register(students)
	}
	if deps.AdminStudentHandler != nil {
		deps.AdminStudentHandler.Register(students)
	}

	if deps.ActivityHandler != nil {
		deps.ActivityHandler.Register(admin.Group("/activity"))
	}
}
