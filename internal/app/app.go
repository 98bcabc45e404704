// Package app assembles repositories, services, handlers and routes into a
// ready-to-serve fiber application.
package app

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/vk-smartminds/practice-platform/internal/config"
	"github.com/vk-smartminds/practice-platform/internal/handler"
	"github.com/vk-smartminds/practice-platform/internal/middleware"
	"github.com/vk-smartminds/practice-platform/internal/repository"
	"github.com/vk-smartminds/practice-platform/internal/router"
	"github.com/vk-smartminds/practice-platform/internal/service"
	"github.com/vk-smartminds/practice-platform/internal/utils"
)

// Options carries the infrastructure the application is built on. Redis is
// optional.
type Options struct {
	Config config.Config
	DB     *gorm.DB
	Redis  *redis.Client
	Logger zerolog.Logger
}

// Services exposes the service layer for callers outside HTTP, such as the
// operator CLI.
type Services struct {
	Auth           service.AuthService
	Activity       service.ActivityService
	Classes        service.ClassService
	Subjects       service.SubjectService
	Chapters       service.ChapterService
	Topics         service.TopicService
	Questions      service.QuestionService
	StudentContent service.StudentContentService
	AdminStudents  service.AdminStudentService
	Enrollment     service.EnrollmentService
}

// NewServices builds the service layer over db.
func NewServices(opts Options) Services {
	cfg := opts.Config
	logger := opts.Logger
	validate := validator.New(validator.WithRequiredStructEnabled())

	classRepo := repository.NewClassRepository(opts.DB)
	subjectRepo := repository.NewSubjectRepository(opts.DB)
	chapterRepo := repository.NewChapterRepository(opts.DB)
	topicRepo := repository.NewTopicRepository(opts.DB)
	questionRepo := repository.NewQuestionRepository(opts.DB)
	studentRepo := repository.NewStudentRepository(opts.DB)
	accountRepo := repository.NewAccountRepository(opts.DB)
	enrollmentRepo := repository.NewEnrollmentRepository(opts.DB)
	activityRepo := repository.NewActivityLogRepository(opts.DB)

	tokens := service.NewSessionTokens(cfg.JWTSecret, cfg.SessionTTL)
	activity := service.NewActivityService(activityRepo, logger)
	stats := service.NewStatsInvalidator(opts.Redis, logger)

	return Services{
		Auth:           service.NewAuthService(accountRepo, studentRepo, classRepo, tokens, stats, validate, logger),
		Activity:       activity,
		Classes:        service.NewClassService(classRepo, validate, activity, logger),
		Subjects:       service.NewSubjectService(subjectRepo, classRepo, validate, activity, logger),
		Chapters:       service.NewChapterService(chapterRepo, subjectRepo, topicRepo, questionRepo, validate, activity, logger),
		Topics:         service.NewTopicService(topicRepo, chapterRepo, questionRepo, validate, activity, logger),
		Questions:      service.NewQuestionService(questionRepo, topicRepo, validate, activity, logger),
		StudentContent: service.NewStudentContentService(classRepo, subjectRepo, chapterRepo, topicRepo, questionRepo, logger),
		AdminStudents:  service.NewAdminStudentService(studentRepo, classRepo, stats, validate, activity, logger),
		Enrollment:     service.NewEnrollmentService(enrollmentRepo, opts.Redis, cfg.AnalyticsTTL, logger),
	}
}

// New builds the fiber application with every route registered.
func New(opts Options) *fiber.App {
	cfg := opts.Config
	logger := opts.Logger
	services := NewServices(opts)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		ErrorHandler: errorHandler(logger),
	})

	middleware.Register(app, middleware.Config{
		Logger:      &logger,
		CORSOrigins: cfg.CORSOrigins,
		AccessLog:   cfg.IsDevelopment(),
	})

	var limiter fiber.Handler
	if cfg.AuthRateLimit > 0 {
		limiter = middleware.RateLimit("auth", cfg.AuthRateLimit, cfg.AuthRateInterval)
	}

	router.Register(app, cfg, router.Dependencies{
		AuthHandler:           handler.NewAuthHandler(services.Auth, handler.CookieOptions{Secure: cfg.CookieSecure, MaxAge: cfg.SessionTTL}, logger),
		StudentContentHandler: handler.NewStudentContentHandler(services.StudentContent, logger),
		ClassHandler:          handler.NewClassHandler(services.Classes, logger),
		SubjectHandler:        handler.NewSubjectHandler(services.Subjects, logger),
		ChapterHandler:        handler.NewChapterHandler(services.Chapters, logger),
		TopicHandler:          handler.NewTopicHandler(services.Topics, logger),
		QuestionHandler:       handler.NewQuestionHandler(services.Questions, logger),
		AdminStudentHandler:   handler.NewAdminStudentHandler(services.AdminStudents, logger),
		EnrollmentHandler:     handler.NewEnrollmentHandler(services.Enrollment, logger),
		ActivityHandler:       handler.NewActivityHandler(services.Activity, logger),
		SessionMiddleware:     middleware.Session(services.Auth, logger),
		AuthLimiter:           limiter,
	})

	return app
}

func errorHandler(logger zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return utils.SendError(c, fiberErr.Code, fiberErr.Message)
		}
		logger.Error().Err(err).Str("correlation_id", middleware.GetCorrelationID(c)).Msg("unhandled error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
