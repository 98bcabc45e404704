package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/vk-smartminds/practice-platform/internal/dto"
	"github.com/vk-smartminds/practice-platform/internal/models"
	"github.com/vk-smartminds/practice-platform/internal/repository"
)

// ClassService manages classes from the admin panel.
type ClassService interface {
	List(ctx context.Context) ([]models.Class, error)
	Get(ctx context.Context, id uint) (models.Class, error)
	Create(ctx context.Context, req dto.ClassCreateRequest, actor ActivityActor) (models.Class, error)
	Update(ctx context.Context, id uint, req dto.ClassUpdateRequest, actor ActivityActor) (models.Class, error)
	// Delete removes only the class row. Subjects and students referencing it
	// are left in place.
	Delete(ctx context.Context, id uint, actor ActivityActor) error
}

type classService struct {
	repo      repository.ClassRepository
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
}

// NewClassService constructs the class service.
func NewClassService(repo repository.ClassRepository, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) ClassService {
	return &classService{
		repo:      repo,
		validator: validate,
		activity:  activity,
		logger:    logger.With().Str("component", "class_service").Logger(),
	}
}

func (s *classService) List(ctx context.Context) ([]models.Class, error) {
	return s.repo.List(ctx)
}

func (s *classService) Get(ctx context.Context, id uint) (models.Class, error) {
	class, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return models.Class{}, notFound(err, ErrClassNotFound)
	}
	return class, nil
}

func (s *classService) Create(ctx context.Context, req dto.ClassCreateRequest, actor ActivityActor) (models.Class, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return models.Class{}, err
	}

	class := models.Class{Name: req.Name}
	if err := s.repo.Create(ctx, &class); err != nil {
		if isDuplicateKey(err) {
			return models.Class{}, ErrDuplicate
		}
		return models.Class{}, err
	}

	record(ctx, s.activity, s.logger, ActivityEntry{
		Actor:      actor,
		Action:     "class.created",
		EntityType: "class",
		EntityID:   &class.ID,
		Metadata:   map[string]interface{}{"name": class.Name},
	})
	return class, nil
}

func (s *classService) Update(ctx context.Context, id uint, req dto.ClassUpdateRequest, actor ActivityActor) (models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Class{}, err
	}

	class, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return models.Class{}, notFound(err, ErrClassNotFound)
	}
	applyString(&class.Name, req.Name)
	if class.Name == "" {
		return models.Class{}, ErrBlankField
	}

	if err := s.repo.Save(ctx, &class); err != nil {
		if isDuplicateKey(err) {
			return models.Class{}, ErrDuplicate
		}
		return models.Class{}, err
	}

	record(ctx, s.activity, s.logger, ActivityEntry{
		Actor:      actor,
		Action:     "class.updated",
		EntityType: "class",
		EntityID:   &class.ID,
		Metadata:   map[string]interface{}{"name": class.Name},
	})
	return class, nil
}

func (s *classService) Delete(ctx context.Context, id uint, actor ActivityActor) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err, ErrClassNotFound)
	}
	record(ctx, s.activity, s.logger, ActivityEntry{
		Actor:      actor,
		Action:     "class.deleted",
		EntityType: "class",
		EntityID:   &id,
	})
	return nil
}
