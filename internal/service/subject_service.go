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

// SubjectService manages subjects from the admin panel.
type SubjectService interface {
	List(ctx context.Context, classID *uint) ([]models.Subject, error)
	Get(ctx context.Context, id uint) (models.Subject, error)
	Create(ctx context.Context, req dto.SubjectCreateRequest, actor ActivityActor) (models.Subject, error)
	Update(ctx context.Context, id uint, req dto.SubjectUpdateRequest, actor ActivityActor) (models.Subject, error)
	// Delete removes only the subject row; its chapters stay behind.
	Delete(ctx context.Context, id uint, actor ActivityActor) error
}

type subjectService struct {
	repo      repository.SubjectRepository
	classes   repository.ClassRepository
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
}

// NewSubjectService constructs the subject service.
func NewSubjectService(repo repository.SubjectRepository, classes repository.ClassRepository, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) SubjectService {
	return &subjectService{
		repo:      repo,
		classes:   classes,
		validator: validate,
		activity:  activity,
		logger:    logger.With().Str("component", "subject_service").Logger(),
	}
}

func (s *subjectService) List(ctx context.Context, classID *uint) ([]models.Subject, error) {
	return s.repo.List(ctx, classID)
}

func (s *subjectService) Get(ctx context.Context, id uint) (models.Subject, error) {
	subject, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return models.Subject{}, notFound(err, ErrSubjectNotFound)
	}
	return subject, nil
}

func (s *subjectService) Create(ctx context.Context, req dto.SubjectCreateRequest, actor ActivityActor) (models.Subject, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return models.Subject{}, err
	}
	if _, err := s.classes.GetByID(ctx, req.ClassID); err != nil {
		return models.Subject{}, missingParent(err, "class", req.ClassID)
	}

	subject := models.Subject{Name: req.Name, ClassID: req.ClassID}
	if err := s.repo.Create(ctx, &subject); err != nil {
		if isDuplicateKey(err) {
			return models.Subject{}, ErrDuplicate
		}
		return models.Subject{}, err
	}

	record(ctx, s.activity, s.logger, ActivityEntry{
		Actor:      actor,
		Action:     "subject.created",
		EntityType: "subject",
		EntityID:   &subject.ID,
		Metadata:   map[string]interface{}{"name": subject.Name, "class_id": subject.ClassID},
	})
	return subject, nil
}

func (s *subjectService) Update(ctx context.Context, id uint, req dto.SubjectUpdateRequest, actor ActivityActor) (models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Subject{}, err
	}

	subject, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return models.Subject{}, notFound(err, ErrSubjectNotFound)
	}

	applyString(&subject.Name, req.Name)
	if subject.Name == "" {
		return models.Subject{}, ErrBlankField
	}
	if req.ClassID != nil && *req.ClassID != subject.ClassID {
		if _, err := s.classes.GetByID(ctx, *req.ClassID); err != nil {
			return models.Subject{}, missingParent(err, "class", *req.ClassID)
		}
		subject.ClassID = *req.ClassID
	}

	if err := s.repo.Save(ctx, &subject); err != nil {
		if isDuplicateKey(err) {
			return models.Subject{}, ErrDuplicate
		}
		return models.Subject{}, err
	}

	record(ctx, s.activity, s.logger, ActivityEntry{
		Actor:      actor,
		Action:     "subject.updated",
		EntityType: "subject",
		EntityID:   &subject.ID,
		Metadata:   map[string]interface{}{"name": subject.Name, "class_id": subject.ClassID},
	})
	return subject, nil
}

func (s *subjectService) Delete(ctx context.Context, id uint, actor ActivityActor) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err, ErrSubjectNotFound)
	}
	record(ctx, s.activity, s.logger, ActivityEntry{
		Actor:      actor,
		Action:     "subject.deleted",
		EntityType: "subject",
		EntityID:   &id,
	})
	return nil
}
