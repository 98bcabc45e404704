package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/vk-smartminds/practice-platform/internal/dto"
	"github.com/vk-smartminds/practice-platform/internal/models"
	"github.com/vk-smartminds/practice-platform/internal/repository"
)

// ChapterService manages chapters from the admin panel.
type ChapterService interface {
	List(ctx context.Context, subjectID *uint) ([]models.Chapter, error)
	Get(ctx context.Context, id uint) (models.Chapter, error)
	Create(ctx context.Context, req dto.ChapterCreateRequest, actor ActivityActor) (models.Chapter, error)
	Update(ctx context.Context, id uint, req dto.ChapterUpdateRequest, actor ActivityActor) (models.Chapter, error)
	// Delete removes the chapter, its topics and their questions.
	Delete(ctx context.Context, id uint, actor ActivityActor) (dto.CascadeResult, error)
}

type chapterService struct {
	repo      repository.ChapterRepository
	subjects  repository.SubjectRepository
	cascade   cascader
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
}

// NewChapterService constructs the chapter service.
func NewChapterService(repo repository.ChapterRepository, subjects repository.SubjectRepository, topics repository.TopicRepository, questions repository.QuestionRepository, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) ChapterService {
	return &chapterService{
		repo:      repo,
		subjects:  subjects,
		cascade:   cascader{chapters: repo, topics: topics, questions: questions},
		validator: validate,
		activity:  activity,
		logger:    logger.With().Str("component", "chapter_service").Logger(),
	}
}

func (s *chapterService) List(ctx context.Context, subjectID *uint) ([]models.Chapter, error) {
	return s.repo.List(ctx, repository.ChapterFilter{SubjectID: subjectID})
}

func (s *chapterService) Get(ctx context.Context, id uint) (models.Chapter, error) {
	chapter, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return models.Chapter{}, notFound(err, ErrChapterNotFound)
	}
	return chapter, nil
}

func (s *chapterService) Create(ctx context.Context, req dto.ChapterCreateRequest, actor ActivityActor) (models.Chapter, error) {
	req.Normalize()
	if err := s.validator.Struct(req); err != nil {
		return models.Chapter{}, err
	}

	subject, err := s.subjects.GetByID(ctx, req.SubjectID)
	if err != nil {
		return models.Chapter{}, missingParent(err, "subject", req.SubjectID)
	}
	if req.ClassID != 0 && req.ClassID != subject.ClassID {
		return models.Chapter{}, ErrClassMismatch
	}

	chapter := models.Chapter{
		ChapterName:   req.ChapterName,
		ChapterNumber: req.ChapterNumber,
		SubjectID:     subject.ID,
		ClassID:       subject.ClassID,
	}
	if err := s.repo.Create(ctx, &chapter); err != nil {
		return models.Chapter{}, err
	}

	record(ctx, s.activity, s.logger, ActivityEntry{
		Actor:      actor,
		Action:     "chapter.created",
		EntityType: "chapter",
		EntityID:   &chapter.ID,
		Metadata: map[string]interface{}{
			"chapter_name": chapter.ChapterName,
			"subject_id":   chapter.SubjectID,
			"class_id":     chapter.ClassID,
		},
	})
	return chapter, nil
}

func (s *chapterService) Update(ctx context.Context, id uint, req dto.ChapterUpdateRequest, actor ActivityActor) (models.Chapter, error) {
	req.Normalize()
	if err := s.validator.Struct(req); err != nil {
		return models.Chapter{}, err
	}

	chapter, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return models.Chapter{}, notFound(err, ErrChapterNotFound)
	}

	applyString(&chapter.ChapterName, req.ChapterName)
	if chapter.ChapterName == "" {
		return models.Chapter{}, ErrBlankField
	}
	if req.ChapterNumber != nil {
		chapter.ChapterNumber = *req.ChapterNumber
	}
	if req.SubjectID != nil && *req.SubjectID != chapter.SubjectID {
		subject, err := s.subjects.GetByID(ctx, *req.SubjectID)
		if err != nil {
			return models.Chapter{}, missingParent(err, "subject", *req.SubjectID)
		}
		chapter.SubjectID = subject.ID
		chapter.ClassID = subject.ClassID
	}

	if err := s.repo.Save(ctx, &chapter); err != nil {
		return models.Chapter{}, err
	}

	record(ctx, s.activity, s.logger, ActivityEntry{
		Actor:      actor,
		Action:     "chapter.updated",
		EntityType: "chapter",
		EntityID:   &chapter.ID,
		Metadata: map[string]interface{}{
			"chapter_name": chapter.ChapterName,
			"subject_id":   chapter.SubjectID,
		},
	})
	return chapter, nil
}

func (s *chapterService) Delete(ctx context.Context, id uint, actor ActivityActor) (dto.CascadeResult, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return dto.CascadeResult{}, notFound(err, ErrChapterNotFound)
	}

	result, err := s.cascade.deleteChapter(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Uint("chapter_id", id).
			Int64("deleted_topics", result.DeletedTopics).
			Int64("deleted_questions", result.DeletedQuestions).
			Msg("chapter cascade interrupted")
		return dto.CascadeResult{}, err
	}

	record(ctx, s.activity, s.logger, ActivityEntry{
		Actor:      actor,
		Action:     "chapter.deleted",
		EntityType: "chapter",
		EntityID:   &id,
		Metadata: map[string]interface{}{
			"deleted_topics":    result.DeletedTopics,
			"deleted_questions": result.DeletedQuestions,
		},
	})
	return result, nil
}
