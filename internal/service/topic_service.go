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

// TopicService manages topics from the admin panel.
type TopicService interface {
	List(ctx context.Context, chapterID *uint) ([]models.Topic, error)
	Get(ctx context.Context, id uint) (models.Topic, error)
	Create(ctx context.Context, req dto.TopicCreateRequest, actor ActivityActor) (models.Topic, error)
	Update(ctx context.Context, id uint, req dto.TopicUpdateRequest, actor ActivityActor) (models.Topic, error)
	// Delete removes the topic and its questions.
	Delete(ctx context.Context, id uint, actor ActivityActor) (dto.CascadeResult, error)
}

type topicService struct {
	repo      repository.TopicRepository
	chapters  repository.ChapterRepository
	cascade   cascader
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
}

// NewTopicService constructs the topic service.
func NewTopicService(repo repository.TopicRepository, chapters repository.ChapterRepository, questions repository.QuestionRepository, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) TopicService {
	return &topicService{
		repo:      repo,
		chapters:  chapters,
		cascade:   cascader{chapters: chapters, topics: repo, questions: questions},
		validator: validate,
		activity:  activity,
		logger:    logger.With().Str("component", "topic_service").Logger(),
	}
}

func (s *topicService) List(ctx context.Context, chapterID *uint) ([]models.Topic, error) {
	return s.repo.List(ctx, chapterID)
}

func (s *topicService) Get(ctx context.Context, id uint) (models.Topic, error) {
	topic, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return models.Topic{}, notFound(err, ErrTopicNotFound)
	}
	return topic, nil
}

func (s *topicService) Create(ctx context.Context, req dto.TopicCreateRequest, actor ActivityActor) (models.Topic, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := s.validator.Struct(req); err != nil {
		return models.Topic{}, err
	}
	if _, err := s.chapters.GetByID(ctx, req.ChapterID); err != nil {
		return models.Topic{}, missingParent(err, "chapter", req.ChapterID)
	}

	topic := models.Topic{Title: req.Title, TopicNumber: req.TopicNumber, ChapterID: req.ChapterID}
	if err := s.repo.Create(ctx, &topic); err != nil {
		return models.Topic{}, err
	}

	record(ctx, s.activity, s.logger, ActivityEntry{
		Actor:      actor,
		Action:     "topic.created",
		EntityType: "topic",
		EntityID:   &topic.ID,
		Metadata:   map[string]interface{}{"title": topic.Title, "chapter_id": topic.ChapterID},
	})
	return topic, nil
}

func (s *topicService) Update(ctx context.Context, id uint, req dto.TopicUpdateRequest, actor ActivityActor) (models.Topic, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Topic{}, err
	}

	topic, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return models.Topic{}, notFound(err, ErrTopicNotFound)
	}

	applyString(&topic.Title, req.Title)
	if topic.Title == "" {
		return models.Topic{}, ErrBlankField
	}
	if req.TopicNumber != nil {
		topic.TopicNumber = *req.TopicNumber
	}
	if req.ChapterID != nil && *req.ChapterID != topic.ChapterID {
		if _, err := s.chapters.GetByID(ctx, *req.ChapterID); err != nil {
			return models.Topic{}, missingParent(err, "chapter", *req.ChapterID)
		}
		topic.ChapterID = *req.ChapterID
	}

	if err := s.repo.Save(ctx, &topic); err != nil {
		return models.Topic{}, err
	}

	record(ctx, s.activity, s.logger, ActivityEntry{
		Actor:      actor,
		Action:     "topic.updated",
		EntityType: "topic",
		EntityID:   &topic.ID,
		Metadata:   map[string]interface{}{"title": topic.Title, "chapter_id": topic.ChapterID},
	})
	return topic, nil
}

func (s *topicService) Delete(ctx context.Context, id uint, actor ActivityActor) (dto.CascadeResult, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return dto.CascadeResult{}, notFound(err, ErrTopicNotFound)
	}

	result, err := s.cascade.deleteTopic(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Uint("topic_id", id).Int64("deleted_questions", result.DeletedQuestions).Msg("topic cascade interrupted")
		return dto.CascadeResult{}, err
	}

	record(ctx, s.activity, s.logger, ActivityEntry{
		Actor:      actor,
		Action:     "topic.deleted",
		EntityType: "topic",
		EntityID:   &id,
		Metadata:   map[string]interface{}{"deleted_topics": result.DeletedTopics, "deleted_questions": result.DeletedQuestions},
	})
	return result, nil
}
