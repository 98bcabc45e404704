package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/vk-smartminds/practice-platform/internal/dto"
	"github.com/vk-smartminds/practice-platform/internal/models"
	"github.com/vk-smartminds/practice-platform/internal/repository"
)

// QuestionService manages questions from the admin panel.
type QuestionService interface {
	List(ctx context.Context, topicID *uint) ([]models.Question, error)
	Get(ctx context.Context, id uint) (models.Question, error)
	Create(ctx context.Context, req dto.QuestionCreateRequest, actor ActivityActor) (models.Question, error)
	Update(ctx context.Context, id uint, req dto.QuestionUpdateRequest, actor ActivityActor) (models.Question, error)
	Delete(ctx context.Context, id uint, actor ActivityActor) error
}

type questionService struct {
	repo      repository.QuestionRepository
	topics    repository.TopicRepository
	sanitizer *bluemonday.Policy
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
}

// NewQuestionService constructs the question service. Question, answer and
// explanation texts are run through a UGC HTML policy before storage.
func NewQuestionService(repo repository.QuestionRepository, topics repository.TopicRepository, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) QuestionService {
	return &questionService{
		repo:      repo,
		topics:    topics,
		sanitizer: bluemonday.UGCPolicy(),
		validator: validate,
		activity:  activity,
		logger:    logger.With().Str("component", "question_service").Logger(),
	}
}

func (s *questionService) List(ctx context.Context, topicID *uint) ([]models.Question, error) {
	return s.repo.List(ctx, topicID)
}

func (s *questionService) Get(ctx context.Context, id uint) (models.Question, error) {
	question, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return models.Question{}, notFound(err, ErrQuestionNotFound)
	}
	return question, nil
}

func (s *questionService) Create(ctx context.Context, req dto.QuestionCreateRequest, actor ActivityActor) (models.Question, error) {
	req.QuestionText = s.sanitize(req.QuestionText)
	if err := s.validator.Struct(req); err != nil {
		return models.Question{}, err
	}
	if _, err := s.topics.GetByID(ctx, req.TopicID); err != nil {
		return models.Question{}, missingParent(err, "topic", req.TopicID)
	}

	question := models.Question{
		QuestionText: req.QuestionText,
		AnswerText:   s.sanitize(req.AnswerText),
		Explanation:  s.sanitize(req.Explanation),
		QuestionType: req.QuestionType,
		TopicID:      req.TopicID,
	}
	if err := s.repo.Create(ctx, &question); err != nil {
		return models.Question{}, err
	}

	record(ctx, s.activity, s.logger, ActivityEntry{
		Actor:      actor,
		Action:     "question.created",
		EntityType: "question",
		EntityID:   &question.ID,
		Metadata:   map[string]interface{}{"topic_id": question.TopicID, "question_type": question.QuestionType},
	})
	return question, nil
}

func (s *questionService) Update(ctx context.Context, id uint, req dto.QuestionUpdateRequest, actor ActivityActor) (models.Question, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Question{}, err
	}

	question, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return models.Question{}, notFound(err, ErrQuestionNotFound)
	}

	if req.QuestionText != nil {
		question.QuestionText = s.sanitize(*req.QuestionText)
		if question.QuestionText == "" {
			return models.Question{}, ErrBlankField
		}
	}
	if req.AnswerText != nil {
		question.AnswerText = s.sanitize(*req.AnswerText)
	}
	if req.Explanation != nil {
		question.Explanation = s.sanitize(*req.Explanation)
	}
	if req.QuestionType != nil {
		question.QuestionType = *req.QuestionType
	}
	if req.TopicID != nil && *req.TopicID != question.TopicID {
		if _, err := s.topics.GetByID(ctx, *req.TopicID); err != nil {
			return models.Question{}, missingParent(err, "topic", *req.TopicID)
		}
		question.TopicID = *req.TopicID
	}

	if err := s.repo.Save(ctx, &question); err != nil {
		return models.Question{}, err
	}

	record(ctx, s.activity, s.logger, ActivityEntry{
		Actor:      actor,
		Action:     "question.updated",
		EntityType: "question",
		EntityID:   &question.ID,
		Metadata:   map[string]interface{}{"topic_id": question.TopicID},
	})
	return question, nil
}

func (s *questionService) Delete(ctx context.Context, id uint, actor ActivityActor) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err, ErrQuestionNotFound)
	}
	record(ctx, s.activity, s.logger, ActivityEntry{
		Actor:      actor,
		Action:     "question.deleted",
		EntityType: "question",
		EntityID:   &id,
	})
	return nil
}

func (s *questionService) sanitize(value string) string {
	return strings.TrimSpace(s.sanitizer.Sanitize(value))
}
