package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/vk-smartminds/practice-platform/internal/dto"
	"github.com/vk-smartminds/practice-platform/internal/models"
	"github.com/vk-smartminds/practice-platform/internal/repository"
)

// StudentContentService is the read-only view of the curriculum for students.
// Ownership checks compare a chapter's class with the caller's class.
type StudentContentService interface {
	ListClasses(ctx context.Context) ([]models.Class, error)
	GetClass(ctx context.Context, classID uint) (models.Class, error)
	ListSubjectsForClass(ctx context.Context, account models.Account) ([]models.Subject, error)
	ListChaptersForSubject(ctx context.Context, account models.Account, subjectID uint) ([]models.Chapter, error)
	GetChapter(ctx context.Context, account models.Account, chapterID uint) (dto.ChapterDetailResponse, error)
	ListTopicsForChapter(ctx context.Context, account models.Account, chapterID uint) ([]models.Topic, error)
	ListQuestionsForTopic(ctx context.Context, account models.Account, chapterID, topicID uint) ([]models.Question, error)
	ListQuestionsByTopic(ctx context.Context, account models.Account, topicID uint) ([]models.Question, error)
}

type studentContentService struct {
	classes   repository.ClassRepository
	subjects  repository.SubjectRepository
	chapters  repository.ChapterRepository
	topics    repository.TopicRepository
	questions repository.QuestionRepository
	logger    zerolog.Logger
}

// NewStudentContentService constructs the student content service.
func NewStudentContentService(classes repository.ClassRepository, subjects repository.SubjectRepository, chapters repository.ChapterRepository, topics repository.TopicRepository, questions repository.QuestionRepository, logger zerolog.Logger) StudentContentService {
	return &studentContentService{
		classes:   classes,
		subjects:  subjects,
		chapters:  chapters,
		topics:    topics,
		questions: questions,
		logger:    logger.With().Str("component", "student_content_service").Logger(),
	}
}

func (s *studentContentService) ListClasses(ctx context.Context) ([]models.Class, error) {
	return s.classes.List(ctx)
}

func (s *studentContentService) GetClass(ctx context.Context, classID uint) (models.Class, error) {
	class, err := s.classes.GetByID(ctx, classID)
	if err != nil {
		return models.Class{}, notFound(err, ErrClassNotFound)
	}
	return class, nil
}

func (s *studentContentService) ListSubjectsForClass(ctx context.Context, account models.Account) ([]models.Subject, error) {
	classID, err := studentClass(account)
	if err != nil {
		return nil, err
	}
	return s.subjects.List(ctx, &classID)
}

// ListChaptersForSubject does not compare the subject's class with the
// caller's class.
// TODO: reject chapters whose ClassID differs from the caller's class, as
// GetChapter does.
func (s *studentContentService) ListChaptersForSubject(ctx context.Context, account models.Account, subjectID uint) ([]models.Chapter, error) {
	if _, err := studentClass(account); err != nil {
		return nil, err
	}
	return s.chapters.List(ctx, repository.ChapterFilter{SubjectID: &subjectID})
}

func (s *studentContentService) GetChapter(ctx context.Context, account models.Account, chapterID uint) (dto.ChapterDetailResponse, error) {
	chapter, err := s.ownedChapter(ctx, account, chapterID)
	if err != nil {
		return dto.ChapterDetailResponse{}, err
	}
	topics, err := s.topics.List(ctx, &chapter.ID)
	if err != nil {
		return dto.ChapterDetailResponse{}, err
	}
	return dto.ChapterDetailResponse{Chapter: chapter, Topics: topics}, nil
}

func (s *studentContentService) ListTopicsForChapter(ctx context.Context, account models.Account, chapterID uint) ([]models.Topic, error) {
	if _, err := studentClass(account); err != nil {
		return nil, err
	}
	return s.topics.List(ctx, &chapterID)
}

func (s *studentContentService) ListQuestionsForTopic(ctx context.Context, account models.Account, chapterID, topicID uint) ([]models.Question, error) {
	chapter, err := s.ownedChapter(ctx, account, chapterID)
	if err != nil {
		return nil, err
	}

	topic, err := s.topics.GetByID(ctx, topicID)
	if err != nil {
		return nil, notFound(err, ErrTopicNotFound)
	}
	if topic.ChapterID != chapter.ID {
		return nil, ErrTopicForbidden
	}

	return s.questions.List(ctx, &topic.ID)
}

func (s *studentContentService) ListQuestionsByTopic(ctx context.Context, account models.Account, topicID uint) ([]models.Question, error) {
	topic, err := s.topics.GetByID(ctx, topicID)
	if err != nil {
		return nil, notFound(err, ErrTopicNotFound)
	}
	if _, err := s.ownedChapter(ctx, account, topic.ChapterID); err != nil {
		return nil, err
	}
	return s.questions.List(ctx, &topic.ID)
}

func (s *studentContentService) ownedChapter(ctx context.Context, account models.Account, chapterID uint) (models.Chapter, error) {
	classID, err := studentClass(account)
	if err != nil {
		return models.Chapter{}, err
	}

	chapter, err := s.chapters.GetByID(ctx, chapterID)
	if err != nil {
		return models.Chapter{}, notFound(err, ErrChapterNotFound)
	}
	if chapter.ClassID != classID {
		s.logger.Warn().
			Uint("student_id", account.ID).
			Uint("chapter_id", chapter.ID).
			Uint("chapter_class_id", chapter.ClassID).
			Uint("student_class_id", classID).
			Msg("chapter access denied")
		return models.Chapter{}, ErrChapterForbidden
	}
	return chapter, nil
}

func studentClass(account models.Account) (uint, error) {
	if !account.IsStudent() || account.ClassID == nil {
		return 0, ErrForbidden
	}
	return *account.ClassID, nil
}
