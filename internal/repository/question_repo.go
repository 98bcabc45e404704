package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/vk-smartminds/practice-platform/internal/models"
)

// QuestionRepository provides access to question records.
type QuestionRepository interface {
	List(ctx context.Context, topicID *uint) ([]models.Question, error)
	GetByID(ctx context.Context, id uint) (models.Question, error)
	Create(ctx context.Context, question *models.Question) error
	Save(ctx context.Context, question *models.Question) error
	Delete(ctx context.Context, id uint) error
	DeleteByTopic(ctx context.Context, topicID uint) (int64, error)
}

type questionRepository struct {
	db *gorm.DB
}

// NewQuestionRepository constructs a question repository.
func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) List(ctx context.Context, topicID *uint) ([]models.Question, error) {
	query := r.db.WithContext(ctx).Model(&models.Question{})
	if topicID != nil {
		query = query.Where("topic_id = ?", *topicID)
	}

	var questions []models.Question
	if err := query.Order("id ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) GetByID(ctx context.Context, id uint) (models.Question, error) {
	var question models.Question
	if err := r.db.WithContext(ctx).First(&question, id).Error; err != nil {
		return models.Question{}, err
	}
	return question, nil
}

func (r *questionRepository) Create(ctx context.Context, question *models.Question) error {
	return r.db.WithContext(ctx).Create(question).Error
}

func (r *questionRepository) Save(ctx context.Context, question *models.Question) error {
	return r.db.WithContext(ctx).Save(question).Error
}

func (r *questionRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &models.Question{}, id)
}

func (r *questionRepository) DeleteByTopic(ctx context.Context, topicID uint) (int64, error) {
	result := r.db.WithContext(ctx).Where("topic_id = ?", topicID).Delete(&models.Question{})
	return result.RowsAffected, result.Error
}
