package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/vk-smartminds/practice-platform/internal/models"
)

// TopicRepository provides access to topic records.
type TopicRepository interface {
	List(ctx context.Context, chapterID *uint) ([]models.Topic, error)
	GetByID(ctx context.Context, id uint) (models.Topic, error)
	Create(ctx context.Context, topic *models.Topic) error
	Save(ctx context.Context, topic *models.Topic) error
	Delete(ctx context.Context, id uint) error
	DeleteByChapter(ctx context.Context, chapterID uint) (int64, error)
}

type topicRepository struct {
	db *gorm.DB
}

// NewTopicRepository constructs a topic repository.
func NewTopicRepository(db *gorm.DB) TopicRepository {
	return &topicRepository{db: db}
}

func (r *topicRepository) List(ctx context.Context, chapterID *uint) ([]models.Topic, error) {
	query := r.db.WithContext(ctx).Model(&models.Topic{})
	if chapterID != nil {
		query = query.Where("chapter_id = ?", *chapterID)
	}

	var topics []models.Topic
	if err := query.Order("topic_number ASC").Order("id ASC").Find(&topics).Error; err != nil {
		return nil, err
	}
	return topics, nil
}

func (r *topicRepository) GetByID(ctx context.Context, id uint) (models.Topic, error) {
	var topic models.Topic
	if err := r.db.WithContext(ctx).First(&topic, id).Error; err != nil {
		return models.Topic{}, err
	}
	return topic, nil
}

func (r *topicRepository) Create(ctx context.Context, topic *models.Topic) error {
	return r.db.WithContext(ctx).Create(topic).Error
}

func (r *topicRepository) Save(ctx context.Context, topic *models.Topic) error {
	return r.db.WithContext(ctx).Save(topic).Error
}

func (r *topicRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &models.Topic{}, id)
}

func (r *topicRepository) DeleteByChapter(ctx context.Context, chapterID uint) (int64, error) {
	result := r.db.WithContext(ctx).Where("chapter_id = ?", chapterID).Delete(&models.Topic{})
	return result.RowsAffected, result.Error
}
