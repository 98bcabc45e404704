package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/vk-smartminds/practice-platform/internal/models"
)

// ChapterFilter narrows chapter listings.
type ChapterFilter struct {
	SubjectID *uint
	ClassID   *uint
}

// ChapterRepository provides access to chapter records.
type ChapterRepository interface {
	List(ctx context.Context, filter ChapterFilter) ([]models.Chapter, error)
	GetByID(ctx context.Context, id uint) (models.Chapter, error)
	Create(ctx context.Context, chapter *models.Chapter) error
	Save(ctx context.Context, chapter *models.Chapter) error
	Delete(ctx context.Context, id uint) error
}

type chapterRepository struct {
	db *gorm.DB
}

// NewChapterRepository constructs a chapter repository.
func NewChapterRepository(db *gorm.DB) ChapterRepository {
	return &chapterRepository{db: db}
}

func (r *chapterRepository) List(ctx context.Context, filter ChapterFilter) ([]models.Chapter, error) {
	query := r.db.WithContext(ctx).Model(&models.Chapter{})
	if filter.SubjectID != nil {
		query = query.Where("subject_id = ?", *filter.SubjectID)
	}
	if filter.ClassID != nil {
		query = query.Where("class_id = ?", *filter.ClassID)
	}

	var chapters []models.Chapter
	if err := query.Order("chapter_number ASC").Order("id ASC").Find(&chapters).Error; err != nil {
		return nil, err
	}
	return chapters, nil
}

func (r *chapterRepository) GetByID(ctx context.Context, id uint) (models.Chapter, error) {
	var chapter models.Chapter
	if err := r.db.WithContext(ctx).First(&chapter, id).Error; err != nil {
		return models.Chapter{}, err
	}
	return chapter, nil
}

func (r *chapterRepository) Create(ctx context.Context, chapter *models.Chapter) error {
	return r.db.WithContext(ctx).Create(chapter).Error
}

func (r *chapterRepository) Save(ctx context.Context, chapter *models.Chapter) error {
	return r.db.WithContext(ctx).Save(chapter).Error
}

func (r *chapterRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &models.Chapter{}, id)
}
