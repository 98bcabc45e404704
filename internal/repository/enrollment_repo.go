package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/vk-smartminds/practice-platform/internal/models"
)

// PincodeCount is one aggregated row of signups per pincode.
type PincodeCount struct {
	Pincode string
	Count   int64
}

// EnrollmentRepository supplies the aggregates behind the enrollment dashboard.
type EnrollmentRepository interface {
	CountByPincode(ctx context.Context, since *time.Time) ([]PincodeCount, error)
	ListByPincode(ctx context.Context, pincode string, since *time.Time) ([]models.Student, error)
}

type enrollmentRepository struct {
	db *gorm.DB
}

// NewEnrollmentRepository constructs the enrollment repository.
func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) CountByPincode(ctx context.Context, since *time.Time) ([]PincodeCount, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Student{}).
		Select("address_pincode AS pincode, COUNT(*) AS count")
	if since != nil {
		query = query.Where("created_at >= ?", *since)
	}

	var rows []PincodeCount
	err := query.
		Group("address_pincode").
		Order("count DESC").
		Order("pincode ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *enrollmentRepository) ListByPincode(ctx context.Context, pincode string, since *time.Time) ([]models.Student, error) {
	query := r.db.WithContext(ctx).
		Select("id", "name", "email", "school", "created_at").
		Where("address_pincode = ?", pincode)
	if since != nil {
		query = query.Where("created_at >= ?", *since)
	}

	var students []models.Student
	err := query.Order("created_at DESC").Find(&students).Error
	return students, err
}
