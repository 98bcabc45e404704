package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/vk-smartminds/practice-platform/internal/models"
)

// AccountRepository resolves students and admins through a single role-tagged
// lookup path.
type AccountRepository interface {
	// FindByEmail searches students first and admins second. A student wins
	// when both tables hold the same email.
	FindByEmail(ctx context.Context, email string) (models.Account, error)
	FindByID(ctx context.Context, role string, id uint) (models.Account, error)
	AdminEmailExists(ctx context.Context, email string) (bool, error)
	CreateAdmin(ctx context.Context, admin *models.Admin) error
}

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository constructs an account repository.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) FindByEmail(ctx context.Context, email string) (models.Account, error) {
	normalized := models.NormalizeEmail(email)
	if normalized == "" {
		return models.Account{}, gorm.ErrRecordNotFound
	}

	for _, role := range []string{models.RoleStudent, models.RoleAdmin} {
		account, err := r.find(ctx, role, "email = ?", normalized)
		if err == nil {
			return account, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Account{}, err
		}
	}

	return models.Account{}, gorm.ErrRecordNotFound
}

func (r *accountRepository) FindByID(ctx context.Context, role string, id uint) (models.Account, error) {
	return r.find(ctx, role, "id = ?", id)
}

func (r *accountRepository) find(ctx context.Context, role string, query string, arg interface{}) (models.Account, error) {
	db := r.db.WithContext(ctx)
	switch role {
	case models.RoleStudent:
		var student models.Student
		if err := db.Where(query, arg).First(&student).Error; err != nil {
			return models.Account{}, err
		}
		account := models.StudentAccount(student)
		var class models.Class
		err := db.Select("name").First(&class, student.ClassID).Error
		switch {
		case err == nil:
			account.ClassName = class.Name
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return models.Account{}, err
		}
		return account, nil
	case models.RoleAdmin:
		var admin models.Admin
		if err := db.Where(query, arg).First(&admin).Error; err != nil {
			return models.Account{}, err
		}
		return models.AdminAccount(admin), nil
	default:
		return models.Account{}, fmt.Errorf("unknown role %q", role)
	}
}

func (r *accountRepository) AdminEmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Admin{}).
		Where("email = ?", models.NormalizeEmail(email)).
		Count(&count).Error
	return count > 0, err
}

func (r *accountRepository) CreateAdmin(ctx context.Context, admin *models.Admin) error {
	return r.db.WithContext(ctx).Create(admin).Error
}
