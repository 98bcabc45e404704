package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vk-smartminds/practice-platform/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Class{}, &models.Subject{}, &models.Chapter{}, &models.Topic{}, &models.Question{},
		&models.Student{}, &models.Admin{}, &models.ActivityLog{},
	))
	return db
}

func TestDeleteByIDReportsMissingRow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewClassRepository(db)
	class := models.Class{Name: "10"}
	require.NoError(t, repo.Create(context.Background(), &class))

	require.NoError(t, repo.Delete(context.Background(), class.ID))
	require.ErrorIs(t, repo.Delete(context.Background(), class.ID), gorm.ErrRecordNotFound)
}

func TestClassRepositoryRejectsDuplicateName(t *testing.T) {
	db := setupTestDB(t)
	repo := NewClassRepository(db)

	require.NoError(t, repo.Create(context.Background(), &models.Class{Name: "10"}))
	err := repo.Create(context.Background(), &models.Class{Name: "10"})
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestBulkDeletesReportRowCounts(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	chapter := models.Chapter{ChapterName: "Algebra", ChapterNumber: 1, ClassID: 1, SubjectID: 1}
	require.NoError(t, db.Create(&chapter).Error)
	topics := []models.Topic{{Title: "A", ChapterID: chapter.ID}, {Title: "B", ChapterID: chapter.ID}, {Title: "C", ChapterID: chapter.ID + 1}}
	require.NoError(t, db.Create(&topics).Error)
	questions := []models.Question{{QuestionText: "q1", TopicID: topics[0].ID}, {QuestionText: "q2", TopicID: topics[0].ID}, {QuestionText: "q3", TopicID: topics[1].ID}}
	require.NoError(t, db.Create(&questions).Error)

	removed, err := NewQuestionRepository(db).DeleteByTopic(ctx, topics[0].ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), removed)

	removed, err = NewTopicRepository(db).DeleteByChapter(ctx, chapter.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), removed)

	remaining, err := NewTopicRepository(db).List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	require.Equal(t, "C", remaining[0].Title)
}

func TestAccountRepositoryPrefersStudents(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	class := models.Class{Name: "10"}
	require.NoError(t, db.Create(&class).Error)
	student := models.Student{Name: "Asha", Email: "Shared@Example.com", ClassID: class.ID}
	require.NoError(t, db.Create(&student).Error)
	admin := models.Admin{Name: "Root", Email: "shared@example.com"}
	require.NoError(t, db.Create(&admin).Error)
	other := models.Admin{Name: "Ops", Email: "ops@example.com"}
	require.NoError(t, db.Create(&other).Error)

	repo := NewAccountRepository(db)

	account, err := repo.FindByEmail(ctx, " SHARED@example.com ")
	require.NoError(t, err)
	require.Equal(t, models.RoleStudent, account.Role)
	require.Equal(t, student.ID, account.ID)
	require.Equal(t, "10", account.ClassName)
	require.NotNil(t, account.Student)

	account, err = repo.FindByEmail(ctx, "ops@example.com")
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, account.Role)
	require.Nil(t, account.ClassID)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	account, err = repo.FindByID(ctx, models.RoleAdmin, admin.ID)
	require.NoError(t, err)
	require.Equal(t, "Root", account.Name)

	_, err = repo.FindByID(ctx, "guest", admin.ID)
	require.Error(t, err)

	exists, err := repo.AdminEmailExists(ctx, "OPS@example.com")
	require.NoError(t, err)
	require.True(t, exists)
}

func TestStudentRepositoryEmailExistsExcludesSelf(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewStudentRepository(db)
	student := models.Student{Name: "Asha", Email: "asha@example.com", ClassID: 1}
	require.NoError(t, repo.Create(ctx, &student))

	taken, err := repo.EmailExists(ctx, "ASHA@example.com", 0)
	require.NoError(t, err)
	require.True(t, taken)

	taken, err = repo.EmailExists(ctx, "asha@example.com", student.ID)
	require.NoError(t, err)
	require.False(t, taken)
}

func TestEnrollmentRepositoryCountsSinceCutoff(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

	for i, pincode := range []string{"411001", "411001", "560001", "560001", "560001"} {
		student := models.Student{
			Name:      fmt.Sprintf("s%d", i),
			Email:     fmt.Sprintf("s%d@example.com", i),
			ClassID:   1,
			Address:   models.Address{Pincode: pincode},
			CreatedAt: now.Add(-time.Duration(i) * 24 * time.Hour),
		}
		require.NoError(t, db.Create(&student).Error)
	}

	repo := NewEnrollmentRepository(db)
	cutoff := now.Add(-36 * time.Hour)

	rows, err := repo.CountByPincode(ctx, &cutoff)
	require.NoError(t, err)
	require.Equal(t, []PincodeCount{{Pincode: "411001", Count: 2}}, rows)

	rows, err = repo.CountByPincode(ctx, nil)
	require.NoError(t, err)
	require.Equal(t, []PincodeCount{{Pincode: "560001", Count: 3}, {Pincode: "411001", Count: 2}}, rows)

	students, err := repo.ListByPincode(ctx, "560001", nil)
	require.NoError(t, err)
	require.Len(t, students, 3)
	require.Equal(t, "s2@example.com", students[0].Email)
	require.Empty(t, students[0].Password)
}

func TestActivityLogRepositoryFilters(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewActivityLogRepository(db)

	for _, action := range []string{"class.created", "class.updated", "chapter.deleted"} {
		entityType := strings.Split(action, ".")[0]
		require.NoError(t, repo.Create(ctx, &models.ActivityLog{ActorID: 1, ActorRole: models.RoleAdmin, Action: action, EntityType: entityType}))
	}

	entries, total, err := repo.List(ctx, ActivityLogFilter{EntityType: "class", PageSize: 1, Page: 2})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, entries, 1)
}
