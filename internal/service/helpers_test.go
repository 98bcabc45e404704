package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vk-smartminds/practice-platform/internal/database"
	"github.com/vk-smartminds/practice-platform/internal/dto"
	"github.com/vk-smartminds/practice-platform/internal/models"
)

type stubActivityRecorder struct {
	entries []ActivityEntry
}

func (s *stubActivityRecorder) Record(_ context.Context, entry ActivityEntry) (dto.ActivityResponse, error) {
	s.entries = append(s.entries, entry)
	return dto.ActivityResponse{Action: entry.Action, EntityType: entry.EntityType, EntityID: entry.EntityID}, nil
}

func (s *stubActivityRecorder) actions() []string {
	actions := make([]string, 0, len(s.entries))
	for _, entry := range s.entries {
		actions = append(actions, entry.Action)
	}
	return actions
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func testValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

func ptrUint(v uint) *uint {
	return &v
}

func ptrString(v string) *string {
	return &v
}

var adminActor = ActivityActor{ID: 1, Role: models.RoleAdmin, CorrelationID: "test"}

// curriculum is a minimal seeded tree: two classes, a subject in each, and a
// chapter with two topics under the first subject.
type curriculum struct {
	classA, classB     models.Class
	subjectA, subjectB models.Subject
	chapter            models.Chapter
	otherChapter       models.Chapter
	topics             []models.Topic
	questions          []models.Question
}

func seedCurriculum(t *testing.T, db *gorm.DB) curriculum {
	t.Helper()

	var seeded curriculum
	seeded.classA = models.Class{Name: "10"}
	seeded.classB = models.Class{Name: "12"}
	require.NoError(t, db.Create(&seeded.classA).Error)
	require.NoError(t, db.Create(&seeded.classB).Error)

	seeded.subjectA = models.Subject{Name: "Mathematics", ClassID: seeded.classA.ID}
	seeded.subjectB = models.Subject{Name: "Physics", ClassID: seeded.classB.ID}
	require.NoError(t, db.Create(&seeded.subjectA).Error)
	require.NoError(t, db.Create(&seeded.subjectB).Error)

	seeded.chapter = models.Chapter{ChapterName: "Algebra", ChapterNumber: 1, ClassID: seeded.classA.ID, SubjectID: seeded.subjectA.ID}
	seeded.otherChapter = models.Chapter{ChapterName: "Motion", ChapterNumber: 1, ClassID: seeded.classB.ID, SubjectID: seeded.subjectB.ID}
	require.NoError(t, db.Create(&seeded.chapter).Error)
	require.NoError(t, db.Create(&seeded.otherChapter).Error)

	for i, title := range []string{"Linear equations", "Quadratics"} {
		topic := models.Topic{Title: title, TopicNumber: i + 1, ChapterID: seeded.chapter.ID}
		require.NoError(t, db.Create(&topic).Error)
		seeded.topics = append(seeded.topics, topic)
		for j := 0; j < 2; j++ {
			question := models.Question{QuestionText: fmt.Sprintf("%s #%d", title, j+1), TopicID: topic.ID}
			require.NoError(t, db.Create(&question).Error)
			seeded.questions = append(seeded.questions, question)
		}
	}

	return seeded
}

func count(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var total int64
	tx := db.Model(model)
	if query != "" {
		tx = tx.Where(query, args...)
	}
	require.NoError(t, tx.Count(&total).Error)
	return total
}
