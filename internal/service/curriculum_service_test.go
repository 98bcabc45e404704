package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vk-smartminds/practice-platform/internal/dto"
	"github.com/vk-smartminds/practice-platform/internal/models"
	"github.com/vk-smartminds/practice-platform/internal/repository"
)

type curriculumServices struct {
	classes   ClassService
	subjects  SubjectService
	chapters  ChapterService
	topics    TopicService
	questions QuestionService
	activity  *stubActivityRecorder
}

func setupCurriculumServices(t *testing.T) (*gorm.DB, curriculumServices) {
	t.Helper()
	db := newTestDB(t)
	classRepo := repository.NewClassRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	chapterRepo := repository.NewChapterRepository(db)
	topicRepo := repository.NewTopicRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	activity := &stubActivityRecorder{}
	validate := testValidator()

	return db, curriculumServices{
		classes:   NewClassService(classRepo, validate, activity, testLogger()),
		subjects:  NewSubjectService(subjectRepo, classRepo, validate, activity, testLogger()),
		chapters:  NewChapterService(chapterRepo, subjectRepo, topicRepo, questionRepo, validate, activity, testLogger()),
		topics:    NewTopicService(topicRepo, chapterRepo, questionRepo, validate, activity, testLogger()),
		questions: NewQuestionService(questionRepo, topicRepo, validate, activity, testLogger()),
		activity:  activity,
	}
}

func TestClassServiceRejectsDuplicateName(t *testing.T) {
	_, svc := setupCurriculumServices(t)
	ctx := context.Background()

	_, err := svc.classes.Create(ctx, dto.ClassCreateRequest{Name: "10"}, adminActor)
	require.NoError(t, err)

	_, err = svc.classes.Create(ctx, dto.ClassCreateRequest{Name: " 10 "}, adminActor)
	require.ErrorIs(t, err, ErrDuplicate)
}

func TestClassServiceUpdateRejectsBlankName(t *testing.T) {
	_, svc := setupCurriculumServices(t)
	ctx := context.Background()

	class, err := svc.classes.Create(ctx, dto.ClassCreateRequest{Name: "10"}, adminActor)
	require.NoError(t, err)

	_, err = svc.classes.Update(ctx, class.ID, dto.ClassUpdateRequest{Name: ptrString("   ")}, adminActor)
	require.ErrorIs(t, err, ErrBlankField)

	_, err = svc.classes.Update(ctx, 999, dto.ClassUpdateRequest{Name: ptrString("11")}, adminActor)
	require.ErrorIs(t, err, ErrClassNotFound)
}

func TestSubjectServiceRequiresExistingClass(t *testing.T) {
	db, svc := setupCurriculumServices(t)

	_, err := svc.subjects.Create(context.Background(), dto.SubjectCreateRequest{Name: "Biology", ClassID: 42}, adminActor)
	require.ErrorIs(t, err, ErrParentNotFound)
	require.True(t, IsBadRequest(err))
	require.Zero(t, count(t, db, &models.Subject{}, ""))
}

func TestChapterServiceDerivesClassFromSubject(t *testing.T) {
	db, svc := setupCurriculumServices(t)
	seeded := seedCurriculum(t, db)
	ctx := context.Background()

	chapter, err := svc.chapters.Create(ctx, dto.ChapterCreateRequest{
		Title:         "Geometry",
		ChapterNumber: 2,
		SubjectID:     seeded.subjectA.ID,
	}, adminActor)
	require.NoError(t, err)
	require.Equal(t, "Geometry", chapter.ChapterName)
	require.Equal(t, seeded.classA.ID, chapter.ClassID)

	_, err = svc.chapters.Create(ctx, dto.ChapterCreateRequest{
		ChapterName:   "Optics",
		ChapterNumber: 3,
		SubjectID:     seeded.subjectA.ID,
		ClassID:       seeded.classB.ID,
	}, adminActor)
	require.ErrorIs(t, err, ErrClassMismatch)

	_, err = svc.chapters.Create(ctx, dto.ChapterCreateRequest{
		ChapterName:   "Orphan",
		ChapterNumber: 1,
		SubjectID:     999,
	}, adminActor)
	require.ErrorIs(t, err, ErrParentNotFound)
	require.Zero(t, count(t, db, &models.Chapter{}, "chapter_name IN ?", []string{"Optics", "Orphan"}))
}

func TestChapterServiceUpdateMovesClassWithSubject(t *testing.T) {
	db, svc := setupCurriculumServices(t)
	seeded := seedCurriculum(t, db)

	updated, err := svc.chapters.Update(context.Background(), seeded.chapter.ID, dto.ChapterUpdateRequest{
		SubjectID: ptrUint(seeded.subjectB.ID),
	}, adminActor)
	require.NoError(t, err)
	require.Equal(t, seeded.subjectB.ID, updated.SubjectID)
	require.Equal(t, seeded.classB.ID, updated.ClassID)
	require.Equal(t, "Algebra", updated.ChapterName)
}

func TestChapterServiceDeleteCascades(t *testing.T) {
	db, svc := setupCurriculumServices(t)
	seeded := seedCurriculum(t, db)

	result, err := svc.chapters.Delete(context.Background(), seeded.chapter.ID, adminActor)
	require.NoError(t, err)
	require.Equal(t, seeded.chapter.ID, result.ID)
	require.Equal(t, int64(2), result.DeletedTopics)
	require.Equal(t, int64(4), result.DeletedQuestions)

	require.Zero(t, count(t, db, &models.Chapter{}, "id = ?", seeded.chapter.ID))
	require.Zero(t, count(t, db, &models.Topic{}, "chapter_id = ?", seeded.chapter.ID))
	require.Zero(t, count(t, db, &models.Question{}, ""))
	require.Equal(t, int64(1), count(t, db, &models.Chapter{}, "id = ?", seeded.otherChapter.ID))
	require.Contains(t, svc.activity.actions(), "chapter.deleted")

	_, err = svc.chapters.Delete(context.Background(), seeded.chapter.ID, adminActor)
	require.ErrorIs(t, err, ErrChapterNotFound)
}

func TestTopicServiceDeleteCascades(t *testing.T) {
	db, svc := setupCurriculumServices(t)
	seeded := seedCurriculum(t, db)
	target := seeded.topics[0]

	result, err := svc.topics.Delete(context.Background(), target.ID, adminActor)
	require.NoError(t, err)
	require.Equal(t, int64(1), result.DeletedTopics)
	require.Equal(t, int64(2), result.DeletedQuestions)

	require.Zero(t, count(t, db, &models.Question{}, "topic_id = ?", target.ID))
	require.Equal(t, int64(2), count(t, db, &models.Question{}, "topic_id = ?", seeded.topics[1].ID))
	require.Equal(t, int64(1), count(t, db, &models.Chapter{}, "id = ?", seeded.chapter.ID))
	require.Zero(t, count(t, db, &models.Topic{}, "id = ?", target.ID))

	entry := svc.activity.entries[len(svc.activity.entries)-1]
	require.Equal(t, "topic.deleted", entry.Action)
	require.Equal(t, int64(1), entry.Metadata["deleted_topics"])
	require.Equal(t, int64(2), entry.Metadata["deleted_questions"])
}

func TestSubjectDeleteLeavesChaptersInPlace(t *testing.T) {
	db, svc := setupCurriculumServices(t)
	seeded := seedCurriculum(t, db)

	require.NoError(t, svc.subjects.Delete(context.Background(), seeded.subjectA.ID, adminActor))

	require.Zero(t, count(t, db, &models.Subject{}, "id = ?", seeded.subjectA.ID))
	require.Equal(t, int64(1), count(t, db, &models.Chapter{}, "subject_id = ?", seeded.subjectA.ID))
	require.Equal(t, int64(4), count(t, db, &models.Question{}, ""))

	err := svc.subjects.Delete(context.Background(), seeded.subjectA.ID, adminActor)
	require.ErrorIs(t, err, ErrSubjectNotFound)
}

func TestQuestionServiceSanitizesAndDefaultsType(t *testing.T) {
	db, svc := setupCurriculumServices(t)
	seeded := seedCurriculum(t, db)

	question, err := svc.questions.Create(context.Background(), dto.QuestionCreateRequest{
		QuestionText: `<script>alert(1)</script>Solve <b>x</b> + 2 = 4`,
		AnswerText:   " x = 2 ",
		TopicID:      seeded.topics[1].ID,
	}, adminActor)
	require.NoError(t, err)
	require.Equal(t, "Solve <b>x</b> + 2 = 4", question.QuestionText)
	require.Equal(t, "x = 2", question.AnswerText)
	require.Equal(t, models.QuestionTypeShortAnswer, question.QuestionType)

	_, err = svc.questions.Create(context.Background(), dto.QuestionCreateRequest{
		QuestionText: "<script></script>",
		TopicID:      seeded.topics[1].ID,
	}, adminActor)
	require.Error(t, err)
	require.Equal(t, int64(3), count(t, db, &models.Question{}, "topic_id = ?", seeded.topics[1].ID))

	_, err = svc.questions.Update(context.Background(), question.ID, dto.QuestionUpdateRequest{
		QuestionType: ptrString("Essay"),
	}, adminActor)
	require.Error(t, err)

	updated, err := svc.questions.Update(context.Background(), question.ID, dto.QuestionUpdateRequest{
		QuestionType: ptrString(models.QuestionTypeDefinition),
	}, adminActor)
	require.NoError(t, err)
	require.Equal(t, models.QuestionTypeDefinition, updated.QuestionType)
}

func TestCurriculumMutationsRecordActivity(t *testing.T) {
	_, svc := setupCurriculumServices(t)
	ctx := context.Background()

	class, err := svc.classes.Create(ctx, dto.ClassCreateRequest{Name: "9"}, adminActor)
	require.NoError(t, err)
	subject, err := svc.subjects.Create(ctx, dto.SubjectCreateRequest{Name: "History", ClassID: class.ID}, adminActor)
	require.NoError(t, err)
	chapter, err := svc.chapters.Create(ctx, dto.ChapterCreateRequest{ChapterName: "Empires", ChapterNumber: 1, SubjectID: subject.ID}, adminActor)
	require.NoError(t, err)
	topic, err := svc.topics.Create(ctx, dto.TopicCreateRequest{Title: "Rome", ChapterID: chapter.ID}, adminActor)
	require.NoError(t, err)
	_, err = svc.questions.Create(ctx, dto.QuestionCreateRequest{QuestionText: "Who founded Rome?", TopicID: topic.ID}, adminActor)
	require.NoError(t, err)

	require.Equal(t, []string{
		"class.created",
		"subject.created",
		"chapter.created",
		"topic.created",
		"question.created",
	}, svc.activity.actions())
	for _, entry := range svc.activity.entries {
		require.Equal(t, adminActor, entry.Actor)
	}
}
