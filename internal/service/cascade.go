package service

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vk-smartminds/practice-platform/internal/dto"
	"github.com/vk-smartminds/practice-platform/internal/observability"
	"github.com/vk-smartminds/practice-platform/internal/repository"
)

const cascadeTracerName = "github.com/vk-smartminds/practice-platform/internal/service/cascade"

// cascader removes a chapter or topic together with everything beneath it.
// Steps run sequentially without a transaction: a failure part way leaves the
// rows deleted so far removed and the error is returned to the caller.
type cascader struct {
	chapters  repository.ChapterRepository
	topics    repository.TopicRepository
	questions repository.QuestionRepository
}

func (c cascader) deleteTopic(ctx context.Context, topicID uint) (dto.CascadeResult, error) {
	ctx, span := otel.Tracer(cascadeTracerName).Start(ctx, "content.cascade_delete")
	span.SetAttributes(attribute.String("cascade.root", "topic"), attribute.Int64("cascade.id", int64(topicID)))
	defer span.End()

	result := dto.CascadeResult{ID: topicID}
	removed, err := c.questions.DeleteByTopic(ctx, topicID)
	if err != nil {
		return result, failSpan(span, err, "delete_questions_failed")
	}
	result.DeletedQuestions = removed

	if err := c.topics.Delete(ctx, topicID); err != nil {
		return result, failSpan(span, notFound(err, ErrTopicNotFound), "delete_topic_failed")
	}
	result.DeletedTopics = 1

	observe(span, result)
	return result, nil
}

func (c cascader) deleteChapter(ctx context.Context, chapterID uint) (dto.CascadeResult, error) {
	ctx, span := otel.Tracer(cascadeTracerName).Start(ctx, "content.cascade_delete")
	span.SetAttributes(attribute.String("cascade.root", "chapter"), attribute.Int64("cascade.id", int64(chapterID)))
	defer span.End()

	result := dto.CascadeResult{ID: chapterID}
	topics, err := c.topics.List(ctx, &chapterID)
	if err != nil {
		return result, failSpan(span, err, "list_topics_failed")
	}

	for _, topic := range topics {
		removed, err := c.questions.DeleteByTopic(ctx, topic.ID)
		if err != nil {
			return result, failSpan(span, err, "delete_questions_failed")
		}
		result.DeletedQuestions += removed
	}

	removedTopics, err := c.topics.DeleteByChapter(ctx, chapterID)
	if err != nil {
		return result, failSpan(span, err, "delete_topics_failed")
	}
	result.DeletedTopics = removedTopics

	if err := c.chapters.Delete(ctx, chapterID); err != nil {
		return result, failSpan(span, notFound(err, ErrChapterNotFound), "delete_chapter_failed")
	}

	observe(span, result)
	return result, nil
}

func observe(span trace.Span, result dto.CascadeResult) {
	span.SetAttributes(
		attribute.Int64("cascade.deleted_topics", result.DeletedTopics),
		attribute.Int64("cascade.deleted_questions", result.DeletedQuestions),
	)
	observability.CascadeDeleted().WithLabelValues("topic").Add(float64(result.DeletedTopics))
	observability.CascadeDeleted().WithLabelValues("question").Add(float64(result.DeletedQuestions))
}

func failSpan(span trace.Span, err error, status string) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, status)
	return err
}
