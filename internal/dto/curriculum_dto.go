package dto

import "strings"

// ClassCreateRequest is the payload for creating a class.
type ClassCreateRequest struct {
	Name string `json:"name" validate:"required,max=64"`
}

// ClassUpdateRequest patches a class.
type ClassUpdateRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=64"`
}

// SubjectCreateRequest is the payload for creating a subject.
type SubjectCreateRequest struct {
	Name    string `json:"name" validate:"required,max=128"`
	ClassID uint   `json:"classId" validate:"required"`
}

// SubjectUpdateRequest patches a subject.
type SubjectUpdateRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=128"`
	ClassID *uint   `json:"classId" validate:"omitempty,gt=0"`
}

// ChapterCreateRequest is the payload for creating a chapter. Title is an
// accepted alias of ChapterName. ClassID is derived from the subject when omitted.
type ChapterCreateRequest struct {
	ChapterName   string `json:"chapterName" validate:"required,max=255"`
	Title         string `json:"title" validate:"-"`
	ChapterNumber int    `json:"chapterNumber" validate:"required,gte=1"`
	SubjectID     uint   `json:"subjectId" validate:"required"`
	ClassID       uint   `json:"classId" validate:"omitempty"`
}

// Normalize folds the title alias into ChapterName.
func (r *ChapterCreateRequest) Normalize() {
	r.ChapterName = strings.TrimSpace(r.ChapterName)
	if r.ChapterName == "" {
		r.ChapterName = strings.TrimSpace(r.Title)
	}
}

// ChapterUpdateRequest patches a chapter.
type ChapterUpdateRequest struct {
	ChapterName   *string `json:"chapterName" validate:"omitempty,min=1,max=255"`
	Title         *string `json:"title" validate:"omitempty,min=1,max=255"`
	ChapterNumber *int    `json:"chapterNumber" validate:"omitempty,gte=1"`
	SubjectID     *uint   `json:"subjectId" validate:"omitempty,gt=0"`
}

// Normalize folds the title alias into ChapterName.
func (r *ChapterUpdateRequest) Normalize() {
	if r.ChapterName == nil && r.Title != nil {
		r.ChapterName = r.Title
	}
}

// TopicCreateRequest is the payload for creating a topic.
type TopicCreateRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	TopicNumber int    `json:"topicNumber" validate:"gte=0"`
	ChapterID   uint   `json:"chapterId" validate:"required"`
}

// TopicUpdateRequest patches a topic.
type TopicUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=255"`
	TopicNumber *int    `json:"topicNumber" validate:"omitempty,gte=0"`
	ChapterID   *uint   `json:"chapterId" validate:"omitempty,gt=0"`
}

// QuestionCreateRequest is the payload for creating a question.
type QuestionCreateRequest struct {
	QuestionText string `json:"questionText" validate:"required"`
	AnswerText   string `json:"answerText"`
	Explanation  string `json:"explanation"`
	QuestionType string `json:"questionType" validate:"omitempty,oneof='Short Answer' 'Long Answer' Problem-Solving Definition Fill-in-the-Blank"`
	TopicID      uint   `json:"topicId" validate:"required"`
}

// QuestionUpdateRequest patches a question.
type QuestionUpdateRequest struct {
	QuestionText *string `json:"questionText" validate:"omitempty,min=1"`
	AnswerText   *string `json:"answerText"`
	Explanation  *string `json:"explanation"`
	QuestionType *string `json:"questionType" validate:"omitempty,oneof='Short Answer' 'Long Answer' Problem-Solving Definition Fill-in-the-Blank"`
	TopicID      *uint   `json:"topicId" validate:"omitempty,gt=0"`
}

// CascadeResult reports what a delete removed.
type CascadeResult struct {
	ID               uint  `json:"id"`
	DeletedTopics    int64 `json:"deletedTopics"`
	DeletedQuestions int64 `json:"deletedQuestions"`
}
