package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Class is the root of the curriculum tree, e.g. "10" or "12".
type Class struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:64;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Subject belongs to a class.
type Subject struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:128;not null;uniqueIndex:idx_subject_class_name" json:"name"`
	ClassID   uint      `gorm:"not null;index;uniqueIndex:idx_subject_class_name" json:"classId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Chapter belongs to a subject. ClassID mirrors the subject's class so that
// ownership checks do not need to load the subject.
type Chapter struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ChapterName   string    `gorm:"size:255;not null" json:"chapterName"`
	ChapterNumber int       `gorm:"not null" json:"chapterNumber"`
	ClassID       uint      `gorm:"not null;index" json:"classId"`
	SubjectID     uint      `gorm:"not null;index" json:"subjectId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Topic belongs to a chapter.
type Topic struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	TopicNumber int       `json:"topicNumber"`
	ChapterID   uint      `gorm:"not null;index" json:"chapterId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Question types accepted by the platform.
const (
	QuestionTypeShortAnswer    = "Short Answer"
	QuestionTypeLongAnswer     = "Long Answer"
	QuestionTypeProblemSolving = "Problem-Solving"
	QuestionTypeDefinition     = "Definition"
	QuestionTypeFillInBlank    = "Fill-in-the-Blank"
)

// QuestionTypes lists every valid question type.
var QuestionTypes = []string{
	QuestionTypeShortAnswer,
	QuestionTypeLongAnswer,
	QuestionTypeProblemSolving,
	QuestionTypeDefinition,
	QuestionTypeFillInBlank,
}

// Question is a leaf of the curriculum tree.
type Question struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	QuestionText string    `gorm:"type:text;not null" json:"questionText"`
	AnswerText   string    `gorm:"type:text" json:"answerText"`
	Explanation  string    `gorm:"type:text" json:"explanation"`
	QuestionType string    `gorm:"size:32;not null;default:'Short Answer'" json:"questionType"`
	TopicID      uint      `gorm:"not null;index" json:"topicId"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// BeforeSave defaults the question type.
func (q *Question) BeforeSave(tx *gorm.DB) error {
	q.QuestionText = strings.TrimSpace(q.QuestionText)
	q.AnswerText = strings.TrimSpace(q.AnswerText)
	if strings.TrimSpace(q.QuestionType) == "" {
		q.QuestionType = QuestionTypeShortAnswer
	}
	return nil
}
