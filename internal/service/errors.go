package service

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Not-found errors, one per record type.
var (
	ErrClassNotFound    = errors.New("class not found")
	ErrSubjectNotFound  = errors.New("subject not found")
	ErrChapterNotFound  = errors.New("chapter not found")
	ErrTopicNotFound    = errors.New("topic not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrStudentNotFound  = errors.New("student not found")
)

// Validation errors that are detected by business rules rather than struct tags.
var (
	ErrParentNotFound    = errors.New("referenced parent does not exist")
	ErrDuplicate         = errors.New("a record with the same name already exists")
	ErrClassMismatch     = errors.New("classId does not match the subject's class")
	ErrEmailTaken        = errors.New("a student with this email already exists")
	ErrIncompleteAddress = errors.New("please provide a complete address")
	ErrPincodeRequired   = errors.New("pincode is required")
	ErrBlankField        = errors.New("required field must not be blank")
)

// Authentication and authorization errors.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionInvalid     = errors.New("not authorized, token failed")
	ErrForbidden          = errors.New("forbidden")
	ErrChapterForbidden   = fmt.Errorf("%w: you do not have access to this chapter", ErrForbidden)
	ErrTopicForbidden     = fmt.Errorf("%w: this topic does not belong to the specified chapter", ErrForbidden)
)

// IsBadRequest reports whether err is a business-rule validation failure.
func IsBadRequest(err error) bool {
	for _, target := range []error{ErrParentNotFound, ErrDuplicate, ErrClassMismatch, ErrEmailTaken, ErrIncompleteAddress, ErrPincodeRequired, ErrBlankField} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err names a missing record.
func IsNotFound(err error) bool {
	for _, target := range []error{ErrClassNotFound, ErrSubjectNotFound, ErrChapterNotFound, ErrTopicNotFound, ErrQuestionNotFound, ErrStudentNotFound} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func notFound(err error, target error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return err
}

func missingParent(err error, kind string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s %d", ErrParentNotFound, kind, id)
	}
	return err
}

func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint") || strings.Contains(message, "duplicate key")
}
