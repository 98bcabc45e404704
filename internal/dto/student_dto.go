package dto

import (
	"time"

	"github.com/vk-smartminds/practice-platform/internal/models"
)

// PaginationMeta captures pagination metadata for list responses.
type PaginationMeta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
}

// StudentResponse serializes a student without credentials.
type StudentResponse struct {
	ID                   uint           `json:"id"`
	Name                 string         `json:"name"`
	Email                string         `json:"email"`
	ClassID              uint           `json:"classId"`
	ClassName            string         `json:"className,omitempty"`
	School               string         `json:"school"`
	Address              AddressPayload `json:"address"`
	GuardianName         string         `json:"guardianName"`
	GuardianMobileNumber string         `json:"guardianMobileNumber"`
	CreatedAt            time.Time      `json:"createdAt"`
	UpdatedAt            time.Time      `json:"updatedAt"`
}

// NewStudentResponse converts a student model into its public form.
func NewStudentResponse(student models.Student, className string) StudentResponse {
	return StudentResponse{
		ID:        student.ID,
		Name:      student.Name,
		Email:     student.Email,
		ClassID:   student.ClassID,
		ClassName: className,
		School:    student.School,
		Address: AddressPayload{
			City:    student.Address.City,
			State:   student.Address.State,
			Pincode: student.Address.Pincode,
		},
		GuardianName:         student.GuardianName,
		GuardianMobileNumber: student.GuardianMobileNumber,
		CreatedAt:            student.CreatedAt,
		UpdatedAt:            student.UpdatedAt,
	}
}

// ProfileUpdateRequest is what a student may change about themselves.
type ProfileUpdateRequest struct {
	Name                 *string       `json:"name" validate:"omitempty,min=1"`
	School               *string       `json:"school" validate:"omitempty,min=1"`
	GuardianName         *string       `json:"guardianName" validate:"omitempty,min=1"`
	GuardianMobileNumber *string       `json:"guardianMobileNumber" validate:"omitempty,min=1"`
	Address              *AddressPatch `json:"address"`
}

// AdminStudentListRequest defines filters for listing students.
type AdminStudentListRequest struct {
	Page     int
	PageSize int
	Search   string
	ClassID  uint
}

// AdminStudentListResponse wraps a paginated student response.
type AdminStudentListResponse struct {
	Items      []StudentResponse `json:"items"`
	Pagination PaginationMeta    `json:"pagination"`
}

// AdminStudentUpdateRequest captures partial student updates from admins.
// Unlike the profile update it may move a student to another class.
type AdminStudentUpdateRequest struct {
	Name                 *string       `json:"name" validate:"omitempty,min=1"`
	Email                *string       `json:"email" validate:"omitempty,email"`
	ClassID              *uint         `json:"classId" validate:"omitempty,gt=0"`
	School               *string       `json:"school" validate:"omitempty,min=1"`
	GuardianName         *string       `json:"guardianName" validate:"omitempty,min=1"`
	GuardianMobileNumber *string       `json:"guardianMobileNumber" validate:"omitempty,min=1"`
	Address              *AddressPatch `json:"address"`
}

// ChapterDetailResponse is a chapter together with its topics.
type ChapterDetailResponse struct {
	Chapter models.Chapter `json:"chapter"`
	Topics  []models.Topic `json:"topics"`
}
