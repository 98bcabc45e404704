package dto

import (
	"time"

	"github.com/vk-smartminds/practice-platform/internal/models"
)

// AddressPayload carries a full postal address.
type AddressPayload struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

// ToModel converts the payload into the embedded model type.
func (a AddressPayload) ToModel() models.Address {
	return models.Address{City: a.City, State: a.State, Pincode: a.Pincode}
}

// AddressPatch carries a partial address; nil parts keep their stored value.
type AddressPatch struct {
	City    *string `json:"city" validate:"omitempty,min=1"`
	State   *string `json:"state" validate:"omitempty,min=1"`
	Pincode *string `json:"pincode" validate:"omitempty,min=1"`
}

// RegisterRequest is the student self-registration payload.
type RegisterRequest struct {
	Name                 string          `json:"name" validate:"required"`
	Email                string          `json:"email" validate:"required,email"`
	Password             string          `json:"password" validate:"required,min=6"`
	ClassID              uint            `json:"classId" validate:"required"`
	School               string          `json:"school" validate:"required"`
	Address              *AddressPayload `json:"address" validate:"-"`
	GuardianName         string          `json:"guardianName" validate:"required"`
	GuardianMobileNumber string          `json:"guardianMobileNumber" validate:"required"`
}

// LoginRequest is the credential payload shared by students and admins.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminCreateRequest creates an admin account from the operator CLI.
type AdminCreateRequest struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

// AuthResponse describes an authenticated account.
type AuthResponse struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	ClassID *uint  `json:"classId,omitempty"`
	Token   string `json:"token,omitempty"`
}

// NewAuthResponse converts an account into the public auth payload.
func NewAuthResponse(account models.Account, token string) AuthResponse {
	return AuthResponse{
		ID:      account.ID,
		Name:    account.Name,
		Email:   account.Email,
		Role:    account.Role,
		ClassID: account.ClassID,
		Token:   token,
	}
}

// AuthResult bundles the account and the issued token with its expiry.
type AuthResult struct {
	Account   models.Account
	Token     string
	ExpiresAt time.Time
}
