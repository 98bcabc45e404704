package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Address is the postal address captured at registration.
type Address struct {
	City    string `gorm:"size:128" json:"city"`
	State   string `gorm:"size:128" json:"state"`
	Pincode string `gorm:"size:16;index" json:"pincode"`
}

// Complete reports whether every address part is present.
func (a Address) Complete() bool {
	return strings.TrimSpace(a.City) != "" &&
		strings.TrimSpace(a.State) != "" &&
		strings.TrimSpace(a.Pincode) != ""
}

// Student is a self-registered learner assigned to exactly one class.
type Student struct {
	ID                   uint    `gorm:"primaryKey" json:"id"`
	Name                 string  `gorm:"size:255;not null" json:"name"`
	Email                string  `gorm:"size:255;uniqueIndex;not null" json:"email"`
	ClassID              uint    `gorm:"not null;index" json:"classId"`
	School               string  `gorm:"size:255;not null" json:"school"`
	Address              Address `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	GuardianName         string  `gorm:"size:255;not null" json:"guardianName"`
	GuardianMobileNumber string  `gorm:"size:32;not null" json:"guardianMobileNumber"`
	PasswordDigest
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeSave normalises the email and hashes a pending password.
func (s *Student) BeforeSave(tx *gorm.DB) error {
	s.Email = NormalizeEmail(s.Email)
	return s.digest()
}

// Admin manages the curriculum. Admins are created out of band.
type Admin struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:255;not null" json:"name"`
	Email string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordDigest
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeSave normalises the email and hashes a pending password.
func (a *Admin) BeforeSave(tx *gorm.DB) error {
	a.Email = NormalizeEmail(a.Email)
	return a.digest()
}

// NormalizeEmail lower-cases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
