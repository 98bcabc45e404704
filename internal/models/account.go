package models

import (
	"golang.org/x/crypto/bcrypt"
)

// Account roles.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// PasswordDigest stores a bcrypt hash. Plaintext set through SetPassword is
// hashed by the owning model's BeforeSave hook and never serialised.
type PasswordDigest struct {
	Password string `gorm:"column:password;size:255;not null" json:"-"`
	pending  string
}

// SetPassword stages a plaintext password for hashing on the next save.
func (p *PasswordDigest) SetPassword(plain string) {
	p.pending = plain
}

// CheckPassword compares plain against the stored hash.
func (p PasswordDigest) CheckPassword(plain string) bool {
	if p.Password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(p.Password), []byte(plain)) == nil
}

func (p *PasswordDigest) digest() error {
	if p.pending == "" {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(p.pending), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.Password = string(hash)
	p.pending = ""
	return nil
}

// Account is the role-tagged view over the student and admin tables used by
// login and session resolution. Exactly one of Student or Admin is set.
type Account struct {
	ID        uint
	Role      string
	Name      string
	Email     string
	ClassID   *uint
	ClassName string
	Student   *Student
	Admin     *Admin
}

// StudentAccount wraps a student record.
func StudentAccount(student Student) Account {
	classID := student.ClassID
	return Account{
		ID:      student.ID,
		Role:    RoleStudent,
		Name:    student.Name,
		Email:   student.Email,
		ClassID: &classID,
		Student: &student,
	}
}

// AdminAccount wraps an admin record.
func AdminAccount(admin Admin) Account {
	return Account{
		ID:    admin.ID,
		Role:  RoleAdmin,
		Name:  admin.Name,
		Email: admin.Email,
		Admin: &admin,
	}
}

// CheckPassword verifies plain against whichever record backs the account.
func (a Account) CheckPassword(plain string) bool {
	switch {
	case a.Student != nil:
		return a.Student.CheckPassword(plain)
	case a.Admin != nil:
		return a.Admin.CheckPassword(plain)
	default:
		return false
	}
}

// IsStudent reports whether the account belongs to a student.
func (a Account) IsStudent() bool {
	return a.Role == RoleStudent
}
