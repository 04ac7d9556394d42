package domain

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

const (
	NameMinLen     = 2
	NameMaxLen     = 50
	PasswordMinLen = 6
	EmailMaxLen    = 255
)

// User carries the stored password hash; it never leaves the adapter layer
// in serialized form.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

func (in *RegisterInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
}

func (in RegisterInput) Validate() error {
	verr := &ValidationError{}
	validateName(in.Name, verr)
	if !emailWellFormed(in.Email) {
		verr.Add("email", "Please provide a valid email")
	}
	validatePassword(in.Password, "password", "Password", verr)
	return verr.OrNil()
}

type LoginInput struct {
	Email    string
	Password string
}

func (in *LoginInput) Normalize() {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
}

func (in LoginInput) Validate() error {
	verr := &ValidationError{}
	if !emailWellFormed(in.Email) {
		verr.Add("email", "Please provide a valid email")
	}
	if in.Password == "" {
		verr.Add("password", "Password is required")
	}
	return verr.OrNil()
}

// UpdateProfileInput renames the account and/or moves it to a new email
// address. Both fields are always submitted; the service only re-checks
// email uniqueness when the address actually changes.
type UpdateProfileInput struct {
	Name  string
	Email string
}

func (in *UpdateProfileInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
}

func (in UpdateProfileInput) Validate() error {
	verr := &ValidationError{}
	validateName(in.Name, verr)
	if !emailWellFormed(in.Email) {
		verr.Add("email", "Please provide a valid email")
	}
	return verr.OrNil()
}

type UpdatePasswordInput struct {
	CurrentPassword string
	NewPassword     string
}

func (in UpdatePasswordInput) Validate() error {
	verr := &ValidationError{}
	if in.CurrentPassword == "" {
		verr.Add("currentPassword", "Current password is required")
	}
	validatePassword(in.NewPassword, "newPassword", "New password", verr)
	return verr.OrNil()
}

func validateName(name string, verr *ValidationError) {
	if count := utf8.RuneCountInString(name); count < NameMinLen || count > NameMaxLen {
		verr.Add("name", fmt.Sprintf("Name must be between %d and %d characters", NameMinLen, NameMaxLen))
	} else if !nameWellFormed(name) {
		verr.Add("name", "Name can only contain letters and spaces")
	}
}

func validatePassword(password, field, label string, verr *ValidationError) {
	if utf8.RuneCountInString(password) < PasswordMinLen {
		verr.Add(field, fmt.Sprintf("%s must be at least %d characters", label, PasswordMinLen))
	} else if !passwordWellFormed(password) {
		verr.Add(field, fmt.Sprintf("%s must contain at least one lowercase letter, one uppercase letter, and one number", label))
	}
}

func nameWellFormed(name string) bool {
	for _, r := range name {
		if !unicode.IsLetter(r) && r != ' ' {
			return false
		}
	}
	return true
}

func emailWellFormed(email string) bool {
	if email == "" || len(email) > EmailMaxLen {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func passwordWellFormed(password string) bool {
	var hasLower, hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLower && hasUpper && hasDigit
}
