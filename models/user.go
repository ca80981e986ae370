package models

import (
	"crypto/md5"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"
)

// User represents a registered account. Passwords are stored as bcrypt hashes only.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:30;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"-"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PublicProfile is the only shape of a user ever exposed to other users.
type PublicProfile struct {
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// AvatarURL derives the gravatar address from the account email.
func (u *User) AvatarURL() string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(u.Email))))
	return fmt.Sprintf("https://gravatar.com/avatar/%x?s=128", sum)
}

// Public projects the user down to the fields safe to show anyone.
func (u *User) Public() PublicProfile {
	return PublicProfile{Username: u.Username, Avatar: u.AvatarURL()}
}

// RegistrationInput is the raw form submission for a new account.
type RegistrationInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

var alphanumeric = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// NormalizeRegistration trims and case-folds the input without validating it.
func NormalizeRegistration(in RegistrationInput) RegistrationInput {
	return RegistrationInput{
		Username: strings.ToLower(strings.TrimSpace(in.Username)),
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Password: in.Password,
	}
}

// ValidateRegistration checks a normalized input and accumulates every violated
// rule. An empty result means the input is acceptable.
func ValidateRegistration(in RegistrationInput) ValidationErrors {
	var errs ValidationErrors

	if in.Username == "" {
		errs = append(errs, "you must provide a username")
	}
	if in.Username != "" && !alphanumeric.MatchString(in.Username) {
		errs = append(errs, "username can only contain letters and numbers")
	}
	if len(in.Username) > 0 && len(in.Username) < 3 {
		errs = append(errs, "username must be at least 3 characters")
	}
	if len(in.Username) > 30 {
		errs = append(errs, "username cannot exceed 30 characters")
	}

	if _, err := mail.ParseAddress(in.Email); err != nil {
		errs = append(errs, "you must provide a valid email")
	}

	if in.Password == "" {
		errs = append(errs, "you must provide a password")
	}
	if len(in.Password) > 0 && len(in.Password) < 12 {
		errs = append(errs, "password must be at least 12 characters")
	}
	if len(in.Password) > 50 {
		errs = append(errs, "password cannot exceed 50 characters")
	}

	return errs
}

// UsernameAcceptable reports whether the username alone passes format rules,
// gating the uniqueness lookup during registration.
func UsernameAcceptable(username string) bool {
	return len(username) >= 3 && len(username) <= 30 && alphanumeric.MatchString(username)
}
