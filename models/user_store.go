package models

import (
	"errors"
	"fmt"
	"net/mail"

	"gorm.io/gorm"

	"plume/utils"
)

// UserStore persists user records and answers the lookups registration and
// login depend on.
type UserStore struct {
	db *gorm.DB
}

// NewUserStore creates a UserStore backed by the given database.
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// Register validates the input, enforces username/email uniqueness and inserts
// the account with a bcrypt password hash. Validation failures come back as a
// single ValidationErrors value carrying every violated rule.
func (s *UserStore) Register(in RegistrationInput) (*User, error) {
	in = NormalizeRegistration(in)
	errs := ValidateRegistration(in)

	// Uniqueness checks only run for well-formed values, so a garbage username
	// does not produce both a format and a "taken" complaint.
	if UsernameAcceptable(in.Username) {
		taken, err := s.UsernameExists(in.Username)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		if taken {
			errs = append(errs, "that username is already taken")
		}
	}
	if _, mailErr := mail.ParseAddress(in.Email); mailErr == nil {
		used, err := s.EmailExists(in.Email)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		if used {
			errs = append(errs, "that email is already in use")
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	user := User{Username: in.Username, Email: in.Email, PasswordHash: hash}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return &user, nil
}

// Authenticate resolves a username/password pair to the account it belongs to.
// Every failure mode maps to ErrInvalidCredentials so callers cannot tell a
// missing account from a wrong password.
func (s *UserStore) Authenticate(username, password string) (*User, error) {
	var user User
	err := s.db.Where("username = ?", foldUsername(username)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !utils.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// FindByUsername resolves a username to the account record.
func (s *UserStore) FindByUsername(username string) (*User, error) {
	var user User
	err := s.db.Where("username = ?", foldUsername(username)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return &user, nil
}

// UsernameExists reports whether a username is already registered.
func (s *UserStore) UsernameExists(username string) (bool, error) {
	var count int64
	err := s.db.Model(&User{}).Where("username = ?", foldUsername(username)).Count(&count).Error
	return count > 0, err
}

// EmailExists reports whether an email is already registered.
func (s *UserStore) EmailExists(email string) (bool, error) {
	var count int64
	err := s.db.Model(&User{}).Where("email = ?", foldEmail(email)).Count(&count).Error
	return count > 0, err
}

func foldUsername(username string) string {
	return NormalizeRegistration(RegistrationInput{Username: username}).Username
}

func foldEmail(email string) string {
	return NormalizeRegistration(RegistrationInput{Email: email}).Email
}
