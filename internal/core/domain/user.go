package domain

import (
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
	ErrDisplayNameTooLong = errors.New("display name is too long (max 40 chars)")
)

const (
	MinPasswordLen    = 8
	MaxDisplayNameLen = 40
	bcryptCost        = 12
)

type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	DisplayName  string    `json:"display_name" db:"display_name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

func NewUser(id, email, displayName string) (*User, error) {
	email = strings.TrimSpace(email)
	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}

	now := time.Now().UTC()
	user := &User{
		ID:        id,
		Email:     strings.ToLower(email),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := user.SetDisplayName(displayName); err != nil {
		return nil, err
	}
	return user, nil
}

// SetDisplayName falls back to the local part of the e-mail when name is
// blank, cut to MaxDisplayNameLen runes. Only a supplied name is validated.
func (u *User) SetDisplayName(name string) error {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		local, _, _ := strings.Cut(u.Email, "@")
		if runes := []rune(local); len(runes) > MaxDisplayNameLen {
			local = string(runes[:MaxDisplayNameLen])
		}
		name = local
	case utf8.RuneCountInString(name) > MaxDisplayNameLen:
		return ErrDisplayNameTooLong
	}
	u.DisplayName = name
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (u *User) SetPassword(plainPassword string) error {
	if utf8.RuneCountInString(plainPassword) < MinPasswordLen {
		return ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plainPassword), bcryptCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (u *User) CheckPassword(plainPassword string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plainPassword)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

func isValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
