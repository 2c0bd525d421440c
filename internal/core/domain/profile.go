package domain

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	ErrProfileNameEmpty   = errors.New("profile name cannot be empty")
	ErrProfileNameTooLong = errors.New("profile name is too long (max 40 chars)")
	ErrInvalidBirthDate   = errors.New("invalid date of birth (must be DD/MM/YYYY)")
	ErrInvalidTheme       = errors.New("invalid theme (must be light, dark or system)")
)

var birthDateRegex = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)

const MaxProfileNameLen = 40

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"

	DefaultTheme = ThemeDark
)

func (t Theme) Valid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	}
	return false
}

// UserProfile is the in-app identity shown on the profile screen. The image is
// an opaque reference chosen by the client.
type UserProfile struct {
	Name         string `json:"name"`
	DOB          string `json:"dob"`
	ProfileImage string `json:"profileImage,omitempty"`
}

func NewUserProfile(name, dob, image string) (*UserProfile, error) {
	p := &UserProfile{
		Name:         strings.TrimSpace(name),
		DOB:          strings.TrimSpace(dob),
		ProfileImage: image,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p UserProfile) Validate() error {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return ErrProfileNameEmpty
	}
	if utf8.RuneCountInString(name) > MaxProfileNameLen {
		return ErrProfileNameTooLong
	}
	if !birthDateRegex.MatchString(p.DOB) {
		return ErrInvalidBirthDate
	}
	return nil
}
