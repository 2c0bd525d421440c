package services

import (
	"context"
	"time"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

// ProfileService edits the in-app profile and theme stored in the user's
// state blob.
type ProfileService struct {
	store *StateStore
}

func NewProfileService(store *StateStore) *ProfileService {
	return &ProfileService{
		store: store,
	}
}

type UpdateProfileInput struct {
	UserID       string
	Name         string
	DOB          string
	ProfileImage string
}

// Profile is what the profile screen shows. UserProfile is nil until the user
// has filled it in.
type Profile struct {
	UserProfile *domain.UserProfile `json:"userProfile"`
	Theme       domain.Theme        `json:"theme"`
}

func (s *ProfileService) Get(ctx context.Context, userID string) (Profile, error) {
	data, _, err := s.store.Snapshot(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	return Profile{UserProfile: data.UserProfile, Theme: data.Theme}, nil
}

func (s *ProfileService) Update(ctx context.Context, input UpdateProfileInput) (Profile, error) {
	profile, err := domain.NewUserProfile(input.Name, input.DOB, input.ProfileImage)
	if err != nil {
		return Profile{}, err
	}

	var out Profile
	err = s.store.Update(ctx, input.UserID, func(data *domain.AppData, _ time.Time) error {
		data.UserProfile = profile
		out = Profile{UserProfile: profile, Theme: data.Theme}
		return nil
	})
	if err != nil {
		return Profile{}, err
	}
	return out, nil
}

func (s *ProfileService) SetTheme(ctx context.Context, userID string, theme domain.Theme) (Profile, error) {
	if !theme.Valid() {
		return Profile{}, domain.ErrInvalidTheme
	}

	var out Profile
	err := s.store.Update(ctx, userID, func(data *domain.AppData, _ time.Time) error {
		data.Theme = theme
		out = Profile{UserProfile: data.UserProfile, Theme: theme}
		return nil
	})
	if err != nil {
		return Profile{}, err
	}
	return out, nil
}
