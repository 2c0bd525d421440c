package domain

import (
	"context"
	"errors"
)

var (
	ErrHabitNotFound    = errors.New("habit not found")
	ErrDuplicateHabitID = errors.New("duplicate habit id")
	ErrSnapshotNotFound = errors.New("snapshot not found")
	ErrSnapshotCorrupt  = errors.New("snapshot is corrupt")
	ErrUnauthorized     = errors.New("unauthorized")
)

type SnapshotRepository interface {
	// Load returns the persisted blob of a user, ErrSnapshotNotFound when there
	// is none, or an error wrapping ErrSnapshotCorrupt when it cannot be decoded.
	Load(ctx context.Context, userID string) (*AppData, error)
	// Save replaces the persisted blob of a user.
	Save(ctx context.Context, userID string, data *AppData) error
	// Delete performs the full data reset.
	Delete(ctx context.Context, userID string) error
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}
