package repository

import (
	"context"
	"sync"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

var (
	_ domain.SnapshotRepository = (*InMemorySnapshotRepository)(nil)
	_ domain.UserRepository     = (*InMemoryUserRepository)(nil)
)

// InMemorySnapshotRepository keeps encoded snapshots so callers never share
// memory with the store.
type InMemorySnapshotRepository struct {
	store map[string][]byte

	mu sync.RWMutex
}

func NewInMemorySnapshotRepository() *InMemorySnapshotRepository {
	return &InMemorySnapshotRepository{
		store: make(map[string][]byte),
	}
}

func (r *InMemorySnapshotRepository) Load(ctx context.Context, userID string) (*domain.AppData, error) {
	r.mu.RLock()
	raw, ok := r.store[userID]
	r.mu.RUnlock()

	if !ok {
		return nil, domain.ErrSnapshotNotFound
	}
	return domain.DecodeAppData(raw)
}

func (r *InMemorySnapshotRepository) Save(ctx context.Context, userID string, data *domain.AppData) error {
	raw, err := data.Encode()
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[userID] = raw
	return nil
}

func (r *InMemorySnapshotRepository) Delete(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[userID]; !ok {
		return domain.ErrSnapshotNotFound
	}

	delete(r.store, userID)
	return nil
}

type InMemoryUserRepository struct {
	byID    map[string]domain.User
	byEmail map[string]string

	mu sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		byID:    make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[user.Email]; taken {
		return domain.ErrEmailAlreadyExists
	}

	r.byID[user.ID] = *user
	r.byEmail[user.Email] = user.ID
	return nil
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	user := r.byID[id]
	return &user, nil
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}
