package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/redis/go-redis/v9"
)

var _ domain.SnapshotRepository = (*CachedSnapshotRepository)(nil)

const snapshotCacheTTL = 30 * time.Minute

// CachedSnapshotRepository is a read-through Redis cache in front of another
// snapshot repository. Writes go to the backing store first and then refresh
// the cached copy; cache failures are logged and never surface.
type CachedSnapshotRepository struct {
	next  domain.SnapshotRepository
	cache *redis.Client
}

func NewCachedSnapshotRepository(next domain.SnapshotRepository, cache *redis.Client) *CachedSnapshotRepository {
	return &CachedSnapshotRepository{
		next:  next,
		cache: cache,
	}
}

func (r *CachedSnapshotRepository) cacheKey(userID string) string {
	return fmt.Sprintf("snapshot:%s", userID)
}

func (r *CachedSnapshotRepository) invalidate(ctx context.Context, userID string) {
	if err := r.cache.Del(ctx, r.cacheKey(userID)).Err(); err != nil {
		log.Printf("[CACHE] Failed to invalidate snapshot for user %s: %v", userID, err)
	}
}

func (r *CachedSnapshotRepository) store(ctx context.Context, userID string, data *domain.AppData) {
	raw, err := data.Encode()
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, r.cacheKey(userID), raw, snapshotCacheTTL).Err(); err != nil {
		log.Printf("[CACHE] Redis set error: %v", err)
	}
}

func (r *CachedSnapshotRepository) Load(ctx context.Context, userID string) (*domain.AppData, error) {
	key := r.cacheKey(userID)

	val, err := r.cache.Get(ctx, key).Bytes()
	if err == nil {
		if data, err := domain.DecodeAppData(val); err == nil {
			return data, nil
		}

		log.Printf("[CACHE] Corrupted snapshot for user %s, cleaning up key", userID)
		r.cache.Del(ctx, key)
	} else if err != redis.Nil {
		log.Printf("[CACHE] Redis read error: %v", err)
	}

	data, err := r.next.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	r.store(ctx, userID, data)
	return data, nil
}

func (r *CachedSnapshotRepository) Save(ctx context.Context, userID string, data *domain.AppData) error {
	if err := r.next.Save(ctx, userID, data); err != nil {
		r.invalidate(ctx, userID)
		return err
	}
	r.store(ctx, userID, data)
	return nil
}

func (r *CachedSnapshotRepository) Delete(ctx context.Context, userID string) error {
	defer r.invalidate(ctx, userID)
	return r.next.Delete(ctx, userID)
}
