package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/jwalitptl/hospiflow/internal/repository"
)

var _ repository.SessionRepository = (*SessionRepository)(nil)

// SessionRepository keeps session records in process memory. Records vanish
// when the process exits.
type SessionRepository struct {
	mu    sync.Mutex
	cache *cache.Cache
}

func NewSessionRepository(ttl time.Duration) *SessionRepository {
	return &SessionRepository{
		cache: cache.New(ttl, 2*ttl),
	}
}

func (r *SessionRepository) Save(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	r.cache.Set(key, append([]byte(nil), value...), ttl)
	return nil
}

func (r *SessionRepository) Load(ctx context.Context, key string) ([]byte, error) {
	v, ok := r.cache.Get(key)
	if !ok {
		return nil, fmt.Errorf("session %s: %w", key, repository.ErrNotFound)
	}
	return v.([]byte), nil
}

func (r *SessionRepository) Delete(ctx context.Context, key string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.cache.Get(key); !ok {
		return false, nil
	}
	r.cache.Delete(key)
	return true, nil
}

// Len reports how many records are held, expired ones included until the
// janitor runs.
func (r *SessionRepository) Len() int {
	return r.cache.ItemCount()
}

func (r *SessionRepository) Ping(ctx context.Context) error {
	return nil
}

func (r *SessionRepository) Close() error {
	r.cache.Flush()
	return nil
}
