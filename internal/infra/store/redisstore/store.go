// File: internal/infra/store/redisstore/store.go
package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"ai-interview-simulator/internal/domain"
	"ai-interview-simulator/internal/domain/model"
	"ai-interview-simulator/internal/domain/ports/repository"
)

var _ repository.SessionStore = (*Store)(nil)

const (
	sessKeyPrefix = "interview:sess:"
	lockKeyPrefix = "interview:lock:"
	lockTTL       = 5 * time.Second
)

// Store is the Redis-backed SessionStore. Sessions are JSON documents;
// per-id update atomicity comes from a SETNX lock around the
// read-mutate-write cycle. Same contract as the memory store, usable when
// several replicas share one session space.
type Store struct {
	cli  *redis.Client
	lock *locker
	ttl  time.Duration // 0 keeps sessions for the store's lifetime
}

func NewStore(c *Client, ttl time.Duration) *Store {
	return &Store{cli: c.cli, lock: &locker{cli: c.cli}, ttl: ttl}
}

func (st *Store) Create(ctx context.Context, s *model.InterviewSession) error {
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	ok, err := st.cli.SetNX(ctx, sessKeyPrefix+s.ID, b, st.ttl).Result()
	if err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	if !ok {
		return domain.ErrAlreadyExists
	}
	return nil
}

func (st *Store) Get(ctx context.Context, id string) (*model.InterviewSession, error) {
	return st.read(ctx, id)
}

func (st *Store) Update(ctx context.Context, id string, mutate func(*model.InterviewSession) error) (*model.InterviewSession, error) {
	lockKey := lockKeyPrefix + id
	token, err := st.lock.tryLock(ctx, lockKey, lockTTL)
	if err != nil {
		return nil, fmt.Errorf("lock session: %w", err)
	}
	defer func() { _ = st.lock.unlock(ctx, lockKey, token) }()

	s, err := st.read(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := mutate(s); err != nil {
		return nil, err
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal session: %w", err)
	}
	if err := st.cli.Set(ctx, sessKeyPrefix+id, b, st.ttl).Err(); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return s.Clone(), nil
}

func (st *Store) read(ctx context.Context, id string) (*model.InterviewSession, error) {
	raw, err := st.cli.Get(ctx, sessKeyPrefix+id).Result()
	if err == redis.Nil {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	var s model.InterviewSession
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &s, nil
}
