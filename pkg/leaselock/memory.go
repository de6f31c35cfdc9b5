package leaselock

import (
	"context"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Memory is a process-local Locker for single-instance deployments and
// tests.
type Memory struct {
	mu    sync.Mutex
	now   func() time.Time
	locks map[string]Lease
}

func NewMemory() *Memory {
	return &Memory{now: time.Now, locks: make(map[string]Lease)}
}

func (m *Memory) TryAcquire(ctx context.Context, key string, ttl time.Duration) (Lease, error) {
	if key == "" {
		return Lease{}, errEmptyKey
	}
	if err := ctx.Err(); err != nil {
		return Lease{}, err
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if held, ok := m.locks[key]; ok && !held.ExpiresAt.Before(now) {
		return Lease{}, ErrBusy
	}

	token, err := gonanoid.New()
	if err != nil {
		return Lease{}, err
	}
	l := Lease{Key: key, Token: token, ExpiresAt: now.Add(ttl)}
	m.locks[key] = l
	return l, nil
}

func (m *Memory) Release(ctx context.Context, l Lease) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if held, ok := m.locks[l.Key]; ok && held.Token == l.Token {
		delete(m.locks, l.Key)
	}
	return nil
}
