package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type fakeRedis struct {
	redis.Cmdable

	mu      sync.Mutex
	keys    map[string]time.Duration
	deleted []string
	err     error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{keys: make(map[string]time.Duration)}
}

func (f *fakeRedis) SetNX(_ context.Context, key string, _ interface{}, expiration time.Duration) *redis.BoolCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return redis.NewBoolResult(false, f.err)
	}
	if _, ok := f.keys[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	f.keys[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, key := range keys {
		if _, ok := f.keys[key]; ok {
			delete(f.keys, key)
			n++
		}
		f.deleted = append(f.deleted, key)
	}
	return redis.NewIntResult(n, nil)
}

func TestOnceRunsOnlyFirstTime(t *testing.T) {
	client := newFakeRedis()
	c := NewRedis(client, "wellness:")

	calls := 0
	fn := func() error { calls++; return nil }
	for i := 0; i < 3; i++ {
		if err := c.Once("update:1", time.Hour, fn); err != nil {
			t.Fatalf("once: %v", err)
		}
	}
	if calls != 1 {
		t.Fatalf("ожидали один вызов, получили %d", calls)
	}
	if ttl, ok := client.keys["wellness:update:1"]; !ok || ttl != time.Hour {
		t.Fatalf("ключ с префиксом и TTL не записан: %v", client.keys)
	}
}

func TestOnceReleasesKeyOnError(t *testing.T) {
	client := newFakeRedis()
	c := NewRedis(client, "wellness:")
	boom := errors.New("handler failed")

	if err := c.Once("update:2", time.Hour, func() error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("ожидали ошибку обработчика, получили %v", err)
	}
	if len(client.deleted) != 1 || client.deleted[0] != "wellness:update:2" {
		t.Fatalf("ключ должен сниматься после ошибки, удалены %v", client.deleted)
	}

	retried := false
	if err := c.Once("update:2", time.Hour, func() error { retried = true; return nil }); err != nil {
		t.Fatalf("once: %v", err)
	}
	if !retried {
		t.Fatalf("после ошибки повтор должен выполняться")
	}
}

func TestOnceBackendError(t *testing.T) {
	client := newFakeRedis()
	client.err = errors.New("connection refused")
	c := NewRedis(client, "")

	called := false
	if err := c.Once("update:3", time.Hour, func() error { called = true; return nil }); !errors.Is(err, client.err) {
		t.Fatalf("ожидали ошибку Redis, получили %v", err)
	}
	if called {
		t.Fatalf("при ошибке Redis функция не вызывается")
	}
}
