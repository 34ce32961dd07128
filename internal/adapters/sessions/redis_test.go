package sessions

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"wellness-bot/internal/domain"
)

// fakeRedis реализует только те команды, которыми пользуется хранилище.
type fakeRedis struct {
	redis.Cmdable

	mu   sync.Mutex
	data map[string]string
	ttls map[string]time.Duration
	err  error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: make(map[string]string), ttls: make(map[string]time.Duration)}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func TestRedisRoundTrip(t *testing.T) {
	ctx := context.Background()
	client := newFakeRedis()
	store := NewRedis(client, 30*time.Minute)

	session := domain.NewSession(7, domain.StateInQuestion)
	session.QuestionIndex = 5
	session.Answers["height_cm"] = "170"
	session.UpdatedAt = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	if err := store.Put(ctx, session); err != nil {
		t.Fatalf("put: %v", err)
	}

	if _, ok := client.data["wellness:session:7"]; !ok {
		t.Fatalf("сессия записана не под ожидаемым ключом: %v", client.data)
	}
	if ttl := client.ttls["wellness:session:7"]; ttl != 30*time.Minute {
		t.Fatalf("ожидали TTL 30m, получили %s", ttl)
	}

	got, err := store.Get(ctx, 7)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.State != domain.StateInQuestion || got.QuestionIndex != 5 || got.Answers["height_cm"] != "170" {
		t.Fatalf("сессия прочитана неверно: %+v", got)
	}
	if !got.UpdatedAt.Equal(session.UpdatedAt) {
		t.Fatalf("ожидали UpdatedAt %s, получили %s", session.UpdatedAt, got.UpdatedAt)
	}
}

func TestRedisGetMissing(t *testing.T) {
	store := NewRedis(newFakeRedis(), time.Hour)
	if _, err := store.Get(context.Background(), 1); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("ожидали ErrSessionNotFound, получили %v", err)
	}
}

func TestRedisBackendError(t *testing.T) {
	boom := errors.New("connection refused")
	client := newFakeRedis()
	client.err = boom
	store := NewRedis(client, time.Hour)

	_, err := store.Get(context.Background(), 1)
	if !errors.Is(err, boom) {
		t.Fatalf("ожидали ошибку Redis, получили %v", err)
	}
	if errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("ошибка Redis не должна выглядеть как отсутствие сессии")
	}
	if err := store.Put(context.Background(), domain.NewSession(1, domain.StateMenu)); !errors.Is(err, boom) {
		t.Fatalf("ожидали ошибку Redis при записи, получили %v", err)
	}
}

func TestRedisNegativeTTLStoresWithoutExpiry(t *testing.T) {
	client := newFakeRedis()
	store := NewRedis(client, -time.Second)
	if err := store.Put(context.Background(), domain.NewSession(3, domain.StateMenu)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if ttl := client.ttls["wellness:session:3"]; ttl != 0 {
		t.Fatalf("ожидали хранение без срока, получили TTL %s", ttl)
	}
}

func TestRedisDecode(t *testing.T) {
	client := newFakeRedis()
	client.data["wellness:session:4"] = `{"chat_id":4,"state":"final","answers":null}`
	client.data["wellness:session:5"] = `{не json`
	store := NewRedis(client, time.Hour)

	got, err := store.Get(context.Background(), 4)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Answers == nil {
		t.Fatalf("пустые ответы должны читаться как пустая карта")
	}
	if _, err := store.Get(context.Background(), 5); err == nil || errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("ожидали ошибку декодирования, получили %v", err)
	}
}
