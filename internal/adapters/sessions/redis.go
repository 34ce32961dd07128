package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"wellness-bot/internal/domain"
	"wellness-bot/internal/infra/metrics"
)

const keyPrefix = "wellness:session:"

// Redis хранит сессии в Redis в виде JSON с TTL.
type Redis struct {
	client redis.Cmdable
	ttl    time.Duration
}

var _ domain.SessionStore = (*Redis)(nil)

// NewRedis создаёт хранилище. ttl <= 0 означает хранение без срока.
func NewRedis(client redis.Cmdable, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func sessionKey(chatID int64) string {
	return keyPrefix + strconv.FormatInt(chatID, 10)
}

// Get читает сессию чата.
func (r *Redis) Get(ctx context.Context, chatID int64) (domain.Session, error) {
	start := time.Now()
	raw, err := r.client.Get(ctx, sessionKey(chatID)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.ObserveNetworkRequest("redis", "session_get", start, nil)
		return domain.Session{}, domain.ErrSessionNotFound
	}
	metrics.ObserveNetworkRequest("redis", "session_get", start, err)
	if err != nil {
		return domain.Session{}, fmt.Errorf("redis get session: %w", err)
	}
	var session domain.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return domain.Session{}, fmt.Errorf("decode session: %w", err)
	}
	if session.Answers == nil {
		session.Answers = make(map[string]string)
	}
	return session, nil
}

// Put сохраняет сессию и продлевает TTL.
func (r *Redis) Put(ctx context.Context, session domain.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	ttl := r.ttl
	if ttl < 0 {
		ttl = 0
	}
	start := time.Now()
	err = r.client.Set(ctx, sessionKey(session.ChatID), raw, ttl).Err()
	metrics.ObserveNetworkRequest("redis", "session_put", start, err)
	if err != nil {
		return fmt.Errorf("redis put session: %w", err)
	}
	return nil
}
