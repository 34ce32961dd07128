package domain

import (
	"context"
	"time"
)

// Sender доставляет исходящие сообщения в транспорт.
type Sender interface {
	SendText(ctx context.Context, chatID int64, text string, kb Keyboard) error
	SendPhoto(ctx context.Context, chatID int64, path, caption string, kb Keyboard) error
}

// SessionStore хранит сессии анкеты по chat_id.
type SessionStore interface {
	Get(ctx context.Context, chatID int64) (Session, error)
	Put(ctx context.Context, session Session) error
}

// ResultArchive сохраняет завершённые анкеты.
type ResultArchive interface {
	SaveResult(ctx context.Context, chatID int64, answers map[string]string, result ScoreResult) error
}

// FoodClassifier распознаёт блюдо на изображении.
type FoodClassifier interface {
	Classify(ctx context.Context, image []byte) (FoodAnalysis, error)
}

// FileFetcher скачивает вложение по идентификатору файла.
type FileFetcher interface {
	Fetch(ctx context.Context, fileID string) ([]byte, error)
}

// Cache выполняет действие не более одного раза на ключ в пределах TTL.
type Cache interface {
	Once(key string, ttl time.Duration, fn func() error) error
}
