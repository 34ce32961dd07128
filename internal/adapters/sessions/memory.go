package sessions

import (
	"context"
	"sync"

	"wellness-bot/internal/domain"
)

// Memory хранит сессии в памяти процесса.
type Memory struct {
	mu    sync.RWMutex
	items map[int64]domain.Session
}

var _ domain.SessionStore = (*Memory)(nil)

// NewMemory создаёт пустое хранилище.
func NewMemory() *Memory {
	return &Memory{items: make(map[int64]domain.Session)}
}

// Get возвращает копию сессии.
func (m *Memory) Get(_ context.Context, chatID int64) (domain.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.items[chatID]
	if !ok {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	session.Answers = session.SnapshotAnswers()
	return session, nil
}

// Put заменяет сессию чата.
func (m *Memory) Put(_ context.Context, session domain.Session) error {
	session.Answers = session.SnapshotAnswers()
	m.mu.Lock()
	m.items[session.ChatID] = session
	m.mu.Unlock()
	return nil
}
