package survey

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"wellness-bot/internal/domain"
)

type sentMessage struct {
	chatID int64
	text   string
	photo  string
	kb     domain.Keyboard
}

type fakeSender struct {
	mu        sync.Mutex
	sent      []sentMessage
	failPhoto bool
}

func (f *fakeSender) SendText(_ context.Context, chatID int64, text string, kb domain.Keyboard) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMessage{chatID: chatID, text: text, kb: kb})
	return nil
}

func (f *fakeSender) SendPhoto(_ context.Context, chatID int64, path, caption string, kb domain.Keyboard) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failPhoto {
		return errors.New("telegram: photo rejected")
	}
	f.sent = append(f.sent, sentMessage{chatID: chatID, text: caption, photo: path, kb: kb})
	return nil
}

func (f *fakeSender) messages() []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMessage(nil), f.sent...)
}

func (f *fakeSender) last() sentMessage {
	msgs := f.messages()
	if len(msgs) == 0 {
		return sentMessage{}
	}
	return msgs[len(msgs)-1]
}

type stubSessions struct {
	mu    sync.Mutex
	items map[int64]domain.Session
}

func newStubSessions() *stubSessions {
	return &stubSessions{items: make(map[int64]domain.Session)}
}

func (s *stubSessions) Get(_ context.Context, chatID int64) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.items[chatID]
	if !ok {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	session.Answers = session.SnapshotAnswers()
	return session, nil
}

func (s *stubSessions) Put(_ context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session.Answers = session.SnapshotAnswers()
	s.items[session.ChatID] = session
	return nil
}

func (s *stubSessions) mustGet(t *testing.T, chatID int64) domain.Session {
	t.Helper()
	session, err := s.Get(context.Background(), chatID)
	if err != nil {
		t.Fatalf("сессия %d не найдена: %v", chatID, err)
	}
	return session
}

type stubArchive struct {
	mu      sync.Mutex
	results []domain.ScoreResult
}

func (a *stubArchive) SaveResult(_ context.Context, _ int64, _ map[string]string, result domain.ScoreResult) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.results = append(a.results, result)
	return nil
}

func writeWelcomePhoto(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "welcome.jpg")
	if err := os.WriteFile(path, []byte{0xff, 0xd8, 0xff}, 0o600); err != nil {
		t.Fatalf("write photo: %v", err)
	}
	return path
}
