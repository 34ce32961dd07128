package notify

import (
	"context"
	"errors"
	"sync"

	"wellness-bot/internal/domain"
)

type sentMessage struct {
	chatID int64
	text   string
	kb     domain.Keyboard
}

type fakeSender struct {
	mu     sync.Mutex
	sent   []sentMessage
	failOn map[string]bool
}

func (f *fakeSender) SendText(_ context.Context, chatID int64, text string, kb domain.Keyboard) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMessage{chatID: chatID, text: text, kb: kb})
	if f.failOn[text] {
		return errors.New("telegram: bad gateway")
	}
	return nil
}

func (f *fakeSender) SendPhoto(ctx context.Context, chatID int64, _ string, caption string, kb domain.Keyboard) error {
	return f.SendText(ctx, chatID, caption, kb)
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func (f *fakeSender) messages() []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMessage(nil), f.sent...)
}
