package telegram

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type fakeAPI struct {
	mu       sync.Mutex
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	sendErr  error

	batches   [][]tgbotapi.Update
	updateErr []error
	offsets   []int

	fileURL string
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, f.sendErr
}

func (f *fakeAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

// GetUpdates отдаёт подготовленные пачки, затем ошибки из updateErr.
func (f *fakeAPI) GetUpdates(cfg tgbotapi.UpdateConfig) ([]tgbotapi.Update, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.offsets = append(f.offsets, cfg.Offset)
	if len(f.batches) > 0 {
		batch := f.batches[0]
		f.batches = f.batches[1:]
		return batch, nil
	}
	if len(f.updateErr) > 0 {
		err := f.updateErr[0]
		if len(f.updateErr) > 1 {
			f.updateErr = f.updateErr[1:]
		}
		return nil, err
	}
	return nil, nil
}

func (f *fakeAPI) GetFileDirectURL(string) (string, error) {
	return f.fileURL, nil
}

type recordingHandler struct {
	mu  sync.Mutex
	ids []int
}

func (h *recordingHandler) HandleUpdate(_ context.Context, upd tgbotapi.Update) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ids = append(h.ids, upd.UpdateID)
}
