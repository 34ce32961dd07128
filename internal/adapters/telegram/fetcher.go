package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"wellness-bot/internal/infra/metrics"
)

// maxFileSize ограничивает размер скачиваемого фото.
const maxFileSize = 20 << 20

// Fetcher скачивает файлы, присланные пользователями.
type Fetcher struct {
	api    botAPI
	client *http.Client
}

// NewFetcher создаёт загрузчик файлов.
func NewFetcher(api botAPI, client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Fetcher{api: api, client: client}
}

// Fetch возвращает содержимое файла по его file_id.
func (f *Fetcher) Fetch(ctx context.Context, fileID string) ([]byte, error) {
	start := time.Now()
	data, err := f.fetch(ctx, fileID)
	metrics.ObserveNetworkRequest("telegram_bot", "download_file", start, err)
	return data, err
}

func (f *Fetcher) fetch(ctx context.Context, fileID string) ([]byte, error) {
	url, err := f.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("получение ссылки на файл: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("загрузка файла: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("загрузка файла: статус %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("чтение файла: %w", err)
	}
	if len(data) > maxFileSize {
		return nil, fmt.Errorf("файл больше %d байт", maxFileSize)
	}
	return data, nil
}
