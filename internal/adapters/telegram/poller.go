package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"wellness-bot/internal/domain"
	"wellness-bot/internal/infra/metrics"
)

// UpdateHandler обрабатывает входящие апдейты.
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, upd tgbotapi.Update)
}

const pollRetryDelay = 3 * time.Second

// Poller получает апдейты через long polling.
type Poller struct {
	api        botAPI
	handler    UpdateHandler
	log        zerolog.Logger
	timeout    int
	retryDelay time.Duration
}

// NewPoller создаёт поллер. timeout задаётся в секундах для getUpdates.
func NewPoller(api botAPI, handler UpdateHandler, log zerolog.Logger, timeout int) *Poller {
	return &Poller{api: api, handler: handler, log: log, timeout: timeout, retryDelay: pollRetryDelay}
}

// Run удаляет вебхук вместе с накопленными апдейтами и читает новые до
// отмены контекста. Конфликт с другим экземпляром бота возвращается как
// domain.ErrInstanceConflict.
func (p *Poller) Run(ctx context.Context) error {
	if _, err := p.api.Request(tgbotapi.DeleteWebhookConfig{DropPendingUpdates: true}); err != nil {
		if isConflict(err) {
			return fmt.Errorf("%w: %v", domain.ErrInstanceConflict, err)
		}
		p.log.Error().Err(err).Msg("telegram: не удалось удалить вебхук")
	}

	offset := 0
	for {
		if ctx.Err() != nil {
			return nil
		}
		cfg := tgbotapi.NewUpdate(offset)
		cfg.Timeout = p.timeout

		start := time.Now()
		updates, err := p.api.GetUpdates(cfg)
		metrics.ObserveNetworkRequest("telegram_bot", "get_updates", start, err)
		if err != nil {
			if isConflict(err) {
				p.log.Error().Err(err).Msg("telegram: другой экземпляр бота уже получает апдейты, останавливаемся")
				return fmt.Errorf("%w: %v", domain.ErrInstanceConflict, err)
			}
			p.log.Warn().Err(err).Msg("telegram: getUpdates завершился ошибкой")
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(p.retryDelay):
			}
			continue
		}

		for _, upd := range updates {
			if upd.UpdateID >= offset {
				offset = upd.UpdateID + 1
			}
			p.handler.HandleUpdate(ctx, upd)
		}
	}
}

func isConflict(err error) bool {
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusConflict
	}
	var apiErrValue tgbotapi.Error
	if errors.As(err, &apiErrValue) {
		return apiErrValue.Code == http.StatusConflict
	}
	return strings.Contains(err.Error(), "Conflict: terminated by other getUpdates request")
}
