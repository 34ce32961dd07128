package telegram

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"wellness-bot/internal/domain"
	"wellness-bot/internal/infra/metrics"
)

// Sender отправляет сообщения через Bot API.
type Sender struct {
	api botAPI
	log zerolog.Logger
}

var _ domain.Sender = (*Sender)(nil)

// NewSender создаёт отправителя.
func NewSender(api botAPI, log zerolog.Logger) *Sender {
	return &Sender{api: api, log: log}
}

// SendText отправляет текст, разбивая его по лимиту Telegram.
// Клавиатура прикрепляется к первой части.
func (s *Sender) SendText(ctx context.Context, chatID int64, text string, kb domain.Keyboard) error {
	for i, part := range splitText(text, messageLimit) {
		if err := ctx.Err(); err != nil {
			return err
		}
		msg := tgbotapi.NewMessage(chatID, part)
		if i == 0 {
			if markup := replyMarkup(kb); markup != nil {
				msg.ReplyMarkup = markup
			}
		}
		if err := s.send(msg, "send_message"); err != nil {
			return fmt.Errorf("отправка сообщения в чат %d: %w", chatID, err)
		}
	}
	return nil
}

// SendPhoto отправляет локальный файл с подписью.
func (s *Sender) SendPhoto(ctx context.Context, chatID int64, path, caption string, kb domain.Keyboard) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FilePath(path))
	photo.Caption = caption
	if markup := replyMarkup(kb); markup != nil {
		photo.ReplyMarkup = markup
	}
	if err := s.send(photo, "send_photo"); err != nil {
		return fmt.Errorf("отправка фото в чат %d: %w", chatID, err)
	}
	return nil
}

func (s *Sender) send(c tgbotapi.Chattable, operation string) error {
	start := time.Now()
	_, err := s.api.Send(c)
	metrics.ObserveNetworkRequest("telegram_bot", operation, start, err)
	if err != nil {
		metrics.BotSendErrors.Inc()
		s.log.Error().Err(err).Str("operation", operation).Msg("не удалось отправить сообщение")
	}
	return err
}

func replyMarkup(kb domain.Keyboard) interface{} {
	switch kb.Kind {
	case domain.KeyboardReply:
		rows := make([][]tgbotapi.KeyboardButton, 0, len(kb.Rows))
		for _, row := range kb.Rows {
			buttons := make([]tgbotapi.KeyboardButton, 0, len(row))
			for _, label := range row {
				buttons = append(buttons, tgbotapi.NewKeyboardButton(label))
			}
			rows = append(rows, tgbotapi.NewKeyboardButtonRow(buttons...))
		}
		markup := tgbotapi.NewReplyKeyboard(rows...)
		markup.ResizeKeyboard = true
		markup.OneTimeKeyboard = kb.OneTime
		return markup
	case domain.KeyboardRemove:
		return tgbotapi.NewRemoveKeyboard(false)
	case domain.KeyboardLink:
		return tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonURL(kb.Label, kb.URL)),
		)
	default:
		return nil
	}
}
