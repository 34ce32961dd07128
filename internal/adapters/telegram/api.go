package telegram

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// botAPI — часть *tgbotapi.BotAPI, которой пользуются адаптеры.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdates(config tgbotapi.UpdateConfig) ([]tgbotapi.Update, error)
	GetFileDirectURL(fileID string) (string, error)
}

var _ botAPI = (*tgbotapi.BotAPI)(nil)
