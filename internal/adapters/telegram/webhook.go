package telegram

import (
	"encoding/json"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// WebhookHandler принимает апдейты от Telegram в режиме вебхука.
func WebhookHandler(handler UpdateHandler, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var update tgbotapi.Update
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			log.Warn().Err(err).Msg("telegram: некорректный апдейт вебхука")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		handler.HandleUpdate(r.Context(), update)
		w.WriteHeader(http.StatusOK)
	}
}

// SetWebhook регистрирует адрес вебхука у Telegram.
func SetWebhook(api botAPI, url string) error {
	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return err
	}
	wh.DropPendingUpdates = true
	_, err = api.Request(wh)
	return err
}
