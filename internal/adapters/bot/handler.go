package bot

import (
	"context"
	"strconv"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"wellness-bot/internal/domain"
)

const dedupeTTL = 24 * time.Hour

// SurveyFlow ведёт анкету.
type SurveyFlow interface {
	Open(ctx context.Context, chatID int64) error
	Handle(ctx context.Context, chatID int64, text string) error
}

// FoodAnalyzer распознаёт еду на фото.
type FoodAnalyzer interface {
	Analyze(ctx context.Context, chatID int64, fileID string) error
}

// Handler маршрутизирует апдейты Telegram.
type Handler struct {
	survey SurveyFlow
	food   FoodAnalyzer
	dedupe domain.Cache
	log    zerolog.Logger
	locks  *chatLocks

	root   context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewHandler создаёт обработчик. dedupe может быть nil.
func NewHandler(survey SurveyFlow, food FoodAnalyzer, dedupe domain.Cache, log zerolog.Logger) *Handler {
	root, cancel := context.WithCancel(context.Background())
	return &Handler{
		survey: survey,
		food:   food,
		dedupe: dedupe,
		log:    log,
		locks:  newChatLocks(),
		root:   root,
		cancel: cancel,
	}
}

// HandleUpdate обрабатывает входящий апдейт. Ошибки пишутся в лог и
// наружу не возвращаются.
func (h *Handler) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message == nil || upd.Message.Chat == nil {
		return
	}
	if h.dedupe == nil {
		h.handleMessage(ctx, upd.Message)
		return
	}
	key := "update:" + strconv.Itoa(upd.UpdateID)
	err := h.dedupe.Once(key, dedupeTTL, func() error {
		h.handleMessage(ctx, upd.Message)
		return nil
	})
	if err != nil {
		h.log.Warn().Err(err).Int("update_id", upd.UpdateID).Msg("bot: дедупликация недоступна, обрабатываем апдейт")
		h.handleMessage(ctx, upd.Message)
	}
}

func (h *Handler) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	logger := h.log.With().Int64("chat_id", chatID).Logger()

	if len(msg.Photo) > 0 {
		h.analyzePhoto(chatID, msg.Photo[len(msg.Photo)-1].FileID)
		return
	}

	unlock := h.locks.lock(chatID)
	defer unlock()

	if msg.IsCommand() {
		if msg.Command() != "start" {
			return
		}
		if err := h.survey.Open(ctx, chatID); err != nil {
			logger.Error().Err(err).Msg("bot: ошибка обработки /start")
		}
		return
	}
	if msg.Text == "" {
		return
	}
	if err := h.survey.Handle(ctx, chatID, msg.Text); err != nil {
		logger.Error().Err(err).Msg("bot: ошибка обработки сообщения")
	}
}

// analyzePhoto запускает распознавание вне потока обработки апдейтов.
func (h *Handler) analyzePhoto(chatID int64, fileID string) {
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		if err := h.food.Analyze(h.root, chatID, fileID); err != nil {
			h.log.Error().Err(err).Int64("chat_id", chatID).Msg("bot: ошибка анализа фото")
		}
	}()
}

// Close отменяет фоновые анализы фото и дожидается их завершения.
func (h *Handler) Close() {
	h.cancel()
	h.wg.Wait()
}
