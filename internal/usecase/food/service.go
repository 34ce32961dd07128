package food

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"wellness-bot/internal/domain"
	"wellness-bot/internal/infra/metrics"
)

const (
	receivedText = "📸 Фото получено. Считаю калории и БЖУ…"
	noPhotoText  = "Не вижу фото 😕 Попробуйте отправить изображение еще раз."
	// RetryText показывается при любой ошибке распознавания.
	RetryText = "Не получилось распознать блюдо 😕\n" +
		"Попробуйте сделать фото ближе и при хорошем освещении."
	disclaimer = "⚠️ Значения приблизительные и основаны на визуальной оценке."
)

// Service распознаёт еду на присланных фото.
type Service struct {
	files      domain.FileFetcher
	classifier domain.FoodClassifier
	sender     domain.Sender
	log        zerolog.Logger
}

// NewService создаёт сервис анализа фото еды.
func NewService(files domain.FileFetcher, classifier domain.FoodClassifier, sender domain.Sender, log zerolog.Logger) *Service {
	return &Service{files: files, classifier: classifier, sender: sender, log: log}
}

// Analyze скачивает фото, распознаёт блюдо и отвечает пользователю.
// Ошибки распознавания не возвращаются: пользователь получает одно
// фиксированное сообщение, ошибка пишется в лог.
func (s *Service) Analyze(ctx context.Context, chatID int64, fileID string) error {
	if err := s.sender.SendText(ctx, chatID, receivedText, domain.Keyboard{}); err != nil {
		return fmt.Errorf("подтверждение фото: %w", err)
	}
	if strings.TrimSpace(fileID) == "" {
		return s.sender.SendText(ctx, chatID, noPhotoText, domain.Keyboard{})
	}

	analysis, err := s.classify(ctx, fileID)
	if err != nil {
		metrics.FoodAnalyses.WithLabelValues(failureStatus(err)).Inc()
		s.log.Error().Err(err).Int64("chat_id", chatID).Msg("ошибка анализа фото")
		return s.sender.SendText(ctx, chatID, RetryText, domain.Keyboard{})
	}
	metrics.FoodAnalyses.WithLabelValues("ok").Inc()
	return s.sender.SendText(ctx, chatID, FormatAnalysis(analysis), domain.Keyboard{})
}

func (s *Service) classify(ctx context.Context, fileID string) (domain.FoodAnalysis, error) {
	image, err := s.files.Fetch(ctx, fileID)
	if err != nil {
		return domain.FoodAnalysis{}, fmt.Errorf("загрузка фото: %w", err)
	}
	return s.classifier.Classify(ctx, image)
}

func failureStatus(err error) string {
	switch {
	case errors.Is(err, domain.ErrClassifierEmpty):
		return "empty"
	case errors.Is(err, domain.ErrClassifierMalformed):
		return "malformed"
	case errors.Is(err, domain.ErrClassifierUnavailable):
		return "unavailable"
	default:
		return "fetch_error"
	}
}

// FormatAnalysis формирует ответ с КБЖУ.
func FormatAnalysis(a domain.FoodAnalysis) string {
	dish := a.Dish
	if dish == "" {
		dish = "—"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "🍽 Блюдо: %s\n\n", dish)
	fmt.Fprintf(&b, "🔥 Калории: ~%s ккал\n", formatAmount(a.Calories))
	fmt.Fprintf(&b, "🥩 Белки: ~%s г\n", formatAmount(a.Protein))
	fmt.Fprintf(&b, "🧈 Жиры: ~%s г\n", formatAmount(a.Fat))
	fmt.Fprintf(&b, "🍞 Углеводы: ~%s г\n\n", formatAmount(a.Carbs))
	fmt.Fprintf(&b, "💬 %s\n\n", a.Comment)
	b.WriteString(disclaimer)
	return b.String()
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
