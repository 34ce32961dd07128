package food

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"wellness-bot/internal/domain"
)

type fakeSender struct {
	mu    sync.Mutex
	texts []string
}

func (f *fakeSender) SendText(_ context.Context, _ int64, text string, _ domain.Keyboard) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.texts = append(f.texts, text)
	return nil
}

func (f *fakeSender) SendPhoto(ctx context.Context, chatID int64, _ string, caption string, kb domain.Keyboard) error {
	return f.SendText(ctx, chatID, caption, kb)
}

type stubFiles struct {
	data []byte
	err  error
}

func (s stubFiles) Fetch(context.Context, string) ([]byte, error) {
	return s.data, s.err
}

type stubClassifier struct {
	result domain.FoodAnalysis
	err    error
	got    []byte
}

func (s *stubClassifier) Classify(_ context.Context, image []byte) (domain.FoodAnalysis, error) {
	s.got = image
	return s.result, s.err
}

func TestAnalyzeRepliesWithNutrition(t *testing.T) {
	sender := &fakeSender{}
	classifier := &stubClassifier{result: domain.FoodAnalysis{Dish: "Омлет", Calories: 320, Protein: 21, Fat: 24.5, Carbs: 3, Comment: "Добавьте овощей"}}
	svc := NewService(stubFiles{data: []byte("jpeg")}, classifier, sender, zerolog.Nop())

	if err := svc.Analyze(context.Background(), 1, "file-1"); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if string(classifier.got) != "jpeg" {
		t.Fatalf("классификатор должен получить байты фото")
	}
	if len(sender.texts) != 2 || sender.texts[0] != receivedText {
		t.Fatalf("ожидали подтверждение и результат: %q", sender.texts)
	}
	reply := sender.texts[1]
	for _, want := range []string{"🍽 Блюдо: Омлет", "~320 ккал", "Жиры: ~24.5 г", "💬 Добавьте овощей", disclaimer} {
		if !strings.Contains(reply, want) {
			t.Fatalf("ответ не содержит %q:\n%s", want, reply)
		}
	}
}

func TestAnalyzeFailuresShowRetryMessage(t *testing.T) {
	cases := []struct {
		name       string
		files      stubFiles
		classifier *stubClassifier
	}{
		{name: "fetch", files: stubFiles{err: errors.New("404")}, classifier: &stubClassifier{}},
		{name: "empty", files: stubFiles{data: []byte("x")}, classifier: &stubClassifier{err: domain.ErrClassifierEmpty}},
		{name: "malformed", files: stubFiles{data: []byte("x")}, classifier: &stubClassifier{err: fmt.Errorf("%w: eof", domain.ErrClassifierMalformed)}},
		{name: "unavailable", files: stubFiles{data: []byte("x")}, classifier: &stubClassifier{err: domain.ErrClassifierUnavailable}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sender := &fakeSender{}
			svc := NewService(tc.files, tc.classifier, sender, zerolog.Nop())
			if err := svc.Analyze(context.Background(), 1, "file-1"); err != nil {
				t.Fatalf("ошибка не должна возвращаться: %v", err)
			}
			if len(sender.texts) != 2 || sender.texts[1] != RetryText {
				t.Fatalf("ожидали сообщение о повторе: %q", sender.texts)
			}
		})
	}
}

func TestAnalyzeWithoutPhoto(t *testing.T) {
	sender := &fakeSender{}
	classifier := &stubClassifier{}
	svc := NewService(stubFiles{}, classifier, sender, zerolog.Nop())
	if err := svc.Analyze(context.Background(), 1, ""); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if classifier.got != nil || sender.texts[len(sender.texts)-1] != noPhotoText {
		t.Fatalf("без фото классификатор не вызывается: %q", sender.texts)
	}
}

func TestFormatAnalysisDefaultsDish(t *testing.T) {
	if got := FormatAnalysis(domain.FoodAnalysis{}); !strings.HasPrefix(got, "🍽 Блюдо: —") {
		t.Fatalf("ожидали прочерк вместо названия: %q", got)
	}
}
