package survey

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"wellness-bot/internal/domain"
	"wellness-bot/internal/infra/metrics"
	"wellness-bot/internal/usecase/notify"
	"wellness-bot/internal/usecase/scoring"
)

// Scheduler запускает ежедневные уведомления чата.
type Scheduler interface {
	Activate(chatID int64) *notify.JobSet
}

// Manager ведёт сессии анкеты: меню, вопросы, итоговое меню.
type Manager struct {
	sessions     domain.SessionStore
	sender       domain.Sender
	scheduler    Scheduler
	archive      domain.ResultArchive
	log          zerolog.Logger
	welcomePhoto string
	contactURL   string
	now          func() time.Time
}

// NewManager создаёт менеджер анкеты. archive может быть nil.
func NewManager(sessions domain.SessionStore, sender domain.Sender, scheduler Scheduler, archive domain.ResultArchive, log zerolog.Logger, welcomePhoto, contactURL string) *Manager {
	return &Manager{
		sessions:     sessions,
		sender:       sender,
		scheduler:    scheduler,
		archive:      archive,
		log:          log,
		welcomePhoto: welcomePhoto,
		contactURL:   contactURL,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Open сбрасывает сессию в меню и отправляет приветствие.
func (m *Manager) Open(ctx context.Context, chatID int64) error {
	session := domain.NewSession(chatID, domain.StateMenu)
	if err := m.save(ctx, &session); err != nil {
		return err
	}

	if m.welcomePhoto != "" {
		if _, err := os.Stat(m.welcomePhoto); err == nil {
			err = m.sender.SendPhoto(ctx, chatID, m.welcomePhoto, welcomeText, startKeyboard)
			if err == nil {
				return nil
			}
			m.log.Warn().Err(err).Int64("chat_id", chatID).Msg("не удалось отправить фото приветствия, отправляем текст")
		}
	}
	return m.sender.SendText(ctx, chatID, welcomeText, startKeyboard)
}

// Begin начинает анкету заново с первого вопроса.
func (m *Manager) Begin(ctx context.Context, chatID int64) error {
	session, err := m.load(ctx, chatID)
	if err != nil {
		return err
	}
	state, err := transition(ctx, session.State, transitionBegin)
	if err != nil {
		return err
	}
	session.State = state
	session.QuestionIndex = 0
	session.Answers = make(map[string]string)
	if err := m.save(ctx, &session); err != nil {
		return err
	}
	metrics.SurveysStarted.Inc()

	first := Questions[0]
	return m.sender.SendText(ctx, chatID, first.Prompt, KeyboardFor(first.Kind))
}

// SubmitAnswer сохраняет ответ на текущий вопрос и задаёт следующий.
// После последнего вопроса считает итоги и переводит сессию в итоговое меню.
func (m *Manager) SubmitAnswer(ctx context.Context, chatID int64, raw string) error {
	session, err := m.sessions.Get(ctx, chatID)
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		session = domain.NewSession(chatID, domain.StateInQuestion)
	case err != nil:
		return fmt.Errorf("загрузка сессии: %w", err)
	}
	if session.Answers == nil {
		session.Answers = make(map[string]string)
	}
	if session.QuestionIndex < 0 || session.QuestionIndex >= len(Questions) {
		session.QuestionIndex = 0
	}

	current := Questions[session.QuestionIndex]
	session.Answers[current.Key] = ParseEvent(domain.StateInQuestion, raw).Text
	session.QuestionIndex++

	if session.QuestionIndex < len(Questions) {
		state, err := transition(ctx, session.State, transitionAnswer)
		if err != nil {
			return err
		}
		session.State = state
		if err := m.save(ctx, &session); err != nil {
			return err
		}
		next := Questions[session.QuestionIndex]
		return m.sender.SendText(ctx, chatID, next.Prompt, KeyboardFor(next.Kind))
	}

	return m.complete(ctx, session)
}

func (m *Manager) complete(ctx context.Context, session domain.Session) error {
	state, err := transition(ctx, session.State, transitionComplete)
	if err != nil {
		return err
	}
	session.State = state
	answers := session.SnapshotAnswers()
	result := scoring.Score(answers)
	if err := m.save(ctx, &session); err != nil {
		return err
	}

	zones := make([]string, 0, len(result.Zones))
	for _, z := range result.Zones {
		zones = append(zones, string(z))
	}
	metrics.ObserveSurveyCompleted(zones)
	m.log.Info().Int64("chat_id", session.ChatID).Int("general_score", result.GeneralScore).Strs("zones", zones).Msg("анкета завершена")

	if m.archive != nil {
		if err := m.archive.SaveResult(ctx, session.ChatID, answers, result); err != nil {
			m.log.Error().Err(err).Int64("chat_id", session.ChatID).Msg("не удалось сохранить результат анкеты")
		}
	}

	if err := m.sender.SendText(ctx, session.ChatID, FormatReport(answers, result), domain.Keyboard{}); err != nil {
		return fmt.Errorf("отправка отчёта: %w", err)
	}
	if err := m.sender.SendText(ctx, session.ChatID, finalMenuText, finalKeyboard); err != nil {
		return fmt.Errorf("отправка итогового меню: %w", err)
	}
	return m.sender.SendText(ctx, session.ChatID, contactAfterReportText, m.contactKeyboard())
}

// FinalAction обрабатывает выбор в итоговом меню.
func (m *Manager) FinalAction(ctx context.Context, chatID int64, raw string) error {
	session, err := m.sessions.Get(ctx, chatID)
	if err != nil {
		return fmt.Errorf("загрузка сессии: %w", err)
	}
	if _, err := transition(ctx, session.State, transitionStay); err != nil {
		return err
	}

	switch ParseEvent(domain.StateFinal, raw).Kind {
	case EventSubscribe:
		set := m.scheduler.Activate(chatID)
		m.log.Info().Int64("chat_id", chatID).Int("jobs", len(set.Jobs)).Msg("уведомления включены")
		if err := m.sender.SendText(ctx, chatID, subscribedText, afterSubscribeKeyboard); err != nil {
			return fmt.Errorf("отправка подтверждения: %w", err)
		}
		return m.sender.SendText(ctx, chatID, contactAfterSubscribeText, m.contactKeyboard())
	case EventContact:
		return m.sender.SendText(ctx, chatID, contactText, m.contactKeyboard())
	default:
		return m.sender.SendText(ctx, chatID, chooseActionText, finalKeyboard)
	}
}

// Handle принимает все текстовые сообщения чата.
// Текст без сессии и нераспознанный текст в меню игнорируются.
func (m *Manager) Handle(ctx context.Context, chatID int64, text string) error {
	session, err := m.sessions.Get(ctx, chatID)
	if errors.Is(err, domain.ErrSessionNotFound) {
		m.log.Debug().Int64("chat_id", chatID).Msg("текст без сессии, пропускаем")
		return nil
	}
	if err != nil {
		return fmt.Errorf("загрузка сессии: %w", err)
	}

	ev := ParseEvent(session.State, text)
	switch ev.Kind {
	case EventBegin:
		return m.Begin(ctx, chatID)
	case EventAnswer:
		return m.SubmitAnswer(ctx, chatID, ev.Text)
	case EventSubscribe, EventContact:
		return m.FinalAction(ctx, chatID, ev.Text)
	}
	if session.State == domain.StateFinal {
		return m.FinalAction(ctx, chatID, ev.Text)
	}
	return nil
}

func (m *Manager) contactKeyboard() domain.Keyboard {
	return domain.LinkKeyboard(ButtonContact, m.contactURL)
}

func (m *Manager) load(ctx context.Context, chatID int64) (domain.Session, error) {
	session, err := m.sessions.Get(ctx, chatID)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return domain.NewSession(chatID, domain.StateMenu), nil
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("загрузка сессии: %w", err)
	}
	return session, nil
}

func (m *Manager) save(ctx context.Context, session *domain.Session) error {
	session.UpdatedAt = m.now()
	if err := m.sessions.Put(ctx, *session); err != nil {
		return fmt.Errorf("сохранение сессии: %w", err)
	}
	return nil
}
