package domain

import "time"

// InputKind определяет набор допустимых ответов на вопрос анкеты.
type InputKind int

const (
	InputFree InputKind = iota
	InputYesNo
	InputScale
	InputStoolFrequency
	InputStoolType
	InputCycle
	InputAppetite
	InputActivity
)

// Question описывает один шаг анкеты.
type Question struct {
	Key    string
	Prompt string
	Kind   InputKind
}

// SessionState — состояние диалога анкеты.
type SessionState string

const (
	StateMenu       SessionState = "menu"
	StateInQuestion SessionState = "in_question"
	StateFinal      SessionState = "final"
)

// Session хранит прогресс анкеты одного чата.
type Session struct {
	ChatID        int64             `json:"chat_id"`
	State         SessionState      `json:"state"`
	QuestionIndex int               `json:"question_index"`
	Answers       map[string]string `json:"answers"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// NewSession создаёт пустую сессию в указанном состоянии.
func NewSession(chatID int64, state SessionState) Session {
	return Session{
		ChatID:    chatID,
		State:     state,
		Answers:   make(map[string]string),
		UpdatedAt: time.Now().UTC(),
	}
}

// SnapshotAnswers возвращает копию ответов, не связанную с сессией.
func (s Session) SnapshotAnswers() map[string]string {
	out := make(map[string]string, len(s.Answers))
	for k, v := range s.Answers {
		out[k] = v
	}
	return out
}

// FoodAnalysis — результат распознавания блюда по фото.
type FoodAnalysis struct {
	Dish     string
	Calories float64
	Protein  float64
	Fat      float64
	Carbs    float64
	Comment  string
}
