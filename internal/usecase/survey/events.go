package survey

import (
	"strings"

	"wellness-bot/internal/domain"
)

// EventKind — распознанное действие пользователя.
type EventKind int

const (
	EventUnknown EventKind = iota
	EventBegin
	EventAnswer
	EventSubscribe
	EventContact
)

func (k EventKind) String() string {
	switch k {
	case EventBegin:
		return "begin"
	case EventAnswer:
		return "answer"
	case EventSubscribe:
		return "subscribe"
	case EventContact:
		return "contact"
	default:
		return "unknown"
	}
}

// Event — входящий текст, разобранный относительно состояния сессии.
type Event struct {
	Kind EventKind
	Text string
}

// ParseEvent сопоставляет текст с набором действий, допустимых в состоянии.
// Команды («/…») внутри анкеты ответом не считаются.
func ParseEvent(state domain.SessionState, raw string) Event {
	text := strings.TrimSpace(raw)
	ev := Event{Kind: EventUnknown, Text: text}
	switch state {
	case domain.StateMenu:
		if text == ButtonBegin {
			ev.Kind = EventBegin
		}
	case domain.StateInQuestion:
		if !strings.HasPrefix(text, "/") {
			ev.Kind = EventAnswer
		}
	case domain.StateFinal:
		switch text {
		case ButtonSubscribe:
			ev.Kind = EventSubscribe
		case ButtonContact:
			ev.Kind = EventContact
		}
	}
	return ev
}
