package notify

import "wellness-bot/internal/domain"

// Plan описывает одно ежедневное уведомление: когда и что отправить.
type Plan struct {
	Slot     domain.NotificationSlot
	Trigger  DailyTrigger
	Messages []domain.OutgoingMessage
}

var dayResultKeyboard = domain.ReplyKeyboard(true, []string{"Отлично", "Нормально", "Плохо"})

// DefaultPlan возвращает утреннюю (09:30), дневную (15:00) и вечернюю (20:00) рассылки по UTC+3.
func DefaultPlan() []Plan {
	return []Plan{
		{
			Slot:    domain.SlotMorning,
			Trigger: DailyTrigger{Hour: 9, Minute: 30, Location: Moscow},
			Messages: []domain.OutgoingMessage{
				{Text: "🌅 Доброе утро! Быстрый чек-ин.\n\nКак спали? (0–5)", Keyboard: domain.ScaleKeyboard()},
				{Text: "Энергия сейчас? (0–5)", Keyboard: domain.ScaleKeyboard()},
				{Text: "💧 Напоминание: выпейте стакан воды прямо сейчас."},
			},
		},
		{
			Slot:    domain.SlotMidday,
			Trigger: DailyTrigger{Hour: 15, Minute: 0, Location: Moscow},
			Messages: []domain.OutgoingMessage{
				{Text: "🏙 Дневной чек-ин.\n\nУровень энергии сейчас? (0–5)", Keyboard: domain.ScaleKeyboard()},
				{Text: "Уровень стресса? (0–5)", Keyboard: domain.ScaleKeyboard()},
				{Text: "💧 Напоминание: вода. Даже 300–500 мл уже меняют самочувствие."},
			},
		},
		{
			Slot:    domain.SlotEvening,
			Trigger: DailyTrigger{Hour: 20, Minute: 0, Location: Moscow},
			Messages: []domain.OutgoingMessage{
				{Text: "🌙 Вечерний итог дня.\n\nКак прошёл день?", Keyboard: dayResultKeyboard},
				{Text: "Сон сегодня планируете во сколько лечь?"},
				{Text: "😴 Напоминание: постарайтесь лечь пораньше. " +
					"Даже +30 минут сна часто дают ощутимый прирост энергии завтра."},
			},
		},
	}
}
