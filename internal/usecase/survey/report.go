package survey

import (
	"fmt"
	"strconv"
	"strings"

	"wellness-bot/internal/domain"
	"wellness-bot/internal/usecase/scoring"
)

const (
	welcomeText = "Здравствуйте!\nЯ — ваш индивидуальный помощник Клуба Здоровья 🌿\n\n" +
		"Сейчас я задам несколько вопросов, чтобы понять текущее состояние организма " +
		"и дать первые персональные рекомендации.\nАнкетирование займет 7–10 минут.\n" +
		"Отвечайте честно, здесь нет неправильных ответов 💚"

	finalMenuText = "✅ Анкета завершена!\n\n" +
		"Теперь вам доступны функции:\n" +
		"🍽 Подсчёт калорий по фото еды\n" +
		"🌅 Утренние опросы сна в 9:30 каждый день\n" +
		"🌙 Вечерние итоги дня в 20:00 каждый день\n" +
		"💧 Напоминания о воде\n" +
		"😴 Рекомендации ко сну\n\n" +
		"👇 Следующий шаг — подписка на уведомления"

	subscribedText = "Уведомления включены ✅\n\n" +
		"📌 Каждый день вам будут приходить:\n" +
		"🌅 09:30 — утренний опрос + напоминание выпить воды\n" +
		"🕒 15:00 — дневной опрос + напоминание выпить воды\n" +
		"🌙 20:00 — вечерний опрос + напоминание лечь спать пораньше\n\n" +
		"Ничего дополнительно настраивать не нужно 💚"

	contactAfterReportText    = "Нужна помощь? Нажмите кнопку ниже:"
	contactAfterSubscribeText = "Связь с командой доступна по кнопке ниже:"
	contactText               = "Связь с командой:"
	chooseActionText          = "Пожалуйста, выберите действие кнопкой ниже."
)

var bmiCategoryText = map[domain.BMICategory]string{
	domain.BMIUnderweight: "недостаточная масса тела",
	domain.BMINormal:      "норма",
	domain.BMIOverweight:  "избыточная масса тела",
	domain.BMIUndefined:   "не удалось рассчитать",
}

// FormatReport формирует итоговое сообщение по анкете.
func FormatReport(answers map[string]string, result domain.ScoreResult) string {
	bmi := "—"
	if result.BMI != nil {
		bmi = strconv.FormatFloat(*result.BMI, 'f', 1, 64)
	}

	var b strings.Builder
	b.WriteString("Супер! Я подвёл итоги теста:\n\n")
	fmt.Fprintf(&b, "🧠 Здоровье организма: %d/10\n", result.HealthScore)
	fmt.Fprintf(&b, "⚡ Уровень энергии: %s/5\n", answerOr(answers, "energy_level", "0"))
	fmt.Fprintf(&b, "😴 Качество сна: %s/5\n", answerOr(answers, "sleep_quality", "0"))
	fmt.Fprintf(&b, "📊 Общее состояние: %d/100\n\n", result.GeneralScore)
	fmt.Fprintf(&b, "📐 Ваш индекс массы тела: %s — %s\n", bmi, bmiCategoryText[result.BMICategory])
	fmt.Fprintf(&b, "🔥 Рекомендационная калорийность: ~%d ккал/день\n", result.CalorieTarget)
	fmt.Fprintf(&b, "💧 Воды: не менее %s л/день\n\n", strconv.FormatFloat(result.WaterTargetL, 'f', 1, 64))
	b.WriteString("Зоны внимания:\n\n")
	b.WriteString(formatZones(result.Zones))
	return b.String()
}

func formatZones(zones []domain.ZoneID) string {
	if len(zones) == 0 {
		return scoring.NoZonesMessage
	}
	texts := make([]string, 0, len(zones))
	for _, z := range zones {
		texts = append(texts, scoring.ZoneText(z))
	}
	return strings.Join(texts, "\n\n")
}

func answerOr(answers map[string]string, key, fallback string) string {
	if v, ok := answers[key]; ok && v != "" {
		return v
	}
	return fallback
}
