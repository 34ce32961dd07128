package survey

import "wellness-bot/internal/domain"

// Кнопки меню.
const (
	ButtonBegin     = "Начать анкетирование"
	ButtonSubscribe = "🔔 Подписаться на уведомления"
	ButtonContact   = "Связь с командой Екатерины 🌿"
)

// Questions задаёт фиксированный порядок анкеты.
var Questions = []domain.Question{
	{Key: "height_cm", Prompt: "Ваш рост (см):", Kind: domain.InputFree},
	{Key: "weight_kg", Prompt: "Ваш вес (кг):", Kind: domain.InputFree},
	{Key: "chest_cm", Prompt: "Окружность груди (см):", Kind: domain.InputFree},
	{Key: "waist_cm", Prompt: "Окружность талии (см):", Kind: domain.InputFree},
	{Key: "hips_cm", Prompt: "Окружность бёдер (см):", Kind: domain.InputFree},
	{Key: "stool_frequency", Prompt: "Как часто у вас бывает стул?", Kind: domain.InputStoolFrequency},
	{Key: "stool_type", Prompt: "Какой стул бывает чаще всего?", Kind: domain.InputStoolType},
	{Key: "cycle_status", Prompt: "Менструальный цикл?", Kind: domain.InputCycle},
	{Key: "energy_level", Prompt: "Оцените уровень энергии (0–5, где 0-Низкая 5-Все супер):", Kind: domain.InputScale},
	{Key: "stress_level", Prompt: "Оцените уровень стресса (0–5, где 0-Много стресса 5-Все супер):", Kind: domain.InputScale},
	{Key: "sleep_quality", Prompt: "Оцените качество сна (0–5, где 0-Плохо сплю 5-Все супер):", Kind: domain.InputScale},
	{Key: "focus_issues", Prompt: "Снижение концентрации внимания?", Kind: domain.InputYesNo},
	{Key: "irritability_day", Prompt: "Дневная раздражительность?", Kind: domain.InputYesNo},
	{Key: "sleepiness_day", Prompt: "Дневная сонливость?", Kind: domain.InputYesNo},
	{Key: "appetite_level", Prompt: "Какой аппетит вам больше подходит?", Kind: domain.InputAppetite},
	{Key: "sweet_craving", Prompt: "Есть ли тяга к сладкому?", Kind: domain.InputYesNo},
	{Key: "fat_craving", Prompt: "Есть ли тяга к жирному?", Kind: domain.InputYesNo},
	{Key: "palpitations", Prompt: "Одышка или учащённое сердцебиение?", Kind: domain.InputYesNo},
	{Key: "cold_hands_feet", Prompt: "Зябкость рук и ног?", Kind: domain.InputYesNo},
	{Key: "skin_itch", Prompt: "Кожный зуд?", Kind: domain.InputYesNo},
	{Key: "blue_sclera", Prompt: "Голубоватый оттенок склер?", Kind: domain.InputYesNo},
	{Key: "headache", Prompt: "Беспокоит ли вас головная боль?", Kind: domain.InputYesNo},
	{Key: "oily_skin", Prompt: "Жирность кожи лица?", Kind: domain.InputYesNo},
	{Key: "dry_skin", Prompt: "Сухость кожи лица?", Kind: domain.InputYesNo},
	{Key: "low_libido", Prompt: "Сниженное либидо?", Kind: domain.InputYesNo},
	{Key: "vaginal_itch", Prompt: "Вагинальный зуд (для женщин)?", Kind: domain.InputYesNo},
	{Key: "joint_pain", Prompt: "Боли в суставах?", Kind: domain.InputYesNo},
	{Key: "abdominal_pain", Prompt: "Боли или спазмы в животе?", Kind: domain.InputYesNo},
	{Key: "bloating", Prompt: "Повышенное газообразование?", Kind: domain.InputYesNo},
	{Key: "hair_loss", Prompt: "Выпадение волос?", Kind: domain.InputYesNo},
	{Key: "dry_mouth", Prompt: "Сухость во рту?", Kind: domain.InputYesNo},
	{Key: "steps_daily", Prompt: "Сколько шагов в среднем в день?", Kind: domain.InputFree},
	{Key: "activity_level", Prompt: "Есть ли дополнительная физическая активность?", Kind: domain.InputActivity},
}

var (
	startKeyboard          = domain.ReplyKeyboard(false, []string{ButtonBegin})
	finalKeyboard          = domain.ReplyKeyboard(true, []string{ButtonSubscribe}, []string{ButtonContact})
	afterSubscribeKeyboard = domain.ReplyKeyboard(true, []string{ButtonContact})
)

// KeyboardFor возвращает клавиатуру вариантов ответа для вида вопроса.
func KeyboardFor(kind domain.InputKind) domain.Keyboard {
	switch kind {
	case domain.InputYesNo:
		return domain.ReplyKeyboard(true, []string{"да", "нет"})
	case domain.InputScale:
		return domain.ScaleKeyboard()
	case domain.InputStoolFrequency:
		return domain.ReplyKeyboard(true,
			[]string{"2–3 раза в сутки", "1 раз в сутки"},
			[]string{"1 раз в 1–2 дня", "1 раз в 2–3 дня", "1 раз в 3–5 дней"},
		)
	case domain.InputStoolType:
		return domain.ReplyKeyboard(true,
			[]string{"оформленный, нормальный"},
			[]string{"твёрдый", "жидкий"},
			[]string{"иногда твёрдый, иногда жидкий", "чередуется"},
		)
	case domain.InputCycle:
		return domain.ReplyKeyboard(true,
			[]string{"я мужчина", "я женщина, цикла нет"},
			[]string{"регулярный", "нерегулярный"},
		)
	case domain.InputAppetite:
		return domain.ReplyKeyboard(true, []string{"нормальный", "повышенный", "пониженный"})
	case domain.InputActivity:
		return domain.ReplyKeyboard(true, []string{"нет", "1–2 раза в неделю", "3 и более раз в неделю"})
	default:
		return domain.RemoveKeyboard()
	}
}
