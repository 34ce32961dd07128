package scoring

import "wellness-bot/internal/domain"

const (
	answerYes = "да"
	answerNo  = "нет"
)

// binaryQuestions дают 2 балла за ответ «нет».
var binaryQuestions = []string{
	"focus_issues", "irritability_day", "sleepiness_day", "palpitations", "cold_hands_feet",
	"skin_itch", "blue_sclera", "headache", "sweet_craving", "fat_craving",
	"oily_skin", "dry_skin", "low_libido", "vaginal_itch", "joint_pain", "abdominal_pain",
	"bloating", "hair_loss", "dry_mouth",
}

const binaryPoints = 2

// scaleQuestions оцениваются по шкале 0–5.
var scaleQuestions = []string{"energy_level", "sleep_quality"}

const scaleMax = 5

type optionTable struct {
	key    string
	points map[string]int
}

// max — «возможный» балл вопроса: максимум его собственной таблицы.
func (t optionTable) max() int {
	best := 0
	for _, v := range t.points {
		if v > best {
			best = v
		}
	}
	return best
}

var categoricalTables = []optionTable{
	{key: "stool_frequency", points: map[string]int{
		"2–3 раза в сутки": 2,
		"1 раз в сутки":    1,
		"1 раз в 1–2 дня":  1,
		"1 раз в 2–3 дня":  0,
		"1 раз в 3–5 дней": 0,
	}},
	{key: "activity_level", points: map[string]int{
		"нет":                    0,
		"1–2 раза в неделю":      2,
		"3 и более раз в неделю": 5,
	}},
	{key: "appetite_level", points: map[string]int{
		"нормальный": 5,
		"повышенный": 2,
		"пониженный": 2,
	}},
}

// ZoneMessages хранит тексты зон в порядке вывода в отчёте.
var ZoneMessages = []struct {
	ID   domain.ZoneID
	Text string
}{
	{domain.ZoneGut, "🟢 Пищеварение: сигналы нестабильной работы ЖКТ."},
	{domain.ZoneMetabolic, "🟢 Метаболический фокус: окружность талии выше нормы."},
	{domain.ZoneCycle, "🟢 Цикл: отмечена нерегулярность или отсутствие цикла."},
	{domain.ZoneAppetite, "🟢 Аппетит и тяги: есть сигналы нарушения пищевого поведения."},
	{domain.ZoneNervous, "🟢 Нервная система: сонливость, раздражительность, сложности с концентрацией."},
	{domain.ZoneSkin, "🟢 Кожа: сухость, жирность, зуд."},
	{domain.ZoneLibido, "🟢 Интимное здоровье: есть сигналы, на которые стоит обратить внимание."},
	{domain.ZonePain, "🟢 Болевой фон: боли в голове, суставах или животе."},
	{domain.ZoneDryMouth, "🟢 Сухость во рту."},
	{domain.ZoneRedFlags, "🔴 Важно: симптомы требуют консультации специалиста."},
}

// NoZonesMessage выводится, если ни одна зона не активна.
const NoZonesMessage = "🟢 По анкете не выявлено выраженных зон напряжения."

// ZoneText возвращает текст зоны.
func ZoneText(id domain.ZoneID) string {
	for _, z := range ZoneMessages {
		if z.ID == id {
			return z.Text
		}
	}
	return ""
}
