package scoring

import (
	"math"
	"strconv"
	"strings"

	"wellness-bot/internal/domain"
)

const (
	baselineCalories    = 2000
	underweightCalories = 2200
	overweightCalories  = 1800
	defaultWaterLiters  = 2.0
	waterPerKg          = 0.03
	metabolicWaistCM    = 85
)

// Score вычисляет итог анкеты. Функция чистая: одинаковый вход даёт одинаковый результат.
func Score(answers map[string]string) domain.ScoreResult {
	general, health := GeneralScore(answers)
	bmi, ok := BMI(answers["height_cm"], answers["weight_kg"])
	result := domain.ScoreResult{
		GeneralScore:  general,
		HealthScore:   health,
		BMICategory:   domain.BMIUndefined,
		CalorieTarget: baselineCalories,
		WaterTargetL:  WaterTarget(answers["weight_kg"]),
		Zones:         Zones(answers),
	}
	if ok {
		result.BMI = &bmi
		result.BMICategory = CategoryFor(bmi)
		result.CalorieTarget = CalorieTarget(bmi)
	}
	return result
}

// GeneralScore возвращает общий балл (0–100) и балл здоровья (0–10).
func GeneralScore(answers map[string]string) (general int, health int) {
	achieved, possible := 0, 0

	for _, key := range binaryQuestions {
		possible += binaryPoints
		if answers[key] == answerNo {
			achieved += binaryPoints
		}
	}

	scaleSum := 0
	for _, key := range scaleQuestions {
		possible += scaleMax
		if v, ok := parseScale(answers[key]); ok {
			achieved += v
			scaleSum += v
		}
	}

	for _, table := range categoricalTables {
		v, ok := table.points[answers[table.key]]
		if !ok {
			continue
		}
		achieved += v
		possible += table.max()
	}

	health = int(math.RoundToEven(float64(scaleSum) / float64(len(scaleQuestions)*scaleMax) * 10))
	if possible > 0 {
		general = int(math.RoundToEven(float64(achieved) / float64(possible) * 100))
	}
	return general, health
}

// parseScale читает первую цифру ответа; пустой ответ считается нулём.
func parseScale(raw string) (int, bool) {
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(string([]rune(raw)[0]))
	if err != nil || v < 0 || v > scaleMax {
		return 0, false
	}
	return v, true
}

// BMI считает индекс массы тела с точностью до десятых.
func BMI(heightCM, weightKG string) (float64, bool) {
	h, ok := parsePositive(heightCM)
	if !ok {
		return 0, false
	}
	w, ok := parsePositive(weightKG)
	if !ok {
		return 0, false
	}
	m := h / 100
	bmi := w / (m * m)
	if math.IsInf(bmi, 0) || math.IsNaN(bmi) {
		return 0, false
	}
	return round1(bmi), true
}

// CategoryFor относит ИМТ к категории.
func CategoryFor(bmi float64) domain.BMICategory {
	switch {
	case bmi < 18.5:
		return domain.BMIUnderweight
	case bmi < 25:
		return domain.BMINormal
	default:
		return domain.BMIOverweight
	}
}

// CalorieTarget подбирает калорийность. Граница 25 строгая: ИМТ ровно 25 получает базовую норму.
func CalorieTarget(bmi float64) int {
	switch {
	case bmi < 18.5:
		return underweightCalories
	case bmi > 25:
		return overweightCalories
	default:
		return baselineCalories
	}
}

// WaterTarget считает суточную норму воды в литрах.
func WaterTarget(weightKG string) float64 {
	w, ok := parsePositive(weightKG)
	if !ok {
		return defaultWaterLiters
	}
	return round1(w * waterPerKg)
}

func parseFloat(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func parsePositive(raw string) (float64, bool) {
	v, ok := parseFloat(raw)
	if !ok || v <= 0 || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// round1 округляет до десятых по точному десятичному значению числа,
// поэтому 55*0.03 (=1.6499…) даёт 1.6, а не 1.7.
func round1(v float64) float64 {
	out, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	if err != nil {
		return v
	}
	return out
}
