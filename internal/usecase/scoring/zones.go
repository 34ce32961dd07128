package scoring

import "wellness-bot/internal/domain"

type zoneRule struct {
	id     domain.ZoneID
	active func(a map[string]string) bool
}

func yes(a map[string]string, keys ...string) bool {
	for _, k := range keys {
		if a[k] == answerYes {
			return true
		}
	}
	return false
}

func oneOf(value string, options ...string) bool {
	for _, o := range options {
		if value == o {
			return true
		}
	}
	return false
}

var zoneRules = []zoneRule{
	{domain.ZoneGut, func(a map[string]string) bool {
		return oneOf(a["stool_frequency"], "1 раз в 2–3 дня", "1 раз в 3–5 дней") || yes(a, "bloating", "abdominal_pain")
	}},
	{domain.ZoneMetabolic, func(a map[string]string) bool {
		waist, ok := parseFloat(a["waist_cm"])
		return ok && waist >= metabolicWaistCM
	}},
	{domain.ZoneCycle, func(a map[string]string) bool {
		return oneOf(a["cycle_status"], "нерегулярный", "я женщина, цикла нет")
	}},
	{domain.ZoneAppetite, func(a map[string]string) bool {
		return oneOf(a["appetite_level"], "повышенный", "пониженный") || yes(a, "sweet_craving", "fat_craving")
	}},
	{domain.ZoneNervous, func(a map[string]string) bool {
		return yes(a, "focus_issues", "irritability_day", "sleepiness_day")
	}},
	{domain.ZoneSkin, func(a map[string]string) bool {
		return yes(a, "oily_skin", "dry_skin", "skin_itch")
	}},
	{domain.ZoneLibido, func(a map[string]string) bool {
		return yes(a, "low_libido", "vaginal_itch")
	}},
	{domain.ZonePain, func(a map[string]string) bool {
		return yes(a, "headache", "joint_pain", "abdominal_pain")
	}},
	{domain.ZoneDryMouth, func(a map[string]string) bool {
		return yes(a, "dry_mouth")
	}},
	{domain.ZoneRedFlags, func(a map[string]string) bool {
		return yes(a, "blue_sclera", "palpitations")
	}},
}

// Zones возвращает активные зоны в фиксированном порядке.
func Zones(answers map[string]string) []domain.ZoneID {
	var out []domain.ZoneID
	for _, rule := range zoneRules {
		if rule.active(answers) {
			out = append(out, rule.id)
		}
	}
	return out
}
