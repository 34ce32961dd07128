package domain

// BMICategory — категория индекса массы тела.
type BMICategory string

const (
	BMIUnderweight BMICategory = "underweight"
	BMINormal      BMICategory = "normal"
	BMIOverweight  BMICategory = "overweight"
	BMIUndefined   BMICategory = "undefined"
)

// ZoneID идентифицирует зону внимания.
type ZoneID string

const (
	ZoneGut       ZoneID = "zone_gut"
	ZoneMetabolic ZoneID = "zone_bmi"
	ZoneCycle     ZoneID = "zone_cycle"
	ZoneAppetite  ZoneID = "zone_appetite"
	ZoneNervous   ZoneID = "zone_symptoms"
	ZoneSkin      ZoneID = "zone_skin"
	ZoneLibido    ZoneID = "zone_libido"
	ZonePain      ZoneID = "zone_pain"
	ZoneDryMouth  ZoneID = "zone_dry_mouth"
	ZoneRedFlags  ZoneID = "zone_red_flags"
)

// ScoreResult — итог анкеты. Вычисляется заново и нигде не хранится в изменяемом виде.
type ScoreResult struct {
	GeneralScore  int         `json:"general_score"`
	HealthScore   int         `json:"health_score"`
	BMI           *float64    `json:"bmi,omitempty"`
	BMICategory   BMICategory `json:"bmi_category"`
	CalorieTarget int         `json:"calorie_target"`
	WaterTargetL  float64     `json:"water_target_l"`
	Zones         []ZoneID    `json:"zones"`
}

// HasZone сообщает, активна ли зона.
func (r ScoreResult) HasZone(id ZoneID) bool {
	for _, z := range r.Zones {
		if z == id {
			return true
		}
	}
	return false
}
