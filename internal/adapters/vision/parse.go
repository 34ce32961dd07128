package vision

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"wellness-bot/internal/domain"
)

type foodPayload struct {
	Dish     string     `json:"dish"`
	Calories flexNumber `json:"calories"`
	Protein  flexNumber `json:"protein"`
	Fat      flexNumber `json:"fat"`
	Carbs    flexNumber `json:"carbs"`
	Comment  string     `json:"comment"`
}

// flexNumber принимает как число, так и строку вида "~350".
type flexNumber float64

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = flexNumber(leadingNumber(s))
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = flexNumber(f)
	return nil
}

func leadingNumber(s string) float64 {
	s = strings.TrimLeft(strings.TrimSpace(s), "~≈ ")
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || s[end] == '.' || s[end] == ',') {
		end++
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s[:end], ",", "."), 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseFoodAnalysis разбирает ответ модели: сначала целиком как JSON,
// затем как фрагмент от первой «{» до последней «}».
func ParseFoodAnalysis(text string) (domain.FoodAnalysis, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.FoodAnalysis{}, domain.ErrClassifierEmpty
	}

	var payload foodPayload
	err := json.Unmarshal([]byte(text), &payload)
	if err != nil {
		start := strings.Index(text, "{")
		end := strings.LastIndex(text, "}")
		if start < 0 || end <= start {
			return domain.FoodAnalysis{}, fmt.Errorf("%w: %v", domain.ErrClassifierMalformed, err)
		}
		if err := json.Unmarshal([]byte(text[start:end+1]), &payload); err != nil {
			return domain.FoodAnalysis{}, fmt.Errorf("%w: %v", domain.ErrClassifierMalformed, err)
		}
	}

	return domain.FoodAnalysis{
		Dish:     strings.TrimSpace(payload.Dish),
		Calories: float64(payload.Calories),
		Protein:  float64(payload.Protein),
		Fat:      float64(payload.Fat),
		Carbs:    float64(payload.Carbs),
		Comment:  strings.TrimSpace(payload.Comment),
	}, nil
}
