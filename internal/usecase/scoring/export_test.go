package scoring

// ScoredKeys возвращает все ключи анкеты, которые влияют на баллы.
func ScoredKeys() []string {
	keys := append([]string{}, binaryQuestions...)
	keys = append(keys, scaleQuestions...)
	for _, table := range categoricalTables {
		keys = append(keys, table.key)
	}
	return keys
}
